package compute

import (
	"unsafe"

	"github.com/LynnColeArt/kronos-compute/barrier"
	"github.com/LynnColeArt/kronos-compute/descriptor"
	"github.com/LynnColeArt/kronos-compute/kerr"
	"github.com/LynnColeArt/kronos-compute/registry"
	"github.com/LynnColeArt/kronos-compute/slaballoc"
	"github.com/LynnColeArt/kronos-compute/timeline"
	"github.com/LynnColeArt/kronos-compute/vk"
)

// CreateDevice validates info, creates the real device on the physical
// device's owning ICD, resolves the device dispatch table exclusively
// through vkGetDeviceProcAddr, and wires up the four hot-path subsystems
// (slab pools, persistent descriptors, barrier tracking, timeline
// batching) that every subsequent command on this device will use.
func (c *Core) CreateDevice(pd vk.PhysicalDevice, info *vk.DeviceCreateInfo) (vk.Device, vk.Result) {
	if info == nil || info.SType != vk.StructureTypeDeviceCreateInfo {
		return 0, vk.ErrorInitializationFailed
	}

	if c.mockMode() {
		rec := &deviceRecord{
			mock:         true,
			cmdBuffers:   registry.NewTable[*commandBufferRecord](),
			allocations:  registry.NewTable[*memoryRecord](),
			buffers:      make(map[vk.Buffer]vk.DeviceMemory),
			boundBuffers: make(map[vk.Buffer]*slaballoc.BoundMemory),
		}
		h := c.devices.Insert(rec)
		return vk.Device(h), vk.Success
	}

	pdRec, err := c.physicalDevice(pd)
	if err != nil {
		return 0, vk.ErrorInitializationFailed
	}

	var device vk.Device
	res := pdRec.table.CreateDevice(pdRec.handle, info, nil, &device)
	if !res.Succeeded() {
		return 0, res
	}

	icds, _ := c.mgr.Icds()
	table := icds[pdRec.icdIndex].LoadDevice(pdRec.table.GetDeviceProcAddr, uint64(device))

	var props vk.PhysicalDeviceProperties
	pdRec.table.GetPhysicalDeviceProperties(pdRec.handle, unsafe.Pointer(&props))
	vendor := barrier.VendorFromID(props.VendorID)

	var memProps vk.PhysicalDeviceMemoryProperties
	pdRec.table.GetPhysicalDeviceMemoryProperties(pdRec.handle, &memProps)

	rec := &deviceRecord{
		device: device,
		table:  table,
		pools: [3]*slaballoc.Pool{
			slaballoc.NewPool(device, table, slaballoc.PoolDeviceLocal, &memProps),
			slaballoc.NewPool(device, table, slaballoc.PoolHostVisibleCoherent, &memProps),
			slaballoc.NewPool(device, table, slaballoc.PoolHostVisibleCached, &memProps),
		},
		descriptors:  descriptor.NewManager(device, table, uint64(device), uint32(c.cfg.DescriptorPoolSize)),
		vendor:       vendor,
		timelines:    timeline.NewManager(device, table, uint32(c.cfg.TimelineBatchSize)),
		cmdBuffers:   registry.NewTable[*commandBufferRecord](),
		allocations:  registry.NewTable[*memoryRecord](),
		buffers:      make(map[vk.Buffer]vk.DeviceMemory),
		boundBuffers: make(map[vk.Buffer]*slaballoc.BoundMemory),
	}
	h := c.devices.Insert(rec)
	return vk.Device(h), vk.Success
}

func (c *Core) lookupDevice(device vk.Device) (*deviceRecord, error) {
	rec, err := c.devices.MustLookup("compute", "device", uint64(device))
	if err != nil {
		return nil, kerr.New(kerr.CategoryProtocol, "compute", "device", err)
	}
	return rec, nil
}

func (c *Core) DestroyDevice(device vk.Device) {
	rec, ok := c.devices.Remove(uint64(device))
	if !ok || rec.mock {
		return
	}
	rec.descriptors.Destroy()
	for _, p := range rec.pools {
		p.Destroy()
	}
	rec.table.DestroyDevice(rec.device, nil)
}

func (c *Core) GetDeviceQueue(device vk.Device, familyIndex, index uint32) (vk.Queue, vk.Result) {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return 0, vk.ErrorInitializationFailed
	}
	if rec.mock {
		return vk.Queue(1), vk.Success
	}
	var queue vk.Queue
	rec.table.GetDeviceQueue(rec.device, familyIndex, index, &queue)
	return queue, vk.Success
}

func (c *Core) DeviceWaitIdle(device vk.Device) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	if rec.mock {
		return vk.Success
	}
	return rec.table.DeviceWaitIdle(rec.device)
}

// QueueWaitIdle submits any batch still open on queue, then waits for the
// queue to drain.
func (c *Core) QueueWaitIdle(device vk.Device, queue vk.Queue) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	if rec.mock {
		return vk.Success
	}
	if beginErr := rec.timelines.BeginBatch(queue); beginErr != nil {
		return vk.ErrorInitializationFailed
	}
	if _, submitErr := rec.timelines.SubmitBatch(queue, 0); submitErr != nil {
		return vk.ErrorInitializationFailed
	}
	return rec.table.QueueWaitIdle(queue)
}
