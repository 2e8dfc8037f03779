package compute

import (
	"unsafe"

	"github.com/LynnColeArt/kronos-compute/kerr"
	"github.com/LynnColeArt/kronos-compute/vk"
)

// CreateInstance validates info, then creates one real instance per loaded
// ICD (fanning out in aggregated mode, addressing the sole ICD otherwise)
// and returns one synthetic handle. In mock mode (no ICD discovered) it
// returns a handle backed by no driver state at all.
func (c *Core) CreateInstance(info *vk.InstanceCreateInfo) (vk.Instance, vk.Result) {
	if info == nil {
		return 0, vk.ErrorInitializationFailed
	}
	if info.SType != vk.StructureTypeInstanceCreateInfo {
		return 0, vk.ErrorInitializationFailed
	}

	if c.mockMode() {
		h := c.instances.Insert(&instanceRecord{})
		return vk.Instance(h), vk.Success
	}

	loadeds, globals := c.mgr.Icds()
	n := len(loadeds)
	if !c.mgr.Aggregated() {
		n = 1
	}

	states := make([]instanceState, 0, n)
	for i := 0; i < n; i++ {
		var inst vk.Instance
		res := globals[i].CreateInstance(info, nil, &inst)
		if !res.Succeeded() {
			for _, s := range states {
				s.icdTable.DestroyInstance(s.icdInstance, nil)
			}
			return 0, res
		}
		table := loadeds[i].LoadInstance(uint64(inst))
		states = append(states, instanceState{icdInstance: inst, icdTable: table})
	}

	h := c.instances.Insert(&instanceRecord{icds: states})
	return vk.Instance(h), vk.Success
}

func (c *Core) DestroyInstance(instance vk.Instance) {
	rec, ok := c.instances.Remove(uint64(instance))
	if !ok {
		return
	}
	for _, s := range rec.icds {
		s.icdTable.DestroyInstance(s.icdInstance, nil)
	}
}

// EnumeratePhysicalDevices fans out across every ICD the owning instance
// was created on, tagging each reported device with its owning ICD index
// so later calls (GetPhysicalDeviceProperties, CreateDevice) dispatch
// through the table that actually owns the handle.
func (c *Core) EnumeratePhysicalDevices(instance vk.Instance) ([]vk.PhysicalDevice, vk.Result) {
	rec, ok := c.instances.Lookup(uint64(instance))
	if !ok {
		return nil, vk.ErrorInitializationFailed
	}
	if c.mockMode() {
		return nil, vk.Success
	}

	var out []vk.PhysicalDevice
	for i, s := range rec.icds {
		var count uint32
		res := s.icdTable.EnumeratePhysicalDevices(s.icdInstance, &count, nil)
		if !res.Succeeded() || count == 0 {
			continue
		}
		raw := make([]vk.PhysicalDevice, count)
		res = s.icdTable.EnumeratePhysicalDevices(s.icdInstance, &count, &raw[0])
		if !res.Succeeded() {
			return nil, res
		}
		for _, pd := range raw {
			h := c.physicalDevices.Insert(&physicalDeviceRecord{icdIndex: uint32(i), handle: pd, table: s.icdTable})
			out = append(out, vk.PhysicalDevice(h))
		}
	}
	return out, vk.Success
}

func (c *Core) physicalDevice(pd vk.PhysicalDevice) (*physicalDeviceRecord, error) {
	rec, err := c.physicalDevices.MustLookup("compute", "physicalDevice", uint64(pd))
	if err != nil {
		return nil, kerr.New(kerr.CategoryProtocol, "compute", "physicalDevice", err)
	}
	return rec, nil
}

// GetPhysicalDeviceProperties reads the device header (vendor/device
// ID/name) the barrier tracker's vendor-aware refinement needs.
func (c *Core) GetPhysicalDeviceProperties(pd vk.PhysicalDevice, props *vk.PhysicalDeviceProperties) vk.Result {
	rec, err := c.physicalDevice(pd)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	rec.table.GetPhysicalDeviceProperties(rec.handle, unsafe.Pointer(props))
	return vk.Success
}

func (c *Core) GetPhysicalDeviceQueueFamilyProperties(pd vk.PhysicalDevice, count *uint32, props *vk.QueueFamilyProperties) vk.Result {
	rec, err := c.physicalDevice(pd)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	rec.table.GetPhysicalDeviceQueueFamilyProperties(rec.handle, count, props)
	return vk.Success
}

func (c *Core) GetPhysicalDeviceMemoryProperties(pd vk.PhysicalDevice, props *vk.PhysicalDeviceMemoryProperties) vk.Result {
	rec, err := c.physicalDevice(pd)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	rec.table.GetPhysicalDeviceMemoryProperties(rec.handle, props)
	return vk.Success
}

func (c *Core) GetPhysicalDeviceFeatures(pd vk.PhysicalDevice, feats *vk.PhysicalDeviceFeatures) vk.Result {
	rec, err := c.physicalDevice(pd)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	rec.table.GetPhysicalDeviceFeatures(rec.handle, feats)
	return vk.Success
}
