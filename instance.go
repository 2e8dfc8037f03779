package kronos

import (
	"errors"

	"github.com/LynnColeArt/kronos-compute/compute"
	"github.com/LynnColeArt/kronos-compute/config"
	"github.com/LynnColeArt/kronos-compute/vk"
)

// ErrReleased is returned by any method called on an Instance, Device,
// Buffer, ShaderModule, or Pipeline after Release.
var ErrReleased = errors.New("kronos: object already released")

// apiVersion1_3 encodes Vulkan 1.3.0 using the variant/major/minor/patch
// packing vkMakeApiVersion defines: (variant<<29)|(major<<22)|(minor<<12)|patch.
const apiVersion1_3 uint32 = 1<<22 | 3<<12

// InstanceDescriptor configures instance creation. A zero value picks
// reasonable defaults.
type InstanceDescriptor struct {
	ApplicationName string
}

// Instance is the entry point for compute operations: it owns the
// process-wide Core (ICD discovery, handle tables) and one synthetic
// vk.Instance handle. If no ICD is discovered, the Instance silently runs
// in the CPU-visible mock path rather than failing — tests and tooling
// can exercise the full API surface without a real driver installed.
type Instance struct {
	core     *compute.Core
	handle   vk.Instance
	released bool
}

// CreateInstance discovers installed ICDs per the environment's
// configuration and creates an Instance. If desc is nil, defaults are
// used.
func CreateInstance(desc *InstanceDescriptor) (*Instance, error) {
	cfg := config.Load()

	core, err := compute.NewCore(cfg)
	if err != nil {
		return nil, err
	}

	var appName *byte
	if desc != nil && desc.ApplicationName != "" {
		nameBytes := append([]byte(desc.ApplicationName), 0)
		appName = &nameBytes[0]
	}

	appInfo := vk.ApplicationInfo{
		SType:            vk.StructureTypeApplicationInfo,
		PApplicationName: appName,
		APIVersion:       apiVersion1_3,
	}
	info := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &appInfo,
	}

	handle, res := core.CreateInstance(&info)
	if !res.Succeeded() {
		core.Close()
		return nil, errorFromResult("CreateInstance", res)
	}

	return &Instance{core: core, handle: handle}, nil
}

// Release destroys the instance and every ICD it loaded. Safe to call
// more than once.
func (i *Instance) Release() {
	if i.released {
		return
	}
	i.released = true
	i.core.DestroyInstance(i.handle)
	i.core.Close()
}

// OpenDevice enumerates physical devices, picks the first one exposing a
// compute-capable queue family, and creates a logical device bound to
// that queue. In mock mode it opens a synthetic device with no backing
// physical device at all.
func (i *Instance) OpenDevice() (*Device, error) {
	if i.released {
		return nil, ErrReleased
	}

	pd, queueFamilyIndex, err := i.findComputeDevice()
	if err != nil {
		return nil, err
	}

	priority := float32(1.0)
	queueInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: queueFamilyIndex,
		QueueCount:       1,
		PQueuePriorities: &priority,
	}
	info := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: 1,
		PQueueCreateInfos:    &queueInfo,
	}

	handle, res := i.core.CreateDevice(pd, &info)
	if !res.Succeeded() {
		return nil, errorFromResult("CreateDevice", res)
	}

	queue, res := i.core.GetDeviceQueue(handle, queueFamilyIndex, 0)
	if !res.Succeeded() {
		i.core.DestroyDevice(handle)
		return nil, errorFromResult("GetDeviceQueue", res)
	}

	return &Device{
		instance:         i,
		core:             i.core,
		handle:           handle,
		queue:            queue,
		queueFamilyIndex: queueFamilyIndex,
	}, nil
}

// findComputeDevice returns the zero handle and queue family 0 in mock
// mode (compute.CreateDevice ignores both when Core has no ICD), and the
// first physical device reporting a compute-capable queue family
// otherwise.
func (i *Instance) findComputeDevice() (vk.PhysicalDevice, uint32, error) {
	pds, res := i.core.EnumeratePhysicalDevices(i.handle)
	if !res.Succeeded() {
		return 0, 0, errorFromResult("EnumeratePhysicalDevices", res)
	}
	if len(pds) == 0 {
		return 0, 0, nil
	}

	for _, pd := range pds {
		var count uint32
		if res := i.core.GetPhysicalDeviceQueueFamilyProperties(pd, &count, nil); !res.Succeeded() || count == 0 {
			continue
		}
		families := make([]vk.QueueFamilyProperties, count)
		if res := i.core.GetPhysicalDeviceQueueFamilyProperties(pd, &count, &families[0]); !res.Succeeded() {
			continue
		}
		for idx, fam := range families {
			if fam.QueueFlags&vk.QueueComputeBit != 0 {
				return pd, uint32(idx), nil
			}
		}
	}
	return 0, 0, errors.New("kronos: no compute-capable physical device found")
}
