package kronos

import (
	"sync"

	"github.com/LynnColeArt/kronos-compute/compute"
	"github.com/LynnColeArt/kronos-compute/slaballoc"
	"github.com/LynnColeArt/kronos-compute/vk"
)

// Device is a logical device bound to one compute-capable queue.
type Device struct {
	instance         *Instance
	core             *compute.Core
	handle           vk.Device
	queue            vk.Queue
	queueFamilyIndex uint32
	released         bool

	cmdPoolOnce sync.Once
	cmdPool     vk.CommandPool
	cmdPoolErr  error
}

// commandPool lazily creates the one command pool every CommandList
// allocates its one-shot command buffer from, reused across dispatches.
func (d *Device) commandPool() (vk.CommandPool, error) {
	d.cmdPoolOnce.Do(func() {
		info := vk.CommandPoolCreateInfo{
			SType:            vk.StructureTypeCommandPoolCreateInfo,
			Flags:            vk.CommandPoolCreateResetCommandBufferBit,
			QueueFamilyIndex: d.queueFamilyIndex,
		}
		pool, res := d.core.CreateCommandPool(d.handle, &info)
		if !res.Succeeded() {
			d.cmdPoolErr = errorFromResult("CreateCommandPool", res)
			return
		}
		d.cmdPool = pool
	})
	return d.cmdPool, d.cmdPoolErr
}

// Release destroys the Device's internal command pool and the device
// itself. Buffers, shader modules and pipelines created from the Device
// are not destroyed by Release.
func (d *Device) Release() {
	if d.released {
		return
	}
	d.released = true
	if d.cmdPool != 0 {
		d.core.DestroyCommandPool(d.handle, d.cmdPool)
	}
	d.core.DestroyDevice(d.handle)
}

// Queue returns the device's single compute queue.
func (d *Device) Queue() *Queue {
	return &Queue{core: d.core, device: d.handle, handle: d.queue}
}

// WaitIdle blocks until every operation submitted on this device has
// completed.
func (d *Device) WaitIdle() error {
	if d.released {
		return ErrReleased
	}
	if res := d.core.DeviceWaitIdle(d.handle); !res.Succeeded() {
		return errorFromResult("DeviceWaitIdle", res)
	}
	return nil
}

// BufferUsage mirrors original_source's BufferUsage bitflag wrapper over
// vk.BufferUsageFlags, giving callers named constants instead of raw bits.
type BufferUsage vk.BufferUsageFlags

const (
	BufferUsageStorage     BufferUsage = BufferUsage(vk.BufferUsageStorageBufferBit)
	BufferUsageTransferSrc BufferUsage = BufferUsage(vk.BufferUsageTransferSrcBit)
	BufferUsageTransferDst BufferUsage = BufferUsage(vk.BufferUsageTransferDstBit)
)

// CreateBuffer creates a size-byte buffer with the given usage flags,
// bound to device-local memory through the slab allocator's combined
// AllocateBuffer path. Use CreateHostVisibleBuffer for a buffer the CPU
// needs to map.
func (d *Device) CreateBuffer(size uint64, usage BufferUsage) (*Buffer, error) {
	return d.createBuffer(size, usage, slaballoc.PoolDeviceLocal)
}

// CreateHostVisibleBuffer creates a size-byte buffer backed by
// host-visible, host-coherent memory, suitable for CPU-side staging
// uploads and readbacks.
func (d *Device) CreateHostVisibleBuffer(size uint64, usage BufferUsage) (*Buffer, error) {
	return d.createBuffer(size, usage, slaballoc.PoolHostVisibleCoherent)
}

func (d *Device) createBuffer(size uint64, usage BufferUsage, kind slaballoc.PoolKind) (*Buffer, error) {
	if d.released {
		return nil, ErrReleased
	}

	info := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       vk.BufferUsageFlags(usage),
		SharingMode: vk.SharingModeExclusive,
	}
	handle, res := d.core.CreateBuffer(d.handle, &info)
	if !res.Succeeded() {
		return nil, errorFromResult("CreateBuffer", res)
	}

	if res := d.core.AllocateBuffer(d.handle, handle, kind); !res.Succeeded() {
		d.core.DestroyBuffer(d.handle, handle)
		return nil, errorFromResult("AllocateBuffer", res)
	}

	return &Buffer{device: d, handle: handle, size: size, usage: usage}, nil
}

// CreateShaderModule compiles a SPIR-V binary into a shader module. code
// must be 4-byte aligned, matching SPIR-V's own word-stream requirement.
func (d *Device) CreateShaderModule(code []byte) (*ShaderModule, error) {
	if d.released {
		return nil, ErrReleased
	}
	if len(code)%4 != 0 {
		return nil, errorFromResult("CreateShaderModule", vk.ErrorInitializationFailed)
	}

	info := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uintptr(len(code)),
		PCode:    (*uint32)(sliceHeadPointer(code)),
	}
	handle, res := d.core.CreateShaderModule(d.handle, &info)
	if !res.Succeeded() {
		return nil, errorFromResult("CreateShaderModule", res)
	}
	return &ShaderModule{device: d, handle: handle}, nil
}
