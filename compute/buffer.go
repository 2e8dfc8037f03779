package compute

import (
	"github.com/LynnColeArt/kronos-compute/kerr"
	"github.com/LynnColeArt/kronos-compute/slaballoc"
	"github.com/LynnColeArt/kronos-compute/vk"
)

// CreateBuffer creates the real driver buffer object. No memory is
// allocated or bound here, matching vkCreateBuffer's own contract —
// binding happens through BindBufferMemory, or through AllocateBuffer
// for the combined hot-path helper below.
func (c *Core) CreateBuffer(device vk.Device, info *vk.BufferCreateInfo) (vk.Buffer, vk.Result) {
	if info == nil || info.SType != vk.StructureTypeBufferCreateInfo {
		return 0, vk.ErrorInitializationFailed
	}
	rec, err := c.lookupDevice(device)
	if err != nil {
		return 0, vk.ErrorInitializationFailed
	}
	if rec.mock {
		rec.mu.Lock()
		rec.mockNextHandle++
		h := vk.Buffer(rec.mockNextHandle)
		rec.mu.Unlock()
		return h, vk.Success
	}

	var buf vk.Buffer
	res := rec.table.CreateBuffer(rec.device, info, nil, &buf)
	return buf, res
}

// DestroyBuffer destroys the driver buffer object. Any memory bound
// through AllocateBuffer must be released with FreeBuffer first; memory
// bound through the raw AllocateMemory/BindBufferMemory protocol is
// released independently with FreeMemory, matching real Vulkan teardown
// order.
func (c *Core) DestroyBuffer(device vk.Device, buf vk.Buffer) {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return
	}
	if rec.mock {
		return
	}
	rec.table.DestroyBuffer(rec.device, buf, nil)
}

func (c *Core) GetBufferMemoryRequirements(device vk.Device, buf vk.Buffer, req *vk.MemoryRequirements) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	if rec.mock {
		*req = vk.MemoryRequirements{Size: 0, Alignment: defaultMemoryAlignment, MemoryTypeBits: ^uint32(0)}
		return vk.Success
	}
	rec.table.GetBufferMemoryRequirements(rec.device, buf, req)
	return vk.Success
}

// BindBufferMemory resolves mem back to the sub-allocation AllocateMemory
// served it and binds the buffer to the sub-allocation's real underlying
// driver memory and offset, so the caller-visible protocol exactly
// matches vkBindBufferMemory while the actual bind targets a shared slab.
func (c *Core) BindBufferMemory(device vk.Device, buf vk.Buffer, mem vk.DeviceMemory, offset uint64) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	if rec.mock {
		return vk.Success
	}

	mr, lookupErr := c.lookupMemory(rec, mem)
	if lookupErr != nil || mr.alloc == nil {
		return vk.ErrorInitializationFailed
	}
	return rec.table.BindBufferMemory(rec.device, buf, mr.alloc.Memory, mr.alloc.Offset+offset)
}

// AllocateBuffer is the combined binding helper spec.md §4.5 names:
// query requirements, sub-allocate from kind's pool, and bind, in one
// call, rolling the sub-allocation back automatically if the bind fails.
// It is the steady-state path the compute subset's hot loop uses instead
// of the raw AllocateMemory/BindBufferMemory pair.
func (c *Core) AllocateBuffer(device vk.Device, buf vk.Buffer, kind slaballoc.PoolKind) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	if rec.mock {
		rec.mu.Lock()
		rec.buffers[buf] = 0
		rec.mu.Unlock()
		return vk.Success
	}

	bound, allocErr := slaballoc.AllocateBufferMemory(rec.device, rec.table, rec.pools[kind], buf)
	if allocErr != nil {
		return kerr.ToResult(allocErr)
	}
	rec.mu.Lock()
	rec.buffers[buf] = vk.DeviceMemory(bound.Allocation.Memory)
	rec.boundBuffers[buf] = bound
	rec.mu.Unlock()
	return vk.Success
}

// BufferHostPointer returns the CPU-visible address of buf's backing
// sub-allocation, valid only when buf was bound through AllocateBuffer
// against a host-visible pool — those pools stay persistently mapped for
// their whole lifetime, so no separate MapMemory call is needed.
func (c *Core) BufferHostPointer(device vk.Device, buf vk.Buffer) (uintptr, vk.Result) {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return 0, vk.ErrorInitializationFailed
	}
	if rec.mock {
		return 0, vk.Success
	}
	rec.mu.Lock()
	bound, ok := rec.boundBuffers[buf]
	rec.mu.Unlock()
	if !ok || bound.Allocation.MappedPtr == 0 {
		return 0, vk.ErrorMemoryMapFailed
	}
	return bound.Allocation.MappedPtr, vk.Success
}

// FreeBuffer releases the sub-allocation AllocateBuffer bound to buf back
// to its pool. The buffer itself must still be destroyed separately with
// DestroyBuffer.
func (c *Core) FreeBuffer(device vk.Device, buf vk.Buffer) {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return
	}
	rec.mu.Lock()
	bound, ok := rec.boundBuffers[buf]
	delete(rec.boundBuffers, buf)
	delete(rec.buffers, buf)
	rec.mu.Unlock()
	if ok {
		bound.Free()
	}
}
