package compute

import (
	"github.com/LynnColeArt/kronos-compute/kerr"
	"github.com/LynnColeArt/kronos-compute/slaballoc"
	"github.com/LynnColeArt/kronos-compute/vk"
)

// defaultMemoryAlignment is used for bare AllocateMemory requests that
// carry no buffer/image context to derive an alignment from; it matches
// the alignment every GPU vendor's storage-buffer descriptor requires in
// practice, so sub-allocations never need realignment once bound.
const defaultMemoryAlignment = 256

// poolForType finds the pool whose memory type index matches typeIndex,
// the same scan CreateDevice used to build the pool set in the first
// place, run in reverse.
func (rec *deviceRecord) poolForType(typeIndex uint32) *slaballoc.Pool {
	for _, p := range rec.pools {
		if p.MemoryTypeIndex() == typeIndex {
			return p
		}
	}
	return nil
}

// AllocateMemory routes a real vkAllocateMemory request through the slab
// allocator instead of the driver: it resolves info.MemoryTypeIndex back
// to the pool that was bound to it at CreateDevice time and serves the
// request as a sub-allocation, achieving zero driver AllocateMemory calls
// whenever an existing slab has room.
func (c *Core) AllocateMemory(device vk.Device, info *vk.MemoryAllocateInfo) (vk.DeviceMemory, vk.Result) {
	if info == nil || info.SType != vk.StructureTypeMemoryAllocateInfo {
		return 0, vk.ErrorInitializationFailed
	}
	rec, err := c.lookupDevice(device)
	if err != nil {
		return 0, vk.ErrorInitializationFailed
	}
	if rec.mock {
		h := rec.allocations.Insert(&memoryRecord{})
		return vk.DeviceMemory(h), vk.Success
	}

	pool := rec.poolForType(info.MemoryTypeIndex)
	if pool == nil {
		return 0, vk.ErrorInitializationFailed
	}
	alloc, allocErr := pool.Allocate(info.AllocationSize, defaultMemoryAlignment)
	if allocErr != nil {
		return 0, vk.ErrorOutOfDeviceMemory
	}
	h := rec.allocations.Insert(&memoryRecord{alloc: alloc, pool: pool})
	return vk.DeviceMemory(h), vk.Success
}

func (c *Core) lookupMemory(rec *deviceRecord, mem vk.DeviceMemory) (*memoryRecord, error) {
	mr, err := rec.allocations.MustLookup("compute", "memory", uint64(mem))
	if err != nil {
		return nil, kerr.New(kerr.CategoryProtocol, "compute", "memory", err)
	}
	return mr, nil
}

func (c *Core) FreeMemory(device vk.Device, mem vk.DeviceMemory) {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return
	}
	mr, ok := rec.allocations.Remove(uint64(mem))
	if !ok || rec.mock || mr.alloc == nil {
		return
	}
	mr.pool.Free(mr.alloc)
}

// MapMemory returns the persistently mapped pointer the owning pool
// established when the backing slab was created; host-visible pools are
// mapped once for their whole lifetime (spec.md §4.5), so this never
// issues a driver vkMapMemory call.
func (c *Core) MapMemory(device vk.Device, mem vk.DeviceMemory, offset uint64) (uintptr, vk.Result) {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return 0, vk.ErrorInitializationFailed
	}
	if rec.mock {
		return 0, vk.Success
	}
	mr, lookupErr := c.lookupMemory(rec, mem)
	if lookupErr != nil {
		return 0, vk.ErrorInitializationFailed
	}
	if mr.alloc.MappedPtr == 0 {
		return 0, vk.ErrorMemoryMapFailed
	}
	return mr.alloc.MappedPtr + uintptr(offset), vk.Success
}

// UnmapMemory is a no-op: mapping is owned by the slab, not the
// individual sub-allocation, and persists until the slab itself is
// freed at pool teardown.
func (c *Core) UnmapMemory(device vk.Device, mem vk.DeviceMemory) {}
