package slaballoc

import (
	"fmt"

	"github.com/LynnColeArt/kronos-compute/kerr"
	"github.com/LynnColeArt/kronos-compute/vk"
)

// BoundMemory is returned by AllocateBufferMemory so callers can later
// release the sub-allocation through the same pool that served it.
type BoundMemory struct {
	Allocation *Allocation
	pool       *Pool
}

// Free returns the sub-allocation backing this binding to its pool. The
// buffer itself is left bound; destroying it is the caller's
// responsibility, matching ordinary Vulkan teardown order.
func (b *BoundMemory) Free() {
	b.pool.Free(b.Allocation)
}

// AllocateBufferMemory queries buf's memory requirements, serves them
// from kind's pool, and binds the result to buf, rolling the
// sub-allocation back if BindBufferMemory fails. This is the steady-state
// path spec.md §4.5 targets for zero vkAllocateMemory calls per dispatch.
func AllocateBufferMemory(device vk.Device, table *vk.DeviceTable, pool *Pool, buf vk.Buffer) (*BoundMemory, error) {
	var req vk.MemoryRequirements
	table.GetBufferMemoryRequirements(device, buf, &req)

	alloc, err := pool.Allocate(req.Size, req.Alignment)
	if err != nil {
		return nil, err
	}

	res := table.BindBufferMemory(device, buf, alloc.Memory, alloc.Offset)
	if !res.Succeeded() {
		pool.Free(alloc)
		return nil, kerr.New(kerr.CategoryDriver, "slaballoc", "BindBufferMemory", fmt.Errorf("result %d", res))
	}

	return &BoundMemory{Allocation: alloc, pool: pool}, nil
}
