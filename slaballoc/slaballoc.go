// Package slaballoc implements the three-pool slab memory allocator:
// DeviceLocal, HostVisibleCoherent, and HostVisibleCached pools, each
// subdividing 256 KiB slabs with a first-fit algorithm, achieving zero
// driver AllocateMemory calls in steady state. Grounded on
// hal/vulkan/memory/allocator.go's pool/block/stats shape, generalized
// from a buddy allocator to the first-fit algorithm
// original_source/src/implementation/pool_allocator.rs specifies.
package slaballoc

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/LynnColeArt/kronos-compute/kerr"
	"github.com/LynnColeArt/kronos-compute/vk"
)

// SlabSize is the default slab granularity; requests larger than this
// create an exact-sized dedicated slab instead.
const SlabSize uint64 = 256 * 1024

// PoolKind identifies one of the three pools a device maintains.
type PoolKind int

const (
	PoolDeviceLocal PoolKind = iota
	PoolHostVisibleCoherent
	PoolHostVisibleCached
)

func (k PoolKind) String() string {
	switch k {
	case PoolDeviceLocal:
		return "DeviceLocal"
	case PoolHostVisibleCoherent:
		return "HostVisibleCoherent"
	case PoolHostVisibleCached:
		return "HostVisibleCached"
	default:
		return "Unknown"
	}
}

func (k PoolKind) requiredFlags() vk.MemoryPropertyFlags {
	switch k {
	case PoolDeviceLocal:
		return vk.MemoryPropertyDeviceLocalBit
	case PoolHostVisibleCoherent:
		return vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit
	case PoolHostVisibleCached:
		return vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCachedBit
	default:
		return 0
	}
}

// subAlloc is one in-use or free region inside a slab.
type subAlloc struct {
	offset uint64
	size   uint64
	inUse  bool
}

// slab is a single driver memory allocation the pool further subdivides.
type slab struct {
	memory    vk.DeviceMemory
	size      uint64
	mappedPtr uintptr // 0 when the pool kind is not host-visible
	allocs    []subAlloc
}

func newSlab(memory vk.DeviceMemory, size uint64, mappedPtr uintptr) *slab {
	return &slab{
		memory:    memory,
		size:      size,
		mappedPtr: mappedPtr,
		allocs:    []subAlloc{{offset: 0, size: size, inUse: false}},
	}
}

// alignUp rounds size up to the next multiple of alignment, which must be
// a power of two (spec.md §4.5).
func alignUp(offset, alignment uint64) uint64 {
	return (offset + alignment - 1) &^ (alignment - 1)
}

// firstFit walks the slab's regions looking for the first free span that
// fits size once aligned. Returns the insertion index and the aligned
// offset, or ok=false if nothing fits.
func (s *slab) firstFit(size, alignment uint64) (index int, offset uint64, ok bool) {
	for i, a := range s.allocs {
		if a.inUse {
			continue
		}
		start := alignUp(a.offset, alignment)
		pad := start - a.offset
		if pad+size <= a.size {
			return i, start, true
		}
	}
	return 0, 0, false
}

// insertAt splits the free region at index so that [offset, offset+size)
// becomes an in-use allocation, leaving any leading/trailing slack as
// adjacent free regions. Non-merging: spec.md §4.5 explicitly does not
// require adjacent-free-region merging.
func (s *slab) insertAt(index int, offset, size uint64) {
	region := s.allocs[index]
	var replacement []subAlloc
	if offset > region.offset {
		replacement = append(replacement, subAlloc{offset: region.offset, size: offset - region.offset})
	}
	replacement = append(replacement, subAlloc{offset: offset, size: size, inUse: true})
	tailStart := offset + size
	if tailEnd := region.offset + region.size; tailEnd > tailStart {
		replacement = append(replacement, subAlloc{offset: tailStart, size: tailEnd - tailStart})
	}
	s.allocs = append(s.allocs[:index], append(replacement, s.allocs[index+1:]...)...)
}

func (s *slab) free(offset uint64) bool {
	for i := range s.allocs {
		if s.allocs[i].offset == offset && s.allocs[i].inUse {
			s.allocs[i].inUse = false
			return true
		}
	}
	return false
}

// Allocation is the handle returned to callers, valid until Free is
// called or its owning pool is torn down.
type Allocation struct {
	Pool      PoolKind
	Memory    vk.DeviceMemory
	Offset    uint64
	Size      uint64
	MappedPtr uintptr // non-zero for host-visible pools
}

// Pool manages every slab of one kind for one device.
type Pool struct {
	mu              sync.Mutex
	device          vk.Device
	table           *vk.DeviceTable
	kind            PoolKind
	memoryTypeIndex uint32
	initialized     bool
	slabs           []*slab

	TotalAllocated uint64
}

// NewPool scans memProps for the first memory type carrying kind's
// required flags, per spec.md §4.5's initialization rule. A pool for
// which no matching memory type exists stays uninitialized; allocations
// against it fail with ErrPoolNotInitialized rather than at construction
// time, matching the shim-level error-translation policy in §7.
func NewPool(device vk.Device, table *vk.DeviceTable, kind PoolKind, memProps *vk.PhysicalDeviceMemoryProperties) *Pool {
	p := &Pool{device: device, table: table, kind: kind}
	required := kind.requiredFlags()
	for i := uint32(0); i < memProps.MemoryTypeCount; i++ {
		if memProps.MemoryTypes[i].PropertyFlags.Has(required) {
			p.memoryTypeIndex = i
			p.initialized = true
			break
		}
	}
	return p
}

// MemoryTypeIndex returns the memory type this pool was bound to at
// construction, letting callers route a vkAllocateMemory request's
// requested type index back to the owning pool.
func (p *Pool) MemoryTypeIndex() uint32 {
	return p.memoryTypeIndex
}

// Kind returns the pool's PoolKind.
func (p *Pool) Kind() PoolKind {
	return p.kind
}

func (p *Pool) isHostVisible() bool {
	return p.kind != PoolDeviceLocal
}

// allocateSlab asks the driver for a new slab of at least size bytes
// (exactly size when size exceeds SlabSize), mapping it persistently if
// the pool is host-visible.
func (p *Pool) allocateSlab(size uint64) (*slab, error) {
	slabSize := SlabSize
	if size > slabSize {
		slabSize = size
	}

	info := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  slabSize,
		MemoryTypeIndex: p.memoryTypeIndex,
	}
	var mem vk.DeviceMemory
	res := p.table.AllocateMemory(p.device, &info, nil, &mem)
	if !res.Succeeded() {
		return nil, kerr.New(kerr.CategoryDriver, "slaballoc", "AllocateMemory", fmt.Errorf("result %d", res))
	}

	var mappedPtr uintptr
	if p.isHostVisible() {
		var data unsafe.Pointer
		mapRes := p.table.MapMemory(p.device, mem, 0, vk.WholeSize, 0, &data)
		if !mapRes.Succeeded() {
			p.table.FreeMemory(p.device, mem, nil)
			return nil, kerr.New(kerr.CategoryDriver, "slaballoc", "MapMemory", fmt.Errorf("result %d", mapRes))
		}
		mappedPtr = uintptr(data)
	}

	s := newSlab(mem, slabSize, mappedPtr)
	p.slabs = append(p.slabs, s)
	p.TotalAllocated += slabSize
	return s, nil
}

// Allocate serves size bytes aligned to alignment from an existing slab's
// free region, falling back to a freshly allocated slab on failure.
func (p *Pool) Allocate(size, alignment uint64) (*Allocation, error) {
	if !p.initialized {
		return nil, kerr.New(kerr.CategoryProtocol, "slaballoc", "Allocate", fmt.Errorf("%w: pool %s", kerr.ErrPoolNotInitialized, p.kind))
	}
	size = alignUp(size, alignment)

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, s := range p.slabs {
		if idx, offset, ok := s.firstFit(size, alignment); ok {
			s.insertAt(idx, offset, size)
			return p.toAllocation(s, offset, size), nil
		}
	}

	s, err := p.allocateSlab(size)
	if err != nil {
		return nil, err
	}
	idx, offset, ok := s.firstFit(size, alignment)
	if !ok {
		return nil, kerr.New(kerr.CategoryProtocol, "slaballoc", "Allocate", fmt.Errorf("freshly allocated slab cannot satisfy size %d align %d", size, alignment))
	}
	s.insertAt(idx, offset, size)
	return p.toAllocation(s, offset, size), nil
}

func (p *Pool) toAllocation(s *slab, offset, size uint64) *Allocation {
	a := &Allocation{Pool: p.kind, Memory: s.memory, Offset: offset, Size: size}
	if s.mappedPtr != 0 {
		a.MappedPtr = s.mappedPtr + uintptr(offset)
	}
	return a
}

// Free marks the allocation's region free in place. Slabs are never
// destroyed until pool teardown, per spec.md §4.5.
func (p *Pool) Free(a *Allocation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, s := range p.slabs {
		if s.memory == a.Memory && s.free(a.Offset) {
			return
		}
	}
}

// Destroy frees every slab's driver memory. Host-visible slabs are
// unmapped implicitly by vkFreeMemory.
func (p *Pool) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, s := range p.slabs {
		p.table.FreeMemory(p.device, s.memory, nil)
	}
	p.slabs = nil
	p.TotalAllocated = 0
}
