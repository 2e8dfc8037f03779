package slaballoc

import (
	"testing"

	"github.com/LynnColeArt/kronos-compute/vk"
)

func deviceLocalProps() *vk.PhysicalDeviceMemoryProperties {
	props := &vk.PhysicalDeviceMemoryProperties{MemoryTypeCount: 3}
	props.MemoryTypes[0] = vk.MemoryType{PropertyFlags: vk.MemoryPropertyDeviceLocalBit}
	props.MemoryTypes[1] = vk.MemoryType{PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit}
	props.MemoryTypes[2] = vk.MemoryType{PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCachedBit}
	return props
}

func TestNewPoolFindsMatchingMemoryType(t *testing.T) {
	props := deviceLocalProps()
	p := NewPool(1, &vk.DeviceTable{}, PoolDeviceLocal, props)
	if !p.initialized {
		t.Fatal("expected pool to find a device-local memory type")
	}
	if p.memoryTypeIndex != 0 {
		t.Errorf("memoryTypeIndex = %d, want 0", p.memoryTypeIndex)
	}
}

func TestNewPoolUninitializedWithoutMatch(t *testing.T) {
	props := &vk.PhysicalDeviceMemoryProperties{MemoryTypeCount: 1}
	props.MemoryTypes[0] = vk.MemoryType{PropertyFlags: vk.MemoryPropertyDeviceLocalBit}
	p := NewPool(1, &vk.DeviceTable{}, PoolHostVisibleCached, props)
	if p.initialized {
		t.Fatal("expected pool to stay uninitialized with no matching memory type")
	}
	if _, err := p.Allocate(64, 16); err == nil {
		t.Fatal("expected Allocate to fail on an uninitialized pool")
	}
}

func TestAlignUp(t *testing.T) {
	tests := []struct{ offset, alignment, want uint64 }{
		{0, 16, 0},
		{1, 16, 16},
		{16, 16, 16},
		{17, 16, 32},
		{255, 256, 256},
	}
	for _, tt := range tests {
		if got := alignUp(tt.offset, tt.alignment); got != tt.want {
			t.Errorf("alignUp(%d, %d) = %d, want %d", tt.offset, tt.alignment, got, tt.want)
		}
	}
}

func TestSlabFirstFitNonOverlapping(t *testing.T) {
	s := newSlab(1, SlabSize, 0)

	idx, off, ok := s.firstFit(1024, 16)
	if !ok || off != 0 {
		t.Fatalf("first allocation: off=%d ok=%v", off, ok)
	}
	s.insertAt(idx, off, 1024)

	idx2, off2, ok2 := s.firstFit(2048, 256)
	if !ok2 {
		t.Fatal("expected second allocation to fit")
	}
	if off2%256 != 0 {
		t.Errorf("offset %d not aligned to 256", off2)
	}
	if off2 < 1024 {
		t.Errorf("second allocation at %d overlaps the first [0,1024)", off2)
	}
	s.insertAt(idx2, off2, 2048)

	for i, a := range s.allocs {
		if a.offset+a.size > s.size {
			t.Errorf("region %d exceeds slab bounds: %+v", i, a)
		}
	}
}

func TestSlabExactSizeFitsSingleSlab(t *testing.T) {
	s := newSlab(1, SlabSize, 0)
	_, off, ok := s.firstFit(SlabSize, 1)
	if !ok || off != 0 {
		t.Fatalf("a request of exactly SlabSize should be served from the slab itself: off=%d ok=%v", off, ok)
	}
}

func TestSlabFreeThenReuse(t *testing.T) {
	s := newSlab(1, SlabSize, 0)
	idx, off, _ := s.firstFit(4096, 16)
	s.insertAt(idx, off, 4096)

	if !s.free(off) {
		t.Fatal("expected free to find the live allocation")
	}

	idx2, off2, ok := s.firstFit(4096, 16)
	if !ok || off2 != off {
		t.Errorf("expected the freed region to be reused at the same offset, got off=%d ok=%v", off2, ok)
	}
	_ = idx2
}

func TestSlabFreeUnknownOffsetFails(t *testing.T) {
	s := newSlab(1, SlabSize, 0)
	if s.free(12345) {
		t.Error("freeing an offset with no live allocation must fail")
	}
}
