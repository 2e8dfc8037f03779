// Package descriptor implements the persistent descriptor manager: "set 0"
// storage-buffer descriptor sets created once per (device, ordered buffer
// tuple) and reused verbatim across dispatches. Grounded on
// hal/vulkan/descriptor.go's pool-growth allocator shape, with the
// fingerprint cache-key algorithm ported from
// original_source/src/implementation/persistent_descriptors.rs.
package descriptor

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/LynnColeArt/kronos-compute/kerr"
	"github.com/LynnColeArt/kronos-compute/logging"
	"github.com/LynnColeArt/kronos-compute/vk"
)

const (
	fingerprintPrime1 = 0x9e3779b97f4a7c15
	fingerprintPrime2 = 0x9e3779b185ebca87
)

// Fingerprint computes the 64-bit cache key:
// deviceKey * P1 XOR fold(buffers), where the fold runs a multiply-
// accumulator over the buffer handles in order (acc = acc*P2 ^ rotl(b, 13)),
// so the same buffers bound in a different order yield a different key.
// Collisions are possible by construction; Entry.Matches performs the
// mandatory byte-equality check before a cache hit is trusted.
func Fingerprint(deviceKey uint64, buffers []vk.Buffer) uint64 {
	var acc uint64
	for _, b := range buffers {
		acc = acc*fingerprintPrime2 ^ rotl64(uint64(b), 13)
	}
	return deviceKey*fingerprintPrime1 ^ acc
}

func rotl64(x uint64, k uint) uint64 {
	return (x << k) | (x >> (64 - k))
}

// Entry is the stored record for one cached persistent descriptor set.
type Entry struct {
	Set        vk.DescriptorSet
	Buffers    []vk.Buffer
	Generation uint64
}

// Matches reports whether buffers is byte-for-byte equal (same length,
// same order, same handle values) to the tuple this entry was created
// for — the check spec.md §9 insists must always follow the fingerprint
// lookup, since the fingerprint alone cannot rule out collisions.
func (e *Entry) Matches(buffers []vk.Buffer) bool {
	if len(e.Buffers) != len(buffers) {
		return false
	}
	a := make([]byte, len(e.Buffers)*8)
	b := make([]byte, len(buffers)*8)
	for i, h := range e.Buffers {
		binary.LittleEndian.PutUint64(a[i*8:], uint64(h))
	}
	for i, h := range buffers {
		binary.LittleEndian.PutUint64(b[i*8:], uint64(h))
	}
	return bytes.Equal(a, b)
}

// Manager caches persistent descriptor sets for one device. Layouts are
// keyed by binding count since every layout is a homogeneous sequence of
// storage-buffer bindings (spec.md §4.4's "set 0" invariant).
type Manager struct {
	mu         sync.Mutex
	device     vk.Device
	table      *vk.DeviceTable
	deviceKey  uint64
	poolSize   uint32

	pool       vk.DescriptorPool
	layouts    map[uint32]vk.DescriptorSetLayout
	cache      map[uint64]*Entry
	generation uint64

	writesIssued uint64
	hits         uint64
}

// NewManager builds a Manager for one device. poolSize seeds the pool's
// MaxSets (spec.md §4.4: "reference target: up to 1000 sets with 10000
// storage-buffer descriptors").
func NewManager(device vk.Device, table *vk.DeviceTable, deviceKey uint64, poolSize uint32) *Manager {
	return &Manager{
		device:    device,
		table:     table,
		deviceKey: deviceKey,
		poolSize:  poolSize,
		layouts:   make(map[uint32]vk.DescriptorSetLayout),
		cache:     make(map[uint64]*Entry),
	}
}

// ensurePool lazily creates the per-device descriptor pool with
// FREE_DESCRIPTOR_SET enabled, sized generously per spec.md §4.4.
func (m *Manager) ensurePool() error {
	if m.pool != 0 {
		return nil
	}
	poolSizes := []vk.DescriptorPoolSize{
		{Type: vk.DescriptorTypeStorageBuffer, DescriptorCount: m.poolSize * 10},
	}
	info := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		Flags:         vk.DescriptorPoolCreateFreeDescriptorSetBit,
		MaxSets:       m.poolSize,
		PoolSizeCount: uint32(len(poolSizes)),
		PPoolSizes:    &poolSizes[0],
	}
	var pool vk.DescriptorPool
	res := m.table.CreateDescriptorPool(m.device, &info, nil, &pool)
	if !res.Succeeded() {
		return kerr.New(kerr.CategoryDriver, "descriptor", "CreateDescriptorPool", fmt.Errorf("result %d", res))
	}
	m.pool = pool
	return nil
}

// ensureLayout lazily creates the set-0 layout for a given binding count:
// a homogeneous sequence of storage-buffer bindings visible to the compute
// stage with no immutable samplers.
func (m *Manager) ensureLayout(bindingCount uint32) (vk.DescriptorSetLayout, error) {
	if layout, ok := m.layouts[bindingCount]; ok {
		return layout, nil
	}
	bindings := make([]vk.DescriptorSetLayoutBinding, bindingCount)
	for i := range bindings {
		bindings[i] = vk.DescriptorSetLayoutBinding{
			Binding:         uint32(i),
			DescriptorType:  vk.DescriptorTypeStorageBuffer,
			DescriptorCount: 1,
			StageFlags:      vk.ShaderStageComputeBit,
		}
	}
	info := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: bindingCount,
		PBindings:    &bindings[0],
	}
	var layout vk.DescriptorSetLayout
	res := m.table.CreateDescriptorSetLayout(m.device, &info, nil, &layout)
	if !res.Succeeded() {
		return 0, kerr.New(kerr.CategoryDriver, "descriptor", "CreateDescriptorSetLayout", fmt.Errorf("result %d", res))
	}
	m.layouts[bindingCount] = layout
	return layout, nil
}

// Get returns the persistent descriptor set for (device, buffers),
// creating and writing it on first use. Subsequent calls with a
// byte-equal buffer tuple return the cached set without issuing any
// UpdateDescriptorSets call.
func (m *Manager) Get(buffers []vk.Buffer) (vk.DescriptorSet, error) {
	key := Fingerprint(m.deviceKey, buffers)

	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.cache[key]; ok && entry.Matches(buffers) {
		m.hits++
		return entry.Set, nil
	}

	if err := m.ensurePool(); err != nil {
		return 0, err
	}
	layout, err := m.ensureLayout(uint32(len(buffers)))
	if err != nil {
		return 0, err
	}

	allocInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     m.pool,
		DescriptorSetCount: 1,
		PSetLayouts:        &layout,
	}
	var set vk.DescriptorSet
	res := m.table.AllocateDescriptorSets(m.device, &allocInfo, &set)
	if !res.Succeeded() {
		return 0, kerr.New(kerr.CategoryDriver, "descriptor", "AllocateDescriptorSets", fmt.Errorf("result %d", res))
	}

	writes := make([]vk.WriteDescriptorSet, len(buffers))
	infos := make([]vk.DescriptorBufferInfo, len(buffers))
	for i, b := range buffers {
		infos[i] = vk.DescriptorBufferInfo{Buffer: b, Offset: 0, Range: vk.WholeSize}
		writes[i] = vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          set,
			DstBinding:      uint32(i),
			DescriptorCount: 1,
			DescriptorType:  vk.DescriptorTypeStorageBuffer,
			PBufferInfo:     &infos[i],
		}
	}
	m.table.UpdateDescriptorSets(m.device, uint32(len(writes)), &writes[0], 0, nil)
	m.writesIssued += uint64(len(writes))

	stored := make([]vk.Buffer, len(buffers))
	copy(stored, buffers)
	m.generation++
	m.cache[key] = &Entry{Set: set, Buffers: stored, Generation: m.generation}

	logging.Subsystem("descriptor").Debug("created persistent descriptor set",
		"bindingCount", len(buffers), "fingerprint", key)

	return set, nil
}

// Stats reports cache efficiency for tests and observability.
type Stats struct {
	Entries      int
	WritesIssued uint64
	Hits         uint64
}

func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{Entries: len(m.cache), WritesIssued: m.writesIssued, Hits: m.hits}
}

// Destroy tears down the pool and layouts. Evictions otherwise only happen
// on device teardown, per spec.md §3.
func (m *Manager) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pool != 0 {
		m.table.DestroyDescriptorPool(m.device, m.pool, nil)
		m.pool = 0
	}
	for _, layout := range m.layouts {
		m.table.DestroyDescriptorSetLayout(m.device, layout, nil)
	}
	m.layouts = make(map[uint32]vk.DescriptorSetLayout)
	m.cache = make(map[uint64]*Entry)
}
