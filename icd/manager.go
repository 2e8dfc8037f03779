package icd

import (
	"fmt"
	"sync"

	"github.com/LynnColeArt/kronos-compute/config"
	"github.com/LynnColeArt/kronos-compute/kerr"
	"github.com/LynnColeArt/kronos-compute/registry"
	"github.com/LynnColeArt/kronos-compute/vk"
)

// Manager owns every loaded ICD and decides, per spec.md §4.2, whether the
// process runs in single-ICD or aggregated mode. It is built once at
// startup and torn down once at shutdown; there is no reconfiguration.
type Manager struct {
	mu         sync.RWMutex
	aggregated bool
	icds       []*Loaded
	globals    []*vk.GlobalTable
}

// NewManager discovers, loads, and selects ICDs according to cfg, then
// picks single vs aggregated mode.
func NewManager(cfg config.Config) (*Manager, error) {
	loaded, err := DiscoverAndLoad(cfg)
	if err != nil {
		return nil, err
	}
	selected := Select(loaded, cfg)

	m := &Manager{aggregated: cfg.AggregateICD}
	for i := range selected {
		l := selected[i]
		m.icds = append(m.icds, &l)
		m.globals = append(m.globals, l.LoadGlobal())
	}

	if !m.aggregated && len(m.icds) > 1 {
		// Single-ICD mode keeps only the first (already selection-ordered,
		// hardware-preferred) candidate; the rest are closed immediately.
		for _, l := range m.icds[1:] {
			l.Close()
		}
		m.icds = m.icds[:1]
		m.globals = m.globals[:1]
	}

	return m, nil
}

// Aggregated reports whether the manager is dispatching across multiple
// ICDs simultaneously.
func (m *Manager) Aggregated() bool {
	return m.aggregated
}

// IcdCount returns the number of ICDs currently held open.
func (m *Manager) IcdCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.icds)
}

// Icd returns the Loaded record and global table for an ICD index, used by
// CreateInstance to fan out (aggregated) or address the sole ICD (single).
func (m *Manager) Icd(index uint32) (*Loaded, *vk.GlobalTable, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if int(index) >= len(m.icds) {
		return nil, nil, kerr.New(kerr.CategoryProtocol, "icd", "Icd", fmt.Errorf("icd index %d out of range (%d loaded)", index, len(m.icds)))
	}
	return m.icds[index], m.globals[index], nil
}

// Icds returns every loaded ICD paired with its global table, in selection
// order, for callers that must fan out (CreateInstance in aggregated mode).
func (m *Manager) Icds() ([]*Loaded, []*vk.GlobalTable) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	icds := make([]*Loaded, len(m.icds))
	copy(icds, m.icds)
	globals := make([]*vk.GlobalTable, len(m.globals))
	copy(globals, m.globals)
	return icds, globals
}

// RouteFor resolves which ICD index a routed handle must dispatch through,
// and rejects cross-ICD use per spec.md §3's "crossing ICDs is a fatal
// contract violation".
func RouteFor[T any](routed registry.Routed[T], expected uint32) error {
	if routed.Route.IcdIndex != expected {
		return kerr.New(kerr.CategoryProtocol, "icd", "RouteFor", kerr.ErrCrossICDRouting)
	}
	return nil
}

// Close releases every held ICD library. Safe to call once after teardown
// of every derived instance/device.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.icds {
		l.Close()
	}
	m.icds = nil
	m.globals = nil
}
