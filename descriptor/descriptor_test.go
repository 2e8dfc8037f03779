package descriptor

import (
	"testing"

	"github.com/LynnColeArt/kronos-compute/vk"
)

func TestFingerprintDeterministic(t *testing.T) {
	bufs := []vk.Buffer{1, 2, 3}
	a := Fingerprint(42, bufs)
	b := Fingerprint(42, bufs)
	if a != b {
		t.Errorf("Fingerprint not deterministic: %d vs %d", a, b)
	}
}

func TestFingerprintOrderSensitive(t *testing.T) {
	a := Fingerprint(42, []vk.Buffer{1, 2, 3})
	b := Fingerprint(42, []vk.Buffer{3, 2, 1})
	if a == b {
		t.Error("fingerprint should depend on buffer order")
	}
}

func TestEntryMatches(t *testing.T) {
	e := &Entry{Buffers: []vk.Buffer{1, 2, 3}}
	if !e.Matches([]vk.Buffer{1, 2, 3}) {
		t.Error("expected exact tuple to match")
	}
	if e.Matches([]vk.Buffer{1, 2, 4}) {
		t.Error("a differing handle must not match")
	}
	if e.Matches([]vk.Buffer{1, 2}) {
		t.Error("a shorter tuple must not match")
	}
}

func TestEntryMatchesGuardsFingerprintCollision(t *testing.T) {
	// Two different tuples can theoretically share a fingerprint; Matches
	// must reject the mismatch regardless of what the cache key says.
	e := &Entry{Buffers: []vk.Buffer{10, 20}}
	if e.Matches([]vk.Buffer{20, 10}) {
		t.Error("reordered tuple must not be treated as equal")
	}
}

func TestGetFailsWithoutDriver(t *testing.T) {
	// No real ICD is loaded in this test; the nil-guarded DeviceTable
	// wrapper methods return ErrorIncompatibleDriver, which Get must
	// surface as an error rather than panicking.
	var table vk.DeviceTable
	m := NewManager(1, &table, 1, 1000)

	if _, err := m.Get([]vk.Buffer{1, 2}); err == nil {
		t.Fatal("expected an error when no driver is attached")
	}
}

func TestStatsStartsEmpty(t *testing.T) {
	var table vk.DeviceTable
	m := NewManager(1, &table, 1, 1000)
	s := m.Stats()
	if s.Entries != 0 || s.WritesIssued != 0 || s.Hits != 0 {
		t.Errorf("expected zero-value stats, got %+v", s)
	}
}
