package barrier

import (
	"testing"

	"github.com/LynnColeArt/kronos-compute/vk"
)

func TestVendorFromID(t *testing.T) {
	tests := []struct {
		id   uint32
		want Vendor
	}{
		{0x1002, VendorAMD},
		{0x10DE, VendorNVIDIA},
		{0x8086, VendorIntel},
		{0x9999, VendorOther},
	}
	for _, tt := range tests {
		if got := VendorFromID(tt.id); got != tt.want {
			t.Errorf("VendorFromID(0x%x) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestConfigForUploadToRead(t *testing.T) {
	cfg := ConfigFor(VendorAMD, UploadToRead)
	if cfg.SrcStage != vk.PipelineStageHostBit || cfg.DstStage != vk.PipelineStageComputeShaderBit {
		t.Errorf("unexpected stages: %+v", cfg)
	}
	if cfg.SrcAccess != vk.AccessHostWriteBit || cfg.DstAccess != vk.AccessShaderReadBit {
		t.Errorf("unexpected access masks: %+v", cfg)
	}
}

func TestClassifyEqualAccessNeedsNoBarrier(t *testing.T) {
	if _, needed := classify(vk.AccessShaderReadBit, vk.AccessShaderReadBit); needed {
		t.Error("equal access masks should not require a barrier")
	}
}

func TestTrackerElisionSequence(t *testing.T) {
	// HOST_WRITE -> SHADER_READ -> SHADER_READ -> SHADER_WRITE -> SHADER_READ
	// should emit exactly 3 barriers with the duplicate SHADER_READ elided.
	tr := NewTracker(VendorOther)
	buf := vk.Buffer(1)

	sequence := []vk.AccessFlags{
		vk.AccessHostWriteBit,
		vk.AccessShaderReadBit,
		vk.AccessShaderReadBit,
		vk.AccessShaderWriteBit,
		vk.AccessShaderReadBit,
	}
	for _, access := range sequence {
		tr.TrackAccess(buf, access, 0, vk.WholeSize)
	}

	stats := tr.Stats()
	if stats.TotalBarriers != 3 {
		t.Errorf("TotalBarriers = %d, want 3", stats.TotalBarriers)
	}
	if stats.ElidedBarriers != 1 {
		t.Errorf("ElidedBarriers = %d, want 1", stats.ElidedBarriers)
	}
}

func TestTrackerFirstAccessNeedsNoBarrier(t *testing.T) {
	tr := NewTracker(VendorOther)
	tr.TrackAccess(vk.Buffer(1), vk.AccessShaderReadBit, 0, vk.WholeSize)
	stats := tr.Stats()
	if stats.TotalBarriers != 0 || stats.ElidedBarriers != 0 {
		t.Errorf("a buffer's first access should neither emit nor elide a barrier, got %+v", stats)
	}
}

func TestStatsPerDispatch(t *testing.T) {
	s := Stats{TotalBarriers: 5}
	if got := s.PerDispatch(10); got != 0.5 {
		t.Errorf("PerDispatch = %v, want 0.5", got)
	}
	if got := s.PerDispatch(0); got != 0 {
		t.Errorf("PerDispatch(0) = %v, want 0", got)
	}
}

func TestFlushNoopWhenEmpty(t *testing.T) {
	tr := NewTracker(VendorOther)
	var table vk.DeviceTable
	tr.Flush(&table, vk.CommandBuffer(1)) // must not panic with nil dispatch fn
}
