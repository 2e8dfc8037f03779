package vk

import "testing"

func TestResultSucceeded(t *testing.T) {
	tests := []struct {
		name string
		r    Result
		want bool
	}{
		{"success", Success, true},
		{"not ready", NotReady, true},
		{"incomplete", Incomplete, true},
		{"init failed", ErrorInitializationFailed, false},
		{"device lost", ErrorDeviceLost, false},
		{"out of pool memory", ErrorOutOfPoolMemory, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Succeeded(); got != tt.want {
				t.Errorf("Succeeded() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueueFlagsComputeBit(t *testing.T) {
	flags := QueueComputeBit
	if flags&QueueComputeBit == 0 {
		t.Error("QueueComputeBit should be set in itself")
	}

	combined := QueueFlags(0)
	combined |= QueueComputeBit
	if combined&QueueComputeBit == 0 {
		t.Error("QueueComputeBit should survive an OR into a zero value")
	}
}

func TestBufferUsageFlagsCombine(t *testing.T) {
	combined := BufferUsageStorageBufferBit | BufferUsageTransferSrcBit
	if combined&BufferUsageStorageBufferBit == 0 {
		t.Error("combined flags should still report the storage bit")
	}
	if combined&BufferUsageTransferSrcBit == 0 {
		t.Error("combined flags should still report the transfer-src bit")
	}
	if combined&BufferUsageTransferDstBit != 0 {
		t.Error("combined flags should not report a bit that was never OR'd in")
	}
}
