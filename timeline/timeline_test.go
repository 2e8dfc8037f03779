package timeline

import (
	"testing"

	"github.com/LynnColeArt/kronos-compute/vk"
)

func TestAddToBatchHintsAtThreshold(t *testing.T) {
	// A driverless DeviceTable makes CreateSemaphore fail, so exercise the
	// batch bookkeeping directly against a pre-populated state.
	m := NewManager(1, &vk.DeviceTable{}, 4)
	queue := vk.Queue(1)
	m.timelines[queue] = &state{batch: &batch{}}

	var lastHint bool
	var err error
	for i := 0; i < 4; i++ {
		lastHint, err = m.AddToBatch(queue, vk.CommandBuffer(uint64(i)+1))
		if err != nil {
			t.Fatalf("AddToBatch: %v", err)
		}
	}
	if !lastHint {
		t.Error("expected AddToBatch to hint true once the batch reaches its threshold")
	}
}

func TestAddToBatchBelowThresholdDoesNotHint(t *testing.T) {
	m := NewManager(1, &vk.DeviceTable{}, 16)
	queue := vk.Queue(1)
	m.timelines[queue] = &state{batch: &batch{}}

	hint, err := m.AddToBatch(queue, vk.CommandBuffer(1))
	if err != nil {
		t.Fatalf("AddToBatch: %v", err)
	}
	if hint {
		t.Error("a single command buffer should not reach a threshold of 16")
	}
}

func TestAddToBatchWithoutActiveBatchFails(t *testing.T) {
	m := NewManager(1, &vk.DeviceTable{}, 16)
	if _, err := m.AddToBatch(vk.Queue(1), vk.CommandBuffer(1)); err == nil {
		t.Error("expected an error adding to a queue with no open batch")
	}
}

func TestSubmitBatchEmptyIsNoop(t *testing.T) {
	m := NewManager(1, &vk.DeviceTable{}, 16)
	queue := vk.Queue(1)
	m.timelines[queue] = &state{batch: &batch{}}

	value, err := m.SubmitBatch(queue, 0)
	if err != nil {
		t.Fatalf("SubmitBatch: %v", err)
	}
	if value != 0 {
		t.Errorf("expected a no-op submit of an empty batch to return 0, got %d", value)
	}
}

func TestStatsAverageBatchSize(t *testing.T) {
	m := NewManager(1, &vk.DeviceTable{}, 16)
	m.stats.TotalSubmissions = 2
	m.stats.TotalCommandBuffers = 20
	m.stats.AverageBatchSize = float64(m.stats.TotalCommandBuffers) / float64(m.stats.TotalSubmissions)

	stats := m.Stats()
	if stats.AverageBatchSize != 10 {
		t.Errorf("AverageBatchSize = %v, want 10", stats.AverageBatchSize)
	}
}

func TestWaitTimelineUnknownQueueFails(t *testing.T) {
	m := NewManager(1, &vk.DeviceTable{}, 16)
	if err := m.WaitTimeline(vk.Queue(99), 1, 0); err == nil {
		t.Error("expected an error waiting on a queue with no timeline")
	}
}
