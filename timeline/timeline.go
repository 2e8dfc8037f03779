// Package timeline implements per-queue timeline-semaphore batching: many
// command buffer submissions coalesce into one vkQueueSubmit call that
// signals the queue's timeline semaphore at a monotonically increasing
// value, so cross-queue dependencies stay expressible as wait values
// instead of per-submit fences. Grounded on hal/vulkan/fence.go's
// timeline-semaphore dual-path abstraction and
// original_source/src/implementation/timeline_batching.rs's
// TimelineManager/BatchSubmission shape.
package timeline

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/LynnColeArt/kronos-compute/kerr"
	"github.com/LynnColeArt/kronos-compute/vk"
)

// DefaultBatchSize is the submission count at which AddToBatch hints the
// caller to flush, per spec.md §4.7.
const DefaultBatchSize = 16

// BatchCapacity is the pre-sized command-buffer capacity a batch
// reserves, matching original_source's `Vec::with_capacity(256)`.
const BatchCapacity = 256

// wait is one accumulated cross-queue wait dependency.
type wait struct {
	semaphore vk.Semaphore
	value     uint64
	stage     vk.PipelineStageFlags
}

// batch accumulates command buffers and wait dependencies between
// BeginBatch and SubmitBatch.
type batch struct {
	commandBuffers []vk.CommandBuffer
	waits          []wait
}

// state is the per-queue timeline semaphore plus its pending batch.
type state struct {
	semaphore    vk.Semaphore
	currentValue uint64
	pendingCount uint32
	batch        *batch
}

// Stats mirrors original_source's BatchStats for observability.
type Stats struct {
	TotalSubmissions    uint64
	TotalCommandBuffers uint64
	AverageBatchSize    float64
	TimelineWaits       uint64
}

// Manager owns one timeline semaphore and batch per queue for one
// device. A Manager is safe for concurrent use from multiple queues;
// each queue's state is independent.
type Manager struct {
	mu         sync.Mutex
	device     vk.Device
	table      *vk.DeviceTable
	batchSize  uint32
	timelines  map[vk.Queue]*state
	stats      Stats
}

// NewManager creates a Manager for one device. batchSize overrides
// DefaultBatchSize when non-zero.
func NewManager(device vk.Device, table *vk.DeviceTable, batchSize uint32) *Manager {
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}
	return &Manager{
		device:    device,
		table:     table,
		batchSize: batchSize,
		timelines: make(map[vk.Queue]*state),
	}
}

// getOrCreateTimeline lazily creates the timeline semaphore for a queue,
// per spec.md §4.7's get_queue_timeline.
func (m *Manager) getOrCreateTimeline(queue vk.Queue) (*state, error) {
	if s, ok := m.timelines[queue]; ok {
		return s, nil
	}

	typeInfo := vk.SemaphoreTypeCreateInfo{
		SType:         vk.StructureTypeSemaphoreTypeCreateInfo,
		SemaphoreType: vk.SemaphoreTypeTimeline,
		InitialValue:  0,
	}
	info := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
		PNext: unsafe.Pointer(&typeInfo),
	}
	var sem vk.Semaphore
	res := m.table.CreateSemaphore(m.device, &info, nil, &sem)
	if !res.Succeeded() {
		return nil, kerr.New(kerr.CategoryDriver, "timeline", "CreateSemaphore", fmt.Errorf("result %d", res))
	}

	s := &state{semaphore: sem}
	m.timelines[queue] = s
	return s, nil
}

// BeginBatch opens an empty batch for queue, creating its timeline
// semaphore on first use.
func (m *Manager) BeginBatch(queue vk.Queue) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.getOrCreateTimeline(queue)
	if err != nil {
		return err
	}
	if s.batch == nil {
		s.batch = &batch{commandBuffers: make([]vk.CommandBuffer, 0, BatchCapacity)}
	}
	return nil
}

// AddToBatch appends a command buffer to queue's open batch and reports
// whether the batch has reached the configured threshold, a hint that
// the caller should flush with SubmitBatch.
func (m *Manager) AddToBatch(queue vk.Queue, cb vk.CommandBuffer) (shouldSubmit bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.timelines[queue]
	if !ok || s.batch == nil {
		return false, kerr.New(kerr.CategoryProtocol, "timeline", "AddToBatch", fmt.Errorf("no active batch for queue"))
	}
	s.batch.commandBuffers = append(s.batch.commandBuffers, cb)
	s.pendingCount++

	return uint32(len(s.batch.commandBuffers)) >= m.batchSize, nil
}

// AddWait records a cross-queue wait dependency to be included in the
// next SubmitBatch call for queue.
func (m *Manager) AddWait(queue vk.Queue, semaphore vk.Semaphore, value uint64, stage vk.PipelineStageFlags) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.timelines[queue]
	if !ok || s.batch == nil {
		return kerr.New(kerr.CategoryProtocol, "timeline", "AddWait", fmt.Errorf("no active batch for queue"))
	}
	s.batch.waits = append(s.batch.waits, wait{semaphore: semaphore, value: value, stage: stage})
	return nil
}

// SubmitBatch builds and submits a single SubmitInfo carrying every
// accumulated wait dependency and command buffer, signals the queue's
// timeline semaphore at the incremented value, and optionally signals
// fence too. It returns the new timeline value. An empty batch is
// dropped without issuing a submit, returning 0.
func (m *Manager) SubmitBatch(queue vk.Queue, fence vk.Fence) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.timelines[queue]
	if !ok || s.batch == nil {
		return 0, kerr.New(kerr.CategoryProtocol, "timeline", "SubmitBatch", fmt.Errorf("no active batch for queue"))
	}
	b := s.batch
	s.batch = nil

	if len(b.commandBuffers) == 0 {
		return 0, nil
	}

	s.currentValue++
	signalValue := s.currentValue

	waitSemaphores := make([]vk.Semaphore, len(b.waits))
	waitValues := make([]uint64, len(b.waits))
	waitStages := make([]vk.PipelineStageFlags, len(b.waits))
	for i, w := range b.waits {
		waitSemaphores[i] = w.semaphore
		waitValues[i] = w.value
		waitStages[i] = w.stage
	}

	timelineInfo := vk.TimelineSemaphoreSubmitInfo{
		SType:                     vk.StructureTypeTimelineSemaphoreSubmitInfo,
		WaitSemaphoreValueCount:   uint32(len(waitValues)),
		SignalSemaphoreValueCount: 1,
		PSignalSemaphoreValues:    &signalValue,
	}
	if len(waitValues) > 0 {
		timelineInfo.PWaitSemaphoreValues = &waitValues[0]
	}

	submitInfo := vk.SubmitInfo{
		SType:                vk.StructureTypeSubmitInfo,
		PNext:                unsafe.Pointer(&timelineInfo),
		CommandBufferCount:   uint32(len(b.commandBuffers)),
		PCommandBuffers:      &b.commandBuffers[0],
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    &s.semaphore,
	}
	if len(waitSemaphores) > 0 {
		submitInfo.WaitSemaphoreCount = uint32(len(waitSemaphores))
		submitInfo.PWaitSemaphores = &waitSemaphores[0]
		submitInfo.PWaitDstStageMask = &waitStages[0]
	}

	res := m.table.QueueSubmit(queue, 1, &submitInfo, fence)
	if !res.Succeeded() {
		return 0, kerr.New(kerr.CategoryDriver, "timeline", "QueueSubmit", fmt.Errorf("result %d", res))
	}

	m.stats.TotalSubmissions++
	m.stats.TotalCommandBuffers += uint64(len(b.commandBuffers))
	m.stats.AverageBatchSize = float64(m.stats.TotalCommandBuffers) / float64(m.stats.TotalSubmissions)

	s.pendingCount = 0
	return signalValue, nil
}

// WaitTimeline blocks until queue's timeline semaphore reaches value or
// timeout nanoseconds elapse, via vkWaitSemaphores. There is no fallback
// to a fence inside the core if the driver lacks WaitSemaphores; its
// absence is reported as a missing-function error, per spec.md §4.7.
func (m *Manager) WaitTimeline(queue vk.Queue, value uint64, timeout uint64) error {
	m.mu.Lock()
	s, ok := m.timelines[queue]
	m.mu.Unlock()
	if !ok {
		return kerr.New(kerr.CategoryProtocol, "timeline", "WaitTimeline", fmt.Errorf("no timeline for queue"))
	}
	if m.table == nil || m.table.WaitSemaphores == nil {
		return kerr.New(kerr.CategoryFunctionPointer, "timeline", "WaitTimeline", kerr.ErrFunctionPointerMissing)
	}

	info := vk.SemaphoreWaitInfo{
		SType:          vk.StructureTypeSemaphoreWaitInfo,
		SemaphoreCount: 1,
		PSemaphores:    &s.semaphore,
		PValues:        &value,
	}
	res := m.table.WaitSemaphores(m.device, &info, timeout)
	if res != vk.Success && res != vk.Timeout {
		return kerr.New(kerr.CategoryDriver, "timeline", "WaitSemaphores", fmt.Errorf("result %d", res))
	}

	m.mu.Lock()
	m.stats.TimelineWaits++
	m.mu.Unlock()
	return nil
}

// Stats returns a snapshot of the manager's batching statistics.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}
