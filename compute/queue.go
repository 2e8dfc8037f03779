package compute

import (
	"unsafe"

	"github.com/LynnColeArt/kronos-compute/kerr"
	"github.com/LynnColeArt/kronos-compute/vk"
)

func submitWaitSemaphores(info *vk.SubmitInfo) []vk.Semaphore {
	if info.WaitSemaphoreCount == 0 {
		return nil
	}
	return unsafe.Slice(info.PWaitSemaphores, info.WaitSemaphoreCount)
}

func submitCommandBuffers(info *vk.SubmitInfo) []vk.CommandBuffer {
	if info.CommandBufferCount == 0 {
		return nil
	}
	return unsafe.Slice(info.PCommandBuffers, info.CommandBufferCount)
}

func submitWaitDstStageMask(info *vk.SubmitInfo) []vk.PipelineStageFlags {
	if info.WaitSemaphoreCount == 0 || info.PWaitDstStageMask == nil {
		return nil
	}
	return unsafe.Slice(info.PWaitDstStageMask, info.WaitSemaphoreCount)
}

// timelineWaitValues reads a chained vk.TimelineSemaphoreSubmitInfo's
// PWaitSemaphoreValues out of info.PNext, returning nil when no such
// struct is chained (a plain binary-semaphore submit).
func timelineWaitValues(info *vk.SubmitInfo) []uint64 {
	if info.PNext == nil {
		return nil
	}
	sType := (*vk.StructureType)(info.PNext)
	if *sType != vk.StructureTypeTimelineSemaphoreSubmitInfo {
		return nil
	}
	tsInfo := (*vk.TimelineSemaphoreSubmitInfo)(info.PNext)
	if tsInfo.WaitSemaphoreValueCount == 0 || tsInfo.PWaitSemaphoreValues == nil {
		return nil
	}
	return unsafe.Slice(tsInfo.PWaitSemaphoreValues, tsInfo.WaitSemaphoreValueCount)
}

// QueueSubmit routes every submission through the device's timeline
// batching manager instead of issuing one vkQueueSubmit per call: it
// opens a batch, enqueues every command buffer and wait semaphore info
// carries, and flushes immediately once AddToBatch reports the
// configured threshold reached, matching spec.md §4.7's "one submit per
// flush" batching policy. A non-null fence forces an immediate flush,
// since a caller waiting on that fence needs the submission to have
// actually happened. The client-supplied signal semaphores in info are
// not individually signaled: the timeline manager signals its own
// per-queue timeline semaphore instead, which WaitTimeline resolves
// against; QueueWaitIdle submits any batch still open before waiting.
func (c *Core) QueueSubmit(device vk.Device, queue vk.Queue, infos []vk.SubmitInfo, fence vk.Fence) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	if rec.mock {
		return vk.Success
	}

	if beginErr := rec.timelines.BeginBatch(queue); beginErr != nil {
		return vk.ErrorInitializationFailed
	}

	shouldSubmit := false
	for i := range infos {
		info := &infos[i]
		waitSemaphores := submitWaitSemaphores(info)
		waitStages := submitWaitDstStageMask(info)
		waitValues := timelineWaitValues(info)
		for j, sem := range waitSemaphores {
			var value uint64
			if j < len(waitValues) {
				value = waitValues[j]
			}
			var stage vk.PipelineStageFlags
			if j < len(waitStages) {
				stage = waitStages[j]
			}
			if waitErr := rec.timelines.AddWait(queue, sem, value, stage); waitErr != nil {
				return vk.ErrorInitializationFailed
			}
		}
		for _, cb := range submitCommandBuffers(info) {
			cbr, lookupErr := c.cmdBufferRecord(rec, cb)
			if lookupErr != nil {
				return vk.ErrorInitializationFailed
			}
			if submitErr := cbr.tracker.Submit(); submitErr != nil {
				return kerr.ToResult(submitErr)
			}
			more, addErr := rec.timelines.AddToBatch(queue, cb)
			if addErr != nil {
				return vk.ErrorInitializationFailed
			}
			shouldSubmit = shouldSubmit || more
		}
	}

	if fence != 0 {
		shouldSubmit = true
	}
	if !shouldSubmit {
		return vk.Success
	}

	if _, submitErr := rec.timelines.SubmitBatch(queue, fence); submitErr != nil {
		return vk.ErrorInitializationFailed
	}
	return vk.Success
}

// QueueFlush forces any command buffers accumulated for queue since the
// last threshold-triggered flush to submit now, without waiting for the
// batch to reach its configured size. With nothing accumulated it submits
// nothing and succeeds.
func (c *Core) QueueFlush(device vk.Device, queue vk.Queue) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	if rec.mock {
		return vk.Success
	}
	if beginErr := rec.timelines.BeginBatch(queue); beginErr != nil {
		return vk.ErrorInitializationFailed
	}
	if _, submitErr := rec.timelines.SubmitBatch(queue, 0); submitErr != nil {
		return vk.ErrorInitializationFailed
	}
	return vk.Success
}
