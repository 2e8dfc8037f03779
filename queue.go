package kronos

import (
	"github.com/LynnColeArt/kronos-compute/compute"
	"github.com/LynnColeArt/kronos-compute/vk"
)

// Queue is a device's compute queue.
type Queue struct {
	core   *compute.Core
	device vk.Device
	handle vk.Queue
}

// WaitIdle blocks until every operation submitted on this queue has
// completed.
func (q *Queue) WaitIdle() error {
	if res := q.core.QueueWaitIdle(q.device, q.handle); !res.Succeeded() {
		return errorFromResult("QueueWaitIdle", res)
	}
	return nil
}

// Flush forces any command buffers batched against this queue since the
// last threshold-triggered flush to submit now.
func (q *Queue) Flush() error {
	if res := q.core.QueueFlush(q.device, q.handle); !res.Succeeded() {
		return errorFromResult("QueueFlush", res)
	}
	return nil
}
