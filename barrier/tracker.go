package barrier

import (
	"sync"

	"github.com/LynnColeArt/kronos-compute/vk"
)

// Stats mirrors original_source's BarrierStats for observability: total
// and elided counts, plus a per-category breakdown.
type Stats struct {
	TotalBarriers    uint64
	ElidedBarriers   uint64
	UploadBarriers   uint64
	ReadWriteBarriers uint64
	WriteReadBarriers uint64
}

// PerDispatch returns the total-barriers-to-dispatch-count ratio spec.md
// §4.6's target metric is expressed against.
func (s Stats) PerDispatch(dispatchCount uint64) float64 {
	if dispatchCount == 0 {
		return 0
	}
	return float64(s.TotalBarriers) / float64(dispatchCount)
}

// pendingBarrier is one accumulated buffer memory barrier awaiting flush.
type pendingBarrier struct {
	buffer   vk.Buffer
	category Category
	offset   uint64
	size     uint64
}

// Tracker holds one buffer access map and pending batch per command
// buffer recording session. A new Tracker should be created each time a
// command buffer begins recording, matching the lifetime a real batch of
// barriers is flushed within.
type Tracker struct {
	mu     sync.Mutex
	vendor Vendor

	lastAccess map[vk.Buffer]vk.AccessFlags
	pending    []pendingBarrier
	stats      Stats
}

// NewTracker creates a Tracker for one command buffer recording session,
// targeting the given vendor's barrier profiles.
func NewTracker(vendor Vendor) *Tracker {
	return &Tracker{
		vendor:     vendor,
		lastAccess: make(map[vk.Buffer]vk.AccessFlags),
	}
}

// TrackAccess records a buffer access request, queuing a barrier if the
// transition from the buffer's last observed access requires one and
// counting an elision otherwise. Returns true when a barrier was queued.
func (t *Tracker) TrackAccess(buf vk.Buffer, newAccess vk.AccessFlags, offset, size uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	last, seen := t.lastAccess[buf]
	if !seen {
		// A buffer's first access has nothing to synchronize against.
		t.lastAccess[buf] = newAccess
		return false
	}

	category, needed := classify(last, newAccess)
	if !needed {
		t.stats.ElidedBarriers++
		return false
	}

	t.pending = append(t.pending, pendingBarrier{buffer: buf, category: category, offset: offset, size: size})
	t.lastAccess[buf] = newAccess

	t.stats.TotalBarriers++
	switch category {
	case UploadToRead:
		t.stats.UploadBarriers++
	case ReadToWrite:
		t.stats.ReadWriteBarriers++
	case WriteToRead:
		t.stats.WriteReadBarriers++
	}
	return true
}

// dominantCategory picks the category Flush uses for the single pipeline
// barrier call from the barriers pending in the current batch: any
// UploadToRead wins, then any WriteToRead, else ReadToWrite, per spec.md §4.6.
func (t *Tracker) dominantCategory() Category {
	dominant := ReadToWrite
	for _, p := range t.pending {
		switch p.category {
		case UploadToRead:
			return UploadToRead
		case WriteToRead:
			dominant = WriteToRead
		}
	}
	return dominant
}

// Flush emits a single vkCmdPipelineBarrier call covering every pending
// buffer barrier, using the dominant category's stage mask, then clears
// the batch. A Tracker with no pending barriers is a no-op.
func (t *Tracker) Flush(table *vk.DeviceTable, cb vk.CommandBuffer) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.pending) == 0 {
		return
	}

	category := t.dominantCategory()
	cfg := ConfigFor(t.vendor, category)

	barriers := make([]vk.BufferMemoryBarrier, len(t.pending))
	for i, p := range t.pending {
		pcfg := ConfigFor(t.vendor, p.category)
		barriers[i] = vk.BufferMemoryBarrier{
			SType:               vk.StructureTypeBufferMemoryBarrier,
			SrcAccessMask:       pcfg.SrcAccess,
			DstAccessMask:       pcfg.DstAccess,
			SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
			DstQueueFamilyIndex: vk.QueueFamilyIgnored,
			Buffer:              p.buffer,
			Offset:              p.offset,
			Size:                p.size,
		}
	}

	table.CmdPipelineBarrier(cb, cfg.SrcStage, cfg.DstStage, 0,
		0, nil, uint32(len(barriers)), &barriers[0], 0, nil)

	t.pending = t.pending[:0]
}

// Stats returns a snapshot of the tracker's accumulated counters.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}
