package compute

import (
	"unsafe"

	"github.com/LynnColeArt/kronos-compute/barrier"
	"github.com/LynnColeArt/kronos-compute/kerr"
	"github.com/LynnColeArt/kronos-compute/mocksync"
	"github.com/LynnColeArt/kronos-compute/vk"
)

func (c *Core) CreateCommandPool(device vk.Device, info *vk.CommandPoolCreateInfo) (vk.CommandPool, vk.Result) {
	if info == nil || info.SType != vk.StructureTypeCommandPoolCreateInfo {
		return 0, vk.ErrorInitializationFailed
	}
	rec, err := c.lookupDevice(device)
	if err != nil {
		return 0, vk.ErrorInitializationFailed
	}
	if rec.mock {
		return 1, vk.Success
	}
	var pool vk.CommandPool
	res := rec.table.CreateCommandPool(rec.device, info, nil, &pool)
	return pool, res
}

// DestroyCommandPool destroys pool and drops every commandBufferRecord
// this core tracks for command buffers it owned; the driver itself frees
// their storage implicitly, per vkDestroyCommandPool's own contract.
func (c *Core) DestroyCommandPool(device vk.Device, pool vk.CommandPool) {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return
	}
	var stale []uint64
	rec.cmdBuffers.Range(func(h uint64, cbr *commandBufferRecord) bool {
		if cbr.pool == pool {
			stale = append(stale, h)
		}
		return true
	})
	for _, h := range stale {
		rec.cmdBuffers.Remove(h)
	}
	if rec.mock {
		return
	}
	rec.table.DestroyCommandPool(rec.device, pool, nil)
}

// ResetCommandPool resets every command buffer this core tracks for pool
// back to Initial, per the CommandBuffer state machine's pool-reset rule,
// then resets the pool itself.
func (c *Core) ResetCommandPool(device vk.Device, pool vk.CommandPool) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	rec.cmdBuffers.Range(func(_ uint64, cbr *commandBufferRecord) bool {
		if cbr.pool == pool {
			cbr.tracker.PoolReset()
		}
		return true
	})
	if rec.mock {
		return vk.Success
	}
	return rec.table.ResetCommandPool(rec.device, pool, 0)
}

func (c *Core) AllocateCommandBuffers(device vk.Device, info *vk.CommandBufferAllocateInfo) ([]vk.CommandBuffer, vk.Result) {
	if info == nil || info.SType != vk.StructureTypeCommandBufferAllocateInfo {
		return nil, vk.ErrorInitializationFailed
	}
	rec, err := c.lookupDevice(device)
	if err != nil {
		return nil, vk.ErrorInitializationFailed
	}
	count := info.CommandBufferCount

	if rec.mock {
		out := make([]vk.CommandBuffer, count)
		for i := range out {
			rec.mu.Lock()
			rec.mockNextHandle++
			cb := vk.CommandBuffer(rec.mockNextHandle)
			rec.mu.Unlock()
			out[i] = cb
			rec.cmdBuffers.Insert(&commandBufferRecord{cb: cb, pool: info.CommandPool, tracker: mocksync.NewCommandBufferTracker()})
		}
		return out, vk.Success
	}

	cbs := make([]vk.CommandBuffer, count)
	res := rec.table.AllocateCommandBuffers(rec.device, info, &cbs[0])
	if !res.Succeeded() {
		return nil, res
	}
	for _, cb := range cbs {
		rec.cmdBuffers.Insert(&commandBufferRecord{cb: cb, pool: info.CommandPool, tracker: mocksync.NewCommandBufferTracker()})
	}
	return cbs, vk.Success
}

func (c *Core) FreeCommandBuffers(device vk.Device, pool vk.CommandPool, cbs []vk.CommandBuffer) {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return
	}
	for _, cb := range cbs {
		rec.cmdBuffers.Remove(uint64(cb))
	}
	if rec.mock || len(cbs) == 0 {
		return
	}
	rec.table.FreeCommandBuffers(rec.device, pool, uint32(len(cbs)), &cbs[0])
}

func (c *Core) cmdBufferRecord(rec *deviceRecord, cb vk.CommandBuffer) (*commandBufferRecord, error) {
	cbr, err := rec.cmdBuffers.MustLookup("compute", "commandBuffer", uint64(cb))
	if err != nil {
		return nil, kerr.New(kerr.CategoryProtocol, "compute", "commandBuffer", err)
	}
	return cbr, nil
}

// BeginCommandBuffer enforces the Initial -> Recording transition and
// opens a fresh barrier.Tracker for this recording session.
func (c *Core) BeginCommandBuffer(device vk.Device, cb vk.CommandBuffer, info *vk.CommandBufferBeginInfo) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	cbr, lookupErr := c.cmdBufferRecord(rec, cb)
	if lookupErr != nil {
		return vk.ErrorInitializationFailed
	}
	if beginErr := cbr.tracker.Begin(); beginErr != nil {
		return kerr.ToResult(beginErr)
	}
	cbr.barriers = barrier.NewTracker(rec.vendor)
	if rec.mock {
		return vk.Success
	}
	return rec.table.BeginCommandBuffer(cb, info)
}

// EndCommandBuffer flushes any barrier still pending for this recording
// session before ending it, so a forgotten CmdFlushBarriers call is
// never silently dropped.
func (c *Core) EndCommandBuffer(device vk.Device, cb vk.CommandBuffer) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	cbr, lookupErr := c.cmdBufferRecord(rec, cb)
	if lookupErr != nil {
		return vk.ErrorInitializationFailed
	}
	if !rec.mock && cbr.barriers != nil {
		cbr.barriers.Flush(rec.table, cb)
	}
	if endErr := cbr.tracker.End(); endErr != nil {
		return kerr.ToResult(endErr)
	}
	if rec.mock {
		return vk.Success
	}
	return rec.table.EndCommandBuffer(cb)
}

func (c *Core) ResetCommandBuffer(device vk.Device, cb vk.CommandBuffer) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	cbr, lookupErr := c.cmdBufferRecord(rec, cb)
	if lookupErr != nil {
		return vk.ErrorInitializationFailed
	}
	cbr.tracker.PoolReset()
	cbr.barriers = nil
	if rec.mock {
		return vk.Success
	}
	return rec.table.ResetCommandBuffer(cb, 0)
}

func (c *Core) CmdBindPipeline(device vk.Device, cb vk.CommandBuffer, pipeline vk.Pipeline) {
	rec, err := c.lookupDevice(device)
	if err != nil || rec.mock {
		return
	}
	rec.table.CmdBindPipeline(cb, vk.PipelineBindPointCompute, pipeline)
}

func (c *Core) CmdBindDescriptorSets(device vk.Device, cb vk.CommandBuffer, layout vk.PipelineLayout, firstSet uint32, sets []vk.DescriptorSet) {
	rec, err := c.lookupDevice(device)
	if err != nil || rec.mock || len(sets) == 0 {
		return
	}
	rec.table.CmdBindDescriptorSets(cb, vk.PipelineBindPointCompute, layout, firstSet, uint32(len(sets)), &sets[0], 0, nil)
}

// CmdPushConstants rejects any range over vk.MaxPushConstantBytes before
// reaching the driver, mirroring CreatePipelineLayout's ceiling check.
func (c *Core) CmdPushConstants(device vk.Device, cb vk.CommandBuffer, layout vk.PipelineLayout, offset, size uint32, values unsafe.Pointer) vk.Result {
	if size > vk.MaxPushConstantBytes {
		return kerr.ToResult(kerr.New(kerr.CategoryProtocol, "compute", "CmdPushConstants", kerr.ErrPushConstantTooLarge))
	}
	rec, err := c.lookupDevice(device)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	if rec.mock {
		return vk.Success
	}
	rec.table.CmdPushConstants(cb, layout, vk.ShaderStageComputeBit, offset, size, values)
	return vk.Success
}

func (c *Core) CmdDispatch(device vk.Device, cb vk.CommandBuffer, x, y, z uint32) {
	rec, err := c.lookupDevice(device)
	if err != nil || rec.mock {
		return
	}
	rec.table.CmdDispatch(cb, x, y, z)
}

func (c *Core) CmdDispatchIndirect(device vk.Device, cb vk.CommandBuffer, buf vk.Buffer, offset uint64) {
	rec, err := c.lookupDevice(device)
	if err != nil || rec.mock {
		return
	}
	rec.table.CmdDispatchIndirect(cb, buf, offset)
}

// CmdTrackBufferAccess records a buffer access against cb's recording
// session barrier tracker, queuing a barrier if the transition requires
// one. Callers use this around every CmdDispatch/CmdCopyBuffer that reads
// or writes a storage buffer, instead of building vk.BufferMemoryBarrier
// values by hand.
func (c *Core) CmdTrackBufferAccess(device vk.Device, cb vk.CommandBuffer, buf vk.Buffer, access vk.AccessFlags, offset, size uint64) {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return
	}
	cbr, lookupErr := c.cmdBufferRecord(rec, cb)
	if lookupErr != nil || cbr.barriers == nil {
		return
	}
	cbr.barriers.TrackAccess(buf, access, offset, size)
}

// CmdFlushBarriers issues the single pipeline barrier call covering every
// access CmdTrackBufferAccess has queued since the last flush.
func (c *Core) CmdFlushBarriers(device vk.Device, cb vk.CommandBuffer) {
	rec, err := c.lookupDevice(device)
	if err != nil || rec.mock {
		return
	}
	cbr, lookupErr := c.cmdBufferRecord(rec, cb)
	if lookupErr != nil || cbr.barriers == nil {
		return
	}
	cbr.barriers.Flush(rec.table, cb)
}

func (c *Core) CmdCopyBuffer(device vk.Device, cb vk.CommandBuffer, src, dst vk.Buffer, regions []vk.BufferCopy) {
	rec, err := c.lookupDevice(device)
	if err != nil || rec.mock || len(regions) == 0 {
		return
	}
	rec.table.CmdCopyBuffer(cb, src, dst, uint32(len(regions)), &regions[0])
}

func (c *Core) CmdSetEvent(device vk.Device, cb vk.CommandBuffer, event vk.Event) {
	rec, err := c.lookupDevice(device)
	if err != nil || rec.mock {
		return
	}
	rec.table.CmdSetEvent(cb, event, vk.PipelineStageComputeShaderBit)
}

func (c *Core) CmdResetEvent(device vk.Device, cb vk.CommandBuffer, event vk.Event) {
	rec, err := c.lookupDevice(device)
	if err != nil || rec.mock {
		return
	}
	rec.table.CmdResetEvent(cb, event, vk.PipelineStageComputeShaderBit)
}

func (c *Core) CmdWaitEvents(device vk.Device, cb vk.CommandBuffer, events []vk.Event) {
	rec, err := c.lookupDevice(device)
	if err != nil || rec.mock || len(events) == 0 {
		return
	}
	rec.table.CmdWaitEvents(cb, uint32(len(events)), &events[0],
		vk.PipelineStageComputeShaderBit, vk.PipelineStageComputeShaderBit, 0, nil, 0, nil, 0, nil)
}
