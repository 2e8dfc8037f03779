package kronos

import (
	"errors"

	"github.com/LynnColeArt/kronos-compute/vk"
)

// binding pairs a buffer with the set-0 binding index it occupies.
type binding struct {
	index  uint32
	buffer *Buffer
}

// CommandList is a fluent builder for one compute dispatch, mirroring
// original_source's CommandBuilder: bind buffers and push constants,
// then Execute to record, submit, and wait for completion. Every
// optimization (persistent descriptors, slab-backed buffers, smart
// barriers, timeline-batched submission) is applied automatically.
type CommandList struct {
	device     *Device
	pipeline   *Pipeline
	bindings   []binding
	pushConsts []byte
	x, y, z    uint32
}

// Dispatch starts building a compute dispatch against pipeline.
func (d *Device) Dispatch(pipeline *Pipeline) *CommandList {
	return &CommandList{device: d, pipeline: pipeline, x: 1, y: 1, z: 1}
}

// BindBuffer binds buffer to the given set-0 binding index.
func (cl *CommandList) BindBuffer(index uint32, buffer *Buffer) *CommandList {
	cl.bindings = append(cl.bindings, binding{index: index, buffer: buffer})
	return cl
}

// PushConstants sets the push-constant bytes for this dispatch. data must
// fit within the pipeline's configured push-constant size.
func (cl *CommandList) PushConstants(data []byte) *CommandList {
	cl.pushConsts = data
	return cl
}

// Workgroups sets the dispatch's workgroup counts. Defaults to (1, 1, 1).
func (cl *CommandList) Workgroups(x, y, z uint32) *CommandList {
	cl.x, cl.y, cl.z = x, y, z
	return cl
}

// Execute records, submits, and waits for this dispatch to complete.
func (cl *CommandList) Execute() error {
	d := cl.device
	if d.released {
		return ErrReleased
	}
	if uint32(len(cl.pushConsts)) > cl.pipeline.pushConstantSize {
		return errors.New("kronos: push constant data exceeds pipeline's configured size")
	}

	pool, err := d.commandPool()
	if err != nil {
		return err
	}

	allocInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	cbs, res := d.core.AllocateCommandBuffers(d.handle, &allocInfo)
	if !res.Succeeded() {
		return errorFromResult("AllocateCommandBuffers", res)
	}
	cb := cbs[0]
	defer d.core.FreeCommandBuffers(d.handle, pool, cbs)

	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageOneTimeSubmitBit,
	}
	if res := d.core.BeginCommandBuffer(d.handle, cb, &beginInfo); !res.Succeeded() {
		return errorFromResult("BeginCommandBuffer", res)
	}

	buffers := make([]vk.Buffer, len(cl.bindings))
	for i, b := range cl.bindings {
		buffers[i] = b.buffer.handle
	}
	var descriptorSet vk.DescriptorSet
	if len(buffers) > 0 {
		set, res := d.core.GetPersistentDescriptorSet(d.handle, buffers)
		if !res.Succeeded() {
			return errorFromResult("GetPersistentDescriptorSet", res)
		}
		descriptorSet = set
	}

	for _, b := range cl.bindings {
		d.core.CmdTrackBufferAccess(d.handle, cb, b.buffer.handle,
			vk.AccessShaderReadBit|vk.AccessShaderWriteBit, 0, b.buffer.size)
	}

	d.core.CmdBindPipeline(d.handle, cb, cl.pipeline.handle)
	if descriptorSet != 0 {
		d.core.CmdBindDescriptorSets(d.handle, cb, cl.pipeline.layout, 0, []vk.DescriptorSet{descriptorSet})
	}
	if len(cl.pushConsts) > 0 {
		if res := d.core.CmdPushConstants(d.handle, cb, cl.pipeline.layout, 0, uint32(len(cl.pushConsts)), sliceHeadPointer(cl.pushConsts)); !res.Succeeded() {
			return errorFromResult("CmdPushConstants", res)
		}
	}
	d.core.CmdDispatch(d.handle, cb, cl.x, cl.y, cl.z)

	if res := d.core.EndCommandBuffer(d.handle, cb); !res.Succeeded() {
		return errorFromResult("EndCommandBuffer", res)
	}

	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    &cb,
	}
	if res := d.core.QueueSubmit(d.handle, d.queue, []vk.SubmitInfo{submitInfo}, 0); !res.Succeeded() {
		return errorFromResult("QueueSubmit", res)
	}
	if res := d.core.QueueWaitIdle(d.handle, d.queue); !res.Succeeded() {
		return errorFromResult("QueueWaitIdle", res)
	}
	return nil
}
