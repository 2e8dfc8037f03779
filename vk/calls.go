package vk

import (
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
)

// Call methods below marshal Go values into goffi's double-indirection
// argument frames and invoke the resolved driver function pointer. Each
// one mirrors the teacher's vk/commands.go generated wrappers, trimmed to
// the compute subset and carrying no *_ext/*_manual split since this
// package has far fewer entry points than the full Vulkan surface.

// --- Global ---

func (t *GlobalTable) CreateInstance(info *InstanceCreateInfo, alloc *AllocationCallbacks, instance *Instance) Result {
	if t == nil || t.CreateInstance == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&info),
		unsafe.Pointer(&alloc),
		unsafe.Pointer(&instance),
	}
	if err := ffi.CallFunction(&sigResultPtrPtrPtr, t.CreateInstance, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

func (t *GlobalTable) EnumerateInstanceVersion(apiVersion *uint32) Result {
	if t == nil || t.EnumerateInstanceVersion == nil {
		// Pre-1.1 loaders never export this entry point; callers fall
		// back to assuming Vulkan 1.0.
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [1]unsafe.Pointer{unsafe.Pointer(&apiVersion)}
	if err := ffi.CallFunction(&sigResultPtr1, t.EnumerateInstanceVersion, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

// --- Instance ---

func (t *InstanceTable) DestroyInstance(instance Instance, alloc *AllocationCallbacks) {
	if t == nil || t.DestroyInstance == nil {
		return
	}
	args := [2]unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&sigVoidHandlePtr, t.DestroyInstance, nil, args[:])
}

func (t *InstanceTable) EnumeratePhysicalDevices(instance Instance, count *uint32, devices *PhysicalDevice) Result {
	if t == nil || t.EnumeratePhysicalDevices == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&instance),
		unsafe.Pointer(&count),
		unsafe.Pointer(&devices),
	}
	if err := ffi.CallFunction(&sigResultHandlePtrPtr, t.EnumeratePhysicalDevices, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

func (t *InstanceTable) GetPhysicalDeviceProperties(pd PhysicalDevice, props unsafe.Pointer) {
	if t == nil || t.GetPhysicalDeviceProperties == nil {
		return
	}
	args := [2]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&props)}
	_ = ffi.CallFunction(&sigVoidHandlePtr, t.GetPhysicalDeviceProperties, nil, args[:])
}

func (t *InstanceTable) GetPhysicalDeviceQueueFamilyProperties(pd PhysicalDevice, count *uint32, props *QueueFamilyProperties) {
	if t == nil || t.GetPhysicalDeviceQueueFamilyProperties == nil {
		return
	}
	args := [3]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&count), unsafe.Pointer(&props)}
	_ = ffi.CallFunction(&sigVoidHandlePtrPtr, t.GetPhysicalDeviceQueueFamilyProperties, nil, args[:])
}

func (t *InstanceTable) GetPhysicalDeviceMemoryProperties(pd PhysicalDevice, props *PhysicalDeviceMemoryProperties) {
	if t == nil || t.GetPhysicalDeviceMemoryProperties == nil {
		return
	}
	args := [2]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&props)}
	_ = ffi.CallFunction(&sigVoidHandlePtr, t.GetPhysicalDeviceMemoryProperties, nil, args[:])
}

func (t *InstanceTable) GetPhysicalDeviceFeatures(pd PhysicalDevice, feats *PhysicalDeviceFeatures) {
	if t == nil || t.GetPhysicalDeviceFeatures == nil {
		return
	}
	args := [2]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&feats)}
	_ = ffi.CallFunction(&sigVoidHandlePtr, t.GetPhysicalDeviceFeatures, nil, args[:])
}

func (t *InstanceTable) CreateDevice(pd PhysicalDevice, info *DeviceCreateInfo, alloc *AllocationCallbacks, device *Device) Result {
	if t == nil || t.CreateDevice == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [4]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&device)}
	if err := ffi.CallFunction(&sigResultHandlePtrPtrPtr, t.CreateDevice, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

// --- Device: lifecycle & queue ---

func (t *DeviceTable) DestroyDevice(device Device, alloc *AllocationCallbacks) {
	if t == nil || t.DestroyDevice == nil {
		return
	}
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&sigVoidHandlePtr, t.DestroyDevice, nil, args[:])
}

func (t *DeviceTable) GetDeviceQueue(device Device, familyIndex, index uint32, queue *Queue) {
	if t == nil || t.GetDeviceQueue == nil {
		return
	}
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&familyIndex), unsafe.Pointer(&index), unsafe.Pointer(&queue)}
	_ = ffi.CallFunction(&sigVoidDeviceU32U32Ptr, t.GetDeviceQueue, nil, args[:])
}

func (t *DeviceTable) DeviceWaitIdle(device Device) Result {
	return t.callHandle(t.DeviceWaitIdle, uint64(device))
}

func (t *DeviceTable) QueueWaitIdle(queue Queue) Result {
	return t.callHandle(t.QueueWaitIdle, uint64(queue))
}

func (t *DeviceTable) callHandle(fn unsafe.Pointer, h uint64) Result {
	if t == nil || fn == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [1]unsafe.Pointer{unsafe.Pointer(&h)}
	if err := ffi.CallFunction(&sigResultHandle, fn, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

func (t *DeviceTable) QueueSubmit(queue Queue, submitCount uint32, submits *SubmitInfo, fence Fence) Result {
	if t == nil || t.QueueSubmit == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [4]unsafe.Pointer{unsafe.Pointer(&queue), unsafe.Pointer(&submitCount), unsafe.Pointer(&submits), unsafe.Pointer(&fence)}
	if err := ffi.CallFunction(&sigResultHandleU32PtrHandle, t.QueueSubmit, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

// --- Memory & buffer ---

func (t *DeviceTable) AllocateMemory(device Device, info *MemoryAllocateInfo, alloc *AllocationCallbacks, mem *DeviceMemory) Result {
	if t == nil || t.AllocateMemory == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&mem)}
	if err := ffi.CallFunction(&sigResultHandlePtrPtrPtr, t.AllocateMemory, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

func (t *DeviceTable) FreeMemory(device Device, mem DeviceMemory, alloc *AllocationCallbacks) {
	if t == nil || t.FreeMemory == nil {
		return
	}
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&mem), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, t.FreeMemory, nil, args[:])
}

func (t *DeviceTable) MapMemory(device Device, mem DeviceMemory, offset, size uint64, flags MemoryMapFlags, data *unsafe.Pointer) Result {
	if t == nil || t.MapMemory == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&mem),
		unsafe.Pointer(&offset), unsafe.Pointer(&size),
		unsafe.Pointer(&flags), unsafe.Pointer(&data),
	}
	if err := ffi.CallFunction(&sigResultMapMemory, t.MapMemory, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

func (t *DeviceTable) UnmapMemory(device Device, mem DeviceMemory) {
	if t == nil || t.UnmapMemory == nil {
		return
	}
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&mem)}
	_ = ffi.CallFunction(&sigVoidHandleHandle, t.UnmapMemory, nil, args[:])
}

func (t *DeviceTable) CreateBuffer(device Device, info *BufferCreateInfo, alloc *AllocationCallbacks, buf *Buffer) Result {
	if t == nil || t.CreateBuffer == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&buf)}
	if err := ffi.CallFunction(&sigResultHandlePtrPtrPtr, t.CreateBuffer, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

func (t *DeviceTable) DestroyBuffer(device Device, buf Buffer, alloc *AllocationCallbacks) {
	if t == nil || t.DestroyBuffer == nil {
		return
	}
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buf), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, t.DestroyBuffer, nil, args[:])
}

func (t *DeviceTable) GetBufferMemoryRequirements(device Device, buf Buffer, req *MemoryRequirements) {
	if t == nil || t.GetBufferMemoryRequirements == nil {
		return
	}
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buf), unsafe.Pointer(&req)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, t.GetBufferMemoryRequirements, nil, args[:])
}

func (t *DeviceTable) BindBufferMemory(device Device, buf Buffer, mem DeviceMemory, offset uint64) Result {
	if t == nil || t.BindBufferMemory == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buf), unsafe.Pointer(&mem), unsafe.Pointer(&offset)}
	if err := ffi.CallFunction(&sigResultHandle4, t.BindBufferMemory, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

// --- Descriptors ---

func (t *DeviceTable) CreateDescriptorSetLayout(device Device, info *DescriptorSetLayoutCreateInfo, alloc *AllocationCallbacks, layout *DescriptorSetLayout) Result {
	return t.create4(t.CreateDescriptorSetLayout, device, unsafe.Pointer(info), alloc, unsafe.Pointer(layout))
}

func (t *DeviceTable) DestroyDescriptorSetLayout(device Device, layout DescriptorSetLayout, alloc *AllocationCallbacks) {
	t.destroy3(t.DestroyDescriptorSetLayout, device, uint64(layout), alloc)
}

func (t *DeviceTable) CreateDescriptorPool(device Device, info *DescriptorPoolCreateInfo, alloc *AllocationCallbacks, pool *DescriptorPool) Result {
	return t.create4(t.CreateDescriptorPool, device, unsafe.Pointer(info), alloc, unsafe.Pointer(pool))
}

func (t *DeviceTable) DestroyDescriptorPool(device Device, pool DescriptorPool, alloc *AllocationCallbacks) {
	t.destroy3(t.DestroyDescriptorPool, device, uint64(pool), alloc)
}

func (t *DeviceTable) AllocateDescriptorSets(device Device, info *DescriptorSetAllocateInfo, sets *DescriptorSet) Result {
	if t == nil || t.AllocateDescriptorSets == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&sets)}
	if err := ffi.CallFunction(&sigResultHandlePtrPtr, t.AllocateDescriptorSets, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

func (t *DeviceTable) FreeDescriptorSets(device Device, pool DescriptorPool, count uint32, sets *DescriptorSet) Result {
	if t == nil || t.FreeDescriptorSets == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&count), unsafe.Pointer(&sets)}
	if err := ffi.CallFunction(&sigResultHandleHandleU32Ptr, t.FreeDescriptorSets, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

func (t *DeviceTable) UpdateDescriptorSets(device Device, writeCount uint32, writes *WriteDescriptorSet, copyCount uint32, copies unsafe.Pointer) {
	if t == nil || t.UpdateDescriptorSets == nil {
		return
	}
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&writeCount), unsafe.Pointer(&writes),
		unsafe.Pointer(&copyCount), unsafe.Pointer(&copies),
	}
	_ = ffi.CallFunction(&sigVoidDeviceUpdateDescriptorSets, t.UpdateDescriptorSets, nil, args[:])
}

func (t *DeviceTable) ResetDescriptorPool(device Device, pool DescriptorPool, flags uint32) Result {
	if t == nil || t.ResetDescriptorPool == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&flags)}
	if err := ffi.CallFunction(&sigResultHandleHandleU32, t.ResetDescriptorPool, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

// --- Pipeline & shader ---

func (t *DeviceTable) CreateShaderModule(device Device, info *ShaderModuleCreateInfo, alloc *AllocationCallbacks, mod *ShaderModule) Result {
	return t.create4(t.CreateShaderModule, device, unsafe.Pointer(info), alloc, unsafe.Pointer(mod))
}

func (t *DeviceTable) DestroyShaderModule(device Device, mod ShaderModule, alloc *AllocationCallbacks) {
	t.destroy3(t.DestroyShaderModule, device, uint64(mod), alloc)
}

func (t *DeviceTable) CreatePipelineLayout(device Device, info *PipelineLayoutCreateInfo, alloc *AllocationCallbacks, layout *PipelineLayout) Result {
	return t.create4(t.CreatePipelineLayout, device, unsafe.Pointer(info), alloc, unsafe.Pointer(layout))
}

func (t *DeviceTable) DestroyPipelineLayout(device Device, layout PipelineLayout, alloc *AllocationCallbacks) {
	t.destroy3(t.DestroyPipelineLayout, device, uint64(layout), alloc)
}

func (t *DeviceTable) CreateComputePipelines(device Device, cache PipelineCache, count uint32, infos *ComputePipelineCreateInfo, alloc *AllocationCallbacks, pipelines *Pipeline) Result {
	if t == nil || t.CreateComputePipelines == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&cache), unsafe.Pointer(&count),
		unsafe.Pointer(&infos), unsafe.Pointer(&alloc), unsafe.Pointer(&pipelines),
	}
	if err := ffi.CallFunction(&sigResultHandleHandleU32PtrPtrPtr, t.CreateComputePipelines, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

func (t *DeviceTable) DestroyPipeline(device Device, pipeline Pipeline, alloc *AllocationCallbacks) {
	t.destroy3(t.DestroyPipeline, device, uint64(pipeline), alloc)
}

// --- Command pools & buffers ---

func (t *DeviceTable) CreateCommandPool(device Device, info *CommandPoolCreateInfo, alloc *AllocationCallbacks, pool *CommandPool) Result {
	return t.create4(t.CreateCommandPool, device, unsafe.Pointer(info), alloc, unsafe.Pointer(pool))
}

func (t *DeviceTable) DestroyCommandPool(device Device, pool CommandPool, alloc *AllocationCallbacks) {
	t.destroy3(t.DestroyCommandPool, device, uint64(pool), alloc)
}

func (t *DeviceTable) ResetCommandPool(device Device, pool CommandPool, flags uint32) Result {
	if t == nil || t.ResetCommandPool == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&flags)}
	if err := ffi.CallFunction(&sigResultHandleHandleU32, t.ResetCommandPool, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

func (t *DeviceTable) AllocateCommandBuffers(device Device, info *CommandBufferAllocateInfo, buffers *CommandBuffer) Result {
	if t == nil || t.AllocateCommandBuffers == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&buffers)}
	if err := ffi.CallFunction(&sigResultHandlePtrPtr, t.AllocateCommandBuffers, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

func (t *DeviceTable) FreeCommandBuffers(device Device, pool CommandPool, count uint32, buffers *CommandBuffer) {
	if t == nil || t.FreeCommandBuffers == nil {
		return
	}
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&count), unsafe.Pointer(&buffers)}
	_ = ffi.CallFunction(&sigVoidHandleHandleU32Ptr, t.FreeCommandBuffers, nil, args[:])
}

func (t *DeviceTable) BeginCommandBuffer(cb CommandBuffer, info *CommandBufferBeginInfo) Result {
	if t == nil || t.BeginCommandBuffer == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [2]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&info)}
	if err := ffi.CallFunction(&sigResultHandlePtr, t.BeginCommandBuffer, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

func (t *DeviceTable) EndCommandBuffer(cb CommandBuffer) Result {
	if t == nil || t.EndCommandBuffer == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [1]unsafe.Pointer{unsafe.Pointer(&cb)}
	if err := ffi.CallFunction(&sigResultHandle1, t.EndCommandBuffer, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

func (t *DeviceTable) ResetCommandBuffer(cb CommandBuffer, flags uint32) Result {
	if t == nil || t.ResetCommandBuffer == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [2]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&flags)}
	if err := ffi.CallFunction(&sigResultHandleU32, t.ResetCommandBuffer, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

// --- Command recording ---

func (t *DeviceTable) CmdBindPipeline(cb CommandBuffer, bindPoint PipelineBindPoint, pipeline Pipeline) {
	if t == nil || t.CmdBindPipeline == nil {
		return
	}
	args := [3]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&bindPoint), unsafe.Pointer(&pipeline)}
	_ = ffi.CallFunction(&sigVoidHandleU32Handle, t.CmdBindPipeline, nil, args[:])
}

func (t *DeviceTable) CmdBindDescriptorSets(cb CommandBuffer, bindPoint PipelineBindPoint, layout PipelineLayout, firstSet, count uint32, sets *DescriptorSet, dynamicCount uint32, dynamicOffsets *uint32) {
	if t == nil || t.CmdBindDescriptorSets == nil {
		return
	}
	args := [8]unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&bindPoint), unsafe.Pointer(&layout),
		unsafe.Pointer(&firstSet), unsafe.Pointer(&count), unsafe.Pointer(&sets),
		unsafe.Pointer(&dynamicCount), unsafe.Pointer(&dynamicOffsets),
	}
	_ = ffi.CallFunction(&sigVoidCmdBindDescriptorSets, t.CmdBindDescriptorSets, nil, args[:])
}

func (t *DeviceTable) CmdPushConstants(cb CommandBuffer, layout PipelineLayout, stage ShaderStageFlags, offset, size uint32, values unsafe.Pointer) {
	if t == nil || t.CmdPushConstants == nil {
		return
	}
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&layout), unsafe.Pointer(&stage),
		unsafe.Pointer(&offset), unsafe.Pointer(&size), unsafe.Pointer(&values),
	}
	_ = ffi.CallFunction(&sigVoidCmdPushConstants, t.CmdPushConstants, nil, args[:])
}

func (t *DeviceTable) CmdDispatch(cb CommandBuffer, x, y, z uint32) {
	if t == nil || t.CmdDispatch == nil {
		return
	}
	args := [4]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&x), unsafe.Pointer(&y), unsafe.Pointer(&z)}
	_ = ffi.CallFunction(&sigVoidHandleU32U32U32, t.CmdDispatch, nil, args[:])
}

func (t *DeviceTable) CmdDispatchIndirect(cb CommandBuffer, buf Buffer, offset uint64) {
	if t == nil || t.CmdDispatchIndirect == nil {
		return
	}
	args := [3]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&buf), unsafe.Pointer(&offset)}
	_ = ffi.CallFunction(&sigVoidHandleHandleU64, t.CmdDispatchIndirect, nil, args[:])
}

func (t *DeviceTable) CmdPipelineBarrier(cb CommandBuffer, srcStage, dstStage PipelineStageFlags, depFlags uint32,
	memCount uint32, memBarriers *MemoryBarrier, bufCount uint32, bufBarriers *BufferMemoryBarrier, imgCount uint32, imgBarriers unsafe.Pointer) {
	if t == nil || t.CmdPipelineBarrier == nil {
		return
	}
	args := [10]unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&srcStage), unsafe.Pointer(&dstStage), unsafe.Pointer(&depFlags),
		unsafe.Pointer(&memCount), unsafe.Pointer(&memBarriers),
		unsafe.Pointer(&bufCount), unsafe.Pointer(&bufBarriers),
		unsafe.Pointer(&imgCount), unsafe.Pointer(&imgBarriers),
	}
	_ = ffi.CallFunction(&sigVoidCmdPipelineBarrier, t.CmdPipelineBarrier, nil, args[:])
}

func (t *DeviceTable) CmdCopyBuffer(cb CommandBuffer, src, dst Buffer, regionCount uint32, regions *BufferCopy) {
	if t == nil || t.CmdCopyBuffer == nil {
		return
	}
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&src), unsafe.Pointer(&dst),
		unsafe.Pointer(&regionCount), unsafe.Pointer(&regions),
	}
	_ = ffi.CallFunction(&sigVoidCmdCopyBuffer, t.CmdCopyBuffer, nil, args[:])
}

func (t *DeviceTable) CmdSetEvent(cb CommandBuffer, event Event, stage PipelineStageFlags) {
	if t == nil || t.CmdSetEvent == nil {
		return
	}
	args := [3]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&event), unsafe.Pointer(&stage)}
	_ = ffi.CallFunction(&sigVoidHandleHandleU32, t.CmdSetEvent, nil, args[:])
}

func (t *DeviceTable) CmdResetEvent(cb CommandBuffer, event Event, stage PipelineStageFlags) {
	if t == nil || t.CmdResetEvent == nil {
		return
	}
	args := [3]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&event), unsafe.Pointer(&stage)}
	_ = ffi.CallFunction(&sigVoidHandleHandleU32, t.CmdResetEvent, nil, args[:])
}

func (t *DeviceTable) CmdWaitEvents(cb CommandBuffer, eventCount uint32, events *Event, srcStage, dstStage PipelineStageFlags,
	memCount uint32, memBarriers *MemoryBarrier, bufCount uint32, bufBarriers *BufferMemoryBarrier, imgCount uint32, imgBarriers unsafe.Pointer) {
	if t == nil || t.CmdWaitEvents == nil {
		return
	}
	args := [11]unsafe.Pointer{
		unsafe.Pointer(&cb), unsafe.Pointer(&eventCount), unsafe.Pointer(&events),
		unsafe.Pointer(&srcStage), unsafe.Pointer(&dstStage),
		unsafe.Pointer(&memCount), unsafe.Pointer(&memBarriers),
		unsafe.Pointer(&bufCount), unsafe.Pointer(&bufBarriers),
		unsafe.Pointer(&imgCount), unsafe.Pointer(&imgBarriers),
	}
	_ = ffi.CallFunction(&sigVoidCmdWaitEvents, t.CmdWaitEvents, nil, args[:])
}

// --- Sync: fences, semaphores, events ---

func (t *DeviceTable) CreateFence(device Device, info *FenceCreateInfo, alloc *AllocationCallbacks, fence *Fence) Result {
	return t.create4(t.CreateFence, device, unsafe.Pointer(info), alloc, unsafe.Pointer(fence))
}

func (t *DeviceTable) DestroyFence(device Device, fence Fence, alloc *AllocationCallbacks) {
	t.destroy3(t.DestroyFence, device, uint64(fence), alloc)
}

func (t *DeviceTable) WaitForFences(device Device, count uint32, fences *Fence, waitAll uint32, timeout uint64) Result {
	if t == nil || t.WaitForFences == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&device), unsafe.Pointer(&count), unsafe.Pointer(&fences),
		unsafe.Pointer(&waitAll), unsafe.Pointer(&timeout),
	}
	if err := ffi.CallFunction(&sigResultWaitForFences, t.WaitForFences, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

func (t *DeviceTable) GetFenceStatus(device Device, fence Fence) Result {
	return t.result2Handle(t.GetFenceStatus, uint64(device), uint64(fence))
}

func (t *DeviceTable) ResetFences(device Device, count uint32, fences *Fence) Result {
	if t == nil || t.ResetFences == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&count), unsafe.Pointer(&fences)}
	if err := ffi.CallFunction(&sigResultHandleU32Ptr, t.ResetFences, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

func (t *DeviceTable) CreateSemaphore(device Device, info *SemaphoreCreateInfo, alloc *AllocationCallbacks, sem *Semaphore) Result {
	return t.create4(t.CreateSemaphore, device, unsafe.Pointer(info), alloc, unsafe.Pointer(sem))
}

func (t *DeviceTable) DestroySemaphore(device Device, sem Semaphore, alloc *AllocationCallbacks) {
	t.destroy3(t.DestroySemaphore, device, uint64(sem), alloc)
}

func (t *DeviceTable) WaitSemaphores(device Device, info *SemaphoreWaitInfo, timeout uint64) Result {
	if t == nil || t.WaitSemaphores == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&timeout)}
	if err := ffi.CallFunction(&sigResultHandlePtrU64, t.WaitSemaphores, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

func (t *DeviceTable) SignalSemaphore(device Device, info unsafe.Pointer) Result {
	if t == nil || t.SignalSemaphore == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info)}
	if err := ffi.CallFunction(&sigResultHandlePtr, t.SignalSemaphore, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

func (t *DeviceTable) GetSemaphoreCounterValue(device Device, sem Semaphore, value *uint64) Result {
	if t == nil || t.GetSemaphoreCounterValue == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&sem), unsafe.Pointer(&value)}
	if err := ffi.CallFunction(&sigResultHandleHandlePtr2, t.GetSemaphoreCounterValue, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

func (t *DeviceTable) CreateEvent(device Device, info *EventCreateInfo, alloc *AllocationCallbacks, event *Event) Result {
	return t.create4(t.CreateEvent, device, unsafe.Pointer(info), alloc, unsafe.Pointer(event))
}

func (t *DeviceTable) DestroyEvent(device Device, event Event, alloc *AllocationCallbacks) {
	t.destroy3(t.DestroyEvent, device, uint64(event), alloc)
}

func (t *DeviceTable) SetEvent(device Device, event Event) Result {
	return t.result2Handle(t.SetEvent, uint64(device), uint64(event))
}

func (t *DeviceTable) ResetEvent(device Device, event Event) Result {
	return t.result2Handle(t.ResetEvent, uint64(device), uint64(event))
}

func (t *DeviceTable) GetEventStatus(device Device, event Event) Result {
	return t.result2Handle(t.GetEventStatus, uint64(device), uint64(event))
}

// --- shared helpers ---

func (t *DeviceTable) create4(fn unsafe.Pointer, device Device, info unsafe.Pointer, alloc *AllocationCallbacks, out unsafe.Pointer) Result {
	if t == nil || fn == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [4]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&info), unsafe.Pointer(&alloc), unsafe.Pointer(&out)}
	if err := ffi.CallFunction(&sigResultHandlePtrPtrPtr, fn, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

func (t *DeviceTable) destroy3(fn unsafe.Pointer, device Device, handle uint64, alloc *AllocationCallbacks) {
	if t == nil || fn == nil {
		return
	}
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&handle), unsafe.Pointer(&alloc)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, fn, nil, args[:])
}

func (t *DeviceTable) result2Handle(fn unsafe.Pointer, a, b uint64) Result {
	if t == nil || fn == nil {
		return ErrorIncompatibleDriver
	}
	var result int32
	args := [2]unsafe.Pointer{unsafe.Pointer(&a), unsafe.Pointer(&b)}
	if err := ffi.CallFunction(&sigResultHandleHandle, fn, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}
