package vk

import (
	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// CallInterface templates reused across the compute entry points. Vulkan's
// compute subset needs far fewer distinct shapes than the full API (the
// gogpu/wgpu vk package tracks ~60 for the whole graphics+compute surface;
// this repo needs the ~40 below), so templates are named after their
// argument shape rather than one-per-function.
var (
	sigResultPtrPtrPtr     types.CallInterface // VkResult(ptr,ptr,ptr)         CreateInstance
	sigResultPtr2          types.CallInterface // VkResult(ptr,ptr)             EnumerateInstanceVersion-like
	sigVoidHandlePtr       types.CallInterface // void(handle,ptr)              DestroyInstance/DestroyDevice
	sigResultHandleU32PtrPtr types.CallInterface // VkResult(handle,u32,ptr,ptr) unused
	sigVoidHandlePtrPtr    types.CallInterface // void(handle,ptr,ptr)          GetPhysicalDeviceQueueFamilyProperties
	sigVoidHandleU32Ptr    types.CallInterface // void(handle,u32,ptr)          unused
	sigResultHandlePtrPtrPtr types.CallInterface // VkResult(handle,ptr,ptr,ptr) CreateBuffer/CreateFence/...
	sigVoidHandleHandlePtr types.CallInterface // void(handle,handle,ptr)      DestroyBuffer/DestroyFence/...
	sigResultHandleU32Ptr  types.CallInterface // VkResult(handle,u32,ptr)      ResetFences
	sigResultHandleU32PtrHandle types.CallInterface // VkResult(handle,u32,ptr,handle) QueueSubmit
	sigResultHandle        types.CallInterface // VkResult(handle)              QueueWaitIdle/DeviceWaitIdle
	sigVoidDeviceU32U32Ptr types.CallInterface // void(handle,u32,u32,ptr)      GetDeviceQueue
	sigResultHandle4       types.CallInterface // VkResult(handle,handle,handle,u64) BindBufferMemory
	sigVoidHandleHandlePtrHandle types.CallInterface // void(handle,handle,ptr)  unused placeholder
	sigResultMapMemory     types.CallInterface // VkResult(handle,handle,u64,u64,u32,ptr) MapMemory
	sigVoidHandleHandle    types.CallInterface // void(handle,handle)           UnmapMemory
	sigResultHandleHandlePtr types.CallInterface // VkResult(handle,handle,ptr) unused
	sigVoidDeviceUpdateDescriptorSets types.CallInterface // void(handle,u32,ptr,u32,ptr) UpdateDescriptorSets
	sigResultHandleHandleU32 types.CallInterface // VkResult(handle,handle,u32) ResetDescriptorPool/ResetCommandPool
	sigResultHandleHandleU32Ptr types.CallInterface // VkResult(handle,handle,u32,ptr) FreeDescriptorSets/FreeCommandBuffers(result variant)
	sigVoidHandleHandleU32Ptr types.CallInterface // void(handle,handle,u32,ptr)  FreeCommandBuffers
	sigResultHandlePtr     types.CallInterface // VkResult(handle,ptr)          BeginCommandBuffer
	sigResultHandle1       types.CallInterface // VkResult(handle)              EndCommandBuffer
	sigResultHandleU32     types.CallInterface // VkResult(handle,u32)          ResetCommandBuffer
	sigVoidHandleU32Handle types.CallInterface // void(handle,u32,handle)       CmdBindPipeline
	sigVoidCmdBindDescriptorSets types.CallInterface // void(handle,u32,handle,u32,u32,ptr,u32,ptr)
	sigVoidCmdPushConstants types.CallInterface // void(handle,handle,u32,u32,u32,ptr)
	sigVoidHandleU32U32U32 types.CallInterface // void(handle,u32,u32,u32)      CmdDispatch
	sigVoidHandleHandleU64 types.CallInterface // void(handle,handle,u64)       CmdDispatchIndirect
	sigVoidCmdPipelineBarrier types.CallInterface // void(handle,u32,u32,u32,u32,ptr,u32,ptr,u32,ptr)
	sigVoidCmdCopyBuffer   types.CallInterface // void(handle,handle,handle,u32,ptr)
	sigVoidHandleHandleU32 types.CallInterface // void(handle,handle,u32)       CmdSetEvent/CmdResetEvent
	sigVoidCmdWaitEvents   types.CallInterface // void(handle,u32,ptr,u32,u32,u32,ptr,u32,ptr,u32,ptr)
	sigResultHandleHandle  types.CallInterface // VkResult(handle,handle)       GetFenceStatus/SetEvent/ResetEvent/GetEventStatus
	sigResultWaitForFences types.CallInterface // VkResult(handle,u32,ptr,u32,u64)
	sigResultHandleHandleU32PtrU64 types.CallInterface // VkResult(handle,u32,ptr)  unused
	sigResultHandlePtrU64  types.CallInterface // VkResult(handle,ptr,u64)      WaitSemaphores
	sigResultHandleHandlePtr2 types.CallInterface // VkResult(handle,handle,ptr) GetSemaphoreCounterValue
	sigResultHandlePtrPtr  types.CallInterface // VkResult(handle,ptr,ptr)      EnumeratePhysicalDevices/AllocateDescriptorSets/AllocateCommandBuffers
	sigResultHandleHandleU32PtrPtrPtr types.CallInterface // VkResult(handle,handle,u32,ptr,ptr,ptr) CreateComputePipelines
	sigResultPtr1          types.CallInterface // VkResult(ptr)                 EnumerateInstanceVersion
)

// initSignatures prepares every CallInterface template. Called once by
// Init before any dispatch table is loaded.
func initSignatures() error {
	ptr := types.PointerTypeDescriptor
	u32 := types.UInt32TypeDescriptor
	u64 := types.UInt64TypeDescriptor
	voidRet := types.VoidTypeDescriptor
	resultRet := types.SInt32TypeDescriptor

	type prep struct {
		dst  *types.CallInterface
		ret  *types.TypeDescriptor
		args []*types.TypeDescriptor
	}
	specs := []prep{
		{&sigResultPtrPtrPtr, resultRet, []*types.TypeDescriptor{ptr, ptr, ptr}},
		{&sigResultPtr2, resultRet, []*types.TypeDescriptor{ptr, ptr}},
		{&sigVoidHandlePtr, voidRet, []*types.TypeDescriptor{u64, ptr}},
		{&sigResultHandleU32PtrPtr, resultRet, []*types.TypeDescriptor{u64, u32, ptr, ptr}},
		{&sigVoidHandlePtrPtr, voidRet, []*types.TypeDescriptor{u64, ptr, ptr}},
		{&sigVoidHandleU32Ptr, voidRet, []*types.TypeDescriptor{u64, u32, ptr}},
		{&sigResultHandlePtrPtrPtr, resultRet, []*types.TypeDescriptor{u64, ptr, ptr, ptr}},
		{&sigVoidHandleHandlePtr, voidRet, []*types.TypeDescriptor{u64, u64, ptr}},
		{&sigResultHandleU32Ptr, resultRet, []*types.TypeDescriptor{u64, u32, ptr}},
		{&sigResultHandleU32PtrHandle, resultRet, []*types.TypeDescriptor{u64, u32, ptr, u64}},
		{&sigResultHandle, resultRet, []*types.TypeDescriptor{u64}},
		{&sigVoidDeviceU32U32Ptr, voidRet, []*types.TypeDescriptor{u64, u32, u32, ptr}},
		{&sigResultHandle4, resultRet, []*types.TypeDescriptor{u64, u64, u64, u64}},
		{&sigResultMapMemory, resultRet, []*types.TypeDescriptor{u64, u64, u64, u64, u32, ptr}},
		{&sigVoidHandleHandle, voidRet, []*types.TypeDescriptor{u64, u64}},
		{&sigResultHandleHandlePtr, resultRet, []*types.TypeDescriptor{u64, u64, ptr}},
		{&sigVoidDeviceUpdateDescriptorSets, voidRet, []*types.TypeDescriptor{u64, u32, ptr, u32, ptr}},
		{&sigResultHandleHandleU32, resultRet, []*types.TypeDescriptor{u64, u64, u32}},
		{&sigResultHandleHandleU32Ptr, resultRet, []*types.TypeDescriptor{u64, u64, u32, ptr}},
		{&sigVoidHandleHandleU32Ptr, voidRet, []*types.TypeDescriptor{u64, u64, u32, ptr}},
		{&sigResultHandlePtr, resultRet, []*types.TypeDescriptor{u64, ptr}},
		{&sigResultHandle1, resultRet, []*types.TypeDescriptor{u64}},
		{&sigResultHandleU32, resultRet, []*types.TypeDescriptor{u64, u32}},
		{&sigVoidHandleU32Handle, voidRet, []*types.TypeDescriptor{u64, u32, u64}},
		{&sigVoidCmdBindDescriptorSets, voidRet, []*types.TypeDescriptor{u64, u32, u64, u32, u32, ptr, u32, ptr}},
		{&sigVoidCmdPushConstants, voidRet, []*types.TypeDescriptor{u64, u64, u32, u32, u32, ptr}},
		{&sigVoidHandleU32U32U32, voidRet, []*types.TypeDescriptor{u64, u32, u32, u32}},
		{&sigVoidHandleHandleU64, voidRet, []*types.TypeDescriptor{u64, u64, u64}},
		{&sigVoidCmdPipelineBarrier, voidRet, []*types.TypeDescriptor{u64, u32, u32, u32, u32, ptr, u32, ptr, u32, ptr}},
		{&sigVoidCmdCopyBuffer, voidRet, []*types.TypeDescriptor{u64, u64, u64, u32, ptr}},
		{&sigVoidHandleHandleU32, voidRet, []*types.TypeDescriptor{u64, u64, u32}},
		{&sigVoidCmdWaitEvents, voidRet, []*types.TypeDescriptor{u64, u32, ptr, u32, u32, u32, ptr, u32, ptr, u32, ptr}},
		{&sigResultHandleHandle, resultRet, []*types.TypeDescriptor{u64, u64}},
		{&sigResultWaitForFences, resultRet, []*types.TypeDescriptor{u64, u32, ptr, u32, u64}},
		{&sigResultHandleHandleU32PtrU64, resultRet, []*types.TypeDescriptor{u64, u32, ptr}},
		{&sigResultHandlePtrU64, resultRet, []*types.TypeDescriptor{u64, ptr, u64}},
		{&sigResultHandleHandlePtr2, resultRet, []*types.TypeDescriptor{u64, u64, ptr}},
		{&sigResultHandlePtrPtr, resultRet, []*types.TypeDescriptor{u64, ptr, ptr}},
		{&sigResultHandleHandleU32PtrPtrPtr, resultRet, []*types.TypeDescriptor{u64, u64, u32, ptr, ptr, ptr}},
		{&sigResultPtr1, resultRet, []*types.TypeDescriptor{ptr}},
	}
	for _, s := range specs {
		if err := ffi.PrepareCallInterface(s.dst, types.DefaultCall, s.ret, s.args); err != nil {
			return err
		}
	}
	return nil
}
