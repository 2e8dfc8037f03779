package vk

import "unsafe"

// GetProcAddrFunc resolves one entry point by name against a handle scope
// (0 for global, an instance raw value for instance-level lookups, a
// device raw value for device-level lookups). The icd package supplies
// one implementation per loaded ICD, built on top of CallProcAddrFn.
type GetProcAddrFunc func(handle uint64, name string) unsafe.Pointer

// GlobalTable holds pre-instance entry points, resolved through an ICD's
// vk_icdGetInstanceProcAddr with a NULL instance.
type GlobalTable struct {
	CreateInstance                        unsafe.Pointer
	EnumerateInstanceVersion              unsafe.Pointer
	EnumerateInstanceLayerProperties      unsafe.Pointer
	EnumerateInstanceExtensionProperties  unsafe.Pointer
}

func LoadGlobalTable(resolve GetProcAddrFunc) *GlobalTable {
	return &GlobalTable{
		CreateInstance:                       resolve(0, "vkCreateInstance"),
		EnumerateInstanceVersion:             resolve(0, "vkEnumerateInstanceVersion"),
		EnumerateInstanceLayerProperties:     resolve(0, "vkEnumerateInstanceLayerProperties"),
		EnumerateInstanceExtensionProperties: resolve(0, "vkEnumerateInstanceExtensionProperties"),
	}
}

// Ready reports whether the mandatory global entry point is present.
func (t *GlobalTable) Ready() bool { return t != nil && t.CreateInstance != nil }

// InstanceTable holds entry points resolved once an instance exists,
// through the instance proc-addr (never a NULL instance — Intel drivers in
// particular return NULL for device-scoped lookups through the instance
// addr, so GetDeviceProcAddr below is resolved per-device instead).
type InstanceTable struct {
	DestroyInstance                     unsafe.Pointer
	EnumeratePhysicalDevices             unsafe.Pointer
	GetPhysicalDeviceProperties          unsafe.Pointer
	GetPhysicalDeviceQueueFamilyProperties unsafe.Pointer
	GetPhysicalDeviceMemoryProperties    unsafe.Pointer
	GetPhysicalDeviceFeatures            unsafe.Pointer
	CreateDevice                         unsafe.Pointer
	GetDeviceProcAddr                    unsafe.Pointer
}

func LoadInstanceTable(resolve GetProcAddrFunc, instance uint64) *InstanceTable {
	return &InstanceTable{
		DestroyInstance:                       resolve(instance, "vkDestroyInstance"),
		EnumeratePhysicalDevices:               resolve(instance, "vkEnumeratePhysicalDevices"),
		GetPhysicalDeviceProperties:            resolve(instance, "vkGetPhysicalDeviceProperties"),
		GetPhysicalDeviceQueueFamilyProperties: resolve(instance, "vkGetPhysicalDeviceQueueFamilyProperties"),
		GetPhysicalDeviceMemoryProperties:      resolve(instance, "vkGetPhysicalDeviceMemoryProperties"),
		GetPhysicalDeviceFeatures:              resolve(instance, "vkGetPhysicalDeviceFeatures"),
		CreateDevice:                           resolve(instance, "vkCreateDevice"),
		GetDeviceProcAddr:                      resolve(instance, "vkGetDeviceProcAddr"),
	}
}

func (t *InstanceTable) Ready() bool {
	return t != nil && t.DestroyInstance != nil && t.EnumeratePhysicalDevices != nil &&
		t.GetPhysicalDeviceProperties != nil && t.CreateDevice != nil
}

// DeviceTable holds every device-level entry point the compute subset
// dispatches through. Resolved exclusively via vkGetDeviceProcAddr with
// the concrete device handle, per spec.md §4.2.
type DeviceTable struct {
	DestroyDevice    unsafe.Pointer
	GetDeviceQueue   unsafe.Pointer
	DeviceWaitIdle   unsafe.Pointer
	QueueSubmit      unsafe.Pointer
	QueueWaitIdle    unsafe.Pointer

	AllocateMemory              unsafe.Pointer
	FreeMemory                  unsafe.Pointer
	MapMemory                   unsafe.Pointer
	UnmapMemory                 unsafe.Pointer
	CreateBuffer                unsafe.Pointer
	DestroyBuffer               unsafe.Pointer
	GetBufferMemoryRequirements unsafe.Pointer
	BindBufferMemory            unsafe.Pointer

	CreateDescriptorSetLayout  unsafe.Pointer
	DestroyDescriptorSetLayout unsafe.Pointer
	CreateDescriptorPool       unsafe.Pointer
	DestroyDescriptorPool      unsafe.Pointer
	AllocateDescriptorSets     unsafe.Pointer
	FreeDescriptorSets         unsafe.Pointer
	UpdateDescriptorSets       unsafe.Pointer
	ResetDescriptorPool        unsafe.Pointer

	CreateShaderModule     unsafe.Pointer
	DestroyShaderModule    unsafe.Pointer
	CreatePipelineLayout   unsafe.Pointer
	DestroyPipelineLayout  unsafe.Pointer
	CreateComputePipelines unsafe.Pointer
	DestroyPipeline        unsafe.Pointer

	CreateCommandPool     unsafe.Pointer
	DestroyCommandPool    unsafe.Pointer
	ResetCommandPool      unsafe.Pointer
	AllocateCommandBuffers unsafe.Pointer
	FreeCommandBuffers    unsafe.Pointer
	BeginCommandBuffer    unsafe.Pointer
	EndCommandBuffer      unsafe.Pointer
	ResetCommandBuffer    unsafe.Pointer

	CmdBindPipeline       unsafe.Pointer
	CmdBindDescriptorSets unsafe.Pointer
	CmdPushConstants      unsafe.Pointer
	CmdDispatch           unsafe.Pointer
	CmdDispatchIndirect   unsafe.Pointer
	CmdPipelineBarrier    unsafe.Pointer
	CmdCopyBuffer         unsafe.Pointer
	CmdSetEvent           unsafe.Pointer
	CmdResetEvent         unsafe.Pointer
	CmdWaitEvents         unsafe.Pointer

	CreateFence   unsafe.Pointer
	DestroyFence  unsafe.Pointer
	WaitForFences unsafe.Pointer
	GetFenceStatus unsafe.Pointer
	ResetFences   unsafe.Pointer

	CreateSemaphore         unsafe.Pointer
	DestroySemaphore        unsafe.Pointer
	WaitSemaphores          unsafe.Pointer
	SignalSemaphore         unsafe.Pointer
	GetSemaphoreCounterValue unsafe.Pointer

	CreateEvent     unsafe.Pointer
	DestroyEvent    unsafe.Pointer
	SetEvent        unsafe.Pointer
	ResetEvent      unsafe.Pointer
	GetEventStatus  unsafe.Pointer
}

func LoadDeviceTable(resolve GetProcAddrFunc, device uint64) *DeviceTable {
	return &DeviceTable{
		DestroyDevice:  resolve(device, "vkDestroyDevice"),
		GetDeviceQueue: resolve(device, "vkGetDeviceQueue"),
		DeviceWaitIdle: resolve(device, "vkDeviceWaitIdle"),
		QueueSubmit:    resolve(device, "vkQueueSubmit"),
		QueueWaitIdle:  resolve(device, "vkQueueWaitIdle"),

		AllocateMemory:              resolve(device, "vkAllocateMemory"),
		FreeMemory:                  resolve(device, "vkFreeMemory"),
		MapMemory:                   resolve(device, "vkMapMemory"),
		UnmapMemory:                 resolve(device, "vkUnmapMemory"),
		CreateBuffer:                resolve(device, "vkCreateBuffer"),
		DestroyBuffer:               resolve(device, "vkDestroyBuffer"),
		GetBufferMemoryRequirements: resolve(device, "vkGetBufferMemoryRequirements"),
		BindBufferMemory:            resolve(device, "vkBindBufferMemory"),

		CreateDescriptorSetLayout:  resolve(device, "vkCreateDescriptorSetLayout"),
		DestroyDescriptorSetLayout: resolve(device, "vkDestroyDescriptorSetLayout"),
		CreateDescriptorPool:       resolve(device, "vkCreateDescriptorPool"),
		DestroyDescriptorPool:      resolve(device, "vkDestroyDescriptorPool"),
		AllocateDescriptorSets:     resolve(device, "vkAllocateDescriptorSets"),
		FreeDescriptorSets:         resolve(device, "vkFreeDescriptorSets"),
		UpdateDescriptorSets:       resolve(device, "vkUpdateDescriptorSets"),
		ResetDescriptorPool:        resolve(device, "vkResetDescriptorPool"),

		CreateShaderModule:     resolve(device, "vkCreateShaderModule"),
		DestroyShaderModule:    resolve(device, "vkDestroyShaderModule"),
		CreatePipelineLayout:   resolve(device, "vkCreatePipelineLayout"),
		DestroyPipelineLayout:  resolve(device, "vkDestroyPipelineLayout"),
		CreateComputePipelines: resolve(device, "vkCreateComputePipelines"),
		DestroyPipeline:        resolve(device, "vkDestroyPipeline"),

		CreateCommandPool:      resolve(device, "vkCreateCommandPool"),
		DestroyCommandPool:     resolve(device, "vkDestroyCommandPool"),
		ResetCommandPool:       resolve(device, "vkResetCommandPool"),
		AllocateCommandBuffers: resolve(device, "vkAllocateCommandBuffers"),
		FreeCommandBuffers:     resolve(device, "vkFreeCommandBuffers"),
		BeginCommandBuffer:     resolve(device, "vkBeginCommandBuffer"),
		EndCommandBuffer:       resolve(device, "vkEndCommandBuffer"),
		ResetCommandBuffer:     resolve(device, "vkResetCommandBuffer"),

		CmdBindPipeline:       resolve(device, "vkCmdBindPipeline"),
		CmdBindDescriptorSets: resolve(device, "vkCmdBindDescriptorSets"),
		CmdPushConstants:      resolve(device, "vkCmdPushConstants"),
		CmdDispatch:           resolve(device, "vkCmdDispatch"),
		CmdDispatchIndirect:   resolve(device, "vkCmdDispatchIndirect"),
		CmdPipelineBarrier:    resolve(device, "vkCmdPipelineBarrier"),
		CmdCopyBuffer:         resolve(device, "vkCmdCopyBuffer"),
		CmdSetEvent:           resolve(device, "vkCmdSetEvent"),
		CmdResetEvent:         resolve(device, "vkCmdResetEvent"),
		CmdWaitEvents:         resolve(device, "vkCmdWaitEvents"),

		CreateFence:    resolve(device, "vkCreateFence"),
		DestroyFence:   resolve(device, "vkDestroyFence"),
		WaitForFences:  resolve(device, "vkWaitForFences"),
		GetFenceStatus: resolve(device, "vkGetFenceStatus"),
		ResetFences:    resolve(device, "vkResetFences"),

		CreateSemaphore:          resolve(device, "vkCreateSemaphore"),
		DestroySemaphore:         resolve(device, "vkDestroySemaphore"),
		WaitSemaphores:           resolve(device, "vkWaitSemaphores"),
		SignalSemaphore:          resolve(device, "vkSignalSemaphore"),
		GetSemaphoreCounterValue: resolve(device, "vkGetSemaphoreCounterValue"),

		CreateEvent:    resolve(device, "vkCreateEvent"),
		DestroyEvent:   resolve(device, "vkDestroyEvent"),
		SetEvent:       resolve(device, "vkSetEvent"),
		ResetEvent:     resolve(device, "vkResetEvent"),
		GetEventStatus: resolve(device, "vkGetEventStatus"),
	}
}

// Ready reports whether the entry points the core cannot operate without
// are all present: buffer lifecycle, memory, command recording, dispatch.
func (t *DeviceTable) Ready() bool {
	return t != nil &&
		t.CreateBuffer != nil && t.DestroyBuffer != nil &&
		t.AllocateMemory != nil && t.FreeMemory != nil && t.BindBufferMemory != nil &&
		t.CreateCommandPool != nil && t.AllocateCommandBuffers != nil &&
		t.BeginCommandBuffer != nil && t.EndCommandBuffer != nil &&
		t.CmdDispatch != nil && t.QueueSubmit != nil
}
