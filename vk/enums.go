package vk

// Result is the stable integer result code returned from every shim and
// forwarded verbatim from the driver where the driver itself produced it.
// Values are ported from the original implementation's core/enums.rs, not
// reinvented, so they match real ICDs byte for byte.
type Result int32

const (
	Success       Result = 0
	NotReady      Result = 1
	Timeout       Result = 2
	EventSet      Result = 3
	EventReset    Result = 4
	Incomplete    Result = 5

	ErrorOutOfHostMemory    Result = -1
	ErrorOutOfDeviceMemory  Result = -2
	ErrorInitializationFailed Result = -3
	ErrorDeviceLost         Result = -4
	ErrorMemoryMapFailed    Result = -5
	ErrorLayerNotPresent    Result = -6
	ErrorExtensionNotPresent Result = -7
	ErrorFeatureNotPresent  Result = -8
	ErrorIncompatibleDriver Result = -9
	ErrorTooManyObjects     Result = -10
	ErrorFormatNotSupported Result = -11
	ErrorFragmentedPool     Result = -12
	ErrorUnknown            Result = -13
	ErrorOutOfPoolMemory    Result = -1000069000
)

// Succeeded reports whether a result is Success or a non-error status
// (NotReady/Timeout/EventSet/EventReset/Incomplete are all >= 0).
func (r Result) Succeeded() bool { return r >= 0 }

// StructureType tags every create-info structure's sType field. Shims
// reject input whose sType does not match the expected kind.
type StructureType uint32

const (
	StructureTypeApplicationInfo                StructureType = 0
	StructureTypeInstanceCreateInfo              StructureType = 1
	StructureTypeDeviceQueueCreateInfo           StructureType = 2
	StructureTypeDeviceCreateInfo                StructureType = 3
	StructureTypeSubmitInfo                      StructureType = 4
	StructureTypeMemoryAllocateInfo              StructureType = 5
	StructureTypeMappedMemoryRange               StructureType = 6
	StructureTypeBufferCreateInfo                StructureType = 12
	StructureTypeBufferViewCreateInfo            StructureType = 13
	StructureTypeShaderModuleCreateInfo           StructureType = 16
	StructureTypePipelineLayoutCreateInfo         StructureType = 30
	StructureTypePipelineShaderStageCreateInfo    StructureType = 18
	StructureTypeComputePipelineCreateInfo        StructureType = 29
	StructureTypeDescriptorSetLayoutCreateInfo    StructureType = 32
	StructureTypeDescriptorPoolCreateInfo         StructureType = 33
	StructureTypeDescriptorSetAllocateInfo        StructureType = 34
	StructureTypeWriteDescriptorSet               StructureType = 35
	StructureTypeCopyDescriptorSet                StructureType = 36
	StructureTypeCommandPoolCreateInfo            StructureType = 39
	StructureTypeCommandBufferAllocateInfo        StructureType = 40
	StructureTypeCommandBufferBeginInfo           StructureType = 42
	StructureTypeMemoryBarrier                    StructureType = 46
	StructureTypeBufferMemoryBarrier              StructureType = 44
	StructureTypeImageMemoryBarrier               StructureType = 45
	StructureTypeFenceCreateInfo                  StructureType = 8
	StructureTypeSemaphoreCreateInfo               StructureType = 9
	StructureTypeEventCreateInfo                   StructureType = 10
	StructureTypePhysicalDeviceFeatures2           StructureType = 1000059000
	StructureTypeSemaphoreTypeCreateInfo           StructureType = 1000207002
	StructureTypeTimelineSemaphoreSubmitInfo       StructureType = 1000207003
	StructureTypeSemaphoreWaitInfo                 StructureType = 1000207004
	StructureTypeSemaphoreSignalInfo               StructureType = 1000207005
)

// SemaphoreType distinguishes binary from timeline semaphores.
type SemaphoreType uint32

const (
	SemaphoreTypeBinary   SemaphoreType = 0
	SemaphoreTypeTimeline SemaphoreType = 1
)

// PipelineBindPoint selects the bind point a command targets.
type PipelineBindPoint uint32

const (
	PipelineBindPointGraphics PipelineBindPoint = 0
	PipelineBindPointCompute  PipelineBindPoint = 1
)

// DescriptorType enumerates descriptor kinds; the compute subset uses only
// StorageBuffer for the persistent "set 0" layout.
type DescriptorType uint32

const (
	DescriptorTypeSampler             DescriptorType = 0
	DescriptorTypeCombinedImageSampler DescriptorType = 1
	DescriptorTypeSampledImage        DescriptorType = 2
	DescriptorTypeStorageImage        DescriptorType = 3
	DescriptorTypeUniformTexelBuffer  DescriptorType = 4
	DescriptorTypeStorageTexelBuffer  DescriptorType = 5
	DescriptorTypeUniformBuffer       DescriptorType = 6
	DescriptorTypeStorageBuffer       DescriptorType = 7
)

// CommandBufferLevel distinguishes primary from secondary buffers; the
// compute subset only allocates primary buffers.
type CommandBufferLevel uint32

const (
	CommandBufferLevelPrimary   CommandBufferLevel = 0
	CommandBufferLevelSecondary CommandBufferLevel = 1
)

// SharingMode controls whether a buffer is exclusive to one queue family.
type SharingMode uint32

const (
	SharingModeExclusive  SharingMode = 0
	SharingModeConcurrent SharingMode = 1
)

// IndirectCommandsFlags, QueueFlags identify queue family capabilities.
type QueueFlags uint32

const (
	QueueGraphicsBit      QueueFlags = 1 << 0
	QueueComputeBit       QueueFlags = 1 << 1
	QueueTransferBit      QueueFlags = 1 << 2
	QueueSparseBindingBit QueueFlags = 1 << 3
)
