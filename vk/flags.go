package vk

// Flag types below are bitmasks ported from the original implementation's
// core/flags.rs bitflag definitions. Only the compute subset's bits are
// defined; graphics-only bits (color attachment, depth/stencil, vertex
// input, index input...) are intentionally absent.

type BufferUsageFlags uint32

const (
	BufferUsageTransferSrcBit   BufferUsageFlags = 1 << 0
	BufferUsageTransferDstBit   BufferUsageFlags = 1 << 1
	BufferUsageUniformTexelBufferBit BufferUsageFlags = 1 << 2
	BufferUsageStorageTexelBufferBit BufferUsageFlags = 1 << 3
	BufferUsageUniformBufferBit BufferUsageFlags = 1 << 4
	BufferUsageStorageBufferBit BufferUsageFlags = 1 << 5
	BufferUsageIndirectBufferBit BufferUsageFlags = 1 << 8
)

type MemoryPropertyFlags uint32

const (
	MemoryPropertyDeviceLocalBit    MemoryPropertyFlags = 1 << 0
	MemoryPropertyHostVisibleBit    MemoryPropertyFlags = 1 << 1
	MemoryPropertyHostCoherentBit   MemoryPropertyFlags = 1 << 2
	MemoryPropertyHostCachedBit     MemoryPropertyFlags = 1 << 3
	MemoryPropertyLazilyAllocatedBit MemoryPropertyFlags = 1 << 4
)

// Has reports whether all bits in want are set.
func (f MemoryPropertyFlags) Has(want MemoryPropertyFlags) bool { return f&want == want }

type PipelineStageFlags uint32

const (
	PipelineStageTopOfPipeBit    PipelineStageFlags = 1 << 0
	PipelineStageTransferBit     PipelineStageFlags = 1 << 12
	PipelineStageComputeShaderBit PipelineStageFlags = 1 << 11
	PipelineStageHostBit         PipelineStageFlags = 1 << 14
	PipelineStageAllCommandsBit  PipelineStageFlags = 1 << 16
	PipelineStageBottomOfPipeBit PipelineStageFlags = 1 << 13
)

type AccessFlags uint32

const (
	AccessHostWriteBit      AccessFlags = 1 << 14
	AccessHostReadBit       AccessFlags = 1 << 13
	AccessShaderReadBit     AccessFlags = 1 << 5
	AccessShaderWriteBit    AccessFlags = 1 << 6
	AccessTransferReadBit   AccessFlags = 1 << 11
	AccessTransferWriteBit  AccessFlags = 1 << 12
	AccessMemoryReadBit     AccessFlags = 1 << 15
	AccessMemoryWriteBit    AccessFlags = 1 << 16
)

type ShaderStageFlags uint32

const (
	ShaderStageComputeBit ShaderStageFlags = 1 << 5
)

type CommandPoolCreateFlags uint32

const (
	CommandPoolCreateTransientBit          CommandPoolCreateFlags = 1 << 0
	CommandPoolCreateResetCommandBufferBit CommandPoolCreateFlags = 1 << 1
)

type CommandBufferUsageFlags uint32

const (
	CommandBufferUsageOneTimeSubmitBit CommandBufferUsageFlags = 1 << 0
)

type FenceCreateFlags uint32

const (
	FenceCreateSignaledBit FenceCreateFlags = 1 << 0
)

type DescriptorPoolCreateFlags uint32

const (
	DescriptorPoolCreateFreeDescriptorSetBit DescriptorPoolCreateFlags = 1 << 0
)

type SemaphoreWaitFlags uint32

const (
	SemaphoreWaitAnyBit SemaphoreWaitFlags = 1 << 0
)

type MemoryMapFlags uint32

const WholeSize uint64 = ^uint64(0)

// QueueFamilyIgnored marks a barrier's queue family fields as not
// performing a queue family ownership transfer.
const QueueFamilyIgnored uint32 = ^uint32(0)
