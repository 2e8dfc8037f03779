// Package vk defines the compute subset of the Vulkan wire ABI: opaque
// handles, result/enum constants, create-info structures, and the
// goffi-based dispatch machinery used to call into a loaded ICD.
//
// Struct layouts and enum values are ported from the original ICD
// implementation's core/structs.rs and core/enums.rs rather than invented,
// so that a real driver library can be called through them unmodified.
package vk

// Handle is the underlying representation of every opaque Vulkan object:
// a 64-bit integer, zero reserved for NULL. Concrete handle types below
// are distinct Go types over the same representation so the compiler
// catches accidental mixing (passing a Buffer where a DeviceMemory is
// expected).
type Handle uint64

// IsNull reports whether a handle is the reserved NULL value.
func (h Handle) IsNull() bool { return h == 0 }

type (
	Instance             Handle
	PhysicalDevice       Handle
	Device               Handle
	Queue                Handle
	DeviceMemory         Handle
	Buffer               Handle
	BufferView           Handle
	Image                Handle
	ImageView            Handle
	Sampler              Handle
	ShaderModule         Handle
	PipelineLayout       Handle
	Pipeline             Handle
	PipelineCache        Handle
	DescriptorSetLayout  Handle
	DescriptorPool       Handle
	DescriptorSet        Handle
	CommandPool          Handle
	CommandBuffer        Handle
	Fence                Handle
	Semaphore            Handle
	Event                Handle
	QueryPool            Handle
)

func (h Instance) IsNull() bool            { return h == 0 }
func (h PhysicalDevice) IsNull() bool      { return h == 0 }
func (h Device) IsNull() bool              { return h == 0 }
func (h Queue) IsNull() bool               { return h == 0 }
func (h DeviceMemory) IsNull() bool        { return h == 0 }
func (h Buffer) IsNull() bool              { return h == 0 }
func (h ShaderModule) IsNull() bool        { return h == 0 }
func (h PipelineLayout) IsNull() bool      { return h == 0 }
func (h Pipeline) IsNull() bool            { return h == 0 }
func (h DescriptorSetLayout) IsNull() bool { return h == 0 }
func (h DescriptorPool) IsNull() bool      { return h == 0 }
func (h DescriptorSet) IsNull() bool       { return h == 0 }
func (h CommandPool) IsNull() bool         { return h == 0 }
func (h CommandBuffer) IsNull() bool       { return h == 0 }
func (h Fence) IsNull() bool               { return h == 0 }
func (h Semaphore) IsNull() bool           { return h == 0 }
func (h Event) IsNull() bool               { return h == 0 }
