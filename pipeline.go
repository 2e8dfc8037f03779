package kronos

import "github.com/LynnColeArt/kronos-compute/vk"

// PipelineConfig configures compute pipeline creation. EntryPoint
// defaults to "main" and BindingCount to 0 on the zero value.
type PipelineConfig struct {
	// EntryPoint names the shader's entry function. Empty defaults to
	// "main".
	EntryPoint string
	// BindingCount is the number of storage-buffer bindings at set 0,
	// binding 0..BindingCount-1.
	BindingCount uint32
	// PushConstantSize is the size in bytes of a single push-constant
	// range at offset 0, bound to the compute stage. Must not exceed
	// vk.MaxPushConstantBytes.
	PushConstantSize uint32
}

// Pipeline is a compute pipeline together with the descriptor set layout
// and pipeline layout it was built from.
type Pipeline struct {
	device              *Device
	handle              vk.Pipeline
	layout              vk.PipelineLayout
	descriptorSetLayout vk.DescriptorSetLayout
	pushConstantSize    uint32
	released            bool
}

// CreateComputePipeline creates a compute pipeline from shader using cfg.
func (d *Device) CreateComputePipeline(shader *ShaderModule, cfg PipelineConfig) (*Pipeline, error) {
	if d.released {
		return nil, ErrReleased
	}
	if cfg.PushConstantSize > vk.MaxPushConstantBytes {
		return nil, errorFromResult("CreateComputePipeline", vk.ErrorInitializationFailed)
	}
	entryPoint := cfg.EntryPoint
	if entryPoint == "" {
		entryPoint = "main"
	}
	entryPointBytes := append([]byte(entryPoint), 0)

	bindings := make([]vk.DescriptorSetLayoutBinding, cfg.BindingCount)
	for i := range bindings {
		bindings[i] = vk.DescriptorSetLayoutBinding{
			Binding:         uint32(i),
			DescriptorType:  vk.DescriptorTypeStorageBuffer,
			DescriptorCount: 1,
			StageFlags:      vk.ShaderStageComputeBit,
		}
	}
	layoutInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: cfg.BindingCount,
	}
	if cfg.BindingCount > 0 {
		layoutInfo.PBindings = &bindings[0]
	}
	setLayout, res := d.core.CreateDescriptorSetLayout(d.handle, &layoutInfo)
	if !res.Succeeded() {
		return nil, errorFromResult("CreateDescriptorSetLayout", res)
	}

	pipelineLayoutInfo := vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: 1,
		PSetLayouts:    &setLayout,
	}
	var pushRange vk.PushConstantRange
	if cfg.PushConstantSize > 0 {
		pushRange = vk.PushConstantRange{StageFlags: vk.ShaderStageComputeBit, Size: cfg.PushConstantSize}
		pipelineLayoutInfo.PushConstantRangeCount = 1
		pipelineLayoutInfo.PPushConstantRanges = &pushRange
	}
	layout, res := d.core.CreatePipelineLayout(d.handle, &pipelineLayoutInfo)
	if !res.Succeeded() {
		d.core.DestroyDescriptorSetLayout(d.handle, setLayout)
		return nil, errorFromResult("CreatePipelineLayout", res)
	}

	createInfo := vk.ComputePipelineCreateInfo{
		SType: vk.StructureTypeComputePipelineCreateInfo,
		Stage: vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageComputeBit,
			Module: shader.handle,
			PName:  &entryPointBytes[0],
		},
		Layout: layout,
	}
	pipelines, res := d.core.CreateComputePipelines(d.handle, 0, []vk.ComputePipelineCreateInfo{createInfo})
	if !res.Succeeded() {
		d.core.DestroyPipelineLayout(d.handle, layout)
		d.core.DestroyDescriptorSetLayout(d.handle, setLayout)
		return nil, errorFromResult("CreateComputePipelines", res)
	}

	return &Pipeline{
		device:              d,
		handle:              pipelines[0],
		layout:              layout,
		descriptorSetLayout: setLayout,
		pushConstantSize:    cfg.PushConstantSize,
	}, nil
}

// Release destroys the pipeline and the layouts it owns. Safe to call
// more than once.
func (p *Pipeline) Release() {
	if p.released {
		return
	}
	p.released = true
	p.device.core.DestroyPipeline(p.device.handle, p.handle)
	p.device.core.DestroyPipelineLayout(p.device.handle, p.layout)
	p.device.core.DestroyDescriptorSetLayout(p.device.handle, p.descriptorSetLayout)
}
