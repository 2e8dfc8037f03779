package compute

import (
	"unsafe"

	"github.com/LynnColeArt/kronos-compute/kerr"
	"github.com/LynnColeArt/kronos-compute/vk"
)

// unsafePushConstantRanges views a C-style pPushConstantRanges array as a
// Go slice for the size-ceiling check below; the memory is owned by the
// caller for the duration of this call, matching every other pNext-style
// array the compute subset reads without copying.
func unsafePushConstantRanges(p *vk.PushConstantRange, count uint32) []vk.PushConstantRange {
	return unsafe.Slice(p, count)
}

func (c *Core) CreateShaderModule(device vk.Device, info *vk.ShaderModuleCreateInfo) (vk.ShaderModule, vk.Result) {
	if info == nil || info.SType != vk.StructureTypeShaderModuleCreateInfo {
		return 0, vk.ErrorInitializationFailed
	}
	rec, err := c.lookupDevice(device)
	if err != nil {
		return 0, vk.ErrorInitializationFailed
	}
	if rec.mock {
		return 1, vk.Success
	}
	var mod vk.ShaderModule
	res := rec.table.CreateShaderModule(rec.device, info, nil, &mod)
	return mod, res
}

func (c *Core) DestroyShaderModule(device vk.Device, mod vk.ShaderModule) {
	rec, err := c.lookupDevice(device)
	if err != nil || rec.mock {
		return
	}
	rec.table.DestroyShaderModule(rec.device, mod, nil)
}

// CreatePipelineLayout validates every push-constant range against
// vk.MaxPushConstantBytes before reaching the driver, per spec.md §4.4's
// hard ceiling on a single compute push-constant range.
func (c *Core) CreatePipelineLayout(device vk.Device, info *vk.PipelineLayoutCreateInfo) (vk.PipelineLayout, vk.Result) {
	if info == nil || info.SType != vk.StructureTypePipelineLayoutCreateInfo {
		return 0, vk.ErrorInitializationFailed
	}
	if info.PushConstantRangeCount > 0 && info.PPushConstantRanges != nil {
		ranges := unsafePushConstantRanges(info.PPushConstantRanges, info.PushConstantRangeCount)
		for _, r := range ranges {
			if r.Size > vk.MaxPushConstantBytes {
				return 0, kerr.ToResult(kerr.New(kerr.CategoryProtocol, "compute", "CreatePipelineLayout", kerr.ErrPushConstantTooLarge))
			}
		}
	}

	rec, err := c.lookupDevice(device)
	if err != nil {
		return 0, vk.ErrorInitializationFailed
	}
	if rec.mock {
		return 1, vk.Success
	}
	var layout vk.PipelineLayout
	res := rec.table.CreatePipelineLayout(rec.device, info, nil, &layout)
	return layout, res
}

func (c *Core) DestroyPipelineLayout(device vk.Device, layout vk.PipelineLayout) {
	rec, err := c.lookupDevice(device)
	if err != nil || rec.mock {
		return
	}
	rec.table.DestroyPipelineLayout(rec.device, layout, nil)
}

func (c *Core) CreateComputePipelines(device vk.Device, cache vk.PipelineCache, infos []vk.ComputePipelineCreateInfo) ([]vk.Pipeline, vk.Result) {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return nil, vk.ErrorInitializationFailed
	}
	if rec.mock {
		out := make([]vk.Pipeline, len(infos))
		for i := range out {
			out[i] = vk.Pipeline(i + 1)
		}
		return out, vk.Success
	}
	if len(infos) == 0 {
		return nil, vk.Success
	}
	out := make([]vk.Pipeline, len(infos))
	res := rec.table.CreateComputePipelines(rec.device, cache, uint32(len(infos)), &infos[0], nil, &out[0])
	if !res.Succeeded() {
		return nil, res
	}
	return out, vk.Success
}

func (c *Core) DestroyPipeline(device vk.Device, pipeline vk.Pipeline) {
	rec, err := c.lookupDevice(device)
	if err != nil || rec.mock {
		return
	}
	rec.table.DestroyPipeline(rec.device, pipeline, nil)
}
