package kronos

import "github.com/LynnColeArt/kronos-compute/vk"

// ShaderModule is a compiled SPIR-V compute shader.
type ShaderModule struct {
	device   *Device
	handle   vk.ShaderModule
	released bool
}

// Release destroys the shader module. Safe to call more than once.
func (s *ShaderModule) Release() {
	if s.released {
		return
	}
	s.released = true
	s.device.core.DestroyShaderModule(s.device.handle, s.handle)
}
