// Package kronos is the safe facade over the compute entry-point shims:
// typed Go wrappers — Instance, Device, Queue, Buffer, ShaderModule,
// Pipeline, CommandList — that hide handle bookkeeping and the raw
// sType-tagged create-info structs behind ordinary Go constructors and
// methods. It carries no subsystem logic of its own; every call resolves
// down to the compute package's shims. Grounded on gogpu-wgpu's own root
// package (Instance/Adapter/Device/Buffer/Queue as thin structs wrapping
// a core handle, CreateX/Release naming, a released-guard bool on every
// type) and on original_source/src/api's ComputeContext/Buffer/Shader/
// Pipeline/CommandBuilder shape for what the facade needs to expose.
package kronos
