package compute

import (
	"testing"

	"github.com/LynnColeArt/kronos-compute/config"
	"github.com/LynnColeArt/kronos-compute/slaballoc"
	"github.com/LynnColeArt/kronos-compute/vk"
)

// newMockCore builds a Core against a config that can never resolve a real
// ICD, so every test below exercises the mock path deterministically
// regardless of what driver, if any, the host running the test happens to
// have installed.
func newMockCore(t *testing.T) *Core {
	t.Helper()
	cfg := config.Load()
	cfg.ICDSearchPaths = []string{t.TempDir()}
	cfg.PreferredManifests = nil
	c, err := NewCore(cfg)
	if err != nil {
		t.Fatalf("NewCore() error = %v", err)
	}
	if !c.mockMode() {
		t.Fatal("expected mock mode with only an empty ICD search directory configured")
	}
	return c
}

func TestNewCoreMockMode(t *testing.T) {
	c := newMockCore(t)
	defer c.Close()
}

func TestCreateInstanceValidation(t *testing.T) {
	c := newMockCore(t)
	defer c.Close()

	if _, res := c.CreateInstance(nil); res.Succeeded() {
		t.Error("CreateInstance(nil) should fail")
	}

	badInfo := &vk.InstanceCreateInfo{SType: vk.StructureTypeDeviceCreateInfo}
	if _, res := c.CreateInstance(badInfo); res.Succeeded() {
		t.Error("CreateInstance with wrong sType should fail")
	}

	info := &vk.InstanceCreateInfo{SType: vk.StructureTypeInstanceCreateInfo}
	inst, res := c.CreateInstance(info)
	if !res.Succeeded() {
		t.Fatalf("CreateInstance() result = %v, want success", res)
	}
	if inst.IsNull() {
		t.Error("CreateInstance should return a non-null handle in mock mode")
	}
	c.DestroyInstance(inst)
}

func TestEnumeratePhysicalDevicesMockEmpty(t *testing.T) {
	c := newMockCore(t)
	defer c.Close()

	inst, res := c.CreateInstance(&vk.InstanceCreateInfo{SType: vk.StructureTypeInstanceCreateInfo})
	if !res.Succeeded() {
		t.Fatalf("CreateInstance() result = %v", res)
	}
	defer c.DestroyInstance(inst)

	pds, res := c.EnumeratePhysicalDevices(inst)
	if !res.Succeeded() {
		t.Fatalf("EnumeratePhysicalDevices() result = %v", res)
	}
	if len(pds) != 0 {
		t.Errorf("mock mode should report no physical devices, got %d", len(pds))
	}
}

func TestEnumeratePhysicalDevicesUnknownInstance(t *testing.T) {
	c := newMockCore(t)
	defer c.Close()

	if _, res := c.EnumeratePhysicalDevices(vk.Instance(9999)); res.Succeeded() {
		t.Error("EnumeratePhysicalDevices on an unknown instance should fail")
	}
}

func mockDevice(t *testing.T, c *Core) vk.Device {
	t.Helper()
	info := &vk.DeviceCreateInfo{SType: vk.StructureTypeDeviceCreateInfo}
	dev, res := c.CreateDevice(0, info)
	if !res.Succeeded() {
		t.Fatalf("CreateDevice() result = %v", res)
	}
	return dev
}

func TestCreateDeviceValidation(t *testing.T) {
	c := newMockCore(t)
	defer c.Close()

	if _, res := c.CreateDevice(0, nil); res.Succeeded() {
		t.Error("CreateDevice(nil) should fail")
	}
	dev := mockDevice(t, c)
	if dev.IsNull() {
		t.Error("CreateDevice should return a non-null handle in mock mode")
	}
	c.DestroyDevice(dev)
}

func TestGetDeviceQueueAndWaitIdle(t *testing.T) {
	c := newMockCore(t)
	defer c.Close()
	dev := mockDevice(t, c)
	defer c.DestroyDevice(dev)

	queue, res := c.GetDeviceQueue(dev, 0, 0)
	if !res.Succeeded() || queue.IsNull() {
		t.Fatalf("GetDeviceQueue() = (%v, %v)", queue, res)
	}
	if res := c.DeviceWaitIdle(dev); !res.Succeeded() {
		t.Errorf("DeviceWaitIdle() = %v, want success", res)
	}
	if res := c.QueueWaitIdle(dev, queue); !res.Succeeded() {
		t.Errorf("QueueWaitIdle() = %v, want success", res)
	}
}

func TestBufferLifecycleMock(t *testing.T) {
	c := newMockCore(t)
	defer c.Close()
	dev := mockDevice(t, c)
	defer c.DestroyDevice(dev)

	info := &vk.BufferCreateInfo{SType: vk.StructureTypeBufferCreateInfo, Size: 256, Usage: vk.BufferUsageStorageBufferBit}
	buf, res := c.CreateBuffer(dev, info)
	if !res.Succeeded() || buf.IsNull() {
		t.Fatalf("CreateBuffer() = (%v, %v)", buf, res)
	}

	if res := c.AllocateBuffer(dev, buf, slaballoc.PoolDeviceLocal); !res.Succeeded() {
		t.Fatalf("AllocateBuffer() = %v, want success", res)
	}

	ptr, res := c.BufferHostPointer(dev, buf)
	if !res.Succeeded() {
		t.Fatalf("BufferHostPointer() result = %v, want success", res)
	}
	if ptr != 0 {
		t.Errorf("mock mode should report a zero host pointer, got %#x", ptr)
	}

	c.FreeBuffer(dev, buf)
	c.DestroyBuffer(dev, buf)
}

func TestCreateBufferRejectsWrongStructureType(t *testing.T) {
	c := newMockCore(t)
	defer c.Close()
	dev := mockDevice(t, c)
	defer c.DestroyDevice(dev)

	bad := &vk.BufferCreateInfo{SType: vk.StructureTypeDeviceCreateInfo}
	if _, res := c.CreateBuffer(dev, bad); res.Succeeded() {
		t.Error("CreateBuffer with wrong sType should fail")
	}
}

func TestShaderAndPipelineLifecycleMock(t *testing.T) {
	c := newMockCore(t)
	defer c.Close()
	dev := mockDevice(t, c)
	defer c.DestroyDevice(dev)

	shaderInfo := &vk.ShaderModuleCreateInfo{SType: vk.StructureTypeShaderModuleCreateInfo, CodeSize: 8}
	mod, res := c.CreateShaderModule(dev, shaderInfo)
	if !res.Succeeded() || mod.IsNull() {
		t.Fatalf("CreateShaderModule() = (%v, %v)", mod, res)
	}
	defer c.DestroyShaderModule(dev, mod)

	setLayout, res := c.CreateDescriptorSetLayout(dev, &vk.DescriptorSetLayoutCreateInfo{SType: vk.StructureTypeDescriptorSetLayoutCreateInfo})
	if !res.Succeeded() {
		t.Fatalf("CreateDescriptorSetLayout() result = %v", res)
	}
	defer c.DestroyDescriptorSetLayout(dev, setLayout)

	layoutInfo := &vk.PipelineLayoutCreateInfo{SType: vk.StructureTypePipelineLayoutCreateInfo, SetLayoutCount: 1, PSetLayouts: &setLayout}
	layout, res := c.CreatePipelineLayout(dev, layoutInfo)
	if !res.Succeeded() || layout.IsNull() {
		t.Fatalf("CreatePipelineLayout() = (%v, %v)", layout, res)
	}
	defer c.DestroyPipelineLayout(dev, layout)

	createInfo := vk.ComputePipelineCreateInfo{SType: vk.StructureTypeComputePipelineCreateInfo, Layout: layout}
	pipelines, res := c.CreateComputePipelines(dev, 0, []vk.ComputePipelineCreateInfo{createInfo})
	if !res.Succeeded() || len(pipelines) != 1 {
		t.Fatalf("CreateComputePipelines() = (%v, %v)", pipelines, res)
	}
	c.DestroyPipeline(dev, pipelines[0])
}

func TestPipelineLayoutRejectsOversizedPushConstantRange(t *testing.T) {
	c := newMockCore(t)
	defer c.Close()
	dev := mockDevice(t, c)
	defer c.DestroyDevice(dev)

	tooBig := vk.PushConstantRange{Size: vk.MaxPushConstantBytes + 4}
	info := &vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		PushConstantRangeCount: 1,
		PPushConstantRanges:    &tooBig,
	}
	if _, res := c.CreatePipelineLayout(dev, info); res.Succeeded() {
		t.Error("CreatePipelineLayout should reject a push constant range over the byte ceiling")
	}
}

func TestCommandBufferDispatchAndSubmitMock(t *testing.T) {
	c := newMockCore(t)
	defer c.Close()
	dev := mockDevice(t, c)
	defer c.DestroyDevice(dev)
	queue, _ := c.GetDeviceQueue(dev, 0, 0)

	poolInfo := &vk.CommandPoolCreateInfo{SType: vk.StructureTypeCommandPoolCreateInfo}
	pool, res := c.CreateCommandPool(dev, poolInfo)
	if !res.Succeeded() {
		t.Fatalf("CreateCommandPool() result = %v", res)
	}
	defer c.DestroyCommandPool(dev, pool)

	allocInfo := &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	cbs, res := c.AllocateCommandBuffers(dev, allocInfo)
	if !res.Succeeded() || len(cbs) != 1 {
		t.Fatalf("AllocateCommandBuffers() = (%v, %v)", cbs, res)
	}
	cb := cbs[0]

	beginInfo := &vk.CommandBufferBeginInfo{SType: vk.StructureTypeCommandBufferBeginInfo, Flags: vk.CommandBufferUsageOneTimeSubmitBit}
	if res := c.BeginCommandBuffer(dev, cb, beginInfo); !res.Succeeded() {
		t.Fatalf("BeginCommandBuffer() result = %v", res)
	}
	c.CmdDispatch(dev, cb, 4, 1, 1)
	if res := c.EndCommandBuffer(dev, cb); !res.Succeeded() {
		t.Fatalf("EndCommandBuffer() result = %v", res)
	}

	submitInfo := vk.SubmitInfo{SType: vk.StructureTypeSubmitInfo, CommandBufferCount: 1, PCommandBuffers: &cb}
	if res := c.QueueSubmit(dev, queue, []vk.SubmitInfo{submitInfo}, 0); !res.Succeeded() {
		t.Fatalf("QueueSubmit() result = %v", res)
	}
	if res := c.QueueFlush(dev, queue); !res.Succeeded() {
		t.Fatalf("QueueFlush() result = %v", res)
	}
	c.FreeCommandBuffers(dev, pool, cbs)
}

func TestFenceLifecycleMock(t *testing.T) {
	c := newMockCore(t)
	defer c.Close()
	dev := mockDevice(t, c)
	defer c.DestroyDevice(dev)

	fence, res := c.CreateFence(dev, &vk.FenceCreateInfo{SType: vk.StructureTypeFenceCreateInfo})
	if !res.Succeeded() {
		t.Fatalf("CreateFence() result = %v", res)
	}
	if res := c.GetFenceStatus(dev, fence); res != vk.NotReady {
		t.Errorf("GetFenceStatus() = %v, want NotReady for an unsignalled fence", res)
	}

	signalled, res := c.CreateFence(dev, &vk.FenceCreateInfo{SType: vk.StructureTypeFenceCreateInfo, Flags: vk.FenceCreateSignaledBit})
	if !res.Succeeded() {
		t.Fatalf("CreateFence() result = %v", res)
	}
	if res := c.GetFenceStatus(dev, signalled); res != vk.Success {
		t.Errorf("GetFenceStatus() = %v, want Success for a pre-signalled fence", res)
	}
	if res := c.WaitForFences(dev, []vk.Fence{signalled}, true, 0); !res.Succeeded() {
		t.Errorf("WaitForFences() on an already-signalled fence should succeed immediately, got %v", res)
	}
	if res := c.ResetFences(dev, []vk.Fence{signalled}); !res.Succeeded() {
		t.Fatalf("ResetFences() result = %v", res)
	}
	if res := c.GetFenceStatus(dev, signalled); res != vk.NotReady {
		t.Errorf("GetFenceStatus() after ResetFences = %v, want NotReady", res)
	}

	c.DestroyFence(dev, fence)
	c.DestroyFence(dev, signalled)
}

func TestEventLifecycleMock(t *testing.T) {
	c := newMockCore(t)
	defer c.Close()
	dev := mockDevice(t, c)
	defer c.DestroyDevice(dev)

	ev, res := c.CreateEvent(dev, &vk.EventCreateInfo{SType: vk.StructureTypeEventCreateInfo})
	if !res.Succeeded() {
		t.Fatalf("CreateEvent() result = %v", res)
	}
	if res := c.GetEventStatus(dev, ev); res != vk.EventReset {
		t.Errorf("GetEventStatus() = %v, want EventReset", res)
	}
	if res := c.SetEvent(dev, ev); !res.Succeeded() {
		t.Fatalf("SetEvent() result = %v", res)
	}
	if res := c.GetEventStatus(dev, ev); res != vk.EventSet {
		t.Errorf("GetEventStatus() = %v, want EventSet", res)
	}
	if res := c.ResetEvent(dev, ev); !res.Succeeded() {
		t.Fatalf("ResetEvent() result = %v", res)
	}
	if res := c.GetEventStatus(dev, ev); res != vk.EventReset {
		t.Errorf("GetEventStatus() after ResetEvent = %v, want EventReset", res)
	}
	c.DestroyEvent(dev, ev)
}

func TestPersistentDescriptorSetMock(t *testing.T) {
	c := newMockCore(t)
	defer c.Close()
	dev := mockDevice(t, c)
	defer c.DestroyDevice(dev)

	set, res := c.GetPersistentDescriptorSet(dev, []vk.Buffer{1, 2})
	if !res.Succeeded() || set.IsNull() {
		t.Fatalf("GetPersistentDescriptorSet() = (%v, %v)", set, res)
	}
}
