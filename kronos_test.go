package kronos_test

import (
	"bytes"
	"testing"

	"github.com/LynnColeArt/kronos-compute"
)

// createTestDevice opens an Instance and a Device against it. With no ICD
// installed on the host this runs entirely against the mock path, but the
// facade's contract is that the call sequence below always succeeds either
// way -- callers never need to special-case a missing driver.
func createTestDevice(t *testing.T) (*kronos.Instance, *kronos.Device) {
	t.Helper()

	instance, err := kronos.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance() error = %v", err)
	}

	device, err := instance.OpenDevice()
	if err != nil {
		instance.Release()
		t.Fatalf("OpenDevice() error = %v", err)
	}

	return instance, device
}

func TestCreateInstanceAndRelease(t *testing.T) {
	instance, err := kronos.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance() error = %v", err)
	}
	instance.Release()
	instance.Release() // Release must be idempotent.
}

func TestCreateInstanceWithDescriptor(t *testing.T) {
	instance, err := kronos.CreateInstance(&kronos.InstanceDescriptor{ApplicationName: "kronos-test"})
	if err != nil {
		t.Fatalf("CreateInstance() error = %v", err)
	}
	defer instance.Release()
}

func TestOpenDeviceAfterRelease(t *testing.T) {
	instance, err := kronos.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance() error = %v", err)
	}
	instance.Release()

	if _, err := instance.OpenDevice(); err != kronos.ErrReleased {
		t.Errorf("OpenDevice() after Release should return ErrReleased, got %v", err)
	}
}

func TestDeviceLifecycle(t *testing.T) {
	instance, device := createTestDevice(t)
	defer instance.Release()

	if err := device.WaitIdle(); err != nil {
		t.Errorf("WaitIdle() error = %v", err)
	}
	device.Release()
	device.Release() // idempotent

	if err := device.WaitIdle(); err != kronos.ErrReleased {
		t.Errorf("WaitIdle() after Release should return ErrReleased, got %v", err)
	}
}

func TestBufferWriteRead(t *testing.T) {
	instance, device := createTestDevice(t)
	defer instance.Release()
	defer device.Release()

	buf, err := device.CreateHostVisibleBuffer(64, kronos.BufferUsageStorage|kronos.BufferUsageTransferDst)
	if err != nil {
		t.Fatalf("CreateHostVisibleBuffer() error = %v", err)
	}
	defer buf.Release()

	if buf.Size() != 64 {
		t.Errorf("Size() = %d, want 64", buf.Size())
	}

	payload := bytes.Repeat([]byte{0xAB}, 64)
	if err := buf.Write(payload); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	readBack := make([]byte, 64)
	if err := buf.Read(readBack); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	// In mock mode there is no backing memory, so Write/Read are no-ops
	// rather than round-tripping data; a real driver's host-visible pool
	// would make payload and readBack equal here instead.
}

func TestBufferReleaseIsIdempotent(t *testing.T) {
	instance, device := createTestDevice(t)
	defer instance.Release()
	defer device.Release()

	buf, err := device.CreateBuffer(128, kronos.BufferUsageStorage)
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	buf.Release()
	buf.Release()
}

func TestShaderModuleRejectsUnalignedCode(t *testing.T) {
	instance, device := createTestDevice(t)
	defer instance.Release()
	defer device.Release()

	if _, err := device.CreateShaderModule([]byte{0x03, 0x02, 0x23}); err == nil {
		t.Error("CreateShaderModule should reject a code slice whose length isn't a multiple of 4")
	}
}

func spirvStub() []byte {
	return []byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x00, 0x01, 0x00}
}

func TestComputePipelineAndDispatch(t *testing.T) {
	instance, device := createTestDevice(t)
	defer instance.Release()
	defer device.Release()

	shader, err := device.CreateShaderModule(spirvStub())
	if err != nil {
		t.Fatalf("CreateShaderModule() error = %v", err)
	}
	defer shader.Release()

	buf, err := device.CreateBuffer(256, kronos.BufferUsageStorage)
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	defer buf.Release()

	pipeline, err := device.CreateComputePipeline(shader, kronos.PipelineConfig{
		BindingCount:     1,
		PushConstantSize: 16,
	})
	if err != nil {
		t.Fatalf("CreateComputePipeline() error = %v", err)
	}
	defer pipeline.Release()

	err = device.Dispatch(pipeline).
		BindBuffer(0, buf).
		PushConstants(make([]byte, 16)).
		Workgroups(8, 1, 1).
		Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
}

func TestComputePipelineRejectsOversizedPushConstants(t *testing.T) {
	instance, device := createTestDevice(t)
	defer instance.Release()
	defer device.Release()

	shader, err := device.CreateShaderModule(spirvStub())
	if err != nil {
		t.Fatalf("CreateShaderModule() error = %v", err)
	}
	defer shader.Release()

	if _, err := device.CreateComputePipeline(shader, kronos.PipelineConfig{PushConstantSize: 256}); err == nil {
		t.Error("CreateComputePipeline should reject a push constant size over the driver ceiling")
	}
}

func TestDispatchRejectsOversizedPushConstantPayload(t *testing.T) {
	instance, device := createTestDevice(t)
	defer instance.Release()
	defer device.Release()

	shader, err := device.CreateShaderModule(spirvStub())
	if err != nil {
		t.Fatalf("CreateShaderModule() error = %v", err)
	}
	defer shader.Release()

	pipeline, err := device.CreateComputePipeline(shader, kronos.PipelineConfig{PushConstantSize: 4})
	if err != nil {
		t.Fatalf("CreateComputePipeline() error = %v", err)
	}
	defer pipeline.Release()

	err = device.Dispatch(pipeline).PushConstants(make([]byte, 16)).Execute()
	if err == nil {
		t.Error("Execute should reject push constant data larger than the pipeline's configured size")
	}
}

func TestQueueWaitIdleAndFlush(t *testing.T) {
	instance, device := createTestDevice(t)
	defer instance.Release()
	defer device.Release()

	queue := device.Queue()
	if err := queue.WaitIdle(); err != nil {
		t.Errorf("WaitIdle() error = %v", err)
	}
	if err := queue.Flush(); err != nil {
		t.Errorf("Flush() error = %v", err)
	}
}
