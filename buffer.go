package kronos

import (
	"unsafe"

	"github.com/LynnColeArt/kronos-compute/vk"
)

// Buffer is a GPU buffer bound through the slab allocator's combined
// AllocateBuffer path, matching original_source's own Buffer: callers
// never see a raw memory handle or offset.
type Buffer struct {
	device   *Device
	handle   vk.Buffer
	size     uint64
	usage    BufferUsage
	released bool
}

// Size returns the buffer's size in bytes.
func (b *Buffer) Size() uint64 { return b.size }

// Usage returns the buffer's usage flags.
func (b *Buffer) Usage() BufferUsage { return b.usage }

// Release frees the buffer's sub-allocation and destroys the buffer
// object. Safe to call more than once.
func (b *Buffer) Release() {
	if b.released {
		return
	}
	b.released = true
	b.device.core.FreeBuffer(b.device.handle, b.handle)
	b.device.core.DestroyBuffer(b.device.handle, b.handle)
}

// Write copies data into a host-visible buffer created with
// Device.CreateHostVisibleBuffer. It is an error to call Write on a
// device-local buffer.
func (b *Buffer) Write(data []byte) error {
	if b.released {
		return ErrReleased
	}
	ptr, res := b.device.core.BufferHostPointer(b.device.handle, b.handle)
	if !res.Succeeded() {
		return errorFromResult("BufferHostPointer", res)
	}
	if ptr == 0 {
		return nil // mock mode: no backing memory to write into
	}
	n := uint64(len(data))
	if n > b.size {
		n = b.size
	}
	if n == 0 {
		return nil
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n)
	copy(dst, data[:n])
	return nil
}

// Read copies the buffer's current contents into data, up to len(data)
// or the buffer's size, whichever is smaller. Only valid for a
// host-visible buffer.
func (b *Buffer) Read(data []byte) error {
	if b.released {
		return ErrReleased
	}
	ptr, res := b.device.core.BufferHostPointer(b.device.handle, b.handle)
	if !res.Succeeded() {
		return errorFromResult("BufferHostPointer", res)
	}
	if ptr == 0 {
		return nil // mock mode: no backing memory to read from
	}
	n := uint64(len(data))
	if n > b.size {
		n = b.size
	}
	if n == 0 {
		return nil
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n)
	copy(data[:n], src)
	return nil
}
