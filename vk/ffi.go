// goffi calling convention note (ported verbatim from the teacher's own
// vk/loader.go doc comment, since every wrapper below depends on it):
//
// goffi expects args[] to contain pointers to WHERE argument values are
// stored, NOT the values themselves. For scalar types this means passing
// &value; for pointer-typed arguments it means passing a pointer TO the
// pointer variable holding the address, i.e. double indirection.
package vk

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// Library is a loaded shared object. Unlike the single global Vulkan
// library the teacher's vk package assumes, the ICD loader here may hold
// several of these open simultaneously (aggregated mode), so loading is
// exposed as a constructor rather than a package-level singleton.
type Library struct {
	handle unsafe.Pointer
	path   string
}

// LoadLibrary opens a shared object at an absolute or resolvable path
// with immediate, local-scope binding, matching the loading mode spec.md
// §4.2 requires of ICD libraries.
func LoadLibrary(path string) (*Library, error) {
	h, err := ffi.LoadLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("load library %s: %w", path, err)
	}
	return &Library{handle: h, path: path}, nil
}

// Symbol resolves a single exported symbol, returning nil if absent.
func (l *Library) Symbol(name string) unsafe.Pointer {
	sym, err := ffi.GetSymbol(l.handle, name)
	if err != nil {
		return nil
	}
	return sym
}

// Close releases the library. Safe to call on an already-closed Library.
func (l *Library) Close() error {
	if l == nil || l.handle == nil {
		return nil
	}
	err := ffi.FreeLibrary(l.handle)
	l.handle = nil
	return err
}

// Path returns the path the library was opened from.
func (l *Library) Path() string { return l.path }

var (
	procAddrSig     types.CallInterface
	procAddrSigOnce sync.Once
	procAddrSigErr  error
)

func prepareProcAddrSig() error {
	procAddrSigOnce.Do(func() {
		procAddrSigErr = ffi.PrepareCallInterface(&procAddrSig, types.DefaultCall,
			types.PointerTypeDescriptor,
			[]*types.TypeDescriptor{types.UInt64TypeDescriptor, types.PointerTypeDescriptor})
	})
	return procAddrSigErr
}

// CallProcAddrFn invokes a `PFN_vkVoidFunction (*)(uint64 handle, const
// char *name)`-shaped function — the shape shared by
// vk_icdGetInstanceProcAddr, vkGetInstanceProcAddr, and
// vkGetDeviceProcAddr. handle is the instance or device raw value (0 for
// global lookups).
func CallProcAddrFn(fn unsafe.Pointer, handle uint64, name string) (unsafe.Pointer, error) {
	if fn == nil {
		return nil, fmt.Errorf("nil proc-addr function")
	}
	if err := prepareProcAddrSig(); err != nil {
		return nil, err
	}
	cname := make([]byte, len(name)+1)
	copy(cname, name)
	namePtr := unsafe.Pointer(&cname[0])

	var result unsafe.Pointer
	args := [2]unsafe.Pointer{
		unsafe.Pointer(&handle),
		unsafe.Pointer(&namePtr),
	}
	if err := ffi.CallFunction(&procAddrSig, fn, unsafe.Pointer(&result), args[:]); err != nil {
		return nil, err
	}
	return result, nil
}
