package icd

import (
	"unsafe"

	"github.com/LynnColeArt/kronos-compute/vk"
)

// globalResolver builds a vk.GetProcAddrFunc bound to one loaded ICD's
// vk_icdGetInstanceProcAddr, used for global (handle 0) and instance
// lookups; procAddrResolver wraps a caller-supplied proc-addr function
// pointer (vkGetDeviceProcAddr) for device lookups — matching spec.md §4.2's "instance functions
// through the instance proc addr... device functions must be resolved
// through the device proc addr" rule.
func (l *Loaded) globalResolver() vk.GetProcAddrFunc {
	return func(handle uint64, name string) unsafe.Pointer {
		p, err := vk.CallProcAddrFn(l.icdProc, handle, name)
		if err != nil {
			return nil
		}
		return p
	}
}

func procAddrResolver(fn unsafe.Pointer) vk.GetProcAddrFunc {
	return func(handle uint64, name string) unsafe.Pointer {
		if fn == nil {
			return nil
		}
		p, err := vk.CallProcAddrFn(fn, handle, name)
		if err != nil {
			return nil
		}
		return p
	}
}

// Tables is the three-tier dispatch snapshot for one ICD, published by
// copy-on-update: a writer builds a fresh Tables value and swaps the
// pointer held by the owning Instance/Device record, so concurrent readers
// always see one coherent snapshot (spec.md §4.2, §5).
type Tables struct {
	Global   *vk.GlobalTable
	Instance *vk.InstanceTable
	Device   map[uint64]*vk.DeviceTable
}

// LoadGlobal resolves the pre-instance entry points for this ICD.
func (l *Loaded) LoadGlobal() *vk.GlobalTable {
	return vk.LoadGlobalTable(l.globalResolver())
}

// LoadInstance resolves the instance-scoped entry points once CreateInstance
// has produced an instance handle for this ICD.
func (l *Loaded) LoadInstance(instance uint64) *vk.InstanceTable {
	return vk.LoadInstanceTable(l.globalResolver(), instance)
}

// LoadDevice resolves device-scoped entry points through
// vkGetDeviceProcAddr, never through a NULL-instance global lookup — Intel
// drivers return NULL for several device-scoped names looked up that way.
func (l *Loaded) LoadDevice(getDeviceProcAddr unsafe.Pointer, device uint64) *vk.DeviceTable {
	return vk.LoadDeviceTable(procAddrResolver(getDeviceProcAddr), device)
}
