package kerr

import (
	"errors"

	"github.com/LynnColeArt/kronos-compute/vk"
)

// DriverResult wraps a verbatim driver result code so it survives the
// kerr.Error chain unchanged, satisfying the "driver errors forwarded
// verbatim" clause of spec.md §7.
type DriverResult struct {
	Result vk.Result
}

func (d *DriverResult) Error() string { return "driver result" }

// ToResult translates an internal error into the vk.Result the entry-point
// boundary returns, per spec.md §7's propagation policy: errors detected
// before any driver call map to the closest standard code; a wrapped
// DriverResult passes through unchanged.
func ToResult(err error) vk.Result {
	if err == nil {
		return vk.Success
	}

	var dr *DriverResult
	if errors.As(err, &dr) {
		return dr.Result
	}

	switch {
	case errors.Is(err, ErrTimeout):
		return vk.Timeout
	case errors.Is(err, ErrNoManifestsFound), errors.Is(err, ErrInvalidManifest),
		errors.Is(err, ErrLibraryLoadFailed), errors.Is(err, ErrUntrustedLibrary),
		errors.Is(err, ErrMissingICDEntryPoint), errors.Is(err, ErrFunctionPointerMissing):
		return vk.ErrorIncompatibleDriver
	case errors.Is(err, ErrLockPoisoned), errors.Is(err, ErrSemaphoreMisuse),
		errors.Is(err, ErrNullRequiredPointer), errors.Is(err, ErrWrongStructureType),
		errors.Is(err, ErrCommandBufferState), errors.Is(err, ErrPushConstantTooLarge):
		return vk.ErrorInitializationFailed
	case errors.Is(err, ErrUnknownHandle), errors.Is(err, ErrCrossICDRouting):
		return vk.ErrorDeviceLost
	case errors.Is(err, ErrPoolNotInitialized):
		return vk.ErrorOutOfPoolMemory
	case errors.Is(err, ErrDoubleFree):
		return vk.Success
	default:
		return vk.ErrorUnknown
	}
}
