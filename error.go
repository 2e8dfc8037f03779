package kronos

import (
	"fmt"

	"github.com/LynnColeArt/kronos-compute/vk"
)

// DriverError wraps a non-success vk.Result returned by an entry-point
// shim, carrying the operation name that failed. Mirrors
// original_source's KronosError::from(VkResult) conversion, adapted to
// Go's single error-return idiom instead of a Result enum.
type DriverError struct {
	Op     string
	Result vk.Result
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("kronos: %s failed: result %d", e.Op, e.Result)
}

func errorFromResult(op string, res vk.Result) error {
	return &DriverError{Op: op, Result: res}
}
