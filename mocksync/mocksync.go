// Package mocksync implements CPU-visible synchronization primitives for
// operations that must complete without an ICD call — fences,
// semaphores, and events backed by a mutex and condition variable rather
// than driver objects — plus the CommandBuffer/Fence/Event state
// machines the core enforces around them. Grounded on
// hal/vulkan/fence_pool.go's recycling-pool shape, generalized from a
// binary-fence-only pool to uniformly cover fence, binary semaphore, and
// event objects.
package mocksync

import (
	"sync"
	"time"

	"github.com/LynnColeArt/kronos-compute/kerr"
)

// FenceState is the Fence state machine: Unsignalled and Signalled, with
// an explicit Reset transition back to Unsignalled.
type FenceState int

const (
	FenceUnsignalled FenceState = iota
	FenceSignalled
)

// Fence is a CPU-signalable fence: a mutex-guarded boolean with a
// condition variable woken on every Signal.
type Fence struct {
	mu    sync.Mutex
	cond  *sync.Cond
	state FenceState
}

// NewFence creates a Fence, optionally pre-signalled.
func NewFence(signalled bool) *Fence {
	f := &Fence{}
	f.cond = sync.NewCond(&f.mu)
	if signalled {
		f.state = FenceSignalled
	}
	return f
}

// Signal transitions the fence to Signalled and wakes every waiter.
func (f *Fence) Signal() {
	f.mu.Lock()
	f.state = FenceSignalled
	f.mu.Unlock()
	f.cond.Broadcast()
}

// Reset explicitly transitions the fence back to Unsignalled.
func (f *Fence) Reset() {
	f.mu.Lock()
	f.state = FenceUnsignalled
	f.mu.Unlock()
}

// Status reports the fence's current state without blocking.
func (f *Fence) Status() FenceState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// wait blocks until the fence is signalled or timeout elapses, returning
// true if it observed Signalled. A timeout of 0 polls once without
// blocking; re-checks on every wakeup to tolerate spurious wakeups.
func (f *Fence) wait(timeout time.Duration) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == FenceSignalled {
		return true
	}
	if timeout <= 0 {
		return false
	}

	deadline := time.Now().Add(timeout)
	timer := time.AfterFunc(timeout, func() {
		f.mu.Lock()
		f.cond.Broadcast()
		f.mu.Unlock()
	})
	defer timer.Stop()

	for f.state != FenceSignalled {
		if time.Now().After(deadline) {
			return false
		}
		f.cond.Wait()
	}
	return true
}

// WaitForFences waits for either all or any of fences to become
// signalled, matching vkWaitForFences' waitAll semantics, with a
// nanosecond timeout. math.MaxUint64 (^uint64(0)) means infinite.
func WaitForFences(fences []*Fence, waitAll bool, timeoutNs uint64) error {
	timeout := nanosToDuration(timeoutNs)
	deadline := time.Now().Add(timeout)

	if waitAll {
		for _, f := range fences {
			if !f.wait(time.Until(deadline)) {
				return kerr.New(kerr.CategorySynchronization, "mocksync", "WaitForFences", kerr.ErrTimeout)
			}
		}
		return nil
	}

	if len(fences) == 0 {
		return nil
	}
	for {
		for _, f := range fences {
			if f.Status() == FenceSignalled {
				return nil
			}
		}
		if timeoutNs != infiniteTimeout && time.Now().After(deadline) {
			return kerr.New(kerr.CategorySynchronization, "mocksync", "WaitForFences", kerr.ErrTimeout)
		}
		time.Sleep(time.Millisecond)
	}
}

const infiniteTimeout = ^uint64(0)

func nanosToDuration(timeoutNs uint64) time.Duration {
	if timeoutNs == infiniteTimeout {
		return time.Duration(1<<63 - 1)
	}
	return time.Duration(timeoutNs) * time.Nanosecond
}
