package mocksync

import "sync"

// Semaphore is a CPU-visible binary semaphore: unsignalled until Signal
// is called, consumed (returned to unsignalled) by Wait.
type Semaphore struct {
	mu        sync.Mutex
	cond      *sync.Cond
	signalled bool
}

// NewSemaphore creates an unsignalled binary semaphore.
func NewSemaphore() *Semaphore {
	s := &Semaphore{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Signal marks the semaphore signalled and wakes one waiter.
func (s *Semaphore) Signal() {
	s.mu.Lock()
	s.signalled = true
	s.mu.Unlock()
	s.cond.Signal()
}

// Wait blocks until the semaphore is signalled, then consumes the signal
// (binary semaphores do not accumulate, matching Vulkan's semantics).
func (s *Semaphore) Wait() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for !s.signalled {
		s.cond.Wait()
	}
	s.signalled = false
}
