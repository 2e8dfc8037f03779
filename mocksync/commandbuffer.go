package mocksync

import (
	"sync"

	"github.com/LynnColeArt/kronos-compute/kerr"
)

// CommandBufferState is the CommandBuffer state machine spec.md §4.8
// defines: Initial on allocation, Recording while between Begin/End,
// Executable once ended, and back to Initial when its owning pool is
// reset.
type CommandBufferState int

const (
	CommandBufferInitial CommandBufferState = iota
	CommandBufferRecording
	CommandBufferExecutable
)

// CommandBufferTracker enforces the CommandBuffer state machine: Begin
// requires Initial, End requires Recording, Submit requires Executable,
// and PoolReset returns to Initial from any state. Any other transition
// is a protocol violation.
type CommandBufferTracker struct {
	mu    sync.Mutex
	state CommandBufferState
}

// NewCommandBufferTracker creates a tracker in the Initial state, the
// state a freshly allocated command buffer starts in.
func NewCommandBufferTracker() *CommandBufferTracker {
	return &CommandBufferTracker{state: CommandBufferInitial}
}

func (t *CommandBufferTracker) State() CommandBufferState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Begin transitions Initial -> Recording.
func (t *CommandBufferTracker) Begin() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != CommandBufferInitial {
		return kerr.New(kerr.CategoryProtocol, "mocksync", "Begin", kerr.ErrCommandBufferState)
	}
	t.state = CommandBufferRecording
	return nil
}

// End transitions Recording -> Executable.
func (t *CommandBufferTracker) End() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != CommandBufferRecording {
		return kerr.New(kerr.CategoryProtocol, "mocksync", "End", kerr.ErrCommandBufferState)
	}
	t.state = CommandBufferExecutable
	return nil
}

// Submit requires Executable; submitting from any other state is a
// protocol violation and returns an error without side effects.
func (t *CommandBufferTracker) Submit() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != CommandBufferExecutable {
		return kerr.New(kerr.CategoryProtocol, "mocksync", "Submit", kerr.ErrCommandBufferState)
	}
	return nil
}

// PoolReset returns the command buffer to Initial, as happens when its
// owning command pool is reset.
func (t *CommandBufferTracker) PoolReset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = CommandBufferInitial
}
