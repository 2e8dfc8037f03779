package mocksync

import (
	"testing"
	"time"
)

func TestWaitForFencesZeroTimeoutOnUnsignalledReturnsImmediately(t *testing.T) {
	f := NewFence(false)
	start := time.Now()
	err := WaitForFences([]*Fence{f}, true, 0)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected a timeout error waiting on an unsignalled fence with timeout=0")
	}
	if elapsed > 50*time.Millisecond {
		t.Errorf("expected an immediate return, took %v", elapsed)
	}
}

func TestWaitForFencesAlreadySignalledSucceeds(t *testing.T) {
	f := NewFence(true)
	if err := WaitForFences([]*Fence{f}, true, 0); err != nil {
		t.Fatalf("expected no error on an already-signalled fence: %v", err)
	}
}

func TestWaitForFencesTimeoutElapsesRoughlyOnTime(t *testing.T) {
	f := NewFence(false)
	start := time.Now()
	err := WaitForFences([]*Fence{f}, true, uint64(100*time.Millisecond))
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if elapsed < 90*time.Millisecond {
		t.Errorf("expected to wait at least ~100ms, took %v", elapsed)
	}
}

func TestWaitForFencesWaitAnySucceedsWhenOneSignalled(t *testing.T) {
	a := NewFence(false)
	b := NewFence(true)
	if err := WaitForFences([]*Fence{a, b}, false, 0); err != nil {
		t.Fatalf("expected wait-any to succeed when one fence is signalled: %v", err)
	}
}

func TestFenceResetThenWaitTimesOut(t *testing.T) {
	f := NewFence(true)
	f.Reset()
	if err := WaitForFences([]*Fence{f}, true, 0); err == nil {
		t.Fatal("expected a timeout after resetting a signalled fence")
	}
}

func TestFenceSignalWakesWaiter(t *testing.T) {
	f := NewFence(false)
	done := make(chan error, 1)
	go func() {
		done <- WaitForFences([]*Fence{f}, true, uint64(time.Second))
	}()

	time.Sleep(10 * time.Millisecond)
	f.Signal()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected no error after Signal: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Signal did not wake the waiter within 1s")
	}
}

func TestSemaphoreWaitConsumesSignal(t *testing.T) {
	s := NewSemaphore()
	s.Signal()
	s.Wait() // should not block
}

func TestEventSetReset(t *testing.T) {
	e := NewEvent()
	if e.Status() != EventReset {
		t.Fatal("expected a new event to start Reset")
	}
	e.Set()
	if e.Status() != EventSet {
		t.Fatal("expected Set to transition to EventSet")
	}
	e.Reset()
	if e.Status() != EventReset {
		t.Fatal("expected Reset to transition back to EventReset")
	}
}

func TestCommandBufferStateMachine(t *testing.T) {
	tr := NewCommandBufferTracker()

	if err := tr.Submit(); err == nil {
		t.Error("expected Submit from Initial to fail")
	}
	if err := tr.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := tr.Begin(); err == nil {
		t.Error("expected a second Begin to fail (already Recording)")
	}
	if err := tr.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	if err := tr.Submit(); err != nil {
		t.Fatalf("expected Submit to succeed from Executable: %v", err)
	}

	tr.PoolReset()
	if tr.State() != CommandBufferInitial {
		t.Fatal("expected PoolReset to return to Initial")
	}
	if err := tr.End(); err == nil {
		t.Error("expected End from Initial to fail")
	}
}
