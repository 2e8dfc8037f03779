package compute

import (
	"github.com/LynnColeArt/kronos-compute/kerr"
	"github.com/LynnColeArt/kronos-compute/mocksync"
	"github.com/LynnColeArt/kronos-compute/vk"
)

func (c *Core) CreateFence(device vk.Device, info *vk.FenceCreateInfo) (vk.Fence, vk.Result) {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return 0, vk.ErrorInitializationFailed
	}
	signalled := info != nil && info.Flags&vk.FenceCreateSignaledBit != 0

	if rec.mock {
		fr := &fenceRecord{mock: mocksync.NewFence(signalled)}
		h := c.fences.Insert(fr)
		return vk.Fence(h), vk.Success
	}

	var fence vk.Fence
	res := rec.table.CreateFence(rec.device, info, nil, &fence)
	if !res.Succeeded() {
		return 0, res
	}
	h := c.fences.Insert(&fenceRecord{handle: fence})
	return vk.Fence(h), vk.Success
}

func (c *Core) lookupFence(fence vk.Fence) (*fenceRecord, error) {
	fr, err := c.fences.MustLookup("compute", "fence", uint64(fence))
	if err != nil {
		return nil, kerr.New(kerr.CategoryProtocol, "compute", "fence", err)
	}
	return fr, nil
}

func (c *Core) DestroyFence(device vk.Device, fence vk.Fence) {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return
	}
	fr, ok := c.fences.Remove(uint64(fence))
	if !ok || rec.mock {
		return
	}
	rec.table.DestroyFence(rec.device, fr.handle, nil)
}

func (c *Core) WaitForFences(device vk.Device, fences []vk.Fence, waitAll bool, timeoutNs uint64) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil || len(fences) == 0 {
		return vk.ErrorInitializationFailed
	}

	if rec.mock {
		mocks := make([]*mocksync.Fence, len(fences))
		for i, f := range fences {
			fr, lookupErr := c.lookupFence(f)
			if lookupErr != nil {
				return vk.ErrorInitializationFailed
			}
			mocks[i] = fr.mock
		}
		if waitErr := mocksync.WaitForFences(mocks, waitAll, timeoutNs); waitErr != nil {
			return vk.Timeout
		}
		return vk.Success
	}

	return rec.table.WaitForFences(rec.device, uint32(len(fences)), &fences[0], boolToUint32(waitAll), timeoutNs)
}

func (c *Core) GetFenceStatus(device vk.Device, fence vk.Fence) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	if rec.mock {
		fr, lookupErr := c.lookupFence(fence)
		if lookupErr != nil {
			return vk.ErrorInitializationFailed
		}
		if fr.mock.Status() == mocksync.FenceSignalled {
			return vk.Success
		}
		return vk.NotReady
	}
	return rec.table.GetFenceStatus(rec.device, fence)
}

func (c *Core) ResetFences(device vk.Device, fences []vk.Fence) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil || len(fences) == 0 {
		return vk.ErrorInitializationFailed
	}
	if rec.mock {
		for _, f := range fences {
			fr, lookupErr := c.lookupFence(f)
			if lookupErr != nil {
				return vk.ErrorInitializationFailed
			}
			fr.mock.Reset()
		}
		return vk.Success
	}
	return rec.table.ResetFences(rec.device, uint32(len(fences)), &fences[0])
}

func boolToUint32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func (c *Core) CreateSemaphore(device vk.Device, info *vk.SemaphoreCreateInfo) (vk.Semaphore, vk.Result) {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return 0, vk.ErrorInitializationFailed
	}
	if rec.mock {
		h := c.semaphores.Insert(&semaphoreRecord{mock: mocksync.NewSemaphore()})
		return vk.Semaphore(h), vk.Success
	}
	var sem vk.Semaphore
	res := rec.table.CreateSemaphore(rec.device, info, nil, &sem)
	if !res.Succeeded() {
		return 0, res
	}
	h := c.semaphores.Insert(&semaphoreRecord{handle: sem})
	return vk.Semaphore(h), vk.Success
}

func (c *Core) lookupSemaphore(sem vk.Semaphore) (*semaphoreRecord, error) {
	sr, err := c.semaphores.MustLookup("compute", "semaphore", uint64(sem))
	if err != nil {
		return nil, kerr.New(kerr.CategoryProtocol, "compute", "semaphore", err)
	}
	return sr, nil
}

func (c *Core) DestroySemaphore(device vk.Device, sem vk.Semaphore) {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return
	}
	sr, ok := c.semaphores.Remove(uint64(sem))
	if !ok || rec.mock {
		return
	}
	rec.table.DestroySemaphore(rec.device, sr.handle, nil)
}

// WaitSemaphores waits on the device's own per-queue timeline semaphore
// to reach value, delegating to the timeline.Manager rather than issuing
// a raw vkWaitSemaphores call, since every queue's timeline progress is
// owned by that manager's batching.
func (c *Core) WaitSemaphores(device vk.Device, queue vk.Queue, value uint64, timeoutNs uint64) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	if rec.mock {
		return vk.Success
	}
	if waitErr := rec.timelines.WaitTimeline(queue, value, timeoutNs); waitErr != nil {
		return vk.Timeout
	}
	return vk.Success
}

func (c *Core) CreateEvent(device vk.Device, info *vk.EventCreateInfo) (vk.Event, vk.Result) {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return 0, vk.ErrorInitializationFailed
	}
	if rec.mock {
		h := c.events.Insert(&eventRecord{mock: mocksync.NewEvent()})
		return vk.Event(h), vk.Success
	}
	var ev vk.Event
	res := rec.table.CreateEvent(rec.device, info, nil, &ev)
	if !res.Succeeded() {
		return 0, res
	}
	h := c.events.Insert(&eventRecord{handle: ev})
	return vk.Event(h), vk.Success
}

func (c *Core) lookupEvent(ev vk.Event) (*eventRecord, error) {
	er, err := c.events.MustLookup("compute", "event", uint64(ev))
	if err != nil {
		return nil, kerr.New(kerr.CategoryProtocol, "compute", "event", err)
	}
	return er, nil
}

func (c *Core) DestroyEvent(device vk.Device, ev vk.Event) {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return
	}
	er, ok := c.events.Remove(uint64(ev))
	if !ok || rec.mock {
		return
	}
	rec.table.DestroyEvent(rec.device, er.handle, nil)
}

func (c *Core) SetEvent(device vk.Device, ev vk.Event) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	if rec.mock {
		er, lookupErr := c.lookupEvent(ev)
		if lookupErr != nil {
			return vk.ErrorInitializationFailed
		}
		er.mock.Set()
		return vk.Success
	}
	return rec.table.SetEvent(rec.device, ev)
}

func (c *Core) ResetEvent(device vk.Device, ev vk.Event) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	if rec.mock {
		er, lookupErr := c.lookupEvent(ev)
		if lookupErr != nil {
			return vk.ErrorInitializationFailed
		}
		er.mock.Reset()
		return vk.Success
	}
	return rec.table.ResetEvent(rec.device, ev)
}

func (c *Core) GetEventStatus(device vk.Device, ev vk.Event) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	if rec.mock {
		er, lookupErr := c.lookupEvent(ev)
		if lookupErr != nil {
			return vk.ErrorInitializationFailed
		}
		if er.mock.Status() == mocksync.EventSet {
			return vk.EventSet
		}
		return vk.EventReset
	}
	return rec.table.GetEventStatus(rec.device, ev)
}
