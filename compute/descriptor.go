package compute

import "github.com/LynnColeArt/kronos-compute/vk"

// CreateDescriptorSetLayout, CreateDescriptorPool, AllocateDescriptorSets
// and UpdateDescriptorSets are exposed as direct passthroughs for callers
// that manage their own descriptor sets; GetPersistentDescriptorSet below
// is the hot-path alternative spec.md §4.4 targets for set 0.

func (c *Core) CreateDescriptorSetLayout(device vk.Device, info *vk.DescriptorSetLayoutCreateInfo) (vk.DescriptorSetLayout, vk.Result) {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return 0, vk.ErrorInitializationFailed
	}
	if rec.mock {
		return 1, vk.Success
	}
	var layout vk.DescriptorSetLayout
	res := rec.table.CreateDescriptorSetLayout(rec.device, info, nil, &layout)
	return layout, res
}

func (c *Core) DestroyDescriptorSetLayout(device vk.Device, layout vk.DescriptorSetLayout) {
	rec, err := c.lookupDevice(device)
	if err != nil || rec.mock {
		return
	}
	rec.table.DestroyDescriptorSetLayout(rec.device, layout, nil)
}

func (c *Core) CreateDescriptorPool(device vk.Device, info *vk.DescriptorPoolCreateInfo) (vk.DescriptorPool, vk.Result) {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return 0, vk.ErrorInitializationFailed
	}
	if rec.mock {
		return 1, vk.Success
	}
	var pool vk.DescriptorPool
	res := rec.table.CreateDescriptorPool(rec.device, info, nil, &pool)
	return pool, res
}

func (c *Core) DestroyDescriptorPool(device vk.Device, pool vk.DescriptorPool) {
	rec, err := c.lookupDevice(device)
	if err != nil || rec.mock {
		return
	}
	rec.table.DestroyDescriptorPool(rec.device, pool, nil)
}

func (c *Core) AllocateDescriptorSets(device vk.Device, info *vk.DescriptorSetAllocateInfo, sets *vk.DescriptorSet) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	if rec.mock {
		return vk.Success
	}
	return rec.table.AllocateDescriptorSets(rec.device, info, sets)
}

func (c *Core) FreeDescriptorSets(device vk.Device, pool vk.DescriptorPool, count uint32, sets *vk.DescriptorSet) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	if rec.mock {
		return vk.Success
	}
	return rec.table.FreeDescriptorSets(rec.device, pool, count, sets)
}

func (c *Core) UpdateDescriptorSets(device vk.Device, writeCount uint32, writes *vk.WriteDescriptorSet) {
	rec, err := c.lookupDevice(device)
	if err != nil || rec.mock {
		return
	}
	rec.table.UpdateDescriptorSets(rec.device, writeCount, writes, 0, nil)
}

func (c *Core) ResetDescriptorPool(device vk.Device, pool vk.DescriptorPool) vk.Result {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return vk.ErrorInitializationFailed
	}
	if rec.mock {
		return vk.Success
	}
	return rec.table.ResetDescriptorPool(rec.device, pool, 0)
}

// GetPersistentDescriptorSet returns the cached "set 0" descriptor set for
// the given ordered buffer tuple, creating and writing it on the first
// call for that tuple and on every fingerprint miss thereafter (spec.md
// §4.4). In mock mode it returns a synthetic handle with no backing pool.
func (c *Core) GetPersistentDescriptorSet(device vk.Device, buffers []vk.Buffer) (vk.DescriptorSet, vk.Result) {
	rec, err := c.lookupDevice(device)
	if err != nil {
		return 0, vk.ErrorInitializationFailed
	}
	if rec.mock {
		return vk.DescriptorSet(len(buffers) + 1), vk.Success
	}
	set, getErr := rec.descriptors.Get(buffers)
	if getErr != nil {
		return 0, vk.ErrorInitializationFailed
	}
	return set, vk.Success
}
