// Package config reads the environment variables spec.md §6 defines as the
// core's external tuning surface, plus the two batching/pool-size knobs
// original_source exposes that the distillation omits. Reading happens
// once at Load(); there is no hot-reload, matching the core's "init once,
// tear down once" lifecycle.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds every KRONOS_*/VK_ICD_FILENAMES knob. Load returns it with
// the defaults filled in; the zero value carries none of those defaults.
type Config struct {
	// ICDSearchPaths overrides the platform-default manifest directories
	// when non-empty. KRONOS_ICD_SEARCH_PATHS, separated by os.PathListSeparator.
	ICDSearchPaths []string

	// PreferredManifests lists manifest paths to place first in discovery
	// order. VK_ICD_FILENAMES, separated by os.PathListSeparator.
	PreferredManifests []string

	// PreferHardware prefers hardware ICDs over software ones during
	// selection. KRONOS_PREFER_HARDWARE, default true.
	PreferHardware bool

	// AggregateICD runs in aggregated mode instead of single-ICD.
	// KRONOS_AGGREGATE_ICD, default false.
	AggregateICD bool

	// AllowUntrustedLibs disables the trust-policy allowlist.
	// KRONOS_ALLOW_UNTRUSTED_LIBS, default false.
	AllowUntrustedLibs bool

	// RunICDTests gates tests that require a real, loadable ICD to be
	// present on the host. KRONOS_RUN_ICD_TESTS, default false.
	RunICDTests bool

	// StressThreads/StressIters size concurrency stress tests.
	// KRONOS_STRESS_THREADS / KRONOS_STRESS_ITERS, default 8 / 1000.
	StressThreads int
	StressIters   int

	// TimelineBatchSize is the default batch threshold timeline.Manager
	// uses before signalling a flush hint. KRONOS_TIMELINE_BATCH_SIZE,
	// default 16 (spec.md §4.7's "default 16, capacity 256").
	TimelineBatchSize int

	// DescriptorPoolSize seeds the persistent descriptor manager's
	// per-device pool sizing. KRONOS_DESCRIPTOR_POOL_SIZE, default 1000
	// (spec.md §4.4's "reference target: up to 1000 sets").
	DescriptorPoolSize int
}

// Load reads Config from the process environment, applying every default
// spec.md and its batching/pool-size supplements specify.
func Load() Config {
	c := Config{
		PreferHardware:     true,
		StressThreads:      8,
		StressIters:        1000,
		TimelineBatchSize:  16,
		DescriptorPoolSize: 1000,
	}

	if v := os.Getenv("KRONOS_ICD_SEARCH_PATHS"); v != "" {
		c.ICDSearchPaths = splitPathList(v)
	}
	if v := os.Getenv("VK_ICD_FILENAMES"); v != "" {
		c.PreferredManifests = splitPathList(v)
	}
	c.PreferHardware = boolEnv("KRONOS_PREFER_HARDWARE", c.PreferHardware)
	c.AggregateICD = boolEnv("KRONOS_AGGREGATE_ICD", c.AggregateICD)
	c.AllowUntrustedLibs = boolEnv("KRONOS_ALLOW_UNTRUSTED_LIBS", c.AllowUntrustedLibs)
	c.RunICDTests = boolEnv("KRONOS_RUN_ICD_TESTS", c.RunICDTests)
	c.StressThreads = intEnv("KRONOS_STRESS_THREADS", c.StressThreads)
	c.StressIters = intEnv("KRONOS_STRESS_ITERS", c.StressIters)
	c.TimelineBatchSize = intEnv("KRONOS_TIMELINE_BATCH_SIZE", c.TimelineBatchSize)
	c.DescriptorPoolSize = intEnv("KRONOS_DESCRIPTOR_POOL_SIZE", c.DescriptorPoolSize)

	return c
}

func splitPathList(v string) []string {
	parts := strings.Split(v, string(filepath.ListSeparator))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func boolEnv(name string, def bool) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func intEnv(name string, def int) int {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
