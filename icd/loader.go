package icd

import (
	"fmt"
	"sort"
	"unsafe"

	"github.com/LynnColeArt/kronos-compute/config"
	"github.com/LynnColeArt/kronos-compute/kerr"
	"github.com/LynnColeArt/kronos-compute/logging"
	"github.com/LynnColeArt/kronos-compute/vk"
)

// IcdInfo is the immutable record spec.md §3 defines: created during
// discovery, never mutated afterward.
type IcdInfo struct {
	LibraryPath  string
	ManifestPath string
	APIVersion   ParsedVersion
	IsSoftware   bool
}

// Loaded is a successfully opened ICD: its library handle plus the
// function pointer used to bootstrap every other lookup
// (vk_icdGetInstanceProcAddr). The global/instance/device tables are
// published separately (see dispatch.go) so a Loaded value stays cheap to
// copy by value into the selection snapshot, per spec.md §3's "cloned by
// value into the shared selection slot" requirement.
type Loaded struct {
	Info    IcdInfo
	lib     *vk.Library
	icdProc unsafe.Pointer
}

// loadOne opens one manifest's library and resolves its ICD entry point.
func loadOne(manifestPath string, cfg config.Config) (Loaded, error) {
	m, err := loadManifest(manifestPath)
	if err != nil {
		return Loaded{}, err
	}
	libPath := resolveLibraryPath(manifestPath, m.ICD.LibraryPath)

	if !isTrusted(libPath, cfg.AllowUntrustedLibs) {
		return Loaded{}, kerr.New(kerr.CategoryLoader, "icd", "loadOne",
			fmt.Errorf("%w: %s", kerr.ErrUntrustedLibrary, libPath))
	}

	lib, err := vk.LoadLibrary(libPath)
	if err != nil {
		return Loaded{}, kerr.New(kerr.CategoryLoader, "icd", "loadOne",
			fmt.Errorf("%w: %s: %v", kerr.ErrLibraryLoadFailed, libPath, err))
	}

	entry := lib.Symbol("vk_icdGetInstanceProcAddr")
	if entry == nil {
		lib.Close()
		return Loaded{}, kerr.New(kerr.CategoryLoader, "icd", "loadOne",
			fmt.Errorf("%w: %s", kerr.ErrMissingICDEntryPoint, libPath))
	}

	version, err := parseAPIVersion(m.ICD.APIVersion)
	if err != nil {
		version = ParsedVersion{Major: 1}
	}

	return Loaded{
		Info: IcdInfo{
			LibraryPath:  libPath,
			ManifestPath: manifestPath,
			APIVersion:   version,
			IsSoftware:   isSoftwareICD(libPath),
		},
		lib:     lib,
		icdProc: entry,
	}, nil
}

// DiscoverAndLoad performs the full discovery → parse → trust-check → load
// sequence of spec.md §4.2, returning every candidate that survives every
// stage. A manifest failing any stage is skipped with a logged cause
// rather than aborting the whole discovery pass.
func DiscoverAndLoad(cfg config.Config) ([]Loaded, error) {
	manifests := discoverManifests(cfg.ICDSearchPaths, cfg.PreferredManifests)
	if len(manifests) == 0 {
		return nil, kerr.New(kerr.CategoryLoader, "icd", "DiscoverAndLoad", kerr.ErrNoManifestsFound)
	}

	log := logging.Subsystem("icd")
	loaded := make([]Loaded, 0, len(manifests))
	for _, path := range manifests {
		l, err := loadOne(path, cfg)
		if err != nil {
			log.Warn("skipping ICD candidate", "manifest", path, "cause", err)
			continue
		}
		loaded = append(loaded, l)
	}
	if len(loaded) == 0 {
		return nil, kerr.New(kerr.CategoryLoader, "icd", "DiscoverAndLoad", kerr.ErrNoManifestsFound)
	}
	return loaded, nil
}

// Select applies spec.md §4.2's selection policy: prefer preferred
// manifests (already sorted first by discoverManifests), then hardware
// over software when cfg.PreferHardware, keeping discovery order within a
// class.
func Select(loaded []Loaded, cfg config.Config) []Loaded {
	if !cfg.PreferHardware {
		return loaded
	}
	preferred := make(map[string]bool, len(cfg.PreferredManifests))
	for _, p := range cfg.PreferredManifests {
		preferred[p] = true
	}
	sorted := make([]Loaded, len(loaded))
	copy(sorted, loaded)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := preferred[sorted[i].Info.ManifestPath], preferred[sorted[j].Info.ManifestPath]
		if pi != pj {
			return pi
		}
		return !sorted[i].Info.IsSoftware && sorted[j].Info.IsSoftware
	})
	return sorted
}

// Close releases the underlying library. Safe on a zero Loaded.
func (l *Loaded) Close() error {
	if l == nil || l.lib == nil {
		return nil
	}
	return l.lib.Close()
}
