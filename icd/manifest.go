// Package icd discovers, parses, trust-checks, loads, and selects
// Installable Client Drivers, then maintains the three-tier (global,
// instance, device) dispatch tables each loaded ICD publishes. Grounded on
// hal/vulkan/vk/loader.go's library-loading shape, generalized from a
// single-library package singleton to a value-typed loader that can hold
// several ICDs open at once for aggregated mode.
package icd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/LynnColeArt/kronos-compute/kerr"
)

// Manifest is the on-disk ICD manifest shape spec.md §6 defines. Unknown
// fields are ignored by json-iterator's default (non-strict) decoding.
type Manifest struct {
	FileFormatVersion string       `json:"file_format_version"`
	ICD               ManifestICD  `json:"ICD"`
}

type ManifestICD struct {
	LibraryPath string `json:"library_path"`
	APIVersion  string `json:"api_version"`
}

// ParsedVersion is the MAJOR.MINOR.PATCH decomposition of an api_version
// string; PATCH defaults to 0 when omitted, matching spec.md §4.2's
// "MAJOR.MINOR[.PATCH]" grammar.
type ParsedVersion struct {
	Major, Minor, Patch uint32
}

func (v ParsedVersion) Encode() uint32 {
	return (v.Major << 22) | (v.Minor << 12) | v.Patch
}

func parseAPIVersion(s string) (ParsedVersion, error) {
	if s == "" {
		return ParsedVersion{Major: 1}, nil
	}
	parts := strings.SplitN(s, ".", 3)
	if len(parts) < 2 {
		return ParsedVersion{}, fmt.Errorf("malformed api_version %q", s)
	}
	major, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return ParsedVersion{}, fmt.Errorf("malformed api_version %q: %w", s, err)
	}
	minor, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return ParsedVersion{}, fmt.Errorf("malformed api_version %q: %w", s, err)
	}
	var patch uint64
	if len(parts) == 3 {
		patch, err = strconv.ParseUint(parts[2], 10, 32)
		if err != nil {
			return ParsedVersion{}, fmt.Errorf("malformed api_version %q: %w", s, err)
		}
	}
	return ParsedVersion{Major: uint32(major), Minor: uint32(minor), Patch: uint32(patch)}, nil
}

// loadManifest reads and decodes one manifest file, rejecting it per
// spec.md §4.2 if library_path is absent or empty.
func loadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, kerr.New(kerr.CategoryLoader, "icd", "loadManifest", fmt.Errorf("%w: %s: %v", kerr.ErrInvalidManifest, path, err))
	}
	var m Manifest
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &m); err != nil {
		return Manifest{}, kerr.New(kerr.CategoryLoader, "icd", "loadManifest", fmt.Errorf("%w: %s: %v", kerr.ErrInvalidManifest, path, err))
	}
	if strings.TrimSpace(m.ICD.LibraryPath) == "" {
		return Manifest{}, kerr.New(kerr.CategoryLoader, "icd", "loadManifest", fmt.Errorf("%w: %s: empty library_path", kerr.ErrInvalidManifest, path))
	}
	return m, nil
}

// resolveLibraryPath turns a manifest's library_path into an absolute path,
// resolving it relative to the manifest's directory when it is not already
// absolute — the convention every major Vulkan loader implementation
// follows for ICD manifests.
func resolveLibraryPath(manifestPath, libraryPath string) string {
	if filepath.IsAbs(libraryPath) {
		return libraryPath
	}
	return filepath.Join(filepath.Dir(manifestPath), libraryPath)
}

// defaultSearchDirs returns the platform-default manifest directories
// spec.md §4.2 enumerates.
func defaultSearchDirs() []string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		dirs := []string{"/usr/local/share/vulkan/icd.d"}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local/share/vulkan/icd.d"))
		}
		return append(dirs, "/usr/local/etc/vulkan/icd.d")
	case "windows":
		root := os.Getenv("SYSTEMROOT")
		if root == "" {
			root = `C:\Windows`
		}
		return []string{
			filepath.Join(root, "System32", "vulkan"),
			`C:\Program Files\Vulkan\icd.d`,
		}
	default:
		return []string{
			"/usr/share/vulkan/icd.d",
			"/usr/local/share/vulkan/icd.d",
			"/etc/vulkan/icd.d",
			"/usr/share/vulkan/implicit_layer.d",
		}
	}
}

// discoverManifests enumerates every *.json manifest under searchDirs (or
// the platform defaults when searchDirs is empty), with preferred listed
// first and deduplicated against the discovered set.
func discoverManifests(searchDirs, preferred []string) []string {
	dirs := searchDirs
	if len(dirs) == 0 {
		dirs = defaultSearchDirs()
	}

	seen := make(map[string]bool, len(preferred))
	out := make([]string, 0, len(preferred))
	for _, p := range preferred {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}

	for _, dir := range dirs {
		resolved, err := filepath.Abs(dir)
		if err != nil {
			resolved = dir
		}
		entries, err := os.ReadDir(resolved)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			full := filepath.Join(resolved, e.Name())
			if seen[full] {
				continue
			}
			seen[full] = true
			out = append(out, full)
		}
	}
	return out
}

// isSoftwareICD classifies a resolved library path as a software
// implementation by substring match, case-insensitive, per the recovered
// detail in original_source/src/implementation/icd_loader.rs.
func isSoftwareICD(libraryPath string) bool {
	lower := strings.ToLower(libraryPath)
	for _, marker := range []string{"lvp", "llvmpipe", "swiftshader"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
