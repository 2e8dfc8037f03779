package icd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseAPIVersion(t *testing.T) {
	tests := []struct {
		in   string
		want ParsedVersion
	}{
		{"", ParsedVersion{Major: 1}},
		{"1.3", ParsedVersion{Major: 1, Minor: 3}},
		{"1.3.240", ParsedVersion{Major: 1, Minor: 3, Patch: 240}},
	}
	for _, tt := range tests {
		got, err := parseAPIVersion(tt.in)
		if err != nil {
			t.Fatalf("parseAPIVersion(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("parseAPIVersion(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseAPIVersionMalformed(t *testing.T) {
	if _, err := parseAPIVersion("bogus"); err == nil {
		t.Error("expected an error for a malformed api_version")
	}
}

func TestIsSoftwareICD(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/usr/lib/libvulkan_lvp.so", true},
		{"/usr/lib/libvulkan_intel.so", false},
		{"/usr/local/lib/libVkICD_mock_swiftshader.so", true},
		{"C:\\drivers\\llvmpipe_icd.dll", true},
		{"/usr/lib/amdvlk64.so", false},
	}
	for _, tt := range tests {
		if got := isSoftwareICD(tt.path); got != tt.want {
			t.Errorf("isSoftwareICD(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLoadManifestRejectsEmptyLibraryPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	os.WriteFile(path, []byte(`{"file_format_version":"1.0.0","ICD":{"library_path":""}}`), 0o644)

	if _, err := loadManifest(path); err == nil {
		t.Error("expected an error for an empty library_path")
	}
}

func TestLoadManifestIgnoresUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "good.json")
	os.WriteFile(path, []byte(`{
		"file_format_version": "1.0.1",
		"ICD": {"library_path": "./libvulkan_intel.so", "api_version": "1.3.0"},
		"layer": {"ignored": true}
	}`), 0o644)

	m, err := loadManifest(path)
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if m.ICD.LibraryPath != "./libvulkan_intel.so" {
		t.Errorf("library_path = %q", m.ICD.LibraryPath)
	}
}

func TestResolveLibraryPathRelative(t *testing.T) {
	manifest := "/usr/share/vulkan/icd.d/intel.json"
	got := resolveLibraryPath(manifest, "../lib/libvulkan_intel.so")
	want := filepath.Join("/usr/share/vulkan/icd.d", "../lib/libvulkan_intel.so")
	if got != want {
		t.Errorf("resolveLibraryPath = %q, want %q", got, want)
	}
}

func TestResolveLibraryPathAbsolute(t *testing.T) {
	got := resolveLibraryPath("/any/manifest.json", "/usr/lib/libvulkan_intel.so")
	if got != "/usr/lib/libvulkan_intel.so" {
		t.Errorf("resolveLibraryPath = %q", got)
	}
}

func TestDiscoverManifestsPrefersGivenDirAndPreferred(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{}`), 0o644)
	os.WriteFile(filepath.Join(dir, "b.json"), []byte(`{}`), 0o644)
	os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte(`not json`), 0o644)

	preferred := filepath.Join(dir, "b.json")
	got := discoverManifests([]string{dir}, []string{preferred})

	if len(got) != 2 {
		t.Fatalf("got %d manifests, want 2: %v", len(got), got)
	}
	if got[0] != preferred {
		t.Errorf("preferred manifest not placed first: %v", got)
	}
}
