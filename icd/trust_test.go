package icd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsTrustedRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	if isTrusted(dir, true) {
		t.Error("a directory should never be trusted, even with allowUntrusted")
	}
}

func TestIsTrustedRejectsMissingFile(t *testing.T) {
	if isTrusted(filepath.Join(t.TempDir(), "missing.so"), true) {
		t.Error("a missing file should never be trusted")
	}
}

func TestIsTrustedAllowUntrustedBypassesAllowlist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.so")
	os.WriteFile(path, []byte("x"), 0o755)

	if !isTrusted(path, true) {
		t.Error("allowUntrusted=true should accept any readable, executable regular file")
	}
	if isTrusted(path, false) {
		t.Error("a tempdir path should not pass the default allowlist")
	}
}

func TestWithinDir(t *testing.T) {
	tests := []struct {
		path, dir string
		want      bool
	}{
		{"/usr/lib/libvulkan_intel.so", "/usr/lib", true},
		{"/usr/lib64/amdvlk64.so", "/usr/lib64", true},
		{"/home/user/libvulkan_intel.so", "/usr/lib", false},
		{"/usr/lib2/evil.so", "/usr/lib", false},
	}
	for _, tt := range tests {
		if got := withinDir(tt.path, tt.dir); got != tt.want {
			t.Errorf("withinDir(%q, %q) = %v, want %v", tt.path, tt.dir, got, tt.want)
		}
	}
}
