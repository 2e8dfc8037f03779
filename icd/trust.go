package icd

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// trustAllowlist returns the platform-specific directories under which a
// resolved library path must live to pass the default trust policy.
// Populated for macOS and Windows too — spec.md §9's open question about
// the allowlist being "effectively permissive" on non-Linux platforms is
// resolved here rather than left as an empty (trivially-passing) list.
func trustAllowlist() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"/usr/local/lib", "/opt/homebrew/lib"}
	case "windows":
		root := os.Getenv("SYSTEMROOT")
		if root == "" {
			root = `C:\Windows`
		}
		return []string{filepath.Join(root, "System32")}
	default:
		return []string{
			"/usr/lib",
			"/usr/lib64",
			"/usr/lib/x86_64-linux-gnu",
			"/lib",
			"/lib64",
			"/usr/local/lib",
		}
	}
}

// isTrusted reports whether path is a regular file under an allowed
// directory. allowUntrusted bypasses the directory check entirely but the
// regular-file and access checks always apply.
func isTrusted(path string, allowUntrusted bool) bool {
	if !platformStatRegular(path) || !platformAccessible(path) {
		return false
	}
	if allowUntrusted {
		return true
	}
	resolved, err := filepath.Abs(path)
	if err != nil {
		resolved = path
	}
	for _, dir := range trustAllowlist() {
		if withinDir(resolved, dir) {
			return true
		}
	}
	return false
}

func withinDir(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
