//go:build unix

package icd

import "golang.org/x/sys/unix"

// platformStatRegular reports whether path exists and is a regular file,
// probed with unix.Stat directly rather than the os wrapper so the trust
// check walks the same syscall every other Vulkan loader on the platform
// uses for this probe.
func platformStatRegular(path string) bool {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return false
	}
	return st.Mode&unix.S_IFMT == unix.S_IFREG
}

// platformAccessible reports whether the calling process can read and
// execute path, per unix.Access's R_OK|X_OK probe.
func platformAccessible(path string) bool {
	return unix.Access(path, unix.R_OK|unix.X_OK) == nil
}
