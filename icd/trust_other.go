//go:build !unix

package icd

import "os"

// platformStatRegular is the non-unix fallback: Windows has no
// unix.Stat/unix.Access, so the regular-file check goes through os.Stat
// directly.
func platformStatRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// platformAccessible reports whether path exists; Windows has no R_OK/X_OK
// equivalent worth probing separately from the stat above.
func platformAccessible(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
