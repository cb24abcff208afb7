//go:build windows

package tracker

import (
	"io/fs"
	"syscall"
)

// atime extracts the access time in unix seconds from stat results.
func atime(info fs.FileInfo) int64 {
	if st, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return st.LastAccessTime.Nanoseconds() / 1e9
	}
	return info.ModTime().Unix()
}
