//go:build linux

package tracker

import (
	"io/fs"
	"syscall"
)

// atime extracts the access time in unix seconds from stat results.
func atime(info fs.FileInfo) int64 {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return int64(st.Atim.Sec)
	}
	return info.ModTime().Unix()
}
