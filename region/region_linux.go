//go:build linux

package region

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapFile requests a private read-only mapping of the whole file.
func mapFile(f *os.File, size int64) ([]byte, bool, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// adviseFile issues best-effort read-ahead hints. A failure to apply any
// hint never fails the scan; the kernel is free to ignore all of them.
func adviseFile(f *os.File, data []byte) {
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
	_ = unix.Madvise(data, unix.MADV_WILLNEED)
	_ = unix.Madvise(data, unix.MADV_HUGEPAGE)
	_ = unix.Fadvise(int(f.Fd()), 0, int64(len(data)), unix.FADV_SEQUENTIAL)
	_ = unix.Fadvise(int(f.Fd()), 0, int64(len(data)), unix.FADV_WILLNEED)
}

// unmapFile releases a mapping obtained from mapFile. mapped is false
// only when the fallback (non-mmap) path was taken, in which case there
// is nothing for the OS to unmap.
func unmapFile(data []byte, mapped bool) {
	if !mapped {
		return
	}
	_ = unix.Madvise(data, unix.MADV_DONTNEED)
	_ = unix.Munmap(data)
}
