//go:build (linux || darwin || freebsd || netbsd || openbsd || dragonfly) && !corelock_nopages

package platform

import (
	"sync"

	"golang.org/x/sys/unix"
)

var pageSizeOnce = sync.OnceValue(func() int {
	return unix.Getpagesize()
})

func pageSizeNative() int {
	return pageSizeOnce()
}

// pageAllocNative reserves an anonymous, private mapping, the POSIX
// equivalent of the source's mmap-backed sy_page_malloc.
func pageAllocNative(length int) []byte {
	buf, err := unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil
	}
	return buf
}

func pageFreeNative(buf []byte) {
	if len(buf) == 0 {
		return
	}
	if err := unix.Munmap(buf); err != nil {
		Fatal("platform: munmap failed: %v", err)
	}
}

func makePagesReadOnlyNative(buf []byte) {
	if len(buf) == 0 {
		return
	}
	if err := unix.Mprotect(buf, unix.PROT_READ); err != nil {
		Fatal("platform: mprotect(PROT_READ) failed: %v", err)
	}
}

func makePagesReadWriteNative(buf []byte) {
	if len(buf) == 0 {
		return
	}
	if err := unix.Mprotect(buf, unix.PROT_READ|unix.PROT_WRITE); err != nil {
		Fatal("platform: mprotect(PROT_READ|PROT_WRITE) failed: %v", err)
	}
}
