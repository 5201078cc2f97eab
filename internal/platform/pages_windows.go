//go:build windows && !corelock_nopages

package platform

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func pageSizeNative() int {
	var info windows.SystemInfo
	windows.GetSystemInfo(&info)
	return int(info.PageSize)
}

// pageAllocNative uses reserve+commit, the source's documented
// Windows-family strategy.
func pageAllocNative(length int) []byte {
	addr, err := windows.VirtualAlloc(0, uintptr(length), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil || addr == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), length)
}

func pageFreeNative(buf []byte) {
	if len(buf) == 0 {
		return
	}
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	if err := windows.VirtualFree(addr, 0, windows.MEM_RELEASE); err != nil {
		Fatal("platform: VirtualFree failed: %v", err)
	}
}

func makePagesReadOnlyNative(buf []byte) {
	protect(buf, windows.PAGE_READONLY)
}

func makePagesReadWriteNative(buf []byte) {
	protect(buf, windows.PAGE_READWRITE)
}

func protect(buf []byte, newProtect uint32) {
	if len(buf) == 0 {
		return
	}
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	var oldProtect uint32
	if err := windows.VirtualProtect(addr, uintptr(len(buf)), newProtect, &oldProtect); err != nil {
		Fatal("platform: VirtualProtect failed: %v", err)
	}
}
