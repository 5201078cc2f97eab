package platform

// defaultPageAlignment is used whenever true page memory is unavailable
// (the corelock_nopages build tag), mirroring the source's
// SYNC_NO_PAGES fallback alignment.
const defaultPageAlignment = 4096

// PageFuncsType holds the five page functions, matching the source's
// "custom page memory" build-time toggle. PageFuncs starts out holding
// the build's native implementation (mmap/VirtualAlloc, or AlignedAlloc
// under corelock_nopages). The page entry points call its fields
// directly; a nil field has no native fallback.
type PageFuncsType struct {
	alloc  func(length int) []byte
	free   func(buf []byte)
	size   func() int
	makeRO func(buf []byte)
	makeRW func(buf []byte)
}

var PageFuncs = PageFuncsType{
	alloc:  pageAllocNative,
	free:   pageFreeNative,
	size:   pageSizeNative,
	makeRO: makePagesReadOnlyNative,
	makeRW: makePagesReadWriteNative,
}

// PageAlloc reserves length bytes of page-granularity memory. length must
// be a positive multiple of PageSize(); violations are fatal.
func PageAlloc(length int) []byte {
	validatePageLength(length)
	return PageFuncs.alloc(length)
}

// PageFree releases memory obtained from PageAlloc. length must match the
// original allocation.
func PageFree(buf []byte, length int) {
	validatePageLength(length)
	PageFuncs.free(buf)
}

// PageSize returns the platform's page granularity in bytes.
func PageSize() int {
	return PageFuncs.size()
}

// MakePagesReadOnly/MakePagesReadWrite toggle page protection. length
// must be a positive multiple of PageSize(); a failed protection call is
// fatal, matching the source's contract.
func MakePagesReadOnly(buf []byte, length int) {
	validatePageLength(length)
	PageFuncs.makeRO(buf)
}

func MakePagesReadWrite(buf []byte, length int) {
	validatePageLength(length)
	PageFuncs.makeRW(buf)
}

func validatePageLength(length int) {
	ps := PageSize()
	if length <= 0 || length%ps != 0 {
		Fatal("platform: length %d is not a positive multiple of page size %d", length, ps)
	}
}
