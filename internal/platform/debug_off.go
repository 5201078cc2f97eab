//go:build !corelock_debug

package platform

// isDebugBuild controls only whether the default fatal handler attaches
// caller information to its log event before panicking; it always
// panics regardless of this flag. Build with -tags corelock_debug for
// the caller-annotated variant.
const isDebugBuild = false
