//go:build corelock_debug

package platform

const isDebugBuild = true
