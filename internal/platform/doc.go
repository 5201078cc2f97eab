// Package platform is the system boundary for corelock: aligned and
// page-granularity memory, cross-platform atomics with an explicit memory
// order, cooperative thread yielding, and the process-wide fatal error
// handler.
//
// Every exported entry point here corresponds to one of the platform
// services the rwlock above it is built on: aligned allocation, page
// memory, atomics, thread yield, and the fatal handler. Nothing above
// this package allocates off-heap memory or talks to the OS directly.
package platform
