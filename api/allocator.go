// File: api/allocator.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Storage strategies for owning containers.

package api

// Allocator hands out element buffers of an exact length and takes them back.
// Buffers returned by Allocate are zeroed. After Free the buffer must not be
// used by the caller.
type Allocator[T any] interface {
	// Allocate returns a zeroed buffer with len == n.
	Allocate(n int) []T

	// Free returns buf to the allocator.
	Free(buf []T)

	// Stats exposes allocation accounting for observability.
	Stats() AllocatorStats
}

// AllocatorStats aggregates buffer allocation/reuse stats.
type AllocatorStats struct {
	TotalAlloc int64
	TotalFree  int64
	InUse      int64
	Reused     int64
	// ClassStats maps size class (elements) to buffers handed out.
	ClassStats map[int]int64
}
