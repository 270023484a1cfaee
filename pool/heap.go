// File: pool/heap.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync/atomic"

	"github.com/momentics/ownkit/api"
)

// Heap allocates every buffer with make and lets the GC reclaim it after Free.
type Heap[T any] struct {
	totalAlloc atomic.Int64
	totalFree  atomic.Int64
}

// NewHeap returns a heap allocator.
func NewHeap[T any]() *Heap[T] { return &Heap[T]{} }

// Allocate returns make([]T, n).
func (h *Heap[T]) Allocate(n int) []T {
	h.totalAlloc.Add(1)
	return make([]T, n)
}

// Free drops element references so the buffer holds nothing reachable.
func (h *Heap[T]) Free(buf []T) {
	if buf == nil {
		return
	}
	clear(buf)
	h.totalFree.Add(1)
}

func (h *Heap[T]) Stats() api.AllocatorStats {
	alloc, free := h.totalAlloc.Load(), h.totalFree.Load()
	return api.AllocatorStats{
		TotalAlloc: alloc,
		TotalFree:  free,
		InUse:      alloc - free,
	}
}

var _ api.Allocator[int] = (*Heap[int])(nil)
