// File: pool/slab.go
// Package pool implements size-classed buffer recycling on lock-free free lists.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"math/bits"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/momentics/ownkit/api"
	"github.com/momentics/ownkit/core/concurrency"
)

const (
	// minSlabClass is the smallest size class in elements.
	minSlabClass = 8
	// defaultSlabDepth bounds how many idle buffers each class keeps.
	defaultSlabDepth = 256
)

// sizeClass returns the smallest power-of-two class >= n.
func sizeClass(n int) int {
	if n <= minSlabClass {
		return minSlabClass
	}
	return 1 << bits.Len(uint(n-1))
}

// Slab recycles buffers of identical size class. Buffers freed while their
// class list is full are left to the GC.
type Slab[T any] struct {
	depth int

	mu      sync.RWMutex
	classes map[int]*concurrency.LockFreeQueue[[]T]

	totalAlloc atomic.Int64
	_          cpu.CacheLinePad
	totalFree  atomic.Int64
	_          cpu.CacheLinePad
	reused     atomic.Int64

	statsMu    sync.Mutex
	classStats map[int]int64
}

// NewSlab creates a slab allocator keeping at most depth idle buffers per
// class (depth <= 0 selects the default).
func NewSlab[T any](depth int) *Slab[T] {
	if depth <= 0 {
		depth = defaultSlabDepth
	}
	return &Slab[T]{
		depth:      depth,
		classes:    make(map[int]*concurrency.LockFreeQueue[[]T]),
		classStats: make(map[int]int64),
	}
}

// freeList returns the queue for a class, lazily allocating on first use.
func (s *Slab[T]) freeList(class int) *concurrency.LockFreeQueue[[]T] {
	s.mu.RLock()
	q, ok := s.classes[class]
	s.mu.RUnlock()
	if ok {
		return q
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if q, ok = s.classes[class]; ok {
		return q
	}
	q = concurrency.NewLockFreeQueue[[]T](s.depth)
	s.classes[class] = q
	return q
}

func (s *Slab[T]) Allocate(n int) []T {
	s.totalAlloc.Add(1)
	if n == 0 {
		return make([]T, 0)
	}
	class := sizeClass(n)
	s.record(class)

	if buf, ok := s.freeList(class).Dequeue(); ok {
		s.reused.Add(1)
		return buf[:n]
	}
	return make([]T, n, class)
}

// Free zeroes buf and parks it on its class list. Buffers whose capacity is
// not a slab class were not produced by this allocator and are dropped.
func (s *Slab[T]) Free(buf []T) {
	if buf == nil {
		return
	}
	s.totalFree.Add(1)
	c := cap(buf)
	if c < minSlabClass || c&(c-1) != 0 {
		return
	}
	full := buf[:c]
	clear(full)
	s.freeList(c).Enqueue(full)
}

func (s *Slab[T]) record(class int) {
	s.statsMu.Lock()
	s.classStats[class]++
	s.statsMu.Unlock()
}

// Idle returns the number of parked buffers for the class serving n elements.
func (s *Slab[T]) Idle(n int) int {
	s.mu.RLock()
	q, ok := s.classes[sizeClass(n)]
	s.mu.RUnlock()
	if !ok {
		return 0
	}
	return q.Len()
}

func (s *Slab[T]) Stats() api.AllocatorStats {
	alloc, free := s.totalAlloc.Load(), s.totalFree.Load()
	s.statsMu.Lock()
	classes := make(map[int]int64, len(s.classStats))
	for k, v := range s.classStats {
		classes[k] = v
	}
	s.statsMu.Unlock()
	return api.AllocatorStats{
		TotalAlloc: alloc,
		TotalFree:  free,
		InUse:      alloc - free,
		Reused:     s.reused.Load(),
		ClassStats: classes,
	}
}

var _ api.Allocator[int] = (*Slab[int])(nil)
