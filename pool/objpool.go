// File: pool/objpool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/ownkit/api"
)

// ObjectPool is a generic object pool.
type ObjectPool[T any] interface {
	Get() T
	Put(T)
}

// SyncPool wraps sync.Pool for generic usage.
type SyncPool[T any] struct {
	pool *sync.Pool
}

// NewSyncPool creates a new SyncPool with a creator function.
func NewSyncPool[T any](creator func() T) *SyncPool[T] {
	return &SyncPool[T]{
		pool: &sync.Pool{New: func() any { return creator() }},
	}
}

func (sp *SyncPool[T]) Get() T {
	return sp.pool.Get().(T)
}

func (sp *SyncPool[T]) Put(obj T) {
	sp.pool.Put(obj)
}

// Pooled recycles buffers of one fixed extent through a SyncPool, which
// suits arrays whose length never changes. Other lengths are served by make
// and left to the GC. Idle buffers may be dropped by the GC at any time.
type Pooled[T any] struct {
	extent int
	bufs   *SyncPool[*[]T]

	totalAlloc atomic.Int64
	totalFree  atomic.Int64
	pooledGets atomic.Int64
	created    atomic.Int64
}

// NewPooled returns an allocator recycling buffers of exactly extent elements.
func NewPooled[T any](extent int) *Pooled[T] {
	p := &Pooled[T]{extent: extent}
	p.bufs = NewSyncPool(func() *[]T {
		p.created.Add(1)
		buf := make([]T, extent)
		return &buf
	})
	return p
}

// Extent returns the buffer length this allocator recycles.
func (p *Pooled[T]) Extent() int { return p.extent }

// Allocate returns n zeroed elements, from the pool when n is the extent.
func (p *Pooled[T]) Allocate(n int) []T {
	p.totalAlloc.Add(1)
	if n != p.extent || n == 0 {
		return make([]T, n)
	}
	p.pooledGets.Add(1)
	return *p.bufs.Get()
}

// Free clears buf and keeps it for reuse when its capacity is the extent.
func (p *Pooled[T]) Free(buf []T) {
	if buf == nil {
		return
	}
	p.totalFree.Add(1)
	if cap(buf) != p.extent || p.extent == 0 {
		clear(buf)
		return
	}
	buf = buf[:p.extent]
	clear(buf)
	p.bufs.Put(&buf)
}

func (p *Pooled[T]) Stats() api.AllocatorStats {
	alloc, free := p.totalAlloc.Load(), p.totalFree.Load()
	return api.AllocatorStats{
		TotalAlloc: alloc,
		TotalFree:  free,
		InUse:      alloc - free,
		Reused:     p.pooledGets.Load() - p.created.Load(),
	}
}

var (
	_ ObjectPool[*[]int]  = (*SyncPool[*[]int])(nil)
	_ api.Allocator[int] = (*Pooled[int])(nil)
)
