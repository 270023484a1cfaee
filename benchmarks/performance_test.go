// Package benchmarks
// Author: momentics <momentics@gmail.com>
//
// Performance benchmarks for ownkit components.

package benchmarks

import (
	"testing"

	"github.com/momentics/ownkit/core/concurrency"
	"github.com/momentics/ownkit/fixedarray"
	"github.com/momentics/ownkit/pool"
	"github.com/momentics/ownkit/reclaim"
	"github.com/momentics/ownkit/sharedptr"
	"github.com/momentics/ownkit/uniqueptr"
)

// BenchmarkSlabAllocation tests slab reuse under parallel load.
func BenchmarkSlabAllocation(b *testing.B) {
	slab := pool.NewSlab[byte](0)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			buf := slab.Allocate(4096)
			slab.Free(buf)
		}
	})
}

// BenchmarkHeapAllocation is the non-reusing baseline for BenchmarkSlabAllocation.
func BenchmarkHeapAllocation(b *testing.B) {
	heap := pool.NewHeap[byte]()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			buf := heap.Allocate(4096)
			heap.Free(buf)
		}
	})
}

// BenchmarkLockFreeQueueThroughput tests the slab free-list queue.
func BenchmarkLockFreeQueueThroughput(b *testing.B) {
	q := concurrency.NewLockFreeQueue[int](1024)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if !q.Enqueue(i) {
				q.Dequeue()
				q.Enqueue(i)
			}
			i++
		}
	})
}

// BenchmarkSharedClone measures a copy/release pair on a shared pointer.
func BenchmarkSharedClone(b *testing.B) {
	v := 25
	p := sharedptr.New(&v)
	defer p.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := p.Clone()
		_ = c.Close()
	}
}

// BenchmarkUniqueMove measures moving ownership back and forth.
func BenchmarkUniqueMove(b *testing.B) {
	v := 2004
	p := uniqueptr.New(&v)
	defer p.Release()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q := p.Move()
		p.Assign(&q)
	}
}

// BenchmarkFixedArrayClone copies a 1 KiB array through the slab allocator.
func BenchmarkFixedArrayClone(b *testing.B) {
	a := fixedarray.New(1024, fixedarray.WithAllocator[byte](pool.NewSlab[byte](0)))
	defer a.Close()
	a.Fill(0x5a)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := a.Clone()
		_ = c.Close()
	}
}

// BenchmarkDeferredDisposal measures retire plus drain.
func BenchmarkDeferredDisposal(b *testing.B) {
	q := reclaim.NewQueue()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Retire(func() {})
		if q.Len() >= 64 {
			q.Drain()
		}
	}
	q.Drain()
}
