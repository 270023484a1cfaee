// File: fixedarray/array.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package fixedarray

import (
	"fmt"
	"iter"

	"github.com/momentics/ownkit/api"
	"github.com/momentics/ownkit/pool"
)

// Array owns a buffer of exactly n elements of T.
type Array[T any] struct {
	buf   []T
	n     int
	alloc api.Allocator[T]
}

// Option configures an Array at construction.
type Option[T any] func(*Array[T])

// WithAllocator sets the storage strategy. The default is a pool.Heap.
func WithAllocator[T any](a api.Allocator[T]) Option[T] {
	return func(arr *Array[T]) {
		if a != nil {
			arr.alloc = a
		}
	}
}

// New allocates an array of n zero-valued elements. It panics if n < 0.
func New[T any](n int, opts ...Option[T]) *Array[T] {
	if n < 0 {
		panic(fmt.Sprintf("fixedarray: negative size %d", n))
	}
	a := &Array[T]{n: n}
	for _, opt := range opts {
		opt(a)
	}
	if a.alloc == nil {
		a.alloc = pool.NewHeap[T]()
	}
	a.buf = a.alloc.Allocate(n)
	return a
}

// Of builds an array holding a copy of values.
func Of[T any](values []T, opts ...Option[T]) *Array[T] {
	a := New(len(values), opts...)
	copy(a.buf, values)
	return a
}

// Clone returns an independent deep copy sharing a's allocator.
func (a *Array[T]) Clone() *Array[T] {
	c := &Array[T]{n: a.n, alloc: a.alloc}
	c.buf = c.alloc.Allocate(a.n)
	copy(c.buf, a.buf)
	return c
}

// CopyFrom replaces a's contents with a deep copy of other's. The new buffer
// is filled before the old one is freed. Self-assignment does nothing.
// It panics if the sizes differ.
func (a *Array[T]) CopyFrom(other *Array[T]) {
	if a == other {
		return
	}
	a.mustMatch(other)
	fresh := a.alloc.Allocate(a.n)
	copy(fresh, other.buf)
	a.free()
	a.buf = fresh
}

// Move hands a's buffer to a new Array in O(1) and leaves a without storage.
func (a *Array[T]) Move() *Array[T] {
	m := &Array[T]{buf: a.buf, n: a.n, alloc: a.alloc}
	a.buf = nil
	return m
}

// MoveFrom frees a's buffer and takes over other's; other is left without
// storage. Self-move does nothing. It panics if the sizes differ.
func (a *Array[T]) MoveFrom(other *Array[T]) {
	if a == other {
		return
	}
	a.mustMatch(other)
	a.free()
	a.buf, a.alloc = other.buf, other.alloc
	other.buf = nil
}

// At returns a mutable reference to element i.
func (a *Array[T]) At(i int) *T { return &a.buf[i] }

// Fill overwrites every element with v.
func (a *Array[T]) Fill(v T) {
	for i := range a.buf {
		a.buf[i] = v
	}
}

// Front returns a reference to the first element.
func (a *Array[T]) Front() *T { return &a.buf[0] }

// Back returns a reference to the last element.
func (a *Array[T]) Back() *T { return &a.buf[a.n-1] }

// Data exposes the underlying buffer; nil once the array has been moved from
// or closed.
func (a *Array[T]) Data() []T { return a.buf }

// All iterates index/value pairs in order.
func (a *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range a.buf {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Values iterates the elements in order.
func (a *Array[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range a.buf {
			if !yield(v) {
				return
			}
		}
	}
}

// Size returns the fixed element count, also after a move or Close.
func (a *Array[T]) Size() int { return a.n }

// Empty reports whether the array was built with zero elements.
func (a *Array[T]) Empty() bool { return a.n == 0 }

// Owns reports whether a still holds its buffer.
func (a *Array[T]) Owns() bool { return a.buf != nil }

// Close returns the buffer to its allocator. It is safe to call repeatedly
// and always returns nil.
func (a *Array[T]) Close() error {
	a.free()
	return nil
}

func (a *Array[T]) free() {
	if a.buf == nil {
		return
	}
	a.alloc.Free(a.buf)
	a.buf = nil
}

func (a *Array[T]) mustMatch(other *Array[T]) {
	if a.n != other.n {
		panic(fmt.Sprintf("fixedarray: size mismatch %d != %d", a.n, other.n))
	}
}
