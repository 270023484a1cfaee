// File: pool/mmap_other.go
//go:build !linux

// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "github.com/momentics/ownkit/api"

// Mmap falls back to the Go heap on platforms without the Linux mapping path.
type Mmap struct {
	heap *Heap[byte]
}

// NewMmap creates the allocator; huge is ignored on this platform.
func NewMmap(huge bool) *Mmap {
	return &Mmap{heap: NewHeap[byte]()}
}

func (m *Mmap) Allocate(n int) []byte { return m.heap.Allocate(n) }

func (m *Mmap) Free(buf []byte) { m.heap.Free(buf) }

// Mapped always reports zero: nothing is mapped on this platform.
func (m *Mmap) Mapped() int { return 0 }

func (m *Mmap) Stats() api.AllocatorStats { return m.heap.Stats() }

var _ api.Allocator[byte] = (*Mmap)(nil)
