// File: pool/mmap_linux.go
//go:build linux

//
// Linux byte allocator backed by anonymous private mappings.
// With huge pages enabled, MAP_HUGETLB is tried first; any mapping failure
// falls back to the Go heap.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"

	"github.com/momentics/ownkit/api"
)

const hugePageSize = 2 << 20

// Mmap allocates byte buffers outside the Go heap. Free unmaps them.
type Mmap struct {
	huge bool

	mu     sync.Mutex
	mapped map[*byte][]byte // base address -> full mapping

	totalAlloc atomic.Int64
	totalFree  atomic.Int64
	fallbacks  atomic.Int64
}

// NewMmap creates the allocator; huge selects 2 MiB huge pages when available.
func NewMmap(huge bool) *Mmap {
	return &Mmap{huge: huge, mapped: make(map[*byte][]byte)}
}

// Allocate maps n bytes rounded up to the page (or huge page) size.
func (m *Mmap) Allocate(n int) []byte {
	m.totalAlloc.Add(1)
	if n == 0 {
		return make([]byte, 0)
	}

	data, err := m.mapRegion(n)
	if err != nil {
		log.Debug().Err(err).Int("size", n).Msg("mmap failed, using heap")
		m.fallbacks.Add(1)
		return make([]byte, n)
	}

	m.mu.Lock()
	m.mapped[unsafe.SliceData(data)] = data
	m.mu.Unlock()
	return data[:n]
}

func (m *Mmap) mapRegion(n int) ([]byte, error) {
	const prot = unix.PROT_READ | unix.PROT_WRITE
	const flags = unix.MAP_ANONYMOUS | unix.MAP_PRIVATE

	if m.huge {
		length := roundUp(n, hugePageSize)
		if data, err := unix.Mmap(-1, 0, length, prot, flags|unix.MAP_HUGETLB); err == nil {
			return data, nil
		}
	}
	return unix.Mmap(-1, 0, roundUp(n, unix.Getpagesize()), prot, flags)
}

// Free unmaps buf if it came from a mapping; heap fallbacks are left to the GC.
func (m *Mmap) Free(buf []byte) {
	if buf == nil {
		return
	}
	m.totalFree.Add(1)
	if cap(buf) == 0 {
		return
	}

	base := unsafe.SliceData(buf)
	m.mu.Lock()
	region, ok := m.mapped[base]
	delete(m.mapped, base)
	m.mu.Unlock()
	if !ok {
		return
	}
	if err := unix.Munmap(region); err != nil {
		log.Error().Err(err).Int("size", len(region)).Msg("munmap failed")
	}
}

// Mapped returns the number of live mappings.
func (m *Mmap) Mapped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.mapped)
}

func (m *Mmap) Stats() api.AllocatorStats {
	alloc, free := m.totalAlloc.Load(), m.totalFree.Load()
	return api.AllocatorStats{
		TotalAlloc: alloc,
		TotalFree:  free,
		InUse:      alloc - free,
	}
}

func roundUp(n, unit int) int {
	return ((n + unit - 1) / unit) * unit
}

var _ api.Allocator[byte] = (*Mmap)(nil)
