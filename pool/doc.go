// Package pool
// Author: momentics <momentics@gmail.com>
//
// Storage strategies for owning containers.
// Heap allocates from the Go heap, Slab recycles buffers per power-of-two size
// class through lock-free free lists, Pooled recycles buffers of one fixed
// extent through a sync.Pool, and Mmap (Linux) backs byte buffers with
// anonymous mappings that are unmapped on Free.
// All allocators are safe for concurrent use.
package pool
