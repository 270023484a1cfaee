// File: reclaim/queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reclaim

import (
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
	"github.com/rs/zerolog/log"

	"github.com/momentics/ownkit/api"
)

// Queue is an unbounded FIFO of retired disposals.
type Queue struct {
	mu sync.Mutex
	q  *queue.Queue

	retired atomic.Int64
	drained atomic.Int64
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{q: queue.New()}
}

var (
	globalOnce sync.Once
	global     *Queue
)

// Global returns the process-wide queue used by type-level deferred deleters.
func Global() *Queue {
	globalOnce.Do(func() {
		global = NewQueue()
	})
	return global
}

// Retire schedules fn for the next Drain.
func (r *Queue) Retire(fn func()) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	r.q.Add(fn)
	r.mu.Unlock()
	r.retired.Add(1)
}

// Drain runs every disposal retired so far, oldest first, and returns how
// many ran. Disposals retired while draining wait for the next Drain.
func (r *Queue) Drain() int {
	r.mu.Lock()
	batch := make([]func(), 0, r.q.Length())
	for r.q.Length() > 0 {
		batch = append(batch, r.q.Remove().(func()))
	}
	r.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	r.drained.Add(int64(len(batch)))
	if len(batch) > 0 {
		log.Debug().Int("count", len(batch)).Msg("reclaim drained")
	}
	return len(batch)
}

// Len returns the number of pending disposals.
func (r *Queue) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.q.Length()
}

// Counters reports lifetime retired and drained totals.
func (r *Queue) Counters() (retired, drained int64) {
	return r.retired.Load(), r.drained.Load()
}

// Deleter returns a disposal strategy that retires next.Delete(p) into r.
func Deleter[T any](r *Queue, next api.Deleter[T]) api.Deleter[T] {
	if next == nil {
		next = api.DefaultDeleter[T]{}
	}
	return api.DeleterFunc[T](func(p *T) {
		r.Retire(func() { next.Delete(p) })
	})
}
