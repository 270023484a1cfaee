// File: scenario/env.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package scenario

import (
	"maps"
	"slices"

	"github.com/momentics/ownkit/api"
	"github.com/momentics/ownkit/control"
	"github.com/momentics/ownkit/fixedarray"
	"github.com/momentics/ownkit/reclaim"
	"github.com/momentics/ownkit/sharedptr"
	"github.com/momentics/ownkit/uniqueptr"
)

type uniquePtr[T any] = uniqueptr.Pointer[T, uniqueptr.LogDeleter[T]]

// env holds the named slots of one run.
type env[T comparable] struct {
	script  *Script
	parse   func(Literal) (T, error)
	format  func(T) string
	metrics *control.MetricsRegistry
	alloc   api.Allocator[T]
	queue   *reclaim.Queue

	shared   map[string]*sharedptr.Pointer[T]
	unique   map[string]*uniquePtr[T]
	released map[string]*T
	arrays   map[string]*fixedarray.Array[T]
}

func newEnv[T comparable](s *Script, opts Options, alloc api.Allocator[T], parse func(Literal) (T, error), format func(T) string) *env[T] {
	e := &env[T]{
		script:   s,
		parse:    parse,
		format:   format,
		metrics:  opts.Metrics,
		alloc:    alloc,
		shared:   make(map[string]*sharedptr.Pointer[T]),
		unique:   make(map[string]*uniquePtr[T]),
		released: make(map[string]*T),
		arrays:   make(map[string]*fixedarray.Array[T]),
	}
	if opts.Deferred {
		e.queue = reclaim.NewQueue()
	}
	if opts.Probes != nil {
		opts.Probes.RegisterProbe(e.key("live"), func() any { return e.live() })
		opts.Probes.RegisterProbe(e.key("allocator"), func() any { return e.alloc.Stats() })
	}
	return e
}

func (e *env[T]) key(name string) string { return e.script.Name + "." + name }

func (e *env[T]) disposed() { e.metrics.Add(e.key("disposed"), 1) }

// deleter counts shared disposals, deferring them when a queue is configured.
func (e *env[T]) deleter() api.Deleter[T] {
	var d api.Deleter[T] = api.DeleterFunc[T](func(p *T) {
		e.disposed()
		api.DefaultDeleter[T]{}.Delete(p)
	})
	if e.queue != nil {
		d = reclaim.Deleter(e.queue, d)
	}
	return d
}

func (e *env[T]) step(st Step) error {
	e.metrics.Add(e.key("op."+st.Op), 1)
	if st.Op == OpDrain {
		e.drain()
		return nil
	}

	var err error
	switch e.script.Primitive {
	case PrimitiveShared:
		err = e.sharedStep(st)
	case PrimitiveUnique:
		err = e.uniqueStep(st)
	case PrimitiveArray:
		err = e.arrayStep(st)
	}
	if err != nil {
		return err
	}
	if st.Expect != nil {
		return e.check(st)
	}
	return nil
}

func (e *env[T]) drain() {
	if e.queue != nil {
		e.queue.Drain()
	}
}

// value parses the step's literal into a freshly allocated T.
func (e *env[T]) value(st Step) (*T, error) {
	if st.Value == nil {
		return nil, argErr("%s needs a value", st.Op)
	}
	v, err := e.parse(*st.Value)
	if err != nil {
		return nil, err
	}
	raw := new(T)
	*raw = v
	return raw, nil
}

func (e *env[T]) live() map[string]int {
	out := map[string]int{"shared": 0, "unique": 0, "array": 0}
	for _, p := range e.shared {
		if p.Valid() {
			out["shared"]++
		}
	}
	for _, p := range e.unique {
		if p.Valid() {
			out["unique"]++
		}
	}
	for _, a := range e.arrays {
		if a.Owns() {
			out["array"]++
		}
	}
	return out
}

// teardown closes every remaining handle in slot order, then drains.
func (e *env[T]) teardown() {
	for _, name := range slices.Sorted(maps.Keys(e.shared)) {
		_ = e.shared[name].Close()
	}
	for _, name := range slices.Sorted(maps.Keys(e.unique)) {
		p := e.unique[name]
		if p.Valid() {
			e.disposed()
		}
		_ = p.Close()
	}
	for _, name := range slices.Sorted(maps.Keys(e.arrays)) {
		a := e.arrays[name]
		if a.Owns() {
			e.disposed()
		}
		_ = a.Close()
	}
	e.drain()
}
