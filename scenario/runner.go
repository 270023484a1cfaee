// File: scenario/runner.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package scenario

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/momentics/ownkit/api"
	"github.com/momentics/ownkit/control"
	"github.com/momentics/ownkit/pool"
)

// Step operations. Not every primitive supports every op: unique pointers
// reject clone/assign, and only arrays accept set/fill.
const (
	OpNew        = "new"         // construct from value (arrays: from size, optional values)
	OpEmpty      = "empty"       // default-construct into slot
	OpClone      = "clone"       // copy-construct slot from `from`
	OpAssign     = "assign"      // copy-assign `from` into existing slot
	OpMove       = "move"        // move-construct slot from `from`
	OpMoveAssign = "move_assign" // move-assign `from` into slot
	OpReset      = "reset"       // reset to value, or to empty without one
	OpRelease    = "release"     // unique only: hand the handle to the script
	OpSet        = "set"         // array only: element at index = value
	OpFill       = "fill"        // array only
	OpClose      = "close"       // destroy the handle held in slot
	OpCheck      = "check"       // expectations only
	OpDrain      = "drain"       // run deferred disposals
)

// Allocator names accepted in Options.
const (
	AllocatorHeap   = "heap"
	AllocatorSlab   = "slab"
	AllocatorPooled = "pooled"
	AllocatorMmap   = "mmap"
)

// Options tune a run.
type Options struct {
	// Allocator backs arrays: heap (default), slab, pooled (recycles the
	// script's array size) or mmap (char only).
	Allocator string
	// Deferred routes shared-pointer disposals through a reclaim queue that
	// is drained by `drain` steps and at the end of the script.
	Deferred bool
	// Metrics receives per-script counters; a private registry is used when nil.
	Metrics *control.MetricsRegistry
	// Probes, when set, gets per-script live-state probes.
	Probes *control.DebugProbes
}

// Result summarizes a run.
type Result struct {
	Name     string
	Steps    int   // steps completed
	Disposed int64 // disposals observed, including teardown
}

// Run executes s. A failing step stops the run; live handles are closed
// either way. The returned error is an *api.Error carrying the step index,
// op and slot.
func Run(s *Script, opts Options) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{Name: s.Name}, err
	}
	if opts.Metrics == nil {
		opts.Metrics = control.NewMetricsRegistry()
	}
	switch s.Kind {
	case KindInt:
		return run(s, opts, parseInt, strconv.Itoa)
	case KindChar:
		return run(s, opts, parseChar, func(b byte) string { return strconv.QuoteRune(rune(b)) })
	default:
		return run(s, opts, parseFloat, func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) })
	}
}

func run[T comparable](s *Script, opts Options, parse func(Literal) (T, error), format func(T) string) (Result, error) {
	res := Result{Name: s.Name}
	alloc, err := allocatorFor[T](opts.Allocator, s.Size)
	if err != nil {
		return res, err
	}
	e := newEnv(s, opts, alloc, parse, format)

	var runErr error
	for i, st := range s.Steps {
		log.Debug().Str("script", s.Name).Int("step", i).Str("op", st.Op).Str("slot", st.Slot).Msg("scenario step")
		if err := e.step(st); err != nil {
			runErr = stepError(i, st, err)
			break
		}
		res.Steps++
	}
	e.teardown()
	res.Disposed = e.metrics.Counter(e.key("disposed"))

	if runErr != nil {
		log.Debug().Err(runErr).Str("script", s.Name).Msg("scenario failed")
	}
	return res, runErr
}

func allocatorFor[T any](name string, extent int) (api.Allocator[T], error) {
	switch name {
	case "", AllocatorHeap:
		return pool.NewHeap[T](), nil
	case AllocatorSlab:
		return pool.NewSlab[T](0), nil
	case AllocatorPooled:
		return pool.NewPooled[T](extent), nil
	case AllocatorMmap:
		if a, ok := any(pool.NewMmap(false)).(api.Allocator[T]); ok {
			return a, nil
		}
		return nil, api.Wrap(api.ErrCodeNotSupported, api.ErrNotSupported, "mmap allocator requires char elements")
	default:
		return nil, api.Wrap(api.ErrCodeInvalidArgument, api.ErrInvalidArgument, fmt.Sprintf("unknown allocator %q", name))
	}
}

func stepError(i int, st Step, err error) error {
	var ae *api.Error
	if !errors.As(err, &ae) {
		ae = api.Wrap(api.ErrCodeInternal, err, err.Error())
	}
	return ae.WithContext("step", i).WithContext("op", st.Op).WithContext("slot", st.Slot)
}

func expectErr(format string, args ...any) error {
	return api.Wrap(api.ErrCodeExpectation, api.ErrExpectation, fmt.Sprintf(format, args...))
}

func argErr(format string, args ...any) error {
	return api.Wrap(api.ErrCodeInvalidArgument, api.ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func unsupported(p Primitive, op string) error {
	return api.Wrap(api.ErrCodeNotSupported, api.ErrUnknownOp, fmt.Sprintf("%s does not support %q", p, op))
}

func parseInt(l Literal) (int, error) {
	v, err := strconv.Atoi(string(l))
	if err != nil {
		return 0, argErr("int literal %q", l)
	}
	return v, nil
}

func parseChar(l Literal) (byte, error) {
	if len(l) != 1 {
		return 0, argErr("char literal %q must be one byte", l)
	}
	return l[0], nil
}

func parseFloat(l Literal) (float64, error) {
	v, err := strconv.ParseFloat(string(l), 64)
	if err != nil {
		return 0, argErr("float literal %q", l)
	}
	return v, nil
}
