// File: api/deleter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Disposal strategies shared by the owning handles.

package api

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
)

// Deleter disposes of a resource handle. Implementations must not panic and
// must tolerate being called exactly once per handle; owning types guarantee
// they never call it twice for the same handle.
type Deleter[T any] interface {
	Delete(p *T)
}

// DefaultDeleter is the ordinary single-object disposal: if the pointee
// implements io.Closer it is closed, then the pointee is reset to its zero
// value so stale aliases cannot observe the released state.
type DefaultDeleter[T any] struct{}

// Delete implements Deleter.
func (DefaultDeleter[T]) Delete(p *T) {
	if p == nil {
		return
	}
	if c, ok := any(p).(io.Closer); ok {
		closeResource(c)
	} else if c, ok := any(*p).(io.Closer); ok {
		closeResource(c)
	}
	var zero T
	*p = zero
}

// closeResource closes c; Delete has no error return, so failures are logged.
func closeResource(c io.Closer) {
	if err := c.Close(); err != nil {
		log.Debug().Err(err).Str("type", fmt.Sprintf("%T", c)).Msg("close on delete failed")
	}
}

// NopDeleter leaves the pointee untouched.
type NopDeleter[T any] struct{}

func (NopDeleter[T]) Delete(*T) {}

// DeleterFunc adapts a plain function into a Deleter.
type DeleterFunc[T any] func(p *T)

// Delete calls f(p).
func (f DeleterFunc[T]) Delete(p *T) {
	if f != nil {
		f(p)
	}
}

var (
	_ Deleter[int] = DefaultDeleter[int]{}
	_ Deleter[int] = NopDeleter[int]{}
	_ Deleter[int] = DeleterFunc[int](nil)
)
