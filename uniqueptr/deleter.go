// File: uniqueptr/deleter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package uniqueptr

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/momentics/ownkit/api"
	"github.com/momentics/ownkit/reclaim"
)

// LogDeleter traces every disposal at debug level, then applies the default
// strategy.
type LogDeleter[T any] struct{}

func (LogDeleter[T]) Delete(p *T) {
	log.Debug().
		Str("type", fmt.Sprintf("%T", p)).
		Str("addr", fmt.Sprintf("%p", p)).
		Msg("deleting resource")
	api.DefaultDeleter[T]{}.Delete(p)
}

// DeferredDeleter retires the default disposal into reclaim.Global(); the
// pointee stays intact until the global queue is drained.
type DeferredDeleter[T any] struct{}

func (DeferredDeleter[T]) Delete(p *T) {
	reclaim.Global().Retire(func() { api.DefaultDeleter[T]{}.Delete(p) })
}

var (
	_ api.Deleter[int] = LogDeleter[int]{}
	_ api.Deleter[int] = DeferredDeleter[int]{}
)
