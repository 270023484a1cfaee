// File: sharedptr/block.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sharedptr

import "github.com/momentics/ownkit/api"

// block is the count node shared by every owner of one value. It carries the
// disposal strategy so that owners stay two words wide.
type block[T any] struct {
	refs    int
	deleter api.Deleter[T]
}

func newBlock[T any](d api.Deleter[T]) *block[T] {
	if d == nil {
		d = api.DefaultDeleter[T]{}
	}
	return &block[T]{refs: 1, deleter: d}
}

func (b *block[T]) acquire() { b.refs++ }

// release drops one owner and disposes of obj when it was the last.
func (b *block[T]) release(obj *T) {
	b.refs--
	if b.refs == 0 {
		b.deleter.Delete(obj)
	}
}
