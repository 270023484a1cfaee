// File: scenario/shared.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package scenario

import (
	"github.com/momentics/ownkit/api"
	"github.com/momentics/ownkit/sharedptr"
)

func (e *env[T]) sharedSlot(name string) *sharedptr.Pointer[T] {
	p, ok := e.shared[name]
	if !ok {
		p = new(sharedptr.Pointer[T])
		e.shared[name] = p
	}
	return p
}

func (e *env[T]) sharedAt(name string) (*sharedptr.Pointer[T], error) {
	p, ok := e.shared[name]
	if !ok {
		return nil, api.Wrap(api.ErrCodeNotFound, api.ErrNotFound, "no shared slot "+name)
	}
	return p, nil
}

func (e *env[T]) sharedStep(st Step) error {
	switch st.Op {
	case OpNew:
		raw, err := e.value(st)
		if err != nil {
			return err
		}
		tmp := sharedptr.NewWith(raw, e.deleter())
		e.sharedSlot(st.Slot).MoveAssign(&tmp)
	case OpEmpty:
		var tmp sharedptr.Pointer[T]
		e.sharedSlot(st.Slot).MoveAssign(&tmp)
	case OpClone:
		src, err := e.sharedAt(st.From)
		if err != nil {
			return err
		}
		tmp := src.Clone()
		e.sharedSlot(st.Slot).MoveAssign(&tmp)
	case OpAssign:
		src, err := e.sharedAt(st.From)
		if err != nil {
			return err
		}
		e.sharedSlot(st.Slot).Assign(src)
	case OpMove:
		src, err := e.sharedAt(st.From)
		if err != nil {
			return err
		}
		tmp := src.Move()
		e.sharedSlot(st.Slot).MoveAssign(&tmp)
	case OpMoveAssign:
		src, err := e.sharedAt(st.From)
		if err != nil {
			return err
		}
		e.sharedSlot(st.Slot).MoveAssign(src)
	case OpReset:
		p := e.sharedSlot(st.Slot)
		if st.Value == nil {
			p.Reset(nil)
			return nil
		}
		raw, err := e.value(st)
		if err != nil {
			return err
		}
		p.ResetWith(raw, e.deleter())
	case OpClose:
		p, err := e.sharedAt(st.Slot)
		if err != nil {
			return err
		}
		_ = p.Close()
	case OpCheck:
	default:
		return unsupported(PrimitiveShared, st.Op)
	}
	return nil
}

func (e *env[T]) checkShared(st Step) error {
	p, err := e.sharedAt(st.Slot)
	if err != nil {
		return err
	}
	x := st.Expect
	if x.Empty != nil && *x.Empty != (p.Get() == nil) {
		return expectErr("empty: want %t, got %t", *x.Empty, p.Get() == nil)
	}
	if x.Count != nil && *x.Count != p.Count() {
		return expectErr("count: want %d, got %d", *x.Count, p.Count())
	}
	if x.Value != nil {
		if !p.Valid() {
			return api.Wrap(api.ErrCodeExpectation, api.ErrEmptyHandle, "value of empty shared pointer")
		}
		if err := e.expectEq("value", *x.Value, p.Value()); err != nil {
			return err
		}
	}
	if x.Released != nil || x.Values != nil || x.Front != nil || x.Back != nil || x.Size != nil {
		return argErr("shared expectations support empty, count and value only")
	}
	return nil
}
