// File: scenario/unique.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package scenario

import "github.com/momentics/ownkit/api"

func (e *env[T]) uniqueSlot(name string) *uniquePtr[T] {
	p, ok := e.unique[name]
	if !ok {
		p = new(uniquePtr[T])
		e.unique[name] = p
	}
	return p
}

func (e *env[T]) uniqueAt(name string) (*uniquePtr[T], error) {
	p, ok := e.unique[name]
	if !ok {
		return nil, api.Wrap(api.ErrCodeNotFound, api.ErrNotFound, "no unique slot "+name)
	}
	return p, nil
}

// replaceUnique move-assigns src into the slot, counting the disposal of the
// handle it displaces.
func (e *env[T]) replaceUnique(name string, src *uniquePtr[T]) {
	dst := e.uniqueSlot(name)
	if dst != src && dst.Valid() {
		e.disposed()
	}
	dst.Assign(src)
}

func (e *env[T]) uniqueStep(st Step) error {
	switch st.Op {
	case OpNew:
		raw, err := e.value(st)
		if err != nil {
			return err
		}
		var tmp uniquePtr[T]
		tmp.Reset(raw)
		e.replaceUnique(st.Slot, &tmp)
	case OpEmpty:
		var tmp uniquePtr[T]
		e.replaceUnique(st.Slot, &tmp)
	case OpMove:
		src, err := e.uniqueAt(st.From)
		if err != nil {
			return err
		}
		tmp := src.Move()
		e.replaceUnique(st.Slot, &tmp)
	case OpMoveAssign:
		src, err := e.uniqueAt(st.From)
		if err != nil {
			return err
		}
		e.replaceUnique(st.Slot, src)
	case OpReset:
		p := e.uniqueSlot(st.Slot)
		var raw *T
		if st.Value != nil {
			var err error
			if raw, err = e.value(st); err != nil {
				return err
			}
		}
		if p.Valid() {
			e.disposed()
		}
		p.Reset(raw)
	case OpRelease:
		p, err := e.uniqueAt(st.Slot)
		if err != nil {
			return err
		}
		e.released[st.Slot] = p.Release()
	case OpClose:
		p, err := e.uniqueAt(st.Slot)
		if err != nil {
			return err
		}
		if p.Valid() {
			e.disposed()
		}
		_ = p.Close()
	case OpClone, OpAssign:
		return api.Wrap(api.ErrCodeNotSupported, api.ErrNotSupported, "unique pointers cannot be copied")
	case OpCheck:
	default:
		return unsupported(PrimitiveUnique, st.Op)
	}
	return nil
}

func (e *env[T]) checkUnique(st Step) error {
	x := st.Expect
	if x.Released != nil {
		raw, ok := e.released[st.Slot]
		if !ok || raw == nil {
			return api.Wrap(api.ErrCodeExpectation, api.ErrEmptyHandle, "nothing released from "+st.Slot)
		}
		if err := e.expectEq("released", *x.Released, *raw); err != nil {
			return err
		}
	}
	if x.Count != nil || x.Values != nil || x.Front != nil || x.Back != nil || x.Size != nil {
		return argErr("unique expectations support empty, value and released only")
	}
	if x.Empty == nil && x.Value == nil {
		return nil
	}

	p, err := e.uniqueAt(st.Slot)
	if err != nil {
		return err
	}
	if x.Empty != nil && *x.Empty != (p.Get() == nil) {
		return expectErr("empty: want %t, got %t", *x.Empty, p.Get() == nil)
	}
	if x.Value != nil {
		if !p.Valid() {
			return api.Wrap(api.ErrCodeExpectation, api.ErrEmptyHandle, "value of empty unique pointer")
		}
		return e.expectEq("value", *x.Value, p.Value())
	}
	return nil
}
