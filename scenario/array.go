// File: scenario/array.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package scenario

import (
	"fmt"

	"github.com/momentics/ownkit/api"
	"github.com/momentics/ownkit/fixedarray"
)

func (e *env[T]) arrayAt(name string) (*fixedarray.Array[T], error) {
	a, ok := e.arrays[name]
	if !ok {
		return nil, api.Wrap(api.ErrCodeNotFound, api.ErrNotFound, "no array slot "+name)
	}
	return a, nil
}

// ownedArray is arrayAt for steps that touch elements.
func (e *env[T]) ownedArray(name string) (*fixedarray.Array[T], error) {
	a, err := e.arrayAt(name)
	if err != nil {
		return nil, err
	}
	if !a.Owns() {
		return nil, api.Wrap(api.ErrCodeInvalidArgument, api.ErrEmptyHandle, "array "+name+" has no storage")
	}
	return a, nil
}

// putArray stores a in the slot, closing the array it displaces.
func (e *env[T]) putArray(name string, a *fixedarray.Array[T]) {
	if old, ok := e.arrays[name]; ok && old != a {
		if old.Owns() {
			e.disposed()
		}
		_ = old.Close()
	}
	e.arrays[name] = a
}

func (e *env[T]) arrayStep(st Step) error {
	switch st.Op {
	case OpNew, OpEmpty:
		if len(st.Values) > e.script.Size {
			return argErr("%d values exceed array size %d", len(st.Values), e.script.Size)
		}
		a := fixedarray.New(e.script.Size, fixedarray.WithAllocator(e.alloc))
		for i, l := range st.Values {
			v, err := e.parse(l)
			if err != nil {
				_ = a.Close()
				return err
			}
			*a.At(i) = v
		}
		e.putArray(st.Slot, a)
	case OpSet:
		a, err := e.ownedArray(st.Slot)
		if err != nil {
			return err
		}
		if st.Index < 0 || st.Index >= a.Size() {
			return argErr("index %d out of range [0,%d)", st.Index, a.Size())
		}
		raw, err := e.value(st)
		if err != nil {
			return err
		}
		*a.At(st.Index) = *raw
	case OpFill:
		a, err := e.ownedArray(st.Slot)
		if err != nil {
			return err
		}
		raw, err := e.value(st)
		if err != nil {
			return err
		}
		a.Fill(*raw)
	case OpClone:
		src, err := e.arrayAt(st.From)
		if err != nil {
			return err
		}
		e.putArray(st.Slot, src.Clone())
	case OpAssign:
		dst, src, err := e.arrayPair(st)
		if err != nil {
			return err
		}
		if dst != src && dst.Owns() {
			e.disposed()
		}
		dst.CopyFrom(src)
	case OpMove:
		src, err := e.arrayAt(st.From)
		if err != nil {
			return err
		}
		e.putArray(st.Slot, src.Move())
	case OpMoveAssign:
		dst, src, err := e.arrayPair(st)
		if err != nil {
			return err
		}
		if dst != src && dst.Owns() {
			e.disposed()
		}
		dst.MoveFrom(src)
	case OpClose:
		a, err := e.arrayAt(st.Slot)
		if err != nil {
			return err
		}
		if a.Owns() {
			e.disposed()
		}
		_ = a.Close()
	case OpCheck:
	default:
		return unsupported(PrimitiveArray, st.Op)
	}
	return nil
}

func (e *env[T]) arrayPair(st Step) (dst, src *fixedarray.Array[T], err error) {
	if dst, err = e.arrayAt(st.Slot); err != nil {
		return nil, nil, err
	}
	if src, err = e.arrayAt(st.From); err != nil {
		return nil, nil, err
	}
	return dst, src, nil
}

func (e *env[T]) checkArray(st Step) error {
	a, err := e.arrayAt(st.Slot)
	if err != nil {
		return err
	}
	x := st.Expect
	if x.Empty != nil && *x.Empty != !a.Owns() {
		return expectErr("empty: want %t, got %t", *x.Empty, !a.Owns())
	}
	if x.Size != nil && *x.Size != a.Size() {
		return expectErr("size: want %d, got %d", *x.Size, a.Size())
	}
	if x.Count != nil || x.Released != nil {
		return argErr("array expectations support empty, size, value, values, front and back only")
	}
	if x.Value == nil && x.Values == nil && x.Front == nil && x.Back == nil {
		return nil
	}

	if a, err = e.ownedArray(st.Slot); err != nil {
		return err
	}
	if x.Value != nil {
		if st.Index < 0 || st.Index >= a.Size() {
			return argErr("index %d out of range [0,%d)", st.Index, a.Size())
		}
		if err := e.expectEq("value", *x.Value, *a.At(st.Index)); err != nil {
			return err
		}
	}
	if x.Values != nil {
		if len(x.Values) > a.Size() {
			return argErr("%d expected values exceed array size %d", len(x.Values), a.Size())
		}
		var zero T
		for i, got := range a.All() {
			if i < len(x.Values) {
				if err := e.expectEq(fmt.Sprintf("values[%d]", i), x.Values[i], got); err != nil {
					return err
				}
				continue
			}
			if got != zero {
				return expectErr("values[%d]: want zero value, got %s", i, e.format(got))
			}
		}
	}
	if x.Front != nil && a.Size() > 0 {
		if err := e.expectEq("front", *x.Front, *a.Front()); err != nil {
			return err
		}
	}
	if x.Back != nil && a.Size() > 0 {
		if err := e.expectEq("back", *x.Back, *a.Back()); err != nil {
			return err
		}
	}
	return nil
}
