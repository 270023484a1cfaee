// File: scenario/check.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package scenario

func (e *env[T]) check(st Step) error {
	switch e.script.Primitive {
	case PrimitiveShared:
		return e.checkShared(st)
	case PrimitiveUnique:
		return e.checkUnique(st)
	default:
		return e.checkArray(st)
	}
}

func (e *env[T]) expectEq(what string, want Literal, got T) error {
	w, err := e.parse(want)
	if err != nil {
		return err
	}
	if w != got {
		return expectErr("%s: want %s, got %s", what, e.format(w), e.format(got))
	}
	return nil
}
