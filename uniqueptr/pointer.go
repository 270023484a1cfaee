// File: uniqueptr/pointer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package uniqueptr

import "github.com/momentics/ownkit/api"

// noCopy lets go vet flag by-value copies of a Pointer.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Pointer exclusively owns at most one *T and disposes of it with D.
// The zero value is empty and ready to use.
type Pointer[T any, D api.Deleter[T]] struct {
	_   [0]D
	_   noCopy
	ptr *T
}

// Box is a Pointer with the default disposal strategy.
type Box[T any] = Pointer[T, api.DefaultDeleter[T]]

// New adopts raw with the default disposal strategy. raw may be nil; it is
// not validated and must not be owned by anything else.
func New[T any](raw *T) Box[T] {
	return Box[T]{ptr: raw}
}

// NewWith adopts raw with disposal strategy D:
//
//	p := uniqueptr.NewWith[uniqueptr.LogDeleter[int]](&v)
func NewWith[D api.Deleter[T], T any](raw *T) Pointer[T, D] {
	return Pointer[T, D]{ptr: raw}
}

// Move transfers the handle to a new Pointer and leaves p empty.
func (p *Pointer[T, D]) Move() Pointer[T, D] {
	raw := p.ptr
	p.ptr = nil
	return Pointer[T, D]{ptr: raw}
}

// Assign disposes of p's current handle, then takes other's; other becomes
// empty. Assigning a Pointer to itself does nothing.
func (p *Pointer[T, D]) Assign(other *Pointer[T, D]) {
	if p == other {
		return
	}
	raw := other.ptr
	other.ptr = nil
	p.Reset(raw)
}

// Reset disposes of the current handle, if any, and adopts raw.
// Resetting to the handle already owned is a no-op.
func (p *Pointer[T, D]) Reset(raw *T) {
	old := p.ptr
	if old == raw {
		return
	}
	p.ptr = raw
	if old != nil {
		var d D
		d.Delete(old)
	}
}

// Release returns the handle without disposing of it and leaves p empty.
// The caller now owns the returned value.
func (p *Pointer[T, D]) Release() *T {
	raw := p.ptr
	p.ptr = nil
	return raw
}

// Get returns the handle without transferring ownership.
func (p *Pointer[T, D]) Get() *T { return p.ptr }

// Value dereferences the handle. It panics if p is empty.
func (p *Pointer[T, D]) Value() T { return *p.ptr }

// Valid reports whether p owns a handle.
func (p *Pointer[T, D]) Valid() bool { return p.ptr != nil }

// Close disposes of the owned handle, if any. It is safe to call repeatedly
// and always returns nil.
func (p *Pointer[T, D]) Close() error {
	p.Reset(nil)
	return nil
}
