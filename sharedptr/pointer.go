// File: sharedptr/pointer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sharedptr

import "github.com/momentics/ownkit/api"

// noCopy lets go vet flag by-value copies of a Pointer; a plain copy is an
// owner the count never recorded.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Pointer is one owner of a shared value. The zero value is empty: no value
// and no count node. Additional owners come only from Clone or Assign.
type Pointer[T any] struct {
	_   noCopy
	obj *T
	ctl *block[T]
}

// New starts shared ownership of raw with a count of 1 and the default
// disposal strategy. A nil raw yields an empty Pointer.
func New[T any](raw *T) Pointer[T] {
	return NewWith(raw, nil)
}

// NewWith is New with an explicit disposal strategy; a nil d selects
// api.DefaultDeleter.
func NewWith[T any](raw *T, d api.Deleter[T]) Pointer[T] {
	if raw == nil {
		return Pointer[T]{}
	}
	return Pointer[T]{obj: raw, ctl: newBlock(d)}
}

// Clone returns a new owner of p's value.
func (p *Pointer[T]) Clone() Pointer[T] {
	if p.ctl != nil {
		p.ctl.acquire()
	}
	return Pointer[T]{obj: p.obj, ctl: p.ctl}
}

// Assign makes p another owner of other's value, first dropping p's current
// ownership. Self-assignment does nothing.
func (p *Pointer[T]) Assign(other *Pointer[T]) {
	if p == other {
		return
	}
	// Acquire before dropping: p and other may already share a node.
	if other.ctl != nil {
		other.ctl.acquire()
	}
	p.drop()
	p.obj, p.ctl = other.obj, other.ctl
}

// Move transfers p's ownership to a new Pointer without touching the count
// and leaves p empty.
func (p *Pointer[T]) Move() Pointer[T] {
	obj, ctl := p.obj, p.ctl
	p.obj, p.ctl = nil, nil
	return Pointer[T]{obj: obj, ctl: ctl}
}

// MoveAssign drops p's current ownership and takes over other's; other
// becomes empty. Self-move does nothing.
func (p *Pointer[T]) MoveAssign(other *Pointer[T]) {
	if p == other {
		return
	}
	obj, ctl := other.obj, other.ctl
	other.obj, other.ctl = nil, nil
	p.drop()
	p.obj, p.ctl = obj, ctl
}

// Reset drops the current ownership, then owns raw with a fresh count of 1.
// Other owners of the previous value are unaffected beyond losing one peer.
func (p *Pointer[T]) Reset(raw *T) {
	p.ResetWith(raw, nil)
}

// ResetWith is Reset with an explicit disposal strategy for raw.
// Resetting to the value already held is a no-op and keeps the current
// count and strategy.
func (p *Pointer[T]) ResetWith(raw *T, d api.Deleter[T]) {
	if raw != nil && raw == p.obj {
		return
	}
	p.drop()
	*p = NewWith(raw, d)
}

// Count returns the number of owners of the current value, 0 when empty.
func (p *Pointer[T]) Count() int {
	if p.ctl == nil {
		return 0
	}
	return p.ctl.refs
}

// Unique reports whether p is the only owner of its value.
func (p *Pointer[T]) Unique() bool { return p.Count() == 1 }

// Get returns the value handle without affecting ownership.
func (p *Pointer[T]) Get() *T { return p.obj }

// Value dereferences the handle. It panics if p is empty.
func (p *Pointer[T]) Value() T { return *p.obj }

// Valid reports whether p owns a value.
func (p *Pointer[T]) Valid() bool { return p.obj != nil }

// Close drops p's ownership and leaves it empty. It is safe to call
// repeatedly and always returns nil.
func (p *Pointer[T]) Close() error {
	p.drop()
	return nil
}

func (p *Pointer[T]) drop() {
	if p.ctl != nil {
		p.ctl.release(p.obj)
	}
	p.obj, p.ctl = nil, nil
}
