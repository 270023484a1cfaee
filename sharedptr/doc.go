// Package sharedptr implements shared ownership of one heap value through a
// reference count.
//
// Every owning Pointer to the same value points at one count node; Clone
// and Assign add an owner, Move transfers one, and Close, Reset or
// reassignment drop one. The value's disposal strategy runs exactly once, when
// the last owner lets go. A Pointer is exactly two machine words: the value
// handle and the count node.
//
// Never copy a Pointer with plain assignment: use Clone or Assign for a new
// owner, Move or MoveAssign to transfer one. go vet reports by-value copies.
//
// The count is a plain int. Pointers sharing a value must not be used from
// several goroutines without external synchronization.
package sharedptr
