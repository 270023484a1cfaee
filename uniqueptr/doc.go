// Package uniqueptr implements exclusive ownership of one heap value.
//
// A Pointer[T, D] is either empty or owns exactly one *T. Ownership moves
// through Move, Assign and Release; the disposal strategy D runs exactly once
// per owned handle, when the owner is reset or closed.
//
//	p := uniqueptr.New(&conn)
//	defer p.Close()
//
//	q := p.Move() // p is now empty, q owns conn
//
// Pointers must not be copied by value; go vet's copylocks check reports such
// copies. A Pointer is exactly one machine word when D is a zero-size type,
// which every strategy in this package and in api is.
//
// Pointers are not safe for concurrent use.
package uniqueptr
