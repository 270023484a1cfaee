// Package fixedarray implements an owning, fixed-length sequence with value
// semantics.
//
// An Array owns one buffer of exactly Size() elements, obtained from an
// api.Allocator when the array is built. Clone and CopyFrom deep-copy; Move
// and MoveFrom hand the buffer over in O(1) and leave the source without
// storage. The buffer goes back to its allocator exactly once: on Close, or
// when CopyFrom/MoveFrom replaces it.
//
// Indexing is not range-checked beyond Go's own slice bounds checks; an
// out-of-range At panics. Arrays are not safe for concurrent use.
package fixedarray
