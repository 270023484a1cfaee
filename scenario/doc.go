// Package scenario drives the ownership primitives through scripted
// sequences of copy, move, reset and release steps.
//
// A script names an element kind (int, char, float), a primitive (shared,
// unique, array) and a list of steps. Each step applies one operation to a
// named slot and may carry expectations checked right after it runs:
//
//	name: shared-copy-move
//	kind: int
//	primitive: shared
//	steps:
//	  - {op: new, slot: a, value: 25, expect: {count: 1}}
//	  - {op: clone, slot: b, from: a, expect: {count: 2}}
//	  - {op: move, slot: c, from: a, expect: {count: 2}}
//	  - {op: check, slot: a, expect: {empty: true, count: 0}}
//
// Scripts are YAML (.yaml, .yml) or TOML (.toml). Every handle still alive
// when the script ends is closed in slot order.
package scenario
