// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime introspection for ownkit tooling: a metrics registry counting
// ownership events and debug probes exposing live state.
package control
