//go:build linux

package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestMmapTracksMappings(t *testing.T) {
	m := NewMmap(true)
	a := m.Allocate(10)
	b := m.Allocate(unix.Getpagesize() + 1)
	require.Equal(t, 2, m.Mapped()+int(m.fallbacks.Load()))

	m.Free(a)
	m.Free(b)
	require.Zero(t, m.Mapped())
}

func TestRoundUp(t *testing.T) {
	require.Equal(t, 4096, roundUp(1, 4096))
	require.Equal(t, 4096, roundUp(4096, 4096))
	require.Equal(t, 8192, roundUp(4097, 4096))
}
