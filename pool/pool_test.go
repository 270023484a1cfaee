package pool_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/ownkit/pool"
)

func TestHeapAllocateFree(t *testing.T) {
	h := pool.NewHeap[int]()
	buf := h.Allocate(16)
	require.Len(t, buf, 16)
	for _, v := range buf {
		require.Zero(t, v)
	}
	buf[3] = 9
	h.Free(buf)
	require.Zero(t, buf[3], "Free must drop contents")
	h.Free(nil)

	st := h.Stats()
	require.EqualValues(t, 1, st.TotalAlloc)
	require.EqualValues(t, 1, st.TotalFree)
	require.Zero(t, st.InUse)
}

func TestSlabReusesByClass(t *testing.T) {
	s := pool.NewSlab[string](4)

	b1 := s.Allocate(10)
	require.Len(t, b1, 10)
	require.Equal(t, 16, cap(b1))
	b1[0] = "stale"
	s.Free(b1)
	require.Equal(t, 1, s.Idle(10))

	b2 := s.Allocate(12)
	require.Len(t, b2, 12)
	require.Empty(t, b2[0], "recycled buffer must come back zeroed")
	require.Zero(t, s.Idle(12))

	st := s.Stats()
	require.EqualValues(t, 2, st.TotalAlloc)
	require.EqualValues(t, 1, st.Reused)
	require.EqualValues(t, 2, st.ClassStats[16])
	require.EqualValues(t, 1, st.InUse)
}

func TestSlabDropsForeignAndOverflow(t *testing.T) {
	s := pool.NewSlab[int](2)

	s.Free(make([]int, 5)) // cap 5 is no class
	require.Zero(t, s.Idle(5))

	for i := 0; i < 4; i++ {
		s.Free(make([]int, 8))
	}
	require.Equal(t, 2, s.Idle(8), "class list is bounded by depth")

	empty := s.Allocate(0)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}

func TestMmapRoundTrip(t *testing.T) {
	m := pool.NewMmap(false)
	buf := m.Allocate(100)
	require.Len(t, buf, 100)
	for _, b := range buf {
		require.Zero(t, b)
	}
	copy(buf, "ownkit")
	require.Equal(t, "ownkit", string(buf[:6]))

	m.Free(buf)
	require.Zero(t, m.Mapped())
	require.Zero(t, m.Stats().InUse)
}

func TestPooledRecyclesExtent(t *testing.T) {
	p := pool.NewPooled[int](8)
	require.Equal(t, 8, p.Extent())

	b1 := p.Allocate(8)
	require.Len(t, b1, 8)
	b1[7] = 99
	p.Free(b1)
	require.Zero(t, b1[7], "Free must drop contents")

	// sync.Pool may drop idle buffers, so reuse is bounded rather than exact.
	b2 := p.Allocate(8)
	require.Len(t, b2, 8)
	for _, v := range b2 {
		require.Zero(t, v)
	}

	other := p.Allocate(3)
	require.Len(t, other, 3)
	p.Free(other)
	p.Free(b2)
	p.Free(nil)

	st := p.Stats()
	require.EqualValues(t, 3, st.TotalAlloc)
	require.EqualValues(t, 3, st.TotalFree)
	require.Zero(t, st.InUse)
	require.GreaterOrEqual(t, st.Reused, int64(0))
	require.LessOrEqual(t, st.Reused, int64(1))
}

func TestSyncPoolCreatesOnDemand(t *testing.T) {
	made := 0
	sp := pool.NewSyncPool(func() *[]byte {
		made++
		buf := make([]byte, 4)
		return &buf
	})
	var op pool.ObjectPool[*[]byte] = sp

	b := op.Get()
	require.Len(t, *b, 4)
	require.Equal(t, 1, made)
	op.Put(b)
}
