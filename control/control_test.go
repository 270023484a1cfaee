package control_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/ownkit/control"
)

func TestMetricsCounters(t *testing.T) {
	mr := control.NewMetricsRegistry()
	require.True(t, mr.Updated().IsZero())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mr.Add("disposals", 1)
		}()
	}
	wg.Wait()
	require.EqualValues(t, 10, mr.Counter("disposals"))

	mr.Set("allocator", "slab")
	mr.Add("allocator", 2)
	snap := mr.GetSnapshot()
	require.EqualValues(t, 2, snap["allocator"])
	require.False(t, mr.Updated().IsZero())

	snap["disposals"] = int64(0)
	require.EqualValues(t, 10, mr.Counter("disposals"), "snapshot is a copy")
	require.Zero(t, mr.Counter("missing"))
}

func TestDebugProbes(t *testing.T) {
	dp := control.NewDebugProbes()
	live := 3
	dp.RegisterProbe("live", func() any { return live })
	dp.RegisterProbe("allocator", func() any { return "heap" })

	require.Equal(t, []string{"allocator", "live"}, dp.Names())
	live = 4
	state := dp.DumpState()
	require.Equal(t, 4, state["live"])
	require.Equal(t, "heap", state["allocator"])
}
