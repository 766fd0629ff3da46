package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBasicProvider_InstrumentsAreReused(t *testing.T) {
	p := NewBasicProvider()

	c1 := p.Counter("pushed")
	c2 := p.Counter("pushed")
	require.Same(t, c1, c2)

	u1 := p.UpDownCounter("depth")
	u2 := p.UpDownCounter("depth")
	require.Same(t, u1, u2)

	h1 := p.Histogram("duration")
	h2 := p.Histogram("duration")
	require.Same(t, h1, h2)
}

func TestBasicProvider_Values(t *testing.T) {
	p := NewBasicProvider()

	p.Counter("pushed").Add(3)
	p.Counter("pushed").Add(2)
	require.Equal(t, int64(5), p.CounterValue("pushed"))
	require.Equal(t, int64(0), p.CounterValue("unknown"))

	p.UpDownCounter("depth").Add(4)
	p.UpDownCounter("depth").Add(-3)
	require.Equal(t, int64(1), p.UpDownValue("depth"))

	h := p.Histogram("duration").(*BasicHistogram)
	h.Record(0.5)
	h.Record(1.5)
	count, sum := h.Snapshot()
	require.Equal(t, int64(2), count)
	require.InDelta(t, 2.0, sum, 1e-9)
}

func TestBasicProvider_ConcurrentUse(t *testing.T) {
	p := NewBasicProvider()

	const (
		goroutines = 16
		increments = 1000
	)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := p.Counter("shared")
			u := p.UpDownCounter("depth")
			for j := 0; j < increments; j++ {
				c.Add(1)
				u.Add(1)
				u.Add(-1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(goroutines*increments), p.CounterValue("shared"))
	require.Equal(t, int64(0), p.UpDownValue("depth"))
}

func TestNoopProvider(t *testing.T) {
	p := NewNoopProvider()
	// Must not panic or block.
	p.Counter("c").Add(1)
	p.UpDownCounter("u").Add(-1)
	p.Histogram("h").Record(0.25)
}
