package scanq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/scanq/metrics"
)

func newTestProducer(q *Queue[record[string]], src Source[string], ctrl *ShutdownController, workers int) *producer[string] {
	noop := metrics.NewNoopProvider()
	return &producer[string]{
		queue:    q,
		source:   src,
		shutdown: ctrl,
		workers:  workers,
		pushed:   noop.Counter("pushed"),
		depth:    noop.UpDownCounter("depth"),
	}
}

func TestProducer_RecordsThenSentinels(t *testing.T) {
	q, err := NewQueue[record[string]](16)
	require.NoError(t, err)

	p := newTestProducer(q, FromSlice([]string{"a", "b", "c"}), NewShutdownController(), 3)
	p.run()

	// Records first, in input order.
	for _, want := range []string{"a", "b", "c"} {
		rec, ok := q.Pop()
		require.True(t, ok)
		require.False(t, rec.sentinel)
		require.Equal(t, want, rec.value)
	}
	// Then exactly one sentinel per worker.
	for i := 0; i < 3; i++ {
		rec, ok := q.Pop()
		require.True(t, ok)
		require.True(t, rec.sentinel)
	}
	require.Equal(t, 0, q.Len())
}

func TestProducer_ShutdownBeforeRun(t *testing.T) {
	q, err := NewQueue[record[string]](4)
	require.NoError(t, err)

	ctrl := NewShutdownController()
	ctrl.Request()

	p := newTestProducer(q, FromSlice([]string{"a", "b"}), ctrl, 2)
	p.run()

	// Nothing was fed and the sentinel pushes failed; the queue is already
	// in shutdown, so pops report none.
	_, ok := q.Pop()
	require.False(t, ok)
	require.Equal(t, 0, q.Len())
}

func TestProducer_StopsWhenPushFails(t *testing.T) {
	q, err := NewQueue[record[string]](1)
	require.NoError(t, err)

	ctrl := NewShutdownController()
	endless := SourceFunc[string](func() (string, bool) { return "x", true })

	done := make(chan struct{})
	go func() {
		defer close(done)
		p := newTestProducer(q, endless, ctrl, 1)
		p.run()
	}()

	// Let the producer fill the queue and block, then shut down.
	time.Sleep(20 * time.Millisecond)
	ctrl.Request()
	q.SignalShutdown()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("producer did not stop after its push failed under shutdown")
	}
}
