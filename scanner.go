package scanq

import (
	"context"
	"sync"
	"time"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/scanq/metrics"
)

// Scanner runs a fixed pool of workers that count predicate matches over a
// stream of records fed through a bounded queue. A Scanner is cheap and
// reusable; every Run owns its queue, counters, shutdown flag, and
// rendezvous, so concurrent runs do not interfere.
type Scanner[T any] struct {
	config *config
}

// New creates a Scanner using functional options.
func New[T any](opts ...Option) (*Scanner[T], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &Scanner[T]{config: &cfg}, nil
}

// Result is the outcome of a single run.
type Result[T any] struct {
	// Total is the aggregated match count computed once by the rendezvous
	// leader.
	Total int

	// PerWorker holds each worker's local count, indexed by worker id.
	PerWorker []int

	// AggregateValid is false when the rendezvous failed; Total is then a
	// best-effort recomputation rather than the leader's value.
	AggregateValid bool

	// Interrupted reports whether the run was cut short by cancellation.
	// Counts are partial but consistent: every record was either counted
	// by exactly one worker or returned in Unconsumed.
	Interrupted bool

	// Unconsumed holds records that were still buffered at teardown.
	// Ownership returns to the caller.
	Unconsumed []T
}

// Run feeds records from src through the queue to the worker pool and blocks
// until the run reaches its final state. Cancelling ctx requests cooperative
// shutdown: the producer stops feeding, buffered records drain, workers exit
// with partial counts, and the aggregated partial total is returned.
//
// Run never leaks goroutines: all of them are joined before it returns.
func (s *Scanner[T]) Run(ctx context.Context, src Source[T], match Predicate[T]) (Result[T], error) {
	if src == nil {
		return Result[T]{}, errorc.With(ErrInvalidConfig, errorc.String("", "Run requires a source"))
	}
	if match == nil {
		return Result[T]{}, errorc.With(ErrInvalidConfig, errorc.String("", "Run requires a predicate"))
	}

	queue, err := NewQueue[record[T]](s.config.QueueCapacity)
	if err != nil {
		return Result[T]{}, err
	}
	rv, err := NewRendezvous(s.config.Workers)
	if err != nil {
		return Result[T]{}, err
	}

	ctrl := NewShutdownController()
	counts := make([]int, s.config.Workers)
	agg := &aggregate{}

	m := s.config.Metrics
	pushed := m.Counter("scanq_records_pushed_total",
		metrics.WithDescription("records accepted by the queue"))
	popped := m.Counter("scanq_records_popped_total",
		metrics.WithDescription("records delivered to workers"))
	matched := m.Counter("scanq_records_matched_total",
		metrics.WithDescription("records satisfying the predicate"))
	depth := m.UpDownCounter("scanq_queue_depth",
		metrics.WithDescription("records and sentinels currently buffered"))
	duration := m.Histogram("scanq_run_duration_seconds",
		metrics.WithUnit("seconds"))

	start := time.Now()

	// A context cancelled before the run starts short-circuits into the
	// shutdown path before any goroutine is spawned.
	if ctx.Err() != nil {
		ctrl.Request()
		queue.SignalShutdown()
	}

	// The shutdown flag may flip from restricted contexts (ctx callbacks,
	// signal goroutines). The condition-variable broadcast runs here, on an
	// ordinary goroutine, never inside the restricted context itself.
	stop := make(chan struct{})
	bridgeDone := make(chan struct{})
	go func() {
		defer close(bridgeDone)
		select {
		case <-ctx.Done():
			ctrl.Request()
			queue.SignalShutdown()
		case <-ctrl.Done():
			queue.SignalShutdown()
		case <-stop:
		}
	}()

	var wg sync.WaitGroup

	p := &producer[T]{
		queue:    queue,
		source:   src,
		shutdown: ctrl,
		workers:  s.config.Workers,
		pushed:   pushed,
		depth:    depth,
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.run()
	}()

	for i := 0; i < s.config.Workers; i++ {
		w := &worker[T]{
			id:      i,
			queue:   queue,
			match:   match,
			counts:  counts,
			rv:      rv,
			agg:     agg,
			popped:  popped,
			matches: matched,
			depth:   depth,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.run()
		}()
	}

	wg.Wait()
	close(stop)
	<-bridgeDone

	leftovers := queue.Drain()
	depth.Add(-int64(len(leftovers)))
	unconsumed := make([]T, 0, len(leftovers))
	for _, rec := range leftovers {
		if !rec.sentinel {
			unconsumed = append(unconsumed, rec.value)
		}
	}

	duration.Record(time.Since(start).Seconds())

	res := Result[T]{
		PerWorker:   counts,
		Interrupted: ctrl.Requested(),
		Unconsumed:  unconsumed,
	}

	if agg.err != nil {
		// leader election broke; recompute best-effort, flagged invalid
		for _, n := range counts {
			res.Total += n
		}
		return res, agg.err
	}

	res.Total = agg.total
	res.AggregateValid = agg.valid
	return res, nil
}
