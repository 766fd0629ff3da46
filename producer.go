package scanq

import "github.com/ygrebnov/scanq/metrics"

// record is the unit flowing through the queue. A sentinel record tells
// exactly one worker that no more input is coming; it is distinct from the
// queue reporting shutdown+empty.
type record[T any] struct {
	value    T
	sentinel bool
}

// producer is the single task feeding records into the queue. It checks the
// shutdown flag before every read and push, and finishes by delivering one
// sentinel per worker.
type producer[T any] struct {
	queue    *Queue[record[T]]
	source   Source[T]
	shutdown *ShutdownController
	workers  int

	pushed metrics.Counter
	depth  metrics.UpDownCounter
}

// run feeds the queue until the source is exhausted, shutdown is requested,
// or a push fails, then enters the termination phase.
//
// Termination is dual-path: each worker either receives a sentinel or
// observes shutdown with an empty queue. A sentinel push that fails because
// shutdown raced with it is therefore safe to abandon; the remaining workers
// terminate through the other path.
func (p *producer[T]) run() {
	for {
		if p.shutdown.Requested() {
			p.queue.SignalShutdown()
			break
		}
		v, ok := p.source.Next()
		if !ok {
			break
		}
		if !p.queue.Push(record[T]{value: v}) {
			break
		}
		p.pushed.Add(1)
		p.depth.Add(1)
	}

	for i := 0; i < p.workers; i++ {
		if !p.queue.Push(record[T]{sentinel: true}) {
			break
		}
		p.depth.Add(1)
	}
}
