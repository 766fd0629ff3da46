package scanq

import (
	"sync"

	"github.com/ygrebnov/scanq/metrics"
)

// aggregate is the rendezvous leader's output slot. total and valid are
// written by exactly one goroutine (the leader) and read only after all
// workers have been joined; err records the first rendezvous failure.
type aggregate struct {
	total int
	valid bool

	once sync.Once
	err  error
}

func (a *aggregate) fail(err error) {
	a.once.Do(func() { a.err = err })
}

// worker drains the queue, counting records that satisfy the predicate.
// Each worker owns counts[id] exclusively; no other goroutine writes it.
type worker[T any] struct {
	id     int
	queue  *Queue[record[T]]
	match  Predicate[T]
	counts []int
	rv     *Rendezvous
	agg    *aggregate

	popped  metrics.Counter
	matches metrics.Counter
	depth   metrics.UpDownCounter
}

// run loops until either path terminates it: a sentinel addressed to this
// worker, or shutdown observed with an empty queue. Either alone suffices.
// It then publishes its count and enters the rendezvous; the elected leader
// sums all slots exactly once.
func (w *worker[T]) run() {
	local := 0
	for {
		rec, ok := w.queue.Pop()
		if !ok {
			break
		}
		w.depth.Add(-1)
		if rec.sentinel {
			break
		}
		w.popped.Add(1)
		if w.match(rec.value) {
			local++
			w.matches.Add(1)
		}
	}
	w.counts[w.id] = local

	leader, err := w.rv.Wait()
	if err != nil {
		w.agg.fail(err)
		return
	}
	if leader {
		total := 0
		for _, n := range w.counts {
			total += n
		}
		w.agg.total = total
		w.agg.valid = true
	}
}
