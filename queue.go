package scanq

import (
	"strconv"
	"sync"

	"github.com/ygrebnov/errorc"
)

// Queue is a fixed-capacity FIFO shared between one producer and any number
// of consumers. Push blocks while the queue is full, Pop blocks while it is
// empty; both observe cooperative shutdown and report it through their return
// values instead of panicking. Methods are safe for concurrent use.
type Queue[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond // producers wait here while the ring is full
	notEmpty *sync.Cond // consumers wait here while the ring is empty

	buf   []T
	head  int // next slot to pop
	tail  int // next slot to push
	count int

	shuttingDown bool
}

// NewQueue creates a queue holding at most capacity items.
func NewQueue[T any](capacity int) (*Queue[T], error) {
	if capacity < 1 {
		return nil, errorc.With(
			ErrInvalidCapacity,
			errorc.String("capacity", strconv.Itoa(capacity)),
		)
	}
	q := &Queue[T]{buf: make([]T, capacity)}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)
	return q, nil
}

// Push appends v, blocking while the queue is full. It returns false without
// enqueuing if shutdown is observed, whether on entry or while blocked. On
// success it wakes one waiting consumer.
func (q *Queue[T]) Push(v T) bool {
	q.mu.Lock()
	for q.count == len(q.buf) && !q.shuttingDown {
		q.notFull.Wait()
	}
	if q.shuttingDown {
		q.mu.Unlock()
		return false
	}

	q.buf[q.tail] = v
	q.tail = (q.tail + 1) % len(q.buf)
	q.count++

	q.notEmpty.Signal()
	q.mu.Unlock()
	return true
}

// Pop removes and returns the oldest item, blocking while the queue is empty.
// It returns the zero value and false once shutdown has been requested and
// every buffered item has been drained; the predicate is re-checked after
// every wakeup. On success it wakes one waiting producer.
func (q *Queue[T]) Pop() (T, bool) {
	q.mu.Lock()
	for q.count == 0 && !q.shuttingDown {
		q.notEmpty.Wait()
	}
	if q.count == 0 {
		var zero T
		q.mu.Unlock()
		return zero, false
	}

	v := q.buf[q.head]
	var zero T
	q.buf[q.head] = zero // release the slot's reference
	q.head = (q.head + 1) % len(q.buf)
	q.count--

	q.notFull.Signal()
	q.mu.Unlock()
	return v, true
}

// SignalShutdown marks the queue as shutting down and wakes every blocked
// producer and consumer; the wait predicate changes for all of them at once.
// Idempotent.
func (q *Queue[T]) SignalShutdown() {
	q.mu.Lock()
	q.shuttingDown = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
	q.mu.Unlock()
}

// Drain removes and returns all buffered items in FIFO order without
// blocking. Intended for teardown, so that items still queued at shutdown are
// handed back to the caller instead of being dropped.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	out := make([]T, 0, q.count)
	for q.count > 0 {
		out = append(out, q.buf[q.head])
		var zero T
		q.buf[q.head] = zero
		q.head = (q.head + 1) % len(q.buf)
		q.count--
	}
	q.notFull.Broadcast()
	q.mu.Unlock()
	return out
}

// Len returns the current number of buffered items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Cap returns the fixed capacity.
func (q *Queue[T]) Cap() int { return len(q.buf) }
