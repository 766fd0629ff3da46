// Package scanq counts predicate matches over a stream of records using a
// fixed pool of workers fed through a bounded blocking queue.
//
// Topology
// A single producer reads records from a Source and pushes them into a
// fixed-capacity Queue; N workers drain the queue concurrently, each keeping
// a local match count. When the input ends, the producer delivers one
// sentinel per worker. All workers then meet at a one-shot Rendezvous, where
// exactly one of them (the last arriver) sums the per-worker counts into the
// final total.
//
// Backpressure and shutdown
// The queue blocks the producer when full and workers when empty, bounding
// memory to the configured capacity. Cancellation is cooperative: a
// ShutdownController flag, settable from any goroutine without allocating or
// blocking, is observed by every blocking queue operation. Once shutdown is
// requested, Push always fails, Pop drains buffered records and then reports
// end of input, and records still buffered at teardown are handed back to the
// caller rather than dropped.
//
// Entry points
//   - Scanner: New(opts...) + Run(ctx, source, predicate) orchestrates a
//     complete run and returns a Result.
//   - Queue, ShutdownController, Rendezvous: the underlying primitives,
//     exported for direct use.
//
// The core never panics as control flow; blocking operations signal shutdown
// only via false/none returns, and constructors return errors.
package scanq
