package metrics

import (
	"sync"
	"sync/atomic"
)

// BasicProvider is a simple in-memory Provider. It is concurrency-safe and
// suitable for tests and for programs that read the values back directly
// (see the Value/Sum accessors).
type BasicProvider struct {
	mu         sync.Mutex
	counters   map[string]*BasicCounter
	updowns    map[string]*BasicUpDownCounter
	histograms map[string]*BasicHistogram
}

// NewBasicProvider constructs a new BasicProvider.
func NewBasicProvider() *BasicProvider {
	return &BasicProvider{
		counters:   make(map[string]*BasicCounter),
		updowns:    make(map[string]*BasicUpDownCounter),
		histograms: make(map[string]*BasicHistogram),
	}
}

// Counter returns the monotonic counter for name, creating it once.
func (p *BasicProvider) Counter(name string, _ ...InstrumentOption) Counter {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.counters[name]
	if !ok {
		c = &BasicCounter{}
		p.counters[name] = c
	}
	return c
}

// UpDownCounter returns the up/down counter for name, creating it once.
func (p *BasicProvider) UpDownCounter(name string, _ ...InstrumentOption) UpDownCounter {
	p.mu.Lock()
	defer p.mu.Unlock()
	u, ok := p.updowns[name]
	if !ok {
		u = &BasicUpDownCounter{}
		p.updowns[name] = u
	}
	return u
}

// Histogram returns the histogram for name, creating it once.
func (p *BasicProvider) Histogram(name string, _ ...InstrumentOption) Histogram {
	p.mu.Lock()
	defer p.mu.Unlock()
	h, ok := p.histograms[name]
	if !ok {
		h = &BasicHistogram{}
		p.histograms[name] = h
	}
	return h
}

// CounterValue returns the current value of the named counter, or zero when
// the counter was never created.
func (p *BasicProvider) CounterValue(name string) int64 {
	p.mu.Lock()
	c, ok := p.counters[name]
	p.mu.Unlock()
	if !ok {
		return 0
	}
	return c.Value()
}

// UpDownValue returns the current value of the named up/down counter.
func (p *BasicProvider) UpDownValue(name string) int64 {
	p.mu.Lock()
	u, ok := p.updowns[name]
	p.mu.Unlock()
	if !ok {
		return 0
	}
	return u.Value()
}

// BasicCounter is an atomic monotonic counter.
type BasicCounter struct {
	v atomic.Int64
}

func (c *BasicCounter) Add(n int64) { c.v.Add(n) }

// Value returns the current count.
func (c *BasicCounter) Value() int64 { return c.v.Load() }

// BasicUpDownCounter is an atomic counter that may go negative transiently.
type BasicUpDownCounter struct {
	v atomic.Int64
}

func (u *BasicUpDownCounter) Add(n int64) { u.v.Add(n) }

// Value returns the current value.
func (u *BasicUpDownCounter) Value() int64 { return u.v.Load() }

// BasicHistogram tracks count and sum of recorded values.
type BasicHistogram struct {
	mu    sync.Mutex
	count int64
	sum   float64
}

func (h *BasicHistogram) Record(v float64) {
	h.mu.Lock()
	h.count++
	h.sum += v
	h.mu.Unlock()
}

// Snapshot returns the number of recorded values and their sum.
func (h *BasicHistogram) Snapshot() (count int64, sum float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count, h.sum
}
