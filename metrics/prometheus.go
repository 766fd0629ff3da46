package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusProvider implements Provider on top of a prometheus Registry.
// Instruments are registered on first request and reused for the same name.
// Counters map to prometheus counters, up/down counters to gauges, and
// histograms to prometheus histograms with default buckets.
type PrometheusProvider struct {
	reg prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]*promCounter
	updowns    map[string]*promUpDown
	histograms map[string]*promHistogram
}

// NewPrometheusProvider constructs a provider registering instruments with
// reg. A nil reg falls back to prometheus.DefaultRegisterer.
func NewPrometheusProvider(reg prometheus.Registerer) *PrometheusProvider {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &PrometheusProvider{
		reg:        reg,
		counters:   make(map[string]*promCounter),
		updowns:    make(map[string]*promUpDown),
		histograms: make(map[string]*promHistogram),
	}
}

// Counter returns the prometheus-backed counter for name, creating and
// registering it once.
func (p *PrometheusProvider) Counter(name string, opts ...InstrumentOption) Counter {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.counters[name]
	if !ok {
		cfg := applyOptions(opts)
		collector := p.register(prometheus.NewCounter(prometheus.CounterOpts{
			Name: name,
			Help: cfg.Description,
		}))
		c = &promCounter{c: collector.(prometheus.Counter)}
		p.counters[name] = c
	}
	return c
}

// UpDownCounter returns the gauge-backed up/down counter for name.
func (p *PrometheusProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	p.mu.Lock()
	defer p.mu.Unlock()
	u, ok := p.updowns[name]
	if !ok {
		cfg := applyOptions(opts)
		collector := p.register(prometheus.NewGauge(prometheus.GaugeOpts{
			Name: name,
			Help: cfg.Description,
		}))
		u = &promUpDown{g: collector.(prometheus.Gauge)}
		p.updowns[name] = u
	}
	return u
}

// Histogram returns the prometheus-backed histogram for name.
func (p *PrometheusProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	p.mu.Lock()
	defer p.mu.Unlock()
	h, ok := p.histograms[name]
	if !ok {
		cfg := applyOptions(opts)
		collector := p.register(prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: name,
			Help: cfg.Description,
		}))
		h = &promHistogram{h: collector.(prometheus.Histogram)}
		p.histograms[name] = h
	}
	return h
}

// register tolerates duplicate registration (e.g., two providers sharing one
// registry) by reusing the already-registered collector; all other
// registration failures are programming errors.
func (p *PrometheusProvider) register(c prometheus.Collector) prometheus.Collector {
	if err := p.reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}

type promCounter struct {
	c prometheus.Counter
}

func (c *promCounter) Add(n int64) { c.c.Add(float64(n)) }

type promUpDown struct {
	g prometheus.Gauge
}

func (u *promUpDown) Add(n int64) { u.g.Add(float64(n)) }

type promHistogram struct {
	h prometheus.Histogram
}

func (h *promHistogram) Record(v float64) { h.h.Observe(v) }
