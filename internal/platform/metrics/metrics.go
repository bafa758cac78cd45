package metrics

import (
	"sync/atomic"
	"time"
)

// Collector counts request outcomes and report computations without
// locks.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	reportsBuilt    uint64
	cacheHits       uint64
	totalDurationMs uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordReport(cacheHit bool) {
	atomic.AddUint64(&c.reportsBuilt, 1)
	if cacheHit {
		atomic.AddUint64(&c.cacheHits, 1)
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	reports := atomic.LoadUint64(&c.reportsBuilt)
	hits := atomic.LoadUint64(&c.cacheHits)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":   total,
		"errorsTotal":     errs,
		"reportsTotal":    reports,
		"reportCacheHits": hits,
		"avgDurationMs":   avg,
		"totalDurationMs": totalMs,
	}
}
