package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	clientErrors    uint64
	serverErrors    uint64
	totalDurationMs uint64
	hires           uint64
	removals        uint64
	payslips        uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	switch {
	case status >= 500:
		atomic.AddUint64(&c.serverErrors, 1)
	case status >= 400:
		atomic.AddUint64(&c.clientErrors, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) Hired() { atomic.AddUint64(&c.hires, 1) }
func (c *Collector) Removed() { atomic.AddUint64(&c.removals, 1) }
func (c *Collector) PayslipIssued() { atomic.AddUint64(&c.payslips, 1) }

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":     total,
		"clientErrorsTotal": atomic.LoadUint64(&c.clientErrors),
		"serverErrorsTotal": atomic.LoadUint64(&c.serverErrors),
		"avgDurationMs":     avg,
		"totalDurationMs":   totalMs,
		"hiresTotal":        atomic.LoadUint64(&c.hires),
		"removalsTotal":     atomic.LoadUint64(&c.removals),
		"payslipsTotal":     atomic.LoadUint64(&c.payslips),
	}
}
