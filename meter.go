package main

import (
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/montanaflynn/stats"

	"transit-motion-visualizer/motion"
)

// cycleMeter counts fix outcomes and step durations for one update cycle
// and keeps running totals across cycles.
type cycleMeter struct {
	reg      metrics.Registry
	outcomes map[motion.Outcome]metrics.Counter
	cycles   metrics.Counter
	skipped  metrics.Counter
	failed   metrics.Counter

	started time.Time
	fixes   int64
	steps   []float64 // ms
	logger  *slog.Logger
}

func newCycleMeter() *cycleMeter {
	// Won't record without this global setting.
	metrics.Enabled = true

	m := &cycleMeter{
		reg:      metrics.NewRegistry(),
		outcomes: make(map[motion.Outcome]metrics.Counter),
		cycles:   metrics.NewCounter(),
		skipped:  metrics.NewCounter(),
		failed:   metrics.NewCounter(),
		logger:   slog.With("component", "meter"),
	}
	for _, o := range motion.Outcomes() {
		c := metrics.NewCounter()
		m.outcomes[o] = c
		m.mustRegister("fix."+o.String(), c)
	}
	m.mustRegister("cycle.count", m.cycles)
	m.mustRegister("cycle.skipped", m.skipped)
	m.mustRegister("cycle.failed", m.failed)
	return m
}

func (m *cycleMeter) mustRegister(name string, c metrics.Counter) {
	if err := m.reg.Register(name, c); err != nil {
		panic(err)
	}
}

func (m *cycleMeter) begin() {
	m.started = time.Now()
	m.fixes = 0
	m.steps = m.steps[:0]
}

func (m *cycleMeter) mark(o motion.Outcome) {
	m.fixes++
	m.outcomes[o].Inc(1)
}

func (m *cycleMeter) step(d time.Duration) {
	m.steps = append(m.steps, float64(d)/float64(time.Millisecond))
}

func (m *cycleMeter) skip() {
	m.skipped.Inc(1)
}

func (m *cycleMeter) fail() {
	m.failed.Inc(1)
}

func (m *cycleMeter) count(o motion.Outcome) int64 {
	return m.outcomes[o].Snapshot().Count()
}

// end logs the cycle summary.
func (m *cycleMeter) end(vehicles int, evicted int) {
	m.cycles.Inc(1)
	p95, err := stats.Percentile(m.steps, 95)
	if err != nil {
		p95 = 0
	}
	m.logger.Info("Cycle complete",
		"cycle", humanize.Comma(m.cycles.Snapshot().Count()),
		"fixes", humanize.Comma(m.fixes),
		"steps", len(m.steps),
		"step_p95_ms", p95,
		"vehicles", humanize.Comma(int64(vehicles)),
		"evicted", evicted,
		"rebuilt_total", humanize.Comma(m.count(motion.OutcomeRebuilt)),
		"reset_total", humanize.Comma(m.count(motion.OutcomeReset)),
		"elapsed", time.Since(m.started).Round(time.Millisecond),
	)
}
