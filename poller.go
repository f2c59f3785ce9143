package main

import (
	"context"
	"log/slog"
	"time"

	"transit-motion-visualizer/motion"
)

// poller fetches the vehicle feed on a fixed interval and feeds each batch
// to the engine in frame-sized steps. All engine work happens on the run
// goroutine; only the fetch itself runs elsewhere.

type fetchResult struct {
	fixes []motion.Fix
	err   error
}

type poller struct {
	feed      VehicleFeedSource
	engine    *motion.Engine
	hub       *wsHub
	tracks    *trackSource
	meter     *cycleMeter
	interval  time.Duration
	frame     time.Duration
	timeout   time.Duration
	batchSize int
	logger    *slog.Logger

	inFlight bool
	batch    *motion.Batch
	results  chan fetchResult
}

type pollerConfig struct {
	interval  time.Duration
	frame     time.Duration
	timeout   time.Duration
	batchSize int
}

func newPoller(feed VehicleFeedSource, engine *motion.Engine, hub *wsHub, tracks *trackSource, cfg pollerConfig) *poller {
	return &poller{
		feed:      feed,
		engine:    engine,
		hub:       hub,
		tracks:    tracks,
		meter:     newCycleMeter(),
		interval:  cfg.interval,
		frame:     cfg.frame,
		timeout:   cfg.timeout,
		batchSize: cfg.batchSize,
		logger:    slog.With("component", "poller"),
		// At most one fetch is outstanding, so the send never blocks.
		results: make(chan fetchResult, 1),
	}
}

func (p *poller) run(ctx context.Context) {
	t := time.NewTimer(0)
	defer t.Stop()
	frames := time.NewTicker(p.frame)
	defer frames.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.tick(ctx)
			t.Reset(p.interval)
		case res := <-p.results:
			p.handle(res)
		case <-frames.C:
			p.step()
		}
	}
}

// tick starts a fetch unless a previous cycle is still in flight,
// in which case the tick is dropped.
func (p *poller) tick(ctx context.Context) bool {
	if p.inFlight {
		p.logger.Debug("Previous cycle still running, skipping poll")
		p.meter.skip()
		return false
	}
	p.inFlight = true
	if p.tracks != nil {
		p.tracks.ensure()
	}
	go func() {
		cctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		fixes, err := p.feed.Fetch(cctx)
		p.results <- fetchResult{fixes: fixes, err: err}
	}()
	return true
}

func (p *poller) handle(res fetchResult) {
	if res.err != nil {
		p.logger.Warn("Poll failed", "error", res.err)
		p.meter.fail()
		p.inFlight = false
		return
	}
	p.logger.Debug("Fetched vehicles", "count", len(res.fixes))
	p.meter.begin()
	p.batch = motion.NewBatch(res.fixes, p.process, p.complete, p.batchSize)
	if p.batch.Done() {
		p.batch = nil
	}
}

func (p *poller) process(fix motion.Fix) {
	p.meter.mark(p.engine.Process(fix))
}

// step advances the current batch by one chunk, once per frame.
func (p *poller) step() {
	if p.batch == nil {
		return
	}
	start := time.Now()
	p.batch.Step()
	p.meter.step(time.Since(start))
	p.hub.Flush()
	if p.batch.Done() {
		p.batch = nil
	}
}

func (p *poller) complete() {
	p.inFlight = false
	evicted := p.engine.Sweep()
	p.hub.Flush()
	p.meter.end(p.engine.Len(), len(evicted))
}
