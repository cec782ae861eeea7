package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const DefaultInterval = 30 * time.Second

// CountFunc fetches the current unread count.
type CountFunc func(ctx context.Context) (int64, error)

// PublishFunc receives every successful count. It is called from the
// poller's goroutine only.
type PublishFunc func(count int64)

// Poller re-fetches the unread notification count on a fixed interval for as
// long as its owner keeps it started.
type Poller struct {
	count    CountFunc
	publish  PublishFunc
	interval time.Duration
	log      *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(count CountFunc, publish PublishFunc, interval time.Duration, log *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{count: count, publish: publish, interval: interval, log: log}
}

// Start polls once immediately and then every interval until Stop is called
// or ctx ends. Starting a running poller does nothing.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
}

// Stop ends polling and waits for an in-flight fetch to return.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether Start has been called without a matching Stop.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	n, err := p.count(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.log.Warn("unread count unavailable", zap.Error(err))
		}
		return
	}
	p.publish(n)
}
