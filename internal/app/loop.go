package app

import (
	"context"
	"sync"
	"time"
)

// Loop is a single-goroutine interaction context. Everything posted to it runs
// sequentially on the goroutine that called Run.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

func NewLoop(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 16
	}
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Run drains posted tasks until ctx is canceled or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Stop ends Run. Tasks posted afterwards are dropped.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.done) })
}

// Post queues fn for the loop goroutine. It must not be called from that
// goroutine while the buffer is full. Returns false once the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case <-l.done:
		return false
	case l.tasks <- fn:
		return true
	}
}

func (l *Loop) Go(work func() func()) {
	go func() {
		if cont := work(); cont != nil {
			l.Post(cont)
		}
	}()
}

func (l *Loop) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { l.Post(fn) })
}
