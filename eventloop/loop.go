// Package eventloop runs callbacks one at a time on a single goroutine.
//
// A cell.System must only be touched from one goroutine. Timers and other
// asynchronous producers hand their work to a Loop instead of writing to the
// graph directly.
package eventloop

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var ErrStopped = errors.New("event loop stopped")

type Loop struct {
	log *zap.Logger

	mu      sync.Mutex
	queue   []func()
	stopped bool
	wake    chan struct{}
}

func New(log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{
		log:  log,
		wake: make(chan struct{}, 1),
	}
}

// Post queues fn to run on the loop goroutine. It never blocks and may be
// called from inside a running callback. It reports false once the loop has
// stopped.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Do runs fn on the loop goroutine and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	if !l.Post(func() { done <- fn() }) {
		return ErrStopped
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AfterFunc posts fn once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		if !l.Post(fn) {
			l.log.Debug("dropping timer callback, loop stopped", zap.Duration("after", d))
		}
	})
}

// Run executes posted callbacks in order until ctx is done. Callbacks still
// queued at that point are dropped.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Debug("event loop started")
	defer func() {
		l.mu.Lock()
		dropped := len(l.queue)
		l.stopped = true
		l.queue = nil
		l.mu.Unlock()
		l.log.Debug("event loop stopped", zap.Int("dropped", dropped))
	}()

	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for i, fn := range batch {
			if ctx.Err() != nil {
				l.requeue(batch[i:])
				return ctx.Err()
			}
			fn()
		}
		if len(batch) > 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *Loop) requeue(rest []func()) {
	l.mu.Lock()
	l.queue = append(rest, l.queue...)
	l.mu.Unlock()
}
