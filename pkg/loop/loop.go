// Package loop runs board mutations on a single logical actor and provides
// the schedulers used for timer-deferred work.
package loop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrStopped is returned when work is posted to a loop that is not running.
var ErrStopped = errors.New("loop: stopped")

// Loop executes posted functions one at a time on its own goroutine. Timer
// callbacks scheduled with AfterFunc are posted back into the loop, so every
// mutation runs on the same actor.
type Loop struct {
	tasks  chan func()
	done   chan struct{}
	logger log.FieldLogger

	mu      sync.Mutex
	timers  map[*time.Timer]struct{}
	stopped bool
	once    sync.Once
}

// New creates a loop. Call Start (or Run) before posting work.
func New(logger log.FieldLogger) *Loop {
	if logger == nil {
		logger = log.New()
	}
	return &Loop{
		tasks:  make(chan func(), 64),
		done:   make(chan struct{}),
		logger: logger,
		timers: make(map[*time.Timer]struct{}),
	}
}

// Start runs the loop in the background until ctx is done.
func (l *Loop) Start(ctx context.Context) {
	go func() {
		_ = l.Run(ctx)
	}()
}

// Run processes posted work until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		}
	}
}

func (l *Loop) stop() {
	l.once.Do(func() {
		l.mu.Lock()
		l.stopped = true
		for t := range l.timers {
			t.Stop()
		}
		l.timers = nil
		l.mu.Unlock()
		close(l.done)
	})
}

// Post enqueues fn without waiting for it to run.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return ErrStopped
	default:
	}
	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		return ErrStopped
	}
}

// Do runs fn on the loop and waits for it. A panic inside fn is re-raised on
// the calling goroutine so the loop itself keeps running.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	result := make(chan any, 1)
	wrapped := func() {
		defer func() {
			result <- recover()
		}()
		fn()
	}
	if err := l.Post(wrapped); err != nil {
		return err
	}
	select {
	case r := <-result:
		if r != nil {
			panic(r)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrStopped
	}
}

// AfterFunc schedules fn to run on the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	var t *time.Timer
	t = time.AfterFunc(d, func() {
		l.mu.Lock()
		delete(l.timers, t)
		l.mu.Unlock()
		if err := l.Post(fn); err != nil {
			l.logger.WithError(err).Debug("dropping timer callback")
		}
	})
	l.timers[t] = struct{}{}
}

// Pending reports the number of timers that have not fired yet.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

func (l *Loop) String() string {
	return fmt.Sprintf("loop(pending=%d)", l.Pending())
}
