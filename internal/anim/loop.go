package anim

import (
	"context"
	"sync"
	"time"
)

// Loop hosts a Driver outside a UI toolkit: it schedules one frame per interval on a
// background goroutine and calls onFrame with the new angle. The Driver itself is only
// touched while holding the loop's lock.
type Loop struct {
	mu       sync.Mutex
	driver   *Driver
	interval time.Duration
	onFrame  func(angle float64)

	cancel context.CancelFunc
	done   chan struct{}
}

func NewLoop(d *Driver, interval time.Duration, onFrame func(angle float64)) *Loop {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &Loop{driver: d, interval: interval, onFrame: onFrame}
}

// Start puts the driver in Playing and begins scheduling frames. It is a no-op when
// already running. The loop ends when ctx is done or Stop is called.
func (l *Loop) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		return
	}
	gen, _ := l.driver.Play()
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	go l.run(ctx, gen, l.done)
}

// Stop cancels the scheduled frames, waits for the goroutine and returns the driver
// to Idle. Safe to call repeatedly.
func (l *Loop) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.driver.Stop()
	l.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether frames are being scheduled.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cancel != nil
}

// Angle reads the driver angle under the loop's lock.
func (l *Loop) Angle() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.driver.Angle()
}

func (l *Loop) run(ctx context.Context, gen uint64, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.finish(done)
			return
		case <-ticker.C:
			l.mu.Lock()
			ok := l.driver.Frame(gen)
			angle := l.driver.Angle()
			l.mu.Unlock()
			if !ok {
				l.finish(done)
				return
			}
			if l.onFrame != nil {
				l.onFrame(angle)
			}
		}
	}
}

// finish clears the loop state if it still belongs to this run.
func (l *Loop) finish(done chan struct{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done != done {
		return
	}
	l.cancel()
	l.cancel, l.done = nil, nil
	l.driver.Stop()
}
