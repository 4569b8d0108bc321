package measure

import (
	"context"
	"sync"
	"time"
)

// FrameClock hands out layout-pass opportunities, the offscreen analogue of
// a display refresh.
type FrameClock interface {
	Next(ctx context.Context) error
}

type immediate struct{}

func (immediate) Next(ctx context.Context) error { return ctx.Err() }

// Immediate is a clock whose next frame is always now.
func Immediate() FrameClock { return immediate{} }

// Ticker broadcasts a frame to every waiter at a fixed interval.
type Ticker struct {
	mu    sync.Mutex
	frame chan struct{}
	stop  chan struct{}
	once  sync.Once
}

func NewTicker(interval time.Duration) *Ticker {
	t := &Ticker{
		frame: make(chan struct{}),
		stop:  make(chan struct{}),
	}
	go t.run(interval)
	return t
}

func (t *Ticker) run(interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-tick.C:
			t.mu.Lock()
			close(t.frame)
			t.frame = make(chan struct{})
			t.mu.Unlock()
		case <-t.stop:
			return
		}
	}
}

// Next blocks until the next frame after the call.
func (t *Ticker) Next(ctx context.Context) error {
	t.mu.Lock()
	ch := t.frame
	t.mu.Unlock()
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop ends the broadcast loop. Waiters still pending only return through
// their context.
func (t *Ticker) Stop() {
	t.once.Do(func() { close(t.stop) })
}
