package measure

import (
	"context"
	"sync"
)

// Readiness is the font-readiness signal awaited before any measurement.
type Readiness interface {
	Wait(ctx context.Context) error
}

type readyNow struct{}

func (readyNow) Wait(ctx context.Context) error { return ctx.Err() }

// Ready returns a signal that is already fired.
func Ready() Readiness { return readyNow{} }

// Signal is a one-shot readiness signal shared by every waiter.
type Signal struct {
	once sync.Once
	ch   chan struct{}
}

func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{})}
}

// Fire releases all current and future waiters. Extra calls are no-ops.
func (s *Signal) Fire() {
	s.once.Do(func() { close(s.ch) })
}

// Wait blocks until Fire or until ctx is done. Without a deadline on ctx a
// signal that never fires blocks forever.
func (s *Signal) Wait(ctx context.Context) error {
	select {
	case <-s.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Fired reports whether the signal has been released.
func (s *Signal) Fired() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}
