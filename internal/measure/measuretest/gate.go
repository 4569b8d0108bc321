package measuretest

import (
	"context"

	"github.com/akyairhashvil/notifit/internal/measure"
)

// Gate is a frame clock that holds every layout pass until Open is called.
type Gate struct {
	signal *measure.Signal
}

func NewGate() *Gate {
	return &Gate{signal: measure.NewSignal()}
}

func (g *Gate) Next(ctx context.Context) error { return g.signal.Wait(ctx) }

// Open lets every pending and future layout pass through.
func (g *Gate) Open() { g.signal.Fire() }
