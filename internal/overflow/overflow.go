// Package overflow decides whether a notification's title and description fit
// the line budget of its level in every catalog font.
package overflow

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/akyairhashvil/notifit/internal/measure"
	"github.com/akyairhashvil/notifit/internal/models"
	"github.com/akyairhashvil/notifit/internal/policy"
)

// Measurement is the line usage of one notification in one font.
type Measurement struct {
	Font             models.Font
	Width            int
	TitleLines       int
	DescriptionLines int
	MaxLines         int

	// Wrapped text as laid out, for previews. Shared with the cache; do not modify.
	TitleText       []string
	DescriptionText []string
}

// Total is the combined line count.
func (m Measurement) Total() int {
	return m.TitleLines + m.DescriptionLines
}

// Overflows reports a strict excess over the budget.
func (m Measurement) Overflows() bool {
	return m.Total() > m.MaxLines
}

// Evaluator measures notifications on a rendering surface. It holds no
// mutable layout state; every font check uses its own container.
type Evaluator struct {
	surface measure.Surface
	ready   measure.Readiness
	cache   *Cache
	logger  *zap.Logger
}

type Option func(*Evaluator)

// WithCache reuses measurements of identical inputs.
func WithCache(c *Cache) Option {
	return func(e *Evaluator) { e.cache = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

func New(surface measure.Surface, ready measure.Readiness, opts ...Option) *Evaluator {
	if ready == nil {
		ready = measure.Ready()
	}
	e := &Evaluator{surface: surface, ready: ready, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CheckLineOverflow reports whether n exceeds its level's line budget in at
// least one font of the catalog.
func (e *Evaluator) CheckLineOverflow(ctx context.Context, n models.Notification, fonts []models.Font) (bool, error) {
	ms, err := e.Measure(ctx, n, fonts)
	if err != nil {
		return false, err
	}
	return AnyOverflow(ms), nil
}

// Measure returns one measurement per catalog font, in catalog order. It
// waits for font readiness first; without a deadline on ctx it waits forever.
func (e *Evaluator) Measure(ctx context.Context, n models.Notification, fonts []models.Font) ([]Measurement, error) {
	if err := e.ready.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for fonts: %w", err)
	}
	p := policy.Lookup(n.Level)
	out := make([]Measurement, 0, len(fonts))
	for _, font := range fonts {
		m, err := e.measureFont(ctx, n, p, font)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (e *Evaluator) measureFont(ctx context.Context, n models.Notification, p policy.LevelPolicy, font models.Font) (Measurement, error) {
	width := p.EffectiveTextWidth(n.IncludeImage)
	m := Measurement{Font: font, Width: width, MaxLines: p.MaxTotalLines()}

	measureTitle := p.HasTitle && n.Title != ""
	measureDesc := n.Description != ""
	if !measureTitle && !measureDesc {
		return m, nil
	}

	var key cacheKey
	if e.cache != nil {
		key = newCacheKey(font.ID, n)
		if cached, ok := e.cache.get(key); ok {
			cached.Font = font
			return cached, nil
		}
	}

	c, err := e.surface.NewContainer(font, float64(width))
	if err != nil {
		return m, fmt.Errorf("open container for %q: %w", font.ID, err)
	}
	defer func() {
		if cerr := c.Close(); cerr != nil {
			e.logger.Warn("close measurement container", zap.String("font", font.ID), zap.Error(cerr))
		}
	}()

	var titleBlock, descBlock measure.Block
	if measureTitle {
		titleBlock = c.Insert(measure.ExpandLineBreaks(n.Title), p.Title)
	}
	if measureDesc {
		descBlock = c.Insert(measure.ExpandLineBreaks(n.Description), p.Description)
	}
	if err := c.Layout(ctx); err != nil {
		return m, fmt.Errorf("layout in %q: %w", font.ID, err)
	}
	if titleBlock != nil {
		m.TitleLines = measure.CountLines(titleBlock, p.Title)
		m.TitleText = titleBlock.Lines()
	}
	if descBlock != nil {
		m.DescriptionLines = measure.CountLines(descBlock, p.Description)
		m.DescriptionText = descBlock.Lines()
	}

	e.logger.Debug("measured notification",
		zap.String("id", n.ID),
		zap.String("level", string(n.Level)),
		zap.String("font", font.ID),
		zap.Int("width", width),
		zap.Int("title_lines", m.TitleLines),
		zap.Int("description_lines", m.DescriptionLines),
		zap.Int("max_lines", m.MaxLines))

	if e.cache != nil {
		e.cache.put(key, m)
	}
	return m, nil
}

// AnyOverflow reports whether at least one measurement exceeds its budget.
func AnyOverflow(ms []Measurement) bool {
	for _, m := range ms {
		if m.Overflows() {
			return true
		}
	}
	return false
}

// Worst returns the overflowing measurement with the highest total, first
// in catalog order on ties.
func Worst(ms []Measurement) (Measurement, bool) {
	var worst Measurement
	found := false
	for _, m := range ms {
		if !m.Overflows() {
			continue
		}
		if !found || m.Total() > worst.Total() {
			worst = m
			found = true
		}
	}
	return worst, found
}
