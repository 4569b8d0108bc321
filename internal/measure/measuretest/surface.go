// Package measuretest provides a deterministic measurement surface and
// generated mocks for tests.
package measuretest

import (
	"context"
	"math"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/akyairhashvil/notifit/internal/measure"
	"github.com/akyairhashvil/notifit/internal/models"
)

// Surface wraps text greedily at spaces with a fixed advance per character,
// breaking words longer than a line.
type Surface struct {
	// Advance is the per-character advance as a fraction of the font size,
	// keyed by font ID. DefaultAdvance applies to fonts not listed.
	Advance        map[string]float64
	DefaultAdvance float64

	// NaturalRatio is the "normal" line height ratio used for blocks whose
	// typography derives its line height. ReportComputed controls whether
	// blocks expose it.
	NaturalRatio   float64
	ReportComputed bool

	Clock measure.FrameClock

	mu       sync.Mutex
	opened   int
	closed   int
	widths   []float64
	inserted []string
}

func NewSurface() *Surface {
	return &Surface{
		Advance:        map[string]float64{},
		DefaultAdvance: 0.5,
		NaturalRatio:   1.2,
		Clock:          measure.Immediate(),
	}
}

func (s *Surface) advance(fontID string) float64 {
	if a, ok := s.Advance[fontID]; ok {
		return a
	}
	return s.DefaultAdvance
}

func (s *Surface) NewContainer(font models.Font, width float64) (measure.Container, error) {
	s.mu.Lock()
	s.opened++
	s.widths = append(s.widths, width)
	s.mu.Unlock()
	return &container{surface: s, font: font, width: width}, nil
}

// Stats returns how many containers were opened and closed.
func (s *Surface) Stats() (opened, closed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened, s.closed
}

// Widths lists the container widths requested so far.
func (s *Surface) Widths() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]float64(nil), s.widths...)
}

// Inserted lists every text inserted into any container.
func (s *Surface) Inserted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.inserted...)
}

type container struct {
	surface *Surface
	font    models.Font
	width   float64
	blocks  []*block
	closed  bool
}

func (c *container) Insert(text string, t models.Typography) measure.Block {
	c.surface.mu.Lock()
	c.surface.inserted = append(c.surface.inserted, text)
	c.surface.mu.Unlock()
	b := &block{text: text, typo: t}
	c.blocks = append(c.blocks, b)
	return b
}

func (c *container) Layout(ctx context.Context) error {
	if c.closed {
		return measure.ErrContainerClosed
	}
	if err := c.surface.Clock.Next(ctx); err != nil {
		return err
	}
	adv := c.surface.advance(c.font.ID)
	for _, b := range c.blocks {
		charPx := adv * b.typo.FontSize
		maxChars := 1
		if charPx > 0 {
			maxChars = int(math.Floor(c.width / charPx))
		}
		lines := 0
		for _, para := range measure.Paragraphs(b.text) {
			lines += WrapCount(para, maxChars)
		}
		lh := b.typo.LineHeight
		if b.typo.AutoLineHeight() {
			natural := b.typo.FontSize * c.surface.NaturalRatio
			if c.surface.ReportComputed {
				b.computed = natural
			}
			lh = natural
		}
		b.lines = lines
		b.height = float64(lines) * lh
	}
	return nil
}

func (c *container) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.surface.mu.Lock()
	c.surface.closed++
	c.surface.mu.Unlock()
	return nil
}

type block struct {
	text     string
	typo     models.Typography
	lines    int
	height   float64
	computed float64
}

func (b *block) Height() float64 { return b.height }

func (b *block) ComputedLineHeight() (float64, bool) { return b.computed, b.computed > 0 }

func (b *block) Lines() []string {
	out := make([]string, b.lines)
	if b.lines > 0 {
		out[0] = b.text
	}
	return out
}

// WrapCount is the number of lines para takes when at most maxChars
// characters fit on a line.
func WrapCount(para string, maxChars int) int {
	if maxChars < 1 {
		maxChars = 1
	}
	words := strings.Fields(para)
	if len(words) == 0 {
		return 1
	}
	lines, cur := 1, 0
	for _, w := range words {
		n := utf8.RuneCountInString(w)
		if cur > 0 && cur+1+n <= maxChars {
			cur += 1 + n
			continue
		}
		if cur > 0 {
			lines++
		}
		for n > maxChars {
			n -= maxChars
			lines++
		}
		cur = n
	}
	return lines
}

// Words returns n copies of word joined by single spaces.
func Words(word string, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = word
	}
	return strings.Join(parts, " ")
}
