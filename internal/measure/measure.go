// Package measure abstracts the text-rendering surface used to find out how
// many lines a piece of notification text occupies. Wrapping is delegated to
// the surface; this package only reads back the laid-out height.
package measure

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/akyairhashvil/notifit/internal/config"
	"github.com/akyairhashvil/notifit/internal/models"
)

//go:generate mockgen -destination=measuretest/mocks.go -package=measuretest github.com/akyairhashvil/notifit/internal/measure Surface,Container,Block,Readiness

var (
	ErrContainerClosed = errors.New("measurement container closed")
	ErrNotLaidOut      = errors.New("block read before layout")
)

// Surface creates offscreen, invisible, fixed-width text containers.
type Surface interface {
	NewContainer(font models.Font, width float64) (Container, error)
}

// Container is a transient measurement area bound to one font and width.
// It must be closed after use and is never shared between checks.
type Container interface {
	// Insert adds a word-wrapped block set in the given typography.
	Insert(text string, t models.Typography) Block
	// Layout waits for the surface's next layout pass and performs it.
	Layout(ctx context.Context) error
	Close() error
}

// Block is one inserted piece of text. Its sizes are valid after Layout.
type Block interface {
	Height() float64
	// ComputedLineHeight reports the surface's resolved line height, if any.
	ComputedLineHeight() (float64, bool)
	Lines() []string
}

// ExpandLineBreaks turns literal "\n" markers typed into a cell into real
// line breaks.
func ExpandLineBreaks(text string) string {
	return strings.ReplaceAll(text, `\n`, "\n")
}

// CountLines converts a laid-out block height into a line count:
// round(height / lineHeight).
func CountLines(b Block, t models.Typography) int {
	lh := EffectiveLineHeight(b, t)
	if lh <= 0 {
		return 0
	}
	return int(math.Round(b.Height() / lh))
}

// EffectiveLineHeight resolves the line height used to count lines.
func EffectiveLineHeight(b Block, t models.Typography) float64 {
	if !t.AutoLineHeight() {
		return t.LineHeight
	}
	if b != nil {
		if v, ok := b.ComputedLineHeight(); ok && v > 0 {
			return v
		}
	}
	return t.FontSize * config.AutoLineHeightRatio
}

// Paragraphs splits text on real line breaks the way a pre-wrap box does:
// a single trailing break does not open a new line.
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
