package measure

import (
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/akyairhashvil/notifit/internal/models"
)

const (
	faceFamily     = "face"
	fallbackFamily = "Helvetica"

	// fallbackGlyph stands in for characters the core font has no metrics
	// for; a wide Latin glyph roughly matches a full-width CJK advance.
	fallbackGlyph = 'W'
)

// PDFSurface lays text out with fpdf's line splitter, using the catalog's
// TrueType files when they are configured and the core Helvetica face
// otherwise. One pixel of the design maps to one PDF point.
type PDFSurface struct {
	fonts  FontSource
	clock  FrameClock
	logger *zap.Logger
}

func NewPDFSurface(fonts FontSource, clock FrameClock, logger *zap.Logger) *PDFSurface {
	if clock == nil {
		clock = Immediate()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFSurface{fonts: fonts, clock: clock, logger: logger}
}

func (s *PDFSurface) NewContainer(font models.Font, width float64) (Container, error) {
	if width <= 0 {
		return nil, fmt.Errorf("container width %.1f: must be positive", width)
	}
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetCellMargin(0)

	c := &pdfContainer{
		pdf:    pdf,
		fontID: font.ID,
		family: fallbackFamily,
		width:  width,
		clock:  s.clock,
	}
	if s.fonts != nil {
		if data, ok := s.fonts.Font(font.ID); ok {
			pdf.AddUTF8FontFromBytes(faceFamily, "", data.Regular)
			pdf.AddUTF8FontFromBytes(faceFamily, "B", data.Bold)
			if err := pdf.Error(); err != nil {
				return nil, fmt.Errorf("register font %q: %w", font.ID, err)
			}
			c.family = faceFamily
			c.unicode = true
		}
	}
	if !c.unicode {
		s.logger.Debug("measuring with core font", zap.String("font", font.ID))
	}
	return c, nil
}

type pdfContainer struct {
	pdf     *fpdf.Fpdf
	fontID  string
	family  string
	unicode bool
	width   float64
	clock   FrameClock
	blocks  []*pdfBlock
	closed  bool
}

func (c *pdfContainer) Insert(text string, t models.Typography) Block {
	b := &pdfBlock{text: text, typo: t}
	if !c.closed {
		c.blocks = append(c.blocks, b)
	}
	return b
}

func (c *pdfContainer) Layout(ctx context.Context) (err error) {
	if c.closed {
		return ErrContainerClosed
	}
	if err := c.clock.Next(ctx); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("layout in %q: %v", c.fontID, r)
		}
	}()
	for _, b := range c.blocks {
		if !b.laidOut {
			c.layoutBlock(b)
		}
	}
	if err := c.pdf.Error(); err != nil {
		return fmt.Errorf("layout in %q: %w", c.fontID, err)
	}
	return nil
}

func (c *pdfContainer) layoutBlock(b *pdfBlock) {
	style := ""
	if b.typo.Bold() {
		style = "B"
	}
	c.pdf.SetFont(c.family, style, b.typo.FontSize)

	lh := b.typo.LineHeight
	if b.typo.AutoLineHeight() {
		if c.unicode {
			b.computed = naturalLineHeight(c.pdf.GetFontDesc("", ""), b.typo.FontSize)
		}
		lh = EffectiveLineHeight(b, b.typo)
	} else {
		b.computed = lh
	}

	var lines []string
	for _, para := range Paragraphs(b.text) {
		if para == "" {
			lines = append(lines, "")
			continue
		}
		split := c.pdf.SplitText(c.prepare(para), c.width)
		if len(split) == 0 {
			split = []string{""}
		}
		lines = append(lines, split...)
	}
	b.lines = lines
	b.height = float64(len(lines)) * lh
	b.laidOut = true
}

func (c *pdfContainer) prepare(text string) string {
	if c.unicode {
		return text
	}
	out := []rune(text)
	for i, r := range out {
		if r > 0xFF {
			out[i] = fallbackGlyph
		}
	}
	return string(out)
}

func (c *pdfContainer) Close() error {
	c.closed = true
	c.blocks = nil
	c.pdf = nil
	return nil
}

type pdfBlock struct {
	text     string
	typo     models.Typography
	lines    []string
	height   float64
	computed float64
	laidOut  bool
}

func (b *pdfBlock) Height() float64 { return b.height }

func (b *pdfBlock) ComputedLineHeight() (float64, bool) {
	return b.computed, b.computed > 0
}

func (b *pdfBlock) Lines() []string { return b.lines }

func naturalLineHeight(desc fpdf.FontDescType, size float64) float64 {
	span := desc.Ascent - desc.Descent
	if desc.Ascent <= 0 || span <= 0 {
		return 0
	}
	return float64(span) / 1000 * size
}
