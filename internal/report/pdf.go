package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/akyairhashvil/notifit/internal/config"
	"github.com/akyairhashvil/notifit/internal/icons"
	"github.com/akyairhashvil/notifit/internal/measure"
	"github.com/akyairhashvil/notifit/internal/models"
)

const (
	pageMargin = 36.0
	coreFamily = "Helvetica"
	countsGap  = 16.0
)

// Options tune the PDF output.
type Options struct {
	Title  string
	Fonts  measure.FontSource // draws each card in its own font when available
	Logger *zap.Logger
	Now    func() time.Time
}

type writer struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	families map[string]string
	opts     Options
	scale    float64
}

// WritePreviews renders one section per preview, one card per font.
func WritePreviews(w io.Writer, previews []Preview, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Title == "" {
		opts.Title = "Notification preview"
	}
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	wr := &writer{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		families: map[string]string{},
		opts:     opts,
		scale:    config.PreviewScale,
	}
	wr.header(len(previews))
	for i, pv := range previews {
		wr.section(i+1, pv)
	}
	if pdf.Err() {
		return fmt.Errorf("render previews: %w", pdf.Error())
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write previews: %w", err)
	}
	return nil
}

// WritePreviewsFile writes the PDF to path, creating its directory.
func WritePreviewsFile(path string, previews []Preview, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := WritePreviews(f, previews, opts); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func (wr *writer) header(count int) {
	pdf := wr.pdf
	pdf.AddPage()
	pdf.SetFont(coreFamily, "B", 16)
	pdf.CellFormat(0, 20, wr.tr(wr.opts.Title), "", 1, "L", false, 0, "")
	pdf.SetFont(coreFamily, "", 9)
	pdf.SetTextColor(110, 110, 110)
	meta := fmt.Sprintf("%d notifications - generated %s", count, wr.opts.Now().Format("2006-01-02 15:04"))
	pdf.CellFormat(0, 14, meta, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(8)
}

func (wr *writer) ensureSpace(h float64) {
	_, pageH := wr.pdf.GetPageSize()
	if wr.pdf.GetY()+h > pageH-pageMargin {
		wr.pdf.AddPage()
	}
}

func (wr *writer) section(index int, pv Preview) {
	pdf := wr.pdf
	n := pv.Notification
	reasons := len(pv.Reasons)
	wr.ensureSpace(18 + float64(reasons)*12 + wr.cardHeight(pv, 0))

	pdf.SetFont(coreFamily, "B", 11)
	status := "OK"
	if pv.HasError {
		status = "ERROR"
		pdf.SetTextColor(198, 40, 40)
	}
	icon := icons.Label(n.Icon)
	if icon == "" {
		icon = "no icon"
	}
	line := fmt.Sprintf("#%d  [%s]  %s  %s", index, n.Level.Badge(), icon, status)
	if pv.ShowsImage {
		line += "  +image"
	}
	pdf.CellFormat(0, 16, wr.tr(line), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont(coreFamily, "", 9)
	for _, r := range pv.Reasons {
		pdf.SetTextColor(198, 40, 40)
		pdf.CellFormat(0, 12, wr.tr("- "+r), "", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	for i, fp := range pv.Fonts {
		wr.ensureSpace(wr.cardHeight(pv, i) + 12)
		wr.card(pv, fp)
	}
	pdf.Ln(10)
}

func (wr *writer) cardHeight(pv Preview, font int) float64 {
	if font >= len(pv.Fonts) {
		return 40
	}
	return pv.CardHeight(pv.Fonts[font])*wr.scale + 14
}

// card draws one popup at preview scale with its line counts beside it.
func (wr *writer) card(pv Preview, fp FontPreview) {
	pdf := wr.pdf
	s := wr.scale
	p := pv.Policy
	x, y := pdf.GetX(), pdf.GetY()

	pdf.SetFont(coreFamily, "", 8)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 12, wr.tr(fp.Font.DisplayName), "", 1, "L", false, 0, "")
	y += 12

	cardW := float64(config.PopupWidth) * s
	cardH := pv.CardHeight(fp) * s
	setFill(pdf, p.Style.Background, 255, 255, 255)
	style := "F"
	if p.Style.BorderColor != "" {
		setDraw(pdf, p.Style.BorderColor)
		pdf.SetLineWidth(1)
		style = "FD"
	}
	if fp.CornerRadius > 0 {
		pdf.RoundedRect(x, y, cardW, cardH, float64(fp.CornerRadius)*s, "1234", style)
	} else {
		pdf.Rect(x, y, cardW, cardH, style)
	}

	iconSize := float64(p.IconSize) * s
	padL := float64(p.Padding.Left) * s
	padT := float64(p.Padding.Top) * s
	var textX, textY float64
	if p.Layout == models.LayoutVertical {
		wr.icon(pv, cardW/2+x-iconSize/2, y+padT, iconSize)
		textX = x + padL
		textY = y + padT + iconSize + float64(p.IconTextGap)*s
	} else {
		iconY := y + padT
		if pv.SingleText {
			iconY = y + (cardH-iconSize)/2
		}
		wr.icon(pv, x+padL, iconY, iconSize)
		textX = x + padL + iconSize + float64(p.IconTextGap)*s
		textY = y + padT
		if pv.SingleText {
			textY = y + (cardH-pv.TextHeight(fp)*s)/2
		}
	}
	if pv.ShowsImage {
		imgW := float64(config.ImageAreaWidth) * s
		imgX := x + cardW - imgW
		pdf.SetFillColor(200, 200, 200)
		pdf.Rect(imgX, y, imgW, cardH, "F")
	}

	family := wr.family(fp.Font)
	setText(pdf, p.Style.TextColor)
	textW := float64(fp.Width) * s
	if fp.TitleLines > 0 {
		textY = wr.lines(family, p.Title, fp.Title, textX, textY, textW)
	}
	if fp.DescriptionLines > 0 {
		if fp.TitleLines > 0 {
			textY += config.DescriptionTitleGap * s
		}
		wr.lines(family, p.Description, fp.Description, textX, textY, textW)
	}

	pdf.SetFont(coreFamily, "", 8)
	if fp.Overflows() {
		pdf.SetTextColor(198, 40, 40)
	} else {
		pdf.SetTextColor(46, 125, 50)
	}
	counts := fmt.Sprintf("title %d  desc %d  total %d / %d", fp.TitleLines, fp.DescriptionLines, fp.Total(), fp.MaxLines)
	pdf.SetXY(x+cardW+countsGap, y)
	pdf.CellFormat(0, 12, counts, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(x, y+cardH+6)
}

func (wr *writer) lines(family string, t models.Typography, text []string, x, y, w float64) float64 {
	pdf := wr.pdf
	style := ""
	if t.Bold() {
		style = "B"
	}
	pdf.SetFont(family, style, t.FontSize*wr.scale)
	lh := LineHeight(t) * wr.scale
	for _, l := range text {
		pdf.SetXY(x, y)
		pdf.CellFormat(w, lh, wr.text(family, l), "", 0, "L", false, 0, "")
		y += lh
	}
	return y
}

func (wr *writer) icon(pv Preview, x, y, size float64) {
	pdf := wr.pdf
	tint := pv.Policy.Style.IconTint
	switch {
	case icons.IsWhite(pv.Notification.Icon):
		pdf.SetFillColor(60, 60, 60)
	case tint != "":
		setFill(pdf, tint, 255, 255, 255)
	default:
		pdf.SetFillColor(230, 230, 230)
	}
	pdf.Circle(x+size/2, y+size/2, size/2, "F")
}

// family registers the configured faces of font once and returns the family
// to draw it with, falling back to the core font.
func (wr *writer) family(font models.Font) string {
	if fam, ok := wr.families[font.ID]; ok {
		return fam
	}
	fam := coreFamily
	if wr.opts.Fonts != nil {
		if data, ok := wr.opts.Fonts.Font(font.ID); ok && len(data.Regular) > 0 {
			name := "f" + strconv.Itoa(len(wr.families))
			wr.pdf.AddUTF8FontFromBytes(name, "", data.Regular)
			bold := data.Bold
			if len(bold) == 0 {
				bold = data.Regular
			}
			wr.pdf.AddUTF8FontFromBytes(name, "B", bold)
			if wr.pdf.Err() {
				wr.opts.Logger.Warn("register preview font", zap.String("font", font.ID), zap.Error(wr.pdf.Error()))
				wr.pdf.ClearError()
			} else {
				fam = name
			}
		}
	}
	wr.families[font.ID] = fam
	return fam
}

func (wr *writer) text(family, s string) string {
	if family == coreFamily {
		return wr.tr(s)
	}
	return s
}

func hexRGB(s string) (r, g, b int, ok bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v>>16&0xFF), int(v>>8&0xFF), int(v&0xFF), true
}

func setFill(pdf *fpdf.Fpdf, hex string, dr, dg, db int) {
	if r, g, b, ok := hexRGB(hex); ok {
		pdf.SetFillColor(r, g, b)
		return
	}
	pdf.SetFillColor(dr, dg, db)
}

func setDraw(pdf *fpdf.Fpdf, hex string) {
	if r, g, b, ok := hexRGB(hex); ok {
		pdf.SetDrawColor(r, g, b)
	}
}

func setText(pdf *fpdf.Fpdf, hex string) {
	if r, g, b, ok := hexRGB(hex); ok {
		pdf.SetTextColor(r, g, b)
		return
	}
	pdf.SetTextColor(0, 0, 0)
}
