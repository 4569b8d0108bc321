// Package report turns evaluated notifications into previews and renders
// them as a PDF for sign-off.
package report

import (
	"strings"

	"github.com/akyairhashvil/notifit/internal/config"
	"github.com/akyairhashvil/notifit/internal/models"
	"github.com/akyairhashvil/notifit/internal/overflow"
	"github.com/akyairhashvil/notifit/internal/policy"
	"github.com/akyairhashvil/notifit/internal/validate"
)

// FontPreview is one notification as laid out in one font.
type FontPreview struct {
	Font             models.Font
	Width            int
	TitleLines       int
	DescriptionLines int
	MaxLines         int
	Title            []string
	Description      []string
	CornerRadius     int
}

func (f FontPreview) Total() int     { return f.TitleLines + f.DescriptionLines }
func (f FontPreview) Overflows() bool { return f.Total() > f.MaxLines }

// Preview is everything needed to draw one notification.
type Preview struct {
	Notification models.Notification
	Policy       policy.LevelPolicy
	Fonts        []FontPreview
	SingleText   bool
	ShowsImage   bool
	HasError     bool
	Reasons      []string
}

// Build assembles a preview from an evaluation result.
func Build(n models.Notification, res validate.Result) Preview {
	p := policy.Lookup(n.Level)
	pv := Preview{
		Notification: n,
		Policy:       p,
		SingleText:   SingleText(n),
		ShowsImage:   p.ShowsImage(n.IncludeImage),
		HasError:     res.HasError,
		Reasons:      append([]string(nil), res.Reasons...),
	}
	for _, m := range res.Measurements {
		pv.Fonts = append(pv.Fonts, fontPreview(m))
	}
	return pv
}

func fontPreview(m overflow.Measurement) FontPreview {
	fp := FontPreview{
		Font:             m.Font,
		Width:            m.Width,
		TitleLines:       m.TitleLines,
		DescriptionLines: m.DescriptionLines,
		MaxLines:         m.MaxLines,
		Title:            m.TitleText,
		Description:      m.DescriptionText,
	}
	if m.Font.ID == config.FontAsteon {
		fp.CornerRadius = config.AsteonCornerRadius
	}
	return fp
}

// SingleText reports a horizontal card that shows only one of title and
// description, which centres its text vertically against the icon.
func SingleText(n models.Notification) bool {
	p := policy.Lookup(n.Level)
	if p.Layout != models.LayoutHorizontal {
		return false
	}
	hasTitle := p.HasTitle && strings.TrimSpace(n.Title) != ""
	hasDesc := strings.TrimSpace(n.Description) != ""
	return hasTitle != hasDesc
}

// LineHeight is the pixel line height a typography resolves to when no
// computed value is available.
func LineHeight(t models.Typography) float64 {
	if t.AutoLineHeight() {
		return t.FontSize * config.AutoLineHeightRatio
	}
	return t.LineHeight
}

// TextHeight is the pixel height of the text column of fp.
func (pv Preview) TextHeight(fp FontPreview) float64 {
	h := float64(fp.TitleLines) * LineHeight(pv.Policy.Title)
	if fp.DescriptionLines > 0 {
		if fp.TitleLines > 0 {
			h += config.DescriptionTitleGap
		}
		h += float64(fp.DescriptionLines) * LineHeight(pv.Policy.Description)
	}
	return h
}

// CardHeight is the unscaled pixel height of the popup for fp.
func (pv Preview) CardHeight(fp FontPreview) float64 {
	p := pv.Policy
	text := pv.TextHeight(fp)
	var body float64
	if p.Layout == models.LayoutVertical {
		body = float64(p.IconSize) + float64(p.IconTextGap) + text
	} else {
		body = text
		if icon := float64(p.IconSize); icon > body {
			body = icon
		}
	}
	return float64(p.Padding.Top) + body + float64(p.Padding.Bottom)
}
