// Package policy holds the fixed per-level rules and layout parameters taken
// from the dashboard design guide.
package policy

import (
	"github.com/akyairhashvil/notifit/internal/config"
	"github.com/akyairhashvil/notifit/internal/models"
)

// FieldRules says how title and description are treated for a level.
type FieldRules struct {
	Title       models.FieldRule
	Description models.FieldRule
}

// Padding is the popup inner spacing in pixels.
type Padding struct {
	Top, Right, Bottom, Left int
}

// Style carries the purely visual attributes used by previews.
type Style struct {
	Background  string
	BorderColor string // empty means no border
	TextColor   string
	IconTint    string // empty keeps the icon's own colours
}

// LevelPolicy is the immutable rule set of one level.
type LevelPolicy struct {
	Level         models.Level
	Rules         FieldRules
	Layout        models.Layout
	TextAreaWidth int
	IconSize      int
	IconTextGap   int
	Padding       Padding
	Style         Style
	HasTitle      bool

	Title       models.Typography
	Description models.Typography

	// MaxLines overrides the global line budget when non-zero.
	MaxLines int
}

// MaxTotalLines is the combined title+description budget.
func (p LevelPolicy) MaxTotalLines() int {
	if p.MaxLines > 0 {
		return p.MaxLines
	}
	return config.MaxTotalLines
}

// EffectiveTextWidth narrows the text area for the image slot. Vertical
// layouts keep their base width.
func (p LevelPolicy) EffectiveTextWidth(includeImage bool) int {
	if p.Layout == models.LayoutHorizontal && includeImage {
		return config.ReducedTextAreaWidth
	}
	return p.TextAreaWidth
}

// ShowsImage reports whether an image slot is drawn for the given toggle.
func (p LevelPolicy) ShowsImage(includeImage bool) bool {
	return p.Layout == models.LayoutHorizontal && includeImage
}

var (
	sharedTitle = models.Typography{
		FontSize:   config.TitleFontSize,
		FontWeight: config.TitleFontWeight,
		LineHeight: config.TitleLineHeight,
	}
	sharedDescription = models.Typography{
		FontSize:   config.DescriptionFontSize,
		FontWeight: config.DescriptionFontWeight,
		LineHeight: config.DescriptionLineHeight,
	}
	horizontalPadding = Padding{Top: 24, Right: 24, Bottom: 24, Left: 24}
)

var registry = map[models.Level]LevelPolicy{
	models.LevelInformation: {
		Level:         models.LevelInformation,
		Rules:         FieldRules{Title: models.RuleOptional, Description: models.RuleRequired},
		Layout:        models.LayoutHorizontal,
		TextAreaWidth: 390,
		IconSize:      48,
		IconTextGap:   24,
		Padding:       horizontalPadding,
		Style:         Style{Background: "#FFFFFF", BorderColor: "#DADADA", TextColor: "#000000"},
		HasTitle:      true,
		Title:         sharedTitle,
		Description:   sharedDescription,
	},
	models.LevelWarning: {
		Level:         models.LevelWarning,
		Rules:         FieldRules{Title: models.RuleRequired, Description: models.RuleOptional},
		Layout:        models.LayoutHorizontal,
		TextAreaWidth: 390,
		IconSize:      48,
		IconTextGap:   24,
		Padding:       horizontalPadding,
		Style:         Style{Background: "#FFFFFF", BorderColor: "#FF8A00", TextColor: "#000000"},
		HasTitle:      true,
		Title:         sharedTitle,
		Description:   sharedDescription,
	},
	models.LevelUrgent: {
		Level:         models.LevelUrgent,
		Rules:         FieldRules{Title: models.RuleRequired, Description: models.RuleOptional},
		Layout:        models.LayoutHorizontal,
		TextAreaWidth: 390,
		IconSize:      48,
		IconTextGap:   24,
		Padding:       horizontalPadding,
		// urgent draws its border in the background colour
		Style:       Style{Background: "#9F3228", BorderColor: "#9F3228", TextColor: "#FFFFFF", IconTint: "#FFFFFF"},
		HasTitle:    true,
		Title:       sharedTitle,
		Description: sharedDescription,
	},
	models.LevelCritical: {
		Level:         models.LevelCritical,
		Rules:         FieldRules{Title: models.RuleDisabled, Description: models.RuleRequired},
		Layout:        models.LayoutVertical,
		TextAreaWidth: config.PopupWidth - 24*2,
		IconSize:      64,
		IconTextGap:   16,
		Padding:       Padding{Top: 32, Right: 24, Bottom: 24, Left: 24},
		Style:         Style{Background: "#9F3228", TextColor: "#FFFFFF", IconTint: "#FFFFFF"},
		HasTitle:      false,
		Title:         sharedTitle,
		Description:   models.Typography{FontSize: 30, FontWeight: 600, LineHeight: models.LineHeightAuto},
		MaxLines:      4,
	},
}

// Lookup returns the policy of level. Unknown levels get the information
// policy.
func Lookup(level models.Level) LevelPolicy {
	if p, ok := registry[level]; ok {
		return p
	}
	return registry[models.LevelInformation]
}

// RulesFor returns the field rules of a known level, and optional/optional
// for anything else so unknown levels never raise a field violation.
func RulesFor(level models.Level) FieldRules {
	if p, ok := registry[level]; ok {
		return p.Rules
	}
	return FieldRules{Title: models.RuleOptional, Description: models.RuleOptional}
}
