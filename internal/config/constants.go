package config

import "time"

// Popup geometry taken from the dashboard design file.
const (
	PopupWidth     = 510
	ImageAreaWidth = 120
	ImageGap       = 24

	// ReducedTextAreaWidth is what remains for text in a horizontal popup
	// with an image slot: 510 - 24 (left padding) - 48 (icon) - 24 - 24 - 120.
	ReducedTextAreaWidth = 270

	// AsteonCornerRadius applies to every card rendered in the Asteon theme.
	AsteonCornerRadius = 32
)

// Typography shared by every level that does not define its own.
const (
	TitleFontSize   = 28
	TitleFontWeight = 600
	TitleLineHeight = 32

	DescriptionFontSize   = 24
	DescriptionFontWeight = 400
	DescriptionLineHeight = 32

	// DescriptionTitleGap is the space above a description that follows a title.
	DescriptionTitleGap = 4
)

// Line budgets.
const (
	MaxTotalLines = 4

	// AutoLineHeightRatio estimates a "normal" line height when the
	// rendering surface cannot report one.
	AutoLineHeightRatio = 1.2
)

// Preview rendering.
const (
	PreviewScale = 0.64
)

// Database/application settings.
const (
	AppName      = "notifit"
	DBFileName   = "notifit.db"
	LogFileName  = "notifit.log"
	ConfigName   = "config.toml"
	LocalConfig  = "notifit.toml"
	DefaultTheme = "default"
)

// DefaultFrameInterval paces layout passes of the offscreen surface.
const DefaultFrameInterval = time.Second / 60
