package config

// Layout constants.
const (
	// MinTextColumnWidth is the minimum width for the title/description columns.
	MinTextColumnWidth = 12

	// CompactModeThreshold hides the icon column below this width.
	CompactModeThreshold = 90

	// DefaultVisibleRows is used before the first WindowSizeMsg arrives.
	DefaultVisibleRows = 15

	// ChromeHeight is the number of lines taken by header, filter bar and footer.
	ChromeHeight = 7
)

// Display limits.
const (
	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "..."

	// MaxReasonsShown limits error reasons listed in the footer.
	MaxReasonsShown = 3
)

// Input constraints.
const (
	// MaxTitleLength is the maximum notification title length.
	MaxTitleLength = 200

	// MaxDescriptionLength is the maximum description length.
	MaxDescriptionLength = 1000

	// MaxIconLength is the maximum icon identifier length.
	MaxIconLength = 80
)
