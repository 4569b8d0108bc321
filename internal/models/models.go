package models

// Level is the severity of a notification. It selects the validation rules
// and the visual style.
type Level string

const (
	LevelInformation Level = "information"
	LevelWarning     Level = "warning"
	LevelUrgent      Level = "urgent"
	LevelCritical    Level = "critical"
)

// Levels lists the known levels in display order.
var Levels = []Level{LevelInformation, LevelWarning, LevelUrgent, LevelCritical}

// Valid reports whether l is one of the four known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelInformation, LevelWarning, LevelUrgent, LevelCritical:
		return true
	}
	return false
}

// Badge returns the four-letter abbreviation shown in the table.
func (l Level) Badge() string {
	switch l {
	case LevelWarning:
		return "WARN"
	case LevelUrgent:
		return "URGN"
	case LevelCritical:
		return "CRIT"
	default:
		return "INFO"
	}
}

// Next cycles to the following level, wrapping after critical.
func (l Level) Next() Level {
	for i, lv := range Levels {
		if lv == l {
			return Levels[(i+1)%len(Levels)]
		}
	}
	return LevelInformation
}

// FieldRule says whether a text field must, may or must not be filled.
type FieldRule string

const (
	RuleRequired FieldRule = "required"
	RuleOptional FieldRule = "optional"
	RuleDisabled FieldRule = "disabled"
)

// Layout is the arrangement of icon and text inside the popup.
type Layout string

const (
	LayoutHorizontal Layout = "horizontal"
	LayoutVertical   Layout = "vertical"
)

// LineHeightAuto marks a typography whose line height is derived from the
// font metrics instead of a fixed pixel value.
const LineHeightAuto = 0

// Typography describes how one text field is set.
type Typography struct {
	FontSize   float64
	FontWeight int
	LineHeight float64 // LineHeightAuto means derive from metrics
}

// AutoLineHeight reports whether the line height must be derived.
func (t Typography) AutoLineHeight() bool {
	return t.LineHeight <= LineHeightAuto
}

// Bold reports whether the weight maps to a bold face.
func (t Typography) Bold() bool {
	return t.FontWeight >= 600
}

// Notification is one authored row. HasError is derived and only ever written
// from an evaluation result.
type Notification struct {
	ID           string
	Level        Level
	Icon         string
	IncludeImage bool
	Title        string
	Description  string
	HasError     bool
}

// NewNotification returns an empty information row.
func NewNotification(id string) Notification {
	return Notification{ID: id, Level: LevelInformation}
}

// IsEmpty reports whether no content was authored yet.
func (n Notification) IsEmpty() bool {
	return n.Icon == "" && n.Title == "" && n.Description == ""
}

// Font is one entry of the font catalog.
type Font struct {
	ID          string
	DisplayName string
}
