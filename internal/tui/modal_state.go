package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/akyairhashvil/notifit/internal/config"
	"github.com/akyairhashvil/notifit/internal/icons"
	"github.com/akyairhashvil/notifit/internal/models"
	"github.com/akyairhashvil/notifit/internal/report"
)

type ModalType int

const (
	ModalNone ModalType = iota
	ModalEdit
	ModalPreview
	ModalTheme
	ModalClearAll
	ModalHelp
)

type ModalState interface {
	Type() ModalType
}

// Editor fields in tab order.
const (
	fieldTitle = iota
	fieldDescription
	fieldIcon
	fieldCount
)

// EditState is the open row editor.
type EditState struct {
	RowID       string
	Level       models.Level
	focus       int
	title       textarea.Model
	description textarea.Model
	icon        textinput.Model
}

func (s *EditState) Type() ModalType { return ModalEdit }

func newEditState(n models.Notification, width int) *EditState {
	s := &EditState{RowID: n.ID, Level: n.Level}

	s.title = textarea.New()
	s.title.Placeholder = "Title"
	s.title.CharLimit = config.MaxTitleLength
	s.title.ShowLineNumbers = false
	s.title.SetHeight(2)
	s.title.SetValue(n.Title)

	s.description = textarea.New()
	s.description.Placeholder = "Description"
	s.description.CharLimit = config.MaxDescriptionLength
	s.description.ShowLineNumbers = false
	s.description.SetHeight(5)
	s.description.SetValue(n.Description)

	s.icon = textinput.New()
	s.icon.Placeholder = "icon name"
	s.icon.CharLimit = config.MaxIconLength
	s.icon.ShowSuggestions = true
	s.icon.SetSuggestions(icons.All())
	s.icon.SetValue(n.Icon)

	s.resize(width)
	if n.Level == models.LevelCritical {
		s.focus = fieldDescription
	}
	s.applyFocus()
	return s
}

func (s *EditState) resize(width int) {
	w := width - 8
	if w < config.MinTextColumnWidth*2 {
		w = config.MinTextColumnWidth * 2
	}
	s.title.SetWidth(w)
	s.description.SetWidth(w)
	s.icon.Width = w
}

func (s *EditState) next(step int) {
	s.focus = (s.focus + step + fieldCount) % fieldCount
	s.applyFocus()
}

func (s *EditState) applyFocus() {
	s.title.Blur()
	s.description.Blur()
	s.icon.Blur()
	switch s.focus {
	case fieldTitle:
		s.title.Focus()
	case fieldDescription:
		s.description.Focus()
	case fieldIcon:
		s.icon.Focus()
	}
}

// Draft is the record as it would be saved.
func (s *EditState) Draft(base models.Notification) models.Notification {
	base.Title = s.title.Value()
	base.Description = s.description.Value()
	base.Icon = icons.Normalize(s.icon.Value())
	return base
}

// PreviewState shows the measured layout of one row.
type PreviewState struct {
	RowID    string
	Revision uint64
	Loading  bool
	Preview  report.Preview
	Err      error
}

func (s *PreviewState) Type() ModalType { return ModalPreview }

type ThemeState struct {
	names  []string
	cursor int
}

func (s *ThemeState) Type() ModalType { return ModalTheme }

func newThemeState() *ThemeState {
	s := &ThemeState{names: ThemeNames()}
	current := themeKey(CurrentTheme)
	for i, n := range s.names {
		if n == current {
			s.cursor = i
		}
	}
	return s
}

type ClearAllState struct{}

func (s *ClearAllState) Type() ModalType { return ModalClearAll }

type HelpState struct{}

func (s *HelpState) Type() ModalType { return ModalHelp }

// ModalManager tracks the open modal.
type ModalManager struct {
	current ModalState
}

func newModalManager() *ModalManager {
	return &ModalManager{}
}

func (m *ModalManager) ActiveModal() ModalType {
	if m.current == nil {
		return ModalNone
	}
	return m.current.Type()
}

func (m *ModalManager) IsOpen() bool { return m.current != nil }

func (m *ModalManager) Current() ModalState { return m.current }

func (m *ModalManager) Open(state ModalState) { m.current = state }

func (m *ModalManager) Close() { m.current = nil }

func (m *ModalManager) Is(t ModalType) bool {
	return m.current != nil && m.current.Type() == t
}

func (m *ModalManager) EditState() (*EditState, bool) {
	state, ok := m.current.(*EditState)
	return state, ok
}

func (m *ModalManager) PreviewState() (*PreviewState, bool) {
	state, ok := m.current.(*PreviewState)
	return state, ok
}

func (m *ModalManager) ThemeState() (*ThemeState, bool) {
	state, ok := m.current.(*ThemeState)
	return state, ok
}
