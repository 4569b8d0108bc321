package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// SessionState defines the high-level mode of the application.
type SessionState int

const (
	StateLoading SessionState = iota
	StateSheet
	StateError
)

// MainModel is the root bubbletea model that switches between sub-models.
type MainModel struct {
	state  SessionState
	sheet  SheetModel
	err    error
	width  int // Store window dimensions
	height int
}

func NewMainModel(d *Deps) MainModel {
	d.defaults()
	if d.Theme != "" {
		SetTheme(d.Theme)
	}
	return MainModel{state: StateLoading, sheet: NewSheetModel(d)}
}

func (m MainModel) Init() tea.Cmd {
	return m.sheet.Init()
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.state != StateSheet {
			if msg.String() == "q" || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case SheetLoadedMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.state = StateSheet
		}
	}

	var cmd tea.Cmd
	m.sheet, cmd = m.sheet.Update(msg)
	return m, cmd
}

func (m MainModel) View() string {
	switch m.state {
	case StateLoading:
		return "\n  Loading notifications...\n"
	case StateError:
		return fmt.Sprintf("Error: %v\nPress q or Ctrl+C to quit.", m.err)
	}
	return m.sheet.View()
}
