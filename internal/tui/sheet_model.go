package tui

import (
	"context"
	"errors"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/akyairhashvil/notifit/internal/config"
	"github.com/akyairhashvil/notifit/internal/database"
	"github.com/akyairhashvil/notifit/internal/sheet"
	"github.com/akyairhashvil/notifit/internal/util"
)

// View Modes
const (
	ViewModeAll    = 0
	ViewModeErrors = 1 // only rows with errors
)

// SearchState holds the row filter input.
type SearchState struct {
	Active bool
	input  textinput.Model
	query  util.SearchQuery
}

// SheetModel is the table editor.
type SheetModel struct {
	deps     *Deps
	sheet    *sheet.Sheet
	registry *HandlerRegistry
	modals   *ModalManager
	search   SearchState

	cursor   int // index into visibleRows
	offset   int
	viewMode int
	selected map[string]bool
	pending  map[string]uint64 // row ID -> revision being evaluated

	fontsReady bool
	saveSeq    uint64
	Message    string
	err        error
	width      int
	height     int
}

func NewSheetModel(d *Deps) SheetModel {
	d.defaults()
	si := textinput.New()
	si.Placeholder = "level:warning is:error text..."
	si.Width = 40
	si.Prompt = "/ "

	m := SheetModel{
		deps:       d,
		sheet:      sheet.New(d.SheetOpts...),
		registry:   NewHandlerRegistry(),
		modals:     newModalManager(),
		search:     SearchState{input: si},
		selected:   make(map[string]bool),
		pending:    make(map[string]uint64),
		fontsReady: d.Ready == nil,
	}
	registerSheetBindings(m.registry)
	return m
}

func (m SheetModel) Init() tea.Cmd {
	return tea.Batch(loadCmd(m.deps), waitFontsCmd(m.deps))
}

// visibleRows maps table positions to sheet indices after the errors-only
// filter and the search query.
func (m SheetModel) visibleRows() []int {
	idx := m.sheet.Visible()
	if m.search.query.Empty() {
		return idx
	}
	out := idx[:0:0]
	for _, i := range idx {
		r, err := m.sheet.Row(i)
		if err != nil {
			continue
		}
		if m.search.query.Match(util.SearchTarget{
			Level:    string(r.Level),
			Icon:     r.Icon,
			HasError: r.HasError,
			Text:     r.Title + "\n" + r.Description,
		}) {
			out = append(out, i)
		}
	}
	return out
}

// currentIndex is the sheet index under the cursor, or -1.
func (m SheetModel) currentIndex() int {
	rows := m.visibleRows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return -1
	}
	return rows[m.cursor]
}

func (m SheetModel) currentRow() (sheet.Row, bool) {
	i := m.currentIndex()
	if i < 0 {
		return sheet.Row{}, false
	}
	r, err := m.sheet.Row(i)
	return r, err == nil
}

func (m SheetModel) pageSize() int {
	if m.height <= 0 {
		return config.DefaultVisibleRows
	}
	n := m.height - config.ChromeHeight
	if n < 1 {
		n = 1
	}
	return n
}

func (m *SheetModel) clampCursor() {
	n := len(m.visibleRows())
	m.cursor = util.Clamp(m.cursor, 0, n-1)
	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	m.offset = util.Clamp(m.offset, 0, n-1)
}

// moveTo puts the cursor on the row with id when it is visible.
func (m *SheetModel) moveTo(id string) {
	for pos, i := range m.visibleRows() {
		if r, err := m.sheet.Row(i); err == nil && r.ID == id {
			m.cursor = pos
			break
		}
	}
	m.clampCursor()
}

// changed schedules evaluation of jobs and persists the sheet.
func (m *SheetModel) changed(jobs ...sheet.Job) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(jobs)+1)
	for _, job := range jobs {
		m.pending[job.ID] = job.Revision
		cmds = append(cmds, evaluateCmd(m.deps, job))
	}
	cmds = append(cmds, m.persist())
	m.clampCursor()
	return tea.Batch(cmds...)
}

func (m *SheetModel) persist() tea.Cmd {
	m.saveSeq++
	return saveCmd(m.deps, m.saveSeq, m.sheet.Notifications())
}

func (m SheetModel) setViewMode(mode int) SheetModel {
	m.viewMode = mode
	m.sheet.SetOnlyErrors(mode == ViewModeErrors)
	m.clampCursor()
	return m
}

func (m SheetModel) Update(msg tea.Msg) (SheetModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if st, ok := m.modals.EditState(); ok {
			st.resize(m.width)
		}
		m.clampCursor()
		return m, nil

	case SheetLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			util.LogError(m.deps.Logger, "load sheet", msg.Err)
			return m, nil
		}
		if msg.Theme != "" {
			SetTheme(msg.Theme)
		}
		jobs := m.sheet.Load(msg.Rows)
		if msg.OnlyErrors {
			m = m.setViewMode(ViewModeErrors)
		}
		cmds := make([]tea.Cmd, 0, len(jobs))
		for _, job := range jobs {
			m.pending[job.ID] = job.Revision
			cmds = append(cmds, evaluateCmd(m.deps, job))
		}
		m.clampCursor()
		return m, tea.Batch(cmds...)

	case FontsReadyMsg:
		m.fontsReady = true
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.Message = "Font loading failed: " + msg.Err.Error()
		}
		return m, nil

	case EvalResultMsg:
		return m.handleEvalResult(msg)

	case SavedMsg:
		if msg.Err != nil {
			m.Message = "Save failed: " + msg.Err.Error()
			util.LogError(m.deps.Logger, "save sheet", msg.Err)
		}
		return m, nil

	case PreviewMsg:
		if st, ok := m.modals.PreviewState(); ok && st.RowID == msg.ID && st.Revision == msg.Revision {
			st.Loading = false
			st.Preview = msg.Preview
			st.Err = msg.Err
		}
		return m, nil

	case ExportedMsg:
		if msg.Err != nil {
			m.Message = "Export failed: " + msg.Err.Error()
			util.LogError(m.deps.Logger, "export previews", msg.Err)
		} else {
			m.Message = "Previews written to " + msg.Path
		}
		return m, nil

	case CopiedMsg:
		if msg.Err != nil {
			m.Message = "Copy failed: " + msg.Err.Error()
		} else {
			m.Message = "Copied " + strconv.Itoa(msg.Rows) + " row(s)"
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Paste {
			return m.handlePaste(msg)
		}
		if m.modals.IsOpen() {
			return m.updateModal(msg)
		}
		if m.search.Active {
			return m.updateSearch(msg)
		}
		m.Message = ""
		next, cmd, _ := m.registry.Handle(m, msg.String())
		return next, cmd
	}
	return m, nil
}

func (m SheetModel) handleEvalResult(msg EvalResultMsg) (SheetModel, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			return m, nil
		}
		if m.pending[msg.ID] == msg.Revision {
			delete(m.pending, msg.ID)
		}
		m.Message = "Check failed: " + msg.Err.Error()
		m.deps.Logger.Warn("evaluation failed", zap.String("id", msg.ID), zap.Error(msg.Err))
		return m, nil
	}
	before, _ := m.sheet.Row(m.sheet.IndexOf(msg.ID))
	if !m.sheet.ApplyResult(msg.ID, msg.Revision, msg.Result.HasError, msg.Result.Reasons) {
		m.deps.Logger.Debug("discarded stale result", zap.String("id", msg.ID), zap.Uint64("revision", msg.Revision))
		return m, nil
	}
	delete(m.pending, msg.ID)
	m.clampCursor()
	if before.HasError != msg.Result.HasError {
		return m, m.persist()
	}
	return m, nil
}

// handlePaste routes bracketed paste: tab-separated data fills the table
// from the current row, anything else goes to an open editor.
func (m SheetModel) handlePaste(msg tea.KeyMsg) (SheetModel, tea.Cmd) {
	data := string(msg.Runes)
	start := m.currentIndex()
	if st, ok := m.modals.EditState(); ok {
		if !containsTab(data) {
			return m.updateModal(msg)
		}
		start = m.sheet.IndexOf(st.RowID)
		m.modals.Close()
	}
	if start < 0 {
		start = m.sheet.Len()
	}
	jobs, ok := m.sheet.Paste(start, data)
	if !ok {
		m.Message = "Paste needs tab-separated title and description columns"
		return m, nil
	}
	m.Message = "Pasted " + strconv.Itoa(len(jobs)) + " row(s)"
	return m, m.changed(jobs...)
}

func containsTab(s string) bool {
	for _, r := range s {
		if r == '\t' {
			return true
		}
	}
	return false
}

func (m SheetModel) updateSearch(msg tea.KeyMsg) (SheetModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.Active = false
		m.search.input.Blur()
		m.search.input.SetValue("")
		m.search.query = util.SearchQuery{}
		m.clampCursor()
		return m, nil
	case "enter":
		m.search.Active = false
		m.search.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	m.search.query = util.ParseSearchQuery(m.search.input.Value())
	m.cursor = 0
	m.clampCursor()
	return m, cmd
}

// persistFilter records the errors-only toggle.
func (m SheetModel) persistFilter() tea.Cmd {
	return settingCmd(m.deps, database.SettingOnlyErrors, strconv.FormatBool(m.viewMode == ViewModeErrors))
}
