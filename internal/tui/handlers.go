package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/akyairhashvil/notifit/internal/database"
	"github.com/akyairhashvil/notifit/internal/models"
	"github.com/akyairhashvil/notifit/internal/sheet"
	"github.com/akyairhashvil/notifit/internal/util"
)

func registerSheetBindings(r *HandlerRegistry) {
	r.Register(KeyBinding{Keys: []string{"up", "k"}, Handler: handleUp, Description: "up", Group: GroupMove})
	r.Register(KeyBinding{Keys: []string{"down", "j"}, Handler: handleDown, Description: "down", Group: GroupMove})
	r.Register(KeyBinding{Keys: []string{"pgup", "pgdown", "g", "home", "G", "end"}, Handler: handlePaging, Description: "page, first, last", Group: GroupMove})
	r.Register(KeyBinding{Keys: []string{"e", "enter"}, Handler: handleEdit, Description: "edit", Group: GroupEdit, Footer: true, Priority: 10})
	r.Register(KeyBinding{Keys: []string{"l"}, Handler: handleCycleLevel, Description: "level", Group: GroupEdit, Footer: true})
	r.Register(KeyBinding{Keys: []string{"i"}, Handler: handleToggleImage, Description: "image", Group: GroupEdit, Footer: true})
	r.Register(KeyBinding{Keys: []string{"u", "ctrl+z"}, Handler: handleUndo, Description: "undo", Group: GroupEdit, Footer: true})
	r.Register(KeyBinding{Keys: []string{"U", "ctrl+y", "ctrl+r"}, Handler: handleRedo, Description: "redo", Group: GroupEdit})
	r.Register(KeyBinding{Keys: []string{"a"}, Handler: handleAddRow, Description: "add", Group: GroupSheet, Footer: true})
	r.Register(KeyBinding{Keys: []string{"d", "delete"}, Handler: handleDeleteRow, Description: "delete", Group: GroupSheet, Footer: true})
	r.Register(KeyBinding{Keys: []string{"D"}, Handler: handleClearAll, Description: "clear all", Group: GroupSheet})
	r.Register(KeyBinding{Keys: []string{" "}, Handler: handleSelect, Description: "select", Group: GroupSheet})
	r.Register(KeyBinding{Keys: []string{"y"}, Handler: handleCopy, Description: "copy", Group: GroupSheet, Footer: true})
	r.Register(KeyBinding{Keys: []string{"f"}, Handler: handleFilter, Description: "errors only", Group: GroupSheet, Footer: true})
	r.Register(KeyBinding{Keys: []string{"/"}, Handler: handleSearch, Description: "search", Group: GroupSheet, Footer: true})
	r.Register(KeyBinding{Keys: []string{"esc"}, Handler: handleEscape})
	r.Register(KeyBinding{Keys: []string{"p"}, Handler: handlePreview, Description: "preview", Group: GroupApp, Footer: true})
	r.Register(KeyBinding{Keys: []string{"x"}, Handler: handleExport, Description: "export pdf", Group: GroupApp})
	r.Register(KeyBinding{Keys: []string{"t"}, Handler: handleTheme, Description: "theme", Group: GroupApp})
	r.Register(KeyBinding{Keys: []string{"?"}, Handler: handleHelp, Description: "help", Group: GroupApp, Footer: true, Priority: 5})
	r.Register(KeyBinding{Keys: []string{"q"}, Handler: handleQuit, Description: "quit", Group: GroupApp, Footer: true, Priority: 5})
}

func handleUp(m SheetModel, _ string) (SheetModel, tea.Cmd, bool) {
	if m.cursor > 0 {
		m.cursor--
	}
	m.clampCursor()
	return m, nil, true
}

func handleDown(m SheetModel, _ string) (SheetModel, tea.Cmd, bool) {
	m.cursor++
	m.clampCursor()
	return m, nil, true
}

func handlePaging(m SheetModel, key string) (SheetModel, tea.Cmd, bool) {
	switch key {
	case "pgup":
		m.cursor -= m.pageSize()
	case "pgdown":
		m.cursor += m.pageSize()
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = len(m.visibleRows()) - 1
	}
	m.clampCursor()
	return m, nil, true
}

func handleEdit(m SheetModel, _ string) (SheetModel, tea.Cmd, bool) {
	r, ok := m.currentRow()
	if !ok {
		return m, nil, false
	}
	m.modals.Open(newEditState(r.Notification, m.width))
	return m, nil, true
}

func handleAddRow(m SheetModel, _ string) (SheetModel, tea.Cmd, bool) {
	i := m.sheet.AddRow()
	r, _ := m.sheet.Row(i)
	if m.viewMode == ViewModeErrors {
		// a blank row has no error and would be hidden
		m = m.setViewMode(ViewModeAll)
	}
	m.moveTo(r.ID)
	return m, m.persist(), true
}

func handleDeleteRow(m SheetModel, _ string) (SheetModel, tea.Cmd, bool) {
	i := m.currentIndex()
	if i < 0 {
		return m, nil, true
	}
	r, _ := m.sheet.Row(i)
	if err := m.sheet.Delete(i); err != nil {
		m.err = err
		return m, nil, true
	}
	delete(m.selected, r.ID)
	delete(m.pending, r.ID)
	m.clampCursor()
	return m, m.persist(), true
}

func handleClearAll(m SheetModel, _ string) (SheetModel, tea.Cmd, bool) {
	m.modals.Open(&ClearAllState{})
	return m, nil, true
}

func handleCycleLevel(m SheetModel, _ string) (SheetModel, tea.Cmd, bool) {
	return m.editCurrent(func(i int, r sheet.Row) (sheet.Job, error) {
		return m.sheet.SetLevel(i, r.Level.Next())
	})
}

func handleToggleImage(m SheetModel, _ string) (SheetModel, tea.Cmd, bool) {
	return m.editCurrent(func(i int, r sheet.Row) (sheet.Job, error) {
		return m.sheet.SetIncludeImage(i, !r.IncludeImage)
	})
}

func (m SheetModel) editCurrent(fn func(int, sheet.Row) (sheet.Job, error)) (SheetModel, tea.Cmd, bool) {
	i := m.currentIndex()
	r, ok := m.currentRow()
	if !ok {
		return m, nil, true
	}
	job, err := fn(i, r)
	if err != nil {
		m.err = err
		return m, nil, true
	}
	cmd := m.changed(job)
	m.moveTo(job.ID)
	return m, cmd, true
}

func handlePreview(m SheetModel, _ string) (SheetModel, tea.Cmd, bool) {
	r, ok := m.currentRow()
	if !ok {
		return m, nil, true
	}
	m.modals.Open(&PreviewState{RowID: r.ID, Revision: r.Revision, Loading: true})
	job := sheet.Job{ID: r.ID, Revision: r.Revision, Notification: r.Notification}
	return m, previewCmd(m.deps, job), true
}

func handleSelect(m SheetModel, _ string) (SheetModel, tea.Cmd, bool) {
	r, ok := m.currentRow()
	if !ok {
		return m, nil, true
	}
	if m.selected[r.ID] {
		delete(m.selected, r.ID)
	} else {
		m.selected[r.ID] = true
	}
	m.cursor++
	m.clampCursor()
	return m, nil, true
}

// selectedIndices returns the selected rows in sheet order, or the current
// row when nothing is selected.
func (m SheetModel) selectedIndices() []int {
	var out []int
	for i := 0; i < m.sheet.Len(); i++ {
		if r, err := m.sheet.Row(i); err == nil && m.selected[r.ID] {
			out = append(out, i)
		}
	}
	if len(out) == 0 {
		if i := m.currentIndex(); i >= 0 {
			out = append(out, i)
		}
	}
	return out
}

func handleCopy(m SheetModel, _ string) (SheetModel, tea.Cmd, bool) {
	idx := m.selectedIndices()
	if len(idx) == 0 {
		return m, nil, true
	}
	return m, copyCmd(m.deps, m.sheet.Copy(idx...), len(idx)), true
}

func handleUndo(m SheetModel, _ string) (SheetModel, tea.Cmd, bool) {
	jobs, ok := m.sheet.Undo()
	if !ok {
		m.Message = "Nothing to undo"
		return m, nil, true
	}
	return m, m.changed(jobs...), true
}

func handleRedo(m SheetModel, _ string) (SheetModel, tea.Cmd, bool) {
	jobs, ok := m.sheet.Redo()
	if !ok {
		m.Message = "Nothing to redo"
		return m, nil, true
	}
	return m, m.changed(jobs...), true
}

func handleFilter(m SheetModel, _ string) (SheetModel, tea.Cmd, bool) {
	if m.viewMode == ViewModeErrors {
		m = m.setViewMode(ViewModeAll)
	} else {
		m = m.setViewMode(ViewModeErrors)
	}
	return m, m.persistFilter(), true
}

func handleSearch(m SheetModel, _ string) (SheetModel, tea.Cmd, bool) {
	m.search.Active = true
	return m, m.search.input.Focus(), true
}

func handleEscape(m SheetModel, _ string) (SheetModel, tea.Cmd, bool) {
	if len(m.selected) > 0 {
		m.selected = make(map[string]bool)
		return m, nil, true
	}
	if !m.search.query.Empty() {
		m.search.input.SetValue("")
		m.search.query = util.SearchQuery{}
		m.clampCursor()
		return m, nil, true
	}
	return m, nil, false
}

func handleExport(m SheetModel, _ string) (SheetModel, tea.Cmd, bool) {
	var jobs []sheet.Job
	for _, i := range m.selectedIndicesOrAll() {
		r, err := m.sheet.Row(i)
		if err != nil || r.IsEmpty() {
			continue
		}
		jobs = append(jobs, sheet.Job{ID: r.ID, Revision: r.Revision, Notification: r.Notification})
	}
	if len(jobs) == 0 {
		m.Message = "Nothing to export"
		return m, nil, true
	}
	m.Message = "Exporting " + strconv.Itoa(len(jobs)) + " preview(s)..."
	return m, exportCmd(m.deps, jobs), true
}

// selectedIndicesOrAll is the selection, or every visible row.
func (m SheetModel) selectedIndicesOrAll() []int {
	if len(m.selected) > 0 {
		return m.selectedIndices()
	}
	return m.visibleRows()
}

func handleTheme(m SheetModel, _ string) (SheetModel, tea.Cmd, bool) {
	m.modals.Open(newThemeState())
	return m, nil, true
}

func handleHelp(m SheetModel, _ string) (SheetModel, tea.Cmd, bool) {
	m.modals.Open(&HelpState{})
	return m, nil, true
}

func handleQuit(m SheetModel, _ string) (SheetModel, tea.Cmd, bool) {
	return m, tea.Quit, true
}

// --- Modal keys ---

func (m SheetModel) updateModal(msg tea.KeyMsg) (SheetModel, tea.Cmd) {
	switch m.modals.ActiveModal() {
	case ModalEdit:
		return m.updateEditor(msg)
	case ModalTheme:
		return m.updateTheme(msg)
	case ModalClearAll:
		return m.updateClearAll(msg)
	default:
		switch msg.String() {
		case "esc", "q", "enter", "?", "p":
			m.modals.Close()
		}
		return m, nil
	}
}

func (m SheetModel) updateEditor(msg tea.KeyMsg) (SheetModel, tea.Cmd) {
	st, _ := m.modals.EditState()
	switch msg.String() {
	case "esc":
		m.modals.Close()
		return m, nil
	case "tab":
		if st.focus == fieldIcon && st.icon.CurrentSuggestion() != "" && st.icon.CurrentSuggestion() != st.icon.Value() {
			break
		}
		st.next(1)
		return m, nil
	case "shift+tab":
		st.next(-1)
		return m, nil
	case "ctrl+s":
		return m.saveEditor(st)
	case "ctrl+l":
		st.Level = st.Level.Next()
		return m, nil
	}
	var cmd tea.Cmd
	switch st.focus {
	case fieldTitle:
		st.title, cmd = st.title.Update(msg)
	case fieldDescription:
		st.description, cmd = st.description.Update(msg)
	case fieldIcon:
		st.icon, cmd = st.icon.Update(msg)
	}
	return m, cmd
}

// saveEditor writes the draft back as one sheet edit, so a save is one undo
// step and gets the same normalization as a direct edit.
func (m SheetModel) saveEditor(st *EditState) (SheetModel, tea.Cmd) {
	m.modals.Close()
	i := m.sheet.IndexOf(st.RowID)
	r, err := m.sheet.Row(i)
	if err != nil {
		m.Message = "Row no longer exists"
		return m, nil
	}
	draft := st.Draft(r.Notification)
	draft.Level = st.Level
	job, changed, err := m.sheet.Update(i, draft)
	if err != nil {
		m.err = err
		return m, nil
	}
	if !changed {
		return m, nil
	}
	cmd := m.changed(job)
	m.moveTo(job.ID)
	return m, cmd
}

func (m SheetModel) updateTheme(msg tea.KeyMsg) (SheetModel, tea.Cmd) {
	st, _ := m.modals.ThemeState()
	switch msg.String() {
	case "esc", "q":
		m.modals.Close()
	case "up", "k":
		if st.cursor > 0 {
			st.cursor--
		}
	case "down", "j":
		if st.cursor < len(st.names)-1 {
			st.cursor++
		}
	case "enter":
		name := st.names[st.cursor]
		m.modals.Close()
		if SetTheme(name) {
			m.Message = "Theme: " + name
			return m, settingCmd(m.deps, database.SettingTheme, name)
		}
	}
	return m, nil
}

func (m SheetModel) updateClearAll(msg tea.KeyMsg) (SheetModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.modals.Close()
		m.sheet.DeleteAll()
		m.selected = make(map[string]bool)
		m.pending = make(map[string]uint64)
		m.cursor, m.offset = 0, 0
		m.Message = "All rows deleted"
		return m, m.persist()
	case "n", "N", "esc", "q":
		m.modals.Close()
	}
	return m, nil
}

// levelOf is the level shown for a row, defaulting unknown values.
func levelOf(n models.Notification) models.Level {
	if !n.Level.Valid() {
		return models.LevelInformation
	}
	return n.Level
}
