package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/akyairhashvil/notifit/internal/config"
	"github.com/akyairhashvil/notifit/internal/icons"
	"github.com/akyairhashvil/notifit/internal/sheet"
	"github.com/akyairhashvil/notifit/internal/util"
)

const (
	colMarker = 2
	colStatus = 2
	colBadge  = 6
	colIcon   = 22
	colImage  = 4
)

// fit truncates or pads s to exactly w cells.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = ansi.Truncate(s, w, config.TruncationSuffix)
	if pad := w - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

type tableLayout struct {
	showIcon    bool
	title       int
	description int
}

func (m SheetModel) layout() tableLayout {
	width := m.width
	if width <= 0 {
		width = 120
	}
	l := tableLayout{showIcon: width >= config.CompactModeThreshold}
	rest := width - colMarker - colStatus - colBadge - colImage - 6
	if l.showIcon {
		rest -= colIcon + 1
	}
	l.title = rest * 2 / 5
	if l.title < config.MinTextColumnWidth {
		l.title = config.MinTextColumnWidth
	}
	l.description = rest - l.title
	if l.description < config.MinTextColumnWidth {
		l.description = config.MinTextColumnWidth
	}
	return l
}

func (m SheetModel) View() string {
	if m.modals.IsOpen() {
		return m.renderModal()
	}
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")
	b.WriteString(m.renderTable())
	b.WriteString(m.renderFooter())
	return CurrentTheme.Base.Render(b.String())
}

func (m SheetModel) renderHeader() string {
	total := m.sheet.Len()
	errs := m.sheet.ErrorCount()
	parts := []string{
		CurrentTheme.Header.Render(config.AppName + " v" + AppVersion),
		fmt.Sprintf("%d rows", total),
	}
	if errs > 0 {
		parts = append(parts, CurrentTheme.Error.Render(fmt.Sprintf("%d errors", errs)))
	} else {
		parts = append(parts, CurrentTheme.OK.Render("no errors"))
	}
	if n := len(m.pending); n > 0 {
		parts = append(parts, CurrentTheme.Dim.Render(fmt.Sprintf("checking %d", n)))
	}
	if !m.fontsReady {
		parts = append(parts, CurrentTheme.Dim.Render("loading fonts..."))
	}
	return strings.Join(parts, "  |  ")
}

func (m SheetModel) renderFilterBar() string {
	var parts []string
	if m.viewMode == ViewModeErrors {
		parts = append(parts, CurrentTheme.Focused.Render("[errors only]"))
	} else {
		parts = append(parts, CurrentTheme.Dim.Render("[all rows]"))
	}
	if m.search.Active {
		parts = append(parts, m.search.input.View())
	} else if v := m.search.input.Value(); v != "" {
		parts = append(parts, CurrentTheme.Highlight.Render("/ "+v))
	}
	if n := len(m.selected); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	return strings.Join(parts, "  ")
}

func (m SheetModel) renderTable() string {
	l := m.layout()
	var b strings.Builder

	cols := []string{fit("", colMarker), fit("", colStatus), fit("LEVEL", colBadge)}
	if l.showIcon {
		cols = append(cols, fit("ICON", colIcon))
	}
	cols = append(cols, fit("IMG", colImage), fit("TITLE", l.title), fit("DESCRIPTION", l.description))
	b.WriteString(CurrentTheme.Dim.Render(strings.Join(cols, " ")))
	b.WriteString("\n")

	rows := m.visibleRows()
	if len(rows) == 0 {
		if m.viewMode == ViewModeErrors {
			b.WriteString(CurrentTheme.OK.Render("  No rows with errors.") + "\n")
		} else {
			b.WriteString(CurrentTheme.Dim.Render("  No rows match.") + "\n")
		}
		return b.String()
	}
	end := m.offset + m.pageSize()
	if end > len(rows) {
		end = len(rows)
	}
	for pos := m.offset; pos < end; pos++ {
		r, err := m.sheet.Row(rows[pos])
		if err != nil {
			continue
		}
		b.WriteString(m.renderRow(r, l, pos == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m SheetModel) renderRow(r sheet.Row, l tableLayout, current bool) string {
	marker := "  "
	if current {
		marker = CurrentTheme.Cursor.Render("> ")
	}
	cols := []string{marker, m.statusCell(r), badgeCell(r)}
	if l.showIcon {
		icon := fit(icons.Label(r.Icon), colIcon)
		if r.Icon != "" && !icons.Known(r.Icon) {
			icon = CurrentTheme.Dim.Render(icon)
		}
		cols = append(cols, icon)
	}
	img := "  - "
	if r.IncludeImage {
		img = " IMG"
	}
	cols = append(cols,
		img,
		fit(util.FirstLine(r.Title), l.title),
		fit(util.FirstLine(r.Description), l.description),
	)
	line := strings.Join(cols, " ")
	switch {
	case m.selected[r.ID]:
		return CurrentTheme.Selected.Render(line)
	case current:
		return CurrentTheme.Focused.Render(line)
	}
	return CurrentTheme.Row.Render(line)
}

func (m SheetModel) statusCell(r sheet.Row) string {
	switch {
	case m.pending[r.ID] == r.Revision && r.Revision != 0:
		return CurrentTheme.Dim.Render(fit("…", colStatus))
	case r.HasError:
		return CurrentTheme.Error.Render(fit("✗", colStatus))
	case r.Pristine:
		return fit("", colStatus)
	}
	return CurrentTheme.OK.Render(fit("✓", colStatus))
}

func badgeCell(r sheet.Row) string {
	return lipgloss.NewStyle().Width(colBadge).Render(levelBadge(levelOf(r.Notification)))
}

func (m SheetModel) renderFooter() string {
	var b strings.Builder
	if r, ok := m.currentRow(); ok && r.HasError {
		reasons := r.Reasons
		more := 0
		if len(reasons) > config.MaxReasonsShown {
			more = len(reasons) - config.MaxReasonsShown
			reasons = reasons[:config.MaxReasonsShown]
		}
		line := strings.Join(reasons, "; ")
		if more > 0 {
			line += fmt.Sprintf(" (+%d more)", more)
		}
		b.WriteString(CurrentTheme.Error.Render(line) + "\n")
	}
	if m.err != nil {
		b.WriteString(CurrentTheme.Error.Render("Error: "+m.err.Error()) + "\n")
	}
	if m.Message != "" {
		b.WriteString(CurrentTheme.Highlight.Render(m.Message) + "\n")
	}
	b.WriteString(CurrentTheme.Dim.Render(m.registry.HelpForView(m.viewMode, m.width)))
	return b.String()
}
