package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/akyairhashvil/notifit/internal/models"
	"github.com/akyairhashvil/notifit/internal/policy"
	"github.com/akyairhashvil/notifit/internal/report"
	"github.com/akyairhashvil/notifit/internal/validate"
)

func modalFrame() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Border).
		Padding(0, 1)
}

func (m SheetModel) renderModal() string {
	var body string
	switch st := m.modals.Current().(type) {
	case *EditState:
		body = m.renderEditor(st)
	case *PreviewState:
		body = renderPreview(st)
	case *ThemeState:
		body = renderThemePicker(st)
	case *ClearAllState:
		body = CurrentTheme.Error.Render("Delete all rows?") + "\n\n" +
			CurrentTheme.Dim.Render("[y] delete  [n] cancel")
	case *HelpState:
		body = m.renderHelp()
	}
	box := modalFrame().Render(body)
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func ruleLabel(r models.FieldRule) string {
	switch r {
	case models.RuleRequired:
		return "required"
	case models.RuleDisabled:
		return "not used"
	}
	return "optional"
}

func (m SheetModel) renderEditor(st *EditState) string {
	p := policy.Lookup(st.Level)
	var b strings.Builder
	b.WriteString(CurrentTheme.Header.Render("Edit notification") + "  " + levelBadge(st.Level))
	b.WriteString(CurrentTheme.Dim.Render("  (ctrl+l level)") + "\n\n")

	label := func(field int, name string, rule models.FieldRule) string {
		text := fmt.Sprintf("%s (%s)", name, ruleLabel(rule))
		if st.focus == field {
			return CurrentTheme.Focused.Render("> " + text)
		}
		return CurrentTheme.Dim.Render("  " + text)
	}
	b.WriteString(label(fieldTitle, "Title", p.Rules.Title) + "\n")
	b.WriteString(st.title.View() + "\n")
	b.WriteString(label(fieldDescription, "Description", p.Rules.Description) + "\n")
	b.WriteString(st.description.View() + "\n")
	b.WriteString(label(fieldIcon, "Icon", models.RuleOptional) + "\n")
	b.WriteString(st.icon.View() + "\n\n")

	draft := st.Draft(models.Notification{ID: st.RowID, Level: st.Level})
	if reasons := validate.ExplainRequiredFieldViolations(draft); len(reasons) > 0 {
		b.WriteString(CurrentTheme.Error.Render(strings.Join(reasons, "; ")) + "\n")
	} else {
		b.WriteString(CurrentTheme.OK.Render("Fields complete") + "\n")
	}
	b.WriteString(CurrentTheme.Dim.Render(`[tab] next field  [ctrl+s] save  [esc] cancel  \n in a cell is a line break`))
	return b.String()
}

func renderPreview(st *PreviewState) string {
	var b strings.Builder
	b.WriteString(CurrentTheme.Header.Render("Preview") + "\n\n")
	switch {
	case st.Loading:
		b.WriteString(CurrentTheme.Dim.Render("Measuring..."))
		return b.String()
	case st.Err != nil:
		b.WriteString(CurrentTheme.Error.Render("Error: " + st.Err.Error()))
		return b.String()
	}
	pv := st.Preview
	n := pv.Notification
	b.WriteString(levelBadge(levelOf(n)) + " " + n.Icon)
	if pv.ShowsImage {
		b.WriteString(CurrentTheme.Dim.Render("  [image]"))
	}
	if pv.SingleText {
		b.WriteString(CurrentTheme.Dim.Render("  single text, centred"))
	}
	b.WriteString("\n")
	for _, fp := range pv.Fonts {
		b.WriteString("\n" + renderFontPreview(pv, fp))
	}
	if len(pv.Reasons) > 0 {
		b.WriteString("\n" + CurrentTheme.Error.Render(strings.Join(pv.Reasons, "\n")))
	} else {
		b.WriteString("\n" + CurrentTheme.OK.Render("OK"))
	}
	b.WriteString("\n\n" + CurrentTheme.Dim.Render("[esc] close"))
	return b.String()
}

func renderFontPreview(pv report.Preview, fp report.FontPreview) string {
	count := fmt.Sprintf("%d / %d lines", fp.Total(), fp.MaxLines)
	if fp.Overflows() {
		count = CurrentTheme.Error.Render(count)
	} else {
		count = CurrentTheme.OK.Render(count)
	}
	var b strings.Builder
	b.WriteString(CurrentTheme.Highlight.Render(fp.Font.DisplayName))
	b.WriteString(fmt.Sprintf("  %dpx  %s\n", fp.Width, count))

	var body []string
	for _, l := range fp.Title {
		body = append(body, lipgloss.NewStyle().Bold(true).Render(l))
	}
	body = append(body, fp.Description...)
	if len(body) == 0 {
		body = []string{CurrentTheme.Dim.Render("(no text)")}
	}
	border := pv.Policy.Style.BorderColor
	if border == "" {
		border = pv.Policy.Style.Background
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Render(strings.Join(body, "\n"))
	b.WriteString(card)
	return b.String()
}

func renderThemePicker(st *ThemeState) string {
	var b strings.Builder
	b.WriteString(CurrentTheme.Header.Render("Theme") + "\n\n")
	for i, name := range st.names {
		line := "  " + Themes[name].Name
		if i == st.cursor {
			line = CurrentTheme.Focused.Render("> " + Themes[name].Name)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + CurrentTheme.Dim.Render("[enter] apply  [esc] cancel"))
	return b.String()
}

func (m SheetModel) renderHelp() string {
	var b strings.Builder
	b.WriteString(CurrentTheme.Header.Render("Keys") + "\n\n")
	groups := m.registry.Grouped(m.viewMode)
	for _, g := range groupOrder {
		if len(groups[g]) == 0 {
			continue
		}
		b.WriteString(CurrentTheme.Dim.Render(g) + "\n")
		for _, kb := range groups[g] {
			b.WriteString(fmt.Sprintf("  %-22s %s\n", kb.KeyLabel(), kb.Description))
		}
	}
	b.WriteString("\n  Paste tab-separated title and description columns to fill rows.\n")
	b.WriteString("\n" + CurrentTheme.Dim.Render("[esc] close"))
	return b.String()
}
