package tui

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/golang/mock/gomock"

	"github.com/akyairhashvil/notifit/internal/database"
	"github.com/akyairhashvil/notifit/internal/database/dbmock"
	"github.com/akyairhashvil/notifit/internal/measure"
	"github.com/akyairhashvil/notifit/internal/models"
	"github.com/akyairhashvil/notifit/internal/validate"
)

func TestLoadEvaluatesStoredRows(t *testing.T) {
	repo := newMemRepo(validRow("a"), overflowRow("b"))
	m := setupTestSheet(t, repo)

	if m.sheet.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", m.sheet.Len())
	}
	if got := m.sheet.ErrorCount(); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	r := row(t, m, 1)
	if len(r.Reasons) != 1 || r.Reasons[0] != "Line count exceeded (5 / 4)" {
		t.Fatalf("unexpected reasons: %v", r.Reasons)
	}
	if len(m.pending) != 0 {
		t.Fatalf("expected no pending evaluations, got %v", m.pending)
	}
	saved := repo.saved()
	if len(saved) != 2 || !saved[1].HasError {
		t.Fatalf("expected the new error flag to be saved, got %+v", saved)
	}
}

func TestLoadRestoresErrorsOnlyFilter(t *testing.T) {
	repo := newMemRepo(validRow("a"), overflowRow("b"))
	repo.settings[database.SettingOnlyErrors] = "true"
	m := setupTestSheet(t, repo)

	if m.viewMode != ViewModeErrors {
		t.Fatalf("expected errors-only view")
	}
	if got := m.visibleRows(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected only row 1 visible, got %v", got)
	}
}

func TestEditorSavesThroughSheet(t *testing.T) {
	repo := newMemRepo()
	m := setupTestSheet(t, repo)

	m = press(t, m, "e")
	st, ok := m.modals.EditState()
	if !ok {
		t.Fatalf("expected editor to open")
	}
	st.title.SetValue("battery low")
	st.description.SetValue("Charge soon")
	m = press(t, m, "ctrl+s")

	if m.modals.IsOpen() {
		t.Fatalf("expected editor to close after save")
	}
	r := row(t, m, 0)
	if r.Title != "Battery Low" || r.Description != "Charge soon" {
		t.Fatalf("unexpected row after save: %+v", r.Notification)
	}
	if r.HasError {
		t.Fatalf("expected valid row, got reasons %v", r.Reasons)
	}
	if saved := repo.saved(); len(saved) != 1 || saved[0].Title != "Battery Low" {
		t.Fatalf("expected saved row, got %+v", saved)
	}
}

func TestEditorLevelChangeRaisesFieldViolation(t *testing.T) {
	repo := newMemRepo(models.Notification{ID: "a", Level: models.LevelInformation, Description: "Charge soon"})
	m := setupTestSheet(t, repo)

	m = press(t, m, "e")
	m = press(t, m, "ctrl+l")
	st, _ := m.modals.EditState()
	if st.Level != models.LevelWarning {
		t.Fatalf("expected warning level in editor, got %s", st.Level)
	}
	if !strings.Contains(m.View(), "Title is required") {
		t.Fatalf("expected live field hint in editor view")
	}
	m = press(t, m, "ctrl+s")

	r := row(t, m, 0)
	if r.Level != models.LevelWarning || !r.HasError {
		t.Fatalf("expected flagged warning row, got %+v", r.Notification)
	}
	if len(r.Reasons) == 0 || r.Reasons[0] != "Title is required" {
		t.Fatalf("unexpected reasons: %v", r.Reasons)
	}
}

func TestEditorEscapeDiscardsChanges(t *testing.T) {
	m := setupTestSheet(t, newMemRepo(validRow("a")))
	m = press(t, m, "e")
	st, _ := m.modals.EditState()
	st.title.SetValue("Changed")
	m = press(t, m, "esc")

	if m.modals.IsOpen() {
		t.Fatalf("expected editor closed")
	}
	if got := row(t, m, 0).Title; got != "Door open" {
		t.Fatalf("expected title unchanged, got %q", got)
	}
}

func TestStaleResultIsDiscarded(t *testing.T) {
	m := setupTestSheet(t, newMemRepo(validRow("a")))

	old, err := m.sheet.SetDescription(0, words(30))
	if err != nil {
		t.Fatalf("SetDescription: %v", err)
	}
	if _, err := m.sheet.SetDescription(0, "short"); err != nil {
		t.Fatalf("SetDescription: %v", err)
	}
	m, _ = m.Update(EvalResultMsg{
		ID:       "a",
		Revision: old.Revision,
		Result:   validate.Result{HasError: true, Reasons: []string{"Line count exceeded (5 / 4)"}},
	})
	if row(t, m, 0).HasError {
		t.Fatalf("stale result must not be applied")
	}
}

func TestEvaluationErrorIsReported(t *testing.T) {
	d := newTestDeps(t, newMemRepo(validRow("a")))
	d.Evaluator = failingEvaluator{err: errors.New("surface gone")}
	m := NewSheetModel(d)
	m = drain(t, m, m.Init())

	if !strings.Contains(m.Message, "surface gone") {
		t.Fatalf("expected evaluation error message, got %q", m.Message)
	}
	if len(m.pending) != 0 {
		t.Fatalf("expected failed job to leave pending set")
	}
}

type failingEvaluator struct{ err error }

func (f failingEvaluator) Evaluate(context.Context, models.Notification, []models.Font) (validate.Result, error) {
	return validate.Result{}, f.err
}

func TestPasteFillsRowsFromCursor(t *testing.T) {
	repo := newMemRepo()
	m := setupTestSheet(t, repo)

	m = paste(t, m, "battery low\tCharge soon\\nor stop\nDOOR open\tClose it\n")

	if m.sheet.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", m.sheet.Len())
	}
	first := row(t, m, 0)
	if first.Title != "Battery Low" || first.Description != "Charge soon\nor stop" {
		t.Fatalf("unexpected first row: %+v", first.Notification)
	}
	if got := row(t, m, 1).Title; got != "Door Open" {
		t.Fatalf("unexpected second title %q", got)
	}
	if m.Message != "Pasted 2 row(s)" {
		t.Fatalf("unexpected message %q", m.Message)
	}
	if saved := repo.saved(); len(saved) != 2 {
		t.Fatalf("expected 2 saved rows, got %d", len(saved))
	}
}

func TestPasteWithoutTabIsRejected(t *testing.T) {
	m := setupTestSheet(t, newMemRepo())
	m = paste(t, m, "just some text")

	if m.sheet.Len() != 1 || !row(t, m, 0).IsEmpty() {
		t.Fatalf("expected sheet unchanged")
	}
	if !strings.Contains(m.Message, "tab-separated") {
		t.Fatalf("expected rejection message, got %q", m.Message)
	}
}

func TestPasteRoutesToEditor(t *testing.T) {
	m := setupTestSheet(t, newMemRepo())
	m = press(t, m, "e")
	m = paste(t, m, "hello")

	st, ok := m.modals.EditState()
	if !ok {
		t.Fatalf("expected editor to stay open")
	}
	if got := st.title.Value(); got != "hello" {
		t.Fatalf("expected pasted text in title field, got %q", got)
	}

	m = paste(t, m, "a\tb\nc\td")
	if m.modals.IsOpen() {
		t.Fatalf("expected table paste to close the editor")
	}
	if m.sheet.Len() != 2 || row(t, m, 1).Title != "C" {
		t.Fatalf("expected rows pasted from the edited row")
	}
}

func TestFilterTogglesAndPersists(t *testing.T) {
	repo := newMemRepo(validRow("a"), overflowRow("b"))
	m := setupTestSheet(t, repo)

	m = press(t, m, "f")
	if got := len(m.visibleRows()); got != 1 {
		t.Fatalf("expected 1 visible row, got %d", got)
	}
	if repo.setting(database.SettingOnlyErrors) != "true" {
		t.Fatalf("expected filter setting saved")
	}
	if !strings.Contains(m.View(), "[errors only]") {
		t.Fatalf("expected filter indicator in view")
	}

	m = press(t, m, "f")
	if got := len(m.visibleRows()); got != 2 {
		t.Fatalf("expected 2 visible rows, got %d", got)
	}
	if repo.setting(database.SettingOnlyErrors) != "false" {
		t.Fatalf("expected filter setting cleared")
	}
}

func TestAddRowLeavesErrorsOnlyView(t *testing.T) {
	m := setupTestSheet(t, newMemRepo(overflowRow("b")))
	m = press(t, m, "f")
	m = press(t, m, "a")

	if m.viewMode != ViewModeAll {
		t.Fatalf("expected all-rows view after adding a row")
	}
	if m.sheet.Len() != 2 || m.currentIndex() != 1 {
		t.Fatalf("expected cursor on the new row, got %d of %d", m.currentIndex(), m.sheet.Len())
	}
	if row(t, m, 1).HasError {
		t.Fatalf("new blank row must not be flagged")
	}
}

func TestCycleLevelAndUndoRedo(t *testing.T) {
	m := setupTestSheet(t, newMemRepo(validRow("a")))

	m = press(t, m, "u")
	if m.Message != "Nothing to undo" {
		t.Fatalf("expected nothing to undo, got %q", m.Message)
	}

	m = press(t, m, "l")
	if got := row(t, m, 0).Level; got != models.LevelWarning {
		t.Fatalf("expected warning, got %s", got)
	}
	m = press(t, m, "u")
	if got := row(t, m, 0).Level; got != models.LevelInformation {
		t.Fatalf("expected undo to information, got %s", got)
	}
	m = press(t, m, "U")
	if got := row(t, m, 0).Level; got != models.LevelWarning {
		t.Fatalf("expected redo to warning, got %s", got)
	}
}

func TestToggleImageNarrowsText(t *testing.T) {
	// 24 words fit four lines at 390px but need six at 270px
	repo := newMemRepo(models.Notification{ID: "a", Level: models.LevelInformation, Description: words(24)})
	m := setupTestSheet(t, repo)
	if row(t, m, 0).HasError {
		t.Fatalf("expected row to fit without image")
	}

	m = press(t, m, "i")
	r := row(t, m, 0)
	if !r.IncludeImage || !r.HasError {
		t.Fatalf("expected image row to overflow, got %+v", r.Notification)
	}
	if r.Reasons[0] != "Line count exceeded (6 / 4)" {
		t.Fatalf("unexpected reasons %v", r.Reasons)
	}
}

func TestDeleteAndClearAll(t *testing.T) {
	repo := newMemRepo(validRow("a"), overflowRow("b"), validRow("c"))
	m := setupTestSheet(t, repo)

	m = press(t, m, "d")
	if m.sheet.Len() != 2 || row(t, m, 0).ID != "b" {
		t.Fatalf("expected first row deleted")
	}

	m = press(t, m, "D")
	if !m.modals.Is(ModalClearAll) {
		t.Fatalf("expected confirmation modal")
	}
	m = press(t, m, "n")
	if m.sheet.Len() != 2 {
		t.Fatalf("cancel must keep rows")
	}

	m = press(t, m, "D")
	m = press(t, m, "y")
	if m.sheet.Len() != 1 || !row(t, m, 0).IsEmpty() {
		t.Fatalf("expected a single blank row")
	}
	if saved := repo.saved(); len(saved) != 1 {
		t.Fatalf("expected cleared sheet saved, got %d rows", len(saved))
	}
}

func TestCopySelectedRows(t *testing.T) {
	m := setupTestSheet(t, newMemRepo(validRow("a"), overflowRow("b")))

	m = press(t, m, " ")
	m = press(t, m, " ")
	if len(m.selected) != 2 {
		t.Fatalf("expected 2 selected rows, got %d", len(m.selected))
	}
	m = press(t, m, "y")

	want := ansi.SetSystemClipboard(m.sheet.Copy(0, 1))
	if got := m.deps.Clipboard.(*bytes.Buffer).String(); got != want {
		t.Fatalf("unexpected clipboard output %q", got)
	}
	if m.Message != "Copied 2 row(s)" {
		t.Fatalf("unexpected message %q", m.Message)
	}

	m = press(t, m, "esc")
	if len(m.selected) != 0 {
		t.Fatalf("expected selection cleared")
	}
}

func TestSearchFiltersRows(t *testing.T) {
	m := setupTestSheet(t, newMemRepo(validRow("a"), overflowRow("b")))

	m = press(t, m, "/")
	if !m.search.Active {
		t.Fatalf("expected search to be active")
	}
	m = press(t, m, "is:error")
	if got := m.visibleRows(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected only the error row, got %v", got)
	}
	m = press(t, m, "enter")
	if m.search.Active {
		t.Fatalf("expected enter to keep the query and leave input")
	}
	if got := len(m.visibleRows()); got != 1 {
		t.Fatalf("expected query kept, got %d rows", got)
	}
	m = press(t, m, "esc")
	if got := len(m.visibleRows()); got != 2 {
		t.Fatalf("expected query cleared, got %d rows", got)
	}
}

func TestThemeModalAppliesAndPersists(t *testing.T) {
	t.Cleanup(func() { SetTheme("default") })
	repo := newMemRepo()
	m := setupTestSheet(t, repo)

	m = press(t, m, "t")
	m = press(t, m, "down")
	m = press(t, m, "enter")

	if CurrentTheme.Name != Themes["dracula"].Name {
		t.Fatalf("expected dracula theme, got %s", CurrentTheme.Name)
	}
	if repo.setting(database.SettingTheme) != "dracula" {
		t.Fatalf("expected theme setting saved")
	}
}

func TestPreviewModalShowsMeasurements(t *testing.T) {
	m := setupTestSheet(t, newMemRepo(overflowRow("b")))
	m = press(t, m, "p")

	st, ok := m.modals.PreviewState()
	if !ok || st.Loading {
		t.Fatalf("expected loaded preview")
	}
	if len(st.Preview.Fonts) != 2 {
		t.Fatalf("expected one preview per font, got %d", len(st.Preview.Fonts))
	}
	if !strings.Contains(m.View(), "5 / 4 lines") {
		t.Fatalf("expected line counts in preview view")
	}
	m = press(t, m, "esc")
	if m.modals.IsOpen() {
		t.Fatalf("expected preview closed")
	}
}

func TestPreviewIgnoresOutdatedResult(t *testing.T) {
	m := setupTestSheet(t, newMemRepo(validRow("a")))
	m.modals.Open(&PreviewState{RowID: "a", Revision: 99, Loading: true})
	m, _ = m.Update(PreviewMsg{ID: "a", Revision: 98})

	st, _ := m.modals.PreviewState()
	if !st.Loading {
		t.Fatalf("outdated preview must be ignored")
	}
}

func TestExportWritesPDF(t *testing.T) {
	m := setupTestSheet(t, newMemRepo(validRow("a"), overflowRow("b")))
	m = press(t, m, "x")

	if !strings.HasPrefix(m.Message, "Previews written to ") {
		t.Fatalf("unexpected message %q", m.Message)
	}
	files, err := filepath.Glob(filepath.Join(m.deps.ReportDir, "*.pdf"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one pdf, got %v (%v)", files, err)
	}
}

func TestSaveFailureIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := dbmock.NewMockRepository(ctrl)
	repo.EXPECT().LoadNotifications(gomock.Any()).Return([]models.Notification{validRow("a")}, nil)
	repo.EXPECT().GetSetting(gomock.Any(), gomock.Any()).Return("", false).Times(2)
	repo.EXPECT().SaveNotifications(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	d := newTestDeps(t, nil)
	d.Repo = repo
	m := NewSheetModel(d)
	m = drain(t, m, m.Init())
	m = press(t, m, "i")

	if m.Message != "Save failed: disk full" {
		t.Fatalf("unexpected message %q", m.Message)
	}
}

func TestPersisterSkipsOvertakenSaves(t *testing.T) {
	repo := newMemRepo()
	var p persister
	ctx := context.Background()
	if err := p.save(ctx, repo, 2, []models.Notification{validRow("new")}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := p.save(ctx, repo, 1, []models.Notification{validRow("old")}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if repo.saves != 1 || repo.saved()[0].ID != "new" {
		t.Fatalf("expected only the newer snapshot saved")
	}
}

func TestFontsReadyClearsLoadingIndicator(t *testing.T) {
	d := newTestDeps(t, newMemRepo())
	d.Ready = measure.NewSignal()
	m := NewSheetModel(d)
	if !strings.Contains(m.View(), "loading fonts...") {
		t.Fatalf("expected font loading indicator")
	}
	m, _ = m.Update(FontsReadyMsg{})
	if strings.Contains(m.View(), "loading fonts...") {
		t.Fatalf("expected indicator gone")
	}
}

func TestViewShowsCountsAndReasons(t *testing.T) {
	m := setupTestSheet(t, newMemRepo(validRow("a"), overflowRow("b")))
	m = press(t, m, "down")
	view := m.View()
	for _, want := range []string{"2 rows", "1 errors", "Line count exceeded (5 / 4)", "INFO", "[e]edit"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view", want)
		}
	}
}

func TestCompactLayoutHidesIconColumn(t *testing.T) {
	m := setupTestSheet(t, newMemRepo(validRow("a")))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	if m.layout().showIcon {
		t.Fatalf("expected icon column hidden below threshold")
	}
	if strings.Contains(m.View(), "ICON") {
		t.Fatalf("expected no icon header")
	}
}

func TestClearedRowIsFlagged(t *testing.T) {
	m := setupTestSheet(t, newMemRepo(validRow("a")))

	m = press(t, m, "e")
	st, _ := m.modals.EditState()
	st.title.SetValue("")
	st.description.SetValue("")
	m = press(t, m, "ctrl+s")

	r := row(t, m, 0)
	if !r.IsEmpty() {
		t.Fatalf("expected cleared row, got %+v", r.Notification)
	}
	if r.HasError != validate.CheckRequiredFields(r.Notification) || !r.HasError {
		t.Fatalf("cleared information row must be flagged, got %+v", r.Notification)
	}
	if len(r.Reasons) == 0 || r.Reasons[0] != "Description is required" {
		t.Fatalf("unexpected reasons: %v", r.Reasons)
	}

	for _, want := range []models.Level{models.LevelWarning, models.LevelUrgent, models.LevelCritical} {
		m = press(t, m, "l")
		r = row(t, m, 0)
		if r.Level != want {
			t.Fatalf("expected %s, got %s", want, r.Level)
		}
		if r.HasError != validate.CheckRequiredFields(r.Notification) {
			t.Fatalf("%s: flag %v disagrees with field rules", want, r.HasError)
		}
	}
}

func TestEditedBlankRowIsEvaluated(t *testing.T) {
	m := setupTestSheet(t, newMemRepo(validRow("a")))
	m = press(t, m, "a")
	if row(t, m, 1).HasError {
		t.Fatalf("untouched blank row must not be flagged")
	}

	m = press(t, m, "l")
	r := row(t, m, 1)
	if r.Level != models.LevelWarning || !r.HasError {
		t.Fatalf("expected flagged warning row, got %+v", r.Notification)
	}
	if len(r.Reasons) == 0 || r.Reasons[0] != "Title is required" {
		t.Fatalf("unexpected reasons: %v", r.Reasons)
	}
}

func TestLoadReevaluatesFlaggedEmptyRow(t *testing.T) {
	repo := newMemRepo(models.Notification{ID: "a", Level: models.LevelCritical, HasError: true})
	m := setupTestSheet(t, repo)

	r := row(t, m, 0)
	if !r.HasError || len(r.Reasons) == 0 || r.Reasons[0] != "Description is required" {
		t.Fatalf("expected stored empty row to be re-evaluated, got %+v %v", r.Notification, r.Reasons)
	}
}

func TestEditorSaveIsOneUndoStep(t *testing.T) {
	m := setupTestSheet(t, newMemRepo(validRow("a")))

	m = press(t, m, "e")
	st, _ := m.modals.EditState()
	st.title.SetValue("battery low")
	st.description.SetValue("Charge soon")
	m = press(t, m, "ctrl+l")
	m = press(t, m, "ctrl+s")

	r := row(t, m, 0)
	if r.Title != "Battery Low" || r.Description != "Charge soon" || r.Level != models.LevelWarning {
		t.Fatalf("unexpected row after save: %+v", r.Notification)
	}

	m = press(t, m, "u")
	r = row(t, m, 0)
	if r.Title != "Door open" || r.Description != "Close the door" || r.Level != models.LevelInformation {
		t.Fatalf("expected one undo to restore the row, got %+v", r.Notification)
	}
	m = press(t, m, "u")
	if m.Message != "Nothing to undo" {
		t.Fatalf("expected the save to be a single undo step, got %q", m.Message)
	}
}
