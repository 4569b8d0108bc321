package sheet

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akyairhashvil/notifit/internal/models"
)

func newSheet() *Sheet {
	n := 0
	return New(WithIDs(func() string {
		n++
		return fmt.Sprintf("row-%d", n)
	}))
}

func TestNewSheetHasOneEmptyRow(t *testing.T) {
	s := newSheet()
	require.Equal(t, 1, s.Len())
	r, err := s.Row(0)
	require.NoError(t, err)
	assert.True(t, r.IsEmpty())
	assert.Equal(t, models.LevelInformation, r.Level)
	assert.False(t, s.CanUndo())
}

func TestTitleCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"battery LOW", "Battery Low"},
		{"check  engine", "Check  Engine"},
		{"éclair time", "Éclair Time"},
		{"배터리 low", "배터리 low"},
		{"e-call active", "E-call Active"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TitleCase(tt.in), tt.in)
	}
}

func TestEditsNormalizeAndBumpRevision(t *testing.T) {
	s := newSheet()
	before, _ := s.Row(0)

	job, err := s.SetTitle(0, "door OPEN")
	require.NoError(t, err)
	assert.Equal(t, "Door Open", job.Notification.Title)
	assert.Greater(t, job.Revision, before.Revision)

	job, err = s.SetIcon(0, "Seat_Belt")
	require.NoError(t, err)
	assert.Equal(t, "seat_belt.svg", job.Notification.Icon)

	job, err = s.SetLevel(0, models.Level("nope"))
	require.NoError(t, err)
	assert.Equal(t, models.LevelInformation, job.Notification.Level)

	_, err = s.SetDescription(3, "x")
	assert.ErrorIs(t, err, ErrIndex)
}

func TestDeleteLastRowResets(t *testing.T) {
	s := newSheet()
	_, _ = s.SetTitle(0, "hello")
	require.NoError(t, s.Delete(0))
	require.Equal(t, 1, s.Len())
	r, _ := s.Row(0)
	assert.True(t, r.IsEmpty())

	s.AddRow()
	s.AddRow()
	require.NoError(t, s.Delete(1))
	assert.Equal(t, 2, s.Len())
	assert.ErrorIs(t, s.Delete(5), ErrIndex)

	s.DeleteAll()
	assert.Equal(t, 1, s.Len())
}

func TestPasteAppendsRowsAndExpandsBreaks(t *testing.T) {
	s := newSheet()
	data := "battery low\tCharge soon\\nor stop\nDOOR open\t\n"

	jobs, ok := s.Paste(0, data)
	require.True(t, ok)
	require.Len(t, jobs, 2)
	require.Equal(t, 2, s.Len())

	r0, _ := s.Row(0)
	assert.Equal(t, "Battery Low", r0.Title)
	assert.Equal(t, "Charge soon\nor stop", r0.Description)
	r1, _ := s.Row(1)
	assert.Equal(t, "Door Open", r1.Title)
	assert.Equal(t, "", r1.Description)
}

func TestPasteKeepsBlankRowsInside(t *testing.T) {
	s := newSheet()
	jobs, ok := s.Paste(0, "a\tb\n\nc\td\n")
	require.True(t, ok)
	assert.Len(t, jobs, 3)
	r1, _ := s.Row(1)
	assert.True(t, r1.IsEmpty())
}

func TestPasteWithoutTabIsRejected(t *testing.T) {
	s := newSheet()
	_, ok := s.Paste(0, "just text")
	assert.False(t, ok)
	assert.False(t, s.CanUndo())
}

func TestPasteStartsAtRow(t *testing.T) {
	s := newSheet()
	s.AddRow()
	_, ok := s.Paste(9, "x\ty")
	require.True(t, ok)
	assert.Equal(t, 3, s.Len())
	r, _ := s.Row(2)
	assert.Equal(t, "X", r.Title)
}

func TestCopyIsInverseOfPaste(t *testing.T) {
	s := newSheet()
	_, _ = s.Paste(0, "One\tfirst\\nline\nTwo\tsecond")
	out := s.Copy(0, 1)
	assert.Equal(t, "One\tfirst\\nline\nTwo\tsecond", out)

	other := newSheet()
	_, ok := other.Paste(0, out)
	require.True(t, ok)
	assert.Equal(t, s.Notifications()[1].Description, other.Notifications()[1].Description)
	assert.Equal(t, "\t", s.Copy(7))
}

func TestApplyResultDiscardsStaleRevision(t *testing.T) {
	s := newSheet()
	old, _ := s.SetDescription(0, "first")
	latest, _ := s.SetDescription(0, "second")

	assert.True(t, s.ApplyResult(latest.ID, latest.Revision, true, []string{"Line count exceeded (5 / 4)"}))
	assert.False(t, s.ApplyResult(old.ID, old.Revision, false, nil))

	r, _ := s.Row(0)
	assert.True(t, r.HasError)
	assert.Equal(t, []string{"Line count exceeded (5 / 4)"}, r.Reasons)
	assert.False(t, s.ApplyResult("missing", 1, true, nil))
}

func TestFilterAndErrorCount(t *testing.T) {
	s := newSheet()
	s.AddRow()
	s.AddRow()
	j, _ := s.SetTitle(1, "x")
	s.ApplyResult(j.ID, j.Revision, true, []string{"Description is required"})

	assert.Equal(t, 1, s.ErrorCount())
	assert.Equal(t, []int{0, 1, 2}, s.Visible())
	s.SetOnlyErrors(true)
	assert.True(t, s.OnlyErrors())
	assert.Equal(t, []int{1}, s.Visible())
}

func TestUndoRedo(t *testing.T) {
	s := newSheet()
	_, _ = s.SetTitle(0, "first")
	_, _ = s.SetTitle(0, "second")

	jobs, ok := s.Undo()
	require.True(t, ok)
	require.Len(t, jobs, 1)
	r, _ := s.Row(0)
	assert.Equal(t, "First", r.Title)

	_, ok = s.Redo()
	require.True(t, ok)
	r, _ = s.Row(0)
	assert.Equal(t, "Second", r.Title)

	_, ok = s.Redo()
	assert.False(t, ok)

	_, _ = s.Undo()
	_, _ = s.SetTitle(0, "third")
	assert.False(t, s.CanRedo())
}

func TestUndoInvalidatesInFlightResults(t *testing.T) {
	s := newSheet()
	_, _ = s.SetTitle(0, "first")
	pending, _ := s.SetTitle(0, "second")
	_, _ = s.Undo()
	assert.False(t, s.ApplyResult(pending.ID, pending.Revision, true, nil))
}

func TestLoadReplacesRows(t *testing.T) {
	s := newSheet()
	jobs := s.Load([]models.Notification{
		{ID: "a", Level: models.LevelWarning, Title: "T"},
		{Level: models.Level("junk")},
	})
	require.Equal(t, 2, s.Len())
	assert.Len(t, jobs, 1)
	r, _ := s.Row(1)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, models.LevelInformation, r.Level)
	assert.Equal(t, 0, s.IndexOf("a"))
	assert.False(t, s.CanUndo())

	assert.Nil(t, s.Load(nil))
	assert.Equal(t, 1, s.Len())
}

func TestHistoryIsBounded(t *testing.T) {
	s := newSheet()
	for i := 0; i < maxHistory+20; i++ {
		_, _ = s.SetDescription(0, fmt.Sprint(i))
	}
	assert.LessOrEqual(t, len(s.history), maxHistory)
	assert.True(t, s.CanUndo())
}

func TestUpdateIsOneEdit(t *testing.T) {
	s := newSheet()
	_, _ = s.SetTitle(0, "door open")
	_, _ = s.SetDescription(0, "Close the door")
	before, _ := s.Row(0)

	draft := before.Notification
	draft.Title = "engine HOT"
	draft.Description = "Stop now"
	draft.Icon = "Engine_Temp"
	draft.Level = models.Level("loud")
	draft.IncludeImage = true
	job, changed, err := s.Update(0, draft)
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, "Engine Hot", job.Notification.Title)
	assert.Equal(t, "engine_temp.svg", job.Notification.Icon)
	assert.Equal(t, models.LevelInformation, job.Notification.Level)
	assert.True(t, job.Notification.IncludeImage)
	assert.Greater(t, job.Revision, before.Revision)

	_, ok := s.Undo()
	require.True(t, ok)
	r, _ := s.Row(0)
	assert.Equal(t, before.Notification, r.Notification)

	_, _ = s.Redo()
	r, _ = s.Row(0)
	_, changed, err = s.Update(0, r.Notification)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.False(t, s.CanRedo())
	_, _ = s.Undo()
	r, _ = s.Row(0)
	assert.Equal(t, "Door Open", r.Title, "an unchanged update records no history")

	_, _, err = s.Update(5, draft)
	assert.ErrorIs(t, err, ErrIndex)
}

func TestPristineRows(t *testing.T) {
	s := newSheet()
	r, _ := s.Row(0)
	assert.True(t, r.Pristine)
	assert.Empty(t, s.Jobs())

	i := s.AddRow()
	_, _ = s.SetTitle(i, "x")
	_, _ = s.SetTitle(i, "")
	r, _ = s.Row(i)
	assert.False(t, r.Pristine)
	assert.True(t, r.IsEmpty())
	jobs := s.Jobs()
	require.Len(t, jobs, 1, "a cleared row is still evaluated")
	assert.Equal(t, r.ID, jobs[0].ID)

	jobs = s.Load([]models.Notification{
		{ID: "a", Level: models.LevelInformation},
		{ID: "b", Level: models.LevelInformation, HasError: true},
	})
	require.Len(t, jobs, 1)
	assert.Equal(t, "b", jobs[0].ID)
}
