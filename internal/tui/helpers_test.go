package tui

import (
	"bytes"
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/akyairhashvil/notifit/internal/config"
	"github.com/akyairhashvil/notifit/internal/measure/measuretest"
	"github.com/akyairhashvil/notifit/internal/models"
	"github.com/akyairhashvil/notifit/internal/overflow"
	"github.com/akyairhashvil/notifit/internal/sheet"
	"github.com/akyairhashvil/notifit/internal/validate"
)

// memRepo is an in-memory Repository.
type memRepo struct {
	mu       sync.Mutex
	rows     []models.Notification
	settings map[string]string
	saves    int
	loadErr  error
}

func newMemRepo(rows ...models.Notification) *memRepo {
	return &memRepo{rows: rows, settings: map[string]string{}}
}

func (r *memRepo) SaveNotifications(_ context.Context, ns []models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append([]models.Notification(nil), ns...)
	r.saves++
	return nil
}

func (r *memRepo) LoadNotifications(context.Context) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return append([]models.Notification(nil), r.rows...), nil
}

func (r *memRepo) GetSetting(_ context.Context, key string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.settings[key]
	return v, ok
}

func (r *memRepo) SetSetting(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings[key] = value
	return nil
}

func (r *memRepo) saved() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Notification(nil), r.rows...)
}

func (r *memRepo) setting(key string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings[key]
}

// sequentialIDs makes row IDs predictable.
func sequentialIDs() sheet.Option {
	n := 0
	return sheet.WithIDs(func() string {
		n++
		return "row-" + strconv.Itoa(n)
	})
}

func newTestDeps(t *testing.T, repo *memRepo) *Deps {
	t.Helper()
	ev := validate.New(overflow.New(measuretest.NewSurface(), nil), nil)
	return &Deps{
		Repo:      repo,
		Evaluator: ev,
		Fonts:     config.DefaultFonts(),
		ReportDir: t.TempDir(),
		Clipboard: &bytes.Buffer{},
		Now:       func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) },
		SheetOpts: []sheet.Option{sequentialIDs()},
	}
}

// setupTestSheet returns a loaded sheet model with all evaluations applied.
func setupTestSheet(t *testing.T, repo *memRepo) SheetModel {
	t.Helper()
	m := NewSheetModel(newTestDeps(t, repo))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return drain(t, m, m.Init())
}

func runCmd(cmd tea.Cmd) tea.Msg {
	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()
	select {
	case msg := <-out:
		return msg
	case <-time.After(200 * time.Millisecond):
		// cursor blink ticks never settle
		return nil
	}
}

// drain runs cmd and every command it leads to, feeding messages back into m.
func drain(t *testing.T, m SheetModel, cmd tea.Cmd) SheetModel {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 1000 {
			t.Fatalf("commands did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := runCmd(c).(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
	}
	return m
}

func press(t *testing.T, m SheetModel, key string) SheetModel {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		msg = tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+l":
		msg = tea.KeyMsg{Type: tea.KeyCtrlL}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return drain(t, next, cmd)
}

func paste(t *testing.T, m SheetModel, data string) SheetModel {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(data), Paste: true})
	return drain(t, next, cmd)
}

func row(t *testing.T, m SheetModel, i int) sheet.Row {
	t.Helper()
	r, err := m.sheet.Row(i)
	if err != nil {
		t.Fatalf("Row(%d): %v", i, err)
	}
	return r
}

// words repeats "word" n times.
func words(n int) string {
	var b bytes.Buffer
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("word")
	}
	return b.String()
}

func validRow(id string) models.Notification {
	return models.Notification{ID: id, Level: models.LevelInformation, Title: "Door open", Description: "Close the door"}
}

func overflowRow(id string) models.Notification {
	return models.Notification{ID: id, Level: models.LevelInformation, Description: words(30)}
}
