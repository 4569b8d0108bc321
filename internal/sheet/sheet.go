// Package sheet holds the editable table of notifications: row edits,
// clipboard exchange, undo history and the application of validation results.
package sheet

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/akyairhashvil/notifit/internal/icons"
	"github.com/akyairhashvil/notifit/internal/measure"
	"github.com/akyairhashvil/notifit/internal/models"
)

// ErrIndex is returned for a row index outside the sheet.
var ErrIndex = errors.New("row index out of range")

// Row is one notification plus its evaluation bookkeeping.
type Row struct {
	models.Notification
	// Revision increases on every content change. Results computed for an
	// older revision are discarded.
	Revision uint64
	Reasons  []string
	// Pristine rows were added blank and never edited. They are the only
	// rows left unevaluated.
	Pristine bool
}

// Job asks for an evaluation of a row at a given revision.
type Job struct {
	ID           string
	Revision     uint64
	Notification models.Notification
}

// Sheet is not safe for concurrent use; the TUI owns it from its update loop.
type Sheet struct {
	rows       []Row
	history    [][]Row
	cursor     int
	rev        uint64
	onlyErrors bool
	newID      func() string
}

type Option func(*Sheet)

// WithIDs replaces the uuid generator, mainly for tests.
func WithIDs(gen func() string) Option {
	return func(s *Sheet) { s.newID = gen }
}

// New returns a sheet with one empty row.
func New(opts ...Option) *Sheet {
	s := &Sheet{newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	s.rows = []Row{s.blank()}
	s.history = [][]Row{cloneRows(s.rows)}
	return s
}

func (s *Sheet) blank() Row {
	s.rev++
	return Row{Notification: models.NewNotification(s.newID()), Revision: s.rev, Pristine: true}
}

// Load replaces the rows and clears the history. Every row except saved
// pristine ones (empty and unflagged) is returned as a job so restored
// flags are recomputed.
func (s *Sheet) Load(ns []models.Notification) []Job {
	if len(ns) == 0 {
		s.rows = []Row{s.blank()}
		s.history = [][]Row{cloneRows(s.rows)}
		s.cursor = 0
		return nil
	}
	s.rows = make([]Row, 0, len(ns))
	for _, n := range ns {
		if n.ID == "" {
			n.ID = s.newID()
		}
		if !n.Level.Valid() {
			n.Level = models.LevelInformation
		}
		s.rev++
		s.rows = append(s.rows, Row{Notification: n, Revision: s.rev, Pristine: n.IsEmpty() && !n.HasError})
	}
	s.history = [][]Row{cloneRows(s.rows)}
	s.cursor = 0
	return s.allJobs()
}

// Len is the number of rows, ignoring the filter.
func (s *Sheet) Len() int { return len(s.rows) }

// Row returns a copy of row i.
func (s *Sheet) Row(i int) (Row, error) {
	if i < 0 || i >= len(s.rows) {
		return Row{}, ErrIndex
	}
	return cloneRow(s.rows[i]), nil
}

// Rows returns a copy of every row.
func (s *Sheet) Rows() []Row { return cloneRows(s.rows) }

// Notifications returns the plain records, in order.
func (s *Sheet) Notifications() []models.Notification {
	out := make([]models.Notification, len(s.rows))
	for i, r := range s.rows {
		out[i] = r.Notification
	}
	return out
}

// IndexOf finds the row with the given ID.
func (s *Sheet) IndexOf(id string) int {
	for i, r := range s.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// AddRow appends an empty row. Empty rows are left unevaluated until edited.
func (s *Sheet) AddRow() int {
	s.rows = append(s.rows, s.blank())
	s.commit()
	return len(s.rows) - 1
}

// Delete removes row i. Deleting the only row resets it instead.
func (s *Sheet) Delete(i int) error {
	if i < 0 || i >= len(s.rows) {
		return ErrIndex
	}
	if len(s.rows) == 1 {
		s.rows[0] = s.blank()
	} else {
		s.rows = append(s.rows[:i], s.rows[i+1:]...)
	}
	s.commit()
	return nil
}

// DeleteAll resets the sheet to one empty row.
func (s *Sheet) DeleteAll() {
	s.rows = []Row{s.blank()}
	s.commit()
}

// SetTitle stores the title in title case.
func (s *Sheet) SetTitle(i int, title string) (Job, error) {
	return s.edit(i, func(n *models.Notification) { n.Title = TitleCase(title) })
}

func (s *Sheet) SetDescription(i int, desc string) (Job, error) {
	return s.edit(i, func(n *models.Notification) { n.Description = desc })
}

// SetIcon stores the normalized icon name.
func (s *Sheet) SetIcon(i int, icon string) (Job, error) {
	return s.edit(i, func(n *models.Notification) { n.Icon = icons.Normalize(icon) })
}

func (s *Sheet) SetLevel(i int, lv models.Level) (Job, error) {
	if !lv.Valid() {
		lv = models.LevelInformation
	}
	return s.edit(i, func(n *models.Notification) { n.Level = lv })
}

func (s *Sheet) SetIncludeImage(i int, on bool) (Job, error) {
	return s.edit(i, func(n *models.Notification) { n.IncludeImage = on })
}

func (s *Sheet) edit(i int, fn func(*models.Notification)) (Job, error) {
	if i < 0 || i >= len(s.rows) {
		return Job{}, ErrIndex
	}
	r := &s.rows[i]
	fn(&r.Notification)
	s.touch(r)
	s.commit()
	return jobFor(*r), nil
}

func (s *Sheet) touch(r *Row) {
	s.rev++
	r.Revision = s.rev
	r.Pristine = false
}

// Update replaces the authored fields of row i with those of draft in a
// single edit, normalized like the individual setters. It reports false and
// records nothing when no field changes.
func (s *Sheet) Update(i int, draft models.Notification) (Job, bool, error) {
	if i < 0 || i >= len(s.rows) {
		return Job{}, false, ErrIndex
	}
	if !draft.Level.Valid() {
		draft.Level = models.LevelInformation
	}
	r := &s.rows[i]
	next := r.Notification
	next.Title = TitleCase(draft.Title)
	next.Description = draft.Description
	next.Icon = icons.Normalize(draft.Icon)
	next.Level = draft.Level
	next.IncludeImage = draft.IncludeImage
	if next == r.Notification {
		return jobFor(*r), false, nil
	}
	r.Notification = next
	s.touch(r)
	s.commit()
	return jobFor(*r), true, nil
}

// Paste writes tab-separated rows starting at row start, appending rows as
// needed. The first column is the title and the second the description;
// literal \n markers become line breaks. Data without a tab is not a table
// paste and is rejected with ok=false.
func (s *Sheet) Paste(start int, data string) (jobs []Job, ok bool) {
	if !strings.Contains(data, "\t") {
		return nil, false
	}
	lines := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")
	if strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, false
	}
	if start < 0 {
		start = 0
	}
	if start > len(s.rows) {
		start = len(s.rows)
	}
	for len(s.rows) < start+len(lines) {
		s.rows = append(s.rows, s.blank())
	}
	for k, line := range lines {
		cells := strings.Split(line, "\t")
		r := &s.rows[start+k]
		r.Title = TitleCase(measure.ExpandLineBreaks(cells[0]))
		if len(cells) > 1 {
			r.Description = measure.ExpandLineBreaks(cells[1])
		}
		s.touch(r)
		jobs = append(jobs, jobFor(*r))
	}
	s.commit()
	return jobs, true
}

// Copy renders rows as tab-separated title/description lines with line
// breaks escaped as \n, the inverse of Paste.
func (s *Sheet) Copy(indices ...int) string {
	lines := make([]string, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(s.rows) {
			lines = append(lines, "\t")
			continue
		}
		r := s.rows[i]
		lines = append(lines, escapeBreaks(r.Title)+"\t"+escapeBreaks(r.Description))
	}
	return strings.Join(lines, "\n")
}

func escapeBreaks(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}

// ApplyResult stores an evaluation outcome if it was computed for the
// row's current revision. It reports whether the result was accepted.
func (s *Sheet) ApplyResult(id string, revision uint64, hasError bool, reasons []string) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	r := &s.rows[i]
	if r.Revision != revision {
		return false
	}
	r.HasError = hasError
	r.Reasons = append([]string(nil), reasons...)
	if s.cursor >= 0 && s.cursor < len(s.history) {
		// keep the current snapshot's flags in step so undo restores them
		for k := range s.history[s.cursor] {
			if s.history[s.cursor][k].ID == id {
				s.history[s.cursor][k].HasError = hasError
				s.history[s.cursor][k].Reasons = append([]string(nil), reasons...)
			}
		}
	}
	return true
}

// Jobs returns evaluation jobs for every row that is not pristine.
func (s *Sheet) Jobs() []Job { return s.allJobs() }

func (s *Sheet) allJobs() []Job {
	var jobs []Job
	for _, r := range s.rows {
		if r.Pristine {
			continue
		}
		jobs = append(jobs, jobFor(r))
	}
	return jobs
}

func jobFor(r Row) Job {
	return Job{ID: r.ID, Revision: r.Revision, Notification: r.Notification}
}

// SetOnlyErrors toggles the errors-only filter.
func (s *Sheet) SetOnlyErrors(on bool) { s.onlyErrors = on }

func (s *Sheet) OnlyErrors() bool { return s.onlyErrors }

// Visible returns the indices of the rows the filter lets through.
func (s *Sheet) Visible() []int {
	out := make([]int, 0, len(s.rows))
	for i, r := range s.rows {
		if s.onlyErrors && !r.HasError {
			continue
		}
		out = append(out, i)
	}
	return out
}

// ErrorCount is the number of rows currently flagged.
func (s *Sheet) ErrorCount() int {
	n := 0
	for _, r := range s.rows {
		if r.HasError {
			n++
		}
	}
	return n
}

// TitleCase lower-cases the title and capitalizes each space-separated word.
// Titles containing Hangul syllables are returned unchanged.
func TitleCase(s string) string {
	if s == "" || hasHangul(s) {
		return s
	}
	words := strings.Split(strings.ToLower(s), " ")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func hasHangul(s string) bool {
	for _, r := range s {
		if r >= 0xAC00 && r <= 0xD7A3 {
			return true
		}
	}
	return false
}

func cloneRow(r Row) Row {
	r.Reasons = append([]string(nil), r.Reasons...)
	return r
}

func cloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = cloneRow(r)
	}
	return out
}
