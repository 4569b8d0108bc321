package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/akyairhashvil/notifit/internal/config"
	"github.com/akyairhashvil/notifit/internal/database"
	"github.com/akyairhashvil/notifit/internal/models"
	"github.com/akyairhashvil/notifit/internal/report"
	"github.com/akyairhashvil/notifit/internal/sheet"
	"github.com/akyairhashvil/notifit/internal/util"
	"github.com/akyairhashvil/notifit/internal/validate"
)

// --- Messages ---

type SheetLoadedMsg struct {
	Rows       []models.Notification
	Theme      string
	OnlyErrors bool
	Err        error
}

type EvalResultMsg struct {
	ID       string
	Revision uint64
	Result   validate.Result
	Err      error
}

type FontsReadyMsg struct{ Err error }

type SavedMsg struct {
	Seq uint64
	Err error
}

type PreviewMsg struct {
	ID       string
	Revision uint64
	Preview  report.Preview
	Err      error
}

type ExportedMsg struct {
	Path string
	Err  error
}

type CopiedMsg struct {
	Rows int
	Err  error
}

func loadCmd(d *Deps) tea.Cmd {
	return func() tea.Msg {
		if d.Repo == nil {
			return SheetLoadedMsg{}
		}
		rows, err := d.Repo.LoadNotifications(d.Ctx)
		if err != nil {
			return SheetLoadedMsg{Err: err}
		}
		theme, _ := d.Repo.GetSetting(d.Ctx, database.SettingTheme)
		onlyErrors, _ := d.Repo.GetSetting(d.Ctx, database.SettingOnlyErrors)
		flag, _ := strconv.ParseBool(onlyErrors)
		return SheetLoadedMsg{Rows: rows, Theme: theme, OnlyErrors: flag}
	}
}

func waitFontsCmd(d *Deps) tea.Cmd {
	if d.Ready == nil {
		return nil
	}
	return func() tea.Msg {
		return FontsReadyMsg{Err: d.Ready.Wait(d.Ctx)}
	}
}

func evaluateCmd(d *Deps, job sheet.Job) tea.Cmd {
	return func() tea.Msg {
		res, err := d.Evaluator.Evaluate(d.Ctx, job.Notification, d.Fonts)
		return EvalResultMsg{ID: job.ID, Revision: job.Revision, Result: res, Err: err}
	}
}

func previewCmd(d *Deps, job sheet.Job) tea.Cmd {
	return func() tea.Msg {
		res, err := d.Evaluator.Evaluate(d.Ctx, job.Notification, d.Fonts)
		if err != nil {
			return PreviewMsg{ID: job.ID, Revision: job.Revision, Err: err}
		}
		return PreviewMsg{ID: job.ID, Revision: job.Revision, Preview: report.Build(job.Notification, res)}
	}
}

// persister drops saves that were overtaken by a newer snapshot.
type persister struct {
	mu   sync.Mutex
	last uint64
}

func (p *persister) save(ctx context.Context, repo database.NotificationRepository, seq uint64, ns []models.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if seq <= p.last {
		return nil
	}
	if err := repo.SaveNotifications(ctx, ns); err != nil {
		return err
	}
	p.last = seq
	return nil
}

func saveCmd(d *Deps, seq uint64, ns []models.Notification) tea.Cmd {
	if d.Repo == nil {
		return nil
	}
	return func() tea.Msg {
		return SavedMsg{Seq: seq, Err: d.saver.save(d.Ctx, d.Repo, seq, ns)}
	}
}

func settingCmd(d *Deps, key, value string) tea.Cmd {
	if d.Repo == nil {
		return nil
	}
	return func() tea.Msg {
		util.LogError(d.Logger, "save setting "+key, d.Repo.SetSetting(d.Ctx, key, value))
		return nil
	}
}

// copyCmd hands text to the terminal clipboard through OSC 52.
func copyCmd(d *Deps, text string, rows int) tea.Cmd {
	return func() tea.Msg {
		if d.Clipboard == nil {
			return CopiedMsg{Err: errors.New("no clipboard available")}
		}
		_, err := fmt.Fprint(d.Clipboard, ansi.SetSystemClipboard(text))
		return CopiedMsg{Rows: rows, Err: err}
	}
}

func exportCmd(d *Deps, jobs []sheet.Job) tea.Cmd {
	return func() tea.Msg {
		previews := make([]report.Preview, 0, len(jobs))
		for _, job := range jobs {
			res, err := d.Evaluator.Evaluate(d.Ctx, job.Notification, d.Fonts)
			if err != nil {
				return ExportedMsg{Err: err}
			}
			previews = append(previews, report.Build(job.Notification, res))
		}
		path := util.ReportPath(d.ReportDir, config.AppName, d.Now())
		err := report.WritePreviewsFile(path, previews, report.Options{
			Fonts:  d.FontSource,
			Logger: d.Logger,
			Now:    d.Now,
		})
		if err != nil {
			return ExportedMsg{Err: err}
		}
		d.Logger.Info("previews exported", zap.String("path", path), zap.Int("rows", len(previews)))
		return ExportedMsg{Path: path}
	}
}
