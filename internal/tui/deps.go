package tui

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/akyairhashvil/notifit/internal/database"
	"github.com/akyairhashvil/notifit/internal/measure"
	"github.com/akyairhashvil/notifit/internal/models"
	"github.com/akyairhashvil/notifit/internal/sheet"
	"github.com/akyairhashvil/notifit/internal/validate"
)

// Evaluator produces the validation result of one notification.
type Evaluator interface {
	Evaluate(ctx context.Context, n models.Notification, fonts []models.Font) (validate.Result, error)
}

// Deps are the collaborators of the TUI. Repo, Ready and FontSource may be nil.
type Deps struct {
	Ctx        context.Context
	Repo       database.Repository
	Evaluator  Evaluator
	Fonts      []models.Font
	FontSource measure.FontSource
	Ready      measure.Readiness
	Logger     *zap.Logger
	ReportDir  string
	Clipboard  io.Writer
	Now        func() time.Time
	Theme      string
	SheetOpts  []sheet.Option

	saver persister
}

func (d *Deps) defaults() {
	if d.Ctx == nil {
		d.Ctx = context.Background()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.ReportDir == "" {
		d.ReportDir = "."
	}
}
