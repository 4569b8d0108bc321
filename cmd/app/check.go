package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/akyairhashvil/notifit/internal/config"
	"github.com/akyairhashvil/notifit/internal/database"
	"github.com/akyairhashvil/notifit/internal/models"
	"github.com/akyairhashvil/notifit/internal/sheet"
	"github.com/akyairhashvil/notifit/internal/validate"
)

// inputOptions select where rows come from.
type inputOptions struct {
	level   string
	image   bool
	fromDB  bool
	output  string
	outFile string
}

func addInputFlags(cmd *cobra.Command, in *inputOptions) {
	cmd.Flags().StringVarP(&in.level, "level", "l", string(models.LevelInformation), "Level for TSV rows: information, warning, urgent, critical")
	cmd.Flags().BoolVar(&in.image, "image", false, "Treat TSV rows as showing an image")
	cmd.Flags().BoolVar(&in.fromDB, "saved", false, "Use the sheet saved by the editor instead of input")
}

func checkCmd(opts *options) *cobra.Command {
	in := &inputOptions{}
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate notifications from a TSV or JSON file",
		Long: `Validate notification rows and report every invalid one.

Input is either tab-separated "title<TAB>description" lines (a literal \n in a
cell is a line break) or a JSON backup written by "export --format json".
Reads stdin when no file is given. Exits with status 1 when any row is invalid.`,
		Example: `  notifit check rows.tsv
  notifit check -l warning --image rows.tsv -o json
  pbpaste | notifit check`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, in, args)
		},
	}
	addInputFlags(cmd, in)
	cmd.Flags().StringVarP(&in.output, "output", "o", "table", "Output format: table, json, yaml")
	return cmd
}

func runCheck(cmd *cobra.Command, opts *options, in *inputOptions, args []string) error {
	ctx := commandContext(cmd)
	a, err := newApp(opts, false)
	if err != nil {
		return err
	}
	defer a.Close()

	ns, err := loadRows(ctx, cmd, a, in, args)
	if err != nil {
		return err
	}
	results, err := evaluateRows(ctx, a.validator, ns, config.DefaultFonts())
	if err != nil {
		return err
	}
	if in.fromDB {
		if err := a.storeFlags(ctx, ns, results); err != nil {
			return err
		}
	}
	report := buildCheckResult(ns, results)
	if err := outputResult(cmd.OutOrStdout(), report, in.output); err != nil {
		return err
	}
	if report.Invalid > 0 {
		return fmt.Errorf("%d of %d notifications invalid", report.Invalid, report.Total)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadRows reads the rows to check from the saved sheet, a file or stdin.
func loadRows(ctx context.Context, cmd *cobra.Command, a *app, in *inputOptions, args []string) ([]models.Notification, error) {
	if in.fromDB {
		db, err := a.database(ctx)
		if err != nil {
			return nil, err
		}
		return evaluable(db.LoadNotifications(ctx))
	}
	data, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return nil, err
	}
	return parseRows(data, models.Level(in.level), in.image)
}

func readInput(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// parseRows accepts a JSON export or tab-separated rows. TSV rows are
// normalized the same way a paste into the editor is.
func parseRows(data []byte, level models.Level, image bool) ([]models.Notification, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("no input rows")
	}
	if trimmed[0] == '{' {
		return evaluable(database.DecodeSheet(trimmed))
	}
	if !level.Valid() {
		return nil, fmt.Errorf("unknown level %q", level)
	}
	s := sheet.New()
	if _, ok := s.Paste(0, dropBlankLines(string(data))); !ok {
		return nil, errors.New(`input is neither a JSON export nor tab-separated "title<TAB>description" rows`)
	}
	ns := s.Notifications()
	for i := range ns {
		ns[i].Level = level
		ns[i].IncludeImage = image
	}
	return evaluable(ns, nil)
}

// dropBlankLines removes lines with nothing but whitespace, tabs included;
// they separate TSV blocks and are not rows.
func dropBlankLines(data string) string {
	lines := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")
	out := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

// evaluable keeps the rows the sheet would evaluate: everything except
// saved pristine rows.
func evaluable(ns []models.Notification, err error) ([]models.Notification, error) {
	if err != nil {
		return nil, err
	}
	s := sheet.New()
	jobs := s.Load(ns)
	out := make([]models.Notification, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, job.Notification)
	}
	if len(out) == 0 {
		return nil, errors.New("no input rows")
	}
	return out, nil
}

// storeFlags writes refreshed error flags of saved rows back to the database.
func (a *app) storeFlags(ctx context.Context, ns []models.Notification, results []validate.Result) error {
	db, err := a.database(ctx)
	if err != nil {
		return err
	}
	for i, n := range ns {
		if n.HasError == results[i].HasError {
			continue
		}
		if err := db.SetHasError(ctx, n.ID, results[i].HasError); err != nil {
			return err
		}
		a.logger.Debug("stored flag refreshed", zap.String("id", n.ID), zap.Bool("has_error", results[i].HasError))
	}
	return nil
}

// evaluateRows runs one evaluation per row concurrently; each uses its own
// measurement containers.
func evaluateRows(ctx context.Context, v *validate.Validator, ns []models.Notification, fonts []models.Font) ([]validate.Result, error) {
	results := make([]validate.Result, len(ns))
	errs := make([]error, len(ns))
	var wg sync.WaitGroup
	for i := range ns {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = v.Evaluate(ctx, ns[i], fonts)
		}(i)
	}
	wg.Wait()
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}

// FontLines is the measured line usage of one row in one font.
type FontLines struct {
	Font        string `json:"font" yaml:"font"`
	Title       int    `json:"title" yaml:"title"`
	Description int    `json:"description" yaml:"description"`
	Total       int    `json:"total" yaml:"total"`
	Max         int    `json:"max" yaml:"max"`
}

// RowResult is the check outcome of one row.
type RowResult struct {
	Row     int         `json:"row" yaml:"row"`
	ID      string      `json:"id" yaml:"id"`
	Level   string      `json:"level" yaml:"level"`
	Title   string      `json:"title,omitempty" yaml:"title,omitempty"`
	Valid   bool        `json:"valid" yaml:"valid"`
	Reasons []string    `json:"reasons,omitempty" yaml:"reasons,omitempty"`
	Lines   []FontLines `json:"lines" yaml:"lines"`
}

// CheckResult is the result of a check command.
type CheckResult struct {
	Total   int         `json:"total" yaml:"total"`
	Invalid int         `json:"invalid" yaml:"invalid"`
	Rows    []RowResult `json:"rows" yaml:"rows"`
}

func buildCheckResult(ns []models.Notification, results []validate.Result) CheckResult {
	out := CheckResult{Total: len(ns), Rows: make([]RowResult, 0, len(ns))}
	for i, n := range ns {
		res := results[i]
		rr := RowResult{
			Row:     i + 1,
			ID:      n.ID,
			Level:   string(n.Level),
			Title:   n.Title,
			Valid:   !res.HasError,
			Reasons: res.Reasons,
		}
		for _, m := range res.Measurements {
			rr.Lines = append(rr.Lines, FontLines{
				Font:        m.Font.ID,
				Title:       m.TitleLines,
				Description: m.DescriptionLines,
				Total:       m.Total(),
				Max:         m.MaxLines,
			})
		}
		if res.HasError {
			out.Invalid++
		}
		out.Rows = append(out.Rows, rr)
	}
	return out
}
