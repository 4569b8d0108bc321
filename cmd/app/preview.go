package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/akyairhashvil/notifit/internal/config"
	"github.com/akyairhashvil/notifit/internal/measure"
	"github.com/akyairhashvil/notifit/internal/models"
	"github.com/akyairhashvil/notifit/internal/report"
	"github.com/akyairhashvil/notifit/internal/util"
)

func previewCmd(opts *options) *cobra.Command {
	in := &inputOptions{}
	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Render notification previews to a PDF",
		Long: `Measure every row in each catalog font and draw the popups to a PDF.

Takes the same input as check. Without a file and with stdin attached to a
terminal, the sheet saved by the editor is rendered.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !in.fromDB {
				if f, ok := cmd.InOrStdin().(*os.File); ok && isTerminal(f) {
					in.fromDB = true
				}
			}
			return runPreview(cmd, opts, in, args)
		},
	}
	addInputFlags(cmd, in)
	cmd.Flags().StringVarP(&in.outFile, "output", "o", "", "PDF path (default: timestamped file in the previews folder)")
	return cmd
}

func runPreview(cmd *cobra.Command, opts *options, in *inputOptions, args []string) error {
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
	path, err := a.writePreviews(ctx, ns, in.outFile)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d previews to %s\n", len(ns), path)
	return nil
}

// writePreviews evaluates ns and renders the PDF, returning its path.
func (a *app) writePreviews(ctx context.Context, ns []models.Notification, path string) (string, error) {
	results, err := evaluateRows(ctx, a.validator, ns, config.DefaultFonts())
	if err != nil {
		return "", err
	}
	previews := make([]report.Preview, len(ns))
	for i, n := range ns {
		previews[i] = report.Build(n, results[i])
	}
	if path == "" {
		path = util.ReportPath(util.ReportsDir(config.AppName), config.AppName, time.Now())
	}
	path = util.ExpandHome(path)
	if err := report.WritePreviewsFile(path, previews, report.Options{Fonts: a.fonts, Logger: a.logger}); err != nil {
		return "", err
	}
	return path, nil
}

// FontStatus describes how one catalog font is measured.
type FontStatus struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
	Status string `json:"status" yaml:"status"`
}

func fontsCmd(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "fonts",
		Short: "Show the font catalog and which files are loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, false)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.fonts.Wait(commandContext(cmd)); err != nil {
				return err
			}
			return outputResult(cmd.OutOrStdout(), a.fontStatuses(), output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, json, yaml")
	return cmd
}

func (a *app) fontStatuses() []FontStatus {
	var out []FontStatus
	for _, f := range config.DefaultFonts() {
		fs := FontStatus{ID: f.ID, Name: f.DisplayName, File: a.settings.Fonts[f.ID].Regular}
		switch err := a.fonts.Status(f.ID); {
		case err == nil:
			fs.Status = "loaded"
		case errors.Is(err, measure.ErrUnknownFont):
			fs.Status = "not configured (Helvetica fallback)"
		default:
			fs.Status = "error: " + err.Error()
		}
		out = append(out, fs)
	}
	return out
}
