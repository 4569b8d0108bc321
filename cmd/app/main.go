// notifit checks vehicle notification texts against the dashboard popup
// rules and line budget.
//
// Usage:
//
//	notifit                          # interactive sheet editor
//	notifit check rows.tsv           # validate rows, exit 1 when any is invalid
//	notifit preview rows.tsv -o out.pdf
//	notifit fonts
//	notifit export --format json > backup.json
//	notifit import backup.json
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/akyairhashvil/notifit/internal/config"
	"github.com/akyairhashvil/notifit/internal/tui"
	"github.com/akyairhashvil/notifit/internal/util"
)

// options are the persistent flags shared by every command.
type options struct {
	configFile string
	dbPath     string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Validate vehicle notification texts",
		Long: `notifit edits and validates dashboard notification texts.

Every row is checked against its level's field rules and measured in each
catalog font to make sure title and description fit the popup line budget.
Without a sub-command it opens the interactive sheet editor.`,
		Version:       tui.VersionLabel(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Additional TOML config file")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(checkCmd(opts))
	rootCmd.AddCommand(previewCmd(opts))
	rootCmd.AddCommand(fontsCmd(opts))
	rootCmd.AddCommand(exportCmd(opts))
	rootCmd.AddCommand(importCmd(opts))
	return rootCmd
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func runTUI(ctx context.Context, opts *options) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errors.New("not a terminal; run a sub-command such as check (see --help)")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a, err := newApp(opts, true)
	if err != nil {
		return err
	}
	defer a.Close()
	db, err := a.database(ctx)
	if err != nil {
		return err
	}

	deps := &tui.Deps{
		Ctx:        ctx,
		Repo:       db,
		Evaluator:  a.validator,
		Fonts:      config.DefaultFonts(),
		FontSource: a.fonts,
		Ready:      a.fonts,
		Logger:     a.logger,
		ReportDir:  util.ReportsDir(config.AppName),
		Clipboard:  os.Stdout,
		Theme:      a.settings.Theme,
	}
	p := tea.NewProgram(tui.NewMainModel(deps), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
