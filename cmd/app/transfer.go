package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func exportCmd(opts *options) *cobra.Command {
	var format, outFile string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the saved sheet as a JSON backup or a preview PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			a, err := newApp(opts, false)
			if err != nil {
				return err
			}
			defer a.Close()
			db, err := a.database(ctx)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				payload, err := db.ExportSheet(ctx)
				if err != nil {
					return err
				}
				if outFile == "" {
					_, err = cmd.OutOrStdout().Write(append(payload, '\n'))
					return err
				}
				if err := os.WriteFile(outFile, payload, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", outFile)
				return nil
			case "pdf":
				ns, err := evaluable(db.LoadNotifications(ctx))
				if err != nil {
					return err
				}
				path, err := a.writePreviews(ctx, ns, outFile)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d previews to %s\n", len(ns), path)
				return nil
			}
			return fmt.Errorf("unknown export format %q (json, pdf)", format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format: json, pdf")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Output path (json defaults to stdout)")
	return cmd
}

func importCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the saved sheet with a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			payload, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			a, err := newApp(opts, false)
			if err != nil {
				return err
			}
			defer a.Close()
			db, err := a.database(ctx)
			if err != nil {
				return err
			}
			ns, err := db.ImportSheet(ctx, payload)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d notifications\n", len(ns))
			return nil
		},
	}
}
