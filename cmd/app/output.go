package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/akyairhashvil/notifit/internal/util"
)

// outputResult writes result in the requested format.
func outputResult(w io.Writer, result interface{}, format string) error {
	switch format {
	case "json":
		return outputJSON(w, result)
	case "yaml":
		return outputYAML(w, result)
	case "table", "":
		return outputTable(w, result)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func outputJSON(w io.Writer, result interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputYAML(w io.Writer, result interface{}) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func outputTable(w io.Writer, result interface{}) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	switch r := result.(type) {
	case CheckResult:
		return outputCheckTable(tw, r)
	case []FontStatus:
		return outputFontsTable(tw, r)
	default:
		return outputJSON(w, result)
	}
}

func outputCheckTable(w *tabwriter.Writer, r CheckResult) error {
	fmt.Fprintln(w, "ROW\tLEVEL\tSTATUS\tLINES\tTITLE\tREASONS")
	for _, row := range r.Rows {
		status := "ok"
		if !row.Valid {
			status = "INVALID"
		}
		lines := make([]string, 0, len(row.Lines))
		for _, l := range row.Lines {
			lines = append(lines, fmt.Sprintf("%d/%d", l.Total, l.Max))
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			row.Row, row.Level, status, strings.Join(lines, " "),
			util.FirstLine(row.Title), strings.Join(row.Reasons, "; "))
	}
	fmt.Fprintf(w, "\n%d rows, %d invalid\n", r.Total, r.Invalid)
	return nil
}

func outputFontsTable(w *tabwriter.Writer, fonts []FontStatus) error {
	fmt.Fprintln(w, "FONT\tNAME\tFILE\tSTATUS")
	for _, f := range fonts {
		file := f.File
		if file == "" {
			file = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.ID, f.Name, file, f.Status)
	}
	return nil
}
