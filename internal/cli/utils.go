// Package cli provides output writers for the wordsim command.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hyperjump/wordsim/internal/models"
	"github.com/hyperjump/wordsim/pkg/utils"
)

// OutputFormat is the format for run output.
type OutputFormat string

const (
	// OutputText is one "<value> \"<label>\"" line per result (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat converts a flag or config value to an OutputFormat.
// Empty input means OutputText.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return OutputText, nil
	case "json":
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (supported: text, json)", s)
	}
}

// WriteRun writes run to w in the given format. In text mode, failed
// results go to errw as "error: <label>: <message>"; in JSON mode they stay
// inside the encoded run.
func WriteRun(w, errw io.Writer, run *models.Run, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	default:
		return writeRunText(w, errw, run)
	}
}

func writeRunText(w, errw io.Writer, run *models.Run) error {
	for _, res := range run.Results {
		if !res.OK() {
			if errw != nil {
				fmt.Fprintf(errw, "error: %s: %s\n", res.Pair.Label(), res.Error)
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%.6f %q\n", res.Value, res.Pair.Label()); err != nil {
			return err
		}
	}
	return nil
}

// PrintRun prints run in text format to stdout, failures to stderr.
func PrintRun(run *models.Run) {
	_ = WriteRun(os.Stdout, os.Stderr, run, OutputText)
}

// WriteHistory writes a journal listing, newest first as given.
func WriteHistory(w io.Writer, runs []*models.Run, format OutputFormat) error {
	if format == OutputJSON {
		if runs == nil {
			runs = []*models.Run{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}
	for _, run := range runs {
		count := run.ResultCount
		if count == 0 {
			count = len(run.Results)
		}
		if _, err := fmt.Fprintf(w, "%s  %s  %-40s  %d queries\n",
			run.ID,
			run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			utils.Truncate(run.ModelPath, 40),
			count); err != nil {
			return err
		}
	}
	return nil
}
