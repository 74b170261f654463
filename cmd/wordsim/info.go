package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/wordsim/internal/cli"
	"github.com/hyperjump/wordsim/internal/storage"
	"github.com/hyperjump/wordsim/internal/vector"
)

type infoResponse struct {
	Model        vector.Stats `json:"model"`
	VocabSize    int          `json:"vocab_size"`
	Dimensions   int          `json:"dimensions"`
	ModelBytes   int64        `json:"model_bytes"`
	JournalPath  string       `json:"journal_path,omitempty"`
	JournalBytes int64        `json:"journal_bytes"`
}

func runInfo(args []string, stdout, stderr io.Writer) int {
	cfg, _, words, logger, code := parseQueryArgs("info", args, stderr)
	if code >= 0 {
		return code
	}
	defer logger.Sync()

	if len(words) > 0 {
		fmt.Fprintf(stderr, "info takes no positional arguments, got %v\n", words)
		return 1
	}
	format, err := cli.ParseOutputFormat(cfg.Output.Format)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid output format: %v\n", err)
		return 1
	}
	space, err := loadSpace(cfg, componentLogger(cfg, logger))
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load vectors: %v\n", err)
		return 1
	}
	resp := infoResponse{
		Model:      space.Stats(),
		VocabSize:  space.Len(),
		Dimensions: space.Dim(),
	}
	if resp.ModelBytes, err = storage.DiskUsageBytes(cfg.Model.Path); err != nil {
		fmt.Fprintf(stderr, "Failed to stat model: %v\n", err)
		return 1
	}
	if cfg.Journal.EnabledOrDefault() {
		resp.JournalPath = cfg.Journal.DatabasePath
		// Missing journal files count as 0.
		resp.JournalBytes, _ = storage.DiskUsageBytes(cfg.Journal.DatabasePath)
	}

	if format == cli.OutputJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			fmt.Fprintf(stderr, "Failed to write info: %v\n", err)
			return 1
		}
		return 0
	}
	writeInfoText(stdout, resp)
	return 0
}

func writeInfoText(w io.Writer, resp infoResponse) {
	header := "no"
	if resp.Model.HasHeader {
		header = fmt.Sprintf("yes (declared %d)", resp.Model.Declared)
	}
	fmt.Fprintf(w, "Model:       %s\n", resp.Model.Path)
	fmt.Fprintf(w, "Format:      %s\n", resp.Model.Format)
	fmt.Fprintf(w, "Header:      %s\n", header)
	fmt.Fprintf(w, "Vocabulary:  %d\n", resp.VocabSize)
	fmt.Fprintf(w, "Dimensions:  %d\n", resp.Dimensions)
	fmt.Fprintf(w, "Entries:     %d\n", resp.Model.Entries)
	fmt.Fprintf(w, "Duplicates:  %d\n", resp.Model.Duplicates)
	fmt.Fprintf(w, "File size:   %d bytes\n", resp.ModelBytes)
	if resp.JournalPath != "" {
		fmt.Fprintf(w, "Journal:     %s (%d bytes)\n", resp.JournalPath, resp.JournalBytes)
	}
}
