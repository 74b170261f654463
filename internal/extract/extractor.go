// Package extract reads query pair lists from text, CSV, spreadsheet, and YAML files.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/wordsim/internal/models"
)

// Extractor turns pair list files into validated pairs.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the file at path and returns its pairs in file order.
// Returns an error if the file cannot be read, a row is malformed, or no pairs are found.
func (e *Extractor) Extract(path string) ([]models.Pair, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	pairs, err := e.ExtractBytes(content, ext)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pairs, nil
}

// ExtractBytes parses content based on the given extension.
// ext should include the leading dot (e.g. ".csv").
func (e *Extractor) ExtractBytes(content []byte, ext string) ([]models.Pair, error) {
	var (
		pairs []models.Pair
		err   error
	)
	switch ext {
	case ".yaml", ".yml":
		pairs, err = pairsFromYAML(content)
	case ".xlsx":
		var rows [][]string
		if rows, err = rowsFromExcel(content); err == nil {
			pairs, err = pairsFromRows(rows)
		}
	case ".csv":
		var rows [][]string
		if rows, err = rowsFromCSV(content); err == nil {
			pairs, err = pairsFromRows(rows)
		}
	default:
		// .txt, .tsv and anything else: whitespace or tab separated columns
		pairs, err = pairsFromRows(rowsFromPlain(content))
	}
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no pairs found")
	}
	return pairs, nil
}
