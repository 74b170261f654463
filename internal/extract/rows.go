package extract

import (
	"fmt"
	"strings"

	"github.com/hyperjump/wordsim/internal/models"
)

// headerWords are first-cell values that mark a column header row.
var headerWords = map[string]bool{
	"word1":   true,
	"word 1":  true,
	"word_a":  true,
	"a":       true,
	"token_a": true,
}

// pairsFromRows maps rows of cells "a, b, [kind], [description]" to pairs.
// Empty rows and rows whose first cell starts with '#' are skipped, as is a
// header row in first position. Row numbers in errors are 1-based.
func pairsFromRows(rows [][]string) ([]models.Pair, error) {
	var pairs []models.Pair
	first := true
	for i, row := range rows {
		cells := trimCells(row)
		if len(cells) == 0 || strings.HasPrefix(cells[0], "#") {
			continue
		}
		if first {
			first = false
			if headerWords[strings.ToLower(cells[0])] {
				continue
			}
		}
		if len(cells) < 2 {
			return nil, fmt.Errorf("row %d: expected at least two tokens, got %d", i+1, len(cells))
		}
		p := models.Pair{A: cells[0], B: cells[1]}
		if len(cells) > 2 {
			p.Kind = models.Kind(cells[2])
		}
		if len(cells) > 3 {
			p.Description = cells[3]
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// trimCells trims every cell and drops trailing empty ones.
func trimCells(row []string) []string {
	cells := make([]string, len(row))
	for i, c := range row {
		cells[i] = strings.TrimSpace(c)
	}
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}
