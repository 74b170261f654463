package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"
)

// rowsFromPlain splits each line into cells. Lines containing a tab are split
// on tabs; otherwise on whitespace, with everything after the third field
// joined back into the description.
// Invalid UTF-8 sequences are replaced with the replacement character.
func rowsFromPlain(content []byte) [][]string {
	text := string(content)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "\ufffd")
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	rows := make([][]string, len(lines))
	for i, line := range lines {
		if strings.Contains(line, "\t") {
			rows[i] = strings.Split(line, "\t")
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 4 {
			fields = append(fields[:3], strings.Join(fields[3:], " "))
		}
		rows[i] = fields
	}
	return rows
}

func rowsFromCSV(content []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	r.Comment = '#'
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}
	return rows, nil
}
