package tabular

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"stock-reconciler/core/utils"
)

// Delimiter is the field separator of every export handled by the decoder.
const Delimiter = ';'

// Table is a decoded delimited file: a header row plus data rows.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// Decode reads semicolon-delimited text. Every line is one record: line
// endings are normalized, blank lines are skipped and every cell is trimmed.
// A header row is required.
func Decode(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read delimited text: %w", err)
	}
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	t := &Table{index: make(map[string]int)}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		record := SplitLine(line)

		if t.Header == nil {
			record[0] = utils.StripBOM(record[0])
			t.Header = record
			for i, h := range record {
				key := utils.Fold(h)
				if _, exists := t.index[key]; !exists {
					t.index[key] = i
				}
			}
			continue
		}
		t.Rows = append(t.Rows, record)
	}

	if t.Header == nil {
		return nil, ErrEmptyInput
	}
	return t, nil
}

// SplitLine splits one line into trimmed cells. A double quote toggles quoting
// anywhere in the line and "" inside quotes is a literal quote; the delimiter
// only splits outside quotes. An unterminated quote runs to the end of the
// line, never into the next one.
func SplitLine(line string) []string {
	var (
		cells []string
		cur   strings.Builder
		inQ   bool
	)
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQ && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQ = !inQ
			}
		case ch == Delimiter && !inQ:
			cells = append(cells, cleanCell(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	return append(cells, cleanCell(cur.String()))
}

func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return s
}

// Pick returns the index of the first header matching one of names, compared
// case- and diacritic-insensitively, or -1 when none match.
func (t *Table) Pick(names ...string) int {
	for _, n := range names {
		if i, ok := t.index[utils.Fold(n)]; ok {
			return i
		}
	}
	return -1
}

// Cell returns the cell at column i of row, or "" when out of range.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// ParseQuantity converts a cell to a decimal. A comma decimal separator is
// accepted; empty or non-numeric values become zero.
func ParseQuantity(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return decimal.Zero
	}
	return d
}
