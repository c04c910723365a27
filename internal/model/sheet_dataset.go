package model

import (
	"fmt"
	"strconv"
	"strings"
)

// SheetDataset is the tabular data pulled from one worksheet. The
// first spreadsheet row becomes Columns; everything below becomes
// Rows, padded to the column count.
type SheetDataset struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// ColumnType reports "number" when every non-empty cell of the column
// parses as a float, otherwise "text".
func (d *SheetDataset) ColumnType(col int) string {
	if col < 0 || col >= len(d.Columns) {
		return "text"
	}
	seen := false
	for _, row := range d.Rows {
		if col >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		seen = true
		if _, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64); err != nil {
			return "text"
		}
	}
	if !seen {
		return "text"
	}
	return "number"
}

// Summary renders the dataset overview shown to the user and embedded
// in Q&A prompts: dimensions, column names, a small sample, and the
// inferred type of each column.
func (d *SheetDataset) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Dataset: %s\n", d.Name)
	fmt.Fprintf(&sb, "Rows: %d\n", len(d.Rows))
	fmt.Fprintf(&sb, "Columns: %d\n", len(d.Columns))
	fmt.Fprintf(&sb, "\nColumn Names: %s\n", strings.Join(d.Columns, ", "))

	sb.WriteString("\nFirst 3 rows:\n")
	sb.WriteString(strings.Join(d.Columns, " | "))
	sb.WriteString("\n")
	for i, row := range d.Rows {
		if i >= 3 {
			break
		}
		sb.WriteString(strings.Join(row, " | "))
		sb.WriteString("\n")
	}

	sb.WriteString("\nColumn types:\n")
	for i, col := range d.Columns {
		fmt.Fprintf(&sb, "  - %s: %s\n", col, d.ColumnType(i))
	}

	return strings.TrimRight(sb.String(), "\n")
}
