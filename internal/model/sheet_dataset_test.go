package model

import (
	"strings"
	"testing"
)

func salesDataset() *SheetDataset {
	return &SheetDataset{
		Name:    "sheet1_Sales",
		Columns: []string{"Region", "Revenue", "Units", "Notes"},
		Rows: [][]string{
			{"North", "1200.50", "10", "strong quarter"},
			{"South", "900", "7", ""},
			{"East", "1,450", "12", "includes returns"},
			{"West", "", "9", "partial data"},
		},
	}
}

func TestColumnType(t *testing.T) {
	ds := salesDataset()
	cases := []struct {
		col  int
		want string
	}{
		{0, "text"},   // region names
		{1, "number"}, // revenue, with thousands separator and a blank
		{2, "number"},
		{3, "text"},
		{-1, "text"},
		{99, "text"},
	}
	for _, tc := range cases {
		if got := ds.ColumnType(tc.col); got != tc.want {
			t.Errorf("ColumnType(%d) = %q, want %q", tc.col, got, tc.want)
		}
	}
}

func TestColumnTypeAllEmpty(t *testing.T) {
	ds := &SheetDataset{
		Columns: []string{"A"},
		Rows:    [][]string{{""}, {" "}},
	}
	if got := ds.ColumnType(0); got != "text" {
		t.Errorf("ColumnType of empty column = %q, want text", got)
	}
}

func TestSummary(t *testing.T) {
	s := salesDataset().Summary()

	for _, frag := range []string{
		"Dataset: sheet1_Sales",
		"Rows: 4",
		"Columns: 4",
		"Column Names: Region, Revenue, Units, Notes",
		"First 3 rows:",
		"North | 1200.50 | 10 | strong quarter",
		"Revenue: number",
		"Region: text",
	} {
		if !strings.Contains(s, frag) {
			t.Errorf("Summary missing %q:\n%s", frag, s)
		}
	}
	// Only the first three rows are sampled.
	if strings.Contains(s, "West") {
		t.Error("Summary should sample at most 3 rows")
	}
}
