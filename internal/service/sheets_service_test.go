package service

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/api/googleapi"
)

func TestExtractSheetID(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			"full url",
			"https://docs.google.com/spreadsheets/d/1AbC123xyz/edit#gid=0",
			"1AbC123xyz",
		},
		{
			"url without fragment",
			"https://docs.google.com/spreadsheets/d/1AbC123xyz",
			"1AbC123xyz",
		},
		{"bare id", "1AbC123xyz", "1AbC123xyz"},
		{"unrelated url", "https://example.com/d/whatever", "https://example.com/d/whatever"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractSheetID(tc.input); got != tc.want {
				t.Errorf("ExtractSheetID(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestCacheKey(t *testing.T) {
	if got := cacheKey("abc", "Sales"); got != "abc_Sales" {
		t.Errorf("cacheKey = %q", got)
	}
	if got := cacheKey("abc", ""); got != "abc_default" {
		t.Errorf("cacheKey with empty worksheet = %q", got)
	}
}

func TestDatasetFromValues(t *testing.T) {
	values := [][]interface{}{
		{"Name", "Score"},
		{"Alice", 9.5},
		{"Bob"}, // short row, padded
	}
	ds := datasetFromValues("sheet_default", values)

	if len(ds.Columns) != 2 || ds.Columns[0] != "Name" {
		t.Errorf("Columns = %v", ds.Columns)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(ds.Rows))
	}
	if ds.Rows[0][1] != "9.5" {
		t.Errorf("numeric cell = %q, want stringified 9.5", ds.Rows[0][1])
	}
	if ds.Rows[1][1] != "" {
		t.Errorf("short row not padded: %v", ds.Rows[1])
	}
}

func TestMapSheetsError(t *testing.T) {
	cases := []struct {
		code int
		want error
	}{
		{404, ErrSheetNotFound},
		{403, ErrSheetNotShared},
		{401, ErrSheetsAuth},
		{400, ErrWorksheetNotFound},
		{500, ErrSheetsNetwork},
	}
	for _, tc := range cases {
		err := mapSheetsError(&googleapi.Error{Code: tc.code}, "Sales")
		if !errors.Is(err, tc.want) {
			t.Errorf("mapSheetsError(code=%d) = %v, want %v", tc.code, err, tc.want)
		}
	}
}

func TestMapSheetsErrorPlain(t *testing.T) {
	err := mapSheetsError(fmt.Errorf("connection refused"), "")
	if !errors.Is(err, ErrSheetsNetwork) {
		t.Errorf("plain error = %v, want ErrSheetsNetwork", err)
	}
}
