package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/rghose/resume-screener/internal/model"
)

func sampleRecords() []model.CandidateEvaluation {
	ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return []model.CandidateEvaluation{
		{
			JobTitle:      "Backend Engineer",
			CandidateName: "Alice Smith",
			Score:         8.5,
			FitLevel:      model.FitHigh,
			Rationale:     "Strong match, includes \"quoted\" text and, commas",
			MatchedSkills: "Go, SQL",
			MissingSkills: "Kubernetes",
			EvaluatedAt:   ts,
			CreatedAt:     ts,
		},
		{
			JobTitle:      "Backend Engineer",
			CandidateName: "Bob Jones",
			Score:         4.0,
			FitLevel:      model.FitLow,
			Rationale:     "Missing core skills",
			EvaluatedAt:   ts,
			CreatedAt:     ts,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecords()); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header plus 2 records", len(rows))
	}

	wantHeader := "job_title,candidate_name,score,fit_level,rationale,matched_skills,missing_skills,qualifications,achievements,evaluated_at,created_at"
	if got := strings.Join(rows[0], ","); got != wantHeader {
		t.Errorf("header = %q", got)
	}

	first := rows[1]
	if first[1] != "Alice Smith" || first[2] != "8.50" || first[3] != model.FitHigh {
		t.Errorf("first row = %v", first)
	}
	// Commas and quotes inside fields must survive the round trip.
	if !strings.Contains(first[4], `"quoted"`) {
		t.Errorf("rationale mangled: %q", first[4])
	}
	if first[9] != "2026-08-30T12:00:00Z" {
		t.Errorf("evaluated_at = %q", first[9])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil || len(rows) != 1 {
		t.Errorf("empty export should still carry the header: rows=%v err=%v", rows, err)
	}
}

func TestWriteExcel(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteExcel(&buf, sampleRecords()); err != nil {
		t.Fatal(err)
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Error("output is not a valid xlsx archive")
	}
}
