package evaluator

import (
	"strings"
	"testing"

	"github.com/rghose/resume-screener/internal/model"
)

const sampleTable = `Here is the evaluation:

| Score | Fit | Rationale | Matched Skills | Missing Skills | Top Qualifications | Quantifiable Achievements |
|-------|-----|-----------|----------------|----------------|--------------------|---------------------------|
| 7.5 | Medium | Solid backend background | Go, SQL | Kubernetes | BSc Computer Science | Cut latency by 40% |
`

func TestParseScoreTable(t *testing.T) {
	res := ParseScoreTable(sampleTable)
	if !res.ScoreFound {
		t.Fatal("expected score to be found")
	}
	if res.Score != 7.5 {
		t.Errorf("Score = %v, want 7.5", res.Score)
	}
	if res.Fit != model.FitMedium {
		t.Errorf("Fit = %q, want %q", res.Fit, model.FitMedium)
	}
	if res.Rationale != "Solid backend background" {
		t.Errorf("Rationale = %q", res.Rationale)
	}
	if res.MatchedSkills != "Go, SQL" {
		t.Errorf("MatchedSkills = %q", res.MatchedSkills)
	}
	if res.MissingSkills != "Kubernetes" {
		t.Errorf("MissingSkills = %q", res.MissingSkills)
	}
	if res.Qualifications != "BSc Computer Science" {
		t.Errorf("Qualifications = %q", res.Qualifications)
	}
	if res.Achievements != "Cut latency by 40%" {
		t.Errorf("Achievements = %q", res.Achievements)
	}
}

func TestParseScoreTableFenced(t *testing.T) {
	fenced := "```markdown\n" + strings.TrimSpace(sampleTable) + "\n```"
	res := ParseScoreTable(fenced)
	if !res.ScoreFound || res.Score != 7.5 {
		t.Errorf("fenced table not parsed: found=%v score=%v", res.ScoreFound, res.Score)
	}
}

func TestParseScoreTableUnparseable(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"prose", "The candidate looks fine to me."},
		{"header only", "| Score | Fit |\n|---|---|"},
		{"non numeric score", "| Score | Fit |\n|---|---|\n| N/A | High |"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := ParseScoreTable(tc.raw)
			if res.ScoreFound {
				t.Error("ScoreFound = true, want false")
			}
			if res.Score != 0 {
				t.Errorf("Score = %v, want 0", res.Score)
			}
			if res.Fit != model.FitLow && tc.name != "non numeric score" {
				t.Errorf("Fit = %q, want %q", res.Fit, model.FitLow)
			}
		})
	}
}

func TestParseScoreTableClampsScore(t *testing.T) {
	raw := "| Score | Fit |\n|---|---|\n| 15 | High |"
	res := ParseScoreTable(raw)
	if !res.ScoreFound || res.Score != 10 {
		t.Errorf("Score = %v (found=%v), want 10", res.Score, res.ScoreFound)
	}
}

func TestParseScoreTableShortRow(t *testing.T) {
	raw := "| Score | Fit | Rationale |\n|---|---|---|\n| 6 |"
	res := ParseScoreTable(raw)
	if !res.ScoreFound || res.Score != 6 {
		t.Fatalf("short row not tolerated: found=%v score=%v", res.ScoreFound, res.Score)
	}
	// Fit cell was absent, so it derives from the score.
	if res.Fit != model.FitMedium {
		t.Errorf("Fit = %q, want %q", res.Fit, model.FitMedium)
	}
}

func TestFitForScore(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{10, model.FitHigh},
		{8.0, model.FitHigh},
		{7.99, model.FitMedium},
		{5.5, model.FitMedium},
		{5.49, model.FitLow},
		{0, model.FitLow},
	}
	for _, tc := range cases {
		if got := FitForScore(tc.score); got != tc.want {
			t.Errorf("FitForScore(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestNormalizeFit(t *testing.T) {
	if got := normalizeFit("  HIGH ", 1, true); got != model.FitHigh {
		t.Errorf("normalizeFit case-insensitive match failed: %q", got)
	}
	if got := normalizeFit("excellent", 9, true); got != model.FitHigh {
		t.Errorf("unknown fit should derive from score: %q", got)
	}
	if got := normalizeFit("excellent", 9, false); got != model.FitLow {
		t.Errorf("unknown fit without score should be Low: %q", got)
	}
}
