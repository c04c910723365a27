package prompt

import (
	"strings"
	"testing"
)

func TestExtractionPrompt(t *testing.T) {
	p := Extraction("JD: Go developer", "CV: I write Go")

	if !strings.Contains(p, "JD: Go developer") {
		t.Error("JD text not embedded")
	}
	if !strings.Contains(p, "CV: I write Go") {
		t.Error("CV text not embedded")
	}
	// The first pass must stay judgment-free.
	if !strings.Contains(p, "Do not perform any scoring") {
		t.Error("extraction prompt should forbid scoring")
	}
	for _, field := range []string{
		"matched_skills_full",
		"missing_skills_full",
		"top_qualifications_full",
		"quantifiable_achievements_full",
		"relevant_experience_summary",
		"years_of_experience",
		"education_level",
	} {
		if !strings.Contains(p, field) {
			t.Errorf("extraction prompt missing schema field %q", field)
		}
	}
}

func TestScoringPrompt(t *testing.T) {
	p := Scoring(`{"matched_skills_full":["Go"]}`, DefaultWeights(), nil)

	if !strings.Contains(p, `{"matched_skills_full":["Go"]}`) {
		t.Error("candidate data not embedded")
	}
	for _, frag := range []string{"(50%)", "(20%)", "(15%)", "(10%)", "(5%)"} {
		if !strings.Contains(p, frag) {
			t.Errorf("default weight %s not rendered", frag)
		}
	}
	if !strings.Contains(p, "| Score | Fit | Rationale | Matched Skills | Missing Skills | Top Qualifications | Quantifiable Achievements |") {
		t.Error("output table header missing")
	}
	if strings.Contains(p, "Critical Skill Heuristic") {
		t.Error("critical skill clause rendered without critical skills")
	}
}

func TestScoringPromptCriticalSkills(t *testing.T) {
	p := Scoring("{}", DefaultWeights(), []string{"Kubernetes", "Terraform"})
	if !strings.Contains(p, "Critical Skill Heuristic") {
		t.Error("critical skill clause missing")
	}
	if !strings.Contains(p, "Kubernetes, Terraform") {
		t.Error("critical skills not listed")
	}
	if !strings.Contains(p, "4 or lower") {
		t.Error("hard cap instruction missing")
	}
}

func TestScoringPromptCustomWeights(t *testing.T) {
	w := Weights{MatchedSkills: 40, ExperienceRelevance: 30, Qualifications: 15, Seniority: 10, CVClarity: 5}
	p := Scoring("{}", w, nil)
	if !strings.Contains(p, "(40%)") || !strings.Contains(p, "(30%)") {
		t.Error("custom weights not rendered")
	}
}

func TestQuestionPrompt(t *testing.T) {
	p := Question("Dataset: sales\nRows: 10", "What is the total revenue?")
	if !strings.Contains(p, "Dataset: sales") {
		t.Error("dataset summary not embedded")
	}
	if !strings.Contains(p, "What is the total revenue?") {
		t.Error("question not embedded")
	}
}

func TestAnalysisPrompt(t *testing.T) {
	p := Analysis(`{"x":1}`, "JD text here")
	if !strings.Contains(p, `{"x":1}`) || !strings.Contains(p, "JD text here") {
		t.Error("analysis prompt missing inputs")
	}
	if !strings.Contains(p, "Strengths") || !strings.Contains(p, "Weaknesses") {
		t.Error("analysis prompt missing sections")
	}
}

func TestDefaultWeightsSumTo100(t *testing.T) {
	w := DefaultWeights()
	sum := w.MatchedSkills + w.ExperienceRelevance + w.Qualifications + w.Seniority + w.CVClarity
	if sum != 100 {
		t.Errorf("weights sum = %d, want 100", sum)
	}
}
