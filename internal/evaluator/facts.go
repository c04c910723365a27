// Package evaluator turns raw model output into structured evaluation
// data. Parsing here is tolerant by contract: it never fails, it
// degrades to zero values so a bad model response still produces an
// insertable record.
package evaluator

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// CandidateFacts is the output of the extraction pass: facts only,
// no score of any kind.
type CandidateFacts struct {
	MatchedSkills     []string `json:"matched_skills_full"`
	MissingSkills     []string `json:"missing_skills_full"`
	Qualifications    []string `json:"top_qualifications_full"`
	Achievements      []string `json:"quantifiable_achievements_full"`
	ExperienceSummary string   `json:"relevant_experience_summary"`
	YearsOfExperience float64  `json:"years_of_experience"`
	EducationLevel    string   `json:"education_level"`
}

// JSON renders the facts for embedding in the scoring prompt.
func (f CandidateFacts) JSON() string {
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// CleanJSON strips the markdown code fences models like to wrap JSON in.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// ParseFacts extracts CandidateFacts from raw extraction-pass output.
// Unmatched fields keep their zero value; education defaults to
// "Unknown". Never returns an error.
func ParseFacts(raw string) CandidateFacts {
	clean := CleanJSON(raw)

	facts := CandidateFacts{
		MatchedSkills:  []string{},
		MissingSkills:  []string{},
		Qualifications: []string{},
		Achievements:   []string{},
		EducationLevel: "Unknown",
	}
	if !gjson.Valid(clean) {
		return facts
	}

	facts.MatchedSkills = stringSlice(gjson.Get(clean, "matched_skills_full"))
	facts.MissingSkills = stringSlice(gjson.Get(clean, "missing_skills_full"))
	facts.Qualifications = stringSlice(gjson.Get(clean, "top_qualifications_full"))
	facts.Achievements = stringSlice(gjson.Get(clean, "quantifiable_achievements_full"))
	facts.ExperienceSummary = gjson.Get(clean, "relevant_experience_summary").String()
	facts.YearsOfExperience = gjson.Get(clean, "years_of_experience").Float()
	if edu := gjson.Get(clean, "education_level").String(); edu != "" {
		facts.EducationLevel = edu
	}
	return facts
}

func stringSlice(res gjson.Result) []string {
	out := []string{}
	for _, item := range res.Array() {
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}
