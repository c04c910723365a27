package evaluator

import (
	"fmt"
	"strings"

	"github.com/rghose/resume-screener/internal/prompt"
)

var seniorityKeywords = []string{
	"senior", "lead", "manager", "principal", "head",
	"director", "vp", "vice president", "cto", "ceo",
}

// FallbackScore computes a deterministic heuristic score from
// extracted facts when the scoring pass itself fails. The components
// mirror the rubric the model is asked to apply: matched-skill ratio,
// experience presence and years, qualifications and achievements,
// seniority signals, and CV length as a clarity proxy. Missing skills
// are penalized per item, and a missing critical skill caps the score
// at 4.5.
func FallbackScore(facts CandidateFacts, cvText string, w prompt.Weights, criticalSkills []string) (float64, string, string) {
	matchedCount := len(facts.MatchedSkills)
	missingCount := len(facts.MissingSkills)
	totalSkills := matchedCount + missingCount

	matchedRatio := 0.0
	if totalSkills > 0 {
		matchedRatio = float64(matchedCount) / float64(totalSkills)
	}

	qualScore := capAtOne(float64(len(facts.Qualifications)) / 2.0)
	achScore := capAtOne(float64(len(facts.Achievements)) / 2.0)

	expSummary := strings.ToLower(facts.ExperienceSummary)
	expPresence := 0.0
	if strings.TrimSpace(expSummary) != "" {
		expPresence = 1.0
	}

	seniorityScore := 0.0
	for _, k := range seniorityKeywords {
		if strings.Contains(expSummary, k) {
			seniorityScore = 1.0
			break
		}
	}

	yearsScore := capAtOne(facts.YearsOfExperience / 10.0)

	education := strings.ToLower(facts.EducationLevel)
	eduScore := 0.5
	switch {
	case strings.Contains(education, "phd") || strings.Contains(education, "doctorate"):
		eduScore = 1.0
	case strings.Contains(education, "master") || strings.Contains(education, "mba"):
		eduScore = 0.85
	case strings.Contains(education, "bachelor"):
		eduScore = 0.7
	}

	clarityScore := 0.15
	switch cvLen := len(cvText); {
	case cvLen > 2000:
		clarityScore = 1.0
	case cvLen > 800:
		clarityScore = 0.7
	case cvLen > 300:
		clarityScore = 0.4
	}

	mw := float64(w.MatchedSkills) / 100.0
	ew := float64(w.ExperienceRelevance) / 100.0
	qw := float64(w.Qualifications) / 100.0
	sw := float64(w.Seniority) / 100.0
	cw := float64(w.CVClarity) / 100.0

	compExp := expPresence*0.4 + yearsScore*0.6
	compQual := qualScore*0.5 + achScore*0.3 + eduScore*0.2

	weighted := matchedRatio*mw + compExp*ew + compQual*qw + seniorityScore*sw + clarityScore*cw
	score := 1.0 + weighted*9.0

	const (
		penaltyPerMissing = 0.4
		maxPenalty        = 2.5
	)
	missPenalty := float64(missingCount) * penaltyPerMissing
	if missPenalty > maxPenalty {
		missPenalty = maxPenalty
	}
	score -= missPenalty

	var missingCriticals []string
	for _, crit := range criticalSkills {
		crit = strings.ToLower(strings.TrimSpace(crit))
		if crit == "" {
			continue
		}
		found := false
		for _, m := range facts.MatchedSkills {
			if strings.Contains(strings.ToLower(m), crit) {
				found = true
				break
			}
		}
		if !found {
			missingCriticals = append(missingCriticals, crit)
		}
	}
	if len(missingCriticals) > 0 && score > 4.5 {
		score = 4.5
	}

	score = clampScore(score)
	fit := FitForScore(score)

	var parts []string
	parts = append(parts, fmt.Sprintf("Matched %d/%d JD skills (%d%%).",
		matchedCount, totalSkills, int(matchedRatio*100+0.5)))
	if facts.YearsOfExperience > 0 {
		parts = append(parts, fmt.Sprintf("%.0f years experience.", facts.YearsOfExperience))
	}
	if education != "" && education != "unknown" {
		parts = append(parts, fmt.Sprintf("Education: %s.", facts.EducationLevel))
	}
	if len(facts.Qualifications) > 0 {
		parts = append(parts, fmt.Sprintf("%d qualifications.", len(facts.Qualifications)))
	}
	if len(facts.Achievements) > 0 {
		parts = append(parts, fmt.Sprintf("%d quantifiable achievements.", len(facts.Achievements)))
	}
	if missingCount > 0 {
		parts = append(parts, fmt.Sprintf("Penalty for %d missing skills.", missingCount))
	}
	if len(missingCriticals) > 0 {
		parts = append(parts, fmt.Sprintf("Critical skills missing: %s - score capped.",
			strings.Join(missingCriticals, ", ")))
	}

	return score, fit, strings.Join(parts, " ")
}

func capAtOne(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	return v
}
