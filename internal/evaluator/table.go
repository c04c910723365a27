package evaluator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rghose/resume-screener/internal/model"
)

// ScoreResult is the parsed output of the scoring pass. ScoreFound
// reports whether a numeric score was actually located; when false
// the caller should treat the pass as failed and fall back.
type ScoreResult struct {
	Score          float64
	Fit            string
	Rationale      string
	MatchedSkills  string
	MissingSkills  string
	Qualifications string
	Achievements   string
	ScoreFound     bool
}

var (
	openFenceRe  = regexp.MustCompile(`^\s*` + "```" + `[a-zA-Z0-9]*\s*`)
	closeFenceRe = regexp.MustCompile(`\s*` + "```" + `\s*$`)
	headerKeyRe  = regexp.MustCompile(`[^A-Za-z0-9 ]`)
)

// ParseScoreTable locates the Markdown table in raw scoring output
// and maps its single data row onto a ScoreResult. Header matching is
// tolerant: keys are normalized to letters, digits and spaces, and a
// short or overlong data row is padded or truncated to the header
// width. A missing or non-numeric score yields Score 0, Fit Low and
// ScoreFound false.
func ParseScoreTable(raw string) ScoreResult {
	result := ScoreResult{Fit: model.FitLow}

	txt := strings.TrimSpace(raw)
	if txt == "" {
		return result
	}
	txt = openFenceRe.ReplaceAllString(txt, "")
	txt = closeFenceRe.ReplaceAllString(txt, "")

	var lines []string
	for _, ln := range strings.Split(txt, "\n") {
		if strings.TrimSpace(ln) != "" {
			lines = append(lines, strings.TrimRight(ln, " \t"))
		}
	}

	headerIdx := -1
	for i, line := range lines {
		if strings.Contains(line, "|") && strings.Contains(line, "Score") {
			headerIdx = i
			break
		}
	}
	// Header, separator, then the data row.
	if headerIdx < 0 || headerIdx+2 >= len(lines) {
		return result
	}

	headers := splitRow(lines[headerIdx])
	data := splitRow(lines[headerIdx+2])
	for len(data) < len(headers) {
		data = append(data, "")
	}
	data = data[:len(headers)]

	cells := make(map[string]string, len(headers))
	for i, h := range headers {
		key := strings.TrimSpace(headerKeyRe.ReplaceAllString(h, ""))
		cells[key] = data[i]
	}

	if score, err := strconv.ParseFloat(strings.TrimSpace(cells["Score"]), 64); err == nil {
		result.Score = clampScore(score)
		result.ScoreFound = true
	}
	result.Fit = normalizeFit(cells["Fit"], result.Score, result.ScoreFound)
	result.Rationale = cells["Rationale"]
	result.MatchedSkills = cells["Matched Skills"]
	result.MissingSkills = cells["Missing Skills"]
	result.Qualifications = cells["Top Qualifications"]
	result.Achievements = cells["Quantifiable Achievements"]
	return result
}

func splitRow(line string) []string {
	var cells []string
	for _, c := range strings.Split(line, "|") {
		if s := strings.TrimSpace(c); s != "" {
			cells = append(cells, s)
		}
	}
	return cells
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 10 {
		return 10
	}
	return s
}

// FitForScore maps a numeric score onto the coarse fit levels.
func FitForScore(score float64) string {
	switch {
	case score >= 8.0:
		return model.FitHigh
	case score >= 5.5:
		return model.FitMedium
	default:
		return model.FitLow
	}
}

func normalizeFit(fit string, score float64, scoreFound bool) string {
	switch strings.ToLower(strings.TrimSpace(fit)) {
	case "high":
		return model.FitHigh
	case "medium":
		return model.FitMedium
	case "low":
		return model.FitLow
	}
	if scoreFound {
		return FitForScore(score)
	}
	return model.FitLow
}
