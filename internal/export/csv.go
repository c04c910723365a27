package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/rghose/resume-screener/internal/model"
)

var csvHeader = []string{
	"job_title",
	"candidate_name",
	"score",
	"fit_level",
	"rationale",
	"matched_skills",
	"missing_skills",
	"qualifications",
	"achievements",
	"evaluated_at",
	"created_at",
}

// WriteCSV streams evaluations as a CSV report. The caller decides the
// destination, typically an HTTP response body or a file.
func WriteCSV(w io.Writer, recs []model.CandidateEvaluation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range recs {
		row := []string{
			rec.JobTitle,
			rec.CandidateName,
			strconv.FormatFloat(rec.Score, 'f', 2, 64),
			rec.FitLevel,
			rec.Rationale,
			rec.MatchedSkills,
			rec.MissingSkills,
			rec.Qualifications,
			rec.Achievements,
			rec.EvaluatedAt.Format(time.RFC3339),
			rec.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
