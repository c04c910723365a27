package export

import (
	"fmt"
	"io"
	"time"

	"github.com/rghose/resume-screener/internal/model"
	"github.com/xuri/excelize/v2"
)

// WriteExcel produces a two-sheet workbook: a Summary sheet with
// aggregate counts and an Evaluations sheet with one row per
// candidate, ordered as given.
func WriteExcel(w io.Writer, recs []model.CandidateEvaluation) error {
	f := excelize.NewFile()
	defer f.Close()

	summary := "Summary"
	evals := "Evaluations"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return err
	}
	if _, err := f.NewSheet(evals); err != nil {
		return err
	}

	if err := writeSummarySheet(f, summary, recs); err != nil {
		return err
	}
	if err := writeEvaluationsSheet(f, evals, recs); err != nil {
		return err
	}

	return f.Write(w)
}

func writeSummarySheet(f *excelize.File, sheet string, recs []model.CandidateEvaluation) error {
	var high, medium, low int
	var totalScore float64
	for _, rec := range recs {
		switch rec.FitLevel {
		case model.FitHigh:
			high++
		case model.FitMedium:
			medium++
		default:
			low++
		}
		totalScore += rec.Score
	}
	avg := 0.0
	if len(recs) > 0 {
		avg = totalScore / float64(len(recs))
	}

	rows := [][]interface{}{
		{"Candidate Evaluation Report"},
		{"Generated", time.Now().Format("2006-01-02 15:04")},
		{},
		{"Total Candidates", len(recs)},
		{"High Fit", high},
		{"Medium Fit", medium},
		{"Low Fit", low},
		{"Average Score", fmt.Sprintf("%.2f", avg)},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", "A1", style)
}

func writeEvaluationsSheet(f *excelize.File, sheet string, recs []model.CandidateEvaluation) error {
	header := []interface{}{
		"Job Title", "Candidate", "Score", "Fit", "Rationale",
		"Matched Skills", "Missing Skills", "Qualifications",
		"Achievements", "Evaluated At",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "J1", style); err != nil {
		return err
	}

	for i, rec := range recs {
		row := []interface{}{
			rec.JobTitle,
			rec.CandidateName,
			rec.Score,
			rec.FitLevel,
			rec.Rationale,
			rec.MatchedSkills,
			rec.MissingSkills,
			rec.Qualifications,
			rec.Achievements,
			rec.EvaluatedAt.Format("2006-01-02 15:04"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheet, "A", "J", 24)
}
