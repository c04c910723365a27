package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/rghose/resume-screener/internal/model"
)

type CandidateEvaluationDTO struct {
	ID             uuid.UUID `json:"id"`
	JobTitle       string    `json:"job_title"`
	CandidateName  string    `json:"candidate_name"`
	Score          float64   `json:"score"`
	FitLevel       string    `json:"fit_level"` // "High", "Medium" or "Low"
	Rationale      string    `json:"rationale"`
	MatchedSkills  string    `json:"matched_skills"`
	MissingSkills  string    `json:"missing_skills"`
	Qualifications string    `json:"qualifications"`
	Achievements   string    `json:"achievements"`
	EvaluatedAt    time.Time `json:"evaluated_at"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromModel(rec model.CandidateEvaluation) CandidateEvaluationDTO {
	return CandidateEvaluationDTO{
		ID:             rec.ID,
		JobTitle:       rec.JobTitle,
		CandidateName:  rec.CandidateName,
		Score:          rec.Score,
		FitLevel:       rec.FitLevel,
		Rationale:      rec.Rationale,
		MatchedSkills:  rec.MatchedSkills,
		MissingSkills:  rec.MissingSkills,
		Qualifications: rec.Qualifications,
		Achievements:   rec.Achievements,
		EvaluatedAt:    rec.EvaluatedAt,
		CreatedAt:      rec.CreatedAt,
	}
}

func FromModels(recs []model.CandidateEvaluation) []CandidateEvaluationDTO {
	out := make([]CandidateEvaluationDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, FromModel(rec))
	}
	return out
}
