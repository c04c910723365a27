package model

import (
	"time"

	"github.com/google/uuid"
)

// Fit levels for a candidate evaluation. Low is the safe default when
// the model output cannot be parsed.
const (
	FitHigh   = "High"
	FitMedium = "Medium"
	FitLow    = "Low"
)

// CandidateEvaluation is the persisted result of one (job
// description, CV) pair. Rows are append-only: they are written once
// by the pipeline and never updated or deleted.
type CandidateEvaluation struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	JobTitle       string    `gorm:"type:varchar(255);index" json:"job_title"`
	CandidateName  string    `gorm:"type:varchar(255)" json:"candidate_name"`
	Score          float64   `gorm:"type:float" json:"score"`
	FitLevel       string    `gorm:"type:varchar(10)" json:"fit_level"`
	Rationale      string    `gorm:"type:text" json:"rationale"`
	MatchedSkills  string    `gorm:"type:text" json:"matched_skills"`
	MissingSkills  string    `gorm:"type:text" json:"missing_skills"`
	Qualifications string    `gorm:"type:text" json:"qualifications"`
	Achievements   string    `gorm:"type:text" json:"achievements"`
	EvaluatedAt    time.Time `json:"evaluated_at"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (CandidateEvaluation) TableName() string {
	return "candidate_evaluations"
}
