package repository

import (
	"github.com/rghose/resume-screener/internal/model"
	"gorm.io/gorm"
)

// EvaluationRepository is the append-only store for candidate
// evaluations. There is deliberately no update or delete path.
type EvaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{db}
}

func (r *EvaluationRepository) Create(rec *model.CandidateEvaluation) error {
	return r.db.Create(rec).Error
}

// List returns a page of evaluations ordered by score descending,
// optionally filtered by job title, plus the total row count for the
// filter.
func (r *EvaluationRepository) List(jobTitle string, page, pageSize int) ([]model.CandidateEvaluation, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	query := r.db.Model(&model.CandidateEvaluation{})
	if jobTitle != "" {
		query = query.Where("job_title = ?", jobTitle)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recs []model.CandidateEvaluation
	err := query.
		Order("score DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&recs).Error
	return recs, total, err
}

// TopCandidates returns the highest scored evaluations, optionally
// scoped to one job title.
func (r *EvaluationRepository) TopCandidates(jobTitle string, limit int) ([]model.CandidateEvaluation, error) {
	if limit < 1 {
		limit = 10
	}
	query := r.db.Model(&model.CandidateEvaluation{})
	if jobTitle != "" {
		query = query.Where("job_title = ?", jobTitle)
	}
	var recs []model.CandidateEvaluation
	err := query.Order("score DESC").Limit(limit).Find(&recs).Error
	return recs, err
}

// ListByJob returns every evaluation for a job title ordered by score
// descending; used by the report exporters.
func (r *EvaluationRepository) ListByJob(jobTitle string) ([]model.CandidateEvaluation, error) {
	var recs []model.CandidateEvaluation
	query := r.db.Model(&model.CandidateEvaluation{})
	if jobTitle != "" {
		query = query.Where("job_title = ?", jobTitle)
	}
	err := query.Order("score DESC").Find(&recs).Error
	return recs, err
}
