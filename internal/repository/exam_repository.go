package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/orbis-edu/school-bi-api/internal/models"
)

// ExamRepository aggregates the seeded exam results table.
type ExamRepository struct {
	db *sqlx.DB
}

// NewExamRepository instantiates the repository.
func NewExamRepository(db *sqlx.DB) *ExamRepository {
	return &ExamRepository{db: db}
}

// Aggregate computes count, per-area means and headline maxima in one
// pass. Rows without a math score are excluded, matching the upstream
// dataset convention for absent candidates.
func (r *ExamRepository) Aggregate(ctx context.Context) (*models.ExamAggregate, error) {
	const query = `SELECT
        COUNT(*) AS total,
        COALESCE(CAST(AVG(math_score) AS INTEGER), 0) AS avg_math,
        COALESCE(CAST(AVG(languages_score) AS INTEGER), 0) AS avg_languages,
        COALESCE(CAST(AVG(humanities_score) AS INTEGER), 0) AS avg_humanities,
        COALESCE(CAST(AVG(science_score) AS INTEGER), 0) AS avg_science,
        COALESCE(CAST(AVG(essay_score) AS INTEGER), 0) AS avg_essay,
        COALESCE(CAST(MAX(math_score) AS INTEGER), 0) AS max_math,
        COALESCE(CAST(MAX(essay_score) AS INTEGER), 0) AS max_essay
        FROM exam_results
        WHERE math_score IS NOT NULL`

	var aggregate models.ExamAggregate
	if err := r.db.GetContext(ctx, &aggregate, query); err != nil {
		return nil, fmt.Errorf("query exam aggregate: %w", err)
	}
	return &aggregate, nil
}
