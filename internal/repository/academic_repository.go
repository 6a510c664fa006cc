package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/orbis-edu/school-bi-api/internal/models"
)

// AcademicRepository exposes read-only aggregates over the performance
// record table. Grades live in [0,10], attendance in [0,100]; both are
// guaranteed by the system of record, not enforced here.
type AcademicRepository struct {
	db *sqlx.DB
}

// NewAcademicRepository instantiates the repository.
func NewAcademicRepository(db *sqlx.DB) *AcademicRepository {
	return &AcademicRepository{db: db}
}

// SubjectAverages returns the mean final grade per subject, best first.
func (r *AcademicRepository) SubjectAverages(ctx context.Context) ([]models.SubjectAverage, error) {
	const query = `SELECT subject, ROUND(AVG(final_grade)::numeric, 1) AS average
        FROM academic_performance
        GROUP BY subject
        ORDER BY average DESC`

	var averages []models.SubjectAverage
	if err := r.db.SelectContext(ctx, &averages, query); err != nil {
		return nil, fmt.Errorf("query subject averages: %w", err)
	}
	return averages, nil
}

// Globals returns the store-wide grade and attendance means, zero when the
// table is empty.
func (r *AcademicRepository) Globals(ctx context.Context) (*models.AcademicGlobals, error) {
	const query = `SELECT
        COALESCE(ROUND(AVG(final_grade)::numeric, 1), 0) AS average_grade,
        COALESCE(ROUND(AVG(attendance_pct)::numeric, 1), 0) AS average_attendance
        FROM academic_performance`

	var globals models.AcademicGlobals
	if err := r.db.GetContext(ctx, &globals, query); err != nil {
		return nil, fmt.Errorf("query academic globals: %w", err)
	}
	return &globals, nil
}

// ApprovalCounts returns total records and how many meet both thresholds.
func (r *AcademicRepository) ApprovalCounts(ctx context.Context, gradeMin, attendanceMin float64) (*models.ApprovalCounts, error) {
	const query = `SELECT
        COUNT(*) AS total,
        COALESCE(SUM(CASE WHEN final_grade >= $1 AND attendance_pct >= $2 THEN 1 ELSE 0 END), 0) AS approved
        FROM academic_performance`

	var counts models.ApprovalCounts
	if err := r.db.GetContext(ctx, &counts, query, gradeMin, attendanceMin); err != nil {
		return nil, fmt.Errorf("query approval counts: %w", err)
	}
	return &counts, nil
}

// StudentsAtRisk counts distinct students with at least one record below
// either threshold.
func (r *AcademicRepository) StudentsAtRisk(ctx context.Context, gradeMin, attendanceMin float64) (int, error) {
	const query = `SELECT COUNT(DISTINCT student_id)
        FROM academic_performance
        WHERE final_grade < $1 OR attendance_pct < $2`

	var count int
	if err := r.db.GetContext(ctx, &count, query, gradeMin, attendanceMin); err != nil {
		return 0, fmt.Errorf("query students at risk: %w", err)
	}
	return count, nil
}

// GradeHistogram returns the sparse floor(grade) buckets present in the
// store, ascending by bucket.
func (r *AcademicRepository) GradeHistogram(ctx context.Context) ([]models.HistogramBin, error) {
	const query = `SELECT FLOOR(final_grade)::int AS bucket, COUNT(*) AS count
        FROM academic_performance
        GROUP BY FLOOR(final_grade)
        ORDER BY bucket`

	var bins []models.HistogramBin
	if err := r.db.SelectContext(ctx, &bins, query); err != nil {
		return nil, fmt.Errorf("query grade histogram: %w", err)
	}
	return bins, nil
}
