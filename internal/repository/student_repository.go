package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/orbis-edu/school-bi-api/internal/models"
)

// StudentRepository reads enrollment breakdowns for the analytics
// endpoint and the overview headcount.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository instantiates the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// EnrollmentBySchoolClass returns the enrolled headcount per school and
// class group, dropouts excluded.
func (r *StudentRepository) EnrollmentBySchoolClass(ctx context.Context) ([]models.EnrollmentBreakdown, error) {
	const query = `SELECT sc.name AS school_name, st.class_name, COUNT(*) AS count
        FROM students st
        JOIN schools sc ON sc.id = st.school_id
        WHERE st.enrollment_status <> $1
        GROUP BY sc.name, st.class_name
        ORDER BY sc.name, st.class_name`

	var breakdown []models.EnrollmentBreakdown
	if err := r.db.SelectContext(ctx, &breakdown, query, models.EnrollmentStatusDropped); err != nil {
		return nil, fmt.Errorf("query enrollment breakdown: %w", err)
	}
	return breakdown, nil
}

// SiblingCountsBySchool counts enrolled students flagged with siblings.
func (r *StudentRepository) SiblingCountsBySchool(ctx context.Context) ([]models.SiblingCount, error) {
	const query = `SELECT sc.name AS school_name, COUNT(*) AS count
        FROM students st
        JOIN schools sc ON sc.id = st.school_id
        WHERE st.has_siblings AND st.enrollment_status <> $1
        GROUP BY sc.name
        ORDER BY sc.name`

	var counts []models.SiblingCount
	if err := r.db.SelectContext(ctx, &counts, query, models.EnrollmentStatusDropped); err != nil {
		return nil, fmt.Errorf("query sibling counts: %w", err)
	}
	return counts, nil
}

// ActiveCount returns the number of currently enrolled students.
func (r *StudentRepository) ActiveCount(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM students WHERE enrollment_status IN ($1, $2)`

	var count int
	if err := r.db.GetContext(ctx, &count, query, models.EnrollmentStatusActive, models.EnrollmentStatusEnrolled); err != nil {
		return 0, fmt.Errorf("query active student count: %w", err)
	}
	return count, nil
}
