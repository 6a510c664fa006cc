package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/orbis-edu/school-bi-api/internal/models"
)

// SchoolRepository reads school and student headcount data.
type SchoolRepository struct {
	db *sqlx.DB
}

// NewSchoolRepository instantiates the repository.
func NewSchoolRepository(db *sqlx.DB) *SchoolRepository {
	return &SchoolRepository{db: db}
}

// ListWithStudentCounts returns every school with its live student count.
// The LEFT JOIN keeps schools with zero students in the result.
func (r *SchoolRepository) ListWithStudentCounts(ctx context.Context) ([]models.SchoolStudentCount, error) {
	const query = `SELECT sc.id, sc.name, sc.city, COUNT(st.id) AS students
        FROM schools sc
        LEFT JOIN students st ON st.school_id = sc.id
        GROUP BY sc.id, sc.name, sc.city
        ORDER BY sc.name`

	var schools []models.SchoolStudentCount
	if err := r.db.SelectContext(ctx, &schools, query); err != nil {
		return nil, fmt.Errorf("query schools with student counts: %w", err)
	}
	return schools, nil
}
