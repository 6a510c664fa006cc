package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/orbis-edu/school-bi-api/internal/models"
)

// OperationsRepository reads enrollment, ticket and expense data for the
// operational dashboard.
type OperationsRepository struct {
	db *sqlx.DB
}

// NewOperationsRepository instantiates the repository.
func NewOperationsRepository(db *sqlx.DB) *OperationsRepository {
	return &OperationsRepository{db: db}
}

// ActiveEnrollmentByClass counts active students per class group.
func (r *OperationsRepository) ActiveEnrollmentByClass(ctx context.Context) ([]models.ClassEnrollment, error) {
	const query = `SELECT class_name, COUNT(*) AS count
        FROM students
        WHERE enrollment_status = $1
        GROUP BY class_name`

	var enrollments []models.ClassEnrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, models.EnrollmentStatusActive); err != nil {
		return nil, fmt.Errorf("query active enrollment by class: %w", err)
	}
	return enrollments, nil
}

// OpenTicketCount counts support tickets whose status is in the
// configured open-state set.
func (r *OperationsRepository) OpenTicketCount(ctx context.Context, openStates []string) (int, error) {
	const query = `SELECT COUNT(*) FROM support_tickets WHERE status = ANY($1)`

	var count int
	if err := r.db.GetContext(ctx, &count, query, pq.Array(openStates)); err != nil {
		return 0, fmt.Errorf("query open ticket count: %w", err)
	}
	return count, nil
}

// CostHistory returns up to limit months of operational expense totals by
// category, oldest first.
func (r *OperationsRepository) CostHistory(ctx context.Context, limit int) ([]models.CostHistoryPoint, error) {
	const query = `SELECT
        to_char(reference_month, 'Mon') AS month,
        SUM(CASE WHEN category = 'Energy' THEN amount ELSE 0 END) AS energy,
        SUM(CASE WHEN category = 'Maintenance' THEN amount ELSE 0 END) AS maintenance,
        SUM(CASE WHEN category = 'Supplies' THEN amount ELSE 0 END) AS supplies
        FROM expenses
        GROUP BY reference_month
        ORDER BY reference_month
        LIMIT $1`

	var points []models.CostHistoryPoint
	if err := r.db.SelectContext(ctx, &points, query, limit); err != nil {
		return nil, fmt.Errorf("query cost history: %w", err)
	}
	return points, nil
}

// TicketWeekdayStats buckets tickets by opening weekday, Sunday first.
func (r *OperationsRepository) TicketWeekdayStats(ctx context.Context) ([]models.TicketWeekdayStat, error) {
	const query = `SELECT
        trim(to_char(opened_at, 'Dy')) AS day,
        date_part('dow', opened_at)::int AS day_of_week,
        COUNT(*) FILTER (WHERE status <> 'Resolved') AS open,
        COUNT(*) FILTER (WHERE status = 'Resolved') AS resolved
        FROM support_tickets
        GROUP BY trim(to_char(opened_at, 'Dy')), date_part('dow', opened_at)
        ORDER BY day_of_week`

	var stats []models.TicketWeekdayStat
	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("query ticket weekday stats: %w", err)
	}
	return stats, nil
}
