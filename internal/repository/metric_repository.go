package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/orbis-edu/school-bi-api/internal/models"
)

// MetricRepository reads the monthly metric series (health score, NPS,
// dropout rate, operational indicators).
type MetricRepository struct {
	db *sqlx.DB
}

// NewMetricRepository instantiates the repository.
func NewMetricRepository(db *sqlx.DB) *MetricRepository {
	return &MetricRepository{db: db}
}

// History returns the most recent limit points for one kind, ascending by
// reference month so the series plots left to right.
func (r *MetricRepository) History(ctx context.Context, kind string, limit int) ([]models.MonthlyMetric, error) {
	const query = `SELECT metric_kind, reference_month, value, unit FROM (
        SELECT metric_kind, reference_month, value, unit
        FROM monthly_metrics
        WHERE metric_kind = $1
        ORDER BY reference_month DESC
        LIMIT $2
    ) recent ORDER BY reference_month ASC`

	var metrics []models.MonthlyMetric
	if err := r.db.SelectContext(ctx, &metrics, query, kind, limit); err != nil {
		return nil, fmt.Errorf("query metric history for %s: %w", kind, err)
	}
	return metrics, nil
}

// LatestPairs returns up to the two most recent points per kind, newest
// first within each kind. Kinds with a single point come back with one row.
func (r *MetricRepository) LatestPairs(ctx context.Context) ([]models.MonthlyMetric, error) {
	const query = `SELECT metric_kind, reference_month, value, unit FROM (
        SELECT metric_kind, reference_month, value, unit,
               ROW_NUMBER() OVER (PARTITION BY metric_kind ORDER BY reference_month DESC) AS rn
        FROM monthly_metrics
    ) ranked WHERE rn <= 2
    ORDER BY metric_kind, reference_month DESC`

	var metrics []models.MonthlyMetric
	if err := r.db.SelectContext(ctx, &metrics, query); err != nil {
		return nil, fmt.Errorf("query latest metric pairs: %w", err)
	}
	return metrics, nil
}

// LatestByKind returns the single most recent point for every kind.
func (r *MetricRepository) LatestByKind(ctx context.Context) ([]models.MonthlyMetric, error) {
	const query = `SELECT DISTINCT ON (metric_kind) metric_kind, reference_month, value, unit
        FROM monthly_metrics
        ORDER BY metric_kind, reference_month DESC`

	var metrics []models.MonthlyMetric
	if err := r.db.SelectContext(ctx, &metrics, query); err != nil {
		return nil, fmt.Errorf("query latest metrics: %w", err)
	}
	return metrics, nil
}
