package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/orbis-edu/school-bi-api/internal/dto"
	"github.com/orbis-edu/school-bi-api/internal/models"
	appErrors "github.com/orbis-edu/school-bi-api/pkg/errors"
)

// Metric selector values accepted by the analytics endpoint.
const (
	MetricQueryDropout       = "dropout"
	MetricQueryHealthScore   = "health-score"
	MetricQuerySiblings      = "siblings"
	MetricQueryNPS           = "nps"
	MetricQueryTotalStudents = "total-students"
)

type enrollmentAnalyticsRepository interface {
	EnrollmentBySchoolClass(ctx context.Context) ([]models.EnrollmentBreakdown, error)
	SiblingCountsBySchool(ctx context.Context) ([]models.SiblingCount, error)
}

type metricHistoryProvider interface {
	History(ctx context.Context, kind string, limit int) ([]models.MonthlyMetric, error)
}

// AnalyticsServiceConfig tunes the analytics series.
type AnalyticsServiceConfig struct {
	HistoryMonths    int
	DropoutTargetPct float64
}

// AnalyticsService serves the per-metric drilldown endpoint. The payload
// shape depends on the selected metric, so Metric returns interface{}.
type AnalyticsService struct {
	students enrollmentAnalyticsRepository
	metrics  metricHistoryProvider
	cache    *CacheService
	logger   *zap.Logger
	cfg      AnalyticsServiceConfig
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(students enrollmentAnalyticsRepository, metrics metricHistoryProvider, cache *CacheService, logger *zap.Logger, cfg AnalyticsServiceConfig) *AnalyticsService {
	if cfg.HistoryMonths <= 0 {
		cfg.HistoryMonths = 12
	}
	if cfg.DropoutTargetPct <= 0 {
		cfg.DropoutTargetPct = 5.0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{students: students, metrics: metrics, cache: cache, logger: logger, cfg: cfg}
}

// Metric resolves one metric selector to its payload. Unknown selectors
// fail with a validation error so the handler answers 400, not 500.
func (s *AnalyticsService) Metric(ctx context.Context, metric string) (interface{}, bool, error) {
	cacheKey := "analytics:" + metric

	var compose func(context.Context) (interface{}, error)
	switch metric {
	case MetricQueryTotalStudents:
		compose = s.totalStudents
	case MetricQuerySiblings:
		compose = s.siblings
	case MetricQueryHealthScore:
		compose = func(ctx context.Context) (interface{}, error) {
			return s.metricSeries(ctx, models.MetricHealthScore)
		}
	case MetricQueryNPS:
		compose = func(ctx context.Context) (interface{}, error) {
			return s.metricSeries(ctx, models.MetricNPS)
		}
	case MetricQueryDropout:
		compose = s.dropout
	default:
		return nil, false, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown metric %q", metric))
	}

	if s.cache != nil {
		var cached interface{}
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return cached, true, nil
		}
	}

	payload, err := compose(ctx)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, payload, 0); err != nil {
			s.logger.Warn("analytics cache write failed", zap.String("metric", metric), zap.Error(err))
		}
	}
	return payload, false, nil
}

func (s *AnalyticsService) totalStudents(ctx context.Context) (interface{}, error) {
	breakdown, err := s.students.EnrollmentBySchoolClass(ctx)
	if err != nil {
		return nil, storeError(err, "failed to aggregate enrollment breakdown")
	}

	entries := make([]dto.MetricBreakdownEntry, 0, len(breakdown))
	for _, row := range breakdown {
		entries = append(entries, dto.MetricBreakdownEntry{
			UnitLabel:  row.SchoolName,
			ClassLabel: row.ClassName,
			Value:      row.Count,
		})
	}
	return entries, nil
}

func (s *AnalyticsService) siblings(ctx context.Context) (interface{}, error) {
	counts, err := s.students.SiblingCountsBySchool(ctx)
	if err != nil {
		return nil, storeError(err, "failed to aggregate sibling counts")
	}

	entries := make([]dto.MetricBreakdownEntry, 0, len(counts))
	for _, row := range counts {
		entries = append(entries, dto.MetricBreakdownEntry{
			UnitLabel: row.SchoolName,
			Value:     row.Count,
		})
	}
	return entries, nil
}

func (s *AnalyticsService) metricSeries(ctx context.Context, kind string) (interface{}, error) {
	history, err := s.metrics.History(ctx, kind, s.cfg.HistoryMonths)
	if err != nil {
		return nil, storeError(err, "failed to load metric history")
	}

	response := dto.MetricSeriesResponse{
		History: evolutionSeries(history),
	}
	if len(history) > 0 {
		response.Current = history[len(history)-1].Value
	}
	return response, nil
}

func (s *AnalyticsService) dropout(ctx context.Context) (interface{}, error) {
	history, err := s.metrics.History(ctx, models.MetricDropoutRate, s.cfg.HistoryMonths)
	if err != nil {
		return nil, storeError(err, "failed to load dropout history")
	}

	points := make([]dto.DropoutPoint, 0, len(history))
	for _, metric := range history {
		points = append(points, dto.DropoutPoint{
			Month:  metric.ReferenceMonth.Format("Jan"),
			Rate:   metric.Value,
			Target: s.cfg.DropoutTargetPct,
		})
	}
	return points, nil
}
