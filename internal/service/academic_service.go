package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/orbis-edu/school-bi-api/internal/dto"
	"github.com/orbis-edu/school-bi-api/internal/models"
)

const (
	histogramBuckets = 11
	academicCacheKey = "dash:academic"
)

type academicRepository interface {
	SubjectAverages(ctx context.Context) ([]models.SubjectAverage, error)
	Globals(ctx context.Context) (*models.AcademicGlobals, error)
	ApprovalCounts(ctx context.Context, gradeMin, attendanceMin float64) (*models.ApprovalCounts, error)
	StudentsAtRisk(ctx context.Context, gradeMin, attendanceMin float64) (int, error)
	GradeHistogram(ctx context.Context) ([]models.HistogramBin, error)
}

type metricSeriesProvider interface {
	History(ctx context.Context, kind string, limit int) ([]models.MonthlyMetric, error)
	LatestPairs(ctx context.Context) ([]models.MonthlyMetric, error)
}

// AcademicServiceConfig tunes the approval thresholds and series length.
type AcademicServiceConfig struct {
	ApprovalGradeMin      float64
	ApprovalAttendanceMin float64
	EvolutionMonths       int
	GrowthFallback        string
	CacheTTL              time.Duration
}

// trackedGrowthKinds are the metric kinds the dashboard always displays a
// growth figure for. Kinds without two monthly points show the fallback.
var trackedGrowthKinds = []string{
	models.MetricHealthScore,
	models.MetricNPS,
	models.MetricDropoutRate,
}

// AcademicService composes the academic dashboard payload.
type AcademicService struct {
	repo    academicRepository
	metrics metricSeriesProvider
	cache   *CacheService
	logger  *zap.Logger
	cfg     AcademicServiceConfig
}

// NewAcademicService constructs an AcademicService with sane defaults.
func NewAcademicService(repo academicRepository, metrics metricSeriesProvider, cache *CacheService, logger *zap.Logger, cfg AcademicServiceConfig) *AcademicService {
	if cfg.ApprovalGradeMin <= 0 {
		cfg.ApprovalGradeMin = 6.0
	}
	if cfg.ApprovalAttendanceMin <= 0 {
		cfg.ApprovalAttendanceMin = 75.0
	}
	if cfg.EvolutionMonths <= 0 {
		cfg.EvolutionMonths = 12
	}
	if cfg.GrowthFallback == "" {
		cfg.GrowthFallback = "+0.2%"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcademicService{repo: repo, metrics: metrics, cache: cache, logger: logger, cfg: cfg}
}

// Dashboard returns the academic dashboard and whether it came from cache.
// Any sub-query failure aborts the whole aggregation; there are no partial
// results.
func (s *AcademicService) Dashboard(ctx context.Context) (*dto.AcademicDashboardResponse, bool, error) {
	if s.cache != nil {
		var cached dto.AcademicDashboardResponse
		if hit, err := s.cache.Get(ctx, academicCacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	summary, err := s.compose(ctx)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, academicCacheKey, summary, 0); err != nil {
			s.logger.Warn("academic cache write failed", zap.Error(err))
		}
	}
	return summary, false, nil
}

func (s *AcademicService) compose(ctx context.Context) (*dto.AcademicDashboardResponse, error) {
	subjects, err := s.repo.SubjectAverages(ctx)
	if err != nil {
		return nil, storeError(err, "failed to aggregate subject averages")
	}

	globals, err := s.repo.Globals(ctx)
	if err != nil {
		return nil, storeError(err, "failed to aggregate global averages")
	}

	approval, err := s.repo.ApprovalCounts(ctx, s.cfg.ApprovalGradeMin, s.cfg.ApprovalAttendanceMin)
	if err != nil {
		return nil, storeError(err, "failed to aggregate approval counts")
	}

	riskCount, err := s.repo.StudentsAtRisk(ctx, s.cfg.ApprovalGradeMin, s.cfg.ApprovalAttendanceMin)
	if err != nil {
		return nil, storeError(err, "failed to count students at risk")
	}

	bins, err := s.repo.GradeHistogram(ctx)
	if err != nil {
		return nil, storeError(err, "failed to aggregate grade histogram")
	}

	evolution, err := s.metrics.History(ctx, models.MetricHealthScore, s.cfg.EvolutionMonths)
	if err != nil {
		return nil, storeError(err, "failed to load health score history")
	}

	pairs, err := s.metrics.LatestPairs(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load metric growth pairs")
	}

	response := &dto.AcademicDashboardResponse{
		KPIs: dto.AcademicKPIs{
			GlobalAverage: globals.AverageGrade,
			ApprovalRate:  approvalRate(approval),
			RiskCount:     riskCount,
			Attendance:    globals.AverageAttendance,
		},
		DisciplinePerformance: make([]dto.DisciplinePerformance, 0, len(subjects)),
		Histogram:             denseHistogram(bins),
		Evolution:             evolutionSeries(evolution),
		Growth:                growthByKind(pairs),
	}
	for _, kind := range trackedGrowthKinds {
		if _, ok := response.Growth[kind]; !ok {
			response.Growth[kind] = s.cfg.GrowthFallback
		}
	}
	for _, subject := range subjects {
		response.DisciplinePerformance = append(response.DisciplinePerformance, dto.DisciplinePerformance{
			Name:  subject.Subject,
			Value: subject.Average,
		})
	}
	return response, nil
}

// approvalRate guards the empty-store case by defaulting the denominator
// to one, yielding 0 rather than NaN.
func approvalRate(counts *models.ApprovalCounts) float64 {
	total := counts.Total
	if total == 0 {
		total = 1
	}
	return round1(float64(counts.Approved) / float64(total) * 100)
}

// denseHistogram fills the fixed 0..10 bucket range, clamping out-of-range
// buckets so every record lands in exactly one slot.
func denseHistogram(bins []models.HistogramBin) []dto.HistogramBucket {
	counts := make([]int, histogramBuckets)
	for _, bin := range bins {
		bucket := bin.Bucket
		if bucket < 0 {
			bucket = 0
		}
		if bucket > histogramBuckets-1 {
			bucket = histogramBuckets - 1
		}
		counts[bucket] += bin.Count
	}

	histogram := make([]dto.HistogramBucket, histogramBuckets)
	for i, count := range counts {
		histogram[i] = dto.HistogramBucket{Bucket: i, Count: count}
	}
	return histogram
}

func evolutionSeries(metrics []models.MonthlyMetric) []dto.EvolutionPoint {
	series := make([]dto.EvolutionPoint, 0, len(metrics))
	for _, metric := range metrics {
		series = append(series, dto.EvolutionPoint{
			Month: metric.ReferenceMonth.Format("Jan"),
			Value: metric.Value,
		})
	}
	return series
}

// growthByKind compares the two most recent values per kind. Kinds with
// fewer than two points, or a zero previous value, are omitted; callers
// supply the configured fallback display for those.
func growthByKind(pairs []models.MonthlyMetric) map[string]string {
	latest := make(map[string]float64)
	previous := make(map[string]float64)
	seen := make(map[string]int)
	for _, metric := range pairs {
		switch seen[metric.Kind] {
		case 0:
			latest[metric.Kind] = metric.Value
		case 1:
			previous[metric.Kind] = metric.Value
		}
		seen[metric.Kind]++
	}

	growth := make(map[string]string)
	for kind, count := range seen {
		if count < 2 {
			continue
		}
		prev := previous[kind]
		if prev == 0 {
			continue
		}
		pct := (latest[kind] - prev) / prev * 100
		growth[kind] = fmt.Sprintf("%+.1f%%", pct)
	}
	return growth
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
