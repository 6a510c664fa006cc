package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/orbis-edu/school-bi-api/internal/dto"
	"github.com/orbis-edu/school-bi-api/internal/models"
	"github.com/orbis-edu/school-bi-api/pkg/config"
)

const (
	operationalCacheKey = "dash:operational"
	costHistoryMonths   = 6
)

type operationsRepository interface {
	ActiveEnrollmentByClass(ctx context.Context) ([]models.ClassEnrollment, error)
	OpenTicketCount(ctx context.Context, openStates []string) (int, error)
	CostHistory(ctx context.Context, limit int) ([]models.CostHistoryPoint, error)
	TicketWeekdayStats(ctx context.Context) ([]models.TicketWeekdayStat, error)
}

type latestMetricsProvider interface {
	LatestByKind(ctx context.Context) ([]models.MonthlyMetric, error)
}

// OperationsServiceConfig carries the capacity constant and the
// placeholder values for not-yet-instrumented indicators.
type OperationsServiceConfig struct {
	ClassSeatCapacity int
	Operational       config.OperationalConfig
	CacheTTL          time.Duration
}

// OperationsService composes the operational dashboard payload. Occupancy
// is measured; indicators without a monthly metric fall back to the
// configured placeholder tagged as such.
type OperationsService struct {
	repo    operationsRepository
	metrics latestMetricsProvider
	cache   *CacheService
	logger  *zap.Logger
	cfg     OperationsServiceConfig
}

// NewOperationsService constructs an OperationsService.
func NewOperationsService(repo operationsRepository, metrics latestMetricsProvider, cache *CacheService, logger *zap.Logger, cfg OperationsServiceConfig) *OperationsService {
	if cfg.ClassSeatCapacity <= 0 {
		cfg.ClassSeatCapacity = 40
	}
	if len(cfg.Operational.OpenTicketStates) == 0 {
		cfg.Operational.OpenTicketStates = []string{"Open", "In Progress", "Pending"}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OperationsService{repo: repo, metrics: metrics, cache: cache, logger: logger, cfg: cfg}
}

// Dashboard returns the operational dashboard and whether it was cached.
func (s *OperationsService) Dashboard(ctx context.Context) (*dto.OperationalDashboardResponse, bool, error) {
	if s.cache != nil {
		var cached dto.OperationalDashboardResponse
		if hit, err := s.cache.Get(ctx, operationalCacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	summary, err := s.compose(ctx)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, operationalCacheKey, summary, 0); err != nil {
			s.logger.Warn("operational cache write failed", zap.Error(err))
		}
	}
	return summary, false, nil
}

func (s *OperationsService) compose(ctx context.Context) (*dto.OperationalDashboardResponse, error) {
	enrollments, err := s.repo.ActiveEnrollmentByClass(ctx)
	if err != nil {
		return nil, storeError(err, "failed to aggregate class enrollment")
	}

	openTickets, err := s.repo.OpenTicketCount(ctx, s.cfg.Operational.OpenTicketStates)
	if err != nil {
		return nil, storeError(err, "failed to count open tickets")
	}

	latest, err := s.metrics.LatestByKind(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load latest operational metrics")
	}

	costHistory, err := s.repo.CostHistory(ctx, costHistoryMonths)
	if err != nil {
		return nil, storeError(err, "failed to aggregate cost history")
	}

	weekdayStats, err := s.repo.TicketWeekdayStats(ctx)
	if err != nil {
		return nil, storeError(err, "failed to aggregate ticket performance")
	}

	latestByKind := make(map[string]models.MonthlyMetric, len(latest))
	for _, metric := range latest {
		latestByKind[metric.Kind] = metric
	}

	ops := s.cfg.Operational
	response := &dto.OperationalDashboardResponse{
		KPIs: dto.OperationalKPIs{
			Occupancy: dto.Indicator{
				Value:  s.occupancy(enrollments),
				Unit:   "%",
				Source: dto.SourceMeasured,
			},
			SecretariatSLA:     s.indicator(latestByKind, models.MetricSecretariatSLA, ops.SecretariatSLADays, "days"),
			OpenTickets:        dto.Indicator{Value: float64(openTickets), Unit: "tickets", Source: dto.SourceMeasured},
			TeacherAbsenteeism: s.indicator(latestByKind, models.MetricTeacherAbsenteeism, ops.TeacherAbsenteeismPct, "%"),
			ITUptime:           s.indicator(latestByKind, models.MetricITUptime, ops.ITUptimePct, "%"),
			PrintingCost:       dto.Indicator{Value: ops.PrintingCostPerPage, Unit: "BRL", Source: dto.SourcePlaceholder},
			CafeteriaWaste:     s.indicator(latestByKind, models.MetricCafeteriaWaste, ops.CafeteriaWastePct, "%"),
			SecurityStatus:     dto.TextIndicator{Value: ops.SecurityStatus, Source: dto.SourcePlaceholder},
		},
		CostHistory:       costHistoryEntries(costHistory),
		TicketPerformance: ticketPerformance(weekdayStats),
	}
	return response, nil
}

// occupancy estimates room usage as enrolled seats over capacity, capped
// at 100 and rounded. No active classes means zero, not a division error.
func (s *OperationsService) occupancy(enrollments []models.ClassEnrollment) float64 {
	if len(enrollments) == 0 {
		return 0
	}
	var enrolled int
	for _, class := range enrollments {
		enrolled += class.Count
	}
	capacity := len(enrollments) * s.cfg.ClassSeatCapacity
	pct := math.Round(float64(enrolled) / float64(capacity) * 100)
	return math.Min(100, pct)
}

func (s *OperationsService) indicator(latest map[string]models.MonthlyMetric, kind string, fallback float64, unit string) dto.Indicator {
	if metric, ok := latest[kind]; ok {
		u := metric.Unit
		if u == "" {
			u = unit
		}
		return dto.Indicator{Value: metric.Value, Unit: u, Source: dto.SourceMeasured}
	}
	return dto.Indicator{Value: fallback, Unit: unit, Source: dto.SourcePlaceholder}
}

func costHistoryEntries(points []models.CostHistoryPoint) []dto.CostHistoryEntry {
	entries := make([]dto.CostHistoryEntry, 0, len(points))
	for _, point := range points {
		entries = append(entries, dto.CostHistoryEntry{
			Month:       point.Month,
			Energy:      point.Energy,
			Maintenance: point.Maintenance,
			Supplies:    point.Supplies,
		})
	}
	return entries
}

// ticketPerformance keeps the weekday ordering from the store and falls
// back to an empty Monday-to-Friday frame so the chart still renders.
func ticketPerformance(stats []models.TicketWeekdayStat) []dto.TicketPerformanceEntry {
	if len(stats) == 0 {
		entries := make([]dto.TicketPerformanceEntry, 0, 5)
		for _, day := range []string{"Mon", "Tue", "Wed", "Thu", "Fri"} {
			entries = append(entries, dto.TicketPerformanceEntry{Day: day})
		}
		return entries
	}

	entries := make([]dto.TicketPerformanceEntry, 0, len(stats))
	for _, stat := range stats {
		entries = append(entries, dto.TicketPerformanceEntry{
			Day:      stat.Day,
			Open:     stat.Open,
			Resolved: stat.Resolved,
		})
	}
	return entries
}
