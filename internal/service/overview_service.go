package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/orbis-edu/school-bi-api/internal/dto"
	"github.com/orbis-edu/school-bi-api/internal/models"
)

const overviewCacheKey = "dash:overview"

type academicGlobalsProvider interface {
	Globals(ctx context.Context) (*models.AcademicGlobals, error)
}

type revenueProvider interface {
	PaidTotal(ctx context.Context) (float64, error)
	ExpenseTotal(ctx context.Context) (float64, error)
}

type headcountProvider interface {
	ActiveCount(ctx context.Context) (int, error)
}

type ticketCounter interface {
	OpenTicketCount(ctx context.Context, openStates []string) (int, error)
}

// OverviewService composes the cross-domain overview payload. Each block
// comes from its own NULL-safe aggregate; a missing table section shows
// as zero, not as a failure.
type OverviewService struct {
	academic   academicGlobalsProvider
	finance    revenueProvider
	students   headcountProvider
	tickets    ticketCounter
	cache      *CacheService
	logger     *zap.Logger
	openStates []string
	cacheTTL   time.Duration
}

// NewOverviewService constructs an OverviewService.
func NewOverviewService(academic academicGlobalsProvider, finance revenueProvider, students headcountProvider, tickets ticketCounter, cache *CacheService, logger *zap.Logger, openStates []string) *OverviewService {
	if len(openStates) == 0 {
		openStates = []string{"Open", "In Progress", "Pending"}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverviewService{
		academic:   academic,
		finance:    finance,
		students:   students,
		tickets:    tickets,
		cache:      cache,
		logger:     logger,
		openStates: openStates,
	}
}

// Overview returns the overview payload and whether it was cached.
func (s *OverviewService) Overview(ctx context.Context) (*dto.OverviewResponse, bool, error) {
	if s.cache != nil {
		var cached dto.OverviewResponse
		if hit, err := s.cache.Get(ctx, overviewCacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	summary, err := s.compose(ctx)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, overviewCacheKey, summary, 0); err != nil {
			s.logger.Warn("overview cache write failed", zap.Error(err))
		}
	}
	return summary, false, nil
}

func (s *OverviewService) compose(ctx context.Context) (*dto.OverviewResponse, error) {
	globals, err := s.academic.Globals(ctx)
	if err != nil {
		return nil, storeError(err, "failed to aggregate academic overview")
	}

	paid, err := s.finance.PaidTotal(ctx)
	if err != nil {
		return nil, storeError(err, "failed to aggregate revenue")
	}

	expenses, err := s.finance.ExpenseTotal(ctx)
	if err != nil {
		return nil, storeError(err, "failed to aggregate expenses")
	}

	activeStudents, err := s.students.ActiveCount(ctx)
	if err != nil {
		return nil, storeError(err, "failed to count active students")
	}

	openTickets, err := s.tickets.OpenTicketCount(ctx, s.openStates)
	if err != nil {
		return nil, storeError(err, "failed to count open tickets")
	}

	return &dto.OverviewResponse{
		Academic: dto.OverviewAcademic{
			Attendance: round1(globals.AverageAttendance),
			Average:    round1(globals.AverageGrade),
		},
		Financial: dto.OverviewFinancial{
			Margin: margin(paid, expenses),
		},
		Customers: dto.OverviewCustomers{
			ActiveStudents: activeStudents,
		},
		Operational: dto.OverviewOperational{
			OpenTickets: openTickets,
		},
	}, nil
}

// margin is (revenue - expenses) / revenue * 100, one decimal, zero when
// nothing was received yet.
func margin(paid, expenses float64) float64 {
	if paid == 0 {
		return 0
	}
	return round1((paid - expenses) / paid * 100)
}
