package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/orbis-edu/school-bi-api/internal/dto"
	"github.com/orbis-edu/school-bi-api/internal/models"
)

const (
	financeCacheKey = "dash:financial"
	cashFlowMonths  = 12
)

type financeRepository interface {
	MonthlyCashFlow(ctx context.Context, limit int) ([]models.CashFlowPoint, error)
	Totals(ctx context.Context) (*models.BillingTotals, error)
	ExpensesByCategory(ctx context.Context) ([]models.ExpenseByCategory, error)
	RecentTransactions(ctx context.Context, limit int) ([]models.BillingTransaction, error)
}

// FinanceServiceConfig tunes the financial dashboard composition.
type FinanceServiceConfig struct {
	RecentTransactions int
	CacheTTL           time.Duration
}

// FinanceService composes the financial dashboard payload.
type FinanceService struct {
	repo    financeRepository
	cache   *CacheService
	logger  *zap.Logger
	printer *message.Printer
	cfg     FinanceServiceConfig
}

// NewFinanceService constructs a FinanceService. Transaction amounts are
// rendered in Brazilian Portuguese currency formatting, matching the
// dashboard locale.
func NewFinanceService(repo financeRepository, cache *CacheService, logger *zap.Logger, cfg FinanceServiceConfig) *FinanceService {
	if cfg.RecentTransactions <= 0 {
		cfg.RecentTransactions = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FinanceService{
		repo:    repo,
		cache:   cache,
		logger:  logger,
		printer: message.NewPrinter(language.BrazilianPortuguese),
		cfg:     cfg,
	}
}

// Dashboard returns the financial dashboard and whether it was cached.
func (s *FinanceService) Dashboard(ctx context.Context) (*dto.FinancialDashboardResponse, bool, error) {
	if s.cache != nil {
		var cached dto.FinancialDashboardResponse
		if hit, err := s.cache.Get(ctx, financeCacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	summary, err := s.compose(ctx)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, financeCacheKey, summary, 0); err != nil {
			s.logger.Warn("financial cache write failed", zap.Error(err))
		}
	}
	return summary, false, nil
}

func (s *FinanceService) compose(ctx context.Context) (*dto.FinancialDashboardResponse, error) {
	cashFlow, err := s.repo.MonthlyCashFlow(ctx, cashFlowMonths)
	if err != nil {
		return nil, storeError(err, "failed to aggregate cash flow")
	}

	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, storeError(err, "failed to aggregate billing totals")
	}

	expenses, err := s.repo.ExpensesByCategory(ctx)
	if err != nil {
		return nil, storeError(err, "failed to aggregate expense breakdown")
	}

	transactions, err := s.repo.RecentTransactions(ctx, s.cfg.RecentTransactions)
	if err != nil {
		return nil, storeError(err, "failed to load recent transactions")
	}

	response := &dto.FinancialDashboardResponse{
		FinanceData: make([]dto.CashFlowEntry, 0, len(cashFlow)),
		KPIs: dto.FinancialKPIs{
			TotalBilled:     totals.TotalBilled,
			TotalPaid:       totals.TotalPaid,
			TotalOverdue:    totals.TotalOverdue,
			DelinquencyRate: delinquencyRate(totals),
		},
		ExpenseDistribution: make([]dto.ExpenseSlice, 0, len(expenses)),
		RecentTransactions:  make([]dto.TransactionEntry, 0, len(transactions)),
	}

	for _, point := range cashFlow {
		response.FinanceData = append(response.FinanceData, dto.CashFlowEntry{
			Month:   point.Month,
			Paid:    point.Paid,
			Pending: point.Pending,
			Total:   point.Total,
		})
	}

	for _, expense := range expenses {
		response.ExpenseDistribution = append(response.ExpenseDistribution, dto.ExpenseSlice{
			Name:  expense.Category,
			Value: expense.Total,
		})
	}

	for _, tx := range transactions {
		response.RecentTransactions = append(response.RecentTransactions, s.formatTransaction(tx))
	}

	return response, nil
}

// delinquencyRate is overdue rows over total rows, two decimals, zero for
// an empty invoice table.
func delinquencyRate(totals *models.BillingTotals) float64 {
	if totals.TotalRows == 0 {
		return 0
	}
	return round2(float64(totals.OverdueRows) / float64(totals.TotalRows) * 100)
}

// formatTransaction renders the sign, localized currency and coarse type
// tag. Paid rows count as income; everything else displays as an outflow.
func (s *FinanceService) formatTransaction(tx models.BillingTransaction) dto.TransactionEntry {
	sign := "-"
	txType := "expense"
	if tx.Status == models.PaymentStatusPaid {
		sign = "+"
		txType = "income"
	}

	return dto.TransactionEntry{
		ID:          tx.ID,
		Description: tx.StudentName,
		Date:        tx.CreatedAt.Format("02/01, 15:04"),
		Amount:      sign + " R$ " + s.printer.Sprint(number.Decimal(tx.Amount, number.Scale(2))),
		Type:        txType,
	}
}
