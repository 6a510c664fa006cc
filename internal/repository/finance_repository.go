package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/orbis-edu/school-bi-api/internal/models"
)

// FinanceRepository reads billing invoices and expenses.
type FinanceRepository struct {
	db *sqlx.DB
}

// NewFinanceRepository instantiates the repository.
func NewFinanceRepository(db *sqlx.DB) *FinanceRepository {
	return &FinanceRepository{db: db}
}

// MonthlyCashFlow returns up to limit months of billed amounts split by
// payment state, oldest first.
func (r *FinanceRepository) MonthlyCashFlow(ctx context.Context, limit int) ([]models.CashFlowPoint, error) {
	const query = `SELECT
        to_char(reference_month, 'Mon') AS month,
        SUM(CASE WHEN payment_status = $1 THEN amount ELSE 0 END) AS paid,
        SUM(CASE WHEN payment_status <> $1 THEN amount ELSE 0 END) AS pending,
        SUM(amount) AS total
        FROM billing_invoices
        GROUP BY reference_month
        ORDER BY reference_month ASC
        LIMIT $2`

	var points []models.CashFlowPoint
	if err := r.db.SelectContext(ctx, &points, query, models.PaymentStatusPaid, limit); err != nil {
		return nil, fmt.Errorf("query monthly cash flow: %w", err)
	}
	return points, nil
}

// Totals aggregates the whole invoice table for the KPI block.
func (r *FinanceRepository) Totals(ctx context.Context) (*models.BillingTotals, error) {
	const query = `SELECT
        COALESCE(SUM(amount), 0) AS total_billed,
        COALESCE(SUM(CASE WHEN payment_status = $1 THEN amount ELSE 0 END), 0) AS total_paid,
        COALESCE(SUM(CASE WHEN payment_status = $2 THEN amount ELSE 0 END), 0) AS total_overdue,
        COUNT(*) AS total_rows,
        COALESCE(SUM(CASE WHEN payment_status = $2 THEN 1 ELSE 0 END), 0) AS overdue_rows
        FROM billing_invoices`

	var totals models.BillingTotals
	if err := r.db.GetContext(ctx, &totals, query, models.PaymentStatusPaid, models.PaymentStatusOverdue); err != nil {
		return nil, fmt.Errorf("query billing totals: %w", err)
	}
	return &totals, nil
}

// ExpensesByCategory returns the expense breakdown, largest first. An
// empty expense table yields an empty slice, not an error.
func (r *FinanceRepository) ExpensesByCategory(ctx context.Context) ([]models.ExpenseByCategory, error) {
	const query = `SELECT category, SUM(amount) AS total
        FROM expenses
        GROUP BY category
        ORDER BY total DESC`

	var expenses []models.ExpenseByCategory
	if err := r.db.SelectContext(ctx, &expenses, query); err != nil {
		return nil, fmt.Errorf("query expenses by category: %w", err)
	}
	return expenses, nil
}

// RecentTransactions returns the newest invoices joined with the student
// display name.
func (r *FinanceRepository) RecentTransactions(ctx context.Context, limit int) ([]models.BillingTransaction, error) {
	const query = `SELECT b.id, s.full_name AS student_name, b.created_at, b.amount, b.payment_status
        FROM billing_invoices b
        JOIN students s ON s.id = b.student_id
        ORDER BY b.created_at DESC
        LIMIT $1`

	var transactions []models.BillingTransaction
	if err := r.db.SelectContext(ctx, &transactions, query, limit); err != nil {
		return nil, fmt.Errorf("query recent transactions: %w", err)
	}
	return transactions, nil
}

// PaidTotal returns the revenue actually received.
func (r *FinanceRepository) PaidTotal(ctx context.Context) (float64, error) {
	const query = `SELECT COALESCE(SUM(amount), 0) FROM billing_invoices WHERE payment_status = $1`

	var total float64
	if err := r.db.GetContext(ctx, &total, query, models.PaymentStatusPaid); err != nil {
		return 0, fmt.Errorf("query paid total: %w", err)
	}
	return total, nil
}

// ExpenseTotal returns the sum of all recorded expenses.
func (r *FinanceRepository) ExpenseTotal(ctx context.Context) (float64, error) {
	const query = `SELECT COALESCE(SUM(amount), 0) FROM expenses`

	var total float64
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("query expense total: %w", err)
	}
	return total, nil
}
