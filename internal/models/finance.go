package models

import "time"

// Payment statuses form a closed set in the source system.
const (
	PaymentStatusPaid    = "Paid"
	PaymentStatusOverdue = "Overdue"
	PaymentStatusPending = "Pending"
)

// CashFlowPoint is one month of billed amounts split by payment state.
type CashFlowPoint struct {
	Month   string  `db:"month"`
	Paid    float64 `db:"paid"`
	Pending float64 `db:"pending"`
	Total   float64 `db:"total"`
}

// BillingTotals aggregates the whole invoice table for the KPI block.
type BillingTotals struct {
	TotalBilled  float64 `db:"total_billed"`
	TotalPaid    float64 `db:"total_paid"`
	TotalOverdue float64 `db:"total_overdue"`
	TotalRows    int     `db:"total_rows"`
	OverdueRows  int     `db:"overdue_rows"`
}

// ExpenseByCategory is one slice of the expense breakdown.
type ExpenseByCategory struct {
	Category string  `db:"category"`
	Total    float64 `db:"total"`
}

// BillingTransaction is a recent invoice joined with the student name.
type BillingTransaction struct {
	ID          string    `db:"id"`
	StudentName string    `db:"student_name"`
	CreatedAt   time.Time `db:"created_at"`
	Amount      float64   `db:"amount"`
	Status      string    `db:"payment_status"`
}
