package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbis-edu/school-bi-api/internal/models"
)

type fakeGlobalsProvider struct {
	globals models.AcademicGlobals
}

func (f *fakeGlobalsProvider) Globals(context.Context) (*models.AcademicGlobals, error) {
	return &f.globals, nil
}

type fakeRevenueProvider struct {
	paid     float64
	expenses float64
}

func (f *fakeRevenueProvider) PaidTotal(context.Context) (float64, error) {
	return f.paid, nil
}

func (f *fakeRevenueProvider) ExpenseTotal(context.Context) (float64, error) {
	return f.expenses, nil
}

type fakeHeadcount struct {
	count int
}

func (f *fakeHeadcount) ActiveCount(context.Context) (int, error) {
	return f.count, nil
}

type fakeTicketCounter struct {
	count int
}

func (f *fakeTicketCounter) OpenTicketCount(context.Context, []string) (int, error) {
	return f.count, nil
}

func TestOverviewServiceOverview(t *testing.T) {
	svc := NewOverviewService(
		&fakeGlobalsProvider{globals: models.AcademicGlobals{AverageGrade: 7.2, AverageAttendance: 88.4}},
		&fakeRevenueProvider{paid: 10000, expenses: 6500},
		&fakeHeadcount{count: 410},
		&fakeTicketCounter{count: 9},
		nil, nil, nil,
	)

	summary, cacheHit, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)

	assert.Equal(t, 88.4, summary.Academic.Attendance)
	assert.Equal(t, 7.2, summary.Academic.Average)
	assert.Equal(t, 35.0, summary.Financial.Margin)
	assert.Equal(t, 410, summary.Customers.ActiveStudents)
	assert.Equal(t, 9, summary.Operational.OpenTickets)
}

func TestMarginZeroRevenue(t *testing.T) {
	assert.Equal(t, 0.0, margin(0, 5000))
}

func TestMarginNegative(t *testing.T) {
	assert.Equal(t, -50.0, margin(1000, 1500))
}
