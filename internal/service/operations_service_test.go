package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbis-edu/school-bi-api/internal/dto"
	"github.com/orbis-edu/school-bi-api/internal/models"
	"github.com/orbis-edu/school-bi-api/pkg/config"
)

type fakeOperationsRepo struct {
	enrollments []models.ClassEnrollment
	openTickets int
	costs       []models.CostHistoryPoint
	weekdays    []models.TicketWeekdayStat
}

func (f *fakeOperationsRepo) ActiveEnrollmentByClass(context.Context) ([]models.ClassEnrollment, error) {
	return f.enrollments, nil
}

func (f *fakeOperationsRepo) OpenTicketCount(context.Context, []string) (int, error) {
	return f.openTickets, nil
}

func (f *fakeOperationsRepo) CostHistory(context.Context, int) ([]models.CostHistoryPoint, error) {
	return f.costs, nil
}

func (f *fakeOperationsRepo) TicketWeekdayStats(context.Context) ([]models.TicketWeekdayStat, error) {
	return f.weekdays, nil
}

type fakeLatestMetrics struct {
	latest []models.MonthlyMetric
}

func (f *fakeLatestMetrics) LatestByKind(context.Context) ([]models.MonthlyMetric, error) {
	return f.latest, nil
}

func newOperationsService(repo *fakeOperationsRepo, metrics *fakeLatestMetrics) *OperationsService {
	return NewOperationsService(repo, metrics, nil, nil, OperationsServiceConfig{
		ClassSeatCapacity: 40,
		Operational: config.OperationalConfig{
			SecretariatSLADays:    1.8,
			TeacherAbsenteeismPct: 2.4,
			ITUptimePct:           99.8,
			PrintingCostPerPage:   12.5,
			CafeteriaWastePct:     4.2,
			SecurityStatus:        "Normal",
		},
	})
}

func TestOperationsServiceDashboard(t *testing.T) {
	repo := &fakeOperationsRepo{
		enrollments: []models.ClassEnrollment{{ClassName: "6A", Count: 32}, {ClassName: "7A", Count: 28}},
		openTickets: 7,
		costs:       []models.CostHistoryPoint{{Month: "Jan", Energy: 1200, Maintenance: 800, Supplies: 300}},
		weekdays:    []models.TicketWeekdayStat{{Day: "Mon", DayOfWeek: 1, Open: 3, Resolved: 10}},
	}
	metrics := &fakeLatestMetrics{latest: []models.MonthlyMetric{
		monthlyPoint(models.MetricSecretariatSLA, 0, 1.5),
	}}
	svc := newOperationsService(repo, metrics)

	summary, cacheHit, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)

	// 60 enrolled over 2*40 seats = 75%.
	assert.Equal(t, 75.0, summary.KPIs.Occupancy.Value)
	assert.Equal(t, dto.SourceMeasured, summary.KPIs.Occupancy.Source)

	assert.Equal(t, 7.0, summary.KPIs.OpenTickets.Value)
	assert.Equal(t, dto.SourceMeasured, summary.KPIs.OpenTickets.Source)

	// SLA has a monthly metric so it is measured; absenteeism does not.
	assert.Equal(t, 1.5, summary.KPIs.SecretariatSLA.Value)
	assert.Equal(t, dto.SourceMeasured, summary.KPIs.SecretariatSLA.Source)
	assert.Equal(t, 2.4, summary.KPIs.TeacherAbsenteeism.Value)
	assert.Equal(t, dto.SourcePlaceholder, summary.KPIs.TeacherAbsenteeism.Source)
	assert.Equal(t, "Normal", summary.KPIs.SecurityStatus.Value)

	require.Len(t, summary.CostHistory, 1)
	assert.Equal(t, 1200.0, summary.CostHistory[0].Energy)

	require.Len(t, summary.TicketPerformance, 1)
	assert.Equal(t, "Mon", summary.TicketPerformance[0].Day)
}

func TestOccupancyCappedAtHundred(t *testing.T) {
	svc := newOperationsService(&fakeOperationsRepo{}, &fakeLatestMetrics{})
	pct := svc.occupancy([]models.ClassEnrollment{{ClassName: "6A", Count: 55}})
	assert.Equal(t, 100.0, pct)
}

func TestOccupancyNoClasses(t *testing.T) {
	svc := newOperationsService(&fakeOperationsRepo{}, &fakeLatestMetrics{})
	assert.Equal(t, 0.0, svc.occupancy(nil))
}

func TestOccupancyRounding(t *testing.T) {
	svc := newOperationsService(&fakeOperationsRepo{}, &fakeLatestMetrics{})
	// 33/40 = 82.5% rounds to 83.
	pct := svc.occupancy([]models.ClassEnrollment{{ClassName: "6A", Count: 33}})
	assert.Equal(t, 83.0, pct)
}

func TestTicketPerformanceEmptyWeekFrame(t *testing.T) {
	entries := ticketPerformance(nil)
	require.Len(t, entries, 5)
	assert.Equal(t, "Mon", entries[0].Day)
	assert.Equal(t, "Fri", entries[4].Day)
	assert.Equal(t, 0, entries[0].Open)
}
