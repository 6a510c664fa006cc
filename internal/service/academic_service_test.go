package service

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbis-edu/school-bi-api/internal/models"
	appErrors "github.com/orbis-edu/school-bi-api/pkg/errors"
)

type fakeAcademicRepo struct {
	subjects    []models.SubjectAverage
	globals     models.AcademicGlobals
	approval    models.ApprovalCounts
	riskCount   int
	bins        []models.HistogramBin
	subjectsErr error
}

func (f *fakeAcademicRepo) SubjectAverages(context.Context) ([]models.SubjectAverage, error) {
	if f.subjectsErr != nil {
		return nil, f.subjectsErr
	}
	return f.subjects, nil
}

func (f *fakeAcademicRepo) Globals(context.Context) (*models.AcademicGlobals, error) {
	return &f.globals, nil
}

func (f *fakeAcademicRepo) ApprovalCounts(context.Context, float64, float64) (*models.ApprovalCounts, error) {
	return &f.approval, nil
}

func (f *fakeAcademicRepo) StudentsAtRisk(context.Context, float64, float64) (int, error) {
	return f.riskCount, nil
}

func (f *fakeAcademicRepo) GradeHistogram(context.Context) ([]models.HistogramBin, error) {
	return f.bins, nil
}

type fakeMetricProvider struct {
	history []models.MonthlyMetric
	pairs   []models.MonthlyMetric
}

func (f *fakeMetricProvider) History(context.Context, string, int) ([]models.MonthlyMetric, error) {
	return f.history, nil
}

func (f *fakeMetricProvider) LatestPairs(context.Context) ([]models.MonthlyMetric, error) {
	return f.pairs, nil
}

func monthlyPoint(kind string, monthsAgo int, value float64) models.MonthlyMetric {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return models.MonthlyMetric{
		Kind:           kind,
		ReferenceMonth: base.AddDate(0, -monthsAgo, 0),
		Value:          value,
	}
}

func TestAcademicServiceDashboard(t *testing.T) {
	// Records at (grade, attendance) = (5,80), (7,90), (9,60): only the
	// second meets both thresholds, so approval is 1/3 = 33.3%.
	repo := &fakeAcademicRepo{
		subjects:  []models.SubjectAverage{{Subject: "Matemática", Average: 7.8}},
		globals:   models.AcademicGlobals{AverageGrade: 7.0, AverageAttendance: 76.7},
		approval:  models.ApprovalCounts{Total: 3, Approved: 1},
		riskCount: 2,
		bins:      []models.HistogramBin{{Bucket: 5, Count: 1}, {Bucket: 7, Count: 1}, {Bucket: 9, Count: 1}},
	}
	metrics := &fakeMetricProvider{
		history: []models.MonthlyMetric{monthlyPoint(models.MetricHealthScore, 1, 78), monthlyPoint(models.MetricHealthScore, 0, 81)},
		pairs: []models.MonthlyMetric{
			monthlyPoint(models.MetricHealthScore, 0, 88),
			monthlyPoint(models.MetricHealthScore, 1, 80),
		},
	}
	svc := NewAcademicService(repo, metrics, nil, nil, AcademicServiceConfig{GrowthFallback: "+0.2%"})

	summary, cacheHit, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)

	assert.Equal(t, 33.3, summary.KPIs.ApprovalRate)
	assert.Equal(t, 2, summary.KPIs.RiskCount)
	assert.Equal(t, 7.0, summary.KPIs.GlobalAverage)

	require.Len(t, summary.Histogram, 11)
	total := 0
	for _, bucket := range summary.Histogram {
		total += bucket.Count
	}
	assert.Equal(t, 3, total)

	require.Len(t, summary.Evolution, 2)
	assert.Equal(t, "May", summary.Evolution[0].Month)

	assert.Equal(t, "+10.0%", summary.Growth[models.MetricHealthScore])
	// Kinds without a pair fall back to the configured display.
	assert.Equal(t, "+0.2%", summary.Growth[models.MetricNPS])
	assert.Equal(t, "+0.2%", summary.Growth[models.MetricDropoutRate])
}

func TestApprovalRateEmptyStore(t *testing.T) {
	rate := approvalRate(&models.ApprovalCounts{Total: 0, Approved: 0})
	assert.Equal(t, 0.0, rate)
}

func TestDenseHistogramClampsOutOfRange(t *testing.T) {
	bins := []models.HistogramBin{
		{Bucket: -2, Count: 3},
		{Bucket: 10, Count: 4},
		{Bucket: 15, Count: 2},
	}
	histogram := denseHistogram(bins)
	require.Len(t, histogram, 11)
	assert.Equal(t, 3, histogram[0].Count)
	assert.Equal(t, 6, histogram[10].Count)
}

func TestGrowthByKindOmitsSparseAndZeroPrevious(t *testing.T) {
	pairs := []models.MonthlyMetric{
		monthlyPoint(models.MetricHealthScore, 0, 88),
		monthlyPoint(models.MetricHealthScore, 1, 80),
		monthlyPoint(models.MetricNPS, 0, 60),
		monthlyPoint(models.MetricDropoutRate, 0, 4),
		monthlyPoint(models.MetricDropoutRate, 1, 0),
	}
	growth := growthByKind(pairs)
	assert.Equal(t, "+10.0%", growth[models.MetricHealthScore])
	_, hasNPS := growth[models.MetricNPS]
	assert.False(t, hasNPS)
	_, hasDropout := growth[models.MetricDropoutRate]
	assert.False(t, hasDropout)
}

func TestGrowthByKindNegative(t *testing.T) {
	pairs := []models.MonthlyMetric{
		monthlyPoint(models.MetricNPS, 0, 72),
		monthlyPoint(models.MetricNPS, 1, 80),
	}
	growth := growthByKind(pairs)
	assert.Equal(t, "-10.0%", growth[models.MetricNPS])
}

func TestAcademicServiceQueryError(t *testing.T) {
	repo := &fakeAcademicRepo{subjectsErr: errors.New("syntax error")}
	svc := NewAcademicService(repo, &fakeMetricProvider{}, nil, nil, AcademicServiceConfig{})

	_, _, err := svc.Dashboard(context.Background())
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrQueryFailed.Code, appErr.Code)
	assert.Equal(t, 500, appErr.Status)
}

func TestAcademicServiceConnectionError(t *testing.T) {
	repo := &fakeAcademicRepo{subjectsErr: driver.ErrBadConn}
	svc := NewAcademicService(repo, &fakeMetricProvider{}, nil, nil, AcademicServiceConfig{})

	_, _, err := svc.Dashboard(context.Background())
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrStoreUnavailable.Code, appErr.Code)
	assert.Equal(t, 500, appErr.Status)
}
