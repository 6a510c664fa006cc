package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbis-edu/school-bi-api/internal/dto"
	appErrors "github.com/orbis-edu/school-bi-api/pkg/errors"
)

type fakeAcademicDashboard struct {
	resp *dto.AcademicDashboardResponse
	err  error
}

func (f *fakeAcademicDashboard) Dashboard(context.Context) (*dto.AcademicDashboardResponse, bool, error) {
	return f.resp, false, f.err
}

func sampleAcademicDashboard() *dto.AcademicDashboardResponse {
	return &dto.AcademicDashboardResponse{
		KPIs: dto.AcademicKPIs{GlobalAverage: 7.2, ApprovalRate: 83.5, RiskCount: 12, Attendance: 88.1},
		DisciplinePerformance: []dto.DisciplinePerformance{
			{Name: "Matemática", Value: 6.9},
		},
		Evolution: []dto.EvolutionPoint{{Month: "Jan", Value: 78}},
	}
}

func TestReportServiceCSV(t *testing.T) {
	svc := NewReportService(&fakeAcademicDashboard{resp: sampleAcademicDashboard()}, nil, nil, nil)

	result, err := svc.AcademicReport(context.Background(), ReportFormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))

	body := string(result.Payload)
	assert.True(t, strings.HasPrefix(body, "Section,Item,Value\n"))
	assert.Contains(t, body, "KPIs,Global Average,7.2")
	assert.Contains(t, body, "Disciplines,Matemática,6.9")
	assert.Contains(t, body, "Evolution,Jan,78.0")
}

func TestReportServicePDF(t *testing.T) {
	svc := NewReportService(&fakeAcademicDashboard{resp: sampleAcademicDashboard()}, nil, nil, nil)

	result, err := svc.AcademicReport(context.Background(), ReportFormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".pdf"))
	assert.True(t, len(result.Payload) > 0)
	assert.Equal(t, "%PDF", string(result.Payload[:4]))
}

func TestReportServiceUnsupportedFormat(t *testing.T) {
	svc := NewReportService(&fakeAcademicDashboard{resp: sampleAcademicDashboard()}, nil, nil, nil)

	_, err := svc.AcademicReport(context.Background(), "xlsx")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

func TestReportServicePropagatesAggregationFailure(t *testing.T) {
	svc := NewReportService(&fakeAcademicDashboard{
		err: appErrors.Clone(appErrors.ErrQueryFailed, "failed to aggregate subject averages"),
	}, nil, nil, nil)

	_, err := svc.AcademicReport(context.Background(), ReportFormatCSV)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrQueryFailed.Code, appErr.Code)
}
