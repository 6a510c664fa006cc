package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbis-edu/school-bi-api/internal/dto"
	appErrors "github.com/orbis-edu/school-bi-api/pkg/errors"
)

type fakeAcademicSrv struct {
	resp *dto.AcademicDashboardResponse
	hit  bool
	err  error
}

func (f *fakeAcademicSrv) Dashboard(context.Context) (*dto.AcademicDashboardResponse, bool, error) {
	return f.resp, f.hit, f.err
}

type fakeOverviewSrv struct {
	resp *dto.OverviewResponse
	err  error
}

func (f *fakeOverviewSrv) Overview(context.Context) (*dto.OverviewResponse, bool, error) {
	return f.resp, false, f.err
}

type fakeMapSrv struct {
	entries []dto.SchoolMapEntry
	err     error
}

func (f *fakeMapSrv) Schools(context.Context) ([]dto.SchoolMapEntry, bool, error) {
	return f.entries, false, f.err
}

func newTestContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, rec
}

func TestDashboardHandlerAcademicSuccess(t *testing.T) {
	handler := NewDashboardHandler(&fakeAcademicSrv{
		resp: &dto.AcademicDashboardResponse{
			KPIs:   dto.AcademicKPIs{GlobalAverage: 7.2, ApprovalRate: 33.3},
			Growth: map[string]string{"health_score": "+10.0%"},
		},
		hit: true,
	}, nil, nil, nil, nil)

	c, rec := newTestContext(t, "/dashboard/academic")
	handler.Academic(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// The payload is the contract itself, no envelope wrapping it.
	kpis, ok := body["kpis"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 33.3, kpis["approvalRate"])
	_, hasError := body["error"]
	assert.False(t, hasError)
}

func TestDashboardHandlerAcademicFailure(t *testing.T) {
	handler := NewDashboardHandler(&fakeAcademicSrv{
		err: appErrors.Wrap(errors.New("relation missing"), appErrors.ErrQueryFailed.Code, appErrors.ErrQueryFailed.Status, "failed to aggregate subject averages"),
	}, nil, nil, nil, nil)

	c, rec := newTestContext(t, "/dashboard/academic")
	handler.Academic(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "failed to aggregate subject averages", body["error"])
}

func TestDashboardHandlerOverviewSuccess(t *testing.T) {
	handler := NewDashboardHandler(nil, nil, nil, &fakeOverviewSrv{
		resp: &dto.OverviewResponse{
			Financial: dto.OverviewFinancial{Margin: 35},
			Customers: dto.OverviewCustomers{ActiveStudents: 410},
		},
	}, nil)

	c, rec := newTestContext(t, "/dashboard/overview")
	handler.Overview(c)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body dto.OverviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 410, body.Customers.ActiveStudents)
}

func TestDashboardHandlerMapSuccess(t *testing.T) {
	handler := NewDashboardHandler(nil, nil, nil, nil, &fakeMapSrv{
		entries: []dto.SchoolMapEntry{{ID: "1", Name: "Unidade Centro", City: "Rio de Janeiro", Position: [2]float64{-22.9068, -43.1729}}},
	})

	c, rec := newTestContext(t, "/dashboard/map")
	handler.Map(c)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body []dto.SchoolMapEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, -22.9068, body[0].Position[0])
}

func TestDashboardHandlerNilService(t *testing.T) {
	handler := NewDashboardHandler(nil, nil, nil, nil, nil)

	c, rec := newTestContext(t, "/dashboard/academic")
	handler.Academic(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
