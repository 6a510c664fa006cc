package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/orbis-edu/school-bi-api/pkg/errors"
)

type fakeAnalyticsSrv struct {
	payload    interface{}
	err        error
	lastMetric string
}

func (f *fakeAnalyticsSrv) Metric(_ context.Context, metric string) (interface{}, bool, error) {
	f.lastMetric = metric
	return f.payload, false, f.err
}

func TestAnalyticsHandlerMissingMetric(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAnalyticsHandler(&fakeAnalyticsSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/analytics", nil)

	handler.Metric(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyticsHandlerUnknownMetric(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAnalyticsHandler(&fakeAnalyticsSrv{
		err: appErrors.Clone(appErrors.ErrValidation, `unknown metric "revenue"`),
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/analytics?metric=revenue", nil)

	handler.Metric(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "unknown metric")
}

func TestAnalyticsHandlerSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeAnalyticsSrv{payload: map[string]interface{}{"current": 81.0}}
	handler := NewAnalyticsHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/analytics?metric=health-score", nil)

	handler.Metric(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "health-score", srv.lastMetric)
}
