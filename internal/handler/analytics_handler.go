package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orbis-edu/school-bi-api/internal/middleware"
	appErrors "github.com/orbis-edu/school-bi-api/pkg/errors"
	"github.com/orbis-edu/school-bi-api/pkg/response"
)

type analyticsService interface {
	Metric(ctx context.Context, metric string) (interface{}, bool, error)
}

// AnalyticsHandler serves the per-metric drilldown endpoint.
type AnalyticsHandler struct {
	service analyticsService
}

// NewAnalyticsHandler constructs the handler.
func NewAnalyticsHandler(service analyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Metric godoc
// @Summary Metric drilldown
// @Tags Analytics
// @Produce json
// @Param metric query string true "Metric selector" Enums(dropout, health-score, siblings, nps, total-students)
// @Success 200 {object} interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /dashboard/analytics [get]
func (h *AnalyticsHandler) Metric(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	metric := strings.TrimSpace(c.Query("metric"))
	if metric == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "metric is required"))
		return
	}
	payload, cacheHit, err := h.service.Metric(c.Request.Context(), metric)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.OK(c, payload)
}
