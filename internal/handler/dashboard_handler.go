package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/orbis-edu/school-bi-api/internal/dto"
	"github.com/orbis-edu/school-bi-api/internal/middleware"
	appErrors "github.com/orbis-edu/school-bi-api/pkg/errors"
	"github.com/orbis-edu/school-bi-api/pkg/response"
)

type academicService interface {
	Dashboard(ctx context.Context) (*dto.AcademicDashboardResponse, bool, error)
}

type financeService interface {
	Dashboard(ctx context.Context) (*dto.FinancialDashboardResponse, bool, error)
}

type operationsService interface {
	Dashboard(ctx context.Context) (*dto.OperationalDashboardResponse, bool, error)
}

type overviewService interface {
	Overview(ctx context.Context) (*dto.OverviewResponse, bool, error)
}

type schoolMapService interface {
	Schools(ctx context.Context) ([]dto.SchoolMapEntry, bool, error)
}

// DashboardHandler wires the dashboard aggregators to HTTP endpoints.
type DashboardHandler struct {
	academic   academicService
	finance    financeService
	operations operationsService
	overview   overviewService
	schoolMap  schoolMapService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(academic academicService, finance financeService, operations operationsService, overview overviewService, schoolMap schoolMapService) *DashboardHandler {
	return &DashboardHandler{
		academic:   academic,
		finance:    finance,
		operations: operations,
		overview:   overview,
		schoolMap:  schoolMap,
	}
}

// Academic godoc
// @Summary Academic performance dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.AcademicDashboardResponse
// @Failure 500 {object} response.ErrorBody
// @Router /dashboard/academic [get]
func (h *DashboardHandler) Academic(c *gin.Context) {
	if h.academic == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	summary, cacheHit, err := h.academic.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.OK(c, summary)
}

// Financial godoc
// @Summary Financial dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.FinancialDashboardResponse
// @Failure 500 {object} response.ErrorBody
// @Router /dashboard/financial [get]
func (h *DashboardHandler) Financial(c *gin.Context) {
	if h.finance == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	summary, cacheHit, err := h.finance.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.OK(c, summary)
}

// Operational godoc
// @Summary Operational dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.OperationalDashboardResponse
// @Failure 500 {object} response.ErrorBody
// @Router /dashboard/operational [get]
func (h *DashboardHandler) Operational(c *gin.Context) {
	if h.operations == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	summary, cacheHit, err := h.operations.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.OK(c, summary)
}

// Overview godoc
// @Summary Cross-domain overview KPIs
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.OverviewResponse
// @Failure 500 {object} response.ErrorBody
// @Router /dashboard/overview [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	if h.overview == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	summary, cacheHit, err := h.overview.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.OK(c, summary)
}

// Map godoc
// @Summary School locator map pins
// @Tags Dashboard
// @Produce json
// @Success 200 {array} dto.SchoolMapEntry
// @Failure 500 {object} response.ErrorBody
// @Router /dashboard/map [get]
func (h *DashboardHandler) Map(c *gin.Context) {
	if h.schoolMap == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	schools, cacheHit, err := h.schoolMap.Schools(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.OK(c, schools)
}
