package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orbis-edu/school-bi-api/internal/service"
	appErrors "github.com/orbis-edu/school-bi-api/pkg/errors"
	"github.com/orbis-edu/school-bi-api/pkg/response"
)

type reportService interface {
	AcademicReport(ctx context.Context, format string) (*service.ReportResult, error)
}

// ReportHandler streams rendered dashboard exports.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(service reportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// AcademicExport godoc
// @Summary Export the academic dashboard
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string true "Export format" Enums(csv, pdf)
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /reports/academic/export [get]
func (h *ReportHandler) AcademicExport(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	if format == "" {
		format = service.ReportFormatCSV
	}
	result, err := h.service.AcademicReport(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(200, result.ContentType, result.Payload)
}
