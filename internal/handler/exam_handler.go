package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/orbis-edu/school-bi-api/internal/dto"
	"github.com/orbis-edu/school-bi-api/internal/middleware"
	appErrors "github.com/orbis-edu/school-bi-api/pkg/errors"
	"github.com/orbis-edu/school-bi-api/pkg/response"
)

type examService interface {
	Statistics(ctx context.Context) (*dto.ExamStatisticsResponse, bool, error)
}

// ExamHandler serves the national exam statistics dashboard.
type ExamHandler struct {
	service examService
}

// NewExamHandler constructs the handler.
func NewExamHandler(service examService) *ExamHandler {
	return &ExamHandler{service: service}
}

// Statistics godoc
// @Summary Exam score statistics
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.ExamStatisticsResponse
// @Failure 500 {object} response.ErrorBody
// @Router /dashboard/exams [get]
func (h *ExamHandler) Statistics(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	stats, cacheHit, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.OK(c, stats)
}
