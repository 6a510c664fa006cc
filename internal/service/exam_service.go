package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/orbis-edu/school-bi-api/internal/dto"
	"github.com/orbis-edu/school-bi-api/internal/models"
)

const examCacheKey = "dash:exams"

type examRepository interface {
	Aggregate(ctx context.Context) (*models.ExamAggregate, error)
}

// ExamService serves the national exam statistics dashboard.
type ExamService struct {
	repo   examRepository
	cache  *CacheService
	logger *zap.Logger
}

// NewExamService constructs an ExamService.
func NewExamService(repo examRepository, cache *CacheService, logger *zap.Logger) *ExamService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamService{repo: repo, cache: cache, logger: logger}
}

// Statistics returns the exam aggregate and whether it was cached.
func (s *ExamService) Statistics(ctx context.Context) (*dto.ExamStatisticsResponse, bool, error) {
	if s.cache != nil {
		var cached dto.ExamStatisticsResponse
		if hit, err := s.cache.Get(ctx, examCacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	aggregate, err := s.repo.Aggregate(ctx)
	if err != nil {
		return nil, false, storeError(err, "failed to aggregate exam results")
	}

	response := &dto.ExamStatisticsResponse{
		Total: aggregate.Total,
		Averages: dto.ExamAverages{
			Math:       aggregate.AvgMath,
			Languages:  aggregate.AvgLanguages,
			Humanities: aggregate.AvgHumanities,
			Science:    aggregate.AvgScience,
			Essay:      aggregate.AvgEssay,
		},
		Extremes: dto.ExamExtremes{
			MaxMath:  aggregate.MaxMath,
			MaxEssay: aggregate.MaxEssay,
		},
		Areas: []dto.ExamArea{
			{Area: "Matemática", Code: "MT", Average: aggregate.AvgMath},
			{Area: "Linguagens", Code: "LC", Average: aggregate.AvgLanguages},
			{Area: "Ciências Humanas", Code: "CH", Average: aggregate.AvgHumanities},
			{Area: "Ciências da Natureza", Code: "CN", Average: aggregate.AvgScience},
			{Area: "Redação", Code: "RD", Average: aggregate.AvgEssay},
		},
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, examCacheKey, response, 0); err != nil {
			s.logger.Warn("exam cache write failed", zap.Error(err))
		}
	}
	return response, false, nil
}
