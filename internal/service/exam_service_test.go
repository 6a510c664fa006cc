package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbis-edu/school-bi-api/internal/models"
)

type fakeExamRepo struct {
	aggregate models.ExamAggregate
}

func (f *fakeExamRepo) Aggregate(context.Context) (*models.ExamAggregate, error) {
	return &f.aggregate, nil
}

func TestExamServiceStatistics(t *testing.T) {
	repo := &fakeExamRepo{aggregate: models.ExamAggregate{
		Total:         200,
		AvgMath:       540,
		AvgLanguages:  575,
		AvgHumanities: 560,
		AvgScience:    548,
		AvgEssay:      610,
		MaxMath:       850,
		MaxEssay:      980,
	}}
	svc := NewExamService(repo, nil, nil)

	stats, cacheHit, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)

	assert.Equal(t, 200, stats.Total)
	assert.Equal(t, 540, stats.Averages.Math)
	assert.Equal(t, 980, stats.Extremes.MaxEssay)

	require.Len(t, stats.Areas, 5)
	assert.Equal(t, "MT", stats.Areas[0].Code)
	assert.Equal(t, 540, stats.Areas[0].Average)
	assert.Equal(t, "RD", stats.Areas[4].Code)
}
