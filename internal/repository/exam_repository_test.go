package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamRepositoryAggregate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewExamRepository(db)

	rows := sqlmock.NewRows([]string{"total", "avg_math", "avg_languages", "avg_humanities", "avg_science", "avg_essay", "max_math", "max_essay"}).
		AddRow(200, 540, 575, 560, 548, 610, 850, 980)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE math_score IS NOT NULL")).
		WillReturnRows(rows)

	aggregate, err := repo.Aggregate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 200, aggregate.Total)
	assert.Equal(t, 540, aggregate.AvgMath)
	assert.Equal(t, 980, aggregate.MaxEssay)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExamRepositoryAggregateEmptyStore(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewExamRepository(db)

	rows := sqlmock.NewRows([]string{"total", "avg_math", "avg_languages", "avg_humanities", "avg_science", "avg_essay", "max_math", "max_essay"}).
		AddRow(0, 0, 0, 0, 0, 0, 0, 0)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE math_score IS NOT NULL")).
		WillReturnRows(rows)

	aggregate, err := repo.Aggregate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, aggregate.Total)
	assert.Equal(t, 0, aggregate.AvgEssay)
	assert.NoError(t, mock.ExpectationsWereMet())
}
