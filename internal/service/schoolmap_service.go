package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/orbis-edu/school-bi-api/internal/dto"
	"github.com/orbis-edu/school-bi-api/internal/models"
)

const mapCacheKey = "dash:map"

type schoolLister interface {
	ListWithStudentCounts(ctx context.Context) ([]models.SchoolStudentCount, error)
}

// cityCoords resolves a city name to [lat, lng]. Intentionally static:
// the unit footprint is small and a geocoding dependency is not worth it.
var cityCoords = map[string][2]float64{
	"Rio de Janeiro": {-22.9068, -43.1729},
	"São Paulo":      {-23.5505, -46.6333},
	"Curitiba":       {-25.4284, -49.2733},
}

// fallbackCoords pins unmapped cities near the Rio metro area.
var fallbackCoords = [2]float64{-22.9, -43.2}

// SchoolMapService produces the school locator pins.
type SchoolMapService struct {
	repo   schoolLister
	cache  *CacheService
	logger *zap.Logger
}

// NewSchoolMapService constructs a SchoolMapService.
func NewSchoolMapService(repo schoolLister, cache *CacheService, logger *zap.Logger) *SchoolMapService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchoolMapService{repo: repo, cache: cache, logger: logger}
}

// Schools returns one pin per school and whether the list was cached.
func (s *SchoolMapService) Schools(ctx context.Context) ([]dto.SchoolMapEntry, bool, error) {
	if s.cache != nil {
		var cached []dto.SchoolMapEntry
		if hit, err := s.cache.Get(ctx, mapCacheKey, &cached); err == nil && hit {
			return cached, true, nil
		}
	}

	schools, err := s.repo.ListWithStudentCounts(ctx)
	if err != nil {
		return nil, false, storeError(err, "failed to load school map data")
	}

	entries := make([]dto.SchoolMapEntry, 0, len(schools))
	for _, school := range schools {
		position, ok := cityCoords[school.City]
		if !ok {
			position = fallbackCoords
		}
		entries = append(entries, dto.SchoolMapEntry{
			ID:       school.ID,
			Name:     school.Name,
			City:     school.City,
			Students: school.Students,
			Position: position,
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, mapCacheKey, entries, 0); err != nil {
			s.logger.Warn("map cache write failed", zap.Error(err))
		}
	}
	return entries, false, nil
}
