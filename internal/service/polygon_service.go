package service

import (
	"context"
	"errors"
	"fmt"

	"coordinate-extractor/internal/models"
)

// ErrInvalidCoordinates is returned for a latitude or longitude out of range.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// PolygonService contains the business logic for point-in-polygon lookups
type PolygonService struct {
	repo PolygonRepository
}

// PolygonRepository interface for dependency injection
type PolygonRepository interface {
	FindPolygonsContaining(ctx context.Context, lat, lon float64) ([]models.Polygon, error)
}

// NewPolygonService creates a new polygon service
func NewPolygonService(repo PolygonRepository) *PolygonService {
	return &PolygonService{repo: repo}
}

// FindContaining returns the imported polygons that cover the given coordinates
func (s *PolygonService) FindContaining(ctx context.Context, lat, lon float64) ([]models.Polygon, error) {
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("service: %w: latitude %f", ErrInvalidCoordinates, lat)
	}
	if lon < -180 || lon > 180 {
		return nil, fmt.Errorf("service: %w: longitude %f", ErrInvalidCoordinates, lon)
	}

	polygons, err := s.repo.FindPolygonsContaining(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("service: failed to find polygons: %w", err)
	}

	return polygons, nil
}
