package service

import (
	"context"
	"fmt"

	"coordinate-extractor/internal/models"

	"github.com/rs/zerolog/log"
)

// RowReader reads coordinate rows back from the output file
type RowReader interface {
	ReadRows(ctx context.Context, path string) ([]models.CoordinateRow, error)
}

// PolygonWriter stores polygons
type PolygonWriter interface {
	CreateSchema(ctx context.Context) error
	ReplacePolygons(ctx context.Context, polygons []models.Polygon) error
	CountPolygons(ctx context.Context) (int, error)
}

// ImportResult summarizes an import
type ImportResult struct {
	Rows     int
	Imported int
	Skipped  int
}

// ImportService loads the coordinate CSV into the polygon store
type ImportService struct {
	rows RowReader
	repo PolygonWriter
}

// NewImportService creates a new import service
func NewImportService(rows RowReader, repo PolygonWriter) *ImportService {
	return &ImportService{rows: rows, repo: repo}
}

// Import replaces the stored polygons with the rows of the CSV at path.
// Rows that do not form a polygon are skipped.
func (s *ImportService) Import(ctx context.Context, path string) (ImportResult, error) {
	var result ImportResult

	rows, err := s.rows.ReadRows(ctx, path)
	if err != nil {
		return result, fmt.Errorf("service: failed to read coordinates: %w", err)
	}
	result.Rows = len(rows)

	polygons := make([]models.Polygon, 0, len(rows))
	for i, row := range rows {
		p, err := models.NewPolygon(i+1, row)
		if err != nil {
			log.Warn().Err(err).Int("line", i+1).Msg("skipping row")
			result.Skipped++
			continue
		}
		polygons = append(polygons, p)
	}

	if err := s.repo.CreateSchema(ctx); err != nil {
		return result, fmt.Errorf("service: failed to prepare schema: %w", err)
	}
	if err := s.repo.ReplacePolygons(ctx, polygons); err != nil {
		return result, fmt.Errorf("service: failed to store polygons: %w", err)
	}

	count, err := s.repo.CountPolygons(ctx)
	if err != nil {
		return result, fmt.Errorf("service: failed to verify import: %w", err)
	}
	if count != len(polygons) {
		return result, fmt.Errorf("service: polygon count mismatch: expected %d, got %d", len(polygons), count)
	}
	result.Imported = count

	return result, nil
}
