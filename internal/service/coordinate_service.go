package service

import (
	"context"
	"errors"
	"fmt"

	"coordinate-extractor/internal/extractor"
	"coordinate-extractor/internal/models"
)

// ErrColumnNotFound is returned when the input sheet lacks the email column.
var ErrColumnNotFound = errors.New("column not found")

// SheetReader loads the first worksheet of a workbook
type SheetReader interface {
	ReadSheet(ctx context.Context, path string) (*models.Sheet, error)
}

// RowStore persists the extracted coordinate rows
type RowStore interface {
	WriteRows(ctx context.Context, path string, rows []models.CoordinateRow) error
	Remove(ctx context.Context, path string) (bool, error)
}

// ProcessResult summarizes one run of the transform
type ProcessResult struct {
	Records    int
	Rows       int
	OutputPath string
}

// CoordinateService turns the email column of a workbook into a CSV of polygon coordinates
type CoordinateService struct {
	reader     SheetReader
	store      RowStore
	inputPath  string
	outputPath string
	column     string
}

// NewCoordinateService creates a new coordinate service
func NewCoordinateService(reader SheetReader, store RowStore, inputPath, outputPath, column string) *CoordinateService {
	return &CoordinateService{
		reader:     reader,
		store:      store,
		inputPath:  inputPath,
		outputPath: outputPath,
		column:     column,
	}
}

// OutputPath returns the CSV file the service writes
func (s *CoordinateService) OutputPath() string {
	return s.outputPath
}

// ClearOutput deletes the previous CSV file and reports whether there was one
func (s *CoordinateService) ClearOutput(ctx context.Context) (bool, error) {
	removed, err := s.store.Remove(ctx, s.outputPath)
	if err != nil {
		return false, fmt.Errorf("service: failed to remove previous output: %w", err)
	}
	return removed, nil
}

// Process reads the workbook, extracts one coordinate row per record that carries a
// POLYGON marker and overwrites the output file. Nothing is written when the column is missing.
func (s *CoordinateService) Process(ctx context.Context) (ProcessResult, error) {
	result := ProcessResult{OutputPath: s.outputPath}

	sheet, err := s.reader.ReadSheet(ctx, s.inputPath)
	if err != nil {
		return result, fmt.Errorf("service: failed to read %s: %w", s.inputPath, err)
	}
	result.Records = len(sheet.Records)

	if !sheet.HasColumn(s.column) {
		return result, fmt.Errorf("service: %w: %q", ErrColumnNotFound, s.column)
	}

	rows := ExtractRows(sheet.Records, s.column)

	if err := s.store.WriteRows(ctx, s.outputPath, rows); err != nil {
		return result, fmt.Errorf("service: failed to write coordinates: %w", err)
	}
	result.Rows = len(rows)

	return result, nil
}

// ExtractRows keeps the records whose column value carries a polygon and splits it into fields.
func ExtractRows(records []models.Record, column string) []models.CoordinateRow {
	rows := []models.CoordinateRow{}
	for _, rec := range records {
		row, ok := extractor.Row(rec.Values[column])
		if !ok {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}
