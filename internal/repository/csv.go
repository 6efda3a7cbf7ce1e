package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"coordinate-extractor/internal/models"

	"github.com/spf13/afero"
)

// CSVRepository stores coordinate rows as header-less CSV files
type CSVRepository struct {
	fs afero.Fs
}

// NewCSVRepository creates a CSV repository on top of fs
func NewCSVRepository(fs afero.Fs) *CSVRepository {
	return &CSVRepository{fs: fs}
}

// WriteRows overwrites path with one line per row. Rows keep their own length and a
// row holding a single empty field is written as "".
func (r *CSVRepository) WriteRows(ctx context.Context, path string, rows []models.CoordinateRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ensureDir(r.fs, path); err != nil {
		return err
	}

	file, err := r.fs.Create(path)
	if err != nil {
		return fmt.Errorf("repository: failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(file)
	for _, row := range rows {
		if len(row) == 1 && row[0] == "" {
			// encoding/csv emits a blank line here, which readers skip
			w.Flush()
			if _, err := io.WriteString(file, `""`+"\n"); err != nil {
				file.Close()
				return fmt.Errorf("repository: failed to write row: %w", err)
			}
			continue
		}
		if err := w.Write(row); err != nil {
			file.Close()
			return fmt.Errorf("repository: failed to write row: %w", err)
		}
	}
	w.Flush()

	if err := w.Error(); err != nil {
		file.Close()
		return fmt.Errorf("repository: failed to flush %s: %w", path, err)
	}

	return file.Close()
}

// ReadRows reads every row of the CSV file at path.
func (r *CSVRepository) ReadRows(ctx context.Context, path string) ([]models.CoordinateRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := r.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Rows are ragged

	var rows []models.CoordinateRow
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("repository: failed to read record: %w", err)
		}
		rows = append(rows, record)
	}

	return rows, nil
}

// Remove deletes the CSV file at path and reports whether it existed.
func (r *CSVRepository) Remove(ctx context.Context, path string) (bool, error) {
	return removeFile(r.fs, path)
}
