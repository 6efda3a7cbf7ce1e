package repository

import (
	"context"
	"fmt"
	"strconv"

	"coordinate-extractor/internal/models"

	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"
)

// WorkbookRepository reads and writes xlsx workbooks
type WorkbookRepository struct {
	fs afero.Fs
}

// NewWorkbookRepository creates a workbook repository on top of fs
func NewWorkbookRepository(fs afero.Fs) *WorkbookRepository {
	return &WorkbookRepository{fs: fs}
}

// ReadSheet loads the first worksheet of the workbook at path. The first row is the header.
func (r *WorkbookRepository) ReadSheet(ctx context.Context, path string) (*models.Sheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := r.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to open workbook: %w", err)
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to parse workbook %s: %w", path, err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("repository: no sheets found in %s", path)
	}
	name := sheetList[0]

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to read rows of sheet %q: %w", name, err)
	}

	sheet := &models.Sheet{Name: name}
	if len(rows) == 0 {
		return sheet, nil
	}
	sheet.Columns = rows[0]

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header
		values := make(map[string]any, len(sheet.Columns))
		for col, header := range sheet.Columns {
			if header == "" {
				continue
			}
			value, err := cellValue(f, name, row, col, rowNum)
			if err != nil {
				return nil, err
			}
			values[header] = value
		}
		sheet.Records = append(sheet.Records, models.Record{Row: rowNum, Values: values})
	}

	return sheet, nil
}

// cellValue types the formatted value GetRows returned for one cell.
func cellValue(f *excelize.File, sheet string, row []string, col, rowNum int) (any, error) {
	if col >= len(row) || row[col] == "" {
		return nil, nil
	}
	formatted := row[col]

	cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
	if err != nil {
		return nil, fmt.Errorf("repository: invalid cell position: %w", err)
	}

	cellType, err := f.GetCellType(sheet, cell)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to read type of cell %s: %w", cell, err)
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return formatted, nil
	case excelize.CellTypeBool:
		return formatted == "TRUE" || formatted == "1", nil
	case excelize.CellTypeError:
		return nil, nil
	}

	raw, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to read cell %s: %w", cell, err)
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n, nil
	}
	return formatted, nil
}

// WriteSheet replaces the workbook at path with a single worksheet holding sheet's header and records.
func (r *WorkbookRepository) WriteSheet(ctx context.Context, path string, sheet *models.Sheet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
		return fmt.Errorf("repository: failed to name sheet %q: %w", sheet.Name, err)
	}

	header := make([]any, len(sheet.Columns))
	for i, c := range sheet.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return fmt.Errorf("repository: failed to write header: %w", err)
	}

	for i, rec := range sheet.Records {
		values := make([]any, len(sheet.Columns))
		for j, c := range sheet.Columns {
			values[j] = rec.Values[c]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("repository: invalid cell position: %w", err)
		}
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return fmt.Errorf("repository: failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("repository: failed to encode workbook: %w", err)
	}

	if err := ensureDir(r.fs, path); err != nil {
		return err
	}
	if err := afero.WriteFile(r.fs, path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("repository: failed to write workbook %s: %w", path, err)
	}

	return nil
}

// Remove deletes the workbook at path and reports whether it existed.
func (r *WorkbookRepository) Remove(ctx context.Context, path string) (bool, error) {
	return removeFile(r.fs, path)
}
