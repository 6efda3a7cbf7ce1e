package service

import (
	"context"
	"testing"

	"coordinate-extractor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRowReader is a mock implementation of the RowReader interface
type MockRowReader struct {
	mock.Mock
}

func (m *MockRowReader) ReadRows(ctx context.Context, path string) ([]models.CoordinateRow, error) {
	args := m.Called(ctx, path)
	rows, _ := args.Get(0).([]models.CoordinateRow)
	return rows, args.Error(1)
}

// MockPolygonWriter is a mock implementation of the PolygonWriter interface
type MockPolygonWriter struct {
	mock.Mock
}

func (m *MockPolygonWriter) CreateSchema(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockPolygonWriter) ReplacePolygons(ctx context.Context, polygons []models.Polygon) error {
	return m.Called(ctx, polygons).Error(0)
}

func (m *MockPolygonWriter) CountPolygons(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestImportService_Import(t *testing.T) {
	rows := []models.CoordinateRow{
		{"0 0", "1 0", "1 1"},
		{"5 5"},
		{"2 2", "3 2", "3 3", "2 2"},
		{"x y", "1 1", "2 2"},
	}

	reader := new(MockRowReader)
	writer := new(MockPolygonWriter)
	svc := NewImportService(reader, writer)

	reader.On("ReadRows", mock.Anything, "out.csv").Return(rows, nil)
	writer.On("CreateSchema", mock.Anything).Return(nil)
	writer.On("ReplacePolygons", mock.Anything, mock.MatchedBy(func(p []models.Polygon) bool {
		return len(p) == 2 && p[0].SourceRow == 1 && p[1].SourceRow == 3 && p[0].Ring == "0 0, 1 0, 1 1, 0 0"
	})).Return(nil)
	writer.On("CountPolygons", mock.Anything).Return(2, nil)

	result, err := svc.Import(context.Background(), "out.csv")
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Rows: 4, Imported: 2, Skipped: 2}, result)

	reader.AssertExpectations(t)
	writer.AssertExpectations(t)
}

func TestImportService_ImportErrors(t *testing.T) {
	rows := []models.CoordinateRow{{"0 0", "1 0", "1 1"}}

	tests := []struct {
		name  string
		setup func(r *MockRowReader, w *MockPolygonWriter)
	}{
		{
			name: "read failure",
			setup: func(r *MockRowReader, w *MockPolygonWriter) {
				r.On("ReadRows", mock.Anything, "out.csv").Return(nil, assert.AnError)
			},
		},
		{
			name: "schema failure",
			setup: func(r *MockRowReader, w *MockPolygonWriter) {
				r.On("ReadRows", mock.Anything, "out.csv").Return(rows, nil)
				w.On("CreateSchema", mock.Anything).Return(assert.AnError)
			},
		},
		{
			name: "insert failure",
			setup: func(r *MockRowReader, w *MockPolygonWriter) {
				r.On("ReadRows", mock.Anything, "out.csv").Return(rows, nil)
				w.On("CreateSchema", mock.Anything).Return(nil)
				w.On("ReplacePolygons", mock.Anything, mock.Anything).Return(assert.AnError)
			},
		},
		{
			name: "count mismatch",
			setup: func(r *MockRowReader, w *MockPolygonWriter) {
				r.On("ReadRows", mock.Anything, "out.csv").Return(rows, nil)
				w.On("CreateSchema", mock.Anything).Return(nil)
				w.On("ReplacePolygons", mock.Anything, mock.Anything).Return(nil)
				w.On("CountPolygons", mock.Anything).Return(5, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := new(MockRowReader)
			writer := new(MockPolygonWriter)
			tt.setup(reader, writer)

			_, err := NewImportService(reader, writer).Import(context.Background(), "out.csv")
			assert.Error(t, err)

			reader.AssertExpectations(t)
			writer.AssertExpectations(t)
		})
	}
}
