package service

import (
	"context"
	"fmt"
	"os"
	"testing"

	"coordinate-extractor/internal/models"
	"coordinate-extractor/internal/repository"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockWorkbookStore is a mock implementation of the WorkbookStore interface
type MockWorkbookStore struct {
	MockSheetReader
}

func (m *MockWorkbookStore) WriteSheet(ctx context.Context, path string, sheet *models.Sheet) error {
	args := m.Called(ctx, path, sheet)
	return args.Error(0)
}

func (m *MockWorkbookStore) Remove(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

func ordersSheet(totals ...any) *models.Sheet {
	sheet := &models.Sheet{Name: OrdersSheetName, Columns: []string{"ID", "Produkt", "Gesamtanzahl"}}
	for i, total := range totals {
		sheet.Records = append(sheet.Records, models.Record{
			Row:    i + 2,
			Values: map[string]any{"ID": float64(i + 1), "Produkt": "Produkt", "Gesamtanzahl": total},
		})
	}
	return sheet
}

func TestOrdersService_Total(t *testing.T) {
	tests := []struct {
		name          string
		sheet         *models.Sheet
		readErr       error
		expectedTotal float64
		expectedErr   error
	}{
		{
			name:          "sums numeric totals",
			sheet:         ordersSheet(3.0, 4.0, 5.5),
			expectedTotal: 12.5,
		},
		{
			name:          "empty and text cells count as zero",
			sheet:         ordersSheet(2.0, nil, "viele"),
			expectedTotal: 2,
		},
		{
			name:          "no records",
			sheet:         ordersSheet(),
			expectedTotal: 0,
		},
		{
			name:        "workbook missing",
			readErr:     fmt.Errorf("repository: failed to open workbook: %w", os.ErrNotExist),
			expectedErr: ErrOrdersNotFound,
		},
		{
			name:        "workbook unreadable",
			readErr:     assert.AnError,
			expectedErr: ErrOrdersRefresh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockWorkbookStore)
			svc := NewOrdersService(store, "Bestellung.xlsx", "Gesamtanzahl")
			store.On("ReadSheet", mock.Anything, "Bestellung.xlsx").Return(tt.sheet, tt.readErr)

			_, err := svc.Total()
			assert.ErrorIs(t, err, ErrOrdersNotLoaded)

			refreshErr := svc.Refresh(context.Background())
			total, err := svc.Total()

			if tt.expectedErr != nil {
				assert.ErrorIs(t, refreshErr, tt.expectedErr)
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, refreshErr)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedTotal, total)
			}

			store.AssertExpectations(t)
		})
	}
}

func TestOrdersService_RefreshRecovers(t *testing.T) {
	store := new(MockWorkbookStore)
	svc := NewOrdersService(store, "Bestellung.xlsx", "Gesamtanzahl")

	store.On("ReadSheet", mock.Anything, "Bestellung.xlsx").Return(nil, assert.AnError).Once()
	store.On("ReadSheet", mock.Anything, "Bestellung.xlsx").Return(ordersSheet(1.0, 1.0), nil).Once()

	assert.Error(t, svc.Refresh(context.Background()))
	_, err := svc.Total()
	assert.ErrorIs(t, err, ErrOrdersRefresh)

	require.NoError(t, svc.Refresh(context.Background()))
	total, err := svc.Total()
	require.NoError(t, err)
	assert.Equal(t, float64(2), total)
}

func TestOrdersService_Reset(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := repository.NewWorkbookRepository(fs)
	svc := NewOrdersService(store, "data/Bestellung.xlsx", "Gesamtanzahl")
	ctx := context.Background()

	require.NoError(t, store.WriteSheet(ctx, "data/Bestellung.xlsx", ordersSheet(7.0, 8.0)))
	require.NoError(t, svc.Refresh(ctx))
	total, err := svc.Total()
	require.NoError(t, err)
	assert.Equal(t, float64(15), total)

	require.NoError(t, svc.Reset(ctx))

	sheet, err := store.ReadSheet(ctx, "data/Bestellung.xlsx")
	require.NoError(t, err)
	assert.Equal(t, OrdersSheetName, sheet.Name)
	assert.Equal(t, []string{"ID", "Produkt", "Gesamtanzahl"}, sheet.Columns)
	require.Len(t, sheet.Records, 3)
	assert.Equal(t, "Produkt C", sheet.Records[2].Values["Produkt"])

	require.NoError(t, svc.Refresh(ctx))
	total, err = svc.Total()
	require.NoError(t, err)
	assert.Equal(t, float64(0), total)
}

func TestOrdersService_ResetCreatesMissingWorkbook(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := NewOrdersService(repository.NewWorkbookRepository(fs), "Bestellung.xlsx", "Gesamtanzahl")

	require.NoError(t, svc.Reset(context.Background()))

	exists, err := afero.Exists(fs, "Bestellung.xlsx")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestOrdersService_ResetErrors(t *testing.T) {
	store := new(MockWorkbookStore)
	svc := NewOrdersService(store, "Bestellung.xlsx", "Gesamtanzahl")

	store.On("Remove", mock.Anything, "Bestellung.xlsx").Return(false, assert.AnError).Once()
	assert.Error(t, svc.Reset(context.Background()))

	store.On("Remove", mock.Anything, "Bestellung.xlsx").Return(true, nil).Once()
	store.On("WriteSheet", mock.Anything, "Bestellung.xlsx", mock.AnythingOfType("*models.Sheet")).Return(assert.AnError).Once()
	assert.Error(t, svc.Reset(context.Background()))

	store.AssertExpectations(t)
}
