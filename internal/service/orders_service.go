package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"coordinate-extractor/internal/models"
)

var (
	// ErrOrdersNotLoaded is returned by Total before the first refresh.
	ErrOrdersNotLoaded = errors.New("orders not loaded yet")
	// ErrOrdersNotFound is cached when the orders workbook does not exist.
	ErrOrdersNotFound = errors.New("orders workbook not found")
	// ErrOrdersRefresh is cached when the orders workbook cannot be read.
	ErrOrdersRefresh = errors.New("failed to refresh orders")
)

// OrdersSheetName is the worksheet name of a freshly reset orders workbook.
const OrdersSheetName = "Bestellungen"

// DefaultOrders are the product lines a reset workbook starts with.
var DefaultOrders = []models.Order{
	{ID: 1, Product: "Produkt A"},
	{ID: 2, Product: "Produkt B"},
	{ID: 3, Product: "Produkt C"},
}

// WorkbookStore reads, writes and deletes workbooks
type WorkbookStore interface {
	SheetReader
	WriteSheet(ctx context.Context, path string, sheet *models.Sheet) error
	Remove(ctx context.Context, path string) (bool, error)
}

// OrdersService caches the total of the orders column of the orders workbook
type OrdersService struct {
	store  WorkbookStore
	path   string
	column string

	mu     sync.RWMutex
	loaded bool
	total  float64
	err    error
}

// NewOrdersService creates a new orders service
func NewOrdersService(store WorkbookStore, path, column string) *OrdersService {
	return &OrdersService{store: store, path: path, column: column}
}

// Refresh re-reads the workbook and updates the cached total. Failures are cached as well,
// so Total reports them until the next successful refresh.
func (s *OrdersService) Refresh(ctx context.Context) error {
	sheet, err := s.store.ReadSheet(ctx, s.path)
	if err != nil {
		cached := ErrOrdersRefresh
		if errors.Is(err, os.ErrNotExist) {
			cached = ErrOrdersNotFound
		}
		s.set(0, cached)
		return fmt.Errorf("service: %w: %w", cached, err)
	}

	var total float64
	for _, rec := range sheet.Records {
		if n, ok := rec.Values[s.column].(float64); ok {
			total += n
		}
	}
	s.set(total, nil)

	return nil
}

// Total returns the cached total
func (s *OrdersService) Total() (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return 0, ErrOrdersNotLoaded
	}
	return s.total, s.err
}

// Reset replaces the orders workbook with DefaultOrders, all totals at zero.
func (s *OrdersService) Reset(ctx context.Context) error {
	if _, err := s.store.Remove(ctx, s.path); err != nil {
		return fmt.Errorf("service: failed to remove orders workbook: %w", err)
	}

	sheet := &models.Sheet{
		Name:    OrdersSheetName,
		Columns: []string{"ID", "Produkt", s.column},
	}
	for _, o := range DefaultOrders {
		sheet.Records = append(sheet.Records, models.Record{
			Values: map[string]any{"ID": o.ID, "Produkt": o.Product, s.column: o.Total},
		})
	}

	if err := s.store.WriteSheet(ctx, s.path, sheet); err != nil {
		return fmt.Errorf("service: failed to write orders workbook: %w", err)
	}
	return nil
}

func (s *OrdersService) set(total float64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.total = total
	s.err = err
}
