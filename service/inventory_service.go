package service

import (
	"context"
	"strings"

	"Gin_postgres_redis_lend_tool/db"
	"Gin_postgres_redis_lend_tool/metrics"
	"Gin_postgres_redis_lend_tool/models"
)

// InventoryService manages the catalog. Callers check the admin capability
// before invoking any mutation.
type InventoryService struct {
	store ItemStore
}

func NewInventoryService(store ItemStore) *InventoryService {
	return &InventoryService{store: store}
}

func (s *InventoryService) ListItems(ctx context.Context) ([]models.Item, error) {
	return s.store.ListItems(ctx)
}

func (s *InventoryService) ListBorrowable(ctx context.Context) ([]models.Item, error) {
	return s.store.ListBorrowableItems(ctx)
}

// ListWithOutstanding backs the admin page: every item with its open loan totals.
func (s *InventoryService) ListWithOutstanding(ctx context.Context) ([]db.AdminItemRow, error) {
	return s.store.ListItemsWithOutstanding(ctx)
}

func (s *InventoryService) GetItem(ctx context.Context, id uint) (*models.Item, error) {
	return s.store.FindItemByID(ctx, id)
}

func (s *InventoryService) CreateItem(ctx context.Context, name string, total int) (*models.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.Invalid("name", "is required")
	}
	if total < 0 {
		return nil, models.Invalid("total", "must not be negative")
	}
	it := &models.Item{Name: name, Total: total, Available: total}
	if err := s.store.CreateItem(ctx, it); err != nil {
		return nil, err
	}
	metrics.ItemMutationsTotal.WithLabelValues("create").Inc()
	return it, nil
}

func (s *InventoryService) UpdateItem(ctx context.Context, id uint, name string, total, available int) (*models.Item, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return nil, models.Invalid("name", "is required")
	case total < 0:
		return nil, models.Invalid("total", "must not be negative")
	case available < 0:
		return nil, models.Invalid("available", "must not be negative")
	case available > total:
		return nil, models.Invalid("available", "must not exceed total")
	}
	if err := s.store.UpdateItem(ctx, id, name, total, available); err != nil {
		return nil, err
	}
	metrics.ItemMutationsTotal.WithLabelValues("update").Inc()
	return &models.Item{ID: id, Name: name, Total: total, Available: available}, nil
}

func (s *InventoryService) DeleteItem(ctx context.Context, id uint) error {
	if err := s.store.DeleteItem(ctx, id); err != nil {
		return err
	}
	metrics.ItemMutationsTotal.WithLabelValues("delete").Inc()
	return nil
}
