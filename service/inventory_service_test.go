package service

import (
	"context"
	"errors"
	"testing"

	"Gin_postgres_redis_lend_tool/models"
)

func TestInventoryService_CreateItem(t *testing.T) {
	store := newStubStore()
	svc := NewInventoryService(store)

	it, err := svc.CreateItem(context.Background(), "  TestItem ", 3)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if it.Name != "TestItem" || it.Total != 3 || it.Available != 3 {
		t.Fatalf("new items start fully available: %+v", it)
	}
	if _, ok := store.items[it.ID]; !ok {
		t.Fatalf("item not persisted")
	}
}

func TestInventoryService_CreateItem_Validation(t *testing.T) {
	svc := NewInventoryService(newStubStore())

	cases := []struct {
		name  string
		total int
		field string
	}{
		{"", 3, "name"},
		{"   ", 3, "name"},
		{"Widget", -1, "total"},
	}
	for _, tc := range cases {
		_, err := svc.CreateItem(context.Background(), tc.name, tc.total)
		var ve *models.ValidationError
		if !errors.As(err, &ve) || ve.Field != tc.field {
			t.Fatalf("create(%q, %d): expected validation on %s, got %v", tc.name, tc.total, tc.field, err)
		}
		if !errors.Is(err, models.ErrValidation) {
			t.Fatalf("validation errors must match ErrValidation")
		}
	}
}

func TestInventoryService_CreateItem_ZeroTotal(t *testing.T) {
	svc := NewInventoryService(newStubStore())
	it, err := svc.CreateItem(context.Background(), "Placeholder", 0)
	if err != nil {
		t.Fatalf("zero total is allowed: %v", err)
	}
	if it.Available != 0 {
		t.Fatalf("expected 0 available, got %d", it.Available)
	}
}

func TestInventoryService_UpdateItem(t *testing.T) {
	store := newStubStore()
	svc := NewInventoryService(store)
	it := store.addItem("TestItem", 3)

	if _, err := svc.UpdateItem(context.Background(), it.ID, "TestItemX", 5, 5); err != nil {
		t.Fatalf("update: %v", err)
	}
	got := store.items[it.ID]
	if got.Name != "TestItemX" || got.Total != 5 || got.Available != 5 {
		t.Fatalf("unexpected item: %+v", got)
	}
}

func TestInventoryService_UpdateItem_Validation(t *testing.T) {
	store := newStubStore()
	svc := NewInventoryService(store)
	it := store.addItem("TestItem", 3)

	cases := []struct {
		name             string
		total, available int
		field            string
	}{
		{"", 3, 3, "name"},
		{"X", -1, 0, "total"},
		{"X", 3, -1, "available"},
		{"X", 3, 4, "available"},
	}
	for _, tc := range cases {
		_, err := svc.UpdateItem(context.Background(), it.ID, tc.name, tc.total, tc.available)
		var ve *models.ValidationError
		if !errors.As(err, &ve) || ve.Field != tc.field {
			t.Fatalf("update(%+v): expected validation on %s, got %v", tc, tc.field, err)
		}
	}
	if got := store.items[it.ID]; got.Name != "TestItem" || got.Total != 3 {
		t.Fatalf("rejected updates must not change the item: %+v", got)
	}
}

func TestInventoryService_UpdateItem_NotFound(t *testing.T) {
	svc := NewInventoryService(newStubStore())
	if _, err := svc.UpdateItem(context.Background(), 9, "X", 1, 1); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInventoryService_DeleteItem_KeepsLoans(t *testing.T) {
	store := newStubStore()
	inv := NewInventoryService(store)
	loans := NewLoanService(store, true)
	it := store.addItem("TestItem", 3)

	if _, err := loans.Borrow(context.Background(), it.ID, "student1", 1); err != nil {
		t.Fatalf("borrow: %v", err)
	}
	if err := inv.DeleteItem(context.Background(), it.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	items, _ := inv.ListItems(context.Background())
	if len(items) != 0 {
		t.Fatalf("deleted item still listed")
	}
	if len(store.loans) != 1 {
		t.Fatalf("loan rows must remain after delete")
	}
	if err := inv.DeleteItem(context.Background(), it.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestInventoryService_CreateItem_StoreError(t *testing.T) {
	store := newStubStore()
	store.failErr = errors.New("disk full")
	svc := NewInventoryService(store)
	if _, err := svc.CreateItem(context.Background(), "Widget", 1); err == nil || err.Error() != "disk full" {
		t.Fatalf("expected store error, got %v", err)
	}
}
