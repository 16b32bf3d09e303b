package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"Gin_postgres_redis_lend_tool/db"
	"Gin_postgres_redis_lend_tool/models"
)

// ---------------------------------------------------------------------------
// In-memory stub store
// ---------------------------------------------------------------------------

type stubStore struct {
	items    map[uint]*models.Item
	loans    map[uint]*models.Loan
	users    map[string]*models.User
	nextID   uint
	failErr  error // if set, mutations return this error
	touchErr error // if set, TouchUserLogin returns this error
	touched  []uint
}

func newStubStore() *stubStore {
	return &stubStore{
		items: make(map[uint]*models.Item),
		loans: make(map[uint]*models.Loan),
		users: make(map[string]*models.User),
	}
}

func (s *stubStore) id() uint { s.nextID++; return s.nextID }

func (s *stubStore) addItem(name string, total int) *models.Item {
	it := &models.Item{ID: s.id(), Name: name, Total: total, Available: total}
	s.items[it.ID] = it
	return it
}

func (s *stubStore) ListItems(context.Context) ([]models.Item, error) {
	out := make([]models.Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubStore) ListBorrowableItems(ctx context.Context) ([]models.Item, error) {
	all, _ := s.ListItems(ctx)
	var out []models.Item
	for _, it := range all {
		if it.Available > 0 {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *stubStore) ListItemsWithOutstanding(ctx context.Context) ([]db.AdminItemRow, error) {
	all, _ := s.ListItems(ctx)
	out := make([]db.AdminItemRow, 0, len(all))
	for _, it := range all {
		row := db.AdminItemRow{ID: it.ID, Name: it.Name, Total: it.Total, Available: it.Available}
		for _, l := range s.loans {
			if l.ItemID == it.ID && !l.Returned {
				row.OpenLoans++
				row.Outstanding += l.Qty
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *stubStore) FindItemByID(_ context.Context, id uint) (*models.Item, error) {
	it, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", id, models.ErrNotFound)
	}
	clone := *it
	return &clone, nil
}

func (s *stubStore) CreateItem(_ context.Context, it *models.Item) error {
	if s.failErr != nil {
		return s.failErr
	}
	it.ID = s.id()
	clone := *it
	s.items[it.ID] = &clone
	return nil
}

func (s *stubStore) UpdateItem(_ context.Context, id uint, name string, total, available int) error {
	it, ok := s.items[id]
	if !ok {
		return fmt.Errorf("item %d: %w", id, models.ErrNotFound)
	}
	it.Name, it.Total, it.Available = name, total, available
	return nil
}

func (s *stubStore) DeleteItem(_ context.Context, id uint) error {
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("item %d: %w", id, models.ErrNotFound)
	}
	delete(s.items, id)
	return nil
}

func (s *stubStore) FindLoanByID(_ context.Context, id uint) (*models.Loan, error) {
	l, ok := s.loans[id]
	if !ok {
		return nil, fmt.Errorf("loan %d: %w", id, models.ErrNotFound)
	}
	clone := *l
	return &clone, nil
}

func (s *stubStore) BorrowItem(_ context.Context, itemID uint, borrower string, qty int) (*models.Loan, error) {
	it, ok := s.items[itemID]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", itemID, models.ErrNotFound)
	}
	if qty <= 0 || qty > it.Available {
		return nil, models.ErrInvalidQuantity
	}
	it.Available -= qty
	l := &models.Loan{ID: s.id(), ItemID: itemID, ItemName: it.Name, Borrower: borrower, Qty: qty, BorrowDate: time.Now()}
	s.loans[l.ID] = l
	clone := *l
	return &clone, nil
}

func (s *stubStore) ReturnLoan(_ context.Context, loanID uint) (*models.Loan, error) {
	l, ok := s.loans[loanID]
	if !ok {
		return nil, fmt.Errorf("loan %d: %w", loanID, models.ErrNotFound)
	}
	if l.Returned {
		return nil, models.ErrAlreadyReturned
	}
	now := time.Now()
	l.Returned, l.ReturnDate = true, &now
	if it, ok := s.items[l.ItemID]; ok {
		it.Available = min(it.Total, it.Available+l.Qty)
	}
	clone := *l
	return &clone, nil
}

func (s *stubStore) ListLoans(_ context.Context, f db.LoanFilter) ([]models.Loan, error) {
	var out []models.Loan
	for _, l := range s.loans {
		if f.Borrower != "" && l.Borrower != f.Borrower {
			continue
		}
		if f.Returned != nil && l.Returned != *f.Returned {
			continue
		}
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *stubStore) FindUserByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", id, models.ErrNotFound)
}

func (s *stubStore) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", username, models.ErrNotFound)
	}
	clone := *u
	return &clone, nil
}

func (s *stubStore) TouchUserLogin(_ context.Context, userID uint) error {
	if s.touchErr != nil {
		return s.touchErr
	}
	s.touched = append(s.touched, userID)
	return nil
}
