package db

import (
	"context"
	"fmt"
	"time"

	"Gin_postgres_redis_lend_tool/models"

	"gorm.io/gorm"
)

// Items
func (r *Repo) CreateItem(ctx context.Context, it *models.Item) error {
	return r.DB.WithContext(ctx).Create(it).Error
}

func (r *Repo) FindItemByID(ctx context.Context, id uint) (*models.Item, error) {
	var it models.Item
	if err := r.DB.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "item", id)
	}
	return &it, nil
}

func (r *Repo) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *Repo) ListBorrowableItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := r.DB.WithContext(ctx).Where("available > 0").Order("id ASC").Find(&items).Error
	return items, err
}

func (r *Repo) CountItems(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Item{}).Count(&n).Error
	return n, err
}

// UpdateItem overwrites the mutable fields in one statement.
func (r *Repo) UpdateItem(ctx context.Context, id uint, name string, total, available int) error {
	res := r.DB.WithContext(ctx).Model(&models.Item{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":       name,
			"total":      total,
			"available":  available,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// DeleteItem removes the item row only. Loans keep their item_id and snapshot name.
func (r *Repo) DeleteItem(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Item{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// Loans

func (r *Repo) FindLoanByID(ctx context.Context, id uint) (*models.Loan, error) {
	var l models.Loan
	if err := r.DB.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "loan", id)
	}
	return &l, nil
}

// BorrowItem takes qty units and records the loan in one transaction.
// The decrement is conditional on available >= qty, so two borrowers racing
// for the last units cannot both pass.
func (r *Repo) BorrowItem(ctx context.Context, itemID uint, borrower string, qty int) (*models.Loan, error) {
	var loan *models.Loan
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var it models.Item
		if err := tx.First(&it, "id = ?", itemID).Error; err != nil {
			return notFound(err, "item", itemID)
		}
		if qty <= 0 || qty > it.Available {
			return fmt.Errorf("item %d has %d available, requested %d: %w", itemID, it.Available, qty, models.ErrInvalidQuantity)
		}

		now := time.Now().UTC()
		res := tx.Model(&models.Item{}).
			Where("id = ? AND available >= ?", itemID, qty).
			Updates(map[string]any{
				"available":  gorm.Expr("available - ?", qty),
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("item %d taken concurrently: %w", itemID, models.ErrInvalidQuantity)
		}

		l := &models.Loan{
			ItemID:     it.ID,
			ItemName:   it.Name,
			Borrower:   borrower,
			Qty:        qty,
			BorrowDate: now,
		}
		if err := tx.Create(l).Error; err != nil {
			return err
		}
		loan = l
		return nil
	})
	return loan, err
}

// ReturnLoan closes an open loan and puts its units back, never above total.
// The close is conditional on returned = false, so a second return is reported
// as ErrAlreadyReturned instead of restocking twice.
func (r *Repo) ReturnLoan(ctx context.Context, loanID uint) (*models.Loan, error) {
	var l models.Loan
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		res := tx.Model(&models.Loan{}).
			Where("id = ? AND returned = ?", loanID, false).
			Updates(map[string]any{
				"returned":    true,
				"return_date": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(&models.Loan{}).Where("id = ?", loanID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("loan %d: %w", loanID, models.ErrNotFound)
			}
			return fmt.Errorf("loan %d: %w", loanID, models.ErrAlreadyReturned)
		}

		if err := tx.First(&l, "id = ?", loanID).Error; err != nil {
			return err
		}
		// item may have been deleted; then there is nothing to restock
		return tx.Model(&models.Item{}).
			Where("id = ?", l.ItemID).
			Updates(map[string]any{
				"available":  gorm.Expr("CASE WHEN available + ? > total THEN total ELSE available + ? END", l.Qty, l.Qty),
				"updated_at": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}

type LoanFilter struct {
	Borrower string // empty: everyone
	Returned *bool  // nil: both
}

func (r *Repo) ListLoans(ctx context.Context, f LoanFilter) ([]models.Loan, error) {
	q := r.DB.WithContext(ctx).Model(&models.Loan{}).Order("borrow_date DESC, id DESC")
	if f.Borrower != "" {
		q = q.Where("borrower = ?", f.Borrower)
	}
	if f.Returned != nil {
		q = q.Where("returned = ?", *f.Returned)
	}
	var ls []models.Loan
	if err := q.Find(&ls).Error; err != nil {
		return nil, err
	}
	return ls, nil
}
