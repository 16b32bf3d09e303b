package service

import (
	"context"

	"Gin_postgres_redis_lend_tool/db"
	"Gin_postgres_redis_lend_tool/models"
)

// ItemStore is the persistence the inventory service needs. *db.Repo implements it.
type ItemStore interface {
	ListItems(ctx context.Context) ([]models.Item, error)
	ListBorrowableItems(ctx context.Context) ([]models.Item, error)
	ListItemsWithOutstanding(ctx context.Context) ([]db.AdminItemRow, error)
	FindItemByID(ctx context.Context, id uint) (*models.Item, error)
	CreateItem(ctx context.Context, it *models.Item) error
	UpdateItem(ctx context.Context, id uint, name string, total, available int) error
	DeleteItem(ctx context.Context, id uint) error
}

// LoanStore does the atomic ledger moves.
type LoanStore interface {
	FindLoanByID(ctx context.Context, id uint) (*models.Loan, error)
	BorrowItem(ctx context.Context, itemID uint, borrower string, qty int) (*models.Loan, error)
	ReturnLoan(ctx context.Context, loanID uint) (*models.Loan, error)
	ListLoans(ctx context.Context, f db.LoanFilter) ([]models.Loan, error)
}

type UserStore interface {
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	TouchUserLogin(ctx context.Context, userID uint) error
}

var (
	_ ItemStore = (*db.Repo)(nil)
	_ LoanStore = (*db.Repo)(nil)
	_ UserStore = (*db.Repo)(nil)
)
