package service

import (
	"context"
	"errors"
	"strings"

	"Gin_postgres_redis_lend_tool/db"
	"Gin_postgres_redis_lend_tool/metrics"
	"Gin_postgres_redis_lend_tool/models"
)

// LoanService runs the borrow/return transitions. With ownerOnly set, returns
// and loan listings are restricted to the borrower unless the caller is an admin.
type LoanService struct {
	store     LoanStore
	ownerOnly bool
}

func NewLoanService(store LoanStore, ownerOnly bool) *LoanService {
	return &LoanService{store: store, ownerOnly: ownerOnly}
}

func (s *LoanService) Borrow(ctx context.Context, itemID uint, borrower string, qty int) (*models.Loan, error) {
	borrower = strings.TrimSpace(borrower)
	if borrower == "" {
		metrics.BorrowRejectionsTotal.WithLabelValues("validation").Inc()
		return nil, models.Invalid("borrower", "is required")
	}

	// lookup, quantity check and decrement happen in one transaction
	loan, err := s.store.BorrowItem(ctx, itemID, borrower, qty)
	if err != nil {
		metrics.BorrowRejectionsTotal.WithLabelValues(reason(err)).Inc()
		return nil, err
	}
	metrics.LoansBorrowedTotal.Inc()
	metrics.UnitsBorrowedTotal.Add(float64(loan.Qty))
	return loan, nil
}

func (s *LoanService) Return(ctx context.Context, loanID uint, requester models.Identity) (*models.Loan, error) {
	loan, err := s.store.FindLoanByID(ctx, loanID)
	if err != nil {
		metrics.ReturnRejectionsTotal.WithLabelValues(reason(err)).Inc()
		return nil, err
	}
	if loan.Returned {
		metrics.ReturnRejectionsTotal.WithLabelValues("already_returned").Inc()
		return loan, models.ErrAlreadyReturned
	}
	if s.ownerOnly && !models.MayReturn(requester, loan) {
		metrics.ReturnRejectionsTotal.WithLabelValues("not_authorized").Inc()
		return nil, models.ErrNotAuthorized
	}

	returned, err := s.store.ReturnLoan(ctx, loanID)
	if err != nil {
		metrics.ReturnRejectionsTotal.WithLabelValues(reason(err)).Inc()
		if errors.Is(err, models.ErrAlreadyReturned) {
			return loan, err
		}
		return nil, err
	}
	metrics.LoansReturnedTotal.Inc()
	return returned, nil
}

// ListLoans returns open and closed loans visible to requester.
func (s *LoanService) ListLoans(ctx context.Context, requester models.Identity) (active, returned []models.Loan, err error) {
	f := db.LoanFilter{}
	if s.ownerOnly && !requester.IsAdmin() {
		if requester.Username == "" {
			return nil, nil, models.ErrNotAuthorized
		}
		f.Borrower = requester.Username
	}
	all, err := s.store.ListLoans(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	for _, l := range all {
		if l.Returned {
			returned = append(returned, l)
		} else {
			active = append(active, l)
		}
	}
	return active, returned, nil
}

func reason(err error) string {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, models.ErrAlreadyReturned):
		return "already_returned"
	case errors.Is(err, models.ErrValidation):
		return "validation"
	default:
		return "error"
	}
}
