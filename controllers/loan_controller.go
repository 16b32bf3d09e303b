package controllers

import (
	"errors"
	"fmt"

	"Gin_postgres_redis_lend_tool/app"
	"Gin_postgres_redis_lend_tool/models"
	"Gin_postgres_redis_lend_tool/session"

	"github.com/gin-gonic/gin"
)

type LoanController struct{ *Srv }

func NewLoanController(s *Srv) *LoanController { return &LoanController{Srv: s} }

type borrowForm struct {
	ItemID   uint   `form:"item_id" binding:"required"`
	Qty      string `form:"qty"`
	Borrower string `form:"borrower"`
}

// GET /borrow
func (lc *LoanController) BorrowPage(c *gin.Context) {
	items, err := lc.Inventory.ListBorrowable(c.Request.Context())
	if err != nil {
		lc.failPage(c, err)
		return
	}
	data := lc.page(c, "Borrow")
	data["Items"] = items
	lc.render(c, "borrow.html", data)
}

// POST /borrow
func (lc *LoanController) Borrow(c *gin.Context) {
	var in borrowForm
	if err := bindForm(c, &in); err != nil {
		lc.fail(c, "/borrow", "Item", err)
		return
	}
	qty, err := formInt("qty", in.Qty)
	if err != nil {
		lc.fail(c, "/borrow", "Item", err)
		return
	}

	// signed-in borrowers cannot borrow in someone else's name
	borrower := in.Borrower
	if !lc.Config.Anonymous() {
		borrower = app.IdentityFrom(c).Username
	}

	loan, err := lc.Loans.Borrow(c.Request.Context(), in.ItemID, borrower, qty)
	if err != nil {
		lc.fail(c, "/borrow", "Item", err)
		return
	}
	lc.Log.Info().Uint("loan_id", loan.ID).Uint("item_id", loan.ItemID).Str("borrower", loan.Borrower).Int("qty", loan.Qty).Msg("borrowed")
	lc.redirect(c, "/inventory", session.FlashSuccess,
		fmt.Sprintf("%d x %s borrowed by %s.", loan.Qty, loan.ItemName, loan.Borrower))
}

// GET /loans
func (lc *LoanController) LoansPage(c *gin.Context) {
	active, returned, err := lc.Loans.ListLoans(c.Request.Context(), app.IdentityFrom(c))
	if err != nil {
		lc.failPage(c, err)
		return
	}
	data := lc.page(c, "Loans")
	data["Active"] = active
	data["Returned"] = returned
	lc.render(c, "loans.html", data)
}

// POST /return/:loan_id
func (lc *LoanController) Return(c *gin.Context) {
	id, ok := parseID(c, "loan_id")
	if !ok {
		lc.fail(c, "/loans", "Loan", models.ErrNotFound)
		return
	}
	requester := app.IdentityFrom(c)

	loan, err := lc.Loans.Return(c.Request.Context(), id, requester)
	if err != nil {
		if errors.Is(err, models.ErrNotAuthorized) {
			lc.Log.Warn().Uint("loan_id", id).Str("username", requester.Username).Msg("foreign return refused")
			lc.redirect(c, "/loans", session.FlashDanger, "You are not allowed to return this loan.")
			return
		}
		lc.fail(c, "/loans", "Loan", err)
		return
	}
	lc.Log.Info().Uint("loan_id", loan.ID).Uint("item_id", loan.ItemID).Int("qty", loan.Qty).Msg("returned")
	lc.redirect(c, "/loans", session.FlashSuccess,
		fmt.Sprintf("Marked returned: %d x %s from %s", loan.Qty, loan.ItemName, loan.Borrower))
}
