// models/item_loan.go
package models

import "time"

const LoanTable = "loans"
const ItemTable = "items"

// Item is a loanable asset type counted by units.
type Item struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Total     int       `gorm:"not null;default:0;check:chk_items_counts,available >= 0 AND available <= total" json:"total"`
	Available int       `gorm:"not null;default:0" json:"available"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Loan is one borrowing of Qty units. ItemID is a plain column: items can be
// deleted under their loans, ItemName keeps the label readable afterwards.
type Loan struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ItemID     uint       `gorm:"index;not null" json:"itemId"`
	ItemName   string     `gorm:"size:200;not null;default:''" json:"itemName"`
	Borrower   string     `gorm:"size:255;not null;index:idx_loans_borrower_returned,priority:1" json:"borrower"`
	Qty        int        `gorm:"not null" json:"qty"`
	BorrowDate time.Time  `gorm:"not null" json:"borrowDate"`
	Returned   bool       `gorm:"not null;default:false;index:idx_loans_borrower_returned,priority:2" json:"returned"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
}

func (Item) TableName() string { return ItemTable }
func (Loan) TableName() string { return LoanTable }
