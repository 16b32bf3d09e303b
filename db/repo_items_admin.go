// db/repo_items_admin.go
package db

import (
	"Gin_postgres_redis_lend_tool/models"
	"context"
)

// AdminItemRow is an item with what is currently out on loan against it.
type AdminItemRow struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Total       int    `json:"total"`
	Available   int    `json:"available"`
	OpenLoans   int    `json:"openLoans"`
	Outstanding int    `json:"outstanding"` // Σ qty of un-returned loans
}

// Balanced reports whether available plus outstanding accounts for every unit.
func (r AdminItemRow) Balanced() bool {
	return r.Available >= 0 && r.Available <= r.Total && r.Available+r.Outstanding == r.Total
}

func (r *Repo) ListItemsWithOutstanding(ctx context.Context) ([]AdminItemRow, error) {
	var rows []AdminItemRow
	err := r.DB.WithContext(ctx).
		Table(models.ItemTable+" i").
		Select(`
			i.id, i.name, i.total, i.available,
			COUNT(l.id)              AS open_loans,
			COALESCE(SUM(l.qty), 0)  AS outstanding
		`).
		Joins("LEFT JOIN "+models.LoanTable+" l ON l.item_id = i.id AND l.returned = ?", false).
		Group("i.id, i.name, i.total, i.available").
		Order("i.id ASC").
		Scan(&rows).Error
	return rows, err
}
