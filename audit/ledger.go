// Package audit checks the loan ledger against the item counts.
package audit

import (
	"context"
	"fmt"
	"time"

	"Gin_postgres_redis_lend_tool/db"
	"Gin_postgres_redis_lend_tool/metrics"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// RowSource lists items with the units currently out on loan. *db.Repo implements it.
type RowSource interface {
	ListItemsWithOutstanding(ctx context.Context) ([]db.AdminItemRow, error)
}

// Discrepancy is an item whose counts do not add up.
type Discrepancy struct {
	ItemID      uint
	Name        string
	Total       int
	Available   int
	Outstanding int
}

func (d Discrepancy) String() string {
	return fmt.Sprintf("item %d (%s): available %d + outstanding %d != total %d",
		d.ItemID, d.Name, d.Available, d.Outstanding, d.Total)
}

type Auditor struct {
	rows RowSource
	log  zerolog.Logger
}

func NewAuditor(rows RowSource, log zerolog.Logger) *Auditor {
	return &Auditor{rows: rows, log: log}
}

// Run reports every unbalanced item. Admin edits that rewrite counts show up
// here as well; the report is informational.
func (a *Auditor) Run(ctx context.Context) ([]Discrepancy, error) {
	rows, err := a.rows.ListItemsWithOutstanding(ctx)
	if err != nil {
		return nil, fmt.Errorf("audit: %w", err)
	}
	var out []Discrepancy
	for _, r := range rows {
		if r.Balanced() {
			continue
		}
		d := Discrepancy{ItemID: r.ID, Name: r.Name, Total: r.Total, Available: r.Available, Outstanding: r.Outstanding}
		a.log.Warn().
			Uint("item_id", d.ItemID).
			Int("total", d.Total).
			Int("available", d.Available).
			Int("outstanding", d.Outstanding).
			Msg("ledger discrepancy")
		out = append(out, d)
	}
	metrics.LedgerDiscrepancies.Set(float64(len(out)))
	a.log.Debug().Int("items", len(rows)).Int("discrepancies", len(out)).Msg("ledger audit done")
	return out, nil
}

// Schedule runs the auditor on schedule (cron syntax or "@every 10m"). The
// caller stops the returned cron. An empty schedule disables the job.
func Schedule(schedule string, a *Auditor, timeout time.Duration) (*cron.Cron, error) {
	if schedule == "" {
		return nil, nil
	}
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := a.Run(ctx); err != nil {
			a.log.Error().Err(err).Msg("ledger audit failed")
		}
	}); err != nil {
		return nil, fmt.Errorf("audit schedule %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}
