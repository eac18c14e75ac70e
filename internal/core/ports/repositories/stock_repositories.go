package repositories

import (
	"context"
	"time"

	"github.com/matagroup/mata_gestion_app/internal/core/domain"
)

// StockVivantRepository persists live-inventory valuation snapshots.
type StockVivantRepository interface {
	UpsertEntry(ctx context.Context, entry domain.StockVivant) error
	FindEntryByID(ctx context.Context, entryID string) (*domain.StockVivant, error)
	DeleteEntry(ctx context.Context, entryID string) error
	ListByDate(ctx context.Context, dateStock time.Time) ([]domain.StockVivant, error)
	DistinctDates(ctx context.Context, limit int) ([]time.Time, error)
	// CopyEntries duplicates every line from fromDate under toDate, returning
	// the number of lines copied. Supports the copy-then-adjust workflow.
	CopyEntries(ctx context.Context, fromDate, toDate time.Time, userID string, now time.Time) (int, error)
	TotalAt(ctx context.Context, dateStock time.Time) (int64, error)
}

// StockSoirRepository persists evening point-of-sale stock snapshots.
type StockSoirRepository interface {
	SaveEntry(ctx context.Context, entry domain.StockSoir) error
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.StockSoir, error)
}

// CashBictorysRepository persists the daily external cash snapshots.
type CashBictorysRepository interface {
	// UpsertEntry inserts or replaces the row for entry.Date.
	UpsertEntry(ctx context.Context, entry domain.CashBictorys) error
	ListByMonth(ctx context.Context, monthYear string) ([]domain.CashBictorys, error)
	// LatestNotAfter returns the entry with the greatest date in
	// [monthStart, cutoff] whose amount is non-zero. Never a sum.
	LatestNotAfter(ctx context.Context, monthStart, cutoff time.Time) (*domain.CashBictorys, error)
}
