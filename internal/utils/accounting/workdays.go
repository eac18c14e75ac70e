// Package accounting holds the shared monetary calculation helpers used by
// the reconciliation engine and the PL calculator.
package accounting

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountWorkingDays counts Monday–Saturday days in [start, end] inclusive.
// Sunday is the only non-working day. Returns 0 when end precedes start.
func CountWorkingDays(start, end time.Time) int {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return 0
	}
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Sunday {
			count++
		}
	}
	return count
}

// MonthBounds returns the first and last day of the month holding t.
func MonthBounds(t time.Time) (first, last time.Time) {
	first = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last = first.AddDate(0, 1, -1)
	return first, last
}

// ProrateCharges pro-rates a monthly fixed-charge estimate over elapsed
// working days: charges × elapsed / total, rounded to the nearest FCFA.
// Rounding happens exactly once, here.
func ProrateCharges(charges int64, elapsedDays, totalDays int) int64 {
	if totalDays <= 0 || elapsedDays <= 0 {
		return 0
	}
	if elapsedDays >= totalDays {
		return charges
	}
	prorated := decimal.NewFromInt(charges).
		Mul(decimal.NewFromInt(int64(elapsedDays))).
		Div(decimal.NewFromInt(int64(totalDays))).
		Round(0)
	return prorated.IntPart()
}

// LineTotal computes quantity × unit price exactly, for the consistency
// checks on delivery and stock valuation lines.
func LineTotal(quantity, unitPrice int64) int64 {
	return decimal.NewFromInt(quantity).Mul(decimal.NewFromInt(unitPrice)).IntPart()
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
