package accounting_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/matagroup/mata_gestion_app/internal/utils/accounting"
)

func TestCountWorkingDaysFullMonth(t *testing.T) {
	// January 2025 has 31 days with Sundays on the 5th, 12th, 19th and 26th.
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 27, accounting.CountWorkingDays(start, end))
}

func TestCountWorkingDaysPartialMonth(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 16, accounting.CountWorkingDays(start, end))
}

func TestCountWorkingDaysSingleSunday(t *testing.T) {
	sunday := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, accounting.CountWorkingDays(sunday, sunday))
}

func TestCountWorkingDaysReversedRange(t *testing.T) {
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, accounting.CountWorkingDays(start, end))
}

func TestMonthBounds(t *testing.T) {
	first, last := accounting.MonthBounds(time.Date(2025, 2, 14, 10, 30, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), last)
}

func TestProrateCharges(t *testing.T) {
	// 3,000,000 × 16 / 27 = 1,777,777.78, rounded once to 1,777,778.
	assert.Equal(t, int64(1_777_778), accounting.ProrateCharges(3_000_000, 16, 27))
}

func TestProrateChargesFullPeriod(t *testing.T) {
	assert.Equal(t, int64(3_000_000), accounting.ProrateCharges(3_000_000, 27, 27))
	assert.Equal(t, int64(3_000_000), accounting.ProrateCharges(3_000_000, 30, 27))
}

func TestProrateChargesDegenerateInputs(t *testing.T) {
	assert.Equal(t, int64(0), accounting.ProrateCharges(3_000_000, 0, 27))
	assert.Equal(t, int64(0), accounting.ProrateCharges(3_000_000, 16, 0))
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, int64(1_250_000), accounting.LineTotal(50, 25_000))
}
