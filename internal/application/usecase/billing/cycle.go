// Package billing contains the pure billing-cycle projection logic: closing
// and due date computation from day-of-month configuration, and matching of
// payment instances against period windows. Everything here is synchronous,
// allocation-light, and takes the reference time explicitly so callers control
// the clock.
package billing

import (
	"time"

	domainerror "github.com/payment-tracker/backend/internal/domain/error"
)

// ValidateCycleDay rejects day-of-month values outside 1-31. Callers validate
// at the boundary so the projection functions below can assume valid input.
func ValidateCycleDay(day int) error {
	if day < 1 || day > 31 {
		return domainerror.NewCardError(
			domainerror.ErrCodeInvalidCycleDay,
			"cycle day must be between 1 and 31",
			domainerror.ErrInvalidCycleDay,
		)
	}
	return nil
}

// ComputeClosingDate returns the currently-relevant closing date for a cycle
// day given a reference date. When the reference day precedes the cycle day
// the still-open period closed last month; otherwise it closed this month.
// The day is clamped to the last valid day of the target month (cycle day 31
// in February yields Feb 28/29) and the result is normalized to start of day.
func ComputeClosingDate(cycleDay int, ref time.Time) time.Time {
	year, month := ref.Year(), ref.Month()
	if ref.Day() < cycleDay {
		month--
		if month < time.January {
			month = time.December
			year--
		}
	}
	return dateWithClampedDay(year, month, cycleDay, ref.Location())
}

// ComputeDueDate returns the due date of the period that closed on closing.
// When dueDay <= cycleDay the cycle crosses a month boundary and the due date
// lands in the month after the closing; otherwise it lands in the same month.
// The result is normalized to end of day (23:59:59.999) so a payment due
// today is not prematurely considered overdue.
func ComputeDueDate(cycleDay, dueDay int, closing time.Time) time.Time {
	year, month := closing.Year(), closing.Month()
	if dueDay <= cycleDay {
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	d := dateWithClampedDay(year, month, dueDay, closing.Location())
	return endOfDay(d)
}

// ComputeMonthCutoff returns the cutoff day projected into the reference
// date's own calendar month, clamped to the month length. Unlike
// ComputeClosingDate it may land in the future; billing-cycle services use it
// so a period can be reported as upcoming before its cutoff arrives.
func ComputeMonthCutoff(cycleDay int, ref time.Time) time.Time {
	return dateWithClampedDay(ref.Year(), ref.Month(), cycleDay, ref.Location())
}

// ComputeNextPeriod advances a closing date by exactly one calendar month,
// clamping the day to the target month. Used to move the current-period
// window forward when a period is fully paid and expired.
func ComputeNextPeriod(closing time.Time) time.Time {
	year, month := closing.Year(), closing.Month()
	month++
	if month > time.December {
		month = time.January
		year++
	}
	return dateWithClampedDay(year, month, closing.Day(), closing.Location())
}

// DaysUntil returns the whole number of calendar days from now until t,
// comparing start-of-day to start-of-day. Negative when t is in the past.
func DaysUntil(now, t time.Time) int {
	a := StartOfDay(now)
	b := StartOfDay(t)
	return int(b.Sub(a).Hours() / 24)
}

// StartOfDay normalizes t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// dateWithClampedDay builds a date clamping day down to the last valid day of
// the month. Clamping never rolls into the following month.
func dateWithClampedDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// lastDayOfMonth computes days-in-month rather than using a static table, so
// leap Februaries come out right.
func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
