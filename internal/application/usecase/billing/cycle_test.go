package billing

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeClosingDate(t *testing.T) {
	t.Run("reference after cycle day stays in current month", func(t *testing.T) {
		got := ComputeClosingDate(10, date(2025, time.March, 15))
		want := date(2025, time.March, 10)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("reference before cycle day falls back to previous month", func(t *testing.T) {
		got := ComputeClosingDate(10, date(2025, time.March, 5))
		want := date(2025, time.February, 10)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("reference on cycle day closes today", func(t *testing.T) {
		got := ComputeClosingDate(10, date(2025, time.March, 10))
		want := date(2025, time.March, 10)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("january reference rolls back to december of previous year", func(t *testing.T) {
		got := ComputeClosingDate(20, date(2025, time.January, 5))
		want := date(2024, time.December, 20)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("cycle day 31 clamps to february 28", func(t *testing.T) {
		got := ComputeClosingDate(31, date(2025, time.March, 5))
		want := date(2025, time.February, 28)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("cycle day 31 clamps to february 29 in a leap year", func(t *testing.T) {
		got := ComputeClosingDate(31, date(2024, time.March, 5))
		want := date(2024, time.February, 29)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("result is normalized to start of day", func(t *testing.T) {
		ref := time.Date(2025, time.March, 15, 17, 42, 3, 0, time.UTC)
		got := ComputeClosingDate(10, ref)
		if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
			t.Errorf("expected start of day, got %v", got)
		}
	})
}

func TestComputeDueDate(t *testing.T) {
	t.Run("due day after cycle day stays in closing month", func(t *testing.T) {
		closing := date(2025, time.March, 10)
		got := ComputeDueDate(10, 25, closing)
		if got.Year() != 2025 || got.Month() != time.March || got.Day() != 25 {
			t.Errorf("expected March 25 2025, got %v", got)
		}
	})

	t.Run("due day at or before cycle day crosses into next month", func(t *testing.T) {
		closing := date(2025, time.March, 10)
		got := ComputeDueDate(10, 5, closing)
		if got.Year() != 2025 || got.Month() != time.April || got.Day() != 5 {
			t.Errorf("expected April 5 2025, got %v", got)
		}
	})

	t.Run("equal cycle and due day means due next month", func(t *testing.T) {
		closing := date(2025, time.March, 10)
		got := ComputeDueDate(10, 10, closing)
		if got.Month() != time.April || got.Day() != 10 {
			t.Errorf("expected April 10, got %v", got)
		}
	})

	t.Run("december closing due in january of next year", func(t *testing.T) {
		closing := date(2024, time.December, 28)
		got := ComputeDueDate(28, 10, closing)
		if got.Year() != 2025 || got.Month() != time.January || got.Day() != 10 {
			t.Errorf("expected January 10 2025, got %v", got)
		}
	})

	t.Run("due day 31 clamps to short month", func(t *testing.T) {
		closing := date(2025, time.January, 15)
		got := ComputeDueDate(15, 31, closing)
		if got.Month() != time.January || got.Day() != 31 {
			t.Errorf("expected January 31, got %v", got)
		}

		closing = date(2025, time.April, 15)
		got = ComputeDueDate(15, 31, closing)
		if got.Month() != time.April || got.Day() != 30 {
			t.Errorf("expected April 30, got %v", got)
		}
	})

	t.Run("result is normalized to end of day", func(t *testing.T) {
		got := ComputeDueDate(10, 25, date(2025, time.March, 10))
		if got.Hour() != 23 || got.Minute() != 59 || got.Second() != 59 {
			t.Errorf("expected end of day, got %v", got)
		}
	})
}

func TestComputeNextPeriod(t *testing.T) {
	t.Run("advances one month keeping the day", func(t *testing.T) {
		got := ComputeNextPeriod(date(2025, time.March, 10))
		want := date(2025, time.April, 10)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("clamps into short months", func(t *testing.T) {
		got := ComputeNextPeriod(date(2025, time.January, 31))
		want := date(2025, time.February, 28)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("december advances to january of next year", func(t *testing.T) {
		got := ComputeNextPeriod(date(2024, time.December, 15))
		want := date(2025, time.January, 15)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}

// Sweeping every cycle/due day combination across a leap and a non-leap year
// guards the clamping logic: no combination may ever produce an invalid date
// or a day beyond the actual length of its month.
func TestCycleDatesAlwaysValid(t *testing.T) {
	years := []int{2023, 2024}
	for _, year := range years {
		for month := time.January; month <= time.December; month++ {
			ref := date(year, month, 15)
			for cycleDay := 1; cycleDay <= 31; cycleDay++ {
				closing := ComputeClosingDate(cycleDay, ref)
				if closing.Day() > lastDayOfMonth(closing.Year(), closing.Month()) {
					t.Fatalf("closing day %d exceeds days in %v %d", closing.Day(), closing.Month(), closing.Year())
				}
				if closing.After(ref) {
					t.Fatalf("closing date %v is after reference %v", closing, ref)
				}
				for dueDay := 1; dueDay <= 31; dueDay++ {
					due := ComputeDueDate(cycleDay, dueDay, closing)
					if due.Day() > lastDayOfMonth(due.Year(), due.Month()) {
						t.Fatalf("due day %d exceeds days in %v %d", due.Day(), due.Month(), due.Year())
					}
					if !due.After(closing) {
						t.Fatalf("due date %v not after closing %v (cycle %d, due %d)", due, closing, cycleDay, dueDay)
					}
				}
			}
		}
	}
}

func TestValidateCycleDay(t *testing.T) {
	for _, day := range []int{1, 15, 31} {
		if err := ValidateCycleDay(day); err != nil {
			t.Errorf("day %d: unexpected error %v", day, err)
		}
	}
	for _, day := range []int{0, -1, 32, 100} {
		if err := ValidateCycleDay(day); err == nil {
			t.Errorf("day %d: expected validation error", day)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)

	if got := DaysUntil(now, date(2025, time.March, 15)); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	if got := DaysUntil(now, time.Date(2025, time.March, 10, 23, 59, 59, 0, time.UTC)); got != 0 {
		t.Errorf("expected 0 for same day, got %d", got)
	}
	if got := DaysUntil(now, date(2025, time.March, 8)); got != -2 {
		t.Errorf("expected -2, got %d", got)
	}
}
