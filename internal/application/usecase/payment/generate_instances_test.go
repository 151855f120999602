package payment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/domain/entity"
)

func TestNextDueDate(t *testing.T) {
	now := time.Date(2025, time.April, 12, 9, 30, 0, 0, time.UTC) // Saturday
	householdID := uuid.New()

	template := func(freq entity.Frequency) *entity.ScheduledPayment {
		return entity.NewScheduledPayment(householdID, "Rent", entity.PaymentTypeService, freq, decimal.NewFromInt(1000))
	}

	intPtr := func(v int) *int { return &v }
	weekdayPtr := func(d time.Weekday) *time.Weekday { return &d }
	datePtr := func(t time.Time) *time.Time { return &t }

	t.Run("monthly due day later this month", func(t *testing.T) {
		tpl := template(entity.FrequencyMonthly)
		tpl.DueDay = intPtr(20)
		due, ok := nextDueDate(tpl, now)
		if !ok || !due.Equal(time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("due = %v ok=%v, want April 20", due, ok)
		}
	})

	t.Run("monthly due day already passed rolls to next month", func(t *testing.T) {
		tpl := template(entity.FrequencyMonthly)
		tpl.DueDay = intPtr(5)
		due, ok := nextDueDate(tpl, now)
		if !ok || !due.Equal(time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("due = %v ok=%v, want May 5", due, ok)
		}
	})

	t.Run("monthly due day today stays today", func(t *testing.T) {
		tpl := template(entity.FrequencyMonthly)
		tpl.DueDay = intPtr(12)
		due, ok := nextDueDate(tpl, now)
		if !ok || !due.Equal(time.Date(2025, time.April, 12, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("due = %v ok=%v, want April 12", due, ok)
		}
	})

	t.Run("monthly day 31 clamps in short months", func(t *testing.T) {
		tpl := template(entity.FrequencyMonthly)
		tpl.DueDay = intPtr(31)
		due, ok := nextDueDate(tpl, now)
		if !ok || due.Day() != 30 || due.Month() != time.April {
			t.Errorf("due = %v ok=%v, want April 30", due, ok)
		}
	})

	t.Run("weekly next occurrence", func(t *testing.T) {
		tpl := template(entity.FrequencyWeekly)
		tpl.DayOfWeek = weekdayPtr(time.Monday)
		due, ok := nextDueDate(tpl, now)
		if !ok || !due.Equal(time.Date(2025, time.April, 14, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("due = %v ok=%v, want Monday April 14", due, ok)
		}
	})

	t.Run("weekly same day is today", func(t *testing.T) {
		tpl := template(entity.FrequencyWeekly)
		tpl.DayOfWeek = weekdayPtr(time.Saturday)
		due, ok := nextDueDate(tpl, now)
		if !ok || !due.Equal(time.Date(2025, time.April, 12, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("due = %v ok=%v, want today", due, ok)
		}
	})

	t.Run("one-off in the past yields nothing", func(t *testing.T) {
		tpl := template(entity.FrequencyOnce)
		tpl.PaymentDate = datePtr(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))
		if _, ok := nextDueDate(tpl, now); ok {
			t.Error("past one-off must not materialize")
		}
	})

	t.Run("billing cycle without a date yields nothing", func(t *testing.T) {
		tpl := template(entity.FrequencyBillingCycle)
		if _, ok := nextDueDate(tpl, now); ok {
			t.Error("dateless billing-cycle template must not materialize")
		}
	})

	t.Run("billing cycle with a future date materializes", func(t *testing.T) {
		tpl := template(entity.FrequencyBillingCycle)
		tpl.PaymentDate = datePtr(time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC))
		due, ok := nextDueDate(tpl, now)
		if !ok || !due.Equal(time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("due = %v ok=%v, want May 5", due, ok)
		}
	})
}

func TestHasInstanceOn(t *testing.T) {
	day := time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC)

	pending := entity.NewPaymentInstance(uuid.New(), "x", day.Add(14*time.Hour), decimal.NewFromInt(10), entity.PaymentTypeService)
	cancelled := entity.NewPaymentInstance(uuid.New(), "x", day, decimal.NewFromInt(10), entity.PaymentTypeService)
	cancelled.Cancel()

	if !hasInstanceOn([]*entity.PaymentInstance{pending}, day) {
		t.Error("same calendar day must match regardless of time of day")
	}
	if hasInstanceOn([]*entity.PaymentInstance{cancelled}, day) {
		t.Error("cancelled instances must not block regeneration")
	}
	if hasInstanceOn([]*entity.PaymentInstance{pending}, day.AddDate(0, 0, 1)) {
		t.Error("different day must not match")
	}
}
