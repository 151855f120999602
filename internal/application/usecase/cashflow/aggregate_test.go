package cashflow

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func openInstance(due time.Time, amount int64) *entity.PaymentInstance {
	return entity.NewPaymentInstance(uuid.New(), "bill", due, decimal.NewFromInt(amount), entity.PaymentTypeCard)
}

func serviceWithMethod(method entity.PaymentMethod) *entity.Service {
	return entity.NewService(uuid.New(), "svc", entity.ServiceTypeFixed,
		decimal.NewFromInt(100), method, nil, nil)
}

func TestWeekly(t *testing.T) {
	weekStart := date(2025, time.March, 10) // Monday
	now := date(2025, time.March, 12)

	t.Run("sums open instances due inside the week", func(t *testing.T) {
		in := []*entity.PaymentInstance{
			openInstance(date(2025, time.March, 11), 200),
			openInstance(date(2025, time.March, 16), 300),
			openInstance(date(2025, time.March, 17), 999), // next week
			openInstance(date(2025, time.March, 9), 999),  // previous week
		}
		got := Weekly(in, nil, weekStart, now)
		if !got.TotalPending.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected total 500, got %s", got.TotalPending)
		}
		if got.Count != 2 {
			t.Errorf("expected 2 instances, got %d", got.Count)
		}
	})

	t.Run("paid and cancelled instances are ignored", func(t *testing.T) {
		paid := openInstance(date(2025, time.March, 11), 200)
		paid.MarkPaid(now)
		cancelled := openInstance(date(2025, time.March, 12), 300)
		cancelled.Cancel()

		got := Weekly([]*entity.PaymentInstance{paid, cancelled}, nil, weekStart, now)
		if !got.TotalPending.IsZero() || got.Count != 0 {
			t.Errorf("expected empty summary, got total %s count %d", got.TotalPending, got.Count)
		}
	})

	t.Run("partial instances contribute their remaining amount", func(t *testing.T) {
		pi := openInstance(date(2025, time.March, 11), 1000)
		pi.ApplyPartialPayment(decimal.NewFromInt(400), now, "")

		got := Weekly([]*entity.PaymentInstance{pi}, nil, weekStart, now)
		if !got.TotalPending.Equal(decimal.NewFromInt(600)) {
			t.Errorf("expected remaining 600, got %s", got.TotalPending)
		}
	})

	t.Run("card payments land in the transfer bucket", func(t *testing.T) {
		pi := openInstance(date(2025, time.March, 11), 250)
		got := Weekly([]*entity.PaymentInstance{pi}, nil, weekStart, now)
		if !got.ByTransfer.Equal(decimal.NewFromInt(250)) || !got.ByCard.IsZero() {
			t.Errorf("expected card bill in transfer bucket, got transfer %s card %s", got.ByTransfer, got.ByCard)
		}
	})

	t.Run("service payments follow the service payment method", func(t *testing.T) {
		cardSvc := serviceWithMethod(entity.PaymentMethodCard)
		transferSvc := serviceWithMethod(entity.PaymentMethodTransfer)

		onCard := entity.NewPaymentInstance(uuid.New(), "svc", date(2025, time.March, 11), decimal.NewFromInt(70), entity.PaymentTypeService)
		onCard.ServiceID = &cardSvc.ID
		onTransfer := entity.NewPaymentInstance(uuid.New(), "svc", date(2025, time.March, 12), decimal.NewFromInt(30), entity.PaymentTypeService)
		onTransfer.ServiceID = &transferSvc.ID

		got := Weekly(
			[]*entity.PaymentInstance{onCard, onTransfer},
			[]*entity.Service{cardSvc, transferSvc},
			weekStart, now,
		)
		if !got.ByCard.Equal(decimal.NewFromInt(70)) {
			t.Errorf("expected 70 on card, got %s", got.ByCard)
		}
		if !got.ByTransfer.Equal(decimal.NewFromInt(30)) {
			t.Errorf("expected 30 by transfer, got %s", got.ByTransfer)
		}
	})

	t.Run("bucket split is a partition of the total", func(t *testing.T) {
		cardSvc := serviceWithMethod(entity.PaymentMethodCard)
		svcInstance := entity.NewPaymentInstance(uuid.New(), "svc", date(2025, time.March, 13), decimal.NewFromInt(45), entity.PaymentTypeService)
		svcInstance.ServiceID = &cardSvc.ID

		in := []*entity.PaymentInstance{
			openInstance(date(2025, time.March, 11), 200),
			openInstance(date(2025, time.March, 14), 355),
			svcInstance,
		}
		got := Weekly(in, []*entity.Service{cardSvc}, weekStart, now)
		if !got.TotalPending.Equal(got.ByTransfer.Add(got.ByCard)) {
			t.Errorf("partition broken: total %s != transfer %s + card %s",
				got.TotalPending, got.ByTransfer, got.ByCard)
		}
	})

	t.Run("urgent counts instances due today or earlier", func(t *testing.T) {
		in := []*entity.PaymentInstance{
			openInstance(date(2025, time.March, 10), 100), // past
			openInstance(date(2025, time.March, 12), 100), // today
			openInstance(date(2025, time.March, 14), 100), // future
		}
		got := Weekly(in, nil, weekStart, now)
		if got.UrgentCount != 2 {
			t.Errorf("expected 2 urgent, got %d", got.UrgentCount)
		}
	})
}

func TestMonthly(t *testing.T) {
	month := date(2025, time.March, 1)

	t.Run("percentage paid over paid and pending", func(t *testing.T) {
		paid := openInstance(date(2025, time.March, 5), 300)
		paid.MarkPaid(date(2025, time.March, 5))
		pending := openInstance(date(2025, time.March, 20), 100)

		got := Monthly([]*entity.PaymentInstance{paid, pending}, nil, month)
		if !got.PaidTotal.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected paid 300, got %s", got.PaidTotal)
		}
		if !got.PercentagePaid.Equal(decimal.NewFromInt(75)) {
			t.Errorf("expected 75%%, got %s", got.PercentagePaid)
		}
	})

	t.Run("zero denominator yields zero percent, not NaN", func(t *testing.T) {
		got := Monthly(nil, nil, month)
		if !got.PercentagePaid.IsZero() {
			t.Errorf("expected 0%%, got %s", got.PercentagePaid)
		}
	})

	t.Run("partial payments count toward both sides", func(t *testing.T) {
		pi := openInstance(date(2025, time.March, 10), 1000)
		pi.ApplyPartialPayment(decimal.NewFromInt(400), date(2025, time.March, 8), "")

		got := Monthly([]*entity.PaymentInstance{pi}, nil, month)
		if !got.TotalPending.Equal(decimal.NewFromInt(600)) {
			t.Errorf("expected pending 600, got %s", got.TotalPending)
		}
		if !got.PaidTotal.Equal(decimal.NewFromInt(400)) {
			t.Errorf("expected paid 400, got %s", got.PaidTotal)
		}
		if !got.PercentagePaid.Equal(decimal.NewFromInt(40)) {
			t.Errorf("expected 40%%, got %s", got.PercentagePaid)
		}
	})

	t.Run("instances outside the month are ignored", func(t *testing.T) {
		in := []*entity.PaymentInstance{
			openInstance(date(2025, time.February, 28), 999),
			openInstance(date(2025, time.April, 1), 999),
			openInstance(date(2025, time.March, 31), 50),
		}
		got := Monthly(in, nil, month)
		if !got.TotalPending.Equal(decimal.NewFromInt(50)) {
			t.Errorf("expected 50, got %s", got.TotalPending)
		}
	})
}
