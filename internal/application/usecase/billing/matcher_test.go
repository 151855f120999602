package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/domain/entity"
)

func instanceFor(owner OwnerRef, due time.Time, status entity.InstanceStatus) *entity.PaymentInstance {
	pi := entity.NewPaymentInstance(uuid.New(), "test", due, decimal.NewFromInt(100), entity.PaymentTypeCard)
	pi.Status = status
	switch owner.Kind {
	case OwnerCard:
		pi.CardID = &owner.ID
	case OwnerService:
		pi.ServiceID = &owner.ID
		pi.PaymentType = entity.PaymentTypeService
	case OwnerServiceLine:
		pi.ServiceLineID = &owner.ID
		pi.PaymentType = entity.PaymentTypeService
	}
	return pi
}

func TestFindMatchingInstance(t *testing.T) {
	owner := OwnerRef{Kind: OwnerCard, ID: uuid.New()}
	w := Window{Start: date(2025, time.March, 10), End: date(2025, time.March, 25), ToleranceDays: 5}

	t.Run("matches inside the window", func(t *testing.T) {
		pi := instanceFor(owner, date(2025, time.March, 20), entity.InstanceStatusPending)
		got, dup := FindMatchingInstance([]*entity.PaymentInstance{pi}, owner, w)
		if got != pi {
			t.Fatal("expected the instance to match")
		}
		if dup != 0 {
			t.Errorf("expected no duplicates, got %d", dup)
		}
	})

	t.Run("tolerance extends the window on both ends", func(t *testing.T) {
		early := instanceFor(owner, date(2025, time.March, 6), entity.InstanceStatusPending)
		late := instanceFor(owner, date(2025, time.March, 29), entity.InstanceStatusPending)
		if got, _ := FindMatchingInstance([]*entity.PaymentInstance{early}, owner, w); got == nil {
			t.Error("expected match 4 days before window start")
		}
		if got, _ := FindMatchingInstance([]*entity.PaymentInstance{late}, owner, w); got == nil {
			t.Error("expected match 4 days after window end")
		}
	})

	t.Run("outside the tolerance-expanded window does not match", func(t *testing.T) {
		pi := instanceFor(owner, date(2025, time.April, 10), entity.InstanceStatusPending)
		if got, _ := FindMatchingInstance([]*entity.PaymentInstance{pi}, owner, w); got != nil {
			t.Error("expected no match")
		}
	})

	t.Run("zero tolerance requires exact containment", func(t *testing.T) {
		tight := CycleWindow(date(2025, time.March, 10))
		inside := instanceFor(owner, date(2025, time.March, 11), entity.InstanceStatusPending)
		onEnd := instanceFor(owner, date(2025, time.April, 10), entity.InstanceStatusPending)
		before := instanceFor(owner, date(2025, time.March, 10), entity.InstanceStatusPending)

		if got, _ := FindMatchingInstance([]*entity.PaymentInstance{inside}, owner, tight); got == nil {
			t.Error("expected day-after-closing to match")
		}
		if got, _ := FindMatchingInstance([]*entity.PaymentInstance{onEnd}, owner, tight); got == nil {
			t.Error("expected next closing date to match inclusively")
		}
		if got, _ := FindMatchingInstance([]*entity.PaymentInstance{before}, owner, tight); got != nil {
			t.Error("closing date itself belongs to the previous period")
		}
	})

	t.Run("different owner does not match", func(t *testing.T) {
		other := OwnerRef{Kind: OwnerCard, ID: uuid.New()}
		pi := instanceFor(other, date(2025, time.March, 20), entity.InstanceStatusPending)
		if got, _ := FindMatchingInstance([]*entity.PaymentInstance{pi}, owner, w); got != nil {
			t.Error("expected no match for a different card")
		}
	})

	t.Run("first match in input order wins and duplicates are counted", func(t *testing.T) {
		first := instanceFor(owner, date(2025, time.March, 18), entity.InstanceStatusPending)
		second := instanceFor(owner, date(2025, time.March, 20), entity.InstanceStatusPending)
		got, dup := FindMatchingInstance([]*entity.PaymentInstance{first, second}, owner, w)
		if got != first {
			t.Error("expected the first instance in input order to win")
		}
		if dup != 1 {
			t.Errorf("expected 1 duplicate, got %d", dup)
		}
	})
}

func TestHasProgrammedPayment(t *testing.T) {
	owner := OwnerRef{Kind: OwnerCard, ID: uuid.New()}
	w := Window{Start: date(2025, time.March, 10), End: date(2025, time.March, 25), ToleranceDays: 5}

	t.Run("pending, paid, and partial instances all count", func(t *testing.T) {
		for _, status := range []entity.InstanceStatus{
			entity.InstanceStatusPending,
			entity.InstanceStatusPaid,
			entity.InstanceStatusPartial,
		} {
			pi := instanceFor(owner, date(2025, time.March, 20), status)
			if !HasProgrammedPayment([]*entity.PaymentInstance{pi}, nil, owner, w) {
				t.Errorf("status %s: expected programmed payment", status)
			}
		}
	})

	t.Run("cancelled instance does not count", func(t *testing.T) {
		pi := instanceFor(owner, date(2025, time.March, 20), entity.InstanceStatusCancelled)
		if HasProgrammedPayment([]*entity.PaymentInstance{pi}, nil, owner, w) {
			t.Error("cancelled instance must not count as programmed")
		}
	})

	t.Run("active template with in-window date substitutes for an instance", func(t *testing.T) {
		paymentDate := date(2025, time.March, 22)
		sp := entity.NewScheduledPayment(uuid.New(), "card bill", entity.PaymentTypeCard, entity.FrequencyOnce, decimal.NewFromInt(500))
		sp.CardID = &owner.ID
		sp.PaymentDate = &paymentDate

		if !HasProgrammedPayment(nil, []*entity.ScheduledPayment{sp}, owner, w) {
			t.Error("expected template to count as programmed payment")
		}

		sp.IsActive = false
		if HasProgrammedPayment(nil, []*entity.ScheduledPayment{sp}, owner, w) {
			t.Error("inactive template must not count")
		}
	})

	t.Run("template without concrete date never matches", func(t *testing.T) {
		dueDay := 20
		sp := entity.NewScheduledPayment(uuid.New(), "card bill", entity.PaymentTypeCard, entity.FrequencyMonthly, decimal.NewFromInt(500))
		sp.CardID = &owner.ID
		sp.DueDay = &dueDay

		if HasProgrammedPayment(nil, []*entity.ScheduledPayment{sp}, owner, w) {
			t.Error("template with only a recurrence rule must not match")
		}
	})
}
