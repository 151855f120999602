package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestPaymentInstancePartialPayments(t *testing.T) {
	paidDate := time.Date(2025, time.April, 3, 0, 0, 0, 0, time.UTC)

	newInstance := func(amount string) *PaymentInstance {
		a, err := decimal.NewFromString(amount)
		if err != nil {
			t.Fatalf("bad amount %q: %v", amount, err)
		}
		return NewPaymentInstance(uuid.New(), "April rent", paidDate.AddDate(0, 0, 7), a, PaymentTypeService)
	}

	t.Run("partial payment tracks remaining amount", func(t *testing.T) {
		pi := newInstance("1000")
		pi.ApplyPartialPayment(decimal.NewFromInt(400), paidDate, "first half")

		if pi.Status != InstanceStatusPartial {
			t.Fatalf("status = %s, want partial", pi.Status)
		}
		if !pi.PaidAmount.Equal(decimal.NewFromInt(400)) {
			t.Errorf("paid amount = %s, want 400", pi.PaidAmount)
		}
		if pi.RemainingAmount == nil || !pi.RemainingAmount.Equal(decimal.NewFromInt(600)) {
			t.Errorf("remaining = %v, want 600", pi.RemainingAmount)
		}
		if !pi.AmountToPay().Equal(decimal.NewFromInt(600)) {
			t.Errorf("amount to pay = %s, want 600", pi.AmountToPay())
		}
		if !pi.IsOpen() {
			t.Error("partial instance must still be open")
		}
	})

	t.Run("settling the remainder flips to paid", func(t *testing.T) {
		pi := newInstance("1000")
		pi.ApplyPartialPayment(decimal.NewFromInt(400), paidDate, "")
		pi.ApplyPartialPayment(decimal.NewFromInt(600), paidDate.AddDate(0, 0, 2), "")

		if pi.Status != InstanceStatusPaid {
			t.Fatalf("status = %s, want paid", pi.Status)
		}
		if pi.RemainingAmount != nil {
			t.Errorf("remaining = %s, want nil", pi.RemainingAmount)
		}
		if !pi.PaidAmount.Equal(pi.Amount) {
			t.Errorf("paid amount = %s, want %s", pi.PaidAmount, pi.Amount)
		}
		if pi.PaidDate == nil || !pi.PaidDate.Equal(paidDate.AddDate(0, 0, 2)) {
			t.Errorf("paid date = %v, want last payment date", pi.PaidDate)
		}
		if len(pi.PartialPayments) != 2 {
			t.Errorf("partial payments = %d, want 2", len(pi.PartialPayments))
		}
	})

	t.Run("overpayment still settles at the full amount", func(t *testing.T) {
		pi := newInstance("1000")
		pi.ApplyPartialPayment(decimal.NewFromInt(1200), paidDate, "")

		if pi.Status != InstanceStatusPaid {
			t.Fatalf("status = %s, want paid", pi.Status)
		}
		if !pi.PaidAmount.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("paid amount = %s, want capped at 1000", pi.PaidAmount)
		}
	})
}

func TestPaymentInstanceLifecycle(t *testing.T) {
	due := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	pi := NewPaymentInstance(uuid.New(), "Visa bill", due, decimal.NewFromInt(850), PaymentTypeCard)

	if pi.Status != InstanceStatusPending {
		t.Fatalf("new instance status = %s, want pending", pi.Status)
	}
	if !pi.AmountToPay().Equal(decimal.NewFromInt(850)) {
		t.Errorf("amount to pay = %s, want full amount", pi.AmountToPay())
	}

	paidDate := due.AddDate(0, 0, -1)
	pi.MarkPaid(paidDate)
	if pi.Status != InstanceStatusPaid || pi.IsOpen() {
		t.Errorf("paid instance must be closed, status = %s", pi.Status)
	}
	if pi.PaidDate == nil || !pi.PaidDate.Equal(paidDate) {
		t.Errorf("paid date = %v, want %v", pi.PaidDate, paidDate)
	}

	pi2 := NewPaymentInstance(uuid.New(), "Visa bill", due, decimal.NewFromInt(850), PaymentTypeCard)
	pi2.Cancel()
	if pi2.Status != InstanceStatusCancelled || pi2.IsOpen() {
		t.Errorf("cancelled instance must be closed, status = %s", pi2.Status)
	}
}
