package analysis

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/domain/entity"
)

func newBillingService(cycleDay, dueDay int) *entity.Service {
	return entity.NewService(
		uuid.New(), "Internet", entity.ServiceTypeBillingCycle,
		decimal.Zero, entity.PaymentMethodTransfer,
		&cycleDay, &dueDay,
	)
}

func serviceInstance(serviceID uuid.UUID, due time.Time, amount int64, status entity.InstanceStatus) *entity.PaymentInstance {
	pi := entity.NewPaymentInstance(uuid.New(), "service bill", due, decimal.NewFromInt(amount), entity.PaymentTypeService)
	pi.ServiceID = &serviceID
	pi.Status = status
	return pi
}

func TestAnalyzeServices(t *testing.T) {
	// Cutoff day 20, due day 5: cutoff March 20, due April 5.
	svc := newBillingService(20, 5)

	t.Run("before the cutoff the period is upcoming", func(t *testing.T) {
		out := AnalyzeServices([]*entity.Service{svc}, nil, date(2025, time.March, 10))
		if len(out) != 1 {
			t.Fatalf("expected 1 analysis, got %d", len(out))
		}
		if out[0].Status != entity.ServiceBillingUpcoming {
			t.Errorf("expected upcoming, got %s", out[0].Status)
		}
		if out[0].CutoffDate.Day() != 20 || out[0].CutoffDate.Month() != time.March {
			t.Errorf("expected cutoff March 20, got %v", out[0].CutoffDate)
		}
	})

	t.Run("past cutoff without an amount is awaiting_amount", func(t *testing.T) {
		out := AnalyzeServices([]*entity.Service{svc}, nil, date(2025, time.March, 25))
		if out[0].Status != entity.ServiceBillingAwaitingAmount {
			t.Errorf("expected awaiting_amount, got %s", out[0].Status)
		}
		if out[0].HasAmount {
			t.Error("expected HasAmount false")
		}
	})

	t.Run("pending instance with amount is ready", func(t *testing.T) {
		pi := serviceInstance(svc.ID, date(2025, time.April, 5), 320, entity.InstanceStatusPending)
		out := AnalyzeServices([]*entity.Service{svc}, []*entity.PaymentInstance{pi}, date(2025, time.March, 25))
		if out[0].Status != entity.ServiceBillingReady {
			t.Errorf("expected ready, got %s", out[0].Status)
		}
		if !out[0].Amount.Equal(decimal.NewFromInt(320)) {
			t.Errorf("expected amount 320, got %s", out[0].Amount)
		}
	})

	t.Run("due date passed without payment is overdue even with an amount", func(t *testing.T) {
		pi := serviceInstance(svc.ID, date(2025, time.April, 5), 320, entity.InstanceStatusPending)
		out := AnalyzeServices([]*entity.Service{svc}, []*entity.PaymentInstance{pi}, date(2025, time.April, 7))
		if out[0].Status != entity.ServiceBillingOverdue {
			t.Errorf("expected overdue, got %s", out[0].Status)
		}
	})

	t.Run("paid expired period advances to the next cutoff", func(t *testing.T) {
		pi := serviceInstance(svc.ID, date(2025, time.April, 5), 320, entity.InstanceStatusPaid)
		out := AnalyzeServices([]*entity.Service{svc}, []*entity.PaymentInstance{pi}, date(2025, time.April, 10))
		a := out[0]
		if a.CutoffDate.Month() != time.May || a.CutoffDate.Day() != 20 {
			t.Errorf("expected advanced cutoff May 20, got %v", a.CutoffDate)
		}
		if a.Status != entity.ServiceBillingUpcoming {
			t.Errorf("expected upcoming after advancement, got %s", a.Status)
		}
	})

	t.Run("fixed services are excluded", func(t *testing.T) {
		fixed := entity.NewService(uuid.New(), "Rent", entity.ServiceTypeFixed,
			decimal.NewFromInt(1200), entity.PaymentMethodTransfer, nil, nil)
		out := AnalyzeServices([]*entity.Service{fixed}, nil, date(2025, time.March, 25))
		if len(out) != 0 {
			t.Errorf("expected fixed service to be excluded, got %d analyses", len(out))
		}
	})

	t.Run("services with lines delegate to line analysis", func(t *testing.T) {
		withLines := newBillingService(20, 5)
		withLines.Lines = []*entity.ServiceLine{
			entity.NewServiceLine(withLines.ID, withLines.HouseholdID, "line 1", 20, 5),
		}
		out := AnalyzeServices([]*entity.Service{withLines}, nil, date(2025, time.March, 25))
		if len(out) != 0 {
			t.Errorf("expected service with lines to be excluded, got %d analyses", len(out))
		}
	})

	t.Run("billing cycle service without cycle config is silently excluded", func(t *testing.T) {
		broken := entity.NewService(uuid.New(), "Mystery", entity.ServiceTypeBillingCycle,
			decimal.Zero, entity.PaymentMethodTransfer, nil, nil)
		out := AnalyzeServices([]*entity.Service{broken}, nil, date(2025, time.March, 25))
		if len(out) != 0 {
			t.Errorf("expected misconfigured service to be excluded, got %d analyses", len(out))
		}
	})

	t.Run("inactive services are excluded", func(t *testing.T) {
		inactive := newBillingService(20, 5)
		inactive.IsActive = false
		out := AnalyzeServices([]*entity.Service{inactive}, nil, date(2025, time.March, 25))
		if len(out) != 0 {
			t.Errorf("expected inactive service to be excluded, got %d analyses", len(out))
		}
	})
}
