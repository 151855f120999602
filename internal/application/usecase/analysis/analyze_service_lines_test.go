package analysis

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/domain/entity"
)

func newLine(cycleDay, dueDay int) *entity.ServiceLine {
	line := entity.NewServiceLine(uuid.New(), uuid.New(), "line 5511", cycleDay, dueDay)
	line.CreatedAt = date(2024, time.June, 1)
	return line
}

func lineInstance(lineID uuid.UUID, due time.Time, amount int64, status entity.InstanceStatus) *entity.PaymentInstance {
	pi := entity.NewPaymentInstance(uuid.New(), "line bill", due, decimal.NewFromInt(amount), entity.PaymentTypeService)
	pi.ServiceLineID = &lineID
	pi.Status = status
	return pi
}

func TestAnalyzeServiceLines(t *testing.T) {
	// Cycle day 20, due day 5: closing March 20, due April 5, window
	// March 21 through April 20 with zero tolerance.
	line := newLine(20, 5)

	t.Run("no instance and due date ahead is not_programmed", func(t *testing.T) {
		out := AnalyzeServiceLines([]*entity.ServiceLine{line}, nil, date(2025, time.March, 25))
		if len(out) != 1 {
			t.Fatalf("expected 1 analysis, got %d", len(out))
		}
		if out[0].Status != entity.ServiceLineNotProgrammed {
			t.Errorf("expected not_programmed, got %s", out[0].Status)
		}
	})

	t.Run("pending instance not yet due is programmed", func(t *testing.T) {
		pi := lineInstance(line.ID, date(2025, time.April, 5), 80, entity.InstanceStatusPending)
		out := AnalyzeServiceLines([]*entity.ServiceLine{line}, []*entity.PaymentInstance{pi}, date(2025, time.March, 25))
		if out[0].Status != entity.ServiceLineProgrammed {
			t.Errorf("expected programmed, got %s", out[0].Status)
		}
		if !out[0].HasInstance {
			t.Error("expected HasInstance true")
		}
	})

	t.Run("partial instance reports partial", func(t *testing.T) {
		pi := lineInstance(line.ID, date(2025, time.April, 5), 80, entity.InstanceStatusPartial)
		out := AnalyzeServiceLines([]*entity.ServiceLine{line}, []*entity.PaymentInstance{pi}, date(2025, time.March, 25))
		if out[0].Status != entity.ServiceLinePartial {
			t.Errorf("expected partial, got %s", out[0].Status)
		}
	})

	t.Run("paid instance before expiry is covered", func(t *testing.T) {
		pi := lineInstance(line.ID, date(2025, time.April, 5), 80, entity.InstanceStatusPaid)
		out := AnalyzeServiceLines([]*entity.ServiceLine{line}, []*entity.PaymentInstance{pi}, date(2025, time.March, 25))
		if out[0].Status != entity.ServiceLineCovered {
			t.Errorf("expected covered, got %s", out[0].Status)
		}
	})

	t.Run("no instance past due date is overdue", func(t *testing.T) {
		out := AnalyzeServiceLines([]*entity.ServiceLine{line}, nil, date(2025, time.April, 7))
		if out[0].Status != entity.ServiceLineOverdue {
			t.Errorf("expected overdue, got %s", out[0].Status)
		}
	})

	t.Run("paid and expired period advances and reports the next period", func(t *testing.T) {
		pi := lineInstance(line.ID, date(2025, time.April, 5), 80, entity.InstanceStatusPaid)
		out := AnalyzeServiceLines([]*entity.ServiceLine{line}, []*entity.PaymentInstance{pi}, date(2025, time.April, 10))
		a := out[0]
		if a.CutoffDate.Month() != time.April || a.CutoffDate.Day() != 20 {
			t.Errorf("expected advanced closing April 20, got %v", a.CutoffDate)
		}
		if a.Status != entity.ServiceLineNotProgrammed {
			t.Errorf("expected next period not_programmed, got %s", a.Status)
		}
		if a.HasInstance {
			t.Error("the paid instance must not carry into the next period")
		}
	})

	t.Run("period preceding line creation is skipped", func(t *testing.T) {
		young := newLine(20, 5)
		young.CreatedAt = date(2025, time.April, 10)
		out := AnalyzeServiceLines([]*entity.ServiceLine{young}, nil, date(2025, time.April, 2))
		a := out[0]
		if a.CutoffDate.Month() != time.April || a.CutoffDate.Day() != 20 {
			t.Errorf("expected closing advanced to April 20, got %v", a.CutoffDate)
		}
		if a.Status == entity.ServiceLineOverdue {
			t.Error("a period before line creation must not be overdue")
		}
	})

	t.Run("inactive lines are excluded", func(t *testing.T) {
		inactive := newLine(20, 5)
		inactive.IsActive = false
		out := AnalyzeServiceLines([]*entity.ServiceLine{inactive}, nil, date(2025, time.March, 25))
		if len(out) != 0 {
			t.Errorf("expected inactive line to be excluded, got %d analyses", len(out))
		}
	})
}
