package analysis

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newCard(closingDay, dueDay int) *entity.Card {
	return entity.NewCard(
		uuid.New(), "Visa Gold", "Acme Bank", "maria",
		entity.CardTypePhysical,
		closingDay, dueDay,
		decimal.NewFromInt(10000), decimal.NewFromInt(8000),
	)
}

func cardInstance(cardID uuid.UUID, due time.Time, amount int64, status entity.InstanceStatus) *entity.PaymentInstance {
	pi := entity.NewPaymentInstance(uuid.New(), "card bill", due, decimal.NewFromInt(amount), entity.PaymentTypeCard)
	pi.CardID = &cardID
	pi.Status = status
	return pi
}

func TestAnalyzeCards(t *testing.T) {
	// closingDay=10, dueDay=5: due date lands in the month after closing.
	now := date(2025, time.March, 15)

	t.Run("closing 10 due 5 projects closing in month M and due in month M+1", func(t *testing.T) {
		card := newCard(10, 5)
		out := AnalyzeCards([]*entity.Card{card}, nil, nil, now)
		if len(out) != 1 {
			t.Fatalf("expected 1 analysis, got %d", len(out))
		}
		a := out[0]
		if a.ClosingDate.Month() != time.March || a.ClosingDate.Day() != 10 {
			t.Errorf("expected closing March 10, got %v", a.ClosingDate)
		}
		if a.DueDate.Month() != time.April || a.DueDate.Day() != 5 {
			t.Errorf("expected due April 5, got %v", a.DueDate)
		}
	})

	t.Run("no matching payment past closing is not_programmed", func(t *testing.T) {
		card := newCard(10, 5)
		out := AnalyzeCards([]*entity.Card{card}, nil, nil, now)
		if out[0].Status != entity.CardPeriodNotProgrammed {
			t.Errorf("expected not_programmed, got %s", out[0].Status)
		}
		if out[0].HasProgrammedPayment {
			t.Error("expected no programmed payment")
		}
	})

	t.Run("pending instance in window covers the period", func(t *testing.T) {
		card := newCard(10, 5)
		pi := cardInstance(card.ID, date(2025, time.April, 5), 1500, entity.InstanceStatusPending)
		out := AnalyzeCards([]*entity.Card{card}, []*entity.PaymentInstance{pi}, nil, now)
		a := out[0]
		if a.Status != entity.CardPeriodCovered {
			t.Errorf("expected covered, got %s", a.Status)
		}
		if !a.ProgrammedAmount.Equal(decimal.NewFromInt(1500)) {
			t.Errorf("expected programmed amount 1500, got %s", a.ProgrammedAmount)
		}
	})

	t.Run("active template substitutes for an instance", func(t *testing.T) {
		card := newCard(10, 5)
		paymentDate := date(2025, time.April, 3)
		sp := entity.NewScheduledPayment(card.HouseholdID, "visa bill", entity.PaymentTypeCard, entity.FrequencyOnce, decimal.NewFromInt(900))
		sp.CardID = &card.ID
		sp.PaymentDate = &paymentDate

		out := AnalyzeCards([]*entity.Card{card}, nil, []*entity.ScheduledPayment{sp}, now)
		a := out[0]
		if a.Status != entity.CardPeriodCovered {
			t.Errorf("expected covered, got %s", a.Status)
		}
		if !a.ProgrammedAmount.Equal(decimal.NewFromInt(900)) {
			t.Errorf("expected template amount 900, got %s", a.ProgrammedAmount)
		}
	})

	t.Run("past due date without payment is overdue", func(t *testing.T) {
		card := newCard(10, 5)
		late := date(2025, time.April, 6)
		out := AnalyzeCards([]*entity.Card{card}, nil, nil, late)
		if out[0].Status != entity.CardPeriodOverdue {
			t.Errorf("expected overdue, got %s", out[0].Status)
		}
		if out[0].DaysUntilDue >= 0 {
			t.Errorf("expected negative days until due, got %d", out[0].DaysUntilDue)
		}
	})

	t.Run("cancelled instance does not cover", func(t *testing.T) {
		card := newCard(10, 5)
		pi := cardInstance(card.ID, date(2025, time.April, 5), 1500, entity.InstanceStatusCancelled)
		out := AnalyzeCards([]*entity.Card{card}, []*entity.PaymentInstance{pi}, nil, now)
		if out[0].Status != entity.CardPeriodNotProgrammed {
			t.Errorf("expected not_programmed, got %s", out[0].Status)
		}
	})

	t.Run("card with invalid cycle day is silently excluded", func(t *testing.T) {
		bad := newCard(0, 5)
		good := newCard(10, 5)
		out := AnalyzeCards([]*entity.Card{bad, good}, nil, nil, now)
		if len(out) != 1 || out[0].CardID != good.ID {
			t.Errorf("expected only the valid card to be analyzed")
		}
	})
}

// A paid instance belongs to exactly one card period. Once the next closing
// passes, the period rolls over and the same instance must not cover it.
func TestCardInstanceCoversSinglePeriod(t *testing.T) {
	card := newCard(10, 5)
	pi := cardInstance(card.ID, date(2025, time.March, 7), 1500, entity.InstanceStatusPaid)
	instances := []*entity.PaymentInstance{pi}

	// Period closed Feb 10: window runs Feb 11 through Mar 10, Mar 7 is in.
	before := AnalyzeCards([]*entity.Card{card}, instances, nil, date(2025, time.March, 8))[0]
	if before.Status != entity.CardPeriodCovered {
		t.Errorf("expected covered before rollover, got %s", before.Status)
	}

	// Period closed Mar 10: window runs Mar 11 through Apr 10, Mar 7 is out.
	after := AnalyzeCards([]*entity.Card{card}, instances, nil, date(2025, time.March, 12))[0]
	if after.Status != entity.CardPeriodNotProgrammed {
		t.Errorf("expected not_programmed after rollover, got %s", after.Status)
	}
	if after.HasProgrammedPayment {
		t.Error("expected last period's payment not to carry into the new period")
	}
}

// As now advances past the due date with no matching instance, a card moves
// not_programmed -> overdue and never back.
func TestCardStatusMonotonicity(t *testing.T) {
	card := newCard(10, 5)
	overdueSeen := false
	for day := 15; day <= 31; day++ {
		now := date(2025, time.March, day)
		status := AnalyzeCards([]*entity.Card{card}, nil, nil, now)[0].Status
		if status == entity.CardPeriodOverdue {
			overdueSeen = true
		}
		if overdueSeen && status != entity.CardPeriodOverdue {
			t.Fatalf("status reversed from overdue to %s on day %d", status, day)
		}
	}
	for day := 1; day <= 20; day++ {
		now := date(2025, time.April, day)
		status := AnalyzeCards([]*entity.Card{card}, nil, nil, now)[0].Status
		if status == entity.CardPeriodOverdue {
			overdueSeen = true
		}
		if overdueSeen && status != entity.CardPeriodOverdue {
			t.Fatalf("status reversed from overdue to %s on April %d", status, day)
		}
	}
	if !overdueSeen {
		t.Fatal("expected the card to become overdue after April 5")
	}
}

// Identical inputs and a frozen now must produce byte-identical output.
func TestAnalyzeCardsIdempotent(t *testing.T) {
	card := newCard(10, 5)
	pi := cardInstance(card.ID, date(2025, time.April, 5), 1500, entity.InstanceStatusPending)
	now := date(2025, time.March, 15)

	first := AnalyzeCards([]*entity.Card{card}, []*entity.PaymentInstance{pi}, nil, now)
	second := AnalyzeCards([]*entity.Card{card}, []*entity.PaymentInstance{pi}, nil, now)

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical analyses for identical inputs")
	}
}
