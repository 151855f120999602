package alert

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/domain/entity"
)

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func findAlert(alerts []entity.SmartAlert, id string) *entity.SmartAlert {
	for i := range alerts {
		if alerts[i].ID == id {
			return &alerts[i]
		}
	}
	return nil
}

func TestGenerateCardNoPayment(t *testing.T) {
	now := time.Date(2025, time.April, 12, 15, 0, 0, 0, time.UTC)
	cardID := uuid.New()

	analysis := entity.CardPeriodAnalysis{
		CardID:       cardID,
		CardName:     "Visa Gold",
		ClosingDate:  time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC),
		DueDate:      time.Date(2025, time.May, 5, 23, 59, 59, 999000000, time.UTC),
		DaysUntilDue: 23,
		Status:       entity.CardPeriodNotProgrammed,
	}

	t.Run("fires after closing with no payment", func(t *testing.T) {
		alerts := Generate(Context{Now: now, CardAnalyses: []entity.CardPeriodAnalysis{analysis}})
		a := findAlert(alerts, "card-no-payment-"+cardID.String())
		if a == nil {
			t.Fatal("expected card-no-payment alert")
		}
		if a.Severity != entity.AlertSeverityCritical {
			t.Errorf("severity = %s, want critical", a.Severity)
		}
		if a.Action.Params["cardId"] != cardID.String() {
			t.Errorf("action params = %v, want cardId", a.Action.Params)
		}
	})

	t.Run("silent when covered", func(t *testing.T) {
		covered := analysis
		covered.Status = entity.CardPeriodCovered
		alerts := Generate(Context{Now: now, CardAnalyses: []entity.CardPeriodAnalysis{covered}})
		if findAlert(alerts, "card-no-payment-"+cardID.String()) != nil {
			t.Error("covered period must not alert")
		}
	})
}

func TestGenerateLowCredit(t *testing.T) {
	now := time.Date(2025, time.April, 12, 0, 0, 0, 0, time.UTC)

	newCard := func(limit, available string) *entity.Card {
		return &entity.Card{
			ID:              uuid.New(),
			Name:            "Amex",
			CreditLimit:     dec(limit),
			AvailableCredit: dec(available),
		}
	}

	t.Run("fires below 20 percent available", func(t *testing.T) {
		card := newCard("5000", "750") // 15% available
		alerts := Generate(Context{Now: now, Cards: []*entity.Card{card}})
		a := findAlert(alerts, "low-credit-"+card.ID.String())
		if a == nil {
			t.Fatal("expected low-credit alert")
		}
		if a.Severity != entity.AlertSeverityWarning {
			t.Errorf("severity = %s, want warning", a.Severity)
		}
	})

	t.Run("silent at exactly 20 percent", func(t *testing.T) {
		card := newCard("5000", "1000")
		alerts := Generate(Context{Now: now, Cards: []*entity.Card{card}})
		if findAlert(alerts, "low-credit-"+card.ID.String()) != nil {
			t.Error("20% available must not alert")
		}
	})

	t.Run("silent for zero-limit card", func(t *testing.T) {
		card := newCard("0", "0")
		alerts := Generate(Context{Now: now, Cards: []*entity.Card{card}})
		if findAlert(alerts, "low-credit-"+card.ID.String()) != nil {
			t.Error("zero-limit card must not alert")
		}
	})
}

func TestGenerateServiceAwaitingAmount(t *testing.T) {
	now := time.Date(2025, time.April, 25, 0, 0, 0, 0, time.UTC)
	serviceID := uuid.New()

	analysis := entity.ServiceBillingAnalysis{
		ServiceID:   serviceID,
		ServiceName: "Electricity",
		CutoffDate:  time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2025, time.May, 5, 23, 59, 59, 999000000, time.UTC),
		Status:      entity.ServiceBillingAwaitingAmount,
	}

	t.Run("fires for awaiting amount", func(t *testing.T) {
		alerts := Generate(Context{Now: now, ServiceAnalyses: []entity.ServiceBillingAnalysis{analysis}})
		if findAlert(alerts, "service-awaiting-amount-"+serviceID.String()) == nil {
			t.Fatal("expected service-awaiting-amount alert")
		}
	})

	t.Run("suppressed when service has lines", func(t *testing.T) {
		svc := &entity.Service{
			ID:    serviceID,
			Lines: []*entity.ServiceLine{{ID: uuid.New(), Name: "Main"}},
		}
		alerts := Generate(Context{
			Now:             now,
			Services:        []*entity.Service{svc},
			ServiceAnalyses: []entity.ServiceBillingAnalysis{analysis},
		})
		if findAlert(alerts, "service-awaiting-amount-"+serviceID.String()) != nil {
			t.Error("service with lines must defer to line-level alerts")
		}
	})
}

func TestGenerateServiceLineNoPayment(t *testing.T) {
	now := time.Date(2025, time.April, 25, 0, 0, 0, 0, time.UTC)
	lineID := uuid.New()

	analysis := entity.ServiceLineBillingAnalysis{
		LineID:     lineID,
		LineName:   "Internet main",
		CutoffDate: time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC),
		DueDate:    time.Date(2025, time.May, 5, 23, 59, 59, 999000000, time.UTC),
		Status:     entity.ServiceLineNotProgrammed,
	}

	alerts := Generate(Context{Now: now, LineAnalyses: []entity.ServiceLineBillingAnalysis{analysis}})
	a := findAlert(alerts, "service-line-no-payment-"+lineID.String())
	if a == nil {
		t.Fatal("expected service-line-no-payment alert")
	}
	if a.Severity != entity.AlertSeverityCritical {
		t.Errorf("severity = %s, want critical", a.Severity)
	}

	t.Run("silent before cutoff", func(t *testing.T) {
		early := time.Date(2025, time.April, 19, 0, 0, 0, 0, time.UTC)
		alerts := Generate(Context{Now: early, LineAnalyses: []entity.ServiceLineBillingAnalysis{analysis}})
		if findAlert(alerts, "service-line-no-payment-"+lineID.String()) != nil {
			t.Error("must not alert before the cutoff passes")
		}
	})
}

func TestGenerateInstanceSingletons(t *testing.T) {
	now := time.Date(2025, time.April, 12, 10, 0, 0, 0, time.UTC)

	instance := func(due time.Time, status entity.InstanceStatus) *entity.PaymentInstance {
		return &entity.PaymentInstance{
			ID:      uuid.New(),
			Amount:  dec("300"),
			DueDate: due,
			Status:  status,
		}
	}

	t.Run("overdue singleton aggregates open past-due instances", func(t *testing.T) {
		instances := []*entity.PaymentInstance{
			instance(time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC), entity.InstanceStatusPending),
			instance(time.Date(2025, time.April, 11, 0, 0, 0, 0, time.UTC), entity.InstanceStatusPending),
			instance(time.Date(2025, time.April, 8, 0, 0, 0, 0, time.UTC), entity.InstanceStatusPaid),
		}
		alerts := Generate(Context{Now: now, Instances: instances})
		a := findAlert(alerts, "overdue-payments")
		if a == nil {
			t.Fatal("expected overdue-payments alert")
		}
		if want := "2 overdue payment(s)"; a.Title != want {
			t.Errorf("title = %q, want %q", a.Title, want)
		}
		if a.SortValue == nil || *a.SortValue != 600 {
			t.Errorf("sort value = %v, want 600", a.SortValue)
		}
	})

	t.Run("upcoming singleton covers the next two days", func(t *testing.T) {
		instances := []*entity.PaymentInstance{
			instance(time.Date(2025, time.April, 12, 23, 0, 0, 0, time.UTC), entity.InstanceStatusPending),
			instance(time.Date(2025, time.April, 14, 0, 0, 0, 0, time.UTC), entity.InstanceStatusPending),
			instance(time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC), entity.InstanceStatusPending),
		}
		alerts := Generate(Context{Now: now, Instances: instances})
		a := findAlert(alerts, "upcoming-payments")
		if a == nil {
			t.Fatal("expected upcoming-payments alert")
		}
		if want := "2 payment(s) due in the next 2 days"; a.Title != want {
			t.Errorf("title = %q, want %q", a.Title, want)
		}
	})

	t.Run("no instances means no singletons", func(t *testing.T) {
		alerts := Generate(Context{Now: now})
		if findAlert(alerts, "overdue-payments") != nil || findAlert(alerts, "upcoming-payments") != nil {
			t.Error("singletons must not fire with nothing open")
		}
	})
}

func TestGenerateHighWeek(t *testing.T) {
	now := time.Date(2025, time.April, 12, 0, 0, 0, 0, time.UTC)

	t.Run("fires when week exceeds 1.4x monthly average", func(t *testing.T) {
		// Average week is 500, threshold 700, weekly 1000.
		alerts := Generate(Context{Now: now, WeeklyPending: dec("1000"), MonthlyPending: dec("2000")})
		a := findAlert(alerts, "high-week")
		if a == nil {
			t.Fatal("expected high-week alert")
		}
		if a.Severity != entity.AlertSeverityInfo {
			t.Errorf("severity = %s, want info", a.Severity)
		}
	})

	t.Run("silent at the threshold", func(t *testing.T) {
		alerts := Generate(Context{Now: now, WeeklyPending: dec("700"), MonthlyPending: dec("2000")})
		if findAlert(alerts, "high-week") != nil {
			t.Error("weekly equal to threshold must not alert")
		}
	})

	t.Run("silent for an empty week", func(t *testing.T) {
		alerts := Generate(Context{Now: now, WeeklyPending: decimal.Zero, MonthlyPending: dec("2000")})
		if findAlert(alerts, "high-week") != nil {
			t.Error("empty week must not alert")
		}
	})
}

func TestGenerateOrdering(t *testing.T) {
	now := time.Date(2025, time.April, 25, 10, 0, 0, 0, time.UTC)
	cardID := uuid.New()
	lowCard := &entity.Card{
		ID:              uuid.New(),
		Name:            "Amex",
		CreditLimit:     dec("5000"),
		AvailableCredit: dec("500"),
	}

	ctx := Context{
		Now:   now,
		Cards: []*entity.Card{lowCard},
		CardAnalyses: []entity.CardPeriodAnalysis{{
			CardID:      cardID,
			CardName:    "Visa Gold",
			ClosingDate: time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC),
			DueDate:     time.Date(2025, time.May, 5, 23, 59, 59, 999000000, time.UTC),
			Status:      entity.CardPeriodNotProgrammed,
		}},
		Instances: []*entity.PaymentInstance{{
			ID:      uuid.New(),
			Amount:  dec("150"),
			DueDate: time.Date(2025, time.April, 26, 0, 0, 0, 0, time.UTC),
			Status:  entity.InstanceStatusPending,
		}},
		WeeklyPending:  dec("1000"),
		MonthlyPending: dec("2000"),
	}

	alerts := Generate(ctx)
	if len(alerts) != 4 {
		t.Fatalf("got %d alerts, want 4", len(alerts))
	}

	rank := map[entity.AlertSeverity]int{
		entity.AlertSeverityCritical: 0,
		entity.AlertSeverityWarning:  1,
		entity.AlertSeverityInfo:     2,
	}
	for i := 1; i < len(alerts); i++ {
		if rank[alerts[i].Severity] < rank[alerts[i-1].Severity] {
			t.Fatalf("alert %d (%s) sorted before a more severe one", i, alerts[i].ID)
		}
	}
	if alerts[0].Severity != entity.AlertSeverityCritical {
		t.Errorf("first alert severity = %s, want critical", alerts[0].Severity)
	}
	if alerts[len(alerts)-1].ID != "high-week" {
		t.Errorf("last alert = %s, want high-week", alerts[len(alerts)-1].ID)
	}

	t.Run("sort values order within a tier", func(t *testing.T) {
		list := []entity.SmartAlert{
			{Severity: entity.AlertSeverityWarning, ID: "a", SortValue: sortValue(10)},
			{Severity: entity.AlertSeverityWarning, ID: "b", SortValue: sortValue(90)},
		}
		entity.SortAlerts(list)
		if list[0].ID != "b" {
			t.Errorf("higher sort value must come first, got %s", list[0].ID)
		}
	})
}
