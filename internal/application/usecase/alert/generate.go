// Package alert derives the prioritized smart-alert list from period
// analyses, cash-flow totals, and raw card/instance collections. Each rule is
// a pure function from the shared context to a slice of alerts; the generator
// concatenates rule output and sorts once, with no shared accumulator, so the
// result is deterministic for identical inputs.
package alert

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/application/usecase/billing"
	"github.com/payment-tracker/backend/internal/domain/entity"
)

// lowCreditThreshold is the available-credit percentage below which a card is
// considered close to its limit.
var lowCreditThreshold = decimal.NewFromInt(20)

// highWeekFactor flags a week whose pending total exceeds 1.4x the average
// week of the month.
var highWeekFactor = decimal.NewFromFloat(1.4)

// upcomingWindowDays is how far ahead the upcoming-payments alert looks.
const upcomingWindowDays = 2

// Context carries everything the alert rules read. It is assembled once per
// dashboard computation and never mutated by the rules.
type Context struct {
	Now             time.Time
	Cards           []*entity.Card
	Services        []*entity.Service
	Instances       []*entity.PaymentInstance
	CardAnalyses    []entity.CardPeriodAnalysis
	ServiceAnalyses []entity.ServiceBillingAnalysis
	LineAnalyses    []entity.ServiceLineBillingAnalysis
	WeeklyPending   decimal.Decimal
	MonthlyPending  decimal.Decimal
}

// rule is one alert-producing function.
type rule func(Context) []entity.SmartAlert

var rules = []rule{
	cardNoPaymentAlerts,
	lowCreditAlerts,
	serviceAwaitingAmountAlerts,
	serviceLineNoPaymentAlerts,
	overduePaymentsAlert,
	upcomingPaymentsAlert,
	highWeekAlert,
}

// Generate runs every rule and returns the combined list sorted by severity
// rank (critical first), then by descending sort value inside a tier.
func Generate(ctx Context) []entity.SmartAlert {
	var alerts []entity.SmartAlert
	for _, r := range rules {
		alerts = append(alerts, r(ctx)...)
	}
	entity.SortAlerts(alerts)
	return alerts
}

func sortValue(v float64) *float64 { return &v }

// cardNoPaymentAlerts flags cards whose period closed with no payment lined
// up. The further past due, the higher the alert sorts within its tier.
func cardNoPaymentAlerts(ctx Context) []entity.SmartAlert {
	var out []entity.SmartAlert
	for _, a := range ctx.CardAnalyses {
		if a.Status != entity.CardPeriodNotProgrammed || !ctx.Now.After(a.ClosingDate) {
			continue
		}
		out = append(out, entity.SmartAlert{
			ID:          fmt.Sprintf("card-no-payment-%s", a.CardID),
			Type:        entity.AlertTypeCardNoPayment,
			Severity:    entity.AlertSeverityCritical,
			Title:       fmt.Sprintf("%s closed without a scheduled payment", a.CardName),
			Description: fmt.Sprintf("The statement closed on %s and no payment is scheduled. Payment is due %s.", a.ClosingDate.Format("Jan 2"), a.DueDate.Format("Jan 2")),
			Action: entity.AlertAction{
				Route:  "/payments/new",
				Params: map[string]string{"cardId": a.CardID.String()},
			},
			SortValue: sortValue(float64(-a.DaysUntilDue)),
		})
	}
	return out
}

// lowCreditAlerts flags cards with less than 20% of their limit available.
func lowCreditAlerts(ctx Context) []entity.SmartAlert {
	var out []entity.SmartAlert
	for _, card := range ctx.Cards {
		pct := card.AvailableCreditPercent()
		if pct.GreaterThanOrEqual(lowCreditThreshold) {
			continue
		}
		used, _ := decimal.NewFromInt(100).Sub(pct).Float64()
		out = append(out, entity.SmartAlert{
			ID:          fmt.Sprintf("low-credit-%s", card.ID),
			Type:        entity.AlertTypeLowCredit,
			Severity:    entity.AlertSeverityWarning,
			Title:       fmt.Sprintf("%s is close to its limit", card.Name),
			Description: fmt.Sprintf("Only %s of %s is still available.", card.AvailableCredit.StringFixed(2), card.CreditLimit.StringFixed(2)),
			Action: entity.AlertAction{
				Route:  "/cards",
				Params: map[string]string{"cardId": card.ID.String()},
			},
			SortValue: sortValue(used),
		})
	}
	return out
}

// serviceAwaitingAmountAlerts flags billing-cycle services whose cutoff
// passed without an amount. Services with lines are excluded: the line-level
// alert supersedes the service-level one, so the same obligation never alerts
// twice.
func serviceAwaitingAmountAlerts(ctx Context) []entity.SmartAlert {
	withLines := make(map[uuid.UUID]bool, len(ctx.Services))
	for _, svc := range ctx.Services {
		if svc.HasLines() {
			withLines[svc.ID] = true
		}
	}

	var out []entity.SmartAlert
	for _, a := range ctx.ServiceAnalyses {
		if a.Status != entity.ServiceBillingAwaitingAmount || withLines[a.ServiceID] {
			continue
		}
		out = append(out, entity.SmartAlert{
			ID:          fmt.Sprintf("service-awaiting-amount-%s", a.ServiceID),
			Type:        entity.AlertTypeServiceAwaitingAmount,
			Severity:    entity.AlertSeverityCritical,
			Title:       fmt.Sprintf("%s needs its amount", a.ServiceName),
			Description: fmt.Sprintf("The billing period closed on %s; enter the invoice amount before %s.", a.CutoffDate.Format("Jan 2"), a.DueDate.Format("Jan 2")),
			Action: entity.AlertAction{
				Route:  "/services",
				Params: map[string]string{"serviceId": a.ServiceID.String()},
			},
			SortValue: sortValue(float64(-a.DaysUntilDue)),
		})
	}
	return out
}

// serviceLineNoPaymentAlerts flags lines whose cycle closed with nothing
// scheduled.
func serviceLineNoPaymentAlerts(ctx Context) []entity.SmartAlert {
	var out []entity.SmartAlert
	for _, a := range ctx.LineAnalyses {
		if a.Status != entity.ServiceLineNotProgrammed || !ctx.Now.After(a.CutoffDate) {
			continue
		}
		out = append(out, entity.SmartAlert{
			ID:          fmt.Sprintf("service-line-no-payment-%s", a.LineID),
			Type:        entity.AlertTypeServiceLineNoPayment,
			Severity:    entity.AlertSeverityCritical,
			Title:       fmt.Sprintf("%s has no payment scheduled", a.LineName),
			Description: fmt.Sprintf("The cycle closed on %s and nothing is scheduled. Payment is due %s.", a.CutoffDate.Format("Jan 2"), a.DueDate.Format("Jan 2")),
			Action: entity.AlertAction{
				Route:  "/services",
				Params: map[string]string{"serviceLineId": a.LineID.String()},
			},
			SortValue: sortValue(float64(-a.DaysUntilDue)),
		})
	}
	return out
}

// overduePaymentsAlert is a singleton covering every open instance already
// past its due date.
func overduePaymentsAlert(ctx Context) []entity.SmartAlert {
	count := 0
	total := decimal.Zero
	for _, pi := range ctx.Instances {
		if pi.IsOpen() && billing.DaysUntil(ctx.Now, pi.DueDate) < 0 {
			count++
			total = total.Add(pi.AmountToPay())
		}
	}
	if count == 0 {
		return nil
	}
	totalF, _ := total.Float64()
	return []entity.SmartAlert{{
		ID:          "overdue-payments",
		Type:        entity.AlertTypeOverduePayments,
		Severity:    entity.AlertSeverityCritical,
		Title:       fmt.Sprintf("%d overdue payment(s)", count),
		Description: fmt.Sprintf("%s in payments is past due.", total.StringFixed(2)),
		Action:      entity.AlertAction{Route: "/payments", Params: map[string]string{"filter": "overdue"}},
		SortValue:   sortValue(totalF),
	}}
}

// upcomingPaymentsAlert is a singleton covering open instances due within the
// next two days.
func upcomingPaymentsAlert(ctx Context) []entity.SmartAlert {
	count := 0
	total := decimal.Zero
	for _, pi := range ctx.Instances {
		if !pi.IsOpen() {
			continue
		}
		days := billing.DaysUntil(ctx.Now, pi.DueDate)
		if days >= 0 && days <= upcomingWindowDays {
			count++
			total = total.Add(pi.AmountToPay())
		}
	}
	if count == 0 {
		return nil
	}
	totalF, _ := total.Float64()
	return []entity.SmartAlert{{
		ID:          "upcoming-payments",
		Type:        entity.AlertTypeUpcomingPayments,
		Severity:    entity.AlertSeverityWarning,
		Title:       fmt.Sprintf("%d payment(s) due in the next %d days", count, upcomingWindowDays),
		Description: fmt.Sprintf("%s comes due by %s.", total.StringFixed(2), billing.StartOfDay(ctx.Now).AddDate(0, 0, upcomingWindowDays).Format("Jan 2")),
		Action:      entity.AlertAction{Route: "/payments", Params: map[string]string{"filter": "upcoming"}},
		SortValue:   sortValue(totalF),
	}}
}

// highWeekAlert fires when this week's pending total exceeds 1.4x the average
// week of the month.
func highWeekAlert(ctx Context) []entity.SmartAlert {
	if ctx.WeeklyPending.IsZero() {
		return nil
	}
	averageWeek := ctx.MonthlyPending.Div(decimal.NewFromInt(4))
	threshold := averageWeek.Mul(highWeekFactor)
	if ctx.WeeklyPending.LessThanOrEqual(threshold) {
		return nil
	}
	weeklyF, _ := ctx.WeeklyPending.Float64()
	return []entity.SmartAlert{{
		ID:          "high-week",
		Type:        entity.AlertTypeHighWeek,
		Severity:    entity.AlertSeverityInfo,
		Title:       "Heavy payment week",
		Description: fmt.Sprintf("This week's pending total %s is well above the monthly average week %s.", ctx.WeeklyPending.StringFixed(2), averageWeek.StringFixed(2)),
		Action:      entity.AlertAction{Route: "/dashboard"},
		SortValue:   sortValue(weeklyF),
	}}
}
