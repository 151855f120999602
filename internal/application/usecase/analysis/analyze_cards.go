package analysis

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/application/usecase/billing"
	"github.com/payment-tracker/backend/internal/domain/entity"
)

// AnalyzeCards produces one period analysis per card. Cards with cycle days
// outside 1-31 are silently excluded; callers are expected to validate on
// write, so a bad record here is a precondition violation, not an error.
func AnalyzeCards(
	cards []*entity.Card,
	instances []*entity.PaymentInstance,
	templates []*entity.ScheduledPayment,
	now time.Time,
) []entity.CardPeriodAnalysis {
	instances = excludeCancelled(instances)
	analyses := make([]entity.CardPeriodAnalysis, 0, len(cards))

	for _, card := range cards {
		if billing.ValidateCycleDay(card.ClosingDay) != nil || billing.ValidateCycleDay(card.DueDay) != nil {
			continue
		}

		closing := billing.ComputeClosingDate(card.ClosingDay, now)
		due := billing.ComputeDueDate(card.ClosingDay, card.DueDay, closing)
		window := billing.CycleWindow(closing)
		owner := billing.OwnerRef{Kind: billing.OwnerCard, ID: card.ID}

		match, extra := billing.FindMatchingInstance(instances, owner, window)
		warnDuplicates(owner, extra)

		programmed := billing.HasProgrammedPayment(instances, templates, owner, window)

		amount := decimal.Zero
		if match != nil {
			amount = match.Amount
		} else if tpl := billing.FindMatchingTemplate(templates, owner, window); tpl != nil {
			amount = tpl.Amount
		}

		status := entity.CardPeriodNotProgrammed
		switch {
		case programmed:
			status = entity.CardPeriodCovered
		case now.After(due):
			status = entity.CardPeriodOverdue
		}

		analyses = append(analyses, entity.CardPeriodAnalysis{
			CardID:               card.ID,
			CardName:             card.Name,
			ClosingDate:          closing,
			DueDate:              due,
			DaysUntilDue:         billing.DaysUntil(now, due),
			HasProgrammedPayment: programmed,
			ProgrammedAmount:     amount,
			Status:               status,
		})
	}

	return analyses
}
