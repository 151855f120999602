package analysis

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/application/usecase/billing"
	"github.com/payment-tracker/backend/internal/domain/entity"
)

// AnalyzeServiceLines produces one billing analysis per active service line.
// Lines match instances inside the tight cycle window (day after closing
// through next closing, zero tolerance) so a payment never belongs to two
// adjacent periods.
//
// Period advancement: when the matched instance is paid and its due date is
// already past, or the computed due date precedes the line's creation (the
// line did not exist for that historical period), the analysis moves one
// period forward before classifying, so a freshly-paid expired period cannot
// mask the next period's true status.
func AnalyzeServiceLines(
	lines []*entity.ServiceLine,
	instances []*entity.PaymentInstance,
	now time.Time,
) []entity.ServiceLineBillingAnalysis {
	instances = excludeCancelled(instances)
	analyses := make([]entity.ServiceLineBillingAnalysis, 0, len(lines))

	for _, line := range lines {
		if !line.IsActive {
			continue
		}
		if billing.ValidateCycleDay(line.BillingCycleDay) != nil || billing.ValidateCycleDay(line.BillingDueDay) != nil {
			continue
		}

		owner := billing.OwnerRef{Kind: billing.OwnerServiceLine, ID: line.ID}

		closing := billing.ComputeClosingDate(line.BillingCycleDay, now)
		due := billing.ComputeDueDate(line.BillingCycleDay, line.BillingDueDay, closing)
		match, extra := billing.FindMatchingInstance(instances, owner, billing.CycleWindow(closing))
		warnDuplicates(owner, extra)

		paidAndExpired := match != nil && match.Status == entity.InstanceStatusPaid && now.After(due)
		if paidAndExpired || due.Before(line.CreatedAt) {
			closing = billing.ComputeNextPeriod(closing)
			due = billing.ComputeDueDate(line.BillingCycleDay, line.BillingDueDay, closing)
			match, extra = billing.FindMatchingInstance(instances, owner, billing.CycleWindow(closing))
			warnDuplicates(owner, extra)
		}

		amount := decimal.Zero
		if match != nil {
			amount = match.Amount
		}

		var status entity.ServiceLineBillingStatus
		switch {
		case match == nil && now.After(due):
			status = entity.ServiceLineOverdue
		case match == nil:
			status = entity.ServiceLineNotProgrammed
		case match.Status == entity.InstanceStatusPaid:
			status = entity.ServiceLineCovered
		case match.Status == entity.InstanceStatusPartial:
			status = entity.ServiceLinePartial
		case now.After(due):
			status = entity.ServiceLineOverdue
		default:
			status = entity.ServiceLineProgrammed
		}

		analyses = append(analyses, entity.ServiceLineBillingAnalysis{
			LineID:       line.ID,
			ServiceID:    line.ServiceID,
			LineName:     line.Name,
			CutoffDate:   closing,
			DueDate:      due,
			DaysUntilDue: billing.DaysUntil(now, due),
			HasInstance:  match != nil,
			Amount:       amount,
			Status:       status,
		})
	}

	return analyses
}
