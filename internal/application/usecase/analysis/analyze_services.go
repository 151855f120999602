package analysis

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/application/usecase/billing"
	"github.com/payment-tracker/backend/internal/domain/entity"
)

// AnalyzeServices produces one billing analysis per active billing-cycle
// service without lines. Fixed services have no cycle to analyze, and
// services with lines delegate to AnalyzeServiceLines; both are skipped here,
// as are billing-cycle services missing their cycle configuration.
//
// The cutoff is projected into the current calendar month, so it may still be
// ahead of now: that is the upcoming state. Once the period is paid and its
// due date has passed, the analysis advances one period and reports the next
// cutoff as upcoming instead of showing a settled period forever.
func AnalyzeServices(
	services []*entity.Service,
	instances []*entity.PaymentInstance,
	now time.Time,
) []entity.ServiceBillingAnalysis {
	instances = excludeCancelled(instances)
	analyses := make([]entity.ServiceBillingAnalysis, 0, len(services))

	for _, svc := range services {
		if !svc.IsActive || svc.Type != entity.ServiceTypeBillingCycle || svc.HasLines() {
			continue
		}
		if !svc.HasCycleConfig() {
			continue
		}
		cycleDay, dueDay := *svc.BillingCycleDay, *svc.BillingDueDay
		if billing.ValidateCycleDay(cycleDay) != nil || billing.ValidateCycleDay(dueDay) != nil {
			continue
		}

		cutoff := billing.ComputeMonthCutoff(cycleDay, now)
		due := billing.ComputeDueDate(cycleDay, dueDay, cutoff)
		owner := billing.OwnerRef{Kind: billing.OwnerService, ID: svc.ID}

		match, extra := billing.FindMatchingInstance(instances, owner, billing.DueDateWindow(cutoff, due))
		warnDuplicates(owner, extra)

		// A settled, expired period advances to the next cutoff.
		if match != nil && match.Status == entity.InstanceStatusPaid && now.After(due) {
			cutoff = billing.ComputeNextPeriod(cutoff)
			due = billing.ComputeDueDate(cycleDay, dueDay, cutoff)
			match, extra = billing.FindMatchingInstance(instances, owner, billing.DueDateWindow(cutoff, due))
			warnDuplicates(owner, extra)
		}

		hasAmount := match != nil && match.Amount.GreaterThan(decimal.Zero)
		amount := decimal.Zero
		if match != nil {
			amount = match.Amount
		}

		var status entity.ServiceBillingStatus
		switch {
		case now.After(due) && (match == nil || match.IsOpen()):
			status = entity.ServiceBillingOverdue
		case now.Before(cutoff):
			status = entity.ServiceBillingUpcoming
		case hasAmount:
			status = entity.ServiceBillingReady
		default:
			status = entity.ServiceBillingAwaitingAmount
		}

		analyses = append(analyses, entity.ServiceBillingAnalysis{
			ServiceID:    svc.ID,
			ServiceName:  svc.Name,
			CutoffDate:   cutoff,
			DueDate:      due,
			DaysUntilDue: billing.DaysUntil(now, due),
			HasAmount:    hasAmount,
			Amount:       amount,
			Status:       status,
		})
	}

	return analyses
}
