// Package payment contains payment instance use cases.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/application/usecase/billing"
	"github.com/payment-tracker/backend/internal/domain/entity"
)

// GenerateInstancesInput represents the input for instance generation. Now is
// injected so the scheduler and tests share one code path.
type GenerateInstancesInput struct {
	HouseholdID uuid.UUID
	Now         time.Time
}

// GenerateInstancesOutput represents the output of instance generation.
type GenerateInstancesOutput struct {
	Created int
	Skipped int
}

// GenerateInstancesUseCase materializes the next pending instance for each
// active template whose recurrence rule yields an upcoming due date.
type GenerateInstancesUseCase struct {
	scheduledPaymentRepo adapter.ScheduledPaymentRepository
	instanceRepo         adapter.PaymentInstanceRepository
}

// NewGenerateInstancesUseCase creates a new GenerateInstancesUseCase instance.
func NewGenerateInstancesUseCase(
	scheduledPaymentRepo adapter.ScheduledPaymentRepository,
	instanceRepo adapter.PaymentInstanceRepository,
) *GenerateInstancesUseCase {
	return &GenerateInstancesUseCase{
		scheduledPaymentRepo: scheduledPaymentRepo,
		instanceRepo:         instanceRepo,
	}
}

// Execute runs one generation pass for the household. Generation is
// idempotent: a template that already has an instance on its next due date is
// skipped, so the daily cron and the manual endpoint can overlap safely.
func (uc *GenerateInstancesUseCase) Execute(ctx context.Context, input GenerateInstancesInput) (*GenerateInstancesOutput, error) {
	templates, err := uc.scheduledPaymentRepo.FindActiveByHousehold(ctx, input.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active templates: %w", err)
	}

	out := &GenerateInstancesOutput{}
	for _, tpl := range templates {
		dueDate, ok := nextDueDate(tpl, input.Now)
		if !ok {
			out.Skipped++
			continue
		}

		existing, err := uc.instanceRepo.FindByTemplate(ctx, tpl.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load template instances: %w", err)
		}
		if hasInstanceOn(existing, dueDate) {
			out.Skipped++
			continue
		}

		instance := entity.NewPaymentInstance(
			tpl.HouseholdID,
			tpl.Description,
			dueDate,
			tpl.Amount,
			tpl.PaymentType,
		)
		instance.ScheduledPaymentID = &tpl.ID
		instance.CardID = tpl.CardID
		instance.ServiceID = tpl.ServiceID
		instance.ServiceLineID = tpl.ServiceLineID

		if err := uc.instanceRepo.Create(ctx, instance); err != nil {
			return nil, fmt.Errorf("failed to create payment instance: %w", err)
		}
		out.Created++

		slog.Info("materialized payment instance",
			"template_id", tpl.ID,
			"instance_id", instance.ID,
			"due_date", dueDate.Format(time.DateOnly),
		)
	}

	return out, nil
}

// nextDueDate resolves a template's recurrence rule to its next due date on
// or after now. Returns false when the rule yields nothing, e.g. a one-off
// already in the past or a billing-cycle template without a date yet.
func nextDueDate(tpl *entity.ScheduledPayment, now time.Time) (time.Time, bool) {
	today := billing.StartOfDay(now)

	switch tpl.Frequency {
	case entity.FrequencyMonthly:
		if tpl.DueDay == nil {
			return time.Time{}, false
		}
		due := billing.ComputeMonthCutoff(*tpl.DueDay, now)
		if due.Before(today) {
			due = billing.ComputeNextPeriod(due)
		}
		return due, true

	case entity.FrequencyWeekly:
		if tpl.DayOfWeek == nil {
			return time.Time{}, false
		}
		offset := (int(*tpl.DayOfWeek) - int(today.Weekday()) + 7) % 7
		return today.AddDate(0, 0, offset), true

	case entity.FrequencyOnce, entity.FrequencyBillingCycle:
		if tpl.PaymentDate == nil {
			return time.Time{}, false
		}
		due := billing.StartOfDay(*tpl.PaymentDate)
		if due.Before(today) {
			return time.Time{}, false
		}
		return due, true
	}

	return time.Time{}, false
}

// hasInstanceOn reports whether any non-cancelled instance falls on the same
// calendar day as dueDate.
func hasInstanceOn(instances []*entity.PaymentInstance, dueDate time.Time) bool {
	day := billing.StartOfDay(dueDate)
	for _, pi := range instances {
		if pi.Status == entity.InstanceStatusCancelled {
			continue
		}
		if billing.StartOfDay(pi.DueDate).Equal(day) {
			return true
		}
	}
	return false
}
