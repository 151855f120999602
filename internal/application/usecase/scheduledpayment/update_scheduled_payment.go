// Package scheduledpayment contains use cases for recurring-payment templates.
package scheduledpayment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/domain/entity"
	domainerror "github.com/payment-tracker/backend/internal/domain/error"
)

// UpdateScheduledPaymentInput represents the input for template update. Nil
// pointers leave the corresponding field unchanged; SetPaymentDate
// distinguishes "leave alone" from "set or clear PaymentDate".
type UpdateScheduledPaymentInput struct {
	ID             uuid.UUID
	HouseholdID    uuid.UUID
	Description    *string
	Amount         *decimal.Decimal
	IsActive       *bool
	SetPaymentDate bool
	PaymentDate    *time.Time
	DueDay         *int
	DayOfWeek      *time.Weekday
}

// UpdateScheduledPaymentOutput represents the output of template update.
type UpdateScheduledPaymentOutput struct {
	ScheduledPayment *entity.ScheduledPayment
}

// UpdateScheduledPaymentUseCase handles template update logic.
type UpdateScheduledPaymentUseCase struct {
	scheduledPaymentRepo adapter.ScheduledPaymentRepository
}

// NewUpdateScheduledPaymentUseCase creates a new UpdateScheduledPaymentUseCase instance.
func NewUpdateScheduledPaymentUseCase(scheduledPaymentRepo adapter.ScheduledPaymentRepository) *UpdateScheduledPaymentUseCase {
	return &UpdateScheduledPaymentUseCase{
		scheduledPaymentRepo: scheduledPaymentRepo,
	}
}

// Execute performs the template update and re-validates the recurrence rule
// against the (unchanged) frequency.
func (uc *UpdateScheduledPaymentUseCase) Execute(ctx context.Context, input UpdateScheduledPaymentInput) (*UpdateScheduledPaymentOutput, error) {
	sp, err := uc.scheduledPaymentRepo.FindByID(ctx, input.ID)
	if err != nil || sp.HouseholdID != input.HouseholdID {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeScheduledPaymentNotFound,
			"scheduled payment not found",
			domainerror.ErrScheduledPaymentNotFound,
		)
	}

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domainerror.NewPaymentError(
				domainerror.ErrCodeInvalidPaymentAmount,
				"amount must be positive",
				domainerror.ErrInvalidPaymentAmount,
			)
		}
		sp.Amount = *input.Amount
	}
	if input.Description != nil {
		sp.Description = *input.Description
	}
	if input.IsActive != nil {
		sp.IsActive = *input.IsActive
	}
	if input.SetPaymentDate {
		sp.PaymentDate = input.PaymentDate
	}
	if input.DueDay != nil {
		sp.DueDay = input.DueDay
	}
	if input.DayOfWeek != nil {
		sp.DayOfWeek = input.DayOfWeek
	}

	if err := validateRecurrenceRule(sp.Frequency, sp.PaymentDate, sp.DueDay, sp.DayOfWeek); err != nil {
		return nil, err
	}

	if err := uc.scheduledPaymentRepo.Update(ctx, sp); err != nil {
		return nil, fmt.Errorf("failed to update scheduled payment: %w", err)
	}

	return &UpdateScheduledPaymentOutput{ScheduledPayment: sp}, nil
}
