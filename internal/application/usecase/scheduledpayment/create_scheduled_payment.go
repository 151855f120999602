// Package scheduledpayment contains use cases for recurring-payment
// templates. Templates never carry money themselves; the payment package
// materializes dated instances from them.
package scheduledpayment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/application/usecase/billing"
	"github.com/payment-tracker/backend/internal/domain/entity"
	domainerror "github.com/payment-tracker/backend/internal/domain/error"
)

// CreateScheduledPaymentInput represents the input for template creation.
type CreateScheduledPaymentInput struct {
	HouseholdID   uuid.UUID
	Description   string
	PaymentType   entity.PaymentType
	Frequency     entity.Frequency
	Amount        decimal.Decimal
	PaymentDate   *time.Time
	DueDay        *int
	DayOfWeek     *time.Weekday
	CardID        *uuid.UUID
	ServiceID     *uuid.UUID
	ServiceLineID *uuid.UUID
}

// CreateScheduledPaymentOutput represents the output of template creation.
type CreateScheduledPaymentOutput struct {
	ScheduledPayment *entity.ScheduledPayment
}

// CreateScheduledPaymentUseCase handles template creation logic.
type CreateScheduledPaymentUseCase struct {
	scheduledPaymentRepo adapter.ScheduledPaymentRepository
}

// NewCreateScheduledPaymentUseCase creates a new CreateScheduledPaymentUseCase instance.
func NewCreateScheduledPaymentUseCase(scheduledPaymentRepo adapter.ScheduledPaymentRepository) *CreateScheduledPaymentUseCase {
	return &CreateScheduledPaymentUseCase{
		scheduledPaymentRepo: scheduledPaymentRepo,
	}
}

// Execute performs the template creation.
func (uc *CreateScheduledPaymentUseCase) Execute(ctx context.Context, input CreateScheduledPaymentInput) (*CreateScheduledPaymentOutput, error) {
	if input.PaymentType != entity.PaymentTypeCard && input.PaymentType != entity.PaymentTypeService {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentType,
			"payment type must be 'card_payment' or 'service_payment'",
			domainerror.ErrInvalidPaymentType,
		)
	}
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"amount must be positive",
			domainerror.ErrInvalidPaymentAmount,
		)
	}
	if err := validateRecurrenceRule(input.Frequency, input.PaymentDate, input.DueDay, input.DayOfWeek); err != nil {
		return nil, err
	}

	sp := entity.NewScheduledPayment(
		input.HouseholdID,
		input.Description,
		input.PaymentType,
		input.Frequency,
		input.Amount,
	)
	sp.PaymentDate = input.PaymentDate
	sp.DueDay = input.DueDay
	sp.DayOfWeek = input.DayOfWeek
	sp.CardID = input.CardID
	sp.ServiceID = input.ServiceID
	sp.ServiceLineID = input.ServiceLineID

	if err := uc.scheduledPaymentRepo.Create(ctx, sp); err != nil {
		return nil, fmt.Errorf("failed to create scheduled payment: %w", err)
	}

	return &CreateScheduledPaymentOutput{ScheduledPayment: sp}, nil
}

// validateRecurrenceRule ensures a template carries the fields its frequency
// needs: monthly needs a due day, weekly a day of week, once a concrete date.
// Billing-cycle templates may start without a date; they only match periods
// after the user sets one.
func validateRecurrenceRule(freq entity.Frequency, paymentDate *time.Time, dueDay *int, dayOfWeek *time.Weekday) error {
	switch freq {
	case entity.FrequencyMonthly:
		if dueDay == nil {
			return domainerror.NewPaymentError(
				domainerror.ErrCodeMissingRecurrenceRule,
				"monthly templates require a due day",
				domainerror.ErrMissingRecurrenceRule,
			)
		}
		return billing.ValidateCycleDay(*dueDay)
	case entity.FrequencyWeekly:
		if dayOfWeek == nil {
			return domainerror.NewPaymentError(
				domainerror.ErrCodeMissingRecurrenceRule,
				"weekly templates require a day of week",
				domainerror.ErrMissingRecurrenceRule,
			)
		}
	case entity.FrequencyOnce:
		if paymentDate == nil {
			return domainerror.NewPaymentError(
				domainerror.ErrCodeMissingRecurrenceRule,
				"one-off templates require a payment date",
				domainerror.ErrMissingRecurrenceRule,
			)
		}
	case entity.FrequencyBillingCycle:
		// No required fields at creation time.
	default:
		return domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidFrequency,
			"frequency must be 'monthly', 'weekly', 'once', or 'billing_cycle'",
			domainerror.ErrInvalidFrequency,
		)
	}
	return nil
}
