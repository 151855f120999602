// Package scheduledpayment contains use cases for recurring-payment templates.
package scheduledpayment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/domain/entity"
)

// ListScheduledPaymentsInput represents the input for listing templates.
type ListScheduledPaymentsInput struct {
	HouseholdID uuid.UUID
	ActiveOnly  bool
}

// ListScheduledPaymentsOutput represents the output of listing templates.
type ListScheduledPaymentsOutput struct {
	ScheduledPayments []*entity.ScheduledPayment
}

// ListScheduledPaymentsUseCase handles template listing logic.
type ListScheduledPaymentsUseCase struct {
	scheduledPaymentRepo adapter.ScheduledPaymentRepository
}

// NewListScheduledPaymentsUseCase creates a new ListScheduledPaymentsUseCase instance.
func NewListScheduledPaymentsUseCase(scheduledPaymentRepo adapter.ScheduledPaymentRepository) *ListScheduledPaymentsUseCase {
	return &ListScheduledPaymentsUseCase{
		scheduledPaymentRepo: scheduledPaymentRepo,
	}
}

// Execute retrieves the household's templates.
func (uc *ListScheduledPaymentsUseCase) Execute(ctx context.Context, input ListScheduledPaymentsInput) (*ListScheduledPaymentsOutput, error) {
	var (
		payments []*entity.ScheduledPayment
		err      error
	)
	if input.ActiveOnly {
		payments, err = uc.scheduledPaymentRepo.FindActiveByHousehold(ctx, input.HouseholdID)
	} else {
		payments, err = uc.scheduledPaymentRepo.FindByHousehold(ctx, input.HouseholdID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled payments: %w", err)
	}

	return &ListScheduledPaymentsOutput{ScheduledPayments: payments}, nil
}
