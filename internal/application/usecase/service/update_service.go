// Package service contains service management use cases.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/domain/entity"
	domainerror "github.com/payment-tracker/backend/internal/domain/error"
)

// UpdateServiceInput represents the input for service update. Nil pointers
// leave the corresponding field unchanged.
type UpdateServiceInput struct {
	ID              uuid.UUID
	HouseholdID     uuid.UUID
	Name            *string
	Amount          *decimal.Decimal
	PaymentMethod   *entity.PaymentMethod
	BillingCycleDay *int
	BillingDueDay   *int
	IsActive        *bool
}

// UpdateServiceOutput represents the output of service update.
type UpdateServiceOutput struct {
	Service *entity.Service
}

// UpdateServiceUseCase handles service update logic.
type UpdateServiceUseCase struct {
	serviceRepo adapter.ServiceRepository
}

// NewUpdateServiceUseCase creates a new UpdateServiceUseCase instance.
func NewUpdateServiceUseCase(serviceRepo adapter.ServiceRepository) *UpdateServiceUseCase {
	return &UpdateServiceUseCase{
		serviceRepo: serviceRepo,
	}
}

// Execute performs the service update. The service type is immutable after
// creation; switching between fixed and billing_cycle would orphan the
// history of materialized instances.
func (uc *UpdateServiceUseCase) Execute(ctx context.Context, input UpdateServiceInput) (*UpdateServiceOutput, error) {
	svc, err := uc.serviceRepo.FindByID(ctx, input.ID)
	if err != nil || svc.HouseholdID != input.HouseholdID {
		return nil, domainerror.NewServiceError(
			domainerror.ErrCodeServiceNotFound,
			"service not found",
			domainerror.ErrServiceNotFound,
		)
	}

	if input.PaymentMethod != nil {
		if *input.PaymentMethod != entity.PaymentMethodCard && *input.PaymentMethod != entity.PaymentMethodTransfer {
			return nil, domainerror.NewServiceError(
				domainerror.ErrCodeInvalidPaymentMethod,
				"payment method must be 'card' or 'transfer'",
				domainerror.ErrInvalidPaymentMethod,
			)
		}
		svc.PaymentMethod = *input.PaymentMethod
	}
	if err := validateOptionalCycleDays(input.BillingCycleDay, input.BillingDueDay); err != nil {
		return nil, err
	}
	if input.BillingCycleDay != nil {
		svc.BillingCycleDay = input.BillingCycleDay
	}
	if input.BillingDueDay != nil {
		svc.BillingDueDay = input.BillingDueDay
	}
	if input.Name != nil {
		svc.Name = *input.Name
	}
	if input.Amount != nil {
		svc.Amount = *input.Amount
	}
	if input.IsActive != nil {
		svc.IsActive = *input.IsActive
	}

	if err := uc.serviceRepo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	return &UpdateServiceOutput{Service: svc}, nil
}
