// Package service contains service management use cases, including the
// per-line operations for services split into independent billing cycles.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/application/usecase/billing"
	"github.com/payment-tracker/backend/internal/domain/entity"
	domainerror "github.com/payment-tracker/backend/internal/domain/error"
)

// CreateServiceInput represents the input for service creation.
type CreateServiceInput struct {
	HouseholdID     uuid.UUID
	Name            string
	Type            entity.ServiceType
	Amount          decimal.Decimal
	PaymentMethod   entity.PaymentMethod
	BillingCycleDay *int
	BillingDueDay   *int
}

// CreateServiceOutput represents the output of service creation.
type CreateServiceOutput struct {
	Service *entity.Service
}

// CreateServiceUseCase handles service creation logic.
type CreateServiceUseCase struct {
	serviceRepo adapter.ServiceRepository
}

// NewCreateServiceUseCase creates a new CreateServiceUseCase instance.
func NewCreateServiceUseCase(serviceRepo adapter.ServiceRepository) *CreateServiceUseCase {
	return &CreateServiceUseCase{
		serviceRepo: serviceRepo,
	}
}

// Execute performs the service creation.
func (uc *CreateServiceUseCase) Execute(ctx context.Context, input CreateServiceInput) (*CreateServiceOutput, error) {
	if input.Name == "" {
		return nil, domainerror.NewServiceError(
			domainerror.ErrCodeMissingServiceFields,
			"service name is required",
			nil,
		)
	}

	if input.Type != entity.ServiceTypeFixed && input.Type != entity.ServiceTypeBillingCycle {
		return nil, domainerror.NewServiceError(
			domainerror.ErrCodeInvalidServiceType,
			"service type must be 'fixed' or 'billing_cycle'",
			domainerror.ErrInvalidServiceType,
		)
	}
	if input.PaymentMethod != entity.PaymentMethodCard && input.PaymentMethod != entity.PaymentMethodTransfer {
		return nil, domainerror.NewServiceError(
			domainerror.ErrCodeInvalidPaymentMethod,
			"payment method must be 'card' or 'transfer'",
			domainerror.ErrInvalidPaymentMethod,
		)
	}

	// Cycle days are optional even for billing_cycle services; a service
	// without them is simply excluded from analysis until configured.
	if err := validateOptionalCycleDays(input.BillingCycleDay, input.BillingDueDay); err != nil {
		return nil, err
	}

	svc := entity.NewService(
		input.HouseholdID,
		input.Name,
		input.Type,
		input.Amount,
		input.PaymentMethod,
		input.BillingCycleDay,
		input.BillingDueDay,
	)

	if err := uc.serviceRepo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	return &CreateServiceOutput{Service: svc}, nil
}

// validateOptionalCycleDays rejects out-of-range days but accepts nil.
func validateOptionalCycleDays(cycleDay, dueDay *int) error {
	if cycleDay != nil {
		if err := billing.ValidateCycleDay(*cycleDay); err != nil {
			return err
		}
	}
	if dueDay != nil {
		if err := billing.ValidateCycleDay(*dueDay); err != nil {
			return err
		}
	}
	return nil
}
