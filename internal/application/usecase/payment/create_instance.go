// Package payment contains payment instance use cases: direct creation,
// listing, registering money against an instance, cancellation, and
// materialization from scheduled-payment templates.
package payment

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

// CreateInstanceInput represents the input for direct instance creation.
type CreateInstanceInput struct {
	HouseholdID   uuid.UUID
	Description   string
	DueDate       time.Time
	Amount        decimal.Decimal
	PaymentType   entity.PaymentType
	CardID        *uuid.UUID
	ServiceID     *uuid.UUID
	ServiceLineID *uuid.UUID
}

// CreateInstanceOutput represents the output of instance creation.
type CreateInstanceOutput struct {
	Instance *entity.PaymentInstance
}

// CreateInstanceUseCase handles direct instance creation, bypassing templates.
type CreateInstanceUseCase struct {
	instanceRepo adapter.PaymentInstanceRepository
}

// NewCreateInstanceUseCase creates a new CreateInstanceUseCase instance.
func NewCreateInstanceUseCase(instanceRepo adapter.PaymentInstanceRepository) *CreateInstanceUseCase {
	return &CreateInstanceUseCase{
		instanceRepo: instanceRepo,
	}
}

// Execute performs the instance creation.
func (uc *CreateInstanceUseCase) Execute(ctx context.Context, input CreateInstanceInput) (*CreateInstanceOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"amount must be positive",
			domainerror.ErrInvalidPaymentAmount,
		)
	}
	if input.PaymentType != entity.PaymentTypeCard && input.PaymentType != entity.PaymentTypeService {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentType,
			"payment type must be 'card_payment' or 'service_payment'",
			domainerror.ErrInvalidPaymentType,
		)
	}
	if input.DueDate.IsZero() {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeMissingPaymentFields,
			"due date is required",
			nil,
		)
	}

	instance := entity.NewPaymentInstance(
		input.HouseholdID,
		input.Description,
		input.DueDate,
		input.Amount,
		input.PaymentType,
	)
	instance.CardID = input.CardID
	instance.ServiceID = input.ServiceID
	instance.ServiceLineID = input.ServiceLineID

	if err := uc.instanceRepo.Create(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to create payment instance: %w", err)
	}

	return &CreateInstanceOutput{Instance: instance}, nil
}
