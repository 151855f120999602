// Package payment contains payment instance use cases.
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

// RegisterPaymentInput represents the input for registering money against an
// instance. A nil Amount settles the instance in full.
type RegisterPaymentInput struct {
	InstanceID  uuid.UUID
	HouseholdID uuid.UUID
	Amount      *decimal.Decimal
	PaidDate    time.Time
	Notes       string
}

// RegisterPaymentOutput represents the output of registering a payment.
type RegisterPaymentOutput struct {
	Instance *entity.PaymentInstance
}

// RegisterPaymentUseCase handles full and partial payment registration.
type RegisterPaymentUseCase struct {
	instanceRepo adapter.PaymentInstanceRepository
}

// NewRegisterPaymentUseCase creates a new RegisterPaymentUseCase instance.
func NewRegisterPaymentUseCase(instanceRepo adapter.PaymentInstanceRepository) *RegisterPaymentUseCase {
	return &RegisterPaymentUseCase{
		instanceRepo: instanceRepo,
	}
}

// Execute registers the payment. Only open instances (pending or partial)
// accept money; the entity flips to paid once the remaining amount is
// settled.
func (uc *RegisterPaymentUseCase) Execute(ctx context.Context, input RegisterPaymentInput) (*RegisterPaymentOutput, error) {
	instance, err := uc.instanceRepo.FindByID(ctx, input.InstanceID)
	if err != nil || instance.HouseholdID != input.HouseholdID {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInstanceNotFound,
			"payment instance not found",
			domainerror.ErrInstanceNotFound,
		)
	}

	if !instance.IsOpen() {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInstanceNotOpen,
			fmt.Sprintf("cannot register a payment on a %s instance", instance.Status),
			domainerror.ErrInstanceNotOpen,
		)
	}

	paidDate := input.PaidDate
	if paidDate.IsZero() {
		paidDate = time.Now().UTC()
	}

	if input.Amount == nil {
		instance.MarkPaid(paidDate)
	} else {
		if !input.Amount.IsPositive() {
			return nil, domainerror.NewPaymentError(
				domainerror.ErrCodeInvalidPaymentAmount,
				"payment amount must be positive",
				domainerror.ErrInvalidPaymentAmount,
			)
		}
		instance.ApplyPartialPayment(*input.Amount, paidDate, input.Notes)
	}

	if err := uc.instanceRepo.Update(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to update payment instance: %w", err)
	}

	return &RegisterPaymentOutput{Instance: instance}, nil
}
