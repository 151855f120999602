// Package payment contains payment instance use cases.
package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/domain/entity"
	domainerror "github.com/payment-tracker/backend/internal/domain/error"
)

// CancelInstanceInput represents the input for instance cancellation.
type CancelInstanceInput struct {
	InstanceID  uuid.UUID
	HouseholdID uuid.UUID
}

// CancelInstanceOutput represents the output of instance cancellation.
type CancelInstanceOutput struct {
	Instance *entity.PaymentInstance
}

// CancelInstanceUseCase handles instance cancellation logic.
type CancelInstanceUseCase struct {
	instanceRepo adapter.PaymentInstanceRepository
}

// NewCancelInstanceUseCase creates a new CancelInstanceUseCase instance.
func NewCancelInstanceUseCase(instanceRepo adapter.PaymentInstanceRepository) *CancelInstanceUseCase {
	return &CancelInstanceUseCase{
		instanceRepo: instanceRepo,
	}
}

// Execute voids an open instance. Cancelled instances stop counting toward
// period coverage and cash-flow totals.
func (uc *CancelInstanceUseCase) Execute(ctx context.Context, input CancelInstanceInput) (*CancelInstanceOutput, error) {
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
			fmt.Sprintf("cannot cancel a %s instance", instance.Status),
			domainerror.ErrInstanceNotOpen,
		)
	}

	instance.Cancel()

	if err := uc.instanceRepo.Update(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to cancel payment instance: %w", err)
	}

	return &CancelInstanceOutput{Instance: instance}, nil
}
