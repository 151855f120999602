// Package scheduledpayment contains use cases for recurring-payment templates.
package scheduledpayment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/payment-tracker/backend/internal/application/adapter"
	domainerror "github.com/payment-tracker/backend/internal/domain/error"
)

// DeleteScheduledPaymentInput represents the input for template deletion.
type DeleteScheduledPaymentInput struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
}

// DeleteScheduledPaymentOutput represents the output of template deletion.
type DeleteScheduledPaymentOutput struct {
	Message string
}

// DeleteScheduledPaymentUseCase handles template deletion logic.
type DeleteScheduledPaymentUseCase struct {
	scheduledPaymentRepo adapter.ScheduledPaymentRepository
}

// NewDeleteScheduledPaymentUseCase creates a new DeleteScheduledPaymentUseCase instance.
func NewDeleteScheduledPaymentUseCase(scheduledPaymentRepo adapter.ScheduledPaymentRepository) *DeleteScheduledPaymentUseCase {
	return &DeleteScheduledPaymentUseCase{
		scheduledPaymentRepo: scheduledPaymentRepo,
	}
}

// Execute soft-deletes the template. Instances already materialized from it
// survive and keep their ScheduledPaymentID for traceability.
func (uc *DeleteScheduledPaymentUseCase) Execute(ctx context.Context, input DeleteScheduledPaymentInput) (*DeleteScheduledPaymentOutput, error) {
	sp, err := uc.scheduledPaymentRepo.FindByID(ctx, input.ID)
	if err != nil || sp.HouseholdID != input.HouseholdID {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeScheduledPaymentNotFound,
			"scheduled payment not found",
			domainerror.ErrScheduledPaymentNotFound,
		)
	}

	if err := uc.scheduledPaymentRepo.Delete(ctx, sp.ID); err != nil {
		return nil, fmt.Errorf("failed to delete scheduled payment: %w", err)
	}

	return &DeleteScheduledPaymentOutput{Message: "Scheduled payment deleted successfully"}, nil
}
