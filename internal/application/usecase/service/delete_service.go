// Package service contains service management use cases.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/payment-tracker/backend/internal/application/adapter"
	domainerror "github.com/payment-tracker/backend/internal/domain/error"
)

// DeleteServiceInput represents the input for service deletion.
type DeleteServiceInput struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
}

// DeleteServiceOutput represents the output of service deletion.
type DeleteServiceOutput struct {
	Message string
}

// DeleteServiceUseCase handles service deletion logic.
type DeleteServiceUseCase struct {
	serviceRepo adapter.ServiceRepository
}

// NewDeleteServiceUseCase creates a new DeleteServiceUseCase instance.
func NewDeleteServiceUseCase(serviceRepo adapter.ServiceRepository) *DeleteServiceUseCase {
	return &DeleteServiceUseCase{
		serviceRepo: serviceRepo,
	}
}

// Execute soft-deletes the service together with its lines.
func (uc *DeleteServiceUseCase) Execute(ctx context.Context, input DeleteServiceInput) (*DeleteServiceOutput, error) {
	svc, err := uc.serviceRepo.FindByID(ctx, input.ID)
	if err != nil || svc.HouseholdID != input.HouseholdID {
		return nil, domainerror.NewServiceError(
			domainerror.ErrCodeServiceNotFound,
			"service not found",
			domainerror.ErrServiceNotFound,
		)
	}

	if err := uc.serviceRepo.Delete(ctx, svc.ID); err != nil {
		return nil, fmt.Errorf("failed to delete service: %w", err)
	}

	return &DeleteServiceOutput{Message: "Service deleted successfully"}, nil
}
