// Package service contains service management use cases.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/application/usecase/billing"
	"github.com/payment-tracker/backend/internal/domain/entity"
	domainerror "github.com/payment-tracker/backend/internal/domain/error"
)

// AddLineInput represents the input for adding a line to a service.
type AddLineInput struct {
	ServiceID       uuid.UUID
	HouseholdID     uuid.UUID
	Name            string
	BillingCycleDay int
	BillingDueDay   int
}

// AddLineOutput represents the output of adding a line.
type AddLineOutput struct {
	Line *entity.ServiceLine
}

// UpdateLineInput represents the input for updating a service line. Nil
// pointers leave the corresponding field unchanged.
type UpdateLineInput struct {
	LineID          uuid.UUID
	HouseholdID     uuid.UUID
	Name            *string
	BillingCycleDay *int
	BillingDueDay   *int
	IsActive        *bool
}

// UpdateLineOutput represents the output of updating a line.
type UpdateLineOutput struct {
	Line *entity.ServiceLine
}

// RemoveLineInput represents the input for removing a service line.
type RemoveLineInput struct {
	LineID      uuid.UUID
	HouseholdID uuid.UUID
}

// RemoveLineOutput represents the output of removing a line.
type RemoveLineOutput struct {
	Message string
}

// ManageLinesUseCase handles the line-level operations of a service.
type ManageLinesUseCase struct {
	serviceRepo adapter.ServiceRepository
}

// NewManageLinesUseCase creates a new ManageLinesUseCase instance.
func NewManageLinesUseCase(serviceRepo adapter.ServiceRepository) *ManageLinesUseCase {
	return &ManageLinesUseCase{
		serviceRepo: serviceRepo,
	}
}

// AddLine adds a line to an existing service. Once a service has lines, its
// own cycle configuration stops participating in analysis.
func (uc *ManageLinesUseCase) AddLine(ctx context.Context, input AddLineInput) (*AddLineOutput, error) {
	svc, err := uc.serviceRepo.FindByID(ctx, input.ServiceID)
	if err != nil || svc.HouseholdID != input.HouseholdID {
		return nil, domainerror.NewServiceError(
			domainerror.ErrCodeServiceNotFound,
			"service not found",
			domainerror.ErrServiceNotFound,
		)
	}

	if input.Name == "" {
		return nil, domainerror.NewServiceError(
			domainerror.ErrCodeMissingServiceFields,
			"line name is required",
			nil,
		)
	}
	if err := billing.ValidateCycleDay(input.BillingCycleDay); err != nil {
		return nil, err
	}
	if err := billing.ValidateCycleDay(input.BillingDueDay); err != nil {
		return nil, err
	}

	line := entity.NewServiceLine(svc.ID, svc.HouseholdID, input.Name, input.BillingCycleDay, input.BillingDueDay)

	if err := uc.serviceRepo.CreateLine(ctx, line); err != nil {
		return nil, fmt.Errorf("failed to create service line: %w", err)
	}

	return &AddLineOutput{Line: line}, nil
}

// UpdateLine updates an existing line.
func (uc *ManageLinesUseCase) UpdateLine(ctx context.Context, input UpdateLineInput) (*UpdateLineOutput, error) {
	line, err := uc.findLine(ctx, input.LineID, input.HouseholdID)
	if err != nil {
		return nil, err
	}

	if input.BillingCycleDay != nil {
		if err := billing.ValidateCycleDay(*input.BillingCycleDay); err != nil {
			return nil, err
		}
		line.BillingCycleDay = *input.BillingCycleDay
	}
	if input.BillingDueDay != nil {
		if err := billing.ValidateCycleDay(*input.BillingDueDay); err != nil {
			return nil, err
		}
		line.BillingDueDay = *input.BillingDueDay
	}
	if input.Name != nil {
		line.Name = *input.Name
	}
	if input.IsActive != nil {
		line.IsActive = *input.IsActive
	}

	if err := uc.serviceRepo.UpdateLine(ctx, line); err != nil {
		return nil, fmt.Errorf("failed to update service line: %w", err)
	}

	return &UpdateLineOutput{Line: line}, nil
}

// RemoveLine soft-deletes a line.
func (uc *ManageLinesUseCase) RemoveLine(ctx context.Context, input RemoveLineInput) (*RemoveLineOutput, error) {
	line, err := uc.findLine(ctx, input.LineID, input.HouseholdID)
	if err != nil {
		return nil, err
	}

	if err := uc.serviceRepo.DeleteLine(ctx, line.ID); err != nil {
		return nil, fmt.Errorf("failed to delete service line: %w", err)
	}

	return &RemoveLineOutput{Message: "Service line deleted successfully"}, nil
}

func (uc *ManageLinesUseCase) findLine(ctx context.Context, lineID, householdID uuid.UUID) (*entity.ServiceLine, error) {
	line, err := uc.serviceRepo.FindLineByID(ctx, lineID)
	if err != nil || line.HouseholdID != householdID {
		return nil, domainerror.NewServiceError(
			domainerror.ErrCodeServiceLineNotFound,
			"service line not found",
			domainerror.ErrServiceLineNotFound,
		)
	}
	return line, nil
}
