// Package payment contains payment instance use cases.
package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/domain/entity"
)

// ListInstancesInput represents the input for listing instances.
type ListInstancesInput struct {
	HouseholdID uuid.UUID
	Status      *entity.InstanceStatus
	StartDate   *time.Time
	EndDate     *time.Time
	CardID      *uuid.UUID
	ServiceID   *uuid.UUID
}

// ListInstancesOutput represents the output of listing instances.
type ListInstancesOutput struct {
	Instances []*entity.PaymentInstance
}

// ListInstancesUseCase handles instance listing logic.
type ListInstancesUseCase struct {
	instanceRepo adapter.PaymentInstanceRepository
}

// NewListInstancesUseCase creates a new ListInstancesUseCase instance.
func NewListInstancesUseCase(instanceRepo adapter.PaymentInstanceRepository) *ListInstancesUseCase {
	return &ListInstancesUseCase{
		instanceRepo: instanceRepo,
	}
}

// Execute retrieves instances matching the filter, ordered by due date.
func (uc *ListInstancesUseCase) Execute(ctx context.Context, input ListInstancesInput) (*ListInstancesOutput, error) {
	instances, err := uc.instanceRepo.FindByFilter(ctx, adapter.InstanceFilter{
		HouseholdID: input.HouseholdID,
		Status:      input.Status,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CardID:      input.CardID,
		ServiceID:   input.ServiceID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list payment instances: %w", err)
	}

	return &ListInstancesOutput{Instances: instances}, nil
}
