// Package service contains service management use cases.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/domain/entity"
)

// ListServicesInput represents the input for listing services.
type ListServicesInput struct {
	HouseholdID uuid.UUID
}

// ListServicesOutput represents the output of listing services.
type ListServicesOutput struct {
	Services []*entity.Service
}

// ListServicesUseCase handles service listing logic.
type ListServicesUseCase struct {
	serviceRepo adapter.ServiceRepository
}

// NewListServicesUseCase creates a new ListServicesUseCase instance.
func NewListServicesUseCase(serviceRepo adapter.ServiceRepository) *ListServicesUseCase {
	return &ListServicesUseCase{
		serviceRepo: serviceRepo,
	}
}

// Execute retrieves all services with their lines for the household.
func (uc *ListServicesUseCase) Execute(ctx context.Context, input ListServicesInput) (*ListServicesOutput, error) {
	services, err := uc.serviceRepo.FindByHousehold(ctx, input.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	return &ListServicesOutput{Services: services}, nil
}
