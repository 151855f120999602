// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/payment-tracker/backend/internal/domain/entity"
)

// ServiceRepository defines the interface for service persistence operations.
// Services are loaded with their lines attached.
type ServiceRepository interface {
	// Create creates a new service and its lines in the database.
	Create(ctx context.Context, service *entity.Service) error

	// FindByID retrieves a service with its lines by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)

	// FindByHousehold retrieves all services with lines for a household.
	FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.Service, error)

	// Update updates an existing service in the database.
	Update(ctx context.Context, service *entity.Service) error

	// Delete soft-deletes a service and its lines.
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateLine adds a line to an existing service.
	CreateLine(ctx context.Context, line *entity.ServiceLine) error

	// FindLineByID retrieves a single service line by its ID.
	FindLineByID(ctx context.Context, id uuid.UUID) (*entity.ServiceLine, error)

	// UpdateLine updates an existing service line.
	UpdateLine(ctx context.Context, line *entity.ServiceLine) error

	// DeleteLine soft-deletes a service line.
	DeleteLine(ctx context.Context, id uuid.UUID) error
}
