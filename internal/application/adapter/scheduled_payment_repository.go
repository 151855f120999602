// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/payment-tracker/backend/internal/domain/entity"
)

// ScheduledPaymentRepository defines the interface for scheduled payment
// template persistence operations.
type ScheduledPaymentRepository interface {
	// Create creates a new scheduled payment template in the database.
	Create(ctx context.Context, payment *entity.ScheduledPayment) error

	// FindByID retrieves a template by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ScheduledPayment, error)

	// FindByHousehold retrieves all templates for a household.
	FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.ScheduledPayment, error)

	// FindActiveByHousehold retrieves only active templates for a household.
	FindActiveByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.ScheduledPayment, error)

	// Update updates an existing template in the database.
	Update(ctx context.Context, payment *entity.ScheduledPayment) error

	// Delete soft-deletes a template.
	Delete(ctx context.Context, id uuid.UUID) error
}
