// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/payment-tracker/backend/internal/domain/entity"
)

// InstanceFilter defines filter options for listing payment instances.
type InstanceFilter struct {
	HouseholdID uuid.UUID
	Status      *entity.InstanceStatus
	StartDate   *time.Time // due date lower bound, inclusive
	EndDate     *time.Time // due date upper bound, inclusive
	CardID      *uuid.UUID
	ServiceID   *uuid.UUID
}

// PaymentInstanceRepository defines the interface for payment instance
// persistence operations.
type PaymentInstanceRepository interface {
	// Create creates a new payment instance in the database.
	Create(ctx context.Context, instance *entity.PaymentInstance) error

	// FindByID retrieves an instance with its partial payments by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PaymentInstance, error)

	// FindByFilter retrieves instances matching the filter, ordered by due
	// date ascending.
	FindByFilter(ctx context.Context, filter InstanceFilter) ([]*entity.PaymentInstance, error)

	// FindByHousehold retrieves all instances for a household.
	FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.PaymentInstance, error)

	// FindByTemplate retrieves all instances materialized from a template.
	FindByTemplate(ctx context.Context, scheduledPaymentID uuid.UUID) ([]*entity.PaymentInstance, error)

	// Update updates an existing instance and its partial payments.
	Update(ctx context.Context, instance *entity.PaymentInstance) error

	// Delete soft-deletes an instance.
	Delete(ctx context.Context, id uuid.UUID) error
}
