// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/payment-tracker/backend/internal/domain/entity"
)

// CardRepository defines the interface for credit card persistence operations.
type CardRepository interface {
	// Create creates a new card in the database.
	Create(ctx context.Context, card *entity.Card) error

	// FindByID retrieves a card by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Card, error)

	// FindByHousehold retrieves all cards belonging to a household.
	FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.Card, error)

	// FindAll retrieves every card, sorted by bank name then card name. Used
	// by the external credit endpoint.
	FindAll(ctx context.Context) ([]*entity.Card, error)

	// Update updates an existing card in the database.
	Update(ctx context.Context, card *entity.Card) error

	// Delete soft-deletes a card.
	Delete(ctx context.Context, id uuid.UUID) error
}
