// Package card contains credit card management use cases.
package card

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/payment-tracker/backend/internal/application/adapter"
	domainerror "github.com/payment-tracker/backend/internal/domain/error"
)

// DeleteCardInput represents the input for card deletion.
type DeleteCardInput struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
}

// DeleteCardOutput represents the output of card deletion.
type DeleteCardOutput struct {
	Message string
}

// DeleteCardUseCase handles card deletion logic.
type DeleteCardUseCase struct {
	cardRepo adapter.CardRepository
}

// NewDeleteCardUseCase creates a new DeleteCardUseCase instance.
func NewDeleteCardUseCase(cardRepo adapter.CardRepository) *DeleteCardUseCase {
	return &DeleteCardUseCase{
		cardRepo: cardRepo,
	}
}

// Execute performs the card deletion. Instances already materialized against
// the card are kept; only the card itself is soft-deleted.
func (uc *DeleteCardUseCase) Execute(ctx context.Context, input DeleteCardInput) (*DeleteCardOutput, error) {
	card, err := uc.cardRepo.FindByID(ctx, input.ID)
	if err != nil || card.HouseholdID != input.HouseholdID {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeCardNotFound,
			"card not found",
			domainerror.ErrCardNotFound,
		)
	}

	if err := uc.cardRepo.Delete(ctx, card.ID); err != nil {
		return nil, fmt.Errorf("failed to delete card: %w", err)
	}

	return &DeleteCardOutput{Message: "Card deleted successfully"}, nil
}
