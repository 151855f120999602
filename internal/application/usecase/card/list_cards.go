// Package card contains credit card management use cases.
package card

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/domain/entity"
)

// ListCardsInput represents the input for listing cards.
type ListCardsInput struct {
	HouseholdID uuid.UUID
}

// ListCardsOutput represents the output of listing cards.
type ListCardsOutput struct {
	Cards []*entity.Card
}

// ListCardsUseCase handles card listing logic.
type ListCardsUseCase struct {
	cardRepo adapter.CardRepository
}

// NewListCardsUseCase creates a new ListCardsUseCase instance.
func NewListCardsUseCase(cardRepo adapter.CardRepository) *ListCardsUseCase {
	return &ListCardsUseCase{
		cardRepo: cardRepo,
	}
}

// Execute retrieves all cards belonging to the household.
func (uc *ListCardsUseCase) Execute(ctx context.Context, input ListCardsInput) (*ListCardsOutput, error) {
	cards, err := uc.cardRepo.FindByHousehold(ctx, input.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	return &ListCardsOutput{Cards: cards}, nil
}

// ExecuteAll retrieves every card in the system, sorted by bank then name.
// Used by the external integration, which is not household-scoped.
func (uc *ListCardsUseCase) ExecuteAll(ctx context.Context) (*ListCardsOutput, error) {
	cards, err := uc.cardRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	return &ListCardsOutput{Cards: cards}, nil
}
