// Package card contains credit card management use cases.
package card

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/domain/entity"
	domainerror "github.com/payment-tracker/backend/internal/domain/error"
)

// UpdateCreditInput represents the input for updating a card's available
// credit. HouseholdID is nil when the caller is the external integration,
// which is scoped by its bearer token instead.
type UpdateCreditInput struct {
	ID              uuid.UUID
	HouseholdID     *uuid.UUID
	AvailableCredit decimal.Decimal
}

// UpdateCreditOutput represents the output of a credit update.
type UpdateCreditOutput struct {
	Card           *entity.Card
	PreviousCredit decimal.Decimal
	NewCredit      decimal.Decimal
}

// UpdateCreditUseCase handles available-credit updates. The card's current
// balance is recomputed from the limit on every update.
type UpdateCreditUseCase struct {
	cardRepo adapter.CardRepository
}

// NewUpdateCreditUseCase creates a new UpdateCreditUseCase instance.
func NewUpdateCreditUseCase(cardRepo adapter.CardRepository) *UpdateCreditUseCase {
	return &UpdateCreditUseCase{
		cardRepo: cardRepo,
	}
}

// Execute performs the credit update.
func (uc *UpdateCreditUseCase) Execute(ctx context.Context, input UpdateCreditInput) (*UpdateCreditOutput, error) {
	if input.AvailableCredit.IsNegative() {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvalidAvailableCredit,
			"available credit must not be negative",
			domainerror.ErrInvalidAvailableCredit,
		)
	}

	card, err := uc.cardRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeCardNotFound,
			"card not found",
			domainerror.ErrCardNotFound,
		)
	}
	if input.HouseholdID != nil && card.HouseholdID != *input.HouseholdID {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeCardNotFound,
			"card not found",
			domainerror.ErrCardNotFound,
		)
	}

	previous := card.AvailableCredit
	card.SetAvailableCredit(input.AvailableCredit)

	if err := uc.cardRepo.Update(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to update card credit: %w", err)
	}

	return &UpdateCreditOutput{
		Card:           card,
		PreviousCredit: previous,
		NewCredit:      card.AvailableCredit,
	}, nil
}
