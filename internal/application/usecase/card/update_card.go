// Package card contains credit card management use cases.
package card

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/application/usecase/billing"
	"github.com/payment-tracker/backend/internal/domain/entity"
	domainerror "github.com/payment-tracker/backend/internal/domain/error"
)

// UpdateCardInput represents the input for card update. Nil pointers leave
// the corresponding field unchanged.
type UpdateCardInput struct {
	ID                 uuid.UUID
	HouseholdID        uuid.UUID
	Name               *string
	BankName           *string
	Owner              *string
	CardType           *entity.CardType
	LastDigitsPhysical *string
	LastDigitsDigital  *string
	PhysicalCards      []string
	ClosingDay         *int
	DueDay             *int
	CreditLimit        *decimal.Decimal
}

// UpdateCardOutput represents the output of card update.
type UpdateCardOutput struct {
	Card *entity.Card
}

// UpdateCardUseCase handles card update logic.
type UpdateCardUseCase struct {
	cardRepo adapter.CardRepository
}

// NewUpdateCardUseCase creates a new UpdateCardUseCase instance.
func NewUpdateCardUseCase(cardRepo adapter.CardRepository) *UpdateCardUseCase {
	return &UpdateCardUseCase{
		cardRepo: cardRepo,
	}
}

// Execute performs the card update.
func (uc *UpdateCardUseCase) Execute(ctx context.Context, input UpdateCardInput) (*UpdateCardOutput, error) {
	card, err := uc.cardRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeCardNotFound,
			"card not found",
			domainerror.ErrCardNotFound,
		)
	}
	// Household scoping hides other households' cards entirely
	if card.HouseholdID != input.HouseholdID {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeCardNotFound,
			"card not found",
			domainerror.ErrCardNotFound,
		)
	}

	if input.ClosingDay != nil {
		if err := billing.ValidateCycleDay(*input.ClosingDay); err != nil {
			return nil, err
		}
		card.ClosingDay = *input.ClosingDay
	}
	if input.DueDay != nil {
		if err := billing.ValidateCycleDay(*input.DueDay); err != nil {
			return nil, err
		}
		card.DueDay = *input.DueDay
	}
	if input.CreditLimit != nil {
		if input.CreditLimit.IsNegative() {
			return nil, domainerror.NewCardError(
				domainerror.ErrCodeInvalidCreditLimit,
				"credit limit must not be negative",
				domainerror.ErrInvalidCreditLimit,
			)
		}
		card.CreditLimit = *input.CreditLimit
		card.CurrentBalance = card.CreditLimit.Sub(card.AvailableCredit)
	}
	if input.Name != nil {
		card.Name = *input.Name
	}
	if input.BankName != nil {
		card.BankName = *input.BankName
	}
	if input.Owner != nil {
		card.Owner = *input.Owner
	}
	if input.CardType != nil {
		card.CardType = *input.CardType
	}
	if input.LastDigitsPhysical != nil {
		card.LastDigitsPhysical = *input.LastDigitsPhysical
	}
	if input.LastDigitsDigital != nil {
		card.LastDigitsDigital = *input.LastDigitsDigital
	}
	if input.PhysicalCards != nil {
		card.PhysicalCards = input.PhysicalCards
	}

	if err := uc.cardRepo.Update(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	return &UpdateCardOutput{Card: card}, nil
}
