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

// CreateCardInput represents the input for card creation.
type CreateCardInput struct {
	HouseholdID        uuid.UUID
	Name               string
	BankName           string
	Owner              string
	CardType           entity.CardType
	LastDigitsPhysical string
	LastDigitsDigital  string
	PhysicalCards      []string
	ClosingDay         int
	DueDay             int
	CreditLimit        decimal.Decimal
	AvailableCredit    decimal.Decimal
}

// CreateCardOutput represents the output of card creation.
type CreateCardOutput struct {
	Card *entity.Card
}

// CreateCardUseCase handles card creation logic.
type CreateCardUseCase struct {
	cardRepo adapter.CardRepository
}

// NewCreateCardUseCase creates a new CreateCardUseCase instance.
func NewCreateCardUseCase(cardRepo adapter.CardRepository) *CreateCardUseCase {
	return &CreateCardUseCase{
		cardRepo: cardRepo,
	}
}

// Execute performs the card creation.
func (uc *CreateCardUseCase) Execute(ctx context.Context, input CreateCardInput) (*CreateCardOutput, error) {
	if input.Name == "" {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeMissingCardFields,
			"card name is required",
			nil,
		)
	}

	if err := billing.ValidateCycleDay(input.ClosingDay); err != nil {
		return nil, err
	}
	if err := billing.ValidateCycleDay(input.DueDay); err != nil {
		return nil, err
	}

	if input.CreditLimit.IsNegative() {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvalidCreditLimit,
			"credit limit must not be negative",
			domainerror.ErrInvalidCreditLimit,
		)
	}
	if input.AvailableCredit.IsNegative() {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvalidAvailableCredit,
			"available credit must not be negative",
			domainerror.ErrInvalidAvailableCredit,
		)
	}

	card := entity.NewCard(
		input.HouseholdID,
		input.Name,
		input.BankName,
		input.Owner,
		input.CardType,
		input.ClosingDay,
		input.DueDay,
		input.CreditLimit,
		input.AvailableCredit,
	)
	card.LastDigitsPhysical = input.LastDigitsPhysical
	card.LastDigitsDigital = input.LastDigitsDigital
	card.PhysicalCards = input.PhysicalCards

	if err := uc.cardRepo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	return &CreateCardOutput{Card: card}, nil
}
