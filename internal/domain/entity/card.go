// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CardType distinguishes physical from digital credit cards.
type CardType string

const (
	CardTypePhysical CardType = "physical"
	CardTypeDigital  CardType = "digital"
)

// Card represents a credit line owned by a household. The billing cycle is
// driven by ClosingDay (statement closes) and DueDay (payment due); both are
// days of month in 1-31 and get clamped to short months when projected.
type Card struct {
	ID                 uuid.UUID
	HouseholdID        uuid.UUID
	Name               string
	BankName           string
	Owner              string
	CardType           CardType
	LastDigitsPhysical string
	LastDigitsDigital  string
	PhysicalCards      []string
	ClosingDay         int
	DueDay             int
	CreditLimit        decimal.Decimal
	AvailableCredit    decimal.Decimal
	CurrentBalance     decimal.Decimal // always CreditLimit - AvailableCredit
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

// NewCard creates a new Card entity with the balance derived from the limit
// and available credit.
func NewCard(
	householdID uuid.UUID,
	name, bankName, owner string,
	cardType CardType,
	closingDay, dueDay int,
	creditLimit, availableCredit decimal.Decimal,
) *Card {
	now := time.Now().UTC()

	return &Card{
		ID:              uuid.New(),
		HouseholdID:     householdID,
		Name:            name,
		BankName:        bankName,
		Owner:           owner,
		CardType:        cardType,
		ClosingDay:      closingDay,
		DueDay:          dueDay,
		CreditLimit:     creditLimit,
		AvailableCredit: availableCredit,
		CurrentBalance:  creditLimit.Sub(availableCredit),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// SetAvailableCredit updates the available credit and keeps CurrentBalance
// consistent with the CreditLimit - AvailableCredit invariant.
func (c *Card) SetAvailableCredit(available decimal.Decimal) {
	c.AvailableCredit = available
	c.CurrentBalance = c.CreditLimit.Sub(available)
	c.UpdatedAt = time.Now().UTC()
}

// AvailableCreditPercent returns how much of the credit limit is still
// available, as a percentage. Returns 100 when the limit is zero (a
// zero-limit card can never be "low on credit").
func (c *Card) AvailableCreditPercent() decimal.Decimal {
	if c.CreditLimit.IsZero() {
		return decimal.NewFromInt(100)
	}
	return c.AvailableCredit.Div(c.CreditLimit).Mul(decimal.NewFromInt(100))
}
