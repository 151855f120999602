// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/payment-tracker/backend/internal/domain/entity"
)

// CreateCardRequest represents the request body for card creation.
type CreateCardRequest struct {
	Name               string   `json:"name" binding:"required,min=1,max=100"`
	BankName           string   `json:"bank_name" binding:"required,min=1,max=100"`
	Owner              string   `json:"owner" binding:"required,min=1,max=100"`
	CardType           string   `json:"card_type" binding:"required,oneof=physical digital"`
	LastDigitsPhysical string   `json:"last_digits_physical"`
	LastDigitsDigital  string   `json:"last_digits_digital"`
	PhysicalCards      []string `json:"physical_cards"`
	ClosingDay         int      `json:"closing_day" binding:"required,min=1,max=31"`
	DueDay             int      `json:"due_day" binding:"required,min=1,max=31"`
	CreditLimit        float64  `json:"credit_limit" binding:"min=0"`
	AvailableCredit    float64  `json:"available_credit" binding:"min=0"`
}

// UpdateCardRequest represents the request body for card update. Omitted
// fields are left unchanged.
type UpdateCardRequest struct {
	Name               *string  `json:"name,omitempty"`
	BankName           *string  `json:"bank_name,omitempty"`
	Owner              *string  `json:"owner,omitempty"`
	CardType           *string  `json:"card_type,omitempty"`
	LastDigitsPhysical *string  `json:"last_digits_physical,omitempty"`
	LastDigitsDigital  *string  `json:"last_digits_digital,omitempty"`
	PhysicalCards      []string `json:"physical_cards,omitempty"`
	ClosingDay         *int     `json:"closing_day,omitempty"`
	DueDay             *int     `json:"due_day,omitempty"`
	CreditLimit        *float64 `json:"credit_limit,omitempty"`
}

// UpdateCreditRequest represents the request body for updating a card's
// available credit.
type UpdateCreditRequest struct {
	AvailableCredit *float64 `json:"availableCredit" binding:"required,min=0"`
}

// CardResponse represents the card data in API responses.
type CardResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	BankName           string    `json:"bank_name"`
	Owner              string    `json:"owner"`
	CardType           string    `json:"card_type"`
	LastDigitsPhysical string    `json:"last_digits_physical,omitempty"`
	LastDigitsDigital  string    `json:"last_digits_digital,omitempty"`
	PhysicalCards      []string  `json:"physical_cards,omitempty"`
	ClosingDay         int       `json:"closing_day"`
	DueDay             int       `json:"due_day"`
	CreditLimit        string    `json:"credit_limit"`
	AvailableCredit    string    `json:"available_credit"`
	CurrentBalance     string    `json:"current_balance"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CardListResponse represents the response for card listing.
type CardListResponse struct {
	Cards []CardResponse `json:"cards"`
}

// ExternalCardListResponse represents the response of the external card
// credit listing endpoint.
type ExternalCardListResponse struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Cards   []CardResponse `json:"cards"`
}

// ExternalCreditUpdateResponse represents the response of the external
// credit update endpoint.
type ExternalCreditUpdateResponse struct {
	Success bool                `json:"success"`
	Card    ExternalUpdatedCard `json:"card"`
}

// ExternalUpdatedCard is the card summary returned after a credit update.
type ExternalUpdatedCard struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	PreviousCredit string    `json:"previousCredit"`
	NewCredit      string    `json:"newCredit"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ToCardResponse converts a domain Card entity to a CardResponse DTO.
func ToCardResponse(card *entity.Card) CardResponse {
	return CardResponse{
		ID:                 card.ID.String(),
		Name:               card.Name,
		BankName:           card.BankName,
		Owner:              card.Owner,
		CardType:           string(card.CardType),
		LastDigitsPhysical: card.LastDigitsPhysical,
		LastDigitsDigital:  card.LastDigitsDigital,
		PhysicalCards:      card.PhysicalCards,
		ClosingDay:         card.ClosingDay,
		DueDay:             card.DueDay,
		CreditLimit:        card.CreditLimit.String(),
		AvailableCredit:    card.AvailableCredit.String(),
		CurrentBalance:     card.CurrentBalance.String(),
		CreatedAt:          card.CreatedAt,
		UpdatedAt:          card.UpdatedAt,
	}
}

// ToCardListResponse converts a list of cards to response DTOs.
func ToCardListResponse(cards []*entity.Card) []CardResponse {
	responses := make([]CardResponse, len(cards))
	for i, card := range cards {
		responses[i] = ToCardResponse(card)
	}
	return responses
}
