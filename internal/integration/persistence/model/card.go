// Package model defines database models for persistence layer.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/payment-tracker/backend/internal/domain/entity"
)

// CardModel represents the cards table in the database. PhysicalCards is a
// comma-joined list; sqlite (used in tests) has no native array type.
type CardModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	HouseholdID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name               string          `gorm:"type:varchar(100);not null"`
	BankName           string          `gorm:"type:varchar(100)"`
	Owner              string          `gorm:"type:varchar(100)"`
	CardType           string          `gorm:"type:varchar(20);not null;default:'physical'"`
	LastDigitsPhysical string          `gorm:"type:varchar(4)"`
	LastDigitsDigital  string          `gorm:"type:varchar(4)"`
	PhysicalCards      string          `gorm:"type:text"`
	ClosingDay         int             `gorm:"not null"`
	DueDay             int             `gorm:"not null"`
	CreditLimit        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	AvailableCredit    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CurrentBalance     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
	DeletedAt          gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for the CardModel.
func (CardModel) TableName() string {
	return "cards"
}

// ToEntity converts a CardModel to a domain Card entity.
func (m *CardModel) ToEntity() *entity.Card {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	var physicalCards []string
	if m.PhysicalCards != "" {
		physicalCards = strings.Split(m.PhysicalCards, ",")
	}

	return &entity.Card{
		ID:                 m.ID,
		HouseholdID:        m.HouseholdID,
		Name:               m.Name,
		BankName:           m.BankName,
		Owner:              m.Owner,
		CardType:           entity.CardType(m.CardType),
		LastDigitsPhysical: m.LastDigitsPhysical,
		LastDigitsDigital:  m.LastDigitsDigital,
		PhysicalCards:      physicalCards,
		ClosingDay:         m.ClosingDay,
		DueDay:             m.DueDay,
		CreditLimit:        m.CreditLimit,
		AvailableCredit:    m.AvailableCredit,
		CurrentBalance:     m.CurrentBalance,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		DeletedAt:          deletedAt,
	}
}

// CardFromEntity creates a CardModel from a domain Card entity.
func CardFromEntity(card *entity.Card) *CardModel {
	var deletedAt gorm.DeletedAt
	if card.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *card.DeletedAt, Valid: true}
	}

	return &CardModel{
		ID:                 card.ID,
		HouseholdID:        card.HouseholdID,
		Name:               card.Name,
		BankName:           card.BankName,
		Owner:              card.Owner,
		CardType:           string(card.CardType),
		LastDigitsPhysical: card.LastDigitsPhysical,
		LastDigitsDigital:  card.LastDigitsDigital,
		PhysicalCards:      strings.Join(card.PhysicalCards, ","),
		ClosingDay:         card.ClosingDay,
		DueDay:             card.DueDay,
		CreditLimit:        card.CreditLimit,
		AvailableCredit:    card.AvailableCredit,
		CurrentBalance:     card.CurrentBalance,
		CreatedAt:          card.CreatedAt,
		UpdatedAt:          card.UpdatedAt,
		DeletedAt:          deletedAt,
	}
}
