// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/payment-tracker/backend/internal/domain/entity"
)

// PaymentInstanceModel represents the payment_instances table in the database.
type PaymentInstanceModel struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey"`
	HouseholdID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	Description        string           `gorm:"type:varchar(255)"`
	DueDate            time.Time        `gorm:"not null;index"`
	Amount             decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	Status             string           `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaidAmount         decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0"`
	RemainingAmount    *decimal.Decimal `gorm:"type:decimal(15,2)"`
	PaymentType        string           `gorm:"type:varchar(20);not null"`
	CardID             *uuid.UUID       `gorm:"type:uuid;index"`
	ServiceID          *uuid.UUID       `gorm:"type:uuid;index"`
	ServiceLineID      *uuid.UUID       `gorm:"type:uuid;index"`
	ScheduledPaymentID *uuid.UUID       `gorm:"type:uuid;index"`
	PaidDate           *time.Time       `gorm:"type:timestamp"`
	CreatedAt          time.Time        `gorm:"not null"`
	UpdatedAt          time.Time        `gorm:"not null"`
	DeletedAt          gorm.DeletedAt   `gorm:"index"`

	// Loaded with Preload("PartialPayments")
	PartialPayments []PartialPaymentModel `gorm:"foreignKey:PaymentInstanceID;references:ID"`
}

// TableName returns the table name for the PaymentInstanceModel.
func (PaymentInstanceModel) TableName() string {
	return "payment_instances"
}

// PartialPaymentModel represents the partial_payments table in the database.
type PartialPaymentModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PaymentInstanceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaidDate          time.Time       `gorm:"not null"`
	Notes             string          `gorm:"type:text"`
	CreatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the PartialPaymentModel.
func (PartialPaymentModel) TableName() string {
	return "partial_payments"
}

// ToEntity converts a PaymentInstanceModel and its partial payments to a
// domain PaymentInstance entity.
func (m *PaymentInstanceModel) ToEntity() *entity.PaymentInstance {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	partials := make([]entity.PartialPayment, 0, len(m.PartialPayments))
	for _, pp := range m.PartialPayments {
		partials = append(partials, entity.PartialPayment{
			ID:       pp.ID,
			Amount:   pp.Amount,
			PaidDate: pp.PaidDate,
			Notes:    pp.Notes,
		})
	}

	return &entity.PaymentInstance{
		ID:                 m.ID,
		HouseholdID:        m.HouseholdID,
		Description:        m.Description,
		DueDate:            m.DueDate,
		Amount:             m.Amount,
		Status:             entity.InstanceStatus(m.Status),
		PaidAmount:         m.PaidAmount,
		RemainingAmount:    m.RemainingAmount,
		PartialPayments:    partials,
		PaymentType:        entity.PaymentType(m.PaymentType),
		CardID:             m.CardID,
		ServiceID:          m.ServiceID,
		ServiceLineID:      m.ServiceLineID,
		ScheduledPaymentID: m.ScheduledPaymentID,
		PaidDate:           m.PaidDate,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		DeletedAt:          deletedAt,
	}
}

// PaymentInstanceFromEntity creates a PaymentInstanceModel from a domain entity.
func PaymentInstanceFromEntity(pi *entity.PaymentInstance) *PaymentInstanceModel {
	var deletedAt gorm.DeletedAt
	if pi.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *pi.DeletedAt, Valid: true}
	}

	partials := make([]PartialPaymentModel, 0, len(pi.PartialPayments))
	for _, pp := range pi.PartialPayments {
		partials = append(partials, PartialPaymentModel{
			ID:                pp.ID,
			PaymentInstanceID: pi.ID,
			Amount:            pp.Amount,
			PaidDate:          pp.PaidDate,
			Notes:             pp.Notes,
		})
	}

	return &PaymentInstanceModel{
		ID:                 pi.ID,
		HouseholdID:        pi.HouseholdID,
		Description:        pi.Description,
		DueDate:            pi.DueDate,
		Amount:             pi.Amount,
		Status:             string(pi.Status),
		PaidAmount:         pi.PaidAmount,
		RemainingAmount:    pi.RemainingAmount,
		PaymentType:        string(pi.PaymentType),
		CardID:             pi.CardID,
		ServiceID:          pi.ServiceID,
		ServiceLineID:      pi.ServiceLineID,
		ScheduledPaymentID: pi.ScheduledPaymentID,
		PaidDate:           pi.PaidDate,
		PartialPayments:    partials,
		CreatedAt:          pi.CreatedAt,
		UpdatedAt:          pi.UpdatedAt,
		DeletedAt:          deletedAt,
	}
}
