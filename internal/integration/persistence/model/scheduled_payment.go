// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/payment-tracker/backend/internal/domain/entity"
)

// ScheduledPaymentModel represents the scheduled_payments table in the database.
type ScheduledPaymentModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	HouseholdID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description   string          `gorm:"type:varchar(255)"`
	PaymentType   string          `gorm:"type:varchar(20);not null"`
	Frequency     string          `gorm:"type:varchar(20);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	IsActive      bool            `gorm:"default:true"`
	PaymentDate   *time.Time      `gorm:"type:date"`
	DueDay        *int            `gorm:"type:integer"`
	DayOfWeek     *int            `gorm:"type:integer"`
	CardID        *uuid.UUID      `gorm:"type:uuid;index"`
	ServiceID     *uuid.UUID      `gorm:"type:uuid;index"`
	ServiceLineID *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
	DeletedAt     gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for the ScheduledPaymentModel.
func (ScheduledPaymentModel) TableName() string {
	return "scheduled_payments"
}

// ToEntity converts a ScheduledPaymentModel to a domain ScheduledPayment entity.
func (m *ScheduledPaymentModel) ToEntity() *entity.ScheduledPayment {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	var dayOfWeek *time.Weekday
	if m.DayOfWeek != nil {
		d := time.Weekday(*m.DayOfWeek)
		dayOfWeek = &d
	}

	return &entity.ScheduledPayment{
		ID:            m.ID,
		HouseholdID:   m.HouseholdID,
		Description:   m.Description,
		PaymentType:   entity.PaymentType(m.PaymentType),
		Frequency:     entity.Frequency(m.Frequency),
		Amount:        m.Amount,
		IsActive:      m.IsActive,
		PaymentDate:   m.PaymentDate,
		DueDay:        m.DueDay,
		DayOfWeek:     dayOfWeek,
		CardID:        m.CardID,
		ServiceID:     m.ServiceID,
		ServiceLineID: m.ServiceLineID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		DeletedAt:     deletedAt,
	}
}

// ScheduledPaymentFromEntity creates a ScheduledPaymentModel from a domain entity.
func ScheduledPaymentFromEntity(sp *entity.ScheduledPayment) *ScheduledPaymentModel {
	var deletedAt gorm.DeletedAt
	if sp.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *sp.DeletedAt, Valid: true}
	}

	var dayOfWeek *int
	if sp.DayOfWeek != nil {
		d := int(*sp.DayOfWeek)
		dayOfWeek = &d
	}

	return &ScheduledPaymentModel{
		ID:            sp.ID,
		HouseholdID:   sp.HouseholdID,
		Description:   sp.Description,
		PaymentType:   string(sp.PaymentType),
		Frequency:     string(sp.Frequency),
		Amount:        sp.Amount,
		IsActive:      sp.IsActive,
		PaymentDate:   sp.PaymentDate,
		DueDay:        sp.DueDay,
		DayOfWeek:     dayOfWeek,
		CardID:        sp.CardID,
		ServiceID:     sp.ServiceID,
		ServiceLineID: sp.ServiceLineID,
		CreatedAt:     sp.CreatedAt,
		UpdatedAt:     sp.UpdatedAt,
		DeletedAt:     deletedAt,
	}
}
