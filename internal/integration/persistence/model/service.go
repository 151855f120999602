// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/payment-tracker/backend/internal/domain/entity"
)

// ServiceModel represents the services table in the database.
type ServiceModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	HouseholdID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name            string          `gorm:"type:varchar(100);not null"`
	Type            string          `gorm:"type:varchar(20);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	PaymentMethod   string          `gorm:"type:varchar(20);not null"`
	BillingCycleDay *int            `gorm:"type:integer"`
	BillingDueDay   *int            `gorm:"type:integer"`
	IsActive        bool            `gorm:"default:true"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
	DeletedAt       gorm.DeletedAt  `gorm:"index"`

	// Loaded with Preload("Lines")
	Lines []ServiceLineModel `gorm:"foreignKey:ServiceID;references:ID"`
}

// TableName returns the table name for the ServiceModel.
func (ServiceModel) TableName() string {
	return "services"
}

// ServiceLineModel represents the service_lines table in the database.
type ServiceLineModel struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ServiceID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	HouseholdID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name            string         `gorm:"type:varchar(100);not null"`
	BillingCycleDay int            `gorm:"not null"`
	BillingDueDay   int            `gorm:"not null"`
	IsActive        bool           `gorm:"default:true"`
	CreatedAt       time.Time      `gorm:"not null"`
	UpdatedAt       time.Time      `gorm:"not null"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for the ServiceLineModel.
func (ServiceLineModel) TableName() string {
	return "service_lines"
}

// ToEntity converts a ServiceModel and its preloaded lines to a domain
// Service entity.
func (m *ServiceModel) ToEntity() *entity.Service {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	lines := make([]*entity.ServiceLine, 0, len(m.Lines))
	for i := range m.Lines {
		lines = append(lines, m.Lines[i].ToEntity())
	}

	return &entity.Service{
		ID:              m.ID,
		HouseholdID:     m.HouseholdID,
		Name:            m.Name,
		Type:            entity.ServiceType(m.Type),
		Amount:          m.Amount,
		PaymentMethod:   entity.PaymentMethod(m.PaymentMethod),
		BillingCycleDay: m.BillingCycleDay,
		BillingDueDay:   m.BillingDueDay,
		IsActive:        m.IsActive,
		Lines:           lines,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		DeletedAt:       deletedAt,
	}
}

// ToEntity converts a ServiceLineModel to a domain ServiceLine entity.
func (m *ServiceLineModel) ToEntity() *entity.ServiceLine {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.ServiceLine{
		ID:              m.ID,
		ServiceID:       m.ServiceID,
		HouseholdID:     m.HouseholdID,
		Name:            m.Name,
		BillingCycleDay: m.BillingCycleDay,
		BillingDueDay:   m.BillingDueDay,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		DeletedAt:       deletedAt,
	}
}

// ServiceFromEntity creates a ServiceModel from a domain Service entity. The
// lines are converted too so a Create can persist them in one call.
func ServiceFromEntity(service *entity.Service) *ServiceModel {
	var deletedAt gorm.DeletedAt
	if service.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *service.DeletedAt, Valid: true}
	}

	lines := make([]ServiceLineModel, 0, len(service.Lines))
	for _, line := range service.Lines {
		lines = append(lines, *ServiceLineFromEntity(line))
	}

	return &ServiceModel{
		ID:              service.ID,
		HouseholdID:     service.HouseholdID,
		Name:            service.Name,
		Type:            string(service.Type),
		Amount:          service.Amount,
		PaymentMethod:   string(service.PaymentMethod),
		BillingCycleDay: service.BillingCycleDay,
		BillingDueDay:   service.BillingDueDay,
		IsActive:        service.IsActive,
		Lines:           lines,
		CreatedAt:       service.CreatedAt,
		UpdatedAt:       service.UpdatedAt,
		DeletedAt:       deletedAt,
	}
}

// ServiceLineFromEntity creates a ServiceLineModel from a domain ServiceLine entity.
func ServiceLineFromEntity(line *entity.ServiceLine) *ServiceLineModel {
	var deletedAt gorm.DeletedAt
	if line.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *line.DeletedAt, Valid: true}
	}

	return &ServiceLineModel{
		ID:              line.ID,
		ServiceID:       line.ServiceID,
		HouseholdID:     line.HouseholdID,
		Name:            line.Name,
		BillingCycleDay: line.BillingCycleDay,
		BillingDueDay:   line.BillingDueDay,
		IsActive:        line.IsActive,
		CreatedAt:       line.CreatedAt,
		UpdatedAt:       line.UpdatedAt,
		DeletedAt:       deletedAt,
	}
}
