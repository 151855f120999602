// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/payment-tracker/backend/internal/domain/entity"
)

// CreateServiceRequest represents the request body for service creation.
type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required,min=1,max=100"`
	Type            string  `json:"type" binding:"required,oneof=fixed billing_cycle"`
	Amount          float64 `json:"amount" binding:"min=0"`
	PaymentMethod   string  `json:"payment_method" binding:"required,oneof=card transfer"`
	BillingCycleDay *int    `json:"billing_cycle_day,omitempty"`
	BillingDueDay   *int    `json:"billing_due_day,omitempty"`
}

// UpdateServiceRequest represents the request body for service update.
// Omitted fields are left unchanged.
type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	Amount          *float64 `json:"amount,omitempty"`
	PaymentMethod   *string  `json:"payment_method,omitempty"`
	BillingCycleDay *int     `json:"billing_cycle_day,omitempty"`
	BillingDueDay   *int     `json:"billing_due_day,omitempty"`
	IsActive        *bool    `json:"is_active,omitempty"`
}

// AddLineRequest represents the request body for adding a service line.
type AddLineRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=100"`
	BillingCycleDay int    `json:"billing_cycle_day" binding:"required,min=1,max=31"`
	BillingDueDay   int    `json:"billing_due_day" binding:"required,min=1,max=31"`
}

// UpdateLineRequest represents the request body for updating a service line.
// Omitted fields are left unchanged.
type UpdateLineRequest struct {
	Name            *string `json:"name,omitempty"`
	BillingCycleDay *int    `json:"billing_cycle_day,omitempty"`
	BillingDueDay   *int    `json:"billing_due_day,omitempty"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

// ServiceResponse represents the service data in API responses.
type ServiceResponse struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	Type            string                `json:"type"`
	Amount          string                `json:"amount"`
	PaymentMethod   string                `json:"payment_method"`
	BillingCycleDay *int                  `json:"billing_cycle_day,omitempty"`
	BillingDueDay   *int                  `json:"billing_due_day,omitempty"`
	IsActive        bool                  `json:"is_active"`
	Lines           []ServiceLineResponse `json:"lines"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ServiceLineResponse represents the service line data in API responses.
type ServiceLineResponse struct {
	ID              string    `json:"id"`
	ServiceID       string    `json:"service_id"`
	Name            string    `json:"name"`
	BillingCycleDay int       `json:"billing_cycle_day"`
	BillingDueDay   int       `json:"billing_due_day"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// ServiceListResponse represents the response for service listing.
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// ToServiceResponse converts a domain Service entity to a ServiceResponse DTO.
func ToServiceResponse(svc *entity.Service) ServiceResponse {
	lines := make([]ServiceLineResponse, len(svc.Lines))
	for i, line := range svc.Lines {
		lines[i] = ToServiceLineResponse(line)
	}

	return ServiceResponse{
		ID:              svc.ID.String(),
		Name:            svc.Name,
		Type:            string(svc.Type),
		Amount:          svc.Amount.String(),
		PaymentMethod:   string(svc.PaymentMethod),
		BillingCycleDay: svc.BillingCycleDay,
		BillingDueDay:   svc.BillingDueDay,
		IsActive:        svc.IsActive,
		Lines:           lines,
		CreatedAt:       svc.CreatedAt,
		UpdatedAt:       svc.UpdatedAt,
	}
}

// ToServiceLineResponse converts a domain ServiceLine entity to a DTO.
func ToServiceLineResponse(line *entity.ServiceLine) ServiceLineResponse {
	return ServiceLineResponse{
		ID:              line.ID.String(),
		ServiceID:       line.ServiceID.String(),
		Name:            line.Name,
		BillingCycleDay: line.BillingCycleDay,
		BillingDueDay:   line.BillingDueDay,
		IsActive:        line.IsActive,
		CreatedAt:       line.CreatedAt,
	}
}

// ToServiceListResponse converts a list of services to response DTOs.
func ToServiceListResponse(services []*entity.Service) []ServiceResponse {
	responses := make([]ServiceResponse, len(services))
	for i, svc := range services {
		responses[i] = ToServiceResponse(svc)
	}
	return responses
}
