// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/payment-tracker/backend/internal/domain/entity"
)

// CreateInstanceRequest represents the request body for direct instance
// creation.
type CreateInstanceRequest struct {
	Description   string    `json:"description" binding:"required,min=1,max=255"`
	DueDate       time.Time `json:"due_date" binding:"required"`
	Amount        float64   `json:"amount" binding:"min=0"`
	PaymentType   string    `json:"payment_type" binding:"required,oneof=card_payment service_payment"`
	CardID        *string   `json:"card_id,omitempty"`
	ServiceID     *string   `json:"service_id,omitempty"`
	ServiceLineID *string   `json:"service_line_id,omitempty"`
}

// ListInstancesRequest represents the query parameters for instance listing.
type ListInstancesRequest struct {
	Status    string `form:"status"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	CardID    string `form:"card_id"`
	ServiceID string `form:"service_id"`
}

// RegisterPaymentRequest represents the request body for registering a
// payment against an instance. Omitting amount settles the instance in full.
type RegisterPaymentRequest struct {
	Amount   *float64   `json:"amount,omitempty"`
	PaidDate *time.Time `json:"paid_date,omitempty"`
	Notes    string     `json:"notes,omitempty"`
}

// PaymentInstanceResponse represents the instance data in API responses.
type PaymentInstanceResponse struct {
	ID                 string                   `json:"id"`
	Description        string                   `json:"description"`
	DueDate            time.Time                `json:"due_date"`
	Amount             string                   `json:"amount"`
	Status             string                   `json:"status"`
	PaidAmount         string                   `json:"paid_amount"`
	RemainingAmount    *string                  `json:"remaining_amount,omitempty"`
	PartialPayments    []PartialPaymentResponse `json:"partial_payments"`
	PaymentType        string                   `json:"payment_type"`
	CardID             *string                  `json:"card_id,omitempty"`
	ServiceID          *string                  `json:"service_id,omitempty"`
	ServiceLineID      *string                  `json:"service_line_id,omitempty"`
	ScheduledPaymentID *string                  `json:"scheduled_payment_id,omitempty"`
	PaidDate           *time.Time               `json:"paid_date,omitempty"`
	CreatedAt          time.Time                `json:"created_at"`
}

// PartialPaymentResponse represents one partial payment in API responses.
type PartialPaymentResponse struct {
	ID       string    `json:"id"`
	Amount   string    `json:"amount"`
	PaidDate time.Time `json:"paid_date"`
	Notes    string    `json:"notes,omitempty"`
}

// InstanceListResponse represents the response for instance listing.
type InstanceListResponse struct {
	Instances []PaymentInstanceResponse `json:"instances"`
}

// GenerateInstancesResponse represents the response of manual generation.
type GenerateInstancesResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// ToPaymentInstanceResponse converts a domain instance to a response DTO.
func ToPaymentInstanceResponse(pi *entity.PaymentInstance) PaymentInstanceResponse {
	var remaining *string
	if pi.RemainingAmount != nil {
		s := pi.RemainingAmount.String()
		remaining = &s
	}

	partials := make([]PartialPaymentResponse, len(pi.PartialPayments))
	for i, pp := range pi.PartialPayments {
		partials[i] = PartialPaymentResponse{
			ID:       pp.ID.String(),
			Amount:   pp.Amount.String(),
			PaidDate: pp.PaidDate,
			Notes:    pp.Notes,
		}
	}

	return PaymentInstanceResponse{
		ID:                 pi.ID.String(),
		Description:        pi.Description,
		DueDate:            pi.DueDate,
		Amount:             pi.Amount.String(),
		Status:             string(pi.Status),
		PaidAmount:         pi.PaidAmount.String(),
		RemainingAmount:    remaining,
		PartialPayments:    partials,
		PaymentType:        string(pi.PaymentType),
		CardID:             uuidToString(pi.CardID),
		ServiceID:          uuidToString(pi.ServiceID),
		ServiceLineID:      uuidToString(pi.ServiceLineID),
		ScheduledPaymentID: uuidToString(pi.ScheduledPaymentID),
		PaidDate:           pi.PaidDate,
		CreatedAt:          pi.CreatedAt,
	}
}

// ToInstanceListResponse converts a list of instances to response DTOs.
func ToInstanceListResponse(instances []*entity.PaymentInstance) []PaymentInstanceResponse {
	responses := make([]PaymentInstanceResponse, len(instances))
	for i, pi := range instances {
		responses[i] = ToPaymentInstanceResponse(pi)
	}
	return responses
}

// uuidToString converts an optional UUID to an optional string.
func uuidToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
