// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/payment-tracker/backend/internal/domain/entity"
)

// CreateScheduledPaymentRequest represents the request body for template
// creation. The recurrence fields required depend on the frequency: monthly
// needs due_day, weekly needs day_of_week, once needs payment_date.
type CreateScheduledPaymentRequest struct {
	Description   string     `json:"description" binding:"required,min=1,max=255"`
	PaymentType   string     `json:"payment_type" binding:"required,oneof=card_payment service_payment"`
	Frequency     string     `json:"frequency" binding:"required,oneof=monthly weekly once billing_cycle"`
	Amount        float64    `json:"amount" binding:"min=0"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	DueDay        *int       `json:"due_day,omitempty"`
	DayOfWeek     *int       `json:"day_of_week,omitempty"`
	CardID        *string    `json:"card_id,omitempty"`
	ServiceID     *string    `json:"service_id,omitempty"`
	ServiceLineID *string    `json:"service_line_id,omitempty"`
}

// UpdateScheduledPaymentRequest represents the request body for template
// update. Omitted fields are left unchanged; payment_date supports explicit
// null to clear a previously set date.
type UpdateScheduledPaymentRequest struct {
	Description *string    `json:"description,omitempty"`
	Amount      *float64   `json:"amount,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
	ClearDate   bool       `json:"clear_payment_date,omitempty"`
	DueDay      *int       `json:"due_day,omitempty"`
	DayOfWeek   *int       `json:"day_of_week,omitempty"`
}

// ScheduledPaymentResponse represents the template data in API responses.
type ScheduledPaymentResponse struct {
	ID            string     `json:"id"`
	Description   string     `json:"description"`
	PaymentType   string     `json:"payment_type"`
	Frequency     string     `json:"frequency"`
	Amount        string     `json:"amount"`
	IsActive      bool       `json:"is_active"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	DueDay        *int       `json:"due_day,omitempty"`
	DayOfWeek     *int       `json:"day_of_week,omitempty"`
	CardID        *string    `json:"card_id,omitempty"`
	ServiceID     *string    `json:"service_id,omitempty"`
	ServiceLineID *string    `json:"service_line_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ScheduledPaymentListResponse represents the response for template listing.
type ScheduledPaymentListResponse struct {
	ScheduledPayments []ScheduledPaymentResponse `json:"scheduled_payments"`
}

// ToScheduledPaymentResponse converts a domain template to a response DTO.
func ToScheduledPaymentResponse(sp *entity.ScheduledPayment) ScheduledPaymentResponse {
	var dayOfWeek *int
	if sp.DayOfWeek != nil {
		d := int(*sp.DayOfWeek)
		dayOfWeek = &d
	}

	return ScheduledPaymentResponse{
		ID:            sp.ID.String(),
		Description:   sp.Description,
		PaymentType:   string(sp.PaymentType),
		Frequency:     string(sp.Frequency),
		Amount:        sp.Amount.String(),
		IsActive:      sp.IsActive,
		PaymentDate:   sp.PaymentDate,
		DueDay:        sp.DueDay,
		DayOfWeek:     dayOfWeek,
		CardID:        uuidToString(sp.CardID),
		ServiceID:     uuidToString(sp.ServiceID),
		ServiceLineID: uuidToString(sp.ServiceLineID),
		CreatedAt:     sp.CreatedAt,
		UpdatedAt:     sp.UpdatedAt,
	}
}

// ToScheduledPaymentListResponse converts a list of templates to DTOs.
func ToScheduledPaymentListResponse(payments []*entity.ScheduledPayment) []ScheduledPaymentResponse {
	responses := make([]ScheduledPaymentResponse, len(payments))
	for i, sp := range payments {
		responses[i] = ToScheduledPaymentResponse(sp)
	}
	return responses
}
