package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentType represents what kind of obligation a payment settles.
type PaymentType string

const (
	PaymentTypeCard    PaymentType = "card_payment"
	PaymentTypeService PaymentType = "service_payment"
)

// Frequency represents the recurrence rule of a scheduled payment.
type Frequency string

const (
	FrequencyMonthly      Frequency = "monthly"
	FrequencyWeekly       Frequency = "weekly"
	FrequencyOnce         Frequency = "once"
	FrequencyBillingCycle Frequency = "billing_cycle"
)

// ScheduledPayment is a recurring-payment template, not itself a dated
// obligation. Concrete PaymentInstances are materialized from it.
//
// PaymentDate is a concrete one-off date, used for card payments and for
// billing-cycle services once the user knows the due date. DueDay/DayOfWeek
// are the recurrence rule for monthly/weekly frequencies.
type ScheduledPayment struct {
	ID            uuid.UUID
	HouseholdID   uuid.UUID
	Description   string
	PaymentType   PaymentType
	Frequency     Frequency
	Amount        decimal.Decimal
	IsActive      bool
	PaymentDate   *time.Time
	DueDay        *int
	DayOfWeek     *time.Weekday
	CardID        *uuid.UUID
	ServiceID     *uuid.UUID
	ServiceLineID *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// NewScheduledPayment creates a new ScheduledPayment template.
func NewScheduledPayment(
	householdID uuid.UUID,
	description string,
	paymentType PaymentType,
	frequency Frequency,
	amount decimal.Decimal,
) *ScheduledPayment {
	now := time.Now().UTC()

	return &ScheduledPayment{
		ID:          uuid.New(),
		HouseholdID: householdID,
		Description: description,
		PaymentType: paymentType,
		Frequency:   frequency,
		Amount:      amount,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// OwnerID returns the foreign key this template is scoped to, preferring the
// most specific one (line over service over card).
func (sp *ScheduledPayment) OwnerID() *uuid.UUID {
	if sp.ServiceLineID != nil {
		return sp.ServiceLineID
	}
	if sp.ServiceID != nil {
		return sp.ServiceID
	}
	return sp.CardID
}
