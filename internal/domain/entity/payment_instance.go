package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InstanceStatus represents the lifecycle state of a payment instance.
type InstanceStatus string

const (
	InstanceStatusPending   InstanceStatus = "pending"
	InstanceStatusPaid      InstanceStatus = "paid"
	InstanceStatusPartial   InstanceStatus = "partial"
	InstanceStatusCancelled InstanceStatus = "cancelled"
	InstanceStatusOverdue   InstanceStatus = "overdue"
)

// PartialPayment is one payment applied against an instance.
type PartialPayment struct {
	ID       uuid.UUID
	Amount   decimal.Decimal
	PaidDate time.Time
	Notes    string
}

// PaymentInstance is a concrete, dated obligation, materialized from a
// ScheduledPayment template or created directly.
//
// Invariant: when Status is partial, RemainingAmount equals Amount minus the
// sum of partial payments; the instance transitions to paid the moment the
// remaining amount reaches zero.
type PaymentInstance struct {
	ID                 uuid.UUID
	HouseholdID        uuid.UUID
	Description        string
	DueDate            time.Time
	Amount             decimal.Decimal
	Status             InstanceStatus
	PaidAmount         decimal.Decimal
	RemainingAmount    *decimal.Decimal // set while Status is partial
	PartialPayments    []PartialPayment // ordered by application time
	PaymentType        PaymentType
	CardID             *uuid.UUID
	ServiceID          *uuid.UUID
	ServiceLineID      *uuid.UUID
	ScheduledPaymentID *uuid.UUID
	PaidDate           *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

// NewPaymentInstance creates a pending PaymentInstance.
func NewPaymentInstance(
	householdID uuid.UUID,
	description string,
	dueDate time.Time,
	amount decimal.Decimal,
	paymentType PaymentType,
) *PaymentInstance {
	now := time.Now().UTC()

	return &PaymentInstance{
		ID:          uuid.New(),
		HouseholdID: householdID,
		Description: description,
		DueDate:     dueDate,
		Amount:      amount,
		Status:      InstanceStatusPending,
		PaidAmount:  decimal.Zero,
		PaymentType: paymentType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AmountToPay returns what is still owed on this instance: the remaining
// amount while partially paid, the full amount otherwise. Every aggregation
// in the system goes through this single rule.
func (pi *PaymentInstance) AmountToPay() decimal.Decimal {
	if pi.Status == InstanceStatusPartial && pi.RemainingAmount != nil {
		return *pi.RemainingAmount
	}
	return pi.Amount
}

// IsOpen reports whether the instance still needs money: pending or partial.
func (pi *PaymentInstance) IsOpen() bool {
	return pi.Status == InstanceStatusPending || pi.Status == InstanceStatusPartial
}

// ApplyPartialPayment records one payment against the instance and keeps the
// partial/paid invariant: remaining = amount - sum(partials), and the status
// flips to paid once remaining reaches zero. Amount validation happens in the
// use case before this is called.
func (pi *PaymentInstance) ApplyPartialPayment(amount decimal.Decimal, paidDate time.Time, notes string) {
	pi.PartialPayments = append(pi.PartialPayments, PartialPayment{
		ID:       uuid.New(),
		Amount:   amount,
		PaidDate: paidDate,
		Notes:    notes,
	})

	paid := decimal.Zero
	for _, pp := range pi.PartialPayments {
		paid = paid.Add(pp.Amount)
	}
	pi.PaidAmount = paid
	remaining := pi.Amount.Sub(paid)

	if remaining.LessThanOrEqual(decimal.Zero) {
		pi.Status = InstanceStatusPaid
		pi.RemainingAmount = nil
		pi.PaidAmount = pi.Amount
		pi.PaidDate = &paidDate
	} else {
		pi.Status = InstanceStatusPartial
		pi.RemainingAmount = &remaining
	}
	pi.UpdatedAt = time.Now().UTC()
}

// MarkPaid settles the instance in full.
func (pi *PaymentInstance) MarkPaid(paidDate time.Time) {
	pi.Status = InstanceStatusPaid
	pi.PaidAmount = pi.Amount
	pi.RemainingAmount = nil
	pi.PaidDate = &paidDate
	pi.UpdatedAt = time.Now().UTC()
}

// Cancel voids the instance.
func (pi *PaymentInstance) Cancel() {
	pi.Status = InstanceStatusCancelled
	pi.UpdatedAt = time.Now().UTC()
}
