package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Period analyses are derived, ephemeral value objects describing the current
// billing period of one entity. They are recomputed on every read and never
// persisted.

// CardPeriodStatus is the closed set of states a card's current period can be
// in.
type CardPeriodStatus string

const (
	// CardPeriodCovered means a pending/paid instance or an active scheduled
	// template already covers the period.
	CardPeriodCovered CardPeriodStatus = "covered"
	// CardPeriodNotProgrammed means the period closed with no matching
	// payment and the due date has not yet passed.
	CardPeriodNotProgrammed CardPeriodStatus = "not_programmed"
	// CardPeriodOverdue means the due date passed with still no match.
	CardPeriodOverdue CardPeriodStatus = "overdue"
)

// CardPeriodAnalysis describes the current billing period of one card.
type CardPeriodAnalysis struct {
	CardID               uuid.UUID
	CardName             string
	ClosingDate          time.Time
	DueDate              time.Time
	DaysUntilDue         int
	HasProgrammedPayment bool
	ProgrammedAmount     decimal.Decimal
	Status               CardPeriodStatus
}

// ServiceBillingStatus is the closed set of states a billing-cycle service's
// current period can be in.
type ServiceBillingStatus string

const (
	// ServiceBillingUpcoming means the cutoff has not arrived yet.
	ServiceBillingUpcoming ServiceBillingStatus = "upcoming"
	// ServiceBillingAwaitingAmount means the cutoff passed but no instance
	// amount has been entered yet.
	ServiceBillingAwaitingAmount ServiceBillingStatus = "awaiting_amount"
	// ServiceBillingReady means the amount is known and the instance is
	// still pending.
	ServiceBillingReady ServiceBillingStatus = "ready"
	// ServiceBillingOverdue means the due date passed without payment. It
	// always wins regardless of amount status.
	ServiceBillingOverdue ServiceBillingStatus = "overdue"
)

// ServiceBillingAnalysis describes the current billing period of one
// billing-cycle service without lines.
type ServiceBillingAnalysis struct {
	ServiceID    uuid.UUID
	ServiceName  string
	CutoffDate   time.Time
	DueDate      time.Time
	DaysUntilDue int
	HasAmount    bool
	Amount       decimal.Decimal
	Status       ServiceBillingStatus
}

// ServiceLineBillingStatus is the closed set of states a service line's
// current period can be in. Distinct from cards: covered requires the
// instance to be paid, not merely scheduled, because line-level amounts are
// not known in advance.
type ServiceLineBillingStatus string

const (
	ServiceLineNotProgrammed ServiceLineBillingStatus = "not_programmed"
	ServiceLineProgrammed    ServiceLineBillingStatus = "programmed"
	ServiceLinePartial       ServiceLineBillingStatus = "partial"
	ServiceLineCovered       ServiceLineBillingStatus = "covered"
	ServiceLineOverdue       ServiceLineBillingStatus = "overdue"
)

// ServiceLineBillingAnalysis describes the current billing period of one
// service line.
type ServiceLineBillingAnalysis struct {
	LineID       uuid.UUID
	ServiceID    uuid.UUID
	LineName     string
	CutoffDate   time.Time
	DueDate      time.Time
	DaysUntilDue int
	HasInstance  bool
	Amount       decimal.Decimal
	Status       ServiceLineBillingStatus
}
