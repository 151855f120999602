package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceType represents how a recurring service is billed.
type ServiceType string

const (
	// ServiceTypeFixed is a constant-amount obligation with no cycle dates.
	ServiceTypeFixed ServiceType = "fixed"
	// ServiceTypeBillingCycle mirrors card cycle semantics: the amount is
	// only known after the cutoff day.
	ServiceTypeBillingCycle ServiceType = "billing_cycle"
)

// PaymentMethod represents how a service is paid.
type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// Service represents a recurring obligation of a household. A Service may own
// zero, one, or many ServiceLines; when lines exist, period analysis is
// delegated to them and the service-level cycle fields are ignored.
type Service struct {
	ID              uuid.UUID
	HouseholdID     uuid.UUID
	Name            string
	Type            ServiceType
	Amount          decimal.Decimal // fixed services only
	PaymentMethod   PaymentMethod
	BillingCycleDay *int // billing_cycle services only
	BillingDueDay   *int
	IsActive        bool
	Lines           []*ServiceLine
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// NewService creates a new Service entity.
func NewService(
	householdID uuid.UUID,
	name string,
	serviceType ServiceType,
	amount decimal.Decimal,
	paymentMethod PaymentMethod,
	billingCycleDay, billingDueDay *int,
) *Service {
	now := time.Now().UTC()

	return &Service{
		ID:              uuid.New(),
		HouseholdID:     householdID,
		Name:            name,
		Type:            serviceType,
		Amount:          amount,
		PaymentMethod:   paymentMethod,
		BillingCycleDay: billingCycleDay,
		BillingDueDay:   billingDueDay,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// HasLines reports whether period analysis should be delegated to lines.
func (s *Service) HasLines() bool {
	return len(s.Lines) > 0
}

// HasCycleConfig reports whether both cycle days are configured. Services
// without it are silently excluded from billing-cycle analysis.
func (s *Service) HasCycleConfig() bool {
	return s.BillingCycleDay != nil && s.BillingDueDay != nil
}

// ServiceLine is an independent billing cycle under a Service, e.g. one phone
// line of a family plan. CreatedAt matters for analysis: periods that would
// precede line creation are skipped.
type ServiceLine struct {
	ID              uuid.UUID
	ServiceID       uuid.UUID
	HouseholdID     uuid.UUID
	Name            string
	BillingCycleDay int
	BillingDueDay   int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// NewServiceLine creates a new ServiceLine entity.
func NewServiceLine(
	serviceID, householdID uuid.UUID,
	name string,
	billingCycleDay, billingDueDay int,
) *ServiceLine {
	now := time.Now().UTC()

	return &ServiceLine{
		ID:              uuid.New(),
		ServiceID:       serviceID,
		HouseholdID:     householdID,
		Name:            name,
		BillingCycleDay: billingCycleDay,
		BillingDueDay:   billingDueDay,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
