// Package cashflow sums open payment instances into weekly and monthly
// totals, split by payment method. The split is a partition: every open
// instance lands in exactly one bucket, so TotalPending always equals
// ByTransfer plus ByCard.
package cashflow

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payment-tracker/backend/internal/application/usecase/billing"
	"github.com/payment-tracker/backend/internal/domain/entity"
)

// Bucket is the payment-method bucket of an instance.
type Bucket string

const (
	BucketTransfer Bucket = "transfer"
	BucketCard     Bucket = "card"
)

// WeeklySummary aggregates the open instances due in one calendar week.
type WeeklySummary struct {
	WeekStart    time.Time
	WeekEnd      time.Time
	TotalPending decimal.Decimal
	ByTransfer   decimal.Decimal
	ByCard       decimal.Decimal
	Count        int
	// UrgentCount is how many open instances are due today or earlier.
	// Only the weekly view computes urgency.
	UrgentCount int
}

// MonthlySummary aggregates the instances due in one calendar month.
type MonthlySummary struct {
	MonthStart   time.Time
	MonthEnd     time.Time
	TotalPending decimal.Decimal
	ByTransfer   decimal.Decimal
	ByCard       decimal.Decimal
	PaidTotal    decimal.Decimal
	Count        int
	// PercentagePaid is paid / (paid + pending) * 100, and 0 when the
	// denominator is 0.
	PercentagePaid decimal.Decimal
}

// BucketFor classifies one instance: paying a card bill is itself a bank
// transfer, so card_payment always lands in the transfer bucket; a service
// payment follows the service's payment method. Instances referencing an
// unknown service fall back to transfer.
func BucketFor(pi *entity.PaymentInstance, servicesByID map[uuid.UUID]*entity.Service) Bucket {
	if pi.PaymentType == entity.PaymentTypeService && pi.ServiceID != nil {
		if svc, ok := servicesByID[*pi.ServiceID]; ok && svc.PaymentMethod == entity.PaymentMethodCard {
			return BucketCard
		}
	}
	return BucketTransfer
}

// ServicesByID indexes services for bucket classification.
func ServicesByID(services []*entity.Service) map[uuid.UUID]*entity.Service {
	m := make(map[uuid.UUID]*entity.Service, len(services))
	for _, svc := range services {
		m[svc.ID] = svc
	}
	return m
}

// Weekly aggregates open instances due between weekStart and weekStart+6d.
func Weekly(
	instances []*entity.PaymentInstance,
	services []*entity.Service,
	weekStart time.Time,
	now time.Time,
) WeeklySummary {
	start := billing.StartOfDay(weekStart)
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	byID := ServicesByID(services)

	summary := WeeklySummary{
		WeekStart:    start,
		WeekEnd:      billing.StartOfDay(weekStart).AddDate(0, 0, 6),
		TotalPending: decimal.Zero,
		ByTransfer:   decimal.Zero,
		ByCard:       decimal.Zero,
	}

	for _, pi := range instances {
		if !pi.IsOpen() {
			continue
		}
		if pi.DueDate.Before(start) || pi.DueDate.After(end) {
			continue
		}

		toPay := pi.AmountToPay()
		summary.TotalPending = summary.TotalPending.Add(toPay)
		if BucketFor(pi, byID) == BucketCard {
			summary.ByCard = summary.ByCard.Add(toPay)
		} else {
			summary.ByTransfer = summary.ByTransfer.Add(toPay)
		}
		summary.Count++

		if billing.DaysUntil(now, pi.DueDate) <= 0 {
			summary.UrgentCount++
		}
	}

	return summary
}

// Monthly aggregates the instances due in the calendar month containing
// month. Paid and partially-paid amounts feed PaidTotal so PercentagePaid
// reflects real progress through the month.
func Monthly(
	instances []*entity.PaymentInstance,
	services []*entity.Service,
	month time.Time,
) MonthlySummary {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	byID := ServicesByID(services)

	summary := MonthlySummary{
		MonthStart:   start,
		MonthEnd:     start.AddDate(0, 1, -1),
		TotalPending: decimal.Zero,
		ByTransfer:   decimal.Zero,
		ByCard:       decimal.Zero,
		PaidTotal:    decimal.Zero,
	}

	for _, pi := range instances {
		if pi.Status == entity.InstanceStatusCancelled {
			continue
		}
		if pi.DueDate.Before(start) || pi.DueDate.After(end) {
			continue
		}

		if pi.IsOpen() {
			toPay := pi.AmountToPay()
			summary.TotalPending = summary.TotalPending.Add(toPay)
			if BucketFor(pi, byID) == BucketCard {
				summary.ByCard = summary.ByCard.Add(toPay)
			} else {
				summary.ByTransfer = summary.ByTransfer.Add(toPay)
			}
			summary.Count++
		}

		summary.PaidTotal = summary.PaidTotal.Add(pi.PaidAmount)
	}

	denominator := summary.PaidTotal.Add(summary.TotalPending)
	if denominator.IsZero() {
		summary.PercentagePaid = decimal.Zero
	} else {
		summary.PercentagePaid = summary.PaidTotal.Div(denominator).Mul(decimal.NewFromInt(100))
	}

	return summary
}
