// Package analysis derives the current billing period of cards, services,
// and service lines from raw payment records. Every function takes the
// reference time explicitly and is recomputed fresh on each call: identical
// inputs and an unchanged now yield identical output, which the presentation
// layer relies on for alert list diffing.
package analysis

import (
	"log/slog"

	"github.com/payment-tracker/backend/internal/application/usecase/billing"
	"github.com/payment-tracker/backend/internal/domain/entity"
)

// excludeCancelled drops cancelled instances before matching: a voided
// payment must never cover a period.
func excludeCancelled(instances []*entity.PaymentInstance) []*entity.PaymentInstance {
	out := make([]*entity.PaymentInstance, 0, len(instances))
	for _, pi := range instances {
		if pi.Status != entity.InstanceStatusCancelled {
			out = append(out, pi)
		}
	}
	return out
}

// warnDuplicates surfaces multiple records matching one period window as a
// data-integrity problem. The first match still wins so output stays
// deterministic.
func warnDuplicates(owner billing.OwnerRef, extra int) {
	if extra > 0 {
		slog.Warn("multiple payment records match one billing period",
			"owner_kind", string(owner.Kind),
			"owner_id", owner.ID,
			"extra_matches", extra,
		)
	}
}
