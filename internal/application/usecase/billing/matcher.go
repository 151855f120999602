package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/payment-tracker/backend/internal/domain/entity"
)

// DefaultToleranceDays absorbs the drift between a user-entered due date and
// the theoretically computed one.
const DefaultToleranceDays = 5

// OwnerKind selects which foreign key of a record a match is scoped to.
type OwnerKind string

const (
	OwnerCard        OwnerKind = "card"
	OwnerService     OwnerKind = "service"
	OwnerServiceLine OwnerKind = "service_line"
)

// OwnerRef identifies the entity a period window belongs to.
type OwnerRef struct {
	Kind OwnerKind
	ID   uuid.UUID
}

// Window is a period window with a day tolerance on both ends. A zero
// tolerance means exact containment, used for card/service-line cycle windows
// so a payment can never belong to two adjacent periods at once.
type Window struct {
	Start         time.Time
	End           time.Time
	ToleranceDays int
}

// DueDateWindow builds the loose window used when matching user-entered due
// dates against a computed one.
func DueDateWindow(closing, due time.Time) Window {
	return Window{Start: closing, End: due, ToleranceDays: DefaultToleranceDays}
}

// CycleWindow builds the tight, zero-tolerance window (day after closing
// through next closing) used for card and service-line periods. Exact
// containment keeps an instance from satisfying two adjacent periods.
func CycleWindow(closing time.Time) Window {
	return Window{
		Start: StartOfDay(closing).AddDate(0, 0, 1),
		End:   ComputeNextPeriod(closing),
	}
}

// Contains reports whether t falls inside the tolerance-expanded window,
// bounds inclusive.
func (w Window) Contains(t time.Time) bool {
	start := StartOfDay(w.Start).AddDate(0, 0, -w.ToleranceDays)
	end := endOfDay(w.End).AddDate(0, 0, w.ToleranceDays)
	return !t.Before(start) && !t.After(end)
}

// instanceOwnerID returns the instance FK for the given owner kind.
func instanceOwnerID(pi *entity.PaymentInstance, kind OwnerKind) *uuid.UUID {
	switch kind {
	case OwnerCard:
		return pi.CardID
	case OwnerService:
		return pi.ServiceID
	case OwnerServiceLine:
		return pi.ServiceLineID
	}
	return nil
}

func templateOwnerID(sp *entity.ScheduledPayment, kind OwnerKind) *uuid.UUID {
	switch kind {
	case OwnerCard:
		return sp.CardID
	case OwnerService:
		return sp.ServiceID
	case OwnerServiceLine:
		return sp.ServiceLineID
	}
	return nil
}

// FindMatchingInstance selects the first instance (in input order) whose
// owning foreign key equals the owner and whose due date falls inside the
// window. Input order is preserved deliberately so behavior stays
// deterministic against fixed fixtures. The second return value counts
// additional records that also matched; callers surface it as a
// data-integrity warning instead of silently picking one.
func FindMatchingInstance(instances []*entity.PaymentInstance, owner OwnerRef, w Window) (*entity.PaymentInstance, int) {
	var match *entity.PaymentInstance
	duplicates := 0
	for _, pi := range instances {
		id := instanceOwnerID(pi, owner.Kind)
		if id == nil || *id != owner.ID {
			continue
		}
		if !w.Contains(pi.DueDate) {
			continue
		}
		if match == nil {
			match = pi
		} else {
			duplicates++
		}
	}
	return match, duplicates
}

// FindMatchingTemplate selects the first active scheduled-payment template
// scoped to the owner whose concrete payment date falls inside the window.
// Templates without a concrete date never match.
func FindMatchingTemplate(templates []*entity.ScheduledPayment, owner OwnerRef, w Window) *entity.ScheduledPayment {
	for _, sp := range templates {
		if !sp.IsActive || sp.PaymentDate == nil {
			continue
		}
		id := templateOwnerID(sp, owner.Kind)
		if id == nil || *id != owner.ID {
			continue
		}
		if w.Contains(*sp.PaymentDate) {
			return sp
		}
	}
	return nil
}

// HasProgrammedPayment reports whether the period already has money lined up:
// a matching instance with status pending, paid, or partial, or an active
// template with a concrete date inside the window. Templates substitute for
// materialized instances before generation runs (cards only).
func HasProgrammedPayment(
	instances []*entity.PaymentInstance,
	templates []*entity.ScheduledPayment,
	owner OwnerRef,
	w Window,
) bool {
	match, _ := FindMatchingInstance(instances, owner, w)
	if match != nil {
		switch match.Status {
		case entity.InstanceStatusPending, entity.InstanceStatusPaid, entity.InstanceStatusPartial:
			return true
		}
	}
	return FindMatchingTemplate(templates, owner, w) != nil
}
