package entity

import "sort"

// AlertSeverity represents how urgent an alert is.
type AlertSeverity string

const (
	AlertSeverityCritical AlertSeverity = "critical"
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityInfo     AlertSeverity = "info"
)

// severityRank orders severities for sorting: critical < warning < info.
var severityRank = map[AlertSeverity]int{
	AlertSeverityCritical: 0,
	AlertSeverityWarning:  1,
	AlertSeverityInfo:     2,
}

// AlertType identifies the rule that produced an alert.
type AlertType string

const (
	AlertTypeCardNoPayment         AlertType = "card_no_payment"
	AlertTypeLowCredit             AlertType = "low_credit"
	AlertTypeServiceAwaitingAmount AlertType = "service_awaiting_amount"
	AlertTypeServiceLineNoPayment  AlertType = "service_line_no_payment"
	AlertTypeOverduePayments       AlertType = "overdue_payments"
	AlertTypeUpcomingPayments      AlertType = "upcoming_payments"
	AlertTypeHighWeek              AlertType = "high_week"
)

// AlertAction is the navigation suggestion carried by an alert.
type AlertAction struct {
	Route  string            `json:"route"`
	Params map[string]string `json:"params,omitempty"`
}

// SmartAlert is an ephemeral, derived alert. The ID is deterministic and
// entity-scoped so presentation layers can diff alert lists across
// recomputations.
type SmartAlert struct {
	ID          string        `json:"id"`
	Type        AlertType     `json:"type"`
	Severity    AlertSeverity `json:"severity"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Action      AlertAction   `json:"action"`
	SortValue   *float64      `json:"sort_value,omitempty"`
}

// SortAlerts orders alerts by severity rank, then by descending SortValue
// when both sides define one. The sort is stable so alerts without a sort
// value keep their rule emission order.
func SortAlerts(alerts []SmartAlert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := severityRank[alerts[i].Severity], severityRank[alerts[j].Severity]
		if ri != rj {
			return ri < rj
		}
		if alerts[i].SortValue != nil && alerts[j].SortValue != nil {
			return *alerts[i].SortValue > *alerts[j].SortValue
		}
		return false
	})
}
