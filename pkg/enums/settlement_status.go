package enums

import "fmt"

// SettlementStatus tracks the lifecycle of a settlement record.
type SettlementStatus string

const (
	SettlementStatusPending    SettlementStatus = "PENDING"
	SettlementStatusProcessing SettlementStatus = "PROCESSING"
	SettlementStatusCompleted  SettlementStatus = "COMPLETED"
	SettlementStatusFailed     SettlementStatus = "FAILED"
	SettlementStatusCancelled  SettlementStatus = "CANCELLED"
)

var validSettlementStatuses = []SettlementStatus{
	SettlementStatusPending,
	SettlementStatusProcessing,
	SettlementStatusCompleted,
	SettlementStatusFailed,
	SettlementStatusCancelled,
}

// settlementTransitions is the closed adjacency set of legal status edges.
// COMPLETED, FAILED and CANCELLED are terminal and have no outgoing edges.
var settlementTransitions = map[SettlementStatus][]SettlementStatus{
	SettlementStatusPending:    {SettlementStatusProcessing, SettlementStatusCancelled},
	SettlementStatusProcessing: {SettlementStatusCompleted, SettlementStatusFailed},
}

// String implements fmt.Stringer.
func (s SettlementStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SettlementStatus.
func (s SettlementStatus) IsValid() bool {
	for _, candidate := range validSettlementStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s SettlementStatus) IsTerminal() bool {
	return s.IsValid() && len(settlementTransitions[s]) == 0
}

// CanTransitionTo reports whether the edge s -> next is in the transition set.
// A same-state request is not an edge; callers treat it as a no-op before
// consulting the table.
func (s SettlementStatus) CanTransitionTo(next SettlementStatus) bool {
	for _, candidate := range settlementTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ParseSettlementStatus converts raw input into a SettlementStatus.
func ParseSettlementStatus(value string) (SettlementStatus, error) {
	for _, candidate := range validSettlementStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid settlement status %q", value)
}
