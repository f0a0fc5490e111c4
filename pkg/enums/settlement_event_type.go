package enums

// SettlementEventType labels the payloads emitted by the settlement contract.
type SettlementEventType string

const (
	SettlementEventTypeCreated       SettlementEventType = "SETTLEMENT_CREATED"
	SettlementEventTypeStatusUpdated SettlementEventType = "SETTLEMENT_STATUS_UPDATED"
)

var validSettlementEventTypes = []SettlementEventType{
	SettlementEventTypeCreated,
	SettlementEventTypeStatusUpdated,
}

// String implements fmt.Stringer.
func (e SettlementEventType) String() string {
	return string(e)
}

// IsValid reports whether the event type is recognized.
func (e SettlementEventType) IsValid() bool {
	for _, candidate := range validSettlementEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}
