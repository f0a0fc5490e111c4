package settlement

import "github.com/clearlane/settleledger/pkg/enums"

// Event names emitted through the ledger port.
const (
	EventSettlementCreated       = "SettlementCreated"
	EventSettlementStatusUpdated = "SettlementStatusUpdated"
)

// createdEvent is the SettlementCreated payload.
type createdEvent struct {
	EventType        enums.SettlementEventType `json:"eventType"`
	SettlementID     string                    `json:"settlementId"`
	TransactionID    string                    `json:"transactionId"`
	Amount           int64                     `json:"amount"`
	Currency         enums.Currency            `json:"currency"`
	ParticipantCount int                       `json:"participantCount"`
	Status           enums.SettlementStatus    `json:"status"`
	CreatedBy        string                    `json:"createdBy"`
	Timestamp        string                    `json:"timestamp"`
}

// statusUpdatedEvent is the SettlementStatusUpdated payload.
type statusUpdatedEvent struct {
	EventType      enums.SettlementEventType `json:"eventType"`
	SettlementID   string                    `json:"settlementId"`
	TransactionID  string                    `json:"transactionId"`
	PreviousStatus enums.SettlementStatus    `json:"previousStatus"`
	NewStatus      enums.SettlementStatus    `json:"newStatus"`
	UpdatedBy      string                    `json:"updatedBy"`
	Amount         int64                     `json:"amount"`
	Currency       enums.Currency            `json:"currency"`
}
