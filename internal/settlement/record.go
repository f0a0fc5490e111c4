// Package settlement implements the deterministic settlement contract: a
// validated, status-gated record of a value transfer batch stored on the
// replicated ledger. All state access goes through the per-invocation
// ledger.Stub; nothing here touches clocks, randomness or process state.
package settlement

import (
	"encoding/json"
	"time"

	"github.com/clearlane/settleledger/pkg/enums"
)

// SettlementTypeStandard is the only settlement type issued today.
const SettlementTypeStandard = "STANDARD"

// keyPrefix namespaces settlement records in the shared ledger key space.
// The \x00 separator keeps arbitrary settlement ids from colliding with
// neighboring namespaces in range scans.
const (
	keyPrefix   = "SETTLEMENT\x00"
	keyRangeEnd = "SETTLEMENT\x01"
)

// timestampLayout is ISO-8601 UTC with millisecond precision. Every replica
// formats the network-agreed transaction timestamp identically.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Key returns the ledger key for a settlement id.
func Key(settlementID string) string {
	return keyPrefix + settlementID
}

// FormatTimestamp renders a deterministic timestamp for storage.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// StatusChange captures the audit trail of the most recent accepted
// transition.
type StatusChange struct {
	PreviousStatus enums.SettlementStatus `json:"previousStatus"`
	NewStatus      enums.SettlementStatus `json:"newStatus"`
	UpdatedBy      string                 `json:"updatedBy"`
	ChangedAt      string                 `json:"changedAt"`
}

// Metadata carries the settlement's audit fields.
type Metadata struct {
	CreatedBy        string        `json:"createdBy"`
	ParticipantCount int           `json:"participantCount"`
	SettlementType   string        `json:"settlementType"`
	LastStatusChange *StatusChange `json:"lastStatusChange,omitempty"`
}

// Record is the canonical settlement entity, one per ledger key. Amounts are
// integers in minor currency units; timestamps are ISO-8601 strings derived
// from the deterministic transaction timestamp.
type Record struct {
	SettlementID  string                 `json:"settlementId"`
	TransactionID string                 `json:"transactionId"`
	Participants  []string               `json:"participants"`
	Amount        int64                  `json:"amount"`
	Currency      enums.Currency         `json:"currency"`
	Status        enums.SettlementStatus `json:"status"`
	CreatedAt     string                 `json:"createdAt"`
	UpdatedAt     string                 `json:"updatedAt"`
	Metadata      Metadata               `json:"metadata"`
}

// Marshal produces the canonical stored encoding of the record.
func (r *Record) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// UnmarshalRecord decodes stored bytes back into a Record.
func UnmarshalRecord(data []byte) (*Record, error) {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// createdAtTime parses the stored createdAt for ordering; the zero time is
// returned for unparseable values so sorting stays total.
func (r *Record) createdAtTime() time.Time {
	t, err := time.Parse(timestampLayout, r.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
