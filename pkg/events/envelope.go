package events

import (
	"encoding/json"
	"time"
)

// Envelope is the stable structure relayed for every committed contract
// event. Payload carries the contract's event body untouched; the envelope
// adds relay-side correlation only.
type Envelope struct {
	Version    int             `json:"version"`
	EventID    string          `json:"eventId"`
	TxID       string          `json:"txId"`
	Name       string          `json:"name"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// EnvelopeVersion is the current envelope schema version.
const EnvelopeVersion = 1
