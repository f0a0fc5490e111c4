package ledger

import (
	"context"
	"fmt"
	"time"
)

// TxContext is the Stub implementation for a single invocation. Reads are
// served from the committed snapshot; writes and events accumulate in
// buffers. The runtime applies WriteSet and Events only when the invocation
// succeeds, which realizes the no-partial-writes rule: a failed invocation
// leaves no trace.
//
// GetState deliberately does not observe the invocation's own buffered
// writes; reads always reflect the committed snapshot, matching the MVCC
// model of the hosting network.
type TxContext struct {
	store     Store
	txID      string
	caller    string
	timestamp time.Time

	writes     map[string][]byte
	writeOrder []string
	events     []Event
}

// NewTxContext builds a fresh per-invocation context. The caller identity and
// timestamp come from the ordering layer, never from this process's clock at
// execution time.
func NewTxContext(store Store, txID, caller string, timestamp time.Time) *TxContext {
	return &TxContext{
		store:     store,
		txID:      txID,
		caller:    caller,
		timestamp: timestamp,
		writes:    make(map[string][]byte),
	}
}

func (t *TxContext) GetState(ctx context.Context, key string) ([]byte, error) {
	return t.store.Get(ctx, key)
}

func (t *TxContext) PutState(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("state key is required")
	}
	if _, seen := t.writes[key]; !seen {
		t.writeOrder = append(t.writeOrder, key)
	}
	buf := make([]byte, len(value))
	copy(buf, value)
	t.writes[key] = buf
	return nil
}

func (t *TxContext) GetStateByRange(ctx context.Context, startKey, endKey string) ([]KV, error) {
	return t.store.Range(ctx, startKey, endKey)
}

func (t *TxContext) SetEvent(name string, payload []byte) error {
	if name == "" {
		return fmt.Errorf("event name is required")
	}
	buf := make([]byte, len(payload))
	copy(buf, payload)
	t.events = append(t.events, Event{Name: name, Payload: buf})
	return nil
}

func (t *TxContext) Caller() string {
	return t.caller
}

func (t *TxContext) TxTimestamp() time.Time {
	return t.timestamp
}

func (t *TxContext) TxID() string {
	return t.txID
}

// WriteSet returns the buffered writes in first-put key order; the last value
// written per key wins.
func (t *TxContext) WriteSet() []KV {
	writes := make([]KV, 0, len(t.writeOrder))
	for _, key := range t.writeOrder {
		writes = append(writes, KV{Key: key, Value: t.writes[key]})
	}
	return writes
}

// Events returns the buffered event emissions in emission order.
func (t *TxContext) Events() []Event {
	return t.events
}
