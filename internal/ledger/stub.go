// Package ledger defines the narrow port through which contract code reaches
// the replicated key-value ledger. The hosting network owns ordering,
// conflict detection and durability; contract logic only ever sees the
// per-invocation Stub.
package ledger

import (
	"context"
	"time"
)

// KV is one key-value pair of world state.
type KV struct {
	Key   string
	Value []byte
}

// Event is a named payload emitted by a committed invocation.
type Event struct {
	Name    string
	Payload []byte
}

// Store is the committed world-state snapshot an invocation executes against.
// Get returns (nil, nil) for absent keys. Range returns pairs in ascending
// key order over [startKey, endKey); an empty endKey means unbounded. Apply
// commits a whole write set atomically.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Range(ctx context.Context, startKey, endKey string) ([]KV, error)
	Apply(ctx context.Context, writes []KV) error
}

// Stub is the ledger access surface handed to contract code for exactly one
// invocation. All reads observe the committed snapshot; writes and events are
// buffered and only take effect if the invocation returns without error.
type Stub interface {
	// GetState returns the committed value for key, or (nil, nil) if absent.
	GetState(ctx context.Context, key string) ([]byte, error)
	// PutState records a pending write for key.
	PutState(ctx context.Context, key string, value []byte) error
	// GetStateByRange returns committed pairs over [startKey, endKey) in
	// ascending key order.
	GetStateByRange(ctx context.Context, startKey, endKey string) ([]KV, error)
	// SetEvent records a pending event emission.
	SetEvent(name string, payload []byte) error
	// Caller returns the opaque principal identifier of the invoker,
	// supplied by the network's membership layer.
	Caller() string
	// TxTimestamp returns the deterministic, network-agreed timestamp of
	// the invocation. It is the sole time source contract code may use.
	TxTimestamp() time.Time
	// TxID returns the unique identifier of the invocation.
	TxID() string
}
