package ledger

import (
	"context"
	"testing"
	"time"
)

type snapshotStore struct {
	data map[string][]byte
}

func (s *snapshotStore) Get(_ context.Context, key string) ([]byte, error) {
	return s.data[key], nil
}

func (s *snapshotStore) Range(_ context.Context, startKey, endKey string) ([]KV, error) {
	return nil, nil
}

func (s *snapshotStore) Apply(_ context.Context, writes []KV) error {
	for _, kv := range writes {
		s.data[kv.Key] = kv.Value
	}
	return nil
}

func TestTxContextBuffersWrites(t *testing.T) {
	store := &snapshotStore{data: map[string][]byte{"existing": []byte("committed")}}
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	txctx := NewTxContext(store, "tx-1", "bank-a", ts)

	if err := txctx.PutState(context.Background(), "k1", []byte("v1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := txctx.PutState(context.Background(), "k2", []byte("v2")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := txctx.PutState(context.Background(), "k1", []byte("v1b")); err != nil {
		t.Fatalf("put: %v", err)
	}

	// The committed snapshot is untouched until the runtime applies the set.
	if _, ok := store.data["k1"]; ok {
		t.Fatal("buffered write leaked into the store")
	}

	writes := txctx.WriteSet()
	if len(writes) != 2 {
		t.Fatalf("expected 2 writes, got %d", len(writes))
	}
	if writes[0].Key != "k1" || string(writes[0].Value) != "v1b" {
		t.Fatalf("first-put order with last value: %+v", writes[0])
	}
	if writes[1].Key != "k2" {
		t.Fatalf("unexpected second write %+v", writes[1])
	}
}

func TestTxContextReadsCommittedSnapshotOnly(t *testing.T) {
	store := &snapshotStore{data: map[string][]byte{"k": []byte("old")}}
	txctx := NewTxContext(store, "tx-2", "bank-a", time.Unix(0, 0))

	if err := txctx.PutState(context.Background(), "k", []byte("new")); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := txctx.GetState(context.Background(), "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "old" {
		t.Fatalf("reads must not observe buffered writes, got %q", got)
	}
}

func TestTxContextBuffersEvents(t *testing.T) {
	txctx := NewTxContext(&snapshotStore{data: map[string][]byte{}}, "tx-3", "bank-b", time.Unix(0, 0))

	if err := txctx.SetEvent("SettlementCreated", []byte(`{"settlementId":"S-1"}`)); err != nil {
		t.Fatalf("set event: %v", err)
	}
	if err := txctx.SetEvent("", nil); err == nil {
		t.Fatal("expected error for unnamed event")
	}

	events := txctx.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Name != "SettlementCreated" {
		t.Fatalf("unexpected event name %q", events[0].Name)
	}
}

func TestTxContextIdentityAndTimestamp(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	txctx := NewTxContext(&snapshotStore{data: map[string][]byte{}}, "tx-4", "bank-c", ts)

	if txctx.TxID() != "tx-4" || txctx.Caller() != "bank-c" {
		t.Fatalf("identity mismatch: %s / %s", txctx.TxID(), txctx.Caller())
	}
	if !txctx.TxTimestamp().Equal(ts) {
		t.Fatalf("timestamp mismatch: %v", txctx.TxTimestamp())
	}
}
