package state

import (
	"context"
	"sort"
	"sync"

	"github.com/clearlane/settleledger/internal/ledger"
)

// MemoryStore is an in-memory ledger.Store for tests and throwaway nodes.
// Range results are sorted so iteration order stays deterministic.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	buf := make([]byte, len(value))
	copy(buf, value)
	return buf, nil
}

func (s *MemoryStore) Range(_ context.Context, startKey, endKey string) ([]ledger.KV, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		if key < startKey {
			continue
		}
		if endKey != "" && key >= endKey {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]ledger.KV, 0, len(keys))
	for _, key := range keys {
		value := s.data[key]
		buf := make([]byte, len(value))
		copy(buf, value)
		pairs = append(pairs, ledger.KV{Key: key, Value: buf})
	}
	return pairs, nil
}

func (s *MemoryStore) Apply(_ context.Context, writes []ledger.KV) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, kv := range writes {
		buf := make([]byte, len(kv.Value))
		copy(buf, kv.Value)
		s.data[kv.Key] = buf
	}
	return nil
}

// Seed writes a value directly, bypassing the invocation path. Test helper.
func (s *MemoryStore) Seed(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// MemoryEventLog collects committed events in memory. Test double for the
// gorm-backed log.
type MemoryEventLog struct {
	mu   sync.Mutex
	rows []LedgerEvent
}

// NewMemoryEventLog returns an empty in-memory event log.
func NewMemoryEventLog() *MemoryEventLog {
	return &MemoryEventLog{}
}

func (l *MemoryEventLog) Append(_ context.Context, rows []LedgerEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows = append(l.rows, rows...)
	return nil
}

// Rows returns a copy of everything appended so far.
func (l *MemoryEventLog) Rows() []LedgerEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LedgerEvent, len(l.rows))
	copy(out, l.rows)
	return out
}
