package state

import (
	"context"
	"testing"

	"github.com/clearlane/settleledger/internal/ledger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStateTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	worldState := `
CREATE TABLE IF NOT EXISTS world_state (
  key TEXT PRIMARY KEY,
  value BLOB NOT NULL,
  version INTEGER NOT NULL DEFAULT 0,
  updated_at DATETIME
);`
	ledgerEvents := `
CREATE TABLE IF NOT EXISTS ledger_events (
  id TEXT PRIMARY KEY,
  tx_id TEXT NOT NULL,
  name TEXT NOT NULL,
  payload TEXT,
  sequence INTEGER NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(worldState).Error)
	require.NoError(t, db.Exec(ledgerEvents).Error)
	return db
}

func TestGormStoreGetAbsentKey(t *testing.T) {
	store := NewGormStore(setupStateTestDB(t))

	value, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestGormStoreApplyAndGet(t *testing.T) {
	store := NewGormStore(setupStateTestDB(t))
	ctx := context.Background()

	writes := []ledger.KV{
		{Key: "a", Value: []byte("1")},
		{Key: "b", Value: []byte("2")},
	}
	require.NoError(t, store.Apply(ctx, writes))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)

	// Re-applying a key overwrites the value and bumps the version.
	require.NoError(t, store.Apply(ctx, []ledger.KV{{Key: "a", Value: []byte("1b")}}))

	var row WorldState
	require.NoError(t, store.db.Where("key = ?", "a").First(&row).Error)
	assert.Equal(t, []byte("1b"), row.Value)
	assert.Equal(t, int64(2), row.Version)
}

func TestGormStoreRangeOrdering(t *testing.T) {
	store := NewGormStore(setupStateTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Apply(ctx, []ledger.KV{
		{Key: "s\x00c", Value: []byte("3")},
		{Key: "s\x00a", Value: []byte("1")},
		{Key: "t\x00x", Value: []byte("other namespace")},
		{Key: "s\x00b", Value: []byte("2")},
	}))

	pairs, err := store.Range(ctx, "s\x00", "s\x01")
	require.NoError(t, err)
	require.Len(t, pairs, 3)
	assert.Equal(t, "s\x00a", pairs[0].Key)
	assert.Equal(t, "s\x00b", pairs[1].Key)
	assert.Equal(t, "s\x00c", pairs[2].Key)

	// Unbounded end covers every namespace.
	all, err := store.Range(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestGormStoreApplyEmptyWriteSet(t *testing.T) {
	store := NewGormStore(setupStateTestDB(t))
	require.NoError(t, store.Apply(context.Background(), nil))
}

func TestGormEventLogAppend(t *testing.T) {
	db := setupStateTestDB(t)
	log := NewGormEventLog(db)
	ctx := context.Background()

	rows := []LedgerEvent{
		{ID: uuid.New(), TxID: "tx-1", Name: "SettlementCreated", Payload: []byte(`{"settlementId":"S-1"}`), Sequence: 0},
		{ID: uuid.New(), TxID: "tx-1", Name: "SettlementStatusUpdated", Payload: []byte(`{"settlementId":"S-1"}`), Sequence: 1},
	}
	require.NoError(t, log.Append(ctx, rows))
	require.NoError(t, log.Append(ctx, nil))

	var stored []LedgerEvent
	require.NoError(t, db.Order("sequence ASC").Find(&stored).Error)
	require.Len(t, stored, 2)
	assert.Equal(t, "SettlementCreated", stored[0].Name)
	assert.Equal(t, "tx-1", stored[1].TxID)
}
