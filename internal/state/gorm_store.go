package state

import (
	"context"
	"errors"

	"github.com/clearlane/settleledger/internal/ledger"
	"gorm.io/gorm"
)

// GormStore implements ledger.Store on the node's world-state table.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore returns a store bound to the provided database.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Get returns the committed value for key, or (nil, nil) when absent.
func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var row WorldState
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.Value, nil
}

// Range returns pairs over [startKey, endKey) ordered by key ascending. An
// empty endKey means unbounded.
func (s *GormStore) Range(ctx context.Context, startKey, endKey string) ([]ledger.KV, error) {
	query := s.db.WithContext(ctx).Model(&WorldState{}).Where("key >= ?", startKey)
	if endKey != "" {
		query = query.Where("key < ?", endKey)
	}

	var rows []WorldState
	if err := query.Order("key ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	pairs := make([]ledger.KV, 0, len(rows))
	for _, row := range rows {
		pairs = append(pairs, ledger.KV{Key: row.Key, Value: row.Value})
	}
	return pairs, nil
}

// Apply commits a write set atomically, bumping each row's version.
func (s *GormStore) Apply(ctx context.Context, writes []ledger.KV) error {
	if len(writes) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, kv := range writes {
			result := tx.Model(&WorldState{}).
				Where("key = ?", kv.Key).
				Updates(map[string]any{
					"value":   kv.Value,
					"version": gorm.Expr("version + 1"),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				if err := tx.Create(&WorldState{Key: kv.Key, Value: kv.Value, Version: 1}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// GormEventLog appends committed contract events to the ledger_events table.
type GormEventLog struct {
	db *gorm.DB
}

// NewGormEventLog returns an event log bound to the provided database.
func NewGormEventLog(db *gorm.DB) *GormEventLog {
	return &GormEventLog{db: db}
}

// Append stores the rows of one committed invocation.
func (l *GormEventLog) Append(ctx context.Context, rows []LedgerEvent) error {
	if len(rows) == 0 {
		return nil
	}
	return l.db.WithContext(ctx).Create(&rows).Error
}
