package state

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// WorldState is one committed key-value pair with its write version. The
// version advances on every applied write so operators can correlate rows
// with the invocation history.
type WorldState struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     []byte    `gorm:"column:value;not null"`
	Version   int64     `gorm:"column:version;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName implements gorm's table naming.
func (WorldState) TableName() string {
	return "world_state"
}

// LedgerEvent is a committed contract event, persisted in emission order so
// downstream consumers can replay the event history.
type LedgerEvent struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	TxID      string          `gorm:"column:tx_id;not null"`
	Name      string          `gorm:"column:name;not null"`
	Payload   json.RawMessage `gorm:"column:payload"`
	Sequence  int             `gorm:"column:sequence;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// TableName implements gorm's table naming.
func (LedgerEvent) TableName() string {
	return "ledger_events"
}
