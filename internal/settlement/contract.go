package settlement

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/clearlane/settleledger/internal/ledger"
	"github.com/clearlane/settleledger/pkg/enums"
	"github.com/clearlane/settleledger/pkg/logger"
	"github.com/clearlane/settleledger/pkg/money"
	"go.uber.org/multierr"

	pkgerrors "github.com/clearlane/settleledger/pkg/errors"
)

// Contract exposes the settlement operations. Each method takes the
// per-invocation stub; the contract itself holds no state between
// invocations.
type Contract struct {
	log *logger.Logger
}

// NewContract wires a settlement contract with the provided logger.
func NewContract(logg *logger.Logger) (*Contract, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Contract{log: logg}, nil
}

// CreateInput captures the caller-supplied fields of a new settlement.
type CreateInput struct {
	SettlementID  string   `json:"settlementId"`
	TransactionID string   `json:"transactionId"`
	Participants  []string `json:"participants"`
	Amount        int64    `json:"amount"`
	Currency      string   `json:"currency"`
}

// CreateSettlement validates the input, rejects duplicates, persists the
// record in PENDING status and emits SettlementCreated. Validation failures
// abort before any ledger access.
func (c *Contract) CreateSettlement(ctx context.Context, stub ledger.Stub, in CreateInput) error {
	currency, err := validateCreate(in.SettlementID, in.TransactionID, in.Participants, in.Amount, in.Currency)
	if err != nil {
		return err
	}

	key := Key(in.SettlementID)
	existing, err := stub.GetState(ctx, key)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, fmt.Sprintf("Settlement lookup failed: %v", err))
	}
	if existing != nil {
		return pkgerrors.Newf(pkgerrors.CodeDuplicate, "Settlement with ID %s already exists", in.SettlementID)
	}

	now := FormatTimestamp(stub.TxTimestamp())
	record := Record{
		SettlementID:  in.SettlementID,
		TransactionID: in.TransactionID,
		Participants:  in.Participants,
		Amount:        in.Amount,
		Currency:      currency,
		Status:        enums.SettlementStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
		Metadata: Metadata{
			CreatedBy:        stub.Caller(),
			ParticipantCount: len(in.Participants),
			SettlementType:   SettlementTypeStandard,
		},
	}

	data, err := record.Marshal()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "serializing settlement record")
	}
	if err := stub.PutState(ctx, key, data); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, fmt.Sprintf("Settlement creation failed: %v", err))
	}

	if err := c.emit(stub, EventSettlementCreated, createdEvent{
		EventType:        enums.SettlementEventTypeCreated,
		SettlementID:     record.SettlementID,
		TransactionID:    record.TransactionID,
		Amount:           record.Amount,
		Currency:         record.Currency,
		ParticipantCount: record.Metadata.ParticipantCount,
		Status:           record.Status,
		CreatedBy:        record.Metadata.CreatedBy,
		Timestamp:        now,
	}); err != nil {
		return err
	}

	lctx := c.log.WithFields(ctx, map[string]any{
		"settlement_id": record.SettlementID,
		"amount":        money.Format(record.Amount, record.Currency),
	})
	c.log.Debug(lctx, "settlement created")
	return nil
}

// GetSettlement returns the stored record for the id.
func (c *Contract) GetSettlement(ctx context.Context, stub ledger.Stub, settlementID string) (*Record, error) {
	if err := validateSettlementID(settlementID); err != nil {
		return nil, err
	}

	data, err := stub.GetState(ctx, Key(settlementID))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, fmt.Sprintf("Settlement lookup failed: %v", err))
	}
	if data == nil {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "Settlement with ID %s does not exist", settlementID)
	}

	record, err := UnmarshalRecord(data)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCorruption, err, "Corrupted settlement data")
	}
	return record, nil
}

// SettlementExists reports whether the id is present. Absence is not an
// error.
func (c *Contract) SettlementExists(ctx context.Context, stub ledger.Stub, settlementID string) (bool, error) {
	if err := validateSettlementID(settlementID); err != nil {
		return false, err
	}
	data, err := stub.GetState(ctx, Key(settlementID))
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodePersistence, err, fmt.Sprintf("Settlement lookup failed: %v", err))
	}
	return data != nil, nil
}

// UpdateSettlementStatus moves the record along a legal edge of the status
// graph. Requesting the current status is a no-op: no write, no event,
// success. Illegal edges fail without touching the record.
func (c *Contract) UpdateSettlementStatus(ctx context.Context, stub ledger.Stub, settlementID, newStatus string) error {
	if err := validateSettlementID(settlementID); err != nil {
		return err
	}
	target, err := validateStatusLiteral(newStatus)
	if err != nil {
		return err
	}

	key := Key(settlementID)
	data, err := stub.GetState(ctx, key)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, fmt.Sprintf("Settlement lookup failed: %v", err))
	}
	if data == nil {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "Settlement with ID %s does not exist", settlementID)
	}
	record, err := UnmarshalRecord(data)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeCorruption, err, "Corrupted settlement data")
	}

	if target == record.Status {
		c.log.Debug(c.log.WithSettlementID(ctx, settlementID), "duplicate status update suppressed")
		return nil
	}
	if !record.Status.CanTransitionTo(target) {
		return pkgerrors.Newf(pkgerrors.CodeInvalidTransition, "Invalid status transition from %s to %s", record.Status, target)
	}

	previous := record.Status
	now := FormatTimestamp(stub.TxTimestamp())
	record.Status = target
	record.UpdatedAt = now
	record.Metadata.LastStatusChange = &StatusChange{
		PreviousStatus: previous,
		NewStatus:      target,
		UpdatedBy:      stub.Caller(),
		ChangedAt:      now,
	}

	updated, err := record.Marshal()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "serializing settlement record")
	}
	if err := stub.PutState(ctx, key, updated); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, fmt.Sprintf("Settlement update failed: %v", err))
	}

	if err := c.emit(stub, EventSettlementStatusUpdated, statusUpdatedEvent{
		EventType:      enums.SettlementEventTypeStatusUpdated,
		SettlementID:   record.SettlementID,
		TransactionID:  record.TransactionID,
		PreviousStatus: previous,
		NewStatus:      target,
		UpdatedBy:      stub.Caller(),
		Amount:         record.Amount,
		Currency:       record.Currency,
	}); err != nil {
		return err
	}

	c.log.Debug(c.log.WithSettlementID(ctx, settlementID), "settlement status updated")
	return nil
}

// GetAllSettlements scans the settlement namespace and returns records
// ordered by createdAt descending, settlementId descending on ties.
// Corrupted entries are skipped and logged; a bulk read never aborts on a
// single bad row.
func (c *Contract) GetAllSettlements(ctx context.Context, stub ledger.Stub) ([]Record, error) {
	pairs, err := stub.GetStateByRange(ctx, keyPrefix, keyRangeEnd)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, fmt.Sprintf("Settlement scan failed: %v", err))
	}

	records := make([]Record, 0, len(pairs))
	var scanErr error
	for _, kv := range pairs {
		record, err := UnmarshalRecord(kv.Value)
		if err != nil {
			scanErr = multierr.Append(scanErr, fmt.Errorf("key %q: %w", kv.Key, err))
			continue
		}
		records = append(records, *record)
	}
	if scanErr != nil {
		c.log.Warn(c.log.WithField(ctx, "error", scanErr.Error()), "skipped corrupted settlement entries during scan")
	}

	sort.SliceStable(records, func(i, j int) bool {
		left, right := records[i].createdAtTime(), records[j].createdAtTime()
		if !left.Equal(right) {
			return left.After(right)
		}
		return records[i].SettlementID > records[j].SettlementID
	})
	return records, nil
}

func (c *Contract) emit(stub ledger.Stub, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "serializing event payload")
	}
	return stub.SetEvent(name, data)
}
