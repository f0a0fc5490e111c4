// Package runtime executes contract invocations on a single node. It stands
// in for the ordering service: invocations are serialized, stamped with a
// deterministic transaction timestamp before execution, and their write and
// event sets are committed atomically on success or discarded entirely on
// failure.
package runtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/clearlane/settleledger/internal/ledger"
	"github.com/clearlane/settleledger/internal/settlement"
	"github.com/clearlane/settleledger/internal/state"
	"github.com/clearlane/settleledger/pkg/events"
	"github.com/clearlane/settleledger/pkg/logger"
	"github.com/clearlane/settleledger/pkg/metrics"
	"github.com/google/uuid"

	pkgerrors "github.com/clearlane/settleledger/pkg/errors"
)

// Operation names used for logging and metrics labels.
const (
	OpCreateSettlement       = "createSettlement"
	OpGetSettlement          = "getSettlement"
	OpSettlementExists       = "settlementExists"
	OpUpdateSettlementStatus = "updateSettlementStatus"
	OpGetAllSettlements      = "getAllSettlements"
)

// EventLog persists committed contract events.
type EventLog interface {
	Append(ctx context.Context, rows []state.LedgerEvent) error
}

// Params wires a node.
type Params struct {
	Store    ledger.Store
	EventLog EventLog
	Relay    events.Publisher
	Contract *settlement.Contract
	Logger   *logger.Logger
	Metrics  *metrics.InvocationMetrics
}

// Node runs invocations against the local world state.
type Node struct {
	store    ledger.Store
	eventLog EventLog
	relay    events.Publisher
	contract *settlement.Contract
	log      *logger.Logger
	metrics  *metrics.InvocationMetrics

	// mu serializes invocations the way the ordering service serializes
	// proposed transactions for a replica.
	mu sync.Mutex
}

// NewNode validates the wiring and returns a runnable node.
func NewNode(p Params) (*Node, error) {
	if p.Store == nil {
		return nil, fmt.Errorf("world-state store required")
	}
	if p.EventLog == nil {
		return nil, fmt.Errorf("event log required")
	}
	if p.Contract == nil {
		return nil, fmt.Errorf("settlement contract required")
	}
	if p.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if p.Relay == nil {
		p.Relay = events.NopPublisher{}
	}
	return &Node{
		store:    p.Store,
		eventLog: p.EventLog,
		relay:    p.Relay,
		contract: p.Contract,
		log:      p.Logger,
		metrics:  p.Metrics,
	}, nil
}

// CreateSettlement submits a creation invocation.
func (n *Node) CreateSettlement(ctx context.Context, caller string, in settlement.CreateInput) error {
	return n.invoke(ctx, OpCreateSettlement, caller, func(ctx context.Context, stub ledger.Stub) error {
		return n.contract.CreateSettlement(ctx, stub, in)
	})
}

// GetSettlement submits a read invocation.
func (n *Node) GetSettlement(ctx context.Context, caller, settlementID string) (*settlement.Record, error) {
	var record *settlement.Record
	err := n.invoke(ctx, OpGetSettlement, caller, func(ctx context.Context, stub ledger.Stub) error {
		var err error
		record, err = n.contract.GetSettlement(ctx, stub, settlementID)
		return err
	})
	return record, err
}

// SettlementExists submits an existence check.
func (n *Node) SettlementExists(ctx context.Context, caller, settlementID string) (bool, error) {
	var exists bool
	err := n.invoke(ctx, OpSettlementExists, caller, func(ctx context.Context, stub ledger.Stub) error {
		var err error
		exists, err = n.contract.SettlementExists(ctx, stub, settlementID)
		return err
	})
	return exists, err
}

// UpdateSettlementStatus submits a status transition invocation.
func (n *Node) UpdateSettlementStatus(ctx context.Context, caller, settlementID, newStatus string) error {
	return n.invoke(ctx, OpUpdateSettlementStatus, caller, func(ctx context.Context, stub ledger.Stub) error {
		return n.contract.UpdateSettlementStatus(ctx, stub, settlementID, newStatus)
	})
}

// GetAllSettlements submits a bulk read invocation.
func (n *Node) GetAllSettlements(ctx context.Context, caller string) ([]settlement.Record, error) {
	var records []settlement.Record
	err := n.invoke(ctx, OpGetAllSettlements, caller, func(ctx context.Context, stub ledger.Stub) error {
		var err error
		records, err = n.contract.GetAllSettlements(ctx, stub)
		return err
	})
	return records, err
}

func (n *Node) invoke(ctx context.Context, op, caller string, fn func(context.Context, ledger.Stub) error) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	txID := uuid.NewString()
	// The sequencing timestamp is fixed once, before execution; contract
	// code only ever observes it through the stub.
	ts := time.Now().UTC().Truncate(time.Millisecond)
	txctx := ledger.NewTxContext(n.store, txID, caller, ts)

	lctx := n.log.WithFields(ctx, map[string]any{
		"tx_id":     txID,
		"operation": op,
		"caller":    caller,
	})

	start := time.Now()
	err := fn(lctx, txctx)
	n.metrics.ObserveDuration(op, time.Since(start))

	if err != nil {
		code := string(pkgerrors.CodeOf(err))
		n.metrics.IncFailure(op, code)
		n.log.Warn(n.log.WithField(lctx, "code", code), "invocation discarded")
		return err
	}

	writes := txctx.WriteSet()
	if err := n.store.Apply(lctx, writes); err != nil {
		n.metrics.IncFailure(op, string(pkgerrors.CodePersistence))
		n.log.Error(lctx, "write set commit failed", err)
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, fmt.Sprintf("Ledger commit failed: %v", err))
	}

	n.recordEvents(lctx, txID, ts, txctx.Events())
	n.metrics.IncSuccess(op)

	if len(writes) > 0 || len(txctx.Events()) > 0 {
		n.log.Info(lctx, "invocation committed")
	} else {
		n.log.Debug(lctx, "read-only invocation completed")
	}
	return nil
}

// recordEvents persists and relays the committed event set. The invocation
// itself already committed; failures here are logged, not propagated.
func (n *Node) recordEvents(ctx context.Context, txID string, ts time.Time, emitted []ledger.Event) {
	if len(emitted) == 0 {
		return
	}

	rows := make([]state.LedgerEvent, 0, len(emitted))
	for i, event := range emitted {
		rows = append(rows, state.LedgerEvent{
			ID:       uuid.New(),
			TxID:     txID,
			Name:     event.Name,
			Payload:  event.Payload,
			Sequence: i,
		})
	}
	if err := n.eventLog.Append(ctx, rows); err != nil {
		n.log.Error(ctx, "appending committed events", err)
	}

	for _, row := range rows {
		env := events.Envelope{
			Version:    events.EnvelopeVersion,
			EventID:    row.ID.String(),
			TxID:       txID,
			Name:       row.Name,
			OccurredAt: ts,
			Payload:    row.Payload,
		}
		if err := n.relay.Publish(ctx, env); err != nil {
			n.log.Error(n.log.WithField(ctx, "event", row.Name), "relaying committed event", err)
		}
	}
}
