// Package transaction defines the transaction entity referenced by
// settlements. The transaction contract that owns these records runs
// elsewhere on the network; this package only fixes the shared shape and the
// terminal-status rule that settlement code must respect.
package transaction

import (
	"encoding/json"
	"strings"

	"github.com/clearlane/settleledger/pkg/enums"

	pkgerrors "github.com/clearlane/settleledger/pkg/errors"
)

// Record is a value transfer awaiting or having undergone settlement.
// From and To are opaque account identifiers (IBAN, account number, entity
// tag or chain address); no format is assumed. Timestamp is epoch millis
// supplied by the ledger, never node wall clock.
type Record struct {
	TransactionID string                  `json:"transactionId"`
	From          string                  `json:"from"`
	To            string                  `json:"to"`
	Amount        int64                   `json:"amount"`
	Currency      string                  `json:"currency"`
	Timestamp     int64                   `json:"timestamp"`
	Status        enums.TransactionStatus `json:"status"`
	SettlementID  string                  `json:"settlementId"`
}

// Marshal produces the canonical stored encoding of the record.
func (r *Record) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// UnmarshalRecord decodes stored bytes back into a Record.
func UnmarshalRecord(data []byte) (*Record, error) {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// EnsureMutable rejects any mutation of a record whose status is terminal.
// Once a transaction reaches SETTLED, FAILED or CANCELLED it is immutable
// history.
func (r *Record) EnsureMutable() error {
	if r.Status.IsTerminal() {
		return pkgerrors.Newf(pkgerrors.CodeInvalidTransition, "Transaction %s is in terminal status %s and cannot be modified", r.TransactionID, r.Status)
	}
	return nil
}

// AssignSettlement sets the settlement back-reference on a still-mutable
// record.
func (r *Record) AssignSettlement(settlementID string) error {
	if strings.TrimSpace(settlementID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "settlementId is required and cannot be empty")
	}
	if err := r.EnsureMutable(); err != nil {
		return err
	}
	r.SettlementID = settlementID
	return nil
}
