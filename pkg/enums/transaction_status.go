package enums

import "fmt"

// TransactionStatus tracks the lifecycle of a transaction record. The
// transaction contract owns the transitions; this module only needs to know
// the legal values and which of them are terminal.
type TransactionStatus string

const (
	TransactionStatusInitiated  TransactionStatus = "INITIATED"
	TransactionStatusPending    TransactionStatus = "PENDING"
	TransactionStatusProcessing TransactionStatus = "PROCESSING"
	TransactionStatusSettled    TransactionStatus = "SETTLED"
	TransactionStatusFailed     TransactionStatus = "FAILED"
	TransactionStatusCancelled  TransactionStatus = "CANCELLED"
	TransactionStatusSuspended  TransactionStatus = "SUSPENDED"
)

var validTransactionStatuses = []TransactionStatus{
	TransactionStatusInitiated,
	TransactionStatusPending,
	TransactionStatusProcessing,
	TransactionStatusSettled,
	TransactionStatusFailed,
	TransactionStatusCancelled,
	TransactionStatusSuspended,
}

// String implements fmt.Stringer.
func (t TransactionStatus) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TransactionStatus.
func (t TransactionStatus) IsValid() bool {
	for _, candidate := range validTransactionStatuses {
		if candidate == t {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the transaction may no longer be mutated.
func (t TransactionStatus) IsTerminal() bool {
	switch t {
	case TransactionStatusSettled, TransactionStatusFailed, TransactionStatusCancelled:
		return true
	default:
		return false
	}
}

// ParseTransactionStatus converts raw input into a TransactionStatus.
func ParseTransactionStatus(value string) (TransactionStatus, error) {
	for _, candidate := range validTransactionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction status %q", value)
}
