package settlement

import (
	"strings"

	"github.com/clearlane/settleledger/pkg/enums"
	pkgerrors "github.com/clearlane/settleledger/pkg/errors"
)

// maxAmountMinorUnits is the exclusive upper bound on settlement amounts.
const maxAmountMinorUnits = int64(1_000_000_000)

// validateCreate runs the pure input checks for settlement creation. Checks
// short-circuit at the first failure in a fixed order: settlementId,
// transactionId, participants, amount, currency. The normalized currency is
// returned on success.
func validateCreate(settlementID, transactionID string, participants []string, amount int64, currency string) (enums.Currency, error) {
	if strings.TrimSpace(settlementID) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "settlementId is required and cannot be empty")
	}
	if strings.TrimSpace(transactionID) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "transactionId is required and cannot be empty")
	}
	if len(participants) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Participants array is required and cannot be empty")
	}
	for _, participant := range participants {
		if strings.TrimSpace(participant) == "" {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "All participant identifiers must be non-empty strings")
		}
	}
	if amount <= 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Settlement amount must be a positive number")
	}
	if amount >= maxAmountMinorUnits {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Settlement amount exceeds maximum allowed limit")
	}
	normalized, err := enums.ParseCurrency(currency)
	if err != nil {
		return "", pkgerrors.Newf(pkgerrors.CodeValidation, "Currency %s is not supported", strings.ToUpper(strings.TrimSpace(currency)))
	}
	return normalized, nil
}

// validateSettlementID guards the read/update paths.
func validateSettlementID(settlementID string) error {
	if strings.TrimSpace(settlementID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "settlementId is required and cannot be empty")
	}
	return nil
}

// validateStatusLiteral rejects unknown status values before the transition
// table is ever consulted. Status literals are exact; no case folding.
func validateStatusLiteral(value string) (enums.SettlementStatus, error) {
	if strings.TrimSpace(value) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "newStatus is required and cannot be empty")
	}
	status, err := enums.ParseSettlementStatus(value)
	if err != nil {
		return "", pkgerrors.Newf(pkgerrors.CodeValidation, "Invalid status: %s", value)
	}
	return status, nil
}
