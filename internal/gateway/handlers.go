package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clearlane/settleledger/internal/settlement"
	"github.com/clearlane/settleledger/pkg/logger"

	pkgerrors "github.com/clearlane/settleledger/pkg/errors"
)

// Ledger is the invocation surface the gateway exposes over HTTP.
type Ledger interface {
	CreateSettlement(ctx context.Context, caller string, in settlement.CreateInput) error
	GetSettlement(ctx context.Context, caller, settlementID string) (*settlement.Record, error)
	SettlementExists(ctx context.Context, caller, settlementID string) (bool, error)
	UpdateSettlementStatus(ctx context.Context, caller, settlementID, newStatus string) error
	GetAllSettlements(ctx context.Context, caller string) ([]settlement.Record, error)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func decodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Invalid request body")
	}
	return nil
}

func createSettlement(node Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload settlement.CreateInput
		if err := decodeJSONBody(r, &payload); err != nil {
			WriteError(r.Context(), logg, w, err)
			return
		}

		if err := node.CreateSettlement(r.Context(), callerIdentity(r), payload); err != nil {
			WriteError(r.Context(), logg, w, err)
			return
		}

		WriteSuccessStatus(w, http.StatusCreated, map[string]string{
			"settlementId": payload.SettlementID,
		})
	}
}

func getSettlement(node Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settlementID := chi.URLParam(r, "settlementID")
		record, err := node.GetSettlement(r.Context(), callerIdentity(r), settlementID)
		if err != nil {
			WriteError(r.Context(), logg, w, err)
			return
		}
		WriteSuccess(w, record)
	}
}

func settlementExists(node Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settlementID := chi.URLParam(r, "settlementID")
		exists, err := node.SettlementExists(r.Context(), callerIdentity(r), settlementID)
		if err != nil {
			WriteError(r.Context(), logg, w, err)
			return
		}
		WriteSuccess(w, map[string]bool{"exists": exists})
	}
}

func updateSettlementStatus(node Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settlementID := chi.URLParam(r, "settlementID")

		var payload updateStatusRequest
		if err := decodeJSONBody(r, &payload); err != nil {
			WriteError(r.Context(), logg, w, err)
			return
		}

		if err := node.UpdateSettlementStatus(r.Context(), callerIdentity(r), settlementID, payload.Status); err != nil {
			WriteError(r.Context(), logg, w, err)
			return
		}

		WriteSuccess(w, map[string]string{
			"settlementId": settlementID,
			"status":       payload.Status,
		})
	}
}

func listSettlements(node Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := node.GetAllSettlements(r.Context(), callerIdentity(r))
		if err != nil {
			WriteError(r.Context(), logg, w, err)
			return
		}
		if records == nil {
			records = []settlement.Record{}
		}
		WriteSuccess(w, records)
	}
}
