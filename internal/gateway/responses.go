package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/clearlane/settleledger/pkg/logger"

	pkgerrors "github.com/clearlane/settleledger/pkg/errors"
)

// SuccessEnvelope wraps every successful response body.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the caller-facing error shape.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

// ErrorEnvelope wraps every failed response body.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// httpStatusByCode maps contract error codes to transport status. The
// contract itself never sees HTTP; the mapping lives at the edge only.
var httpStatusByCode = map[pkgerrors.Code]int{
	pkgerrors.CodeValidation:        http.StatusBadRequest,
	pkgerrors.CodeDuplicate:         http.StatusConflict,
	pkgerrors.CodeNotFound:          http.StatusNotFound,
	pkgerrors.CodeInvalidTransition: http.StatusConflict,
	pkgerrors.CodeCorruption:        http.StatusInternalServerError,
	pkgerrors.CodePersistence:       http.StatusServiceUnavailable,
	pkgerrors.CodeInternal:          http.StatusInternalServerError,
}

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, SuccessEnvelope{Data: data})
}

func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())
	msg := meta.PublicMessage
	if meta.DetailsAllowed && typed.Message() != "" {
		msg = typed.Message()
	}

	status, ok := httpStatusByCode[typed.Code()]
	if !ok {
		status = http.StatusInternalServerError
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"error_code": string(typed.Code()),
			"status":     status,
		})
		logg.Error(ctx, "request.error", err)
	}

	writeJSON(w, status, ErrorEnvelope{Error: APIError{
		Code:      string(typed.Code()),
		Message:   msg,
		Retryable: meta.Retryable,
	}})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
