// Package gateway exposes the settlement ledger node over HTTP. It is a thin
// edge: identity comes from a header, bodies map one-to-one onto invocation
// inputs, and contract error codes map onto HTTP status at the boundary.
package gateway

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clearlane/settleledger/pkg/logger"

	pkgerrors "github.com/clearlane/settleledger/pkg/errors"
)

// Pinger reports backing-store health for readiness checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter builds the HTTP handler for one node.
func NewRouter(logg *logger.Logger, node Ledger, dbP Pinger, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(
		recoverer(logg),
		requestID(logg),
		logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", func(w http.ResponseWriter, _ *http.Request) {
			WriteSuccess(w, map[string]string{"status": "live"})
		})
		r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
			if dbP != nil {
				if err := dbP.Ping(r.Context()); err != nil {
					WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "world state unreachable"))
					return
				}
			}
			WriteSuccess(w, map[string]string{"status": "ready"})
		})
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/settlements", func(r chi.Router) {
		r.Post("/", createSettlement(node, logg))
		r.Get("/", listSettlements(node, logg))
		r.Get("/{settlementID}", getSettlement(node, logg))
		r.Get("/{settlementID}/exists", settlementExists(node, logg))
		r.Post("/{settlementID}/status", updateSettlementStatus(node, logg))
	})

	return r
}
