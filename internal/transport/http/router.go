// Package httptransport assembles the public HTTP surface: issuance
// endpoints, the Telegram webhook, health, and metrics.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tokengate/internal/bot"
	issuancehandler "tokengate/internal/issuance/handler"
	"tokengate/internal/platform/middleware"
)

// NewRouter wires all endpoints behind the shared middleware chain.
func NewRouter(logger *slog.Logger, issuance *issuancehandler.Handler, webhook *bot.Webhook) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))

	issuance.Register(r)
	r.Post("/telegram-webhook", webhook.ServeHTTP)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
