// Package health serves GET /healthz.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aanand-mishra/students-web/internal/utils/response"
)

// Pinger is the part of storage.Storage the check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Check answers 200 {"status":"ok"} when the store responds within two
// seconds, 503 with the error otherwise.
func Check(store Pinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			log.Warn("health check failed", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusServiceUnavailable, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.OK())
	}
}
