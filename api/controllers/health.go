package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/ingenio-organico-app/ingenio-organico-app/api/responses"
	pkgerrors "github.com/ingenio-organico-app/ingenio-organico-app/pkg/errors"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/logger"
)

// Pinger is any dependency that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every registered dependency and reports the first window
// of failures as one combined error.
func HealthReady(logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var combined error
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				combined = multierr.Append(combined, pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unreachable"))
			}
		}

		if combined != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "dependencies unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
