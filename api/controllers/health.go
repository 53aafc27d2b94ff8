package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/visionhut/visionhut-backend/api/responses"
	"github.com/visionhut/visionhut-backend/pkg/config"
	pkgerrors "github.com/visionhut/visionhut-backend/pkg/errors"
	"github.com/visionhut/visionhut-backend/pkg/logger"
)

const readinessTimeout = 3 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-VisionHut-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every wired dependency answers a ping.
// Nil pingers are skipped so the endpoint works in partial deployments.
func HealthReady(cfg *config.Config, logg *logger.Logger, database, cache, warehouse pinger) http.HandlerFunc {
	checks := []struct {
		name string
		dep  pinger
	}{
		{"database", database},
		{"redis", cache},
		{"bigquery", warehouse},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-VisionHut-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var errs []error
		for _, check := range checks {
			if check.dep == nil {
				continue
			}
			if err := check.dep.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", check.name, err))
			}
		}
		if combined := multierr.Combine(errs...); combined != nil {
			wrapped := pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "dependency unavailable")
			responses.WriteError(r.Context(), logg, w, wrapped)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
