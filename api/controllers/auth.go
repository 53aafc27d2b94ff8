package controllers

import (
	"net/http"

	"github.com/visionhut/visionhut-backend/api/responses"
	"github.com/visionhut/visionhut-backend/api/validators"
	"github.com/visionhut/visionhut-backend/internal/staff"
	pkgerrors "github.com/visionhut/visionhut-backend/pkg/errors"
	"github.com/visionhut/visionhut-backend/pkg/logger"
)

// AuthLogin wires the staff login endpoint into the HTTP layer.
func AuthLogin(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body staff.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
