package controllers

import (
	"net/http"

	"github.com/ingenio-organico-app/ingenio-organico-app/api/responses"
	"github.com/ingenio-organico-app/ingenio-organico-app/api/validators"
	"github.com/ingenio-organico-app/ingenio-organico-app/internal/adminauth"
	pkgerrors "github.com/ingenio-organico-app/ingenio-organico-app/pkg/errors"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/logger"
)

// AdminLogin exchanges the panel password for a bearer token.
func AdminLogin(svc adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload adminauth.LoginInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Login(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}
