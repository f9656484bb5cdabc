package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/partsdesk/partsdesk-backend/api/responses"
	"github.com/partsdesk/partsdesk-backend/internal/settings"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
)

// SettingsGet returns every stored app setting as a flat map.
func SettingsGet(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.GetAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// SettingsPut upserts the posted key/value pairs. The body is an
// arbitrary JSON object, so it is decoded without struct validation.
func SettingsPut(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		defer io.Copy(io.Discard, r.Body)
		var values map[string]any
		if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
			wrapped := pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body")
			responses.WriteError(r.Context(), logg, w, wrapped)
			return
		}

		if err := svc.PutAll(r.Context(), values, actorFrom(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.GetAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
