package controllers

import (
	"net/http"
	"strings"

	"github.com/partsdesk/partsdesk-backend/api/responses"
	"github.com/partsdesk/partsdesk-backend/api/validators"
	"github.com/partsdesk/partsdesk-backend/internal/responsibles"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
)

// ResponsiblePersonList returns assignable people. active_only defaults
// to true so dropdowns never offer deactivated names.
func ResponsiblePersonList(svc responsibles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "responsible person service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		activeOnly := true
		if raw := strings.TrimSpace(r.URL.Query().Get("active_only")); raw != "" {
			activeOnly = raw != "false"
		}
		search := strings.TrimSpace(r.URL.Query().Get("search"))

		result, err := svc.List(r.Context(), activeOnly, search)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ResponsiblePersonCreate registers a new assignable person.
func ResponsiblePersonCreate(svc responsibles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "responsible person service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body responsibles.CreatePersonInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// ResponsiblePersonUpdate edits a person's contact details or active flag.
func ResponsiblePersonUpdate(svc responsibles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "responsible person service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		personID, err := parseUintParam(r, "personId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body responsibles.UpdatePersonInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Update(r.Context(), personID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ResponsiblePersonDeactivate soft-deletes a person. Their name stays on
// historical actions.
func ResponsiblePersonDeactivate(svc responsibles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "responsible person service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		personID, err := parseUintParam(r, "personId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Deactivate(r.Context(), personID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
