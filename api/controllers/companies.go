package controllers

import (
	"net/http"

	"github.com/partsdesk/partsdesk-backend/api/responses"
	"github.com/partsdesk/partsdesk-backend/api/validators"
	"github.com/partsdesk/partsdesk-backend/internal/companies"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
)

// CompanyCreate returns the existing company when the name is already
// known, otherwise creates it.
func CompanyCreate(svc companies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "company service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body companies.CreateCompanyInput
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

// CompanySearch returns companies matching the query string.
func CompanySearch(svc companies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "company service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 10, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Search(r.Context(), validators.SanitizeString(r.URL.Query().Get("q"), 255), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CompanyListAll returns every company for dropdown population.
func CompanyListAll(svc companies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "company service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
