package controllers

import (
	"net/http"
	"strings"

	"github.com/partsdesk/partsdesk-backend/api/responses"
	"github.com/partsdesk/partsdesk-backend/api/validators"
	"github.com/partsdesk/partsdesk-backend/internal/complaints"
	"github.com/partsdesk/partsdesk-backend/pkg/enums"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
	"github.com/partsdesk/partsdesk-backend/pkg/pagination"
)

// ComplaintCreate wires complaint intake into the HTTP layer. This is
// the endpoint the offline queue replays, so it sits behind the
// long-TTL idempotency window.
func ComplaintCreate(svc complaints.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "complaint service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body complaints.CreateComplaintInput
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

// ComplaintList returns a filtered, paginated complaint listing.
func ComplaintList(svc complaints.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "complaint service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		size, err := validators.ParseQueryInt(r, "size", pagination.DefaultSize, 1, pagination.MaxSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var filter complaints.ListFilter
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseComplaintStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "status filter"))
				return
			}
			filter.Status = &status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("issue_type")); raw != "" {
			issueType, err := enums.ParseIssueType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "issue_type filter"))
				return
			}
			filter.IssueType = &issueType
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("company_id")); raw != "" {
			companyID, err := validators.ParseQueryInt(r, "company_id", 0, 1, 1<<30)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			id := uint(companyID)
			filter.CompanyID = &id
		}

		result, err := svc.List(r.Context(), filter, pagination.Params{Page: page, Size: size})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ComplaintDetail loads one complaint with its attachments.
func ComplaintDetail(svc complaints.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "complaint service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := parseUintParam(r, "complaintId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ComplaintUpdate applies a partial edit, stamping who edited.
func ComplaintUpdate(svc complaints.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "complaint service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := parseUintParam(r, "complaintId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body complaints.UpdateComplaintInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if body.LastEditBy == nil {
			actor := actorFrom(r)
			body.LastEditBy = &actor
		}

		result, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
