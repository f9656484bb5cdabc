package controllers

import (
	"net/http"
	"strings"

	"github.com/partsdesk/partsdesk-backend/api/responses"
	"github.com/partsdesk/partsdesk-backend/api/validators"
	"github.com/partsdesk/partsdesk-backend/internal/actions"
	"github.com/partsdesk/partsdesk-backend/pkg/enums"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
)

// ActionCreate appends a follow-up action to the complaint.
func ActionCreate(svc actions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "action service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		complaintID, err := parseUintParam(r, "complaintId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body actions.CreateActionInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), complaintID, body, actorFrom(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// ActionList returns the complaint's actions in display order.
func ActionList(svc actions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "action service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		complaintID, err := parseUintParam(r, "complaintId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var filter actions.ActionFilter
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseActionStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "status filter"))
				return
			}
			filter.Status = &status
		}
		filter.ResponsiblePerson = r.URL.Query().Get("responsible_person")
		filter.OverdueOnly = r.URL.Query().Get("overdue_only") == "true"

		result, err := svc.List(r.Context(), complaintID, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ActionMetrics summarizes the complaint's actions for the dashboard.
func ActionMetrics(svc actions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "action service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		complaintID, err := parseUintParam(r, "complaintId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Metrics(r.Context(), complaintID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ActionDetail loads one action scoped to its complaint.
func ActionDetail(svc actions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "action service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		complaintID, actionID, err := actionParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Get(r.Context(), complaintID, actionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ActionUpdate applies a partial edit with per-field audit rows.
func ActionUpdate(svc actions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "action service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		complaintID, actionID, err := actionParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body actions.UpdateActionInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Update(r.Context(), complaintID, actionID, body, actorFrom(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ActionCancel soft-deletes the action.
func ActionCancel(svc actions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "action service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		complaintID, actionID, err := actionParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Cancel(r.Context(), complaintID, actionID, actorFrom(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ActionStart moves an open action to in_progress once prerequisites
// are satisfied.
func ActionStart(svc actions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "action service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		complaintID, actionID, err := actionParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Start(r.Context(), complaintID, actionID, actorFrom(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ActionReorder moves an action to a new display position.
func ActionReorder(svc actions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "action service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		complaintID, actionID, err := actionParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		newPosition, err := validators.ParseQueryInt(r, "new_position", 0, 1, 10)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if newPosition == 0 {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "new_position query parameter is required"))
			return
		}

		result, err := svc.Reorder(r.Context(), complaintID, actionID, newPosition, actorFrom(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ActionHistoryList returns the action's audit trail.
func ActionHistoryList(svc actions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "action service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		complaintID, actionID, err := actionParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.History(r.Context(), complaintID, actionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ActionBulkUpdate applies one partial edit to several actions.
func ActionBulkUpdate(svc actions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "action service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		complaintID, err := parseUintParam(r, "complaintId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body actions.BulkUpdateInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.BulkUpdate(r.Context(), complaintID, body, actorFrom(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ActionDependencyCreate links an action to a prerequisite.
func ActionDependencyCreate(svc actions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "action service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		complaintID, actionID, err := actionParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body actions.CreateDependencyInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AddDependency(r.Context(), complaintID, actionID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// ActionDependencyList returns the action's prerequisites.
func ActionDependencyList(svc actions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "action service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		complaintID, actionID, err := actionParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListDependencies(r.Context(), complaintID, actionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func actionParams(r *http.Request) (uint, uint, error) {
	complaintID, err := parseUintParam(r, "complaintId")
	if err != nil {
		return 0, 0, err
	}
	actionID, err := parseUintParam(r, "actionId")
	if err != nil {
		return 0, 0, err
	}
	return complaintID, actionID, nil
}
