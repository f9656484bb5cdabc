package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/partsdesk/partsdesk-backend/api/middleware"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
)

func parseUintParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid path parameter").
			WithDetails(map[string]any{"field": name})
	}
	return uint(value), nil
}

// actorFrom resolves who performed a mutation for audit trails: the
// changed_by query override first, falling back to the authenticated
// user id.
func actorFrom(r *http.Request) string {
	if actor := strings.TrimSpace(r.URL.Query().Get("changed_by")); actor != "" {
		return actor
	}
	if userID := middleware.UserIDFromContext(r.Context()); userID != 0 {
		return "user:" + strconv.FormatUint(uint64(userID), 10)
	}
	return "System"
}
