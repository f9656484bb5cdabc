package controllers

import (
	"net/http"

	"github.com/partsdesk/partsdesk-backend/api/responses"
	"github.com/partsdesk/partsdesk-backend/internal/analytics"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
)

// AnalyticsRARMetrics reports returned/authorized/rejected complaint
// rates across the full dataset.
func AnalyticsRARMetrics(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.RARMetrics(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AnalyticsFailureModes returns the most frequent issue types.
func AnalyticsFailureModes(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.FailureModes(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AnalyticsTrends returns daily complaint counts for the last 30 days.
func AnalyticsTrends(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Trends(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AnalyticsResolutionTime returns the mean hours from intake to the
// first terminal status.
func AnalyticsResolutionTime(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.MeanTimeToResolution(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
