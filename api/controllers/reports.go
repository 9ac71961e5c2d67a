package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/ecotech-backend/api/responses"
	"github.com/angelmondragon/ecotech-backend/internal/analytics"
	"github.com/angelmondragon/ecotech-backend/pkg/logger"
)

// ReportUser recomputes and persists the user's summary before returning it.
func ReportUser(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := svc.RefreshForUser(r.Context(), chi.URLParam(r, "uid"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func ReportLocation(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := svc.ReportForLocation(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// ReportUserAtLocation shares the {id} segment with ReportLocation; here it
// carries the user's uid.
func ReportUserAtLocation(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := svc.ReportForUserAtLocation(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "localId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
