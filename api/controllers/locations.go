package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/ecotech-backend/api/responses"
	"github.com/angelmondragon/ecotech-backend/api/validators"
	"github.com/angelmondragon/ecotech-backend/internal/cascade"
	"github.com/angelmondragon/ecotech-backend/internal/locations"
	"github.com/angelmondragon/ecotech-backend/pkg/logger"
	"github.com/angelmondragon/ecotech-backend/pkg/types"
)

type locationCreateRequest struct {
	ID          string          `json:"id" validate:"notblank,max=128,excludesall=/"`
	Name        string          `json:"nome" validate:"notblank,max=200"`
	Site        string          `json:"site" validate:"notblank,max=2048"`
	Coordinates *types.GeoPoint `json:"coordenadas" validate:"required"`
	Address     string          `json:"endereco" validate:"notblank,max=500"`
	Image       string          `json:"imagem" validate:"notblank,max=2048"`
}

func (r locationCreateRequest) toInput() locations.CreateLocationInput {
	return locations.CreateLocationInput{
		ID:          validators.SanitizeString(r.ID, 128),
		Name:        validators.SanitizeString(r.Name, 200),
		Site:        validators.SanitizeString(r.Site, 2048),
		Coordinates: *r.Coordinates,
		Address:     validators.SanitizeString(r.Address, 500),
		Image:       validators.SanitizeString(r.Image, 2048),
	}
}

// Bin count, dates and id have dedicated operations and are not accepted here.
type locationUpdateRequest struct {
	Name        *string         `json:"nome,omitempty" validate:"omitempty,min=1,max=200"`
	Site        *string         `json:"site,omitempty" validate:"omitempty,min=1,max=2048"`
	Coordinates *types.GeoPoint `json:"coordenadas,omitempty"`
	Address     *string         `json:"endereco,omitempty" validate:"omitempty,min=1,max=500"`
	Image       *string         `json:"imagem,omitempty" validate:"omitempty,min=1,max=2048"`
}

func (r locationUpdateRequest) toInput() locations.UpdateLocationInput {
	return locations.UpdateLocationInput{
		Name:        validators.SanitizeOptional(r.Name, 200),
		Site:        validators.SanitizeOptional(r.Site, 2048),
		Coordinates: r.Coordinates,
		Address:     validators.SanitizeOptional(r.Address, 500),
		Image:       validators.SanitizeOptional(r.Image, 2048),
	}
}

func LocationList(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// LocationCreate stores a new location with one bin installed.
func LocationCreate(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req locationCreateRequest
		if err := validators.DecodeJSONBody(w, r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		location, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, location)
	}
}

func LocationGet(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		location, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, location)
	}
}

func LocationUpdate(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req locationUpdateRequest
		if err := validators.DecodeJSONBody(w, r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		location, err := svc.Update(r.Context(), chi.URLParam(r, "id"), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, location)
	}
}

func LocationDelete(svc cascade.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := svc.PurgeLocation(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"id": id})
	}
}

// LocationInstallBin adds one bin and stamps the installation time.
func LocationInstallBin(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "id")
		if logg != nil {
			ctx = logg.WithLocationID(ctx, id)
		}
		result, err := svc.InstallBin(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// LocationNearest answers the closest location to ?lat=&lng=.
func LocationNearest(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lat, err := validators.ParseQueryFloat(r, "lat", -90, 90)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lng, err := validators.ParseQueryFloat(r, "lng", -180, 180)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		nearest, err := svc.FindNearest(r.Context(), lat, lng)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, nearest)
	}
}
