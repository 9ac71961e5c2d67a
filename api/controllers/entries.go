package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/ecotech-backend/api/responses"
	"github.com/angelmondragon/ecotech-backend/api/validators"
	"github.com/angelmondragon/ecotech-backend/internal/cascade"
	"github.com/angelmondragon/ecotech-backend/internal/entries"
	"github.com/angelmondragon/ecotech-backend/pkg/logger"
	"github.com/angelmondragon/ecotech-backend/pkg/pagination"
)

// Presence of every field is checked by the reference guard so the error can
// list all missing fields at once.
type entryCreateRequest struct {
	UID        string  `json:"uid"`
	Category   string  `json:"categoria" validate:"max=80"`
	Quantity   int     `json:"quantidade"`
	LocationID string  `json:"localDescarte"`
	Points     float64 `json:"pontos"`
}

func (r entryCreateRequest) toInput() entries.CreateEntryInput {
	return entries.CreateEntryInput{
		UID:        r.UID,
		Category:   r.Category,
		Quantity:   r.Quantity,
		LocationID: r.LocationID,
		Points:     r.Points,
	}
}

// localDescarte is accepted so clients can echo a full entry back; it is
// never applied.
type entryUpdateRequest struct {
	UID        *string  `json:"uid,omitempty"`
	Category   *string  `json:"categoria,omitempty" validate:"omitempty,max=80"`
	Quantity   *int     `json:"quantidade,omitempty"`
	Points     *float64 `json:"pontos,omitempty"`
	Show       *bool    `json:"show,omitempty"`
	LocationID *string  `json:"localDescarte,omitempty"`
}

func (r entryUpdateRequest) toInput() entries.UpdateEntryInput {
	return entries.UpdateEntryInput{
		UID:        r.UID,
		Category:   r.Category,
		Quantity:   r.Quantity,
		Points:     r.Points,
		Show:       r.Show,
		LocationID: r.LocationID,
	}
}

// EntryList returns every entry, or a single page when limit or cursor is
// present in the query.
func EntryList(svc entries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Has("limit") || query.Has("cursor") {
			limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			page, err := svc.ListPage(r.Context(), pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(query.Get("cursor")),
			})
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, page)
			return
		}

		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func EntryCreate(svc entries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req entryCreateRequest
		if err := validators.DecodeJSONBody(w, r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entry, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

func EntryGet(svc entries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}

func EntryUpdate(svc entries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req entryUpdateRequest
		if err := validators.DecodeJSONBody(w, r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entry, err := svc.Update(r.Context(), chi.URLParam(r, "id"), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}

func EntryListByOwner(svc entries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListByOwner(r.Context(), chi.URLParam(r, "uid"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func EntryListVisibleByOwner(svc entries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListVisibleByOwner(r.Context(), chi.URLParam(r, "uid"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func EntryHide(svc cascade.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, err := svc.HideEntry(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries.FromModel(entry))
	}
}

func EntryRestore(svc cascade.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, err := svc.RestoreEntry(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries.FromModel(entry))
	}
}

// EntryPurge hard-deletes one entry.
func EntryPurge(svc cascade.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := svc.PurgeEntry(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"id": id})
	}
}

// EntryHideHistory hides every entry the user owns.
func EntryHideHistory(svc cascade.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := chi.URLParam(r, "uid")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithUID(ctx, uid)
		}
		result, err := svc.HideHistory(ctx, uid)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
