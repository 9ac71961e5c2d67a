package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/ecotech-backend/api/responses"
	"github.com/angelmondragon/ecotech-backend/api/validators"
	"github.com/angelmondragon/ecotech-backend/internal/cascade"
	"github.com/angelmondragon/ecotech-backend/internal/users"
	"github.com/angelmondragon/ecotech-backend/pkg/logger"
)

type userCreateRequest struct {
	UID     string  `json:"uid,omitempty" validate:"omitempty,max=128,excludesall=/"`
	Name    string  `json:"nome" validate:"notblank,max=120"`
	Surname *string `json:"sobrenome,omitempty" validate:"omitempty,max=120"`
	Phone   *string `json:"telefone,omitempty" validate:"omitempty,max=40"`
	Email   string  `json:"email" validate:"notblank,email"`
}

func (r userCreateRequest) toInput() users.CreateUserInput {
	return users.CreateUserInput{
		UID:     validators.SanitizeString(r.UID, 128),
		Name:    validators.SanitizeString(r.Name, 120),
		Surname: validators.SanitizeOptional(r.Surname, 120),
		Phone:   validators.SanitizeOptional(r.Phone, 40),
		Email:   validators.SanitizeString(r.Email, 254),
	}
}

type userUpdateRequest struct {
	Name         *string `json:"nome,omitempty" validate:"omitempty,min=1,max=120"`
	Surname      *string `json:"sobrenome,omitempty" validate:"omitempty,max=120"`
	Phone        *string `json:"telefone,omitempty" validate:"omitempty,max=40"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	ProfilePhoto *string `json:"fotoPerfil,omitempty" validate:"omitempty,max=2048"`
}

func (r userUpdateRequest) toInput() users.UpdateUserInput {
	return users.UpdateUserInput{
		Name:         validators.SanitizeOptional(r.Name, 120),
		Surname:      validators.SanitizeOptional(r.Surname, 120),
		Phone:        validators.SanitizeOptional(r.Phone, 40),
		Email:        validators.SanitizeOptional(r.Email, 254),
		ProfilePhoto: validators.SanitizeOptional(r.ProfilePhoto, 2048),
	}
}

func UserList(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// UserCreate registers a user and seeds an empty analytics summary.
func UserCreate(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req userCreateRequest
		if err := validators.DecodeJSONBody(w, r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

func UserGet(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.Get(r.Context(), chi.URLParam(r, "uid"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

func UserUpdate(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req userUpdateRequest
		if err := validators.DecodeJSONBody(w, r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := svc.Update(r.Context(), chi.URLParam(r, "uid"), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// UserDelete removes the user, its analytics and its ownership of entries.
func UserDelete(svc cascade.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := chi.URLParam(r, "uid")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithUID(ctx, uid)
		}
		result, err := svc.RemoveUser(ctx, uid)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
