package users

import (
	"time"

	"github.com/angelmondragon/ecotech-backend/pkg/db/models"
)

// UserDTO is the transport shape of a user.
type UserDTO struct {
	UID          string    `json:"uid"`
	Name         string    `json:"nome"`
	Surname      *string   `json:"sobrenome"`
	Phone        *string   `json:"telefone"`
	Email        string    `json:"email"`
	ProfilePhoto string    `json:"fotoPerfil"`
	CreatedAt    time.Time `json:"criadoEm"`
}

// CreateUserInput carries the fields accepted on registration. An empty UID
// asks the service to generate one.
type CreateUserInput struct {
	UID     string
	Name    string
	Surname *string
	Phone   *string
	Email   string
}

// UpdateUserInput holds the mutable profile fields; the uid is never patchable.
type UpdateUserInput struct {
	Name         *string
	Surname      *string
	Phone        *string
	Email        *string
	ProfilePhoto *string
}

func (u UpdateUserInput) isEmpty() bool {
	return u.Name == nil && u.Surname == nil && u.Phone == nil && u.Email == nil && u.ProfilePhoto == nil
}

func (u UpdateUserInput) columns() map[string]any {
	cols := map[string]any{}
	if u.Name != nil {
		cols["first_name"] = *u.Name
	}
	if u.Surname != nil {
		cols["last_name"] = *u.Surname
	}
	if u.Phone != nil {
		cols["phone"] = *u.Phone
	}
	if u.Email != nil {
		cols["email"] = *u.Email
	}
	if u.ProfilePhoto != nil {
		cols["profile_photo"] = *u.ProfilePhoto
	}
	return cols
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		UID:          u.UID,
		Name:         u.FirstName,
		Surname:      u.LastName,
		Phone:        u.Phone,
		Email:        u.Email,
		ProfilePhoto: u.ProfilePhoto,
		CreatedAt:    u.CreatedAt,
	}
}

func (c CreateUserInput) toModel(uid string, at time.Time) *models.User {
	return &models.User{
		UID:       uid,
		FirstName: c.Name,
		LastName:  c.Surname,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: at,
	}
}
