package entries

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/angelmondragon/ecotech-backend/pkg/errors"
)

type existenceChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Guard checks cross-entity references before an entry is written.
type Guard struct {
	users     existenceChecker
	locations existenceChecker
}

// NewGuard builds a guard over the user and location stores.
func NewGuard(users, locations existenceChecker) (*Guard, error) {
	if users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if locations == nil {
		return nil, fmt.Errorf("locations repository required")
	}
	return &Guard{users: users, locations: locations}, nil
}

// ValidateCreate requires all five fields and an existing drop-off location.
func (g *Guard) ValidateCreate(ctx context.Context, input CreateEntryInput) error {
	missing := []string{}
	if strings.TrimSpace(input.UID) == "" {
		missing = append(missing, "uid")
	}
	if strings.TrimSpace(input.Category) == "" {
		missing = append(missing, "categoria")
	}
	if input.Quantity == 0 {
		missing = append(missing, "quantidade")
	}
	if strings.TrimSpace(input.LocationID) == "" {
		missing = append(missing, "localDescarte")
	}
	if input.Points == 0 {
		missing = append(missing, "pontos")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "all fields are required").
			WithDetails(map[string]any{"missing": missing})
	}
	if input.Quantity < 0 {
		return pkgerrors.InvalidField("quantidade", "must be positive")
	}
	if input.Points < 0 {
		return pkgerrors.InvalidField("pontos", "must not be negative")
	}

	ok, err := g.locations.Exists(ctx, input.LocationID)
	if err != nil {
		return pkgerrors.Store(err, "load location")
	}
	if !ok {
		return pkgerrors.MissingReference("localDescarte", "unknown_location")
	}
	return nil
}

// SanitizeUpdate drops the immutable location and checks a reassigned owner.
func (g *Guard) SanitizeUpdate(ctx context.Context, patch UpdateEntryInput) (UpdateEntryInput, error) {
	patch.LocationID = nil

	if patch.Category != nil && strings.TrimSpace(*patch.Category) == "" {
		return patch, pkgerrors.InvalidField("categoria", "must not be empty")
	}
	if patch.Quantity != nil && *patch.Quantity <= 0 {
		return patch, pkgerrors.InvalidField("quantidade", "must be positive")
	}
	if patch.Points != nil && *patch.Points < 0 {
		return patch, pkgerrors.InvalidField("pontos", "must not be negative")
	}

	if patch.UID != nil && *patch.UID != "" {
		ok, err := g.users.Exists(ctx, *patch.UID)
		if err != nil {
			return patch, pkgerrors.Store(err, "load user")
		}
		if !ok {
			return patch, pkgerrors.MissingReference("uid", "unknown_user")
		}
	}
	return patch, nil
}
