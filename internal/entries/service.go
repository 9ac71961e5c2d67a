package entries

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/ecotech-backend/pkg/db"
	"github.com/angelmondragon/ecotech-backend/pkg/db/models"
	"github.com/angelmondragon/ecotech-backend/pkg/enums"
	"github.com/angelmondragon/ecotech-backend/pkg/pagination"
	pkgerrors "github.com/angelmondragon/ecotech-backend/pkg/errors"
	"github.com/angelmondragon/ecotech-backend/pkg/visibility"
	"github.com/google/uuid"
)

type entriesRepository interface {
	Create(ctx context.Context, entry *models.RecyclingEntry) error
	FindByID(ctx context.Context, id string) (*models.RecyclingEntry, error)
	List(ctx context.Context) ([]models.RecyclingEntry, error)
	ListPage(ctx context.Context, limit int, after *pagination.Cursor) ([]models.RecyclingEntry, error)
	ListByOwner(ctx context.Context, uid string) ([]models.RecyclingEntry, error)
	ListVisibleByOwner(ctx context.Context, uid string) ([]models.RecyclingEntry, error)
	Update(ctx context.Context, id string, columns map[string]any) (int64, error)
}

type referenceGuard interface {
	ValidateCreate(ctx context.Context, input CreateEntryInput) error
	SanitizeUpdate(ctx context.Context, patch UpdateEntryInput) (UpdateEntryInput, error)
}

// Service exposes recycling entry operations. Visibility changes and purges
// live in the cascade maintainer.
type Service interface {
	Create(ctx context.Context, input CreateEntryInput) (*EntryDTO, error)
	Get(ctx context.Context, id string) (*EntryDTO, error)
	List(ctx context.Context) ([]EntryDTO, error)
	ListPage(ctx context.Context, params pagination.Params) (*EntryPage, error)
	ListByOwner(ctx context.Context, uid string) ([]EntryDTO, error)
	ListVisibleByOwner(ctx context.Context, uid string) ([]EntryDTO, error)
	Update(ctx context.Context, id string, patch UpdateEntryInput) (*EntryDTO, error)
}

type service struct {
	repo  entriesRepository
	guard referenceGuard
	now   func() time.Time
	newID func() string
}

// NewService builds an entries service.
func NewService(repo entriesRepository, guard referenceGuard) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("entries repository required")
	}
	if guard == nil {
		return nil, fmt.Errorf("reference guard required")
	}
	return &service{repo: repo, guard: guard, now: time.Now, newID: uuid.NewString}, nil
}

func (s *service) Create(ctx context.Context, input CreateEntryInput) (*EntryDTO, error) {
	input.UID = strings.TrimSpace(input.UID)
	input.Category = strings.TrimSpace(input.Category)
	input.LocationID = strings.TrimSpace(input.LocationID)
	if err := s.guard.ValidateCreate(ctx, input); err != nil {
		return nil, err
	}

	owner := input.UID
	entry := &models.RecyclingEntry{
		ID:         s.newID(),
		OwnerUID:   &owner,
		Category:   input.Category,
		Quantity:   input.Quantity,
		LocationID: input.LocationID,
		Points:     input.Points,
		Visibility: enums.EntryVisibilityActive,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, pkgerrors.Store(err, "create entry")
	}
	return FromModel(entry), nil
}

func (s *service) Get(ctx context.Context, id string) (*EntryDTO, error) {
	entry, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(entry), nil
}

func (s *service) List(ctx context.Context) ([]EntryDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Store(err, "list entries")
	}
	return fromModels(rows), nil
}

// ListPage walks every entry in creation order, one page at a time.
func (s *service) ListPage(ctx context.Context, params pagination.Params) (*EntryPage, error) {
	after, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor").
			WithDetails(map[string]any{"field": "cursor"})
	}
	rows, err := s.repo.ListPage(ctx, pagination.LimitWithBuffer(params.Limit), after)
	if err != nil {
		return nil, pkgerrors.Store(err, "list entries")
	}

	rows, next := pagination.Page(rows, params.Limit, func(e models.RecyclingEntry) pagination.Cursor {
		return pagination.Cursor{CreatedAt: e.CreatedAt, ID: e.ID}
	})
	page := &EntryPage{Items: fromModels(rows)}
	if next != nil {
		page.NextCursor = pagination.EncodeCursor(*next)
	}
	return page, nil
}

func (s *service) ListByOwner(ctx context.Context, uid string) ([]EntryDTO, error) {
	rows, err := s.repo.ListByOwner(ctx, uid)
	if err != nil {
		return nil, pkgerrors.Store(err, "list entries by owner")
	}
	return fromModels(rows), nil
}

func (s *service) ListVisibleByOwner(ctx context.Context, uid string) ([]EntryDTO, error) {
	rows, err := s.repo.ListVisibleByOwner(ctx, uid)
	if err != nil {
		return nil, pkgerrors.Store(err, "list visible entries by owner")
	}
	return fromModels(rows), nil
}

// Update applies a sanitized patch. A localDescarte in the patch is dropped
// without error so the stored location never changes.
func (s *service) Update(ctx context.Context, id string, patch UpdateEntryInput) (*EntryDTO, error) {
	existing, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	sanitized, err := s.guard.SanitizeUpdate(ctx, patch)
	if err != nil {
		return nil, err
	}
	if sanitized.Show != nil {
		if err := visibility.EnsureTransition(existing.Visibility, enums.EntryVisibilityFromShow(*sanitized.Show)); err != nil {
			return nil, err
		}
	}

	if !sanitized.isEmpty() {
		if _, err := s.repo.Update(ctx, id, sanitized.columns()); err != nil {
			return nil, pkgerrors.Store(err, "update entry")
		}
	}
	return s.Get(ctx, id)
}

func (s *service) load(ctx context.Context, id string) (*models.RecyclingEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "entry not found")
		}
		return nil, pkgerrors.Store(err, "load entry")
	}
	return entry, nil
}
