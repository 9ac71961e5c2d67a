// Package cascade propagates deletions and visibility changes across users,
// recycling entries and analytics summaries.
package cascade

import (
	"context"
	"fmt"

	"github.com/angelmondragon/ecotech-backend/pkg/db"
	"github.com/angelmondragon/ecotech-backend/pkg/db/models"
	"github.com/angelmondragon/ecotech-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ecotech-backend/pkg/errors"
	"github.com/angelmondragon/ecotech-backend/pkg/logger"
	"github.com/angelmondragon/ecotech-backend/pkg/visibility"
	"gorm.io/gorm"
)

// Step names reported in StoreFailure details.
const (
	StepDeleteAnalytics = "delete_analytics"
	StepDetachEntries   = "detach_entries"
	StepDeleteUser      = "delete_user"
	StepHideHistory     = "hide_history"
)

type usersStore interface {
	Exists(ctx context.Context, uid string) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, uid string) (int64, error)
}

type entriesStore interface {
	FindByID(ctx context.Context, id string) (*models.RecyclingEntry, error)
	SetVisibility(ctx context.Context, id string, state enums.EntryVisibility) (int64, error)
	HideByOwner(ctx context.Context, tx *gorm.DB, uid string) (int64, error)
	DetachOwner(ctx context.Context, tx *gorm.DB, uid string) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type analyticsStore interface {
	Delete(ctx context.Context, tx *gorm.DB, uid string) (int64, error)
}

type locationsStore interface {
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Params wires the maintainer.
type Params struct {
	Users     usersStore
	Entries   entriesStore
	Analytics analyticsStore
	Locations locationsStore
	DB        txRunner
	Logger    *logger.Logger
}

// Service is the cascade surface consumed by the HTTP layer.
type Service interface {
	RemoveUser(ctx context.Context, uid string) (*RemoveUserResult, error)
	HideHistory(ctx context.Context, uid string) (*HideHistoryResult, error)
	HideEntry(ctx context.Context, id string) (*models.RecyclingEntry, error)
	RestoreEntry(ctx context.Context, id string) (*models.RecyclingEntry, error)
	PurgeEntry(ctx context.Context, id string) error
	PurgeLocation(ctx context.Context, id string) error
}

var _ Service = (*Maintainer)(nil)

// Maintainer runs the multi-record side effects of removals.
type Maintainer struct {
	users     usersStore
	entries   entriesStore
	analytics analyticsStore
	locations locationsStore
	db        txRunner
	logg      *logger.Logger
}

// RemoveUserResult reports how many entries lost their owner.
type RemoveUserResult struct {
	UID             string `json:"uid"`
	DetachedEntries int64  `json:"eletronicosDesvinculados"`
}

// HideHistoryResult reports how many entries were hidden.
type HideHistoryResult struct {
	UID           string `json:"uid"`
	HiddenEntries int64  `json:"eletronicosOcultados"`
}

// NewMaintainer validates dependencies and builds a Maintainer.
func NewMaintainer(params Params) (*Maintainer, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if params.Entries == nil {
		return nil, fmt.Errorf("entries repository required")
	}
	if params.Analytics == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	if params.Locations == nil {
		return nil, fmt.Errorf("locations repository required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Maintainer{
		users:     params.Users,
		entries:   params.Entries,
		analytics: params.Analytics,
		locations: params.Locations,
		db:        params.DB,
		logg:      params.Logger,
	}, nil
}

// RemoveUser deletes the user's analytics, detaches every owned entry and
// deletes the user, in that order, inside one transaction. Entries keep all
// other fields.
func (m *Maintainer) RemoveUser(ctx context.Context, uid string) (*RemoveUserResult, error) {
	if err := m.ensureUser(ctx, uid); err != nil {
		return nil, err
	}

	result := &RemoveUserResult{UID: uid}
	err := m.db.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := m.analytics.Delete(ctx, tx, uid); err != nil {
			return pkgerrors.Store(err, StepDeleteAnalytics)
		}
		detached, err := m.entries.DetachOwner(ctx, tx, uid)
		if err != nil {
			return pkgerrors.Store(err, StepDetachEntries)
		}
		result.DetachedEntries = detached
		if _, err := m.users.Delete(ctx, tx, uid); err != nil {
			return pkgerrors.Store(err, StepDeleteUser)
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) == nil {
			err = pkgerrors.Store(err, "commit")
		}
		return nil, err
	}

	logCtx := m.logg.WithFields(m.logg.WithUID(ctx, uid), map[string]any{"detached_entries": result.DetachedEntries})
	m.logg.Info(logCtx, "user removed")
	return result, nil
}

// HideHistory hides every entry owned by uid in one grouped write. Running it
// again on an already hidden history changes nothing.
func (m *Maintainer) HideHistory(ctx context.Context, uid string) (*HideHistoryResult, error) {
	if err := m.ensureUser(ctx, uid); err != nil {
		return nil, err
	}

	result := &HideHistoryResult{UID: uid}
	err := m.db.WithTx(ctx, func(tx *gorm.DB) error {
		hidden, err := m.entries.HideByOwner(ctx, tx, uid)
		if err != nil {
			return err
		}
		result.HiddenEntries = hidden
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Store(err, StepHideHistory)
	}
	return result, nil
}

// HideEntry soft-deletes one entry. It stays readable by id.
func (m *Maintainer) HideEntry(ctx context.Context, id string) (*models.RecyclingEntry, error) {
	return m.transition(ctx, id, enums.EntryVisibilityHidden)
}

// RestoreEntry makes a hidden entry visible again.
func (m *Maintainer) RestoreEntry(ctx context.Context, id string) (*models.RecyclingEntry, error) {
	return m.transition(ctx, id, enums.EntryVisibilityActive)
}

// PurgeEntry hard-deletes one entry.
func (m *Maintainer) PurgeEntry(ctx context.Context, id string) error {
	entry, err := m.loadEntry(ctx, id)
	if err != nil {
		return err
	}
	if err := visibility.EnsureTransition(entry.Visibility, enums.EntryVisibilityPurged); err != nil {
		return err
	}
	if _, err := m.entries.Delete(ctx, id); err != nil {
		return pkgerrors.Store(err, "delete entry")
	}
	return nil
}

// PurgeLocation hard-deletes one location. Entries that reference it keep the
// now dangling id.
func (m *Maintainer) PurgeLocation(ctx context.Context, id string) error {
	ok, err := m.locations.Exists(ctx, id)
	if err != nil {
		return pkgerrors.Store(err, "load location")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
	}
	if _, err := m.locations.Delete(ctx, id); err != nil {
		return pkgerrors.Store(err, "delete location")
	}
	m.logg.Info(m.logg.WithLocationID(ctx, id), "location purged")
	return nil
}

func (m *Maintainer) transition(ctx context.Context, id string, to enums.EntryVisibility) (*models.RecyclingEntry, error) {
	entry, err := m.loadEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := visibility.EnsureTransition(entry.Visibility, to); err != nil {
		return nil, err
	}
	if entry.Visibility != to {
		if _, err := m.entries.SetVisibility(ctx, id, to); err != nil {
			return nil, pkgerrors.Store(err, "update entry visibility")
		}
		entry.Visibility = to
	}
	return entry, nil
}

func (m *Maintainer) loadEntry(ctx context.Context, id string) (*models.RecyclingEntry, error) {
	entry, err := m.entries.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "entry not found")
		}
		return nil, pkgerrors.Store(err, "load entry")
	}
	return entry, nil
}

func (m *Maintainer) ensureUser(ctx context.Context, uid string) error {
	ok, err := m.users.Exists(ctx, uid)
	if err != nil {
		return pkgerrors.Store(err, "load user")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return nil
}
