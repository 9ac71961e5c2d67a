package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/ecotech-backend/pkg/db"
	"github.com/angelmondragon/ecotech-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/ecotech-backend/pkg/errors"
	"github.com/angelmondragon/ecotech-backend/pkg/logger"
	"go.uber.org/multierr"
)

type entriesReader interface {
	ListByOwner(ctx context.Context, uid string) ([]models.RecyclingEntry, error)
	ListByLocation(ctx context.Context, locationID string) ([]models.RecyclingEntry, error)
	ListByOwnerAndLocation(ctx context.Context, uid, locationID string) ([]models.RecyclingEntry, error)
}

type usersReader interface {
	Exists(ctx context.Context, uid string) (bool, error)
	ListUIDs(ctx context.Context) ([]string, error)
}

type locationsReader interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type summaryStore interface {
	Upsert(ctx context.Context, row *models.Analytics) error
}

// Service computes recycling rollups and maintains the cached user summaries.
type Service interface {
	RefreshForUser(ctx context.Context, uid string) (*UserReport, error)
	ReportForLocation(ctx context.Context, locationID string) (*LocationReport, error)
	ReportForUserAtLocation(ctx context.Context, uid, locationID string) (*UserLocationReport, error)
	RefreshAll(ctx context.Context) (int, error)
}

// ServiceParams wires the analytics service.
type ServiceParams struct {
	Entries   entriesReader
	Users     usersReader
	Locations locationsReader
	Store     summaryStore
	Logger    *logger.Logger
}

type service struct {
	entries   entriesReader
	users     usersReader
	locations locationsReader
	store     summaryStore
	logg      *logger.Logger
	now       func() time.Time
}

// NewService builds the analytics service.
func NewService(params ServiceParams) (Service, error) {
	if params.Entries == nil {
		return nil, fmt.Errorf("entries repository required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if params.Locations == nil {
		return nil, fmt.Errorf("locations repository required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		entries:   params.Entries,
		users:     params.Users,
		locations: params.Locations,
		store:     params.Store,
		logg:      params.Logger,
		now:       time.Now,
	}, nil
}

// RefreshForUser recomputes the user's summary over all of their entries,
// hidden ones included, and persists it.
func (s *service) RefreshForUser(ctx context.Context, uid string) (*UserReport, error) {
	if err := s.ensureUser(ctx, uid); err != nil {
		return nil, err
	}

	entries, err := s.entries.ListByOwner(ctx, uid)
	if err != nil {
		return nil, pkgerrors.Store(err, "list user entries")
	}
	summary := ComputeSummary(entries)

	row := &models.Analytics{
		UID:                 uid,
		Points:              summary.Points,
		RecycledElectronics: summary.Total,
		ByCategory:          summary.ByCategory,
		LastUpdated:         s.now().UTC(),
	}
	if err := s.store.Upsert(ctx, row); err != nil {
		if db.IsForeignKeyViolation(err) {
			// user removed after the existence check
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Store(err, "persist analytics")
	}

	return &UserReport{
		UID:                 uid,
		Points:              row.Points,
		RecycledElectronics: row.RecycledElectronics,
		ByCategory:          row.ByCategory,
		LastUpdated:         row.LastUpdated,
	}, nil
}

func (s *service) ReportForLocation(ctx context.Context, locationID string) (*LocationReport, error) {
	if err := s.ensureLocation(ctx, locationID); err != nil {
		return nil, err
	}
	entries, err := s.entries.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, pkgerrors.Store(err, "list location entries")
	}
	summary := ComputeSummary(entries)
	return &LocationReport{
		LocationID:          locationID,
		RecycledElectronics: summary.Total,
		Points:              summary.Points,
		ByCategory:          summary.ByCategory,
	}, nil
}

// ReportForUserAtLocation only requires the location to exist; an unknown uid
// owns no entries there and yields an empty report.
func (s *service) ReportForUserAtLocation(ctx context.Context, uid, locationID string) (*UserLocationReport, error) {
	if err := s.ensureLocation(ctx, locationID); err != nil {
		return nil, err
	}
	entries, err := s.entries.ListByOwnerAndLocation(ctx, uid, locationID)
	if err != nil {
		return nil, pkgerrors.Store(err, "list user entries at location")
	}
	summary := ComputeSummary(entries)
	return &UserLocationReport{
		UID:                 uid,
		LocationID:          locationID,
		RecycledElectronics: summary.Total,
		Points:              summary.Points,
		ByCategory:          summary.ByCategory,
	}, nil
}

// RefreshAll refreshes every user's summary. Individual failures are
// collected and do not stop the sweep; the count of refreshed users is returned.
func (s *service) RefreshAll(ctx context.Context) (int, error) {
	uids, err := s.users.ListUIDs(ctx)
	if err != nil {
		return 0, pkgerrors.Store(err, "list users")
	}

	var (
		refreshed int
		errs      error
	)
	for _, uid := range uids {
		if ctx.Err() != nil {
			return refreshed, multierr.Append(errs, ctx.Err())
		}
		if _, err := s.RefreshForUser(ctx, uid); err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
				// removed between listing and refresh
				continue
			}
			s.logg.Warn(s.logg.WithUID(ctx, uid), "analytics refresh failed")
			errs = multierr.Append(errs, fmt.Errorf("refresh %s: %w", uid, err))
			continue
		}
		refreshed++
	}
	return refreshed, errs
}

func (s *service) ensureUser(ctx context.Context, uid string) error {
	ok, err := s.users.Exists(ctx, uid)
	if err != nil {
		return pkgerrors.Store(err, "load user")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return nil
}

func (s *service) ensureLocation(ctx context.Context, locationID string) error {
	ok, err := s.locations.Exists(ctx, locationID)
	if err != nil {
		return pkgerrors.Store(err, "load location")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
	}
	return nil
}
