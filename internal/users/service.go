package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/ecotech-backend/pkg/db"
	"github.com/angelmondragon/ecotech-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/ecotech-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type usersRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	FindByID(ctx context.Context, uid string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, uid string, columns map[string]any) (int64, error)
}

type analyticsInitializer interface {
	Init(ctx context.Context, tx *gorm.DB, uid string, at time.Time) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes user operations. Removal lives in the cascade maintainer.
type Service interface {
	Create(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	Get(ctx context.Context, uid string) (*UserDTO, error)
	List(ctx context.Context) ([]UserDTO, error)
	Update(ctx context.Context, uid string, input UpdateUserInput) (*UserDTO, error)
}

type service struct {
	repo      usersRepository
	analytics analyticsInitializer
	tx        txRunner
	now       func() time.Time
}

// NewService builds a user service with the provided repositories.
func NewService(repo usersRepository, analytics analyticsInitializer, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if analytics == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	return &service{repo: repo, analytics: analytics, tx: tx, now: time.Now}, nil
}

// Create stores the user and its zeroed analytics summary in one transaction.
func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if input.Name == "" || input.Email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nome and email are required")
	}

	uid := strings.TrimSpace(input.UID)
	if uid == "" {
		uid = uuid.NewString()
	}
	if strings.Contains(uid, "/") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "uid must not contain '/'")
	}

	now := s.now().UTC()
	user := input.toModel(uid, now)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, user); err != nil {
			return err
		}
		return s.analytics.Init(ctx, tx, uid, now)
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "user already exists").WithDetails(map[string]any{"uid": uid})
		}
		return nil, pkgerrors.Store(err, "create user")
	}
	return FromModel(user), nil
}

func (s *service) Get(ctx context.Context, uid string) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Store(err, "load user")
	}
	return FromModel(user), nil
}

func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Store(err, "list users")
	}
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, uid string, input UpdateUserInput) (*UserDTO, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nome cannot be empty")
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email cannot be empty")
	}

	if _, err := s.Get(ctx, uid); err != nil {
		return nil, err
	}
	if !input.isEmpty() {
		if _, err := s.repo.Update(ctx, uid, input.columns()); err != nil {
			return nil, pkgerrors.Store(err, "update user")
		}
	}
	return s.Get(ctx, uid)
}
