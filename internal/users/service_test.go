package users

import (
	"context"
	"testing"

	"github.com/angelmondragon/ecotech-backend/internal/analytics"
	"github.com/angelmondragon/ecotech-backend/internal/repo/repotest"
	pkgerrors "github.com/angelmondragon/ecotech-backend/pkg/errors"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, *Repository, *analytics.Repository) {
	t.Helper()
	client := repotest.Client(t)
	usersRepo := NewRepository(client.DB())
	analyticsRepo := analytics.NewRepository(client.DB())
	svc, err := NewService(usersRepo, analyticsRepo, client)
	require.NoError(t, err)
	return svc, usersRepo, analyticsRepo
}

func TestCreateStoresUserAndZeroedAnalytics(t *testing.T) {
	ctx := context.Background()
	svc, _, analyticsRepo := newTestService(t)

	surname := "Silva"
	user, err := svc.Create(ctx, CreateUserInput{UID: "u1", Name: " Ana ", Surname: &surname, Email: "ana@example.com"})
	require.NoError(t, err)
	require.Equal(t, "u1", user.UID)
	require.Equal(t, "Ana", user.Name)
	require.Equal(t, &surname, user.Surname)

	summary, err := analyticsRepo.FindByUID(ctx, "u1")
	require.NoError(t, err)
	require.Zero(t, summary.Points)
	require.Zero(t, summary.RecycledElectronics)
	require.False(t, summary.LastUpdated.IsZero())
}

func TestCreateGeneratesUID(t *testing.T) {
	svc, _, _ := newTestService(t)

	user, err := svc.Create(context.Background(), CreateUserInput{Name: "Bia", Email: "bia@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, user.UID)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, usersRepo, _ := newTestService(t)

	cases := map[string]CreateUserInput{
		"missing name":  {Email: "x@example.com"},
		"missing email": {Name: "X"},
		"slash in uid":  {UID: "a/b", Name: "X", Email: "x@example.com"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, input)
			require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "got %v", err)
		})
	}

	all, err := usersRepo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestCreateDuplicateIsConflict(t *testing.T) {
	ctx := context.Background()
	svc, usersRepo, _ := newTestService(t)

	_, err := svc.Create(ctx, CreateUserInput{UID: "u1", Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateUserInput{UID: "u1", Name: "Outra", Email: "outra@example.com"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict), "got %v", err)

	stored, err := usersRepo.FindByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Ana", stored.FirstName)
}

func TestGetMissingUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "ghost")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestUpdatePatchesProfile(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	_, err := svc.Create(ctx, CreateUserInput{UID: "u1", Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	phone := "+55 11 99999-0000"
	photo := "https://cdn.example.com/ana.png"
	updated, err := svc.Update(ctx, "u1", UpdateUserInput{Phone: &phone, ProfilePhoto: &photo})
	require.NoError(t, err)
	require.Equal(t, "Ana", updated.Name)
	require.Equal(t, phone, *updated.Phone)
	require.Equal(t, photo, updated.ProfilePhoto)

	empty := "  "
	_, err = svc.Update(ctx, "u1", UpdateUserInput{Name: &empty})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Update(ctx, "ghost", UpdateUserInput{Phone: &phone})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestListOrdersByUID(t *testing.T) {
	ctx := context.Background()
	svc, usersRepo, _ := newTestService(t)
	for _, uid := range []string{"c", "a", "b"} {
		_, err := svc.Create(ctx, CreateUserInput{UID: uid, Name: uid, Email: uid + "@example.com"})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "a", list[0].UID)

	uids, err := usersRepo.ListUIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, uids)

	ok, err := usersRepo.Exists(ctx, "b")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestNewServiceValidatesDeps(t *testing.T) {
	client := repotest.Client(t)
	repo := NewRepository(client.DB())
	_, err := NewService(nil, analytics.NewRepository(client.DB()), client)
	require.Error(t, err)
	_, err = NewService(repo, nil, client)
	require.Error(t, err)
	_, err = NewService(repo, analytics.NewRepository(client.DB()), nil)
	require.Error(t, err)
}

