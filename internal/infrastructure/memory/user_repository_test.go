package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accountd/accountd/internal/domain/entity"
	"github.com/accountd/accountd/internal/infrastructure/memory"
)

func newUser(t *testing.T, email string) *entity.User {
	t.Helper()
	u, err := entity.New(entity.Params{Name: "Ann Lee", Email: email, Password: "digest"})
	require.NoError(t, err)
	return u
}

func TestCreateAssignsID(t *testing.T) {
	repo := memory.NewUserRepository()
	ctx := context.Background()

	saved, err := repo.Create(ctx, newUser(t, "ann@example.com"))
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID())

	got, err := repo.FindByID(ctx, saved.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "ann@example.com", got.Email())
}

func TestFindersReturnNilOnMiss(t *testing.T) {
	repo := memory.NewUserRepository()
	ctx := context.Background()

	got, err := repo.FindByID(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = repo.FindByEmailValidationToken(ctx, "missing-token")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestFindByEmailValidationToken(t *testing.T) {
	repo := memory.NewUserRepository()
	ctx := context.Background()

	u := newUser(t, "ann@example.com")
	token := u.RequestEmailValidationToken()
	_, err := repo.Create(ctx, u)
	require.NoError(t, err)

	got, err := repo.FindByEmailValidationToken(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, u.ID(), got.ID())
}

func TestUpdate(t *testing.T) {
	repo := memory.NewUserRepository()
	ctx := context.Background()

	u, err := repo.Create(ctx, newUser(t, "ann@example.com"))
	require.NoError(t, err)

	require.NoError(t, u.SetName("Ann Updated"))
	_, err = repo.Update(ctx, u)
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, u.ID())
	require.NoError(t, err)
	require.Equal(t, "Ann Updated", got.Name())
	require.False(t, got.UpdatedAt().Before(got.CreatedAt()))
}

func TestUpdateUnknownID(t *testing.T) {
	repo := memory.NewUserRepository()

	u := newUser(t, "ann@example.com")
	u.SetID("ghost")
	_, err := repo.Update(context.Background(), u)
	require.ErrorIs(t, err, entity.ErrUserNotFound)
}

func TestStoredRecordsAreDetached(t *testing.T) {
	repo := memory.NewUserRepository()
	ctx := context.Background()

	u, err := repo.Create(ctx, newUser(t, "ann@example.com"))
	require.NoError(t, err)

	// mutating the caller's copy must not leak into the store
	require.NoError(t, u.SetName("Mutated Locally"))

	got, err := repo.FindByID(ctx, u.ID())
	require.NoError(t, err)
	require.Equal(t, "Ann Lee", got.Name())
}

func TestFindAllAndDelete(t *testing.T) {
	repo := memory.NewUserRepository()
	ctx := context.Background()

	a, err := repo.Create(ctx, newUser(t, "a@example.com"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newUser(t, "b@example.com"))
	require.NoError(t, err)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, repo.Delete(ctx, a.ID()))

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}
