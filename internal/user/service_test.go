// PlantDiseaseDetector | 2026
// service_test.go

package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khnychenkoav/PlantDiseaseDetector/internal/core"
)

type fakeRepository struct {
	byID    map[string]*User
	byEmail map[string]*User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
	}
}

func (f *fakeRepository) Create(_ context.Context, user *User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return core.ErrDuplicateKey
	}
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*User, error) {
	if user, ok := f.byID[id]; ok {
		return user, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepository) GetByEmail(
	_ context.Context,
	email string,
) (*User, error) {
	if user, ok := f.byEmail[email]; ok {
		return user, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepository) List(_ context.Context) ([]User, error) {
	users := make([]User, 0, len(f.byID))
	for _, user := range f.byID {
		users = append(users, *user)
	}
	return users, nil
}

func (f *fakeRepository) UpdateRoles(
	_ context.Context,
	email string,
	patch RolePatch,
) (*User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, core.ErrNotFound
	}
	user.ApplyRolePatch(patch)
	return user, nil
}

func TestService_Create(t *testing.T) {
	t.Run("Should grant only the user flag to new accounts", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewService(repo)

		info, err := svc.Create(
			context.Background(),
			"Gardener",
			"Gardener@Example.COM",
			"hash",
		)
		require.NoError(t, err)

		stored := repo.byID[info.ID]
		require.NotNil(t, stored)
		assert.True(t, stored.IsUser)
		assert.False(t, stored.IsAdmin)
		assert.False(t, stored.IsSuperAdmin)
	})

	t.Run("Should store and echo the email exactly as submitted", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewService(repo)

		info, err := svc.Create(
			context.Background(),
			"Gardener",
			"Bob@Example.com",
			"hash",
		)
		require.NoError(t, err)
		assert.Equal(t, "Bob@Example.com", info.Email)
		assert.Equal(t, "Bob@Example.com", repo.byID[info.ID].Email)
	})

	t.Run("Should treat differently-cased emails as distinct accounts", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewService(repo)

		first, err := svc.Create(
			context.Background(),
			"Gardener",
			"Bob@Example.com",
			"hash",
		)
		require.NoError(t, err)

		second, err := svc.Create(
			context.Background(),
			"Gardener",
			"bob@example.com",
			"hash",
		)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		_, err = svc.GetByEmail(context.Background(), "BOB@EXAMPLE.COM")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestService_ChangeRole(t *testing.T) {
	t.Run("Should patch only the flags present", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewService(repo)

		_, err := svc.Create(
			context.Background(),
			"Gardener",
			"gardener@example.com",
			"hash",
		)
		require.NoError(t, err)

		updated, err := svc.ChangeRole(context.Background(), ChangeRoleRequest{
			Email:   "gardener@example.com",
			IsAdmin: boolPtr(true),
		})
		require.NoError(t, err)

		assert.True(t, updated.IsUser)
		assert.True(t, updated.IsAdmin)
		assert.False(t, updated.IsSuperAdmin)
	})

	t.Run("Should fail for an unknown email", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		_, err := svc.ChangeRole(context.Background(), ChangeRoleRequest{
			Email:   "nobody@example.com",
			IsAdmin: boolPtr(true),
		})
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestService_LoadSessionUser(t *testing.T) {
	t.Run("Should carry all role flags into the session", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewService(repo)

		info, err := svc.Create(
			context.Background(),
			"Gardener",
			"gardener@example.com",
			"hash",
		)
		require.NoError(t, err)

		repo.byID[info.ID].IsAdmin = true

		session, err := svc.LoadSessionUser(context.Background(), info.ID)
		require.NoError(t, err)

		assert.Equal(t, info.ID, session.ID)
		assert.True(t, session.IsUser)
		assert.True(t, session.IsAdmin)
	})

	t.Run("Should report a vanished account", func(t *testing.T) {
		svc := NewService(newFakeRepository())

		_, err := svc.LoadSessionUser(context.Background(), "ghost")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}
