package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookreview-backend/internal/domains/user/model"
	"bookreview-backend/pkg/jwt"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return model.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return model.ErrEmailTaken
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserRepo) GetPublicByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.PublicUser, error) {
	out := make(map[uuid.UUID]model.PublicUser)
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u.Public()
		}
	}
	return out, nil
}

// fakeCache is an in-memory stand-in for Redis without expiry.
type fakeCache struct {
	counters map[string]int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{counters: make(map[string]int64)}
}

func (f *fakeCache) Increment(ctx context.Context, key string) (int64, error) {
	f.counters[key]++
	return f.counters[key], nil
}

func (f *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.counters[key]
	return ok, nil
}

func (f *fakeCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.counters, key)
	}
	return nil
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }

func setupUserService() (ServiceInterface, *fakeUserRepo, *fakeCache) {
	repo := newFakeUserRepo()
	cache := newFakeCache()
	manager := jwt.NewManager("test-secret", 60)
	return NewUserService(repo, cache, manager), repo, cache
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := setupUserService()

	registered, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "alice", registered.User.Username)

	logged, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, logged.User.ID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _ := setupUserService()

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, model.ErrUsernameTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := setupUserService()

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), model.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginLockout(t *testing.T) {
	svc, _, _ := setupUserService()

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	for i := 0; i < maxFailedLogins; i++ {
		_, err = svc.Login(context.Background(), model.LoginRequest{
			Email:    "alice@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	}

	// The lock now rejects even the correct password.
	_, err = svc.Login(context.Background(), model.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, model.ErrAccountLocked)
}

func TestGetProfile(t *testing.T) {
	svc, _, _ := setupUserService()

	registered, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	pub, err := svc.GetProfile(context.Background(), registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", pub.Username)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}
