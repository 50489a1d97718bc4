package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelakshaywalia/advance-inventory-manager/internal/domain/entity"
	"github.com/thelakshaywalia/advance-inventory-manager/pkg/apperror"
	"github.com/thelakshaywalia/advance-inventory-manager/pkg/utils"
)

type mockUserRepository struct {
	users map[uuid.UUID]*entity.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[uuid.UUID]*entity.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, exists := m.users[id]
	if !exists {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func newAuthFixture(t *testing.T) (*AuthService, *mockUserRepository) {
	t.Helper()
	userRepo := newMockUserRepository()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(userRepo, jwtManager), userRepo
}

func seedUser(t *testing.T, repo *mockUserRepository, username, password string) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user := &entity.User{Username: username, PasswordHash: hash}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestLogin_Success(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	seedUser(t, userRepo, "admin", "adminpass")

	user, tokens, err := svc.Login(context.Background(), "admin", "adminpass")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	seedUser(t, userRepo, "admin", "adminpass")

	_, _, err := svc.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.Equal(t, 401, apperror.GetAppError(err).Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, err := svc.Login(context.Background(), "nobody", "whatever")
	require.Error(t, err)
	assert.Equal(t, 401, apperror.GetAppError(err).Code)
}

func TestRefresh_IssuesNewTokens(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	seedUser(t, userRepo, "admin", "adminpass")

	_, tokens, err := svc.Login(context.Background(), "admin", "adminpass")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefresh_RejectsGarbageToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Refresh(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.Equal(t, 401, apperror.GetAppError(err).Code)
}

func TestChangePassword(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	user := seedUser(t, userRepo, "admin", "adminpass")

	require.NoError(t, svc.ChangePassword(context.Background(), user.ID, "newsecret"))

	_, _, err := svc.Login(context.Background(), "admin", "adminpass")
	require.Error(t, err)

	_, _, err = svc.Login(context.Background(), "admin", "newsecret")
	require.NoError(t, err)
}

func TestChangePassword_TooShort(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	user := seedUser(t, userRepo, "admin", "adminpass")

	err := svc.ChangePassword(context.Background(), user.ID, "abc")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}
