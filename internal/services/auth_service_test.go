package services

import (
	"context"
	"testing"
	"time"

	"archway_backend/internal/auth"
	"archway_backend/internal/config"
	"archway_backend/internal/models"
	"archway_backend/internal/repositories"
	"archway_backend/internal/services/dto"
	"archway_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAdminRepo struct {
	admins     map[string]*models.Admin
	lastLogins int
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[string]*models.Admin{}}
}

func (r *fakeAdminRepo) Create(db *gorm.DB, admin *models.Admin) error {
	r.admins[admin.ID] = admin
	return nil
}

func (r *fakeAdminRepo) FindByID(db *gorm.DB, id string) (*models.Admin, error) {
	admin, ok := r.admins[id]
	if !ok {
		return nil, repositories.ErrAdminNotFound
	}
	return admin, nil
}

func (r *fakeAdminRepo) FindByEmail(db *gorm.DB, email string) (*models.Admin, error) {
	for _, admin := range r.admins {
		if admin.Email == email {
			return admin, nil
		}
	}
	return nil, repositories.ErrAdminNotFound
}

func (r *fakeAdminRepo) UpdatePassword(db *gorm.DB, id, passwordHash string) error {
	admin, ok := r.admins[id]
	if !ok {
		return repositories.ErrAdminNotFound
	}
	admin.PasswordHash = passwordHash
	return nil
}

func (r *fakeAdminRepo) TouchLastLogin(db *gorm.DB, id string) error {
	r.lastLogins++
	now := time.Now()
	if admin, ok := r.admins[id]; ok {
		admin.LastLoginAt = &now
	}
	return nil
}

func newAuthFixture(t *testing.T, password string) (AuthService, *fakeAdminRepo, *models.Admin) {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = nil })

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	admin := &models.Admin{Name: "Admin", Email: "admin@example.com", PasswordHash: hash}
	admin.ID = "admin-1"

	repo := newFakeAdminRepo()
	require.NoError(t, repo.Create(nil, admin))
	return NewAuthService(repo), repo, admin
}

func TestLoginSuccess(t *testing.T) {
	svc, repo, admin := newAuthFixture(t, "hunter22hunter")

	token, got, err := svc.Login(context.Background(), nil, &dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "hunter22hunter",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, admin.ID, got.ID)
	assert.Equal(t, 1, repo.lastLogins)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.AdminID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t, "hunter22hunter")

	_, _, err := svc.Login(context.Background(), nil, &dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc, _, _ := newAuthFixture(t, "hunter22hunter")

	_, _, err := svc.Login(context.Background(), nil, &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter22hunter",
	})
	// Unknown email and wrong password are indistinguishable to the client.
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	svc, repo, admin := newAuthFixture(t, "old password 1")

	err := svc.ChangePassword(context.Background(), nil, admin.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "old password 1",
		NewPassword:     "new password 2",
	})
	require.NoError(t, err)

	stored := repo.admins[admin.ID]
	assert.True(t, auth.CheckPasswordHash("new password 2", stored.PasswordHash))
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, _, admin := newAuthFixture(t, "old password 1")

	err := svc.ChangePassword(context.Background(), nil, admin.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "not it",
		NewPassword:     "new password 2",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestChangePasswordTooShort(t *testing.T) {
	svc, _, admin := newAuthFixture(t, "old password 1")

	err := svc.ChangePassword(context.Background(), nil, admin.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "old password 1",
		NewPassword:     "short",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestParseOptionalTime(t *testing.T) {
	got, err := parseOptionalTime("", "published_at")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseOptionalTime("2026-03-01T10:00:00Z", "published_at")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2026, got.Year())

	_, err = parseOptionalTime("yesterday", "published_at")
	assert.Error(t, err)
}
