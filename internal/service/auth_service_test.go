package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/orbis-edu/school-bi-api/internal/models"
	appErrors "github.com/orbis-edu/school-bi-api/pkg/errors"
)

type fakeUserRepo struct {
	user            *models.User
	findErr         error
	lastLoginUpdate bool
}

func (f *fakeUserRepo) FindByEmail(context.Context, string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.user, nil
}

func (f *fakeUserRepo) UpdateLastLogin(context.Context, string, time.Time) error {
	f.lastLoginUpdate = true
	return nil
}

func newTestAuthService(repo *fakeUserRepo) *AuthService {
	return NewAuthService(repo, nil, nil, AuthConfig{Secret: "test_secret", Expiry: time.Hour, Issuer: "school-bi-api"})
}

func hashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthServiceLogin(t *testing.T) {
	repo := &fakeUserRepo{user: &models.User{
		ID:           "u1",
		Email:        "admin@escola.local",
		FullName:     "Administrador",
		PasswordHash: hashPassword(t, "secret123"),
		Active:       true,
	}}
	svc := newTestAuthService(repo)

	result, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@escola.local", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "Administrador", result.FullName)
	assert.True(t, result.ExpiresAt.After(time.Now()))
	assert.True(t, repo.lastLoginUpdate)

	claims, err := svc.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "admin@escola.local", claims.Email)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := &fakeUserRepo{user: &models.User{
		ID:           "u1",
		Email:        "admin@escola.local",
		PasswordHash: hashPassword(t, "secret123"),
		Active:       true,
	}}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@escola.local", Password: "wrong"})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.Status)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	repo := &fakeUserRepo{findErr: sql.ErrNoRows}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@escola.local", Password: "whatever"})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.Status)
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	repo := &fakeUserRepo{user: &models.User{
		ID:           "u1",
		Email:        "admin@escola.local",
		PasswordHash: hashPassword(t, "secret123"),
		Active:       false,
	}}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@escola.local", Password: "secret123"})
	require.Error(t, err)
}

func TestAuthServiceLoginInvalidPayload(t *testing.T) {
	svc := newTestAuthService(&fakeUserRepo{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email", Password: ""})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

func TestAuthServiceValidateTokenWrongSecret(t *testing.T) {
	repo := &fakeUserRepo{user: &models.User{
		ID:           "u1",
		Email:        "admin@escola.local",
		PasswordHash: hashPassword(t, "secret123"),
		Active:       true,
	}}
	issuer := newTestAuthService(repo)
	result, err := issuer.Login(context.Background(), models.LoginRequest{Email: "admin@escola.local", Password: "secret123"})
	require.NoError(t, err)

	other := NewAuthService(repo, nil, nil, AuthConfig{Secret: "different", Expiry: time.Hour})
	_, err = other.ValidateToken(result.Token)
	require.Error(t, err)
}
