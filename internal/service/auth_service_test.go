package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/openuni-dev/admission-auction-api/internal/models"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
)

func newTestAuthService(repo *mockPrincipalRepo) *AuthService {
	return NewAuthService(repo, nil, nil, AuthConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "admission-auction-api",
	})
}

func TestAuthServiceRegisterCreatesOutsider(t *testing.T) {
	repo := newMockPrincipalRepo()
	svc := newTestAuthService(repo)

	info, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "new@openuni.dev",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleOutsider, info.Role)

	stored, err := repo.FindByEmail(context.Background(), "new@openuni.dev")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	repo := newMockPrincipalRepo()
	repo.add(&models.Principal{ID: "p-1", Email: "taken@openuni.dev", Role: models.RoleOutsider})
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "taken@openuni.dev",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicate.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginIssuesValidToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo := newMockPrincipalRepo()
	repo.add(&models.Principal{ID: "p-1", Email: "coo@openuni.dev", PasswordHash: string(hash), Role: models.RoleCOO})
	svc := newTestAuthService(repo)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "coo@openuni.dev",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCOO, resp.Principal.Role)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "p-1", claims.PrincipalID)
	assert.Equal(t, "coo@openuni.dev", claims.Email)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo := newMockPrincipalRepo()
	repo.add(&models.Principal{ID: "p-1", Email: "coo@openuni.dev", PasswordHash: string(hash), Role: models.RoleCOO})
	svc := newTestAuthService(repo)

	_, err = svc.Login(context.Background(), models.LoginRequest{
		Email:    "coo@openuni.dev",
		Password: "nope",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(newMockPrincipalRepo())

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
