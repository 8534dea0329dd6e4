package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openuni-dev/admission-auction-api/internal/models"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
)

func TestRoleServiceGrant(t *testing.T) {
	repo := newMockPrincipalRepo()
	repo.add(&models.Principal{ID: "coo-1", Email: "coo@openuni.dev", Role: models.RoleCOO})
	repo.add(&models.Principal{ID: "p-1", Email: "admin@openuni.dev", Role: models.RoleOutsider})
	recorder := &memoryRecorder{}
	svc := NewRoleService(repo, recorder, nil, nil)

	info, err := svc.Grant(context.Background(), "coo-1", GrantRoleRequest{PrincipalID: "p-1", Role: "UNI_ADMIN"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUniAdmin, info.Role)

	stored, err := repo.FindByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUniAdmin, stored.Role)
	assert.Equal(t, []string{models.EventRoleGranted}, recorder.kinds())
}

func TestRoleServiceGrantRequiresCOO(t *testing.T) {
	repo := newMockPrincipalRepo()
	repo.add(&models.Principal{ID: "admin-1", Email: "admin@openuni.dev", Role: models.RoleUniAdmin})
	repo.add(&models.Principal{ID: "p-1", Email: "x@openuni.dev", Role: models.RoleOutsider})
	svc := NewRoleService(repo, &memoryRecorder{}, nil, nil)

	_, err := svc.Grant(context.Background(), "admin-1", GrantRoleRequest{PrincipalID: "p-1", Role: "UNI_ADMIN"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotAuthorized.Code, appErrors.FromError(err).Code)
}

func TestRoleServiceGrantRejectsUnknownRole(t *testing.T) {
	repo := newMockPrincipalRepo()
	repo.add(&models.Principal{ID: "coo-1", Email: "coo@openuni.dev", Role: models.RoleCOO})
	svc := NewRoleService(repo, &memoryRecorder{}, nil, nil)

	_, err := svc.Grant(context.Background(), "coo-1", GrantRoleRequest{PrincipalID: "p-1", Role: "SUPERUSER"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

// Role checks are strict: holding a higher role does not satisfy a check
// for a different one.
func TestRoleServiceRequireIsStrict(t *testing.T) {
	repo := newMockPrincipalRepo()
	repo.add(&models.Principal{ID: "coo-1", Email: "coo@openuni.dev", Role: models.RoleCOO})
	svc := NewRoleService(repo, &memoryRecorder{}, nil, nil)

	require.NoError(t, svc.Require(context.Background(), "coo-1", models.RoleCOO))

	err := svc.Require(context.Background(), "coo-1", models.RoleUniAdmin)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotAuthorized.Code, appErrors.FromError(err).Code)
}

func TestRoleServiceRequireUnknownPrincipal(t *testing.T) {
	svc := NewRoleService(newMockPrincipalRepo(), &memoryRecorder{}, nil, nil)

	err := svc.Require(context.Background(), "ghost", models.RoleCOO)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
