package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/openuni-dev/admission-auction-api/internal/models"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
)

// AuthorizationGate answers whether a caller currently holds the required
// role. Checks read the granted role from the store rather than the token,
// so grants and revocations apply immediately.
type AuthorizationGate interface {
	Require(ctx context.Context, callerID string, required models.Role) error
}

type rolePrincipalRepository interface {
	FindByID(ctx context.Context, id string) (*models.Principal, error)
	UpdateRole(ctx context.Context, id string, role models.Role) error
}

// GrantRoleRequest assigns a role to a principal.
type GrantRoleRequest struct {
	PrincipalID string `json:"principal_id" validate:"required"`
	Role        string `json:"role" validate:"required"`
}

// RoleService manages role grants and enforces role checks.
type RoleService struct {
	repo      rolePrincipalRepository
	recorder  Recorder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoleService constructs a RoleService.
func NewRoleService(repo rolePrincipalRepository, recorder Recorder, validate *validator.Validate, logger *zap.Logger) *RoleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoleService{repo: repo, recorder: recorder, validator: validate, logger: logger}
}

// Require verifies the caller holds exactly the required role. Role checks
// are strict: a COO does not implicitly pass UNI_ADMIN checks.
func (s *RoleService) Require(ctx context.Context, callerID string, required models.Role) error {
	if callerID == "" {
		return appErrors.Clone(appErrors.ErrUnauthorized, "missing caller identity")
	}
	principal, err := s.repo.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrUnauthorized, "unknown principal")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load principal")
	}
	if principal.Role != required {
		return appErrors.Clone(appErrors.ErrNotAuthorized, fmt.Sprintf("operation requires the %s role", required))
	}
	return nil
}

// Grant assigns a role to a principal. Only the COO may grant roles.
func (s *RoleService) Grant(ctx context.Context, callerID string, req GrantRoleRequest) (*models.PrincipalInfo, error) {
	if err := s.Require(ctx, callerID, models.RoleCOO); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grant payload")
	}

	role := models.Role(req.Role)
	if !role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown role %q", req.Role))
	}

	principal, err := s.repo.FindByID(ctx, req.PrincipalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "principal not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load principal")
	}

	if err := s.repo.UpdateRole(ctx, principal.ID, role); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update role")
	}

	s.recorder.Record(ctx, models.EventRoleGranted, callerID, map[string]interface{}{
		"principal": principal.ID,
		"role":      role,
	})

	return &models.PrincipalInfo{ID: principal.ID, Email: principal.Email, Role: role}, nil
}
