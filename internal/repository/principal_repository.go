package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/openuni-dev/admission-auction-api/internal/models"
)

// PrincipalRepository handles persistence of principals and their granted
// roles.
type PrincipalRepository struct {
	db *sqlx.DB
}

// NewPrincipalRepository constructs the repository.
func NewPrincipalRepository(db *sqlx.DB) *PrincipalRepository {
	return &PrincipalRepository{db: db}
}

// Create stores a new principal.
func (r *PrincipalRepository) Create(ctx context.Context, principal *models.Principal) error {
	if principal.ID == "" {
		principal.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if principal.CreatedAt.IsZero() {
		principal.CreatedAt = now
	}
	principal.UpdatedAt = now

	query := `INSERT INTO principals (id, email, password_hash, role, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query, principal.ID, principal.Email, principal.PasswordHash,
		principal.Role, principal.CreatedAt, principal.UpdatedAt); err != nil {
		return fmt.Errorf("insert principal: %w", err)
	}
	return nil
}

// FindByID loads a principal by id.
func (r *PrincipalRepository) FindByID(ctx context.Context, id string) (*models.Principal, error) {
	var principal models.Principal
	query := `SELECT id, email, password_hash, role, created_at, updated_at FROM principals WHERE id = $1`
	if err := r.db.GetContext(ctx, &principal, query, id); err != nil {
		return nil, err
	}
	return &principal, nil
}

// FindByEmail loads a principal by email.
func (r *PrincipalRepository) FindByEmail(ctx context.Context, email string) (*models.Principal, error) {
	var principal models.Principal
	query := `SELECT id, email, password_hash, role, created_at, updated_at FROM principals WHERE email = $1`
	if err := r.db.GetContext(ctx, &principal, query, email); err != nil {
		return nil, err
	}
	return &principal, nil
}

// UpdateRole records a role grant.
func (r *PrincipalRepository) UpdateRole(ctx context.Context, id string, role models.Role) error {
	query := `UPDATE principals SET role = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, role, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update principal role: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update principal role: no rows affected")
	}
	return nil
}
