package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/openuni-dev/admission-auction-api/internal/models"
)

// AuditRepository persists the append-only audit event log.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository constructs the repository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Insert appends an audit event. Events are never updated or deleted.
func (r *AuditRepository) Insert(ctx context.Context, event *models.AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO audit_events (id, kind, actor, payload, created_at)
        VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query, event.ID, event.Kind, event.Actor, event.Payload, event.CreatedAt); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// List returns audit events matching the filter, newest first.
func (r *AuditRepository) List(ctx context.Context, filter models.AuditEventFilter) ([]models.AuditEvent, int, error) {
	var conditions []string
	var args []interface{}

	if filter.Kind != "" {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", len(args)+1))
		args = append(args, filter.Kind)
	}
	if filter.Actor != "" {
		conditions = append(conditions, fmt.Sprintf("actor = $%d", len(args)+1))
		args = append(args, filter.Actor)
	}

	clause := ""
	if len(conditions) > 0 {
		clause = " WHERE " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, kind, actor, payload, created_at FROM audit_events%s
        ORDER BY created_at DESC LIMIT %d OFFSET %d`, clause, size, offset)

	var events []models.AuditEvent
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list audit events: %w", err)
	}

	countQuery := "SELECT COUNT(*) FROM audit_events" + clause
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count audit events: %w", err)
	}
	return events, total, nil
}
