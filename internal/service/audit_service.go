package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openuni-dev/admission-auction-api/internal/models"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
	"github.com/openuni-dev/admission-auction-api/pkg/jobs"
)

// Recorder appends audit events. Recording is best-effort and must never
// block or fail the operation being recorded.
type Recorder interface {
	Record(ctx context.Context, kind, actor string, payload map[string]interface{})
}

type auditEventRepository interface {
	Insert(ctx context.Context, event *models.AuditEvent) error
	List(ctx context.Context, filter models.AuditEventFilter) ([]models.AuditEvent, int, error)
}

// AuditConfig tunes the asynchronous writer.
type AuditConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
}

// AuditService persists the append-only event log. Writes go through an
// in-memory queue so hot-path operations do not wait on the database.
type AuditService struct {
	repo   auditEventRepository
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewAuditService constructs the service and its worker queue.
func NewAuditService(repo auditEventRepository, logger *zap.Logger, cfg AuditConfig) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AuditService{repo: repo, logger: logger}
	s.queue = jobs.NewQueue("audit-events", s.persist, jobs.QueueConfig{
		Workers:    cfg.Workers,
		BufferSize: cfg.BufferSize,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the background writers.
func (s *AuditService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the writers.
func (s *AuditService) Stop() {
	s.queue.Stop()
}

// Record enqueues an audit event for asynchronous persistence.
func (s *AuditService) Record(ctx context.Context, kind, actor string, payload map[string]interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Warn("failed to encode audit payload", zap.String("kind", kind), zap.Error(err))
		raw = []byte(`{}`)
	}

	event := &models.AuditEvent{
		ID:      uuid.NewString(),
		Kind:    kind,
		Actor:   actor,
		Payload: raw,
	}
	if err := s.queue.Enqueue(jobs.Job{ID: event.ID, Type: kind, Payload: event}); err != nil {
		s.logger.Warn("failed to enqueue audit event", zap.String("kind", kind), zap.Error(err))
	}
}

// List returns audit events newest first.
func (s *AuditService) List(ctx context.Context, filter models.AuditEventFilter) ([]models.AuditEvent, *models.Pagination, error) {
	events, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list audit events")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return events, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

func (s *AuditService) persist(ctx context.Context, job jobs.Job) error {
	event, ok := job.Payload.(*models.AuditEvent)
	if !ok {
		return fmt.Errorf("unexpected audit job payload %T", job.Payload)
	}
	return s.repo.Insert(ctx, event)
}
