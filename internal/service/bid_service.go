package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/openuni-dev/admission-auction-api/internal/engine"
	"github.com/openuni-dev/admission-auction-api/internal/models"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
)

// PlaceBidRequest commits tokens to a course.
type PlaceBidRequest struct {
	Amount uint64 `json:"amount" validate:"required,gt=0"`
}

// ModifyBidRequest replaces the caller's standing bid amount.
type ModifyBidRequest struct {
	Amount uint64 `json:"amount" validate:"required,gt=0"`
}

// BidService manages students' bids. Admission checks are enforced by the
// engine, so no role gate applies here.
type BidService struct {
	engine    *engine.Engine
	recorder  Recorder
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBidService constructs a BidService.
func NewBidService(eng *engine.Engine, recorder Recorder, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *BidService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BidService{engine: eng, recorder: recorder, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// Place locks tokens behind a new bid on the course.
func (s *BidService) Place(ctx context.Context, callerID, courseID string, req PlaceBidRequest) (*models.Bid, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bid payload")
	}

	bid, err := s.engine.PlaceBid(callerID, courseID, req.Amount)
	if err != nil {
		return nil, err
	}

	s.invalidateStudent(ctx, callerID)
	s.metrics.IncBidsPlaced()
	s.recorder.Record(ctx, models.EventBidCreated, callerID, map[string]interface{}{
		"course": courseID,
		"amount": req.Amount,
	})
	return &bid, nil
}

// Modify adjusts the caller's standing bid, re-locking the difference.
func (s *BidService) Modify(ctx context.Context, callerID, courseID string, req ModifyBidRequest) (*models.Bid, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bid payload")
	}

	bid, err := s.engine.ModifyBid(callerID, courseID, req.Amount)
	if err != nil {
		return nil, err
	}

	s.invalidateStudent(ctx, callerID)
	s.recorder.Record(ctx, models.EventBidModified, callerID, map[string]interface{}{
		"course": courseID,
		"amount": req.Amount,
	})
	return &bid, nil
}

func (s *BidService) invalidateStudent(ctx context.Context, studentID string) {
	if err := s.cache.Invalidate(ctx, studentCacheKey(studentID)); err != nil {
		s.logger.Debug("student cache invalidation failed", zap.String("student", studentID), zap.Error(err))
	}
}
