package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/openuni-dev/admission-auction-api/internal/engine"
	"github.com/openuni-dev/admission-auction-api/internal/models"
)

// ClearingOutcome summarises a closed enrollment round.
type ClearingOutcome struct {
	Course   models.Course `json:"course"`
	Winners  []models.Bid  `json:"winners"`
	Refunded []models.Bid  `json:"refunded"`
}

// EnrollmentService runs the clearing step that converts bids into seats.
type EnrollmentService struct {
	engine   *engine.Engine
	gate     AuthorizationGate
	recorder Recorder
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(eng *engine.Engine, gate AuthorizationGate, recorder Recorder, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{engine: eng, gate: gate, recorder: recorder, cache: cache, metrics: metrics, logger: logger}
}

// Close clears the course: the highest bidders win seats up to the quota,
// their locked tokens are spent, and every losing bid is refunded in full.
// Requires the UNI_ADMIN role.
func (s *EnrollmentService) Close(ctx context.Context, callerID, courseID string) (*ClearingOutcome, error) {
	if err := s.gate.Require(ctx, callerID, models.RoleUniAdmin); err != nil {
		return nil, err
	}

	result, err := s.engine.CloseEnrollment(courseID)
	if err != nil {
		return nil, err
	}

	for _, winner := range result.Winners {
		s.recorder.Record(ctx, models.EventStudentEnrolled, callerID, map[string]interface{}{
			"course":  courseID,
			"student": winner.StudentID,
			"amount":  winner.Amount,
		})
	}
	s.recorder.Record(ctx, models.EventCourseEnrollmentClosed, callerID, map[string]interface{}{
		"course":   courseID,
		"enrolled": result.Course.EnrolledStudents,
	})

	s.metrics.ObserveClearing(len(result.Winners))
	s.invalidateAfterClearing(ctx, courseID, result)

	s.logger.Info("enrollment closed",
		zap.String("course", courseID),
		zap.Int("winners", len(result.Winners)),
		zap.Int("refunded", len(result.Losers)))

	return &ClearingOutcome{
		Course:   result.Course,
		Winners:  result.Winners,
		Refunded: result.Losers,
	}, nil
}

func (s *EnrollmentService) invalidateAfterClearing(ctx context.Context, courseID string, result engine.ClearingResult) {
	if err := s.cache.Invalidate(ctx, courseCacheKey(courseID)); err != nil {
		s.logger.Debug("course cache invalidation failed", zap.String("course", courseID), zap.Error(err))
	}
	for _, bid := range append(append([]models.Bid{}, result.Winners...), result.Losers...) {
		if err := s.cache.Invalidate(ctx, studentCacheKey(bid.StudentID)); err != nil {
			s.logger.Debug("student cache invalidation failed", zap.String("student", bid.StudentID), zap.Error(err))
		}
	}
}
