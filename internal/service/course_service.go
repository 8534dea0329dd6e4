package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/openuni-dev/admission-auction-api/internal/engine"
	"github.com/openuni-dev/admission-auction-api/internal/models"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
)

// CreateCourseRequest opens a new course for enrollment bidding.
type CreateCourseRequest struct {
	ID       string    `json:"id" validate:"required"`
	Quota    int       `json:"quota" validate:"required,min=1"`
	Deadline time.Time `json:"deadline" validate:"required"`
}

// ModifyCourseRequest updates an open course's parameters.
type ModifyCourseRequest struct {
	Quota         int       `json:"quota" validate:"required,min=1"`
	Deadline      time.Time `json:"deadline" validate:"required"`
	Lecturer      string    `json:"lecturer"`
	Prerequisites []string  `json:"prerequisites"`
}

// CourseService manages the course registry. All mutations require the
// UNI_ADMIN role.
type CourseService struct {
	engine    *engine.Engine
	gate      AuthorizationGate
	recorder  Recorder
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(eng *engine.Engine, gate AuthorizationGate, recorder Recorder, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{engine: eng, gate: gate, recorder: recorder, cache: cache, validator: validate, logger: logger}
}

// Create opens a new course.
func (s *CourseService) Create(ctx context.Context, callerID string, req CreateCourseRequest) (*models.Course, error) {
	if err := s.gate.Require(ctx, callerID, models.RoleUniAdmin); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course, err := s.engine.CreateCourse(req.ID, req.Quota, req.Deadline, callerID)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, models.EventCourseCreated, callerID, map[string]interface{}{
		"course":   course.ID,
		"quota":    course.Quota,
		"deadline": course.Deadline,
	})
	return &course, nil
}

// Modify updates an open course.
func (s *CourseService) Modify(ctx context.Context, callerID, courseID string, req ModifyCourseRequest) (*models.Course, error) {
	if err := s.gate.Require(ctx, callerID, models.RoleUniAdmin); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course, err := s.engine.ModifyCourse(courseID, req.Quota, req.Deadline, req.Lecturer, req.Prerequisites)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, courseCacheKey(courseID)); err != nil {
		s.logger.Debug("course cache invalidation failed", zap.String("course", courseID), zap.Error(err))
	}
	s.recorder.Record(ctx, models.EventCourseModified, callerID, map[string]interface{}{
		"course":   course.ID,
		"quota":    course.Quota,
		"deadline": course.Deadline,
	})
	return &course, nil
}

// Get returns the course snapshot, including enrollment once closed.
func (s *CourseService) Get(ctx context.Context, courseID string) (*models.Course, bool, error) {
	key := courseCacheKey(courseID)

	var cached models.Course
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	course, err := s.engine.GetCourse(courseID)
	if err != nil {
		return nil, false, err
	}

	if err := s.cache.Set(ctx, key, course, 0); err != nil {
		s.logger.Debug("course snapshot not cached", zap.String("course", courseID), zap.Error(err))
	}
	return &course, false, nil
}

// Bids lists the standing bids on a course in the order they were placed.
// Requires the UNI_ADMIN role: students see only their own commitments.
func (s *CourseService) Bids(ctx context.Context, callerID, courseID string) ([]models.Bid, error) {
	if err := s.gate.Require(ctx, callerID, models.RoleUniAdmin); err != nil {
		return nil, err
	}
	return s.engine.ListBids(courseID)
}
