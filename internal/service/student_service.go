package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/openuni-dev/admission-auction-api/internal/engine"
	"github.com/openuni-dev/admission-auction-api/internal/models"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
)

// AdmitStudentRequest admits a principal as a student.
type AdmitStudentRequest struct {
	StudentID string `json:"student_id" validate:"required"`
}

// StudentService manages student admission and account lookups.
type StudentService struct {
	engine    *engine.Engine
	gate      AuthorizationGate
	recorder  Recorder
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(eng *engine.Engine, gate AuthorizationGate, recorder Recorder, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{engine: eng, gate: gate, recorder: recorder, cache: cache, validator: validate, logger: logger}
}

// Admit registers a principal as an admitted student with a zero balance.
// Requires the UNI_ADMIN role.
func (s *StudentService) Admit(ctx context.Context, callerID string, req AdmitStudentRequest) (*models.Student, error) {
	if err := s.gate.Require(ctx, callerID, models.RoleUniAdmin); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid admission payload")
	}

	if err := s.engine.AdmitStudent(req.StudentID); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, models.EventStudentAdmitted, callerID, map[string]interface{}{
		"student": req.StudentID,
	})

	student, err := s.engine.GetStudent(req.StudentID)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Get returns the student's account snapshot.
func (s *StudentService) Get(ctx context.Context, studentID string) (*models.Student, bool, error) {
	key := studentCacheKey(studentID)

	var cached models.Student
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	student, err := s.engine.GetStudent(studentID)
	if err != nil {
		return nil, false, err
	}

	if err := s.cache.Set(ctx, key, student, 0); err != nil {
		s.logger.Debug("student snapshot not cached", zap.String("student", studentID), zap.Error(err))
	}
	return &student, false, nil
}

func studentCacheKey(studentID string) string {
	return fmt.Sprintf("student:%s", studentID)
}

func courseCacheKey(courseID string) string {
	return fmt.Sprintf("course:%s", courseID)
}
