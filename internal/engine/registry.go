package engine

import (
	"time"

	"github.com/openuni-dev/admission-auction-api/internal/models"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
)

// CreateCourse registers a new open course.
func (e *Engine) CreateCourse(courseID string, quota int, deadline time.Time, createdBy string) (models.Course, error) {
	if courseID == "" {
		return models.Course{}, appErrors.Clone(appErrors.ErrValidation, "course id required")
	}
	if quota < 1 {
		return models.Course{}, appErrors.Clone(appErrors.ErrValidation, "quota must be at least 1")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.courses[courseID]; exists {
		return models.Course{}, appErrors.Clone(appErrors.ErrDuplicate, "course already exists")
	}

	now := time.Now().UTC()
	c := &course{
		id:        courseID,
		quota:     quota,
		deadline:  deadline,
		createdBy: createdBy,
		createdAt: now,
		updatedAt: now,
		byStudent: make(map[string]*bid),
	}
	e.courses[courseID] = c
	return c.snapshot(), nil
}

// ModifyCourse updates quota, deadline, lecturer and prerequisites of an
// open course. Closed courses are immutable.
func (e *Engine) ModifyCourse(courseID string, quota int, deadline time.Time, lecturer string, prereqs []string) (models.Course, error) {
	if quota < 1 {
		return models.Course{}, appErrors.Clone(appErrors.ErrValidation, "quota must be at least 1")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	c, ok := e.courses[courseID]
	if !ok {
		return models.Course{}, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	if c.closed {
		return models.Course{}, appErrors.ErrCourseClosed
	}

	c.quota = quota
	c.deadline = deadline
	c.lecturer = lecturer
	c.prereqs = append([]string(nil), prereqs...)
	c.updatedAt = time.Now().UTC()
	return c.snapshot(), nil
}

// GetCourse returns a snapshot of the course.
func (e *Engine) GetCourse(courseID string) (models.Course, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	c, ok := e.courses[courseID]
	if !ok {
		return models.Course{}, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return c.snapshot(), nil
}
