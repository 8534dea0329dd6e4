package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openuni-dev/admission-auction-api/internal/middleware"
	"github.com/openuni-dev/admission-auction-api/internal/service"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
	"github.com/openuni-dev/admission-auction-api/pkg/response"
)

// CourseHandler exposes course registry and clearing endpoints.
type CourseHandler struct {
	courses    *service.CourseService
	enrollment *service.EnrollmentService
}

// NewCourseHandler creates a new handler.
func NewCourseHandler(courses *service.CourseService, enrollment *service.EnrollmentService) *CourseHandler {
	return &CourseHandler{courses: courses, enrollment: enrollment}
}

// Create godoc
// @Summary Create a course
// @Description Open a course for enrollment bidding (UNI_ADMIN only)
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body service.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}

	course, err := h.courses.Create(c.Request.Context(), claims.PrincipalID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, course)
}

// Modify godoc
// @Summary Modify a course
// @Description Update quota, deadline, lecturer or prerequisites of an open course (UNI_ADMIN only)
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.ModifyCourseRequest true "Course payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{id} [put]
func (h *CourseHandler) Modify(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.ModifyCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}

	course, err := h.courses.Modify(c.Request.Context(), claims.PrincipalID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, course, nil)
}

// Get godoc
// @Summary Get a course
// @Description Course parameters, state and enrollment once closed
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, cached, err := h.courses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, course, nil, middleware.ExtractMeta(c))
}

// Bids godoc
// @Summary List standing bids
// @Description Bids on a course in placement order (UNI_ADMIN only)
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{id}/bids [get]
func (h *CourseHandler) Bids(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	bids, err := h.courses.Bids(c.Request.Context(), claims.PrincipalID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, bids, nil)
}

// Close godoc
// @Summary Close enrollment
// @Description Clear the course: top bidders win seats, the rest are refunded (UNI_ADMIN only)
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{id}/close [post]
func (h *CourseHandler) Close(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	outcome, err := h.enrollment.Close(c.Request.Context(), claims.PrincipalID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, outcome, nil)
}
