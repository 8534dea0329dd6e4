package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openuni-dev/admission-auction-api/internal/middleware"
	"github.com/openuni-dev/admission-auction-api/internal/models"
	"github.com/openuni-dev/admission-auction-api/internal/service"
)

func newCourseHandler(t *testing.T) *CourseHandler {
	t.Helper()
	eng := newBiddingEngine(t)
	gate := &roleGateStub{roles: map[string]models.Role{"admin-1": models.RoleUniAdmin}}
	courses := service.NewCourseService(eng, gate, nopRecorder{}, nil, nil, nil)
	enrollment := service.NewEnrollmentService(eng, gate, nopRecorder{}, nil, nil, nil)
	return NewCourseHandler(courses, enrollment)
}

func TestCourseHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newCourseHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(service.CreateCourseRequest{
		ID:       "COMP4212",
		Quota:    10,
		Deadline: time.Now().Add(24 * time.Hour),
	})
	req, _ := http.NewRequest(http.MethodPost, "/courses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextPrincipalKey, &models.JWTClaims{PrincipalID: "admin-1"})

	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestCourseHandlerCloseForbiddenForNonAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newCourseHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/courses/COMP6451/close", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "COMP6451"}}
	c.Set(middleware.ContextPrincipalKey, &models.JWTClaims{PrincipalID: "s1"})

	h.Close(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCourseHandlerCloseTwiceConflicts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newCourseHandler(t)

	for i, want := range []int{http.StatusOK, http.StatusConflict} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		req, _ := http.NewRequest(http.MethodPost, "/courses/COMP6451/close", nil)
		c.Request = req
		c.Params = gin.Params{{Key: "id", Value: "COMP6451"}}
		c.Set(middleware.ContextPrincipalKey, &models.JWTClaims{PrincipalID: "admin-1"})

		h.Close(c)
		assert.Equal(t, want, w.Code, "attempt %d", i+1)
	}
}
