package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openuni-dev/admission-auction-api/internal/models"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
)

func TestEnrollmentCloseEmitsEventsInOrder(t *testing.T) {
	eng := fundedEngine(t, "s1", "s2", "s3")
	_, err := eng.CreateCourse("COMP6451", 2, time.Now().Add(time.Hour), "admin-1")
	require.NoError(t, err)
	for _, b := range []struct {
		student string
		amount  uint64
	}{{"s1", 1200}, {"s2", 800}, {"s3", 1000}} {
		_, err := eng.PlaceBid(b.student, "COMP6451", b.amount)
		require.NoError(t, err)
	}

	recorder := &memoryRecorder{}
	gate := &stubGate{roles: map[string]models.Role{"admin-1": models.RoleUniAdmin}}
	svc := NewEnrollmentService(eng, gate, recorder, disabledCache(), nil, nil)

	outcome, err := svc.Close(context.Background(), "admin-1", "COMP6451")
	require.NoError(t, err)
	require.Len(t, outcome.Winners, 2)
	require.Len(t, outcome.Refunded, 1)
	assert.Equal(t, "s2", outcome.Refunded[0].StudentID)

	// One enrollment event per winner, then the close event.
	assert.Equal(t, []string{
		models.EventStudentEnrolled,
		models.EventStudentEnrolled,
		models.EventCourseEnrollmentClosed,
	}, recorder.kinds())
	assert.Equal(t, "s1", recorder.events[0].Payload["student"])
	assert.Equal(t, "s3", recorder.events[1].Payload["student"])
}

func TestEnrollmentCloseRequiresUniAdmin(t *testing.T) {
	eng := fundedEngine(t, "s1")
	_, err := eng.CreateCourse("COMP6451", 1, time.Now().Add(time.Hour), "admin-1")
	require.NoError(t, err)

	gate := &stubGate{roles: map[string]models.Role{"coo-1": models.RoleCOO}}
	svc := NewEnrollmentService(eng, gate, &memoryRecorder{}, disabledCache(), nil, nil)

	_, err = svc.Close(context.Background(), "coo-1", "COMP6451")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotAuthorized.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentCloseTwice(t *testing.T) {
	eng := fundedEngine(t, "s1")
	_, err := eng.CreateCourse("COMP6451", 1, time.Now().Add(time.Hour), "admin-1")
	require.NoError(t, err)

	gate := &stubGate{roles: map[string]models.Role{"admin-1": models.RoleUniAdmin}}
	svc := NewEnrollmentService(eng, gate, &memoryRecorder{}, disabledCache(), nil, nil)

	_, err = svc.Close(context.Background(), "admin-1", "COMP6451")
	require.NoError(t, err)

	_, err = svc.Close(context.Background(), "admin-1", "COMP6451")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAlreadyClosed.Code, appErrors.FromError(err).Code)
}
