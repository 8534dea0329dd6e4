package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openuni-dev/admission-auction-api/internal/engine"
	"github.com/openuni-dev/admission-auction-api/internal/models"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
)

func newTestStudentService() (*StudentService, *memoryRecorder) {
	eng := engine.New(engine.Options{})
	recorder := &memoryRecorder{}
	gate := &stubGate{roles: map[string]models.Role{
		"admin-1": models.RoleUniAdmin,
		"coo-1":   models.RoleCOO,
	}}
	return NewStudentService(eng, gate, recorder, disabledCache(), nil, nil), recorder
}

func TestStudentServiceAdmit(t *testing.T) {
	svc, recorder := newTestStudentService()

	student, err := svc.Admit(context.Background(), "admin-1", AdmitStudentRequest{StudentID: "s1"})
	require.NoError(t, err)
	assert.True(t, student.Admitted)
	assert.Equal(t, uint64(0), student.Balance)
	assert.Equal(t, []string{models.EventStudentAdmitted}, recorder.kinds())
}

func TestStudentServiceAdmitRequiresUniAdmin(t *testing.T) {
	svc, _ := newTestStudentService()

	_, err := svc.Admit(context.Background(), "coo-1", AdmitStudentRequest{StudentID: "s1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotAuthorized.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceAdmitDuplicate(t *testing.T) {
	svc, _ := newTestStudentService()

	_, err := svc.Admit(context.Background(), "admin-1", AdmitStudentRequest{StudentID: "s1"})
	require.NoError(t, err)

	_, err = svc.Admit(context.Background(), "admin-1", AdmitStudentRequest{StudentID: "s1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicate.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceGet(t *testing.T) {
	svc, _ := newTestStudentService()

	_, err := svc.Admit(context.Background(), "admin-1", AdmitStudentRequest{StudentID: "s1"})
	require.NoError(t, err)

	student, cached, err := svc.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "s1", student.ID)

	_, _, err = svc.Get(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
