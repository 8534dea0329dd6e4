package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openuni-dev/admission-auction-api/internal/engine"
	"github.com/openuni-dev/admission-auction-api/internal/models"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
	"github.com/openuni-dev/admission-auction-api/pkg/storage"
)

func newTestExportService(t *testing.T) (*ExportService, *engine.Engine) {
	t.Helper()
	eng := fundedEngine(t, "s1", "s2", "s3")
	_, err := eng.CreateCourse("COMP6451", 2, time.Now().Add(time.Hour), "admin-1")
	require.NoError(t, err)

	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	gate := &stubGate{roles: map[string]models.Role{"admin-1": models.RoleUniAdmin}}

	svc := NewExportService(eng, gate, files, signer, ExportConfig{APIPrefix: "/api/v1"}, nil)
	return svc, eng
}

func TestExportServiceGeneratesCSV(t *testing.T) {
	svc, eng := newTestExportService(t)
	for _, b := range []struct {
		student string
		amount  uint64
	}{{"s1", 1200}, {"s2", 800}, {"s3", 1000}} {
		_, err := eng.PlaceBid(b.student, "COMP6451", b.amount)
		require.NoError(t, err)
	}
	_, err := eng.CloseEnrollment("COMP6451")
	require.NoError(t, err)

	result, err := svc.Generate(context.Background(), "admin-1", "COMP6451", "csv")
	require.NoError(t, err)
	assert.Contains(t, result.URL, "/api/v1/exports/download?token=")

	file, err := svc.Resolve(result.Token)
	require.NoError(t, err)
	defer file.Close()

	raw, err := io.ReadAll(file)
	require.NoError(t, err)
	content := string(raw)
	assert.True(t, strings.Contains(content, "s1"))
	assert.True(t, strings.Contains(content, "s3"))
	assert.False(t, strings.Contains(content, "s2"), "losing bidder must not appear: %s", content)
}

func TestExportServiceRequiresClosedCourse(t *testing.T) {
	svc, _ := newTestExportService(t)

	_, err := svc.Generate(context.Background(), "admin-1", "COMP6451", "csv")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceResolveRejectsForgedToken(t *testing.T) {
	svc, eng := newTestExportService(t)
	_, err := eng.CloseEnrollment("COMP6451")
	require.NoError(t, err)

	result, err := svc.Generate(context.Background(), "admin-1", "COMP6451", "pdf")
	require.NoError(t, err)

	_, err = svc.Resolve(result.Token + "x")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
