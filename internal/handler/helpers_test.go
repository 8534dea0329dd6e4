package handler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openuni-dev/admission-auction-api/internal/engine"
	"github.com/openuni-dev/admission-auction-api/internal/models"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
)

type nopRecorder struct{}

func (nopRecorder) Record(ctx context.Context, kind, actor string, payload map[string]interface{}) {}

type roleGateStub struct {
	roles map[string]models.Role
}

func (g *roleGateStub) Require(ctx context.Context, callerID string, required models.Role) error {
	if g.roles[callerID] != required {
		return appErrors.Clone(appErrors.ErrNotAuthorized, fmt.Sprintf("operation requires the %s role", required))
	}
	return nil
}

func newBiddingEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng := engine.New(engine.Options{})
	require.NoError(t, eng.AdmitStudent("s1"))
	_, err := eng.PayFees("s1", 18000)
	require.NoError(t, err)
	_, err = eng.CreateCourse("COMP6451", 2, time.Now().Add(time.Hour), "admin-1")
	require.NoError(t, err)
	return eng
}
