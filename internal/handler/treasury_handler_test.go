package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openuni-dev/admission-auction-api/internal/middleware"
	"github.com/openuni-dev/admission-auction-api/internal/models"
	"github.com/openuni-dev/admission-auction-api/internal/service"
)

func TestTreasuryHandlerBalanceIsPublicRead(t *testing.T) {
	gin.SetMode(gin.TestMode)
	eng := newBiddingEngine(t)
	svc := service.NewTreasuryService(eng, &roleGateStub{}, nopRecorder{}, nil, nil, nil, nil)
	h := NewTreasuryHandler(svc)

	// s1 holds no role at all; the balance read must still succeed.
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/treasury/balance", nil)
	c.Request = req
	c.Set(middleware.ContextPrincipalKey, &models.JWTClaims{PrincipalID: "s1"})

	h.Balance(c)
	require.Equal(t, http.StatusOK, w.Code)
	// Setup funding paid 18000 in fees, all of which accrues to the platform.
	assert.Contains(t, w.Body.String(), "18000")
}
