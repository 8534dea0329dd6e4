package handler

import (
	"bytes"
	"encoding/json"
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

func TestBidHandlerPlace(t *testing.T) {
	gin.SetMode(gin.TestMode)
	eng := newBiddingEngine(t)
	svc := service.NewBidService(eng, nopRecorder{}, nil, nil, nil, nil)
	h := NewBidHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(service.PlaceBidRequest{Amount: 500})
	req, _ := http.NewRequest(http.MethodPost, "/courses/COMP6451/bids", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "COMP6451"}}
	c.Set(middleware.ContextPrincipalKey, &models.JWTClaims{PrincipalID: "s1"})

	h.Place(c)
	require.Equal(t, http.StatusCreated, w.Code)

	student, err := eng.GetStudent("s1")
	require.NoError(t, err)
	assert.Equal(t, uint64(500), student.Locked)
}

func TestBidHandlerPlaceWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := service.NewBidService(newBiddingEngine(t), nopRecorder{}, nil, nil, nil, nil)
	h := NewBidHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(service.PlaceBidRequest{Amount: 500})
	req, _ := http.NewRequest(http.MethodPost, "/courses/COMP6451/bids", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "COMP6451"}}

	h.Place(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBidHandlerPlaceInsufficientBalance(t *testing.T) {
	gin.SetMode(gin.TestMode)
	eng := newBiddingEngine(t)
	svc := service.NewBidService(eng, nopRecorder{}, nil, nil, nil, nil)
	h := NewBidHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(service.PlaceBidRequest{Amount: 5000})
	req, _ := http.NewRequest(http.MethodPost, "/courses/COMP6451/bids", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "COMP6451"}}
	c.Set(middleware.ContextPrincipalKey, &models.JWTClaims{PrincipalID: "s1"})

	h.Place(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}
