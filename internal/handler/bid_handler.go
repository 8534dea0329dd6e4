package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openuni-dev/admission-auction-api/internal/service"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
	"github.com/openuni-dev/admission-auction-api/pkg/response"
)

// BidHandler exposes bid placement endpoints for admitted students.
type BidHandler struct {
	service *service.BidService
}

// NewBidHandler creates a new handler.
func NewBidHandler(svc *service.BidService) *BidHandler {
	return &BidHandler{service: svc}
}

// Place godoc
// @Summary Place a bid
// @Description Commit tokens to a course; tokens are locked until clearing
// @Tags Bids
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.PlaceBidRequest true "Bid payload"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{id}/bids [post]
func (h *BidHandler) Place(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid bid payload"))
		return
	}

	bid, err := h.service.Place(c.Request.Context(), claims.PrincipalID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, bid)
}

// Modify godoc
// @Summary Modify a bid
// @Description Replace the caller's standing bid amount
// @Tags Bids
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.ModifyBidRequest true "Bid payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{id}/bids [put]
func (h *BidHandler) Modify(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.ModifyBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid bid payload"))
		return
	}

	bid, err := h.service.Modify(c.Request.Context(), claims.PrincipalID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, bid, nil)
}
