package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openuni-dev/admission-auction-api/internal/service"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
	"github.com/openuni-dev/admission-auction-api/pkg/response"
)

// TreasuryHandler exposes the token economy endpoints.
type TreasuryHandler struct {
	service *service.TreasuryService
}

// NewTreasuryHandler creates a new handler.
func NewTreasuryHandler(svc *service.TreasuryService) *TreasuryHandler {
	return &TreasuryHandler{service: svc}
}

// SetFeesPerUOC godoc
// @Summary Set the fee rate
// @Description Change the token cost of one unit of credit (COO only)
// @Tags Treasury
// @Accept json
// @Produce json
// @Param payload body service.SetFeesPerUOCRequest true "Fee rate payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security BearerAuth
// @Router /settings/fees-per-uoc [put]
func (h *TreasuryHandler) SetFeesPerUOC(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.SetFeesPerUOCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid fee rate payload"))
		return
	}

	if err := h.service.SetFeesPerUOC(c.Request.Context(), claims.PrincipalID, req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"fees_per_uoc": req.FeesPerUOC}, nil)
}

// GetFeesPerUOC godoc
// @Summary Get the fee rate
// @Tags Treasury
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /settings/fees-per-uoc [get]
func (h *TreasuryHandler) GetFeesPerUOC(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"fees_per_uoc": h.service.FeesPerUOC(c.Request.Context())}, nil)
}

// PayFees godoc
// @Summary Pay fees
// @Description Record a fee payment and mint tokens for the calling student
// @Tags Treasury
// @Accept json
// @Produce json
// @Param payload body service.PayFeesRequest true "Payment payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security BearerAuth
// @Router /fees/payments [post]
func (h *TreasuryHandler) PayFees(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.PayFeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payment payload"))
		return
	}

	result, err := h.service.PayFees(c.Request.Context(), claims.PrincipalID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result, nil)
}

// Transfer godoc
// @Summary Transfer tokens
// @Description Move tokens to another admitted student; the sender pays the platform fee
// @Tags Treasury
// @Accept json
// @Produce json
// @Param payload body service.TransferRequest true "Transfer payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /transfers [post]
func (h *TreasuryHandler) Transfer(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid transfer payload"))
		return
	}

	result, err := h.service.Transfer(c.Request.Context(), claims.PrincipalID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result, nil)
}

// Withdraw godoc
// @Summary Withdraw platform funds
// @Description Pay out accumulated platform funds (COO only)
// @Tags Treasury
// @Accept json
// @Produce json
// @Param payload body service.WithdrawRequest true "Withdrawal payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /withdrawals [post]
func (h *TreasuryHandler) Withdraw(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid withdrawal payload"))
		return
	}

	remaining, err := h.service.Withdraw(c.Request.Context(), claims.PrincipalID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"platform_balance": remaining}, nil)
}

// Balance godoc
// @Summary Platform balance
// @Description Accumulated fee payments and transfer cuts
// @Tags Treasury
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /treasury/balance [get]
func (h *TreasuryHandler) Balance(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"platform_balance": h.service.PlatformBalance(c.Request.Context())}, nil)
}
