package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openuni-dev/admission-auction-api/internal/service"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
	"github.com/openuni-dev/admission-auction-api/pkg/response"
)

// RoleHandler exposes role management endpoints.
type RoleHandler struct {
	service *service.RoleService
}

// NewRoleHandler creates a new handler.
func NewRoleHandler(svc *service.RoleService) *RoleHandler {
	return &RoleHandler{service: svc}
}

// Grant godoc
// @Summary Grant a role
// @Description Assign a role to a principal (COO only)
// @Tags Roles
// @Accept json
// @Produce json
// @Param payload body service.GrantRoleRequest true "Grant payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security BearerAuth
// @Router /roles [post]
func (h *RoleHandler) Grant(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.GrantRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grant payload"))
		return
	}

	info, err := h.service.Grant(c.Request.Context(), claims.PrincipalID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, info, nil)
}
