package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openuni-dev/admission-auction-api/internal/models"
	"github.com/openuni-dev/admission-auction-api/internal/service"
	"github.com/openuni-dev/admission-auction-api/pkg/response"
)

// AuditHandler exposes the append-only event log.
type AuditHandler struct {
	service *service.AuditService
}

// NewAuditHandler creates a new handler.
func NewAuditHandler(svc *service.AuditService) *AuditHandler {
	return &AuditHandler{service: svc}
}

// List godoc
// @Summary List audit events
// @Description Audit events newest first, filterable by kind and actor
// @Tags Audit
// @Produce json
// @Param kind query string false "Event kind"
// @Param actor query string false "Actor principal ID"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /audit/events [get]
func (h *AuditHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := models.AuditEventFilter{
		Kind:     c.Query("kind"),
		Actor:    c.Query("actor"),
		Page:     page,
		PageSize: size,
	}

	events, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, events, pagination)
}
