package handler

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/openuni-dev/admission-auction-api/internal/service"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
	"github.com/openuni-dev/admission-auction-api/pkg/response"
)

// ExportHandler exposes enrollment outcome exports.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Generate godoc
// @Summary Export enrollment outcome
// @Description Render the closed course's enrollment as CSV or PDF behind a signed URL (UNI_ADMIN only)
// @Tags Exports
// @Produce json
// @Param id path string true "Course ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security BearerAuth
// @Router /courses/{id}/export [get]
func (h *ExportHandler) Generate(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	result, err := h.service.Generate(c.Request.Context(), claims.PrincipalID, c.Param("id"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result, nil)
}

// Download godoc
// @Summary Download an export
// @Description Stream a previously generated export via its signed token
// @Tags Exports
// @Produce octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exports/download [get]
func (h *ExportHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}

	file, err := h.service.Resolve(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	name := filepath.Base(file.Name())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.File(file.Name())
}
