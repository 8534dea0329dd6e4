package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/openuni-dev/admission-auction-api/internal/middleware"
	"github.com/openuni-dev/admission-auction-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextPrincipalKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
