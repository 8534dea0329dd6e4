package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openuni-dev/admission-auction-api/internal/models"
	"github.com/openuni-dev/admission-auction-api/internal/service"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
	"github.com/openuni-dev/admission-auction-api/pkg/response"
)

// ContextPrincipalKey is the gin context key storing JWT claims. The claims
// carry identity only; role checks happen in the services against the
// currently granted role.
const ContextPrincipalKey = "currentPrincipal"

// JWT protects routes by requiring a valid access token.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextPrincipalKey, claims)
		c.Next()
	}
}

// PrincipalID extracts the authenticated principal's id from the context.
func PrincipalID(c *gin.Context) string {
	claimsValue, exists := c.Get(ContextPrincipalKey)
	if !exists {
		return ""
	}
	claims, ok := claimsValue.(*models.JWTClaims)
	if !ok {
		return ""
	}
	return claims.PrincipalID
}
