package requestid

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// Header carries the request ID in and out of the service.
	Header = "X-Request-ID"

	contextKey = "request_id"

	// Inbound IDs longer than this are replaced; they end up in every log
	// line and an unbounded value is a log-injection vector.
	maxInboundLen = 64
)

// Middleware tags each request with an ID. A usable inbound header is
// propagated so audit trails can be joined across services; otherwise a
// fresh UUID is assigned. The ID is echoed on the response.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(Header))
		if id == "" || len(id) > maxInboundLen || strings.ContainsAny(id, " \t\r\n") {
			id = uuid.NewString()
		}

		c.Set(contextKey, id)
		c.Header(Header, id)
		c.Next()
	}
}

// Value returns the request ID assigned by Middleware, or "".
func Value(c *gin.Context) string {
	return c.GetString(contextKey)
}
