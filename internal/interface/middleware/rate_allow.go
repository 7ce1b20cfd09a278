package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-backend/pkg/response"
)

// AllowPrivateIP reports whether the client address is loopback or private.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// Only rejects requests for which allow returns false.
func Only(allow AllowFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allow(c) {
			response.Fail(c, http.StatusForbidden, "forbidden", "forbidden", nil)
			return
		}
		c.Next()
	}
}
