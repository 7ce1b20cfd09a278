package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
	"github.com/oksasatya/portfolio-backend/pkg/helpers"
	"github.com/oksasatya/portfolio-backend/pkg/response"
)

const sessionKey = "adminSession"

// SessionResolver turns an access token into a live admin session, or nil.
type SessionResolver interface {
	CurrentSession(ctx context.Context, token string) (*entity.AdminSession, error)
}

// AccessToken reads the token from the access_token cookie, then from an
// "Authorization: Bearer" header.
func AccessToken(c *gin.Context) string {
	if token, err := c.Cookie(helpers.AccessTokenCookie); err == nil && token != "" {
		return token
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Auth requires a live admin session. It sets userID, userEmail and the
// session itself in the Gin context on success.
func Auth(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := AccessToken(c)
		if token == "" {
			response.Fail(c, http.StatusUnauthorized, "missing access token", "unauthorized", nil)
			return
		}
		sess, err := sessions.CurrentSession(c.Request.Context(), token)
		if err != nil {
			response.Fail(c, http.StatusServiceUnavailable, "session lookup failed", "session_unavailable", nil)
			return
		}
		if sess == nil {
			response.Fail(c, http.StatusUnauthorized, "session not found", "unauthorized", nil)
			return
		}

		c.Set(sessionKey, sess)
		c.Set("userID", sess.UserID)
		c.Set("userEmail", sess.Email)
		c.Next()
	}
}

// SessionFrom returns the session stored by Auth, if any.
func SessionFrom(c *gin.Context) *entity.AdminSession {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*entity.AdminSession); ok {
			return s
		}
	}
	return nil
}
