package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-backend/internal/container"
	handlers "github.com/oksasatya/portfolio-backend/internal/interface/http"
	"github.com/oksasatya/portfolio-backend/internal/interface/middleware"
)

// AuthModule serves the admin sign-in flow:
// POST /auth/login, POST /auth/logout, GET /auth/session
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil) // 10 req/min per IP

	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/logout", m.Handler.Logout)
	rg.GET("/auth/session", m.Handler.Session)
}
