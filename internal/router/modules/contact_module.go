package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-backend/internal/container"
	handlers "github.com/oksasatya/portfolio-backend/internal/interface/http"
	"github.com/oksasatya/portfolio-backend/internal/interface/middleware"
)

// ContactModule accepts visitor messages, rate limited per IP.
type ContactModule struct {
	Handler *handlers.ContactHandler
	Max     int
	Window  time.Duration
}

func NewContactModule(h *handlers.ContactHandler, max int, window time.Duration) *ContactModule {
	return &ContactModule{Handler: h, Max: max, Window: window}
}

func (m *ContactModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), m.Max, m.Window, middleware.KeyByIPAndPath(), nil)
	rg.POST("/contact", limiter, m.Handler.Send)
}
