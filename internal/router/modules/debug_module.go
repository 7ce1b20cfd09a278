package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-backend/internal/container"
	"github.com/oksasatya/portfolio-backend/internal/interface/middleware"
)

// DebugModule exposes expvar at /debug/vars to private networks only.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/debug/vars", middleware.Only(middleware.AllowPrivateIP()), rl, gin.WrapH(expvar.Handler()))
}
