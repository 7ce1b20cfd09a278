package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-backend/internal/container"
	handlers "github.com/oksasatya/portfolio-backend/internal/interface/http"
	"github.com/oksasatya/portfolio-backend/internal/interface/middleware"
)

// PublicModule serves the read-only site content.
type PublicModule struct {
	Handler *handlers.PublicHandler
}

func NewPublicModule(h *handlers.PublicHandler) *PublicModule {
	return &PublicModule{Handler: h}
}

func (m *PublicModule) Register(rg *gin.RouterGroup) {
	h := m.Handler
	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/projects", h.ListProjects)
	rg.GET("/projects/search", searchLimiter, h.SearchProjects)
	rg.GET("/projects/:slug", h.GetProject)

	rg.GET("/skills", h.ListSkills)
	rg.GET("/skills/:slug", h.GetSkill)
	rg.GET("/skills/:slug/projects", h.ListSkillProjects)

	rg.GET("/hobbies", h.ListHobbies)
	rg.GET("/hobbies/:slug", h.GetHobby)

	rg.GET("/courses", h.ListCourses)
	rg.GET("/courses/:slug", h.GetCourse)

	rg.GET("/profile", h.GetProfile)
}
