package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-backend/internal/application"
	"github.com/oksasatya/portfolio-backend/internal/container"
	handlers "github.com/oksasatya/portfolio-backend/internal/interface/http"
	"github.com/oksasatya/portfolio-backend/internal/interface/middleware"
)

// AdminModule mounts the admin console API under /admin behind Auth.
type AdminModule struct {
	Handler  *handlers.AdminHandler
	Sessions middleware.SessionResolver
}

func NewAdminModule(h *handlers.AdminHandler, sessions middleware.SessionResolver) *AdminModule {
	return &AdminModule{Handler: h, Sessions: sessions}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	h := m.Handler
	admin := rg.Group("/admin")
	admin.Use(
		middleware.Auth(m.Sessions),
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
	)

	admin.GET("/projects", h.ListProjects)
	admin.POST("/projects", h.CreateProject)
	admin.POST("/projects/reorder", h.Reorder(application.KindProjects))
	admin.GET("/projects/:id", h.GetProject)
	admin.PUT("/projects/:id", h.UpdateProject)
	admin.DELETE("/projects/:id", h.DeleteProject)

	admin.GET("/skills", h.ListSkills)
	admin.POST("/skills", h.CreateSkill)
	admin.POST("/skills/reorder", h.Reorder(application.KindSkills))
	admin.GET("/skills/:id", h.GetSkill)
	admin.PUT("/skills/:id", h.UpdateSkill)
	admin.DELETE("/skills/:id", h.DeleteSkill)

	admin.GET("/hobbies", h.ListHobbies)
	admin.POST("/hobbies", h.CreateHobby)
	admin.POST("/hobbies/reorder", h.Reorder(application.KindHobbies))
	admin.GET("/hobbies/:id", h.GetHobby)
	admin.PUT("/hobbies/:id", h.UpdateHobby)
	admin.DELETE("/hobbies/:id", h.DeleteHobby)

	admin.GET("/courses", h.ListCourses)
	admin.POST("/courses", h.CreateCourse)
	admin.POST("/courses/reorder", h.Reorder(application.KindCourses))
	admin.GET("/courses/:id", h.GetCourse)
	admin.PUT("/courses/:id", h.UpdateCourse)
	admin.DELETE("/courses/:id", h.DeleteCourse)

	admin.GET("/profile", h.GetProfile)
	admin.PUT("/profile", h.UpdateProfile)

	admin.POST("/uploads/:folder", h.Upload)

	admin.GET("/messages", h.ListMessages)
	admin.PATCH("/messages/:id/read", h.MarkMessageRead)
	admin.DELETE("/messages/:id", h.DeleteMessage)

	admin.GET("/stats", h.Stats)
}
