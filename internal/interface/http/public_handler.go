package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-backend/internal/domain/repository"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/search"
	"github.com/oksasatya/portfolio-backend/internal/interface/middleware"
	"github.com/oksasatya/portfolio-backend/pkg/response"
)

// ProjectSearcher runs full-text project searches.
type ProjectSearcher interface {
	Search(ctx context.Context, q string, size int) ([]search.ProjectDocument, error)
}

// PublicHandler serves the read-only site API. Every response resolves
// localized fields for the negotiated language.
type PublicHandler struct {
	Projects repository.ProjectRepository
	Skills   repository.SkillRepository
	Hobbies  repository.HobbyRepository
	Courses  repository.CourseRepository
	Profile  repository.ProfileRepository
	Search   ProjectSearcher
	Logger   *logrus.Logger
	Fallback string
}

func (h *PublicHandler) resolver(c *gin.Context) resolver {
	return resolver{lang: middleware.LangFrom(c, h.Fallback), fallback: h.Fallback}
}

func (h *PublicHandler) meta(c *gin.Context, n int) gin.H {
	return gin.H{"lang": middleware.LangFrom(c, h.Fallback), "count": n}
}

func (h *PublicHandler) ListProjects(c *gin.Context) {
	ps, err := h.Projects.ListPublished(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.resolver(c).projects(ps), "projects", h.meta(c, len(ps)))
}

func (h *PublicHandler) GetProject(c *gin.Context) {
	p, err := h.Projects.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if p == nil {
		notFound(c, "project")
		return
	}
	response.OK(c, http.StatusOK, h.resolver(c).project(*p), "project", nil)
}

func (h *PublicHandler) SearchProjects(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	if h.Search == nil {
		response.OK(c, http.StatusOK, []ProjectHitView{}, "search", h.meta(c, 0))
		return
	}
	docs, err := h.Search.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.resolver(c).hits(docs), "search", h.meta(c, len(docs)))
}

// ListSkills returns all skills, or only featured ones with ?featured=true.
func (h *PublicHandler) ListSkills(c *gin.Context) {
	featured, _ := strconv.ParseBool(c.Query("featured"))
	load := h.Skills.List
	if featured {
		load = h.Skills.ListFeatured
	}
	ss, err := load(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.resolver(c).skills(ss), "skills", h.meta(c, len(ss)))
}

func (h *PublicHandler) GetSkill(c *gin.Context) {
	s, err := h.Skills.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if s == nil {
		notFound(c, "skill")
		return
	}
	response.OK(c, http.StatusOK, h.resolver(c).skill(*s), "skill", nil)
}

// ListSkillProjects accepts a skill slug or id.
func (h *PublicHandler) ListSkillProjects(c *gin.Context) {
	ctx := c.Request.Context()
	ref := c.Param("slug")
	skillID := ref
	s, err := h.Skills.GetBySlug(ctx, ref)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	switch {
	case s != nil:
		skillID = s.ID
	case uuid.Validate(ref) != nil:
		notFound(c, "skill")
		return
	}
	ps, err := h.Projects.ListBySkill(ctx, skillID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.resolver(c).projects(ps), "projects", h.meta(c, len(ps)))
}

func (h *PublicHandler) ListHobbies(c *gin.Context) {
	hs, err := h.Hobbies.List(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.resolver(c).hobbies(hs), "hobbies", h.meta(c, len(hs)))
}

func (h *PublicHandler) GetHobby(c *gin.Context) {
	hb, err := h.Hobbies.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if hb == nil {
		notFound(c, "hobby")
		return
	}
	response.OK(c, http.StatusOK, h.resolver(c).hobby(*hb), "hobby", nil)
}

func (h *PublicHandler) ListCourses(c *gin.Context) {
	cs, err := h.Courses.List(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.resolver(c).courses(cs), "courses", h.meta(c, len(cs)))
}

func (h *PublicHandler) GetCourse(c *gin.Context) {
	co, err := h.Courses.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if co == nil {
		notFound(c, "course")
		return
	}
	response.OK(c, http.StatusOK, h.resolver(c).course(*co), "course", nil)
}

func (h *PublicHandler) GetProfile(c *gin.Context) {
	p, err := h.Profile.Get(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if p == nil {
		notFound(c, "profile")
		return
	}
	response.OK(c, http.StatusOK, h.resolver(c).profile(*p), "profile", nil)
}
