package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-backend/internal/application"
	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
	"github.com/oksasatya/portfolio-backend/pkg/response"
)

// AdminHandler exposes the admin console API. Responses carry every
// translation; the resolved text uses the fallback language.
type AdminHandler struct {
	Svc            *application.AdminService
	Logger         *logrus.Logger
	Fallback       string
	Langs          []string
	UploadFolders  []string
	UploadMaxBytes int64
}

func (h *AdminHandler) resolver() resolver {
	return resolver{lang: h.Fallback, fallback: h.Fallback}
}

// checkTexts reports unsupported language keys and blank required fields.
func (h *AdminHandler) checkTexts(required map[string]entity.LocalizedString, optional map[string]*entity.LocalizedString) map[string]string {
	allowed := make(map[string]bool, len(h.Langs))
	for _, l := range h.Langs {
		allowed[l] = true
	}
	details := map[string]string{}
	check := func(field string, s entity.LocalizedString) {
		for _, l := range s.Langs() {
			if !allowed[l] {
				details[field+"["+l+"]"] = "is not a supported language"
			}
		}
	}
	for field, s := range required {
		if !hasText(s, allowed) {
			details[field] = "is required"
		}
		check(field, s)
	}
	for field, s := range optional {
		if s != nil {
			check(field, *s)
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// hasText reports whether s carries non-blank text in a supported language.
func hasText(s entity.LocalizedString, allowed map[string]bool) bool {
	for _, l := range s.Langs() {
		if v, _ := s.Get(l); allowed[l] && strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

func invalid(c *gin.Context, details map[string]string) {
	response.Fail(c, http.StatusBadRequest, "invalid payload", "invalid_payload", details)
}

// optional maps a blank string to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func optionalAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if v := strings.TrimSpace(s); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Projects

type projectRequest struct {
	Slug         string                 `json:"slug" binding:"omitempty,slug,max=120"`
	Title        entity.LocalizedString `json:"title"`
	Description  entity.LocalizedString `json:"description"`
	Content      entity.LocalizedString `json:"content"`
	CoverImage   *string                `json:"cover_image" binding:"omitempty,url"`
	Gallery      []string               `json:"gallery" binding:"omitempty,dive,url"`
	DemoURL      *string                `json:"demo_url" binding:"omitempty,url"`
	RepoURL      *string                `json:"repo_url" binding:"omitempty,url"`
	DisplayOrder int                    `json:"display_order" binding:"gte=0"`
	Published    bool                   `json:"published"`
	SkillIDs     []string               `json:"skill_ids" binding:"omitempty,dive,required,uuid"`
}

func (h *AdminHandler) bindProject(c *gin.Context) (entity.ProjectInput, bool) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return entity.ProjectInput{}, false
	}
	if d := h.checkTexts(
		map[string]entity.LocalizedString{"title": req.Title},
		map[string]*entity.LocalizedString{"description": &req.Description, "content": &req.Content},
	); d != nil {
		invalid(c, d)
		return entity.ProjectInput{}, false
	}
	return entity.ProjectInput{
		Slug:         req.Slug,
		Title:        req.Title,
		Description:  req.Description,
		Content:      req.Content,
		CoverImage:   optional(req.CoverImage),
		Gallery:      optionalAll(req.Gallery),
		DemoURL:      optional(req.DemoURL),
		RepoURL:      optional(req.RepoURL),
		DisplayOrder: req.DisplayOrder,
		Published:    req.Published,
		SkillIDs:     req.SkillIDs,
	}, true
}

func (h *AdminHandler) ListProjects(c *gin.Context) {
	ps, err := h.Svc.ListProjects(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.resolver().projects(ps), "projects", gin.H{"count": len(ps)})
}

func (h *AdminHandler) GetProject(c *gin.Context) {
	id, ok := pathID(c, "project")
	if !ok {
		return
	}
	p, err := h.Svc.GetProject(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.resolver().project(*p), "project", nil)
}

func (h *AdminHandler) CreateProject(c *gin.Context) {
	in, ok := h.bindProject(c)
	if !ok {
		return
	}
	p, err := h.Svc.CreateProject(c.Request.Context(), in)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusCreated, h.resolver().project(*p), "project created", nil)
}

func (h *AdminHandler) UpdateProject(c *gin.Context) {
	id, ok := pathID(c, "project")
	if !ok {
		return
	}
	in, ok := h.bindProject(c)
	if !ok {
		return
	}
	p, err := h.Svc.UpdateProject(c.Request.Context(), id, in)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.resolver().project(*p), "project updated", nil)
}

func (h *AdminHandler) DeleteProject(c *gin.Context) {
	id, ok := pathID(c, "project")
	if !ok {
		return
	}
	if err := h.Svc.DeleteProject(c.Request.Context(), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"deleted": true}, "project deleted", nil)
}

// Skills

type skillRequest struct {
	Name         string                  `json:"name" binding:"required,max=100"`
	Slug         *string                 `json:"slug" binding:"omitempty,slug,max=120"`
	Icon         *string                 `json:"icon" binding:"omitempty,max=500"`
	Description  *entity.LocalizedString `json:"description"`
	Type         string                  `json:"type" binding:"omitempty,skilltype"`
	Featured     bool                    `json:"featured"`
	DisplayOrder int                     `json:"display_order" binding:"gte=0"`
}

func (h *AdminHandler) bindSkill(c *gin.Context) (entity.SkillInput, bool) {
	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return entity.SkillInput{}, false
	}
	if d := h.checkTexts(nil, map[string]*entity.LocalizedString{"description": req.Description}); d != nil {
		invalid(c, d)
		return entity.SkillInput{}, false
	}
	return entity.SkillInput{
		Name:         strings.TrimSpace(req.Name),
		Slug:         optional(req.Slug),
		Icon:         optional(req.Icon),
		Description:  req.Description,
		Type:         entity.ParseSkillType(req.Type),
		Featured:     req.Featured,
		DisplayOrder: req.DisplayOrder,
	}, true
}

func (h *AdminHandler) ListSkills(c *gin.Context) {
	ss, err := h.Svc.ListSkills(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.resolver().skills(ss), "skills", gin.H{"count": len(ss)})
}

func (h *AdminHandler) GetSkill(c *gin.Context) {
	id, ok := pathID(c, "skill")
	if !ok {
		return
	}
	s, err := h.Svc.GetSkill(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.resolver().skill(*s), "skill", nil)
}

func (h *AdminHandler) CreateSkill(c *gin.Context) {
	in, ok := h.bindSkill(c)
	if !ok {
		return
	}
	s, err := h.Svc.CreateSkill(c.Request.Context(), in)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusCreated, h.resolver().skill(*s), "skill created", nil)
}

func (h *AdminHandler) UpdateSkill(c *gin.Context) {
	id, ok := pathID(c, "skill")
	if !ok {
		return
	}
	in, ok := h.bindSkill(c)
	if !ok {
		return
	}
	s, err := h.Svc.UpdateSkill(c.Request.Context(), id, in)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.resolver().skill(*s), "skill updated", nil)
}

func (h *AdminHandler) DeleteSkill(c *gin.Context) {
	id, ok := pathID(c, "skill")
	if !ok {
		return
	}
	if err := h.Svc.DeleteSkill(c.Request.Context(), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"deleted": true}, "skill deleted", nil)
}

// Hobbies

type hobbyRequest struct {
	Slug         *string                `json:"slug" binding:"omitempty,slug,max=120"`
	Name         entity.LocalizedString `json:"name"`
	Description  entity.LocalizedString `json:"description"`
	Content      entity.LocalizedString `json:"content"`
	Icon         *string                `json:"icon" binding:"omitempty,max=500"`
	CoverImage   *string                `json:"cover_image" binding:"omitempty,url"`
	Gallery      []string               `json:"gallery" binding:"omitempty,dive,url"`
	DisplayOrder int                    `json:"display_order" binding:"gte=0"`
}

func (h *AdminHandler) bindHobby(c *gin.Context) (entity.HobbyInput, bool) {
	var req hobbyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return entity.HobbyInput{}, false
	}
	if d := h.checkTexts(
		map[string]entity.LocalizedString{"name": req.Name},
		map[string]*entity.LocalizedString{"description": &req.Description, "content": &req.Content},
	); d != nil {
		invalid(c, d)
		return entity.HobbyInput{}, false
	}
	return entity.HobbyInput{
		Slug:         optional(req.Slug),
		Name:         req.Name,
		Description:  req.Description,
		Content:      req.Content,
		Icon:         optional(req.Icon),
		CoverImage:   optional(req.CoverImage),
		Gallery:      optionalAll(req.Gallery),
		DisplayOrder: req.DisplayOrder,
	}, true
}

func (h *AdminHandler) ListHobbies(c *gin.Context) {
	hs, err := h.Svc.ListHobbies(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.resolver().hobbies(hs), "hobbies", gin.H{"count": len(hs)})
}

func (h *AdminHandler) GetHobby(c *gin.Context) {
	id, ok := pathID(c, "hobby")
	if !ok {
		return
	}
	hb, err := h.Svc.GetHobby(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.resolver().hobby(*hb), "hobby", nil)
}

func (h *AdminHandler) CreateHobby(c *gin.Context) {
	in, ok := h.bindHobby(c)
	if !ok {
		return
	}
	hb, err := h.Svc.CreateHobby(c.Request.Context(), in)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusCreated, h.resolver().hobby(*hb), "hobby created", nil)
}

func (h *AdminHandler) UpdateHobby(c *gin.Context) {
	id, ok := pathID(c, "hobby")
	if !ok {
		return
	}
	in, ok := h.bindHobby(c)
	if !ok {
		return
	}
	hb, err := h.Svc.UpdateHobby(c.Request.Context(), id, in)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.resolver().hobby(*hb), "hobby updated", nil)
}

func (h *AdminHandler) DeleteHobby(c *gin.Context) {
	id, ok := pathID(c, "hobby")
	if !ok {
		return
	}
	if err := h.Svc.DeleteHobby(c.Request.Context(), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"deleted": true}, "hobby deleted", nil)
}

// Courses

type courseRequest struct {
	Slug           *string                 `json:"slug" binding:"omitempty,slug,max=120"`
	Name           entity.LocalizedString  `json:"name"`
	Institution    entity.LocalizedString  `json:"institution"`
	Description    *entity.LocalizedString `json:"description"`
	CertificateURL *string                 `json:"certificate_url" binding:"omitempty,url"`
	CompletionDate *string                 `json:"completion_date" binding:"omitempty,datetime=2006-01-02"`
	DisplayOrder   int                     `json:"display_order" binding:"gte=0"`
}

func (h *AdminHandler) bindCourse(c *gin.Context) (entity.CourseInput, bool) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return entity.CourseInput{}, false
	}
	if d := h.checkTexts(
		map[string]entity.LocalizedString{"name": req.Name},
		map[string]*entity.LocalizedString{"institution": &req.Institution, "description": req.Description},
	); d != nil {
		invalid(c, d)
		return entity.CourseInput{}, false
	}
	var done *time.Time
	if v := optional(req.CompletionDate); v != nil {
		t, _ := time.Parse("2006-01-02", *v)
		done = &t
	}
	return entity.CourseInput{
		Slug:           optional(req.Slug),
		Name:           req.Name,
		Institution:    req.Institution,
		Description:    req.Description,
		CertificateURL: optional(req.CertificateURL),
		CompletionDate: done,
		DisplayOrder:   req.DisplayOrder,
	}, true
}

func (h *AdminHandler) ListCourses(c *gin.Context) {
	cs, err := h.Svc.ListCourses(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.resolver().courses(cs), "courses", gin.H{"count": len(cs)})
}

func (h *AdminHandler) GetCourse(c *gin.Context) {
	id, ok := pathID(c, "course")
	if !ok {
		return
	}
	co, err := h.Svc.GetCourse(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.resolver().course(*co), "course", nil)
}

func (h *AdminHandler) CreateCourse(c *gin.Context) {
	in, ok := h.bindCourse(c)
	if !ok {
		return
	}
	co, err := h.Svc.CreateCourse(c.Request.Context(), in)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusCreated, h.resolver().course(*co), "course created", nil)
}

func (h *AdminHandler) UpdateCourse(c *gin.Context) {
	id, ok := pathID(c, "course")
	if !ok {
		return
	}
	in, ok := h.bindCourse(c)
	if !ok {
		return
	}
	co, err := h.Svc.UpdateCourse(c.Request.Context(), id, in)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.resolver().course(*co), "course updated", nil)
}

func (h *AdminHandler) DeleteCourse(c *gin.Context) {
	id, ok := pathID(c, "course")
	if !ok {
		return
	}
	if err := h.Svc.DeleteCourse(c.Request.Context(), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"deleted": true}, "course deleted", nil)
}

// Ordering

type reorderRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,required,uuid"`
}

// Reorder persists the given id order as display_order 0..n-1 for kind.
func (h *AdminHandler) Reorder(kind application.ContentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reorderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if err := h.Svc.Reorder(c.Request.Context(), kind, req.IDs); err != nil {
			fail(c, h.Logger, err)
			return
		}
		response.OK(c, http.StatusOK, gin.H{"ids": req.IDs}, string(kind)+" reordered", nil)
	}
}

// Profile

type profileRequest struct {
	FullName     *string                 `json:"full_name" binding:"omitempty,min=1,max=200"`
	Headline     *entity.LocalizedString `json:"headline"`
	Bio          *entity.LocalizedString `json:"bio"`
	AvatarURL    *string                 `json:"avatar_url" binding:"omitempty,url"`
	CVURLEs      *string                 `json:"cv_url_es" binding:"omitempty,url"`
	CVURLEn      *string                 `json:"cv_url_en" binding:"omitempty,url"`
	GithubURL    *string                 `json:"github_url" binding:"omitempty,url"`
	LinkedinURL  *string                 `json:"linkedin_url" binding:"omitempty,url"`
	TwitterURL   *string                 `json:"twitter_url" binding:"omitempty,url"`
	InstagramURL *string                 `json:"instagram_url" binding:"omitempty,url"`
}

func (h *AdminHandler) GetProfile(c *gin.Context) {
	p, err := h.Svc.GetProfile(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if p == nil {
		notFound(c, "profile")
		return
	}
	response.OK(c, http.StatusOK, h.resolver().profile(*p), "profile", nil)
}

// UpdateProfile applies only the fields present in the body.
func (h *AdminHandler) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if d := h.checkTexts(nil, map[string]*entity.LocalizedString{"headline": req.Headline, "bio": req.Bio}); d != nil {
		invalid(c, d)
		return
	}
	patch := entity.ProfilePatch{
		FullName:     req.FullName,
		Headline:     req.Headline,
		Bio:          req.Bio,
		AvatarURL:    req.AvatarURL,
		CVURLEs:      req.CVURLEs,
		CVURLEn:      req.CVURLEn,
		GithubURL:    req.GithubURL,
		LinkedinURL:  req.LinkedinURL,
		TwitterURL:   req.TwitterURL,
		InstagramURL: req.InstagramURL,
	}
	if patch.IsEmpty() {
		invalid(c, map[string]string{"payload": "no fields to update"})
		return
	}
	p, err := h.Svc.UpsertProfile(c.Request.Context(), patch)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.resolver().profile(*p), "profile updated", nil)
}

// Uploads

func (h *AdminHandler) folderAllowed(folder string) bool {
	for _, f := range h.UploadFolders {
		if f == folder {
			return true
		}
	}
	return false
}

// Upload stores the multipart "file" field under an allowed folder.
func (h *AdminHandler) Upload(c *gin.Context) {
	folder := c.Param("folder")
	if !h.folderAllowed(folder) {
		invalid(c, map[string]string{"folder": "is not an upload folder"})
		return
	}
	if h.UploadMaxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.UploadMaxBytes)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Fail(c, http.StatusRequestEntityTooLarge, "file too large", "too_large", nil)
			return
		}
		invalid(c, map[string]string{"file": "is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	url, err := h.Svc.Upload(c.Request.Context(), folder, fh.Filename, contentType, f)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusCreated, gin.H{"url": url}, "uploaded", nil)
}

// Messages

type markReadRequest struct {
	Read *bool `json:"read"`
}

func (h *AdminHandler) ListMessages(c *gin.Context) {
	ms, err := h.Svc.ListMessages(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, messageViews(ms), "messages", gin.H{"count": len(ms)})
}

// MarkMessageRead defaults to read=true when the body omits it.
func (h *AdminHandler) MarkMessageRead(c *gin.Context) {
	id, ok := pathID(c, "message")
	if !ok {
		return
	}
	var req markReadRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	read := req.Read == nil || *req.Read
	if err := h.Svc.MarkMessageRead(c.Request.Context(), id, read); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"id": id, "read": read}, "message updated", nil)
}

func (h *AdminHandler) DeleteMessage(c *gin.Context) {
	id, ok := pathID(c, "message")
	if !ok {
		return
	}
	if err := h.Svc.DeleteMessage(c.Request.Context(), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"deleted": true}, "message deleted", nil)
}

// Dashboard

func (h *AdminHandler) Stats(c *gin.Context) {
	st, err := h.Svc.Stats(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, st, "stats", nil)
}
