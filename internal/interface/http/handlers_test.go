package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/portfolio-backend/internal/application"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/postgres/pgtest"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/search"
	"github.com/oksasatya/portfolio-backend/internal/interface/middleware"
	"github.com/oksasatya/portfolio-backend/pkg/helpers"
	"github.com/oksasatya/portfolio-backend/pkg/i18n"
	"github.com/oksasatya/portfolio-backend/pkg/mailer"
	mailtpl "github.com/oksasatya/portfolio-backend/pkg/mailer/templates"
	"github.com/oksasatya/portfolio-backend/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init([]string{"es", "en"})
	os.Exit(m.Run())
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Error   struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func call(t *testing.T, r http.Handler, method, target string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

const (
	skillGo      = "5a4e0000-0000-4000-8000-000000000001"
	skillAngular = "5a4e0000-0000-4000-8000-000000000002"
	projectAPI   = "9e0c0000-0000-4000-8000-000000000001"
	projectBlog  = "9e0c0000-0000-4000-8000-000000000002"
	projectDraft = "9e0c0000-0000-4000-8000-000000000003"
	messageID    = "3c1d0000-0000-4000-8000-000000000001"
)

func seedSite(f *pgtest.Fake) {
	f.Seed(postgres.TableSkills,
		map[string]any{"id": skillGo, "name": "Go", "slug": "go", "type": "backend", "featured": true, "display_order": 0},
		map[string]any{"id": skillAngular, "name": "Angular", "slug": "angular", "type": "frontend", "featured": false, "display_order": 1},
	)
	f.Seed(postgres.TableProjects,
		map[string]any{"id": projectAPI, "slug": "api", "title": map[string]string{"es": "Servicio", "en": "Service"}, "display_order": 1, "published": true},
		map[string]any{"id": projectBlog, "slug": "blog", "title": map[string]string{"es": "Blog"}, "display_order": 0, "published": true},
		map[string]any{"id": projectDraft, "slug": "draft", "title": map[string]string{"es": "Borrador"}, "display_order": 2, "published": false},
	)
	f.Seed(postgres.TableProjectSkills,
		map[string]any{"project_id": projectAPI, "skill_id": skillGo},
		map[string]any{"project_id": projectBlog, "skill_id": skillAngular},
	)
	f.Seed(postgres.TableProfile, map[string]any{
		"id": "me", "full_name": "Ana", "headline": map[string]string{"es": "Desarrolladora", "en": "Developer"},
		"cv_url_es": "https://cdn.example.com/cv-es.pdf",
	})
}

type stubSearch struct {
	docs []search.ProjectDocument
	q    string
}

func (s *stubSearch) Search(_ context.Context, q string, _ int) ([]search.ProjectDocument, error) {
	s.q = q
	return s.docs, nil
}

func publicRouter(f *pgtest.Fake, srch ProjectSearcher) *gin.Engine {
	h := &PublicHandler{
		Projects: postgres.NewProjectRepository(f),
		Skills:   postgres.NewSkillRepository(f),
		Hobbies:  postgres.NewHobbyRepository(f),
		Courses:  postgres.NewCourseRepository(f),
		Profile:  postgres.NewProfileRepository(f),
		Search:   srch,
		Fallback: "es",
	}
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(), middleware.Lang(i18n.NewNegotiator([]string{"es", "en"}, "es")))
	r.GET("/projects", h.ListProjects)
	r.GET("/projects/search", h.SearchProjects)
	r.GET("/projects/:slug", h.GetProject)
	r.GET("/skills", h.ListSkills)
	r.GET("/skills/:slug", h.GetSkill)
	r.GET("/skills/:slug/projects", h.ListSkillProjects)
	r.GET("/hobbies/:slug", h.GetHobby)
	r.GET("/profile", h.GetProfile)
	return r
}

func TestPublic_ListProjectsResolvesLanguage(t *testing.T) {
	f := pgtest.New()
	seedSite(f)
	r := publicRouter(f, nil)

	w, env := call(t, r, http.MethodGet, "/projects?lang=en", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "en", env.Meta["lang"])
	ps := decode[[]ProjectView](t, env.Data)
	require.Len(t, ps, 2)
	assert.Equal(t, "blog", ps[0].Slug)
	assert.Equal(t, "Blog", ps[0].Title.Text)
	assert.Equal(t, "Service", ps[1].Title.Text)
	es, _ := ps[1].Title.Translations.Get("es")
	assert.Equal(t, "Servicio", es)
	require.Len(t, ps[1].Technologies, 1)
	assert.Equal(t, "Go", ps[1].Technologies[0].Name)

	_, env = call(t, r, http.MethodGet, "/projects", nil, "Accept-Language", "de-DE")
	ps = decode[[]ProjectView](t, env.Data)
	assert.Equal(t, "Servicio", ps[1].Title.Text)
}

func TestPublic_GetProject(t *testing.T) {
	f := pgtest.New()
	seedSite(f)
	r := publicRouter(f, nil)

	w, env := call(t, r, http.MethodGet, "/projects/api", nil, "Accept-Language", "en-US,en;q=0.9")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Service", decode[ProjectView](t, env.Data).Title.Text)

	w, env = call(t, r, http.MethodGet, "/projects/draft", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", env.Error.Code)
}

func TestPublic_StoreErrorIs500(t *testing.T) {
	f := pgtest.New()
	f.FailOn("select", "*", errors.New("connection refused"))
	w, env := call(t, publicRouter(f, nil), http.MethodGet, "/projects", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal", env.Error.Code)
	assert.NotContains(t, env.Message, "connection refused")
}

func TestPublic_Skills(t *testing.T) {
	f := pgtest.New()
	seedSite(f)
	r := publicRouter(f, nil)

	_, env := call(t, r, http.MethodGet, "/skills?featured=true", nil)
	ss := decode[[]SkillView](t, env.Data)
	require.Len(t, ss, 1)
	assert.Equal(t, "Go", ss[0].Name)

	_, env = call(t, r, http.MethodGet, "/skills/angular/projects", nil)
	ps := decode[[]ProjectView](t, env.Data)
	require.Len(t, ps, 1)
	assert.Equal(t, "blog", ps[0].Slug)

	_, env = call(t, r, http.MethodGet, "/skills/"+skillGo+"/projects", nil)
	ps = decode[[]ProjectView](t, env.Data)
	require.Len(t, ps, 1)
	assert.Equal(t, "api", ps[0].Slug)

	w, _ := call(t, r, http.MethodGet, "/skills/rust", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = call(t, r, http.MethodGet, "/hobbies/none", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublic_SkillProjectsUnknownReference(t *testing.T) {
	f := pgtest.New()
	seedSite(f)
	r := publicRouter(f, nil)

	w, env := call(t, r, http.MethodGet, "/skills/does-not-exist/projects", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", env.Error.Code)
	assert.Empty(t, f.CallsFor("select", postgres.TableProjects))

	w, env = call(t, r, http.MethodGet, "/skills/5a4e0000-0000-4000-8000-0000000000ff/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]ProjectView](t, env.Data))
}

func TestPublic_Profile(t *testing.T) {
	f := pgtest.New()
	seedSite(f)
	r := publicRouter(f, nil)

	_, env := call(t, r, http.MethodGet, "/profile?lang=en", nil)
	p := decode[ProfileView](t, env.Data)
	assert.Equal(t, "Developer", p.Headline.Text)
	require.NotNil(t, p.CVURL)
	assert.Equal(t, "https://cdn.example.com/cv-es.pdf", *p.CVURL)

	w, _ := call(t, publicRouter(pgtest.New(), nil), http.MethodGet, "/profile", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublic_Search(t *testing.T) {
	f := pgtest.New()
	_, env := call(t, publicRouter(f, nil), http.MethodGet, "/projects/search?q=go", nil)
	assert.Equal(t, "[]", string(env.Data))

	s := &stubSearch{docs: []search.ProjectDocument{{ID: "p1", Slug: "api", Technologies: []string{"Go"}}}}
	_, env = call(t, publicRouter(f, s), http.MethodGet, "/projects/search?q=go", nil)
	assert.Equal(t, "go", s.q)
	hits := decode[[]ProjectHitView](t, env.Data)
	require.Len(t, hits, 1)
	assert.Equal(t, "api", hits[0].Slug)
}

// Admin

func adminRouter(f *pgtest.Fake, storage application.ObjectStorage) *gin.Engine {
	svc := application.NewAdminService(f, storage, nil, nil, nil, "es")
	h := &AdminHandler{Svc: svc, Fallback: "es", Langs: []string{"es", "en"}, UploadFolders: []string{"projects"}, UploadMaxBytes: 1 << 20}
	r := gin.New()
	r.GET("/projects", h.ListProjects)
	r.POST("/projects", h.CreateProject)
	r.PUT("/projects/:id", h.UpdateProject)
	r.DELETE("/projects/:id", h.DeleteProject)
	r.POST("/projects/reorder", h.Reorder(application.KindProjects))
	r.POST("/skills", h.CreateSkill)
	r.PUT("/profile", h.UpdateProfile)
	r.POST("/uploads/:folder", h.Upload)
	r.GET("/messages", h.ListMessages)
	r.PATCH("/messages/:id/read", h.MarkMessageRead)
	r.GET("/stats", h.Stats)
	return r
}

func TestAdmin_CreateProject(t *testing.T) {
	f := pgtest.New()
	seedSite(f)
	r := adminRouter(f, nil)

	w, env := call(t, r, http.MethodPost, "/projects", map[string]any{
		"title":     map[string]string{"es": "Tablero de tareas", "en": "Task board"},
		"skill_ids": []string{skillGo, skillAngular},
		"published": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	p := decode[ProjectView](t, env.Data)
	assert.Equal(t, "tablero-de-tareas", p.Slug)
	assert.Equal(t, "Tablero de tareas", p.Title.Text)
	assert.Len(t, p.Technologies, 2)
	assert.Len(t, f.Rows(postgres.TableProjectSkills), 4)
}

func TestAdmin_CreateProjectValidation(t *testing.T) {
	f := pgtest.New()
	r := adminRouter(f, nil)

	w, env := call(t, r, http.MethodPost, "/projects", map[string]any{
		"slug":  "Bad Slug",
		"title": map[string]string{"es": "x"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error.Details, "slug")

	w, env = call(t, r, http.MethodPost, "/projects", map[string]any{
		"title": map[string]string{"fr": "Bonjour", "es": " "},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "is required", env.Error.Details["title"])
	assert.Equal(t, "is not a supported language", env.Error.Details["title[fr]"])
	assert.Empty(t, f.CallsFor("insert", postgres.TableProjects))
}

func TestAdmin_UpdateMissingProjectIs404(t *testing.T) {
	f := pgtest.New()
	w, _ := call(t, adminRouter(f, nil), http.MethodPut, "/projects/nope", map[string]any{
		"title": map[string]string{"es": "x"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdmin_Reorder(t *testing.T) {
	f := pgtest.New()
	seedSite(f)
	r := adminRouter(f, nil)

	w, _ := call(t, r, http.MethodPost, "/projects/reorder", map[string]any{"ids": []string{projectDraft, projectAPI, projectBlog}})
	require.Equal(t, http.StatusOK, w.Code)
	_, env := call(t, r, http.MethodGet, "/projects", nil)
	ps := decode[[]ProjectView](t, env.Data)
	assert.Equal(t, []string{projectDraft, projectAPI, projectBlog}, []string{ps[0].ID, ps[1].ID, ps[2].ID})

	w, _ = call(t, r, http.MethodPost, "/projects/reorder", map[string]any{"ids": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = call(t, r, http.MethodPost, "/projects/reorder", map[string]any{"ids": []string{projectAPI, projectAPI}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAdmin_MalformedIDIs404WithoutQuery(t *testing.T) {
	f := pgtest.New()
	seedSite(f)
	r := adminRouter(f, nil)

	w, env := call(t, r, http.MethodPut, "/projects/not-a-uuid", map[string]any{"title": map[string]string{"es": "x"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", env.Error.Code)

	w, _ = call(t, r, http.MethodDelete, "/projects/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Empty(t, f.CallsFor("update", postgres.TableProjects))
	assert.Empty(t, f.CallsFor("delete", postgres.TableProjects))
	assert.Empty(t, f.CallsFor("delete", postgres.TableProjectSkills))
}

func TestAdmin_ReferencesMustBeUUIDs(t *testing.T) {
	f := pgtest.New()
	seedSite(f)
	r := adminRouter(f, nil)

	w, env := call(t, r, http.MethodPost, "/projects", map[string]any{
		"title":     map[string]string{"es": "Nuevo"},
		"skill_ids": []string{skillGo, "go"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "must be a valid UUID", env.Error.Details["skill_ids[1]"])

	w, _ = call(t, r, http.MethodPost, "/projects/reorder", map[string]any{"ids": []string{projectAPI, "blog"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, f.CallsFor("insert", postgres.TableProjects))
	assert.Empty(t, f.CallsFor("update", postgres.TableProjects))
}

func TestAdmin_DuplicateSlugIs409(t *testing.T) {
	f := pgtest.New()
	f.FailOn("insert", postgres.TableProjects, &pgconn.PgError{
		Code:           "23505",
		TableName:      "projects",
		ConstraintName: "projects_slug_key",
		Detail:         "Key (slug)=(api) already exists.",
	})

	w, env := call(t, adminRouter(f, nil), http.MethodPost, "/projects", map[string]any{
		"slug":  "api",
		"title": map[string]string{"es": "Servicio"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", env.Error.Code)
	assert.Equal(t, "Key (slug)=(api) already exists.", env.Message)
	assert.Equal(t, "is already taken", env.Error.Details["slug"])
}

func TestAdmin_CreateSkillRejectsUnknownType(t *testing.T) {
	w, env := call(t, adminRouter(pgtest.New(), nil), http.MethodPost, "/skills", map[string]any{"name": "Go", "type": "database"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "must be one of: frontend, backend, tool, other", env.Error.Details["type"])
}

func TestAdmin_UpdateProfile(t *testing.T) {
	f := pgtest.New()
	r := adminRouter(f, nil)

	w, _ := call(t, r, http.MethodPut, "/profile", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := call(t, r, http.MethodPut, "/profile", map[string]any{"full_name": "Ana", "bio": map[string]string{"es": "Hola"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hola", decode[ProfileView](t, env.Data).Bio.Text)
	assert.Len(t, f.CallsFor("insert", postgres.TableProfile), 1)
}

type uploadStorage struct{ paths []string }

func (u *uploadStorage) Upload(_ context.Context, objectPath, _ string, _ io.Reader) (string, error) {
	u.paths = append(u.paths, objectPath)
	return helpers.PublicURL("media", objectPath), nil
}

func multipartBody(t *testing.T, name string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, _ = fw.Write([]byte("\x89PNG"))
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestAdmin_Upload(t *testing.T) {
	st := &uploadStorage{}
	r := adminRouter(pgtest.New(), st)

	body, ct := multipartBody(t, "cover.PNG")
	req := httptest.NewRequest(http.MethodPost, "/uploads/projects", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, st.paths, 1)
	assert.Regexp(t, `^projects/\d+-[0-9a-f]{12}\.png$`, st.paths[0])
	assert.Contains(t, w.Body.String(), "https://storage.googleapis.com/media/projects/")

	body, ct = multipartBody(t, "x.png")
	req = httptest.NewRequest(http.MethodPost, "/uploads/secrets", body)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, st.paths, 1)
}

func TestAdmin_UploadWithoutStorage(t *testing.T) {
	body, ct := multipartBody(t, "x.png")
	req := httptest.NewRequest(http.MethodPost, "/uploads/projects", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	adminRouter(pgtest.New(), nil).ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAdmin_MessagesAndStats(t *testing.T) {
	f := pgtest.New()
	seedSite(f)
	f.Seed(postgres.TableMessages, map[string]any{"id": messageID, "full_name": "Luis", "email": "luis@example.com", "content": "Hola", "read": false})
	r := adminRouter(f, nil)

	_, env := call(t, r, http.MethodGet, "/messages", nil)
	ms := decode[[]MessageView](t, env.Data)
	require.Len(t, ms, 1)
	assert.False(t, ms[0].Read)

	w, _ := call(t, r, http.MethodPatch, "/messages/"+messageID+"/read", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, f.Rows(postgres.TableMessages)[0]["read"])

	w, _ = call(t, r, http.MethodPatch, "/messages/"+messageID+"/read", map[string]any{"read": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, f.Rows(postgres.TableMessages)[0]["read"])

	w, _ = call(t, r, http.MethodPatch, "/messages/zz/read", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = call(t, r, http.MethodPatch, "/messages/3c1d0000-0000-4000-8000-0000000000ff/read", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, f.CallsFor("update", postgres.TableMessages), 3)

	_, env = call(t, r, http.MethodGet, "/stats", nil)
	st := decode[application.DashboardStats](t, env.Data)
	assert.Equal(t, int64(3), st.Projects)
	assert.Equal(t, int64(2), st.PublishedProjects)
	assert.Equal(t, int64(1), st.UnreadMessages)
}

// Auth

func authRouter(t *testing.T) *gin.Engine {
	t.Helper()
	f := pgtest.New()
	hash, err := helpers.HashPassword("correct horse")
	require.NoError(t, err)
	f.Seed(postgres.TableAdminUsers, map[string]any{"id": "u1", "email": "ana@example.com", "password_hash": hash})
	svc := application.NewAuthService(postgres.NewAdminUserRepository(f), helpers.NewJWTManager("secret", time.Hour, "test"), nil, nil)
	h := NewAuthHandler(svc, nil, "localhost", false)
	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/session", h.Session)
	r.GET("/admin/ping", middleware.Auth(svc), func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"user": c.GetString("userID")}) })
	return r
}

func TestAuth_LoginSessionLogout(t *testing.T) {
	r := authRouter(t)

	w, env := call(t, r, http.MethodPost, "/auth/login", map[string]string{"email": "ana@example.com", "password": "wrong password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", env.Error.Code)

	w, env = call(t, r, http.MethodPost, "/auth/login", map[string]string{"email": "Ana@Example.com", "password": "correct horse"})
	require.Equal(t, http.StatusOK, w.Code)
	cookie := w.Result().Cookies()
	require.NotEmpty(t, cookie)
	assert.Equal(t, helpers.AccessTokenCookie, cookie[0].Name)
	assert.True(t, cookie[0].HttpOnly)

	data := decode[struct {
		AccessToken string      `json:"access_token"`
		Session     sessionView `json:"session"`
	}](t, env.Data)
	assert.Equal(t, "ana", data.Session.DisplayName)

	_, env = call(t, r, http.MethodGet, "/auth/session", nil)
	assert.JSONEq(t, `{"authenticated":false}`, string(env.Data))

	_, env = call(t, r, http.MethodGet, "/auth/session", nil, "Authorization", "Bearer "+data.AccessToken)
	assert.Contains(t, string(env.Data), `"authenticated":true`)

	w, _ = call(t, r, http.MethodGet, "/admin/ping", nil, "Authorization", "Bearer "+data.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = call(t, r, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, -1, w.Result().Cookies()[0].MaxAge)
}

func TestAuth_LoginValidation(t *testing.T) {
	w, env := call(t, authRouter(t), http.MethodPost, "/auth/login", map[string]string{"email": "nope", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "must be a valid email", env.Error.Details["email"])
	assert.Equal(t, "min length 8", env.Error.Details["password"])
}

// Contact

type capturePublisher struct{ jobs []mailer.EmailJob }

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	p.jobs = append(p.jobs, body.(mailer.EmailJob))
	return nil
}

func TestContact_Send(t *testing.T) {
	f := pgtest.New()
	pub := &capturePublisher{}
	svc := application.NewContactService(postgres.NewMessageRepository(f), pub, mailtpl.Branding{SiteName: "Ana"}, "owner@ana.dev", false, nil)
	h := &ContactHandler{Svc: svc, Fallback: "es", MaxBytes: 1 << 16}
	r := gin.New()
	r.Use(middleware.RealIP(), middleware.Lang(i18n.NewNegotiator([]string{"es", "en"}, "es")))
	r.POST("/contact", h.Send)

	w, _ := call(t, r, http.MethodPost, "/contact?lang=en", map[string]string{
		"full_name": "Luis", "email": "luis@example.com", "content": "Hola",
	}, "X-Forwarded-For", "203.0.113.5")
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, f.Rows(postgres.TableMessages), 1)
	require.Len(t, pub.jobs, 1)
	assert.Equal(t, "owner@ana.dev", pub.jobs[0].To)
	assert.Equal(t, "luis@example.com", pub.jobs[0].ReplyTo)
	assert.Equal(t, "203.0.113.5", pub.jobs[0].Data["IP"])

	w, env := call(t, r, http.MethodPost, "/contact", map[string]string{"full_name": "Luis", "email": "bad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "is required", env.Error.Details["content"])
	assert.Len(t, f.Rows(postgres.TableMessages), 1)
}
