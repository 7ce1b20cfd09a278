package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/portfolio-backend/config"
	"github.com/oksasatya/portfolio-backend/internal/container"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/postgres/pgtest"
	"github.com/oksasatya/portfolio-backend/internal/interface/middleware"
	"github.com/oksasatya/portfolio-backend/pkg/helpers"
	"github.com/oksasatya/portfolio-backend/pkg/i18n"
	"github.com/oksasatya/portfolio-backend/pkg/validation"
)

func newTestEngine(t *testing.T, debug bool) (*gin.Engine, *pgtest.Fake) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Load()
	cfg.DebugMetricsEnabled = debug
	container.SetConfig(cfg)
	container.SetLogger(logrus.New())
	container.SetJWT(helpers.NewJWTManager("secret", time.Hour, "test"))
	validation.Init(cfg.Langs())

	f := pgtest.New()
	engine := gin.New()
	reg := NewRegistry(engine)
	reg.Use(middleware.RequestIDMiddleware(), middleware.RealIP(), middleware.Lang(i18n.NewNegotiator(cfg.Langs(), cfg.FallbackLang)))
	InitModules(reg, f)
	reg.RegisterAll()
	return engine, f
}

func get(r http.Handler, target string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_PublicAndAdmin(t *testing.T) {
	r, f := newTestEngine(t, false)
	f.Seed(postgres.TableProjects, map[string]any{"id": "p1", "slug": "api", "title": map[string]string{"es": "API"}, "published": true})

	w := get(r, "/api/projects")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"api"`)
	assert.Equal(t, "es", w.Header().Get("Content-Language"))
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	assert.Equal(t, http.StatusOK, get(r, "/api/projects/search?q=api").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/api/projects/nope").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/admin/projects").Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/auth/session").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/api/debug/vars").Code)
}

func TestRoutes_DebugVarsPrivateOnly(t *testing.T) {
	r, _ := newTestEngine(t, true)
	assert.Equal(t, http.StatusOK, get(r, "/api/debug/vars", "X-Forwarded-For", "127.0.0.1").Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/api/debug/vars", "X-Forwarded-For", "203.0.113.1").Code)
}

func TestRoutes_UnknownRouteUsesEnvelope(t *testing.T) {
	r, _ := newTestEngine(t, false)
	w := get(r, "/api/nothing-here")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"not_found"`)
}
