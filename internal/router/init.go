package router

import (
	"github.com/oksasatya/portfolio-backend/internal/application"
	"github.com/oksasatya/portfolio-backend/internal/container"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/cache"
	pginfra "github.com/oksasatya/portfolio-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/search"
	handlers "github.com/oksasatya/portfolio-backend/internal/interface/http"
	"github.com/oksasatya/portfolio-backend/internal/router/modules"
	"github.com/oksasatya/portfolio-backend/pkg/helpers"
	mailtpl "github.com/oksasatya/portfolio-backend/pkg/mailer/templates"
)

type Deps struct {
	Admin   *application.AdminService
	Auth    *application.AuthService
	Contact *application.ContactService

	Public       *handlers.PublicHandler
	AdminHandler *handlers.AdminHandler
	AuthHandler  *handlers.AuthHandler
	Contacts     *handlers.ContactHandler
}

// BuildDeps wires services and handlers from the container singletons.
func BuildDeps(db pginfra.Client) Deps {
	cfg := container.GetConfig()
	log := container.GetLogger()
	rdb := container.GetRedis()

	store := cache.NewStore(rdb, cfg.CacheTTL, log)
	index := search.NewProjectIndex(container.GetES(), cfg.ESProjectsIndex, log)

	var storage application.ObjectStorage
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		storage = helpers.NewGCSUploader(gcs, cfg.GCSBucket)
	}
	var sessions application.SessionStore
	if rdb != nil {
		sessions = cache.NewSessionStore(rdb)
	}
	var publisher application.JobPublisher
	if pub := container.GetRabbitPub(); pub != nil {
		publisher = pub
	}

	admin := application.NewAdminService(db, storage, store, index, log, cfg.FallbackLang)
	auth := application.NewAuthService(pginfra.NewAdminUserRepository(db), container.GetJWT(), sessions, log)
	contact := application.NewContactService(
		pginfra.NewMessageRepository(db),
		publisher,
		mailtpl.Branding{SiteName: cfg.SiteName, OwnerName: cfg.OwnerName, SiteURL: cfg.SiteURL, AdminURL: cfg.AdminURL, LogoURL: cfg.LogoURL},
		cfg.OwnerEmail,
		cfg.SendContactReceipt,
		log,
	)

	return Deps{
		Admin:   admin,
		Auth:    auth,
		Contact: contact,
		Public: &handlers.PublicHandler{
			Projects: cache.NewProjectRepository(pginfra.NewProjectRepository(db), store),
			Skills:   cache.NewSkillRepository(pginfra.NewSkillRepository(db), store),
			Hobbies:  cache.NewHobbyRepository(pginfra.NewHobbyRepository(db), store),
			Courses:  cache.NewCourseRepository(pginfra.NewCourseRepository(db), store),
			Profile:  cache.NewProfileRepository(pginfra.NewProfileRepository(db), store),
			Search:   index,
			Logger:   log,
			Fallback: cfg.FallbackLang,
		},
		AdminHandler: &handlers.AdminHandler{
			Svc:            admin,
			Logger:         log,
			Fallback:       cfg.FallbackLang,
			Langs:          cfg.Langs(),
			UploadFolders:  cfg.Folders(),
			UploadMaxBytes: cfg.UploadMaxBytes,
		},
		AuthHandler: handlers.NewAuthHandler(auth, log, cfg.CookieDomain, cfg.CookieSecure),
		Contacts: &handlers.ContactHandler{
			Svc:      contact,
			Logger:   log,
			Fallback: cfg.FallbackLang,
			MaxBytes: cfg.ContactMaxBodyBytes,
		},
	}
}

// InitModules adds every module to the registry. Call it once at startup,
// after the container has been populated.
func InitModules(r *Registry, db pginfra.Client) {
	cfg := container.GetConfig()
	d := BuildDeps(db)

	r.Add(
		modules.NewPublicModule(d.Public),
		modules.NewContactModule(d.Contacts, cfg.ContactRateLimit, cfg.ContactRateWindow),
		modules.NewAuthModule(d.AuthHandler),
		modules.NewAdminModule(d.AdminHandler, d.Auth),
	)
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
