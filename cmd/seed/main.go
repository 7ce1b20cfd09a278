package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-backend/config"
	"github.com/oksasatya/portfolio-backend/internal/application"
	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
	pginfra "github.com/oksasatya/portfolio-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/search"
	"github.com/oksasatya/portfolio-backend/pkg/helpers"
)

// seed creates or resets the admin account from ADMIN_EMAIL / ADMIN_PASSWORD,
// makes sure a profile row exists and optionally rebuilds the project index.
func main() {
	reindex := flag.Bool("reindex", false, "rebuild the Elasticsearch project index")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	db := pginfra.NewClient(pool)

	auth := application.NewAuthService(pginfra.NewAdminUserRepository(db), nil, nil, logger)
	admin, err := auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminDisplayName)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	helpers.LogInfo(logger, "admin ensured", logrus.Fields{"id": admin.ID, "email": admin.Email})

	profiles := pginfra.NewProfileRepository(db)
	p, err := profiles.Get(ctx)
	if err != nil {
		log.Fatalf("failed to read profile: %v", err)
	}
	if p == nil {
		name := cfg.OwnerName
		if p, err = profiles.Upsert(ctx, entity.ProfilePatch{FullName: &name}); err != nil {
			log.Fatalf("failed to create profile: %v", err)
		}
		helpers.LogInfo(logger, "profile created", logrus.Fields{"id": p.ID})
	}

	if !*reindex {
		return
	}
	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("failed to init elasticsearch: %v", err)
	}
	index := search.NewProjectIndex(es, cfg.ESProjectsIndex, logger)
	svc := application.NewAdminService(db, nil, nil, index, logger, cfg.FallbackLang)
	n, err := svc.ReindexProjects(ctx)
	if err != nil {
		log.Fatalf("reindex failed after %d projects: %v", n, err)
	}
	helpers.LogInfo(logger, "projects reindexed", logrus.Fields{"count": n, "index": cfg.ESProjectsIndex})
}
