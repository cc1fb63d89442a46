package router

import (
	"github.com/Diego-Alvarez-1/ChambaInfo/internal/application"
	"github.com/Diego-Alvarez-1/ChambaInfo/internal/container"
	pginfra "github.com/Diego-Alvarez-1/ChambaInfo/internal/infrastructure/postgres"
	"github.com/Diego-Alvarez-1/ChambaInfo/internal/infrastructure/reniec"
	handlers "github.com/Diego-Alvarez-1/ChambaInfo/internal/interface/http"
	"github.com/Diego-Alvarez-1/ChambaInfo/internal/router/modules"
)

// InitModules builds the service graph from the container singletons and
// registers every feature module. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	jobs := pginfra.NewJobRepository(pool)
	apps := pginfra.NewApplicationRepository(pool)

	var verifier reniec.Verifier = reniec.NewClient(cfg.ReniecURL, cfg.ReniecToken, cfg.ReniecTimeout, logger)
	if rdb := container.GetRedis(); rdb != nil {
		verifier = reniec.NewCachedVerifier(verifier, rdb, cfg.ReniecCacheTTL, logger)
	}

	authSvc := application.NewAuthService(users, verifier, container.GetTokens(), logger)
	jobSvc := application.NewJobService(jobs, users, container.GetRabbitPub(), container.GetES(), cfg.ESJobsIndex, logger)
	appSvc := application.NewApplicationService(apps, jobs, users, container.GetRabbitPub(), logger)
	profileSvc := application.NewProfileService(users, container.GetGCS(), cfg.GCSBucket, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, verifier, logger)))
	r.Add(modules.NewJobModule(handlers.NewJobHandler(jobSvc, logger), handlers.NewApplicationHandler(appSvc, logger)))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(profileSvc, logger)))
	if cfg.DebugMetrics {
		r.Add(modules.NewDebugModule())
	}
}
