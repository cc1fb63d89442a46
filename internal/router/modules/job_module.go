package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/container"
	handlers "github.com/Diego-Alvarez-1/ChambaInfo/internal/interface/http"
	"github.com/Diego-Alvarez-1/ChambaInfo/internal/interface/middleware"
)

type JobModule struct {
	Jobs         *handlers.JobHandler
	Applications *handlers.ApplicationHandler
}

func NewJobModule(jobs *handlers.JobHandler, apps *handlers.ApplicationHandler) *JobModule {
	return &JobModule{Jobs: jobs, Applications: apps}
}

func (m *JobModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	searchLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	// Public browsing
	rg.GET("/jobs", browseLimiter, m.Jobs.ListActive)
	rg.GET("/jobs/search", searchLimiter, m.Jobs.Search)
	rg.GET("/jobs/:id", browseLimiter, m.Jobs.Get)
	rg.GET("/employers/:id/jobs", browseLimiter, m.Jobs.ListByEmployer)

	// Everything that writes or exposes applicant data requires a login.
	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth())
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyBySubject(), nil))
	{
		auth.POST("/jobs", m.Jobs.Publish)
		auth.PUT("/jobs/:id/finish", m.Jobs.Finish)
		auth.GET("/employer/jobs", m.Jobs.ListMine)
		auth.GET("/employer/stats", m.Jobs.Stats)

		auth.POST("/jobs/:id/apply", m.Applications.Apply)
		auth.GET("/jobs/:id/applied", m.Applications.HasApplied)
		auth.GET("/jobs/:id/applications", m.Applications.ListByJob)
		auth.GET("/applications/mine", m.Applications.ListMine)
		auth.PUT("/applications/:id/status", m.Applications.UpdateStatus)
		auth.PUT("/applications/:id/seen", m.Applications.MarkSeen)
	}
}
