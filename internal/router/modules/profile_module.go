package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/container"
	handlers "github.com/Diego-Alvarez-1/ChambaInfo/internal/interface/http"
	"github.com/Diego-Alvarez-1/ChambaInfo/internal/interface/middleware"
)

type ProfileModule struct {
	Handler *handlers.ProfileHandler
}

func NewProfileModule(h *handlers.ProfileHandler) *ProfileModule {
	return &ProfileModule{Handler: h}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth())
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyBySubject(), nil))
	{
		auth.GET("/profile", m.Handler.Get)
		auth.PUT("/profile", m.Handler.Update)
		// Uploads go straight to object storage, keep them on a tighter budget.
		uploadLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyBySubject(), nil)
		auth.POST("/profile/documents/:kind", uploadLimiter, m.Handler.UploadDocument)
		auth.DELETE("/profile/documents/:kind", m.Handler.DeleteDocument)
	}
}
