package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/container"
	handlers "github.com/Diego-Alvarez-1/ChambaInfo/internal/interface/http"
	"github.com/Diego-Alvarez-1/ChambaInfo/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits. Registration and the
	// registry lookup are the expensive ones, keep those tight.
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	verifyLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	// Alias kept for clients built against the original Spanish routes.
	rg.POST("/auth/registro", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.GET("/auth/verificar-dni/:dni", verifyLimiter, m.Handler.VerifyDNI)
}
