package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moviebazar/account-service/internal/container"
	handlers "github.com/moviebazar/account-service/internal/interface/http"
	"github.com/moviebazar/account-service/internal/interface/middleware"
	"github.com/moviebazar/account-service/pkg/helpers"
)

// AuthModule wires the account endpoints.
// Public: POST /api/signup, POST /api/login, POST /api/refresh,
// GET /api/check-username/:username
// Protected: POST /api/logout, GET /api/profile
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP())

	rg.POST("/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	rg.GET("/check-username/:username", m.Handler.CheckUsername)

	auth := rg.Group("/")
	auth.Use(middleware.BearerAuth(container.GetRedis(), m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.Profile)
	}
}
