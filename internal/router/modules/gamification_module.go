package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moviebazar/account-service/internal/container"
	handlers "github.com/moviebazar/account-service/internal/interface/http"
	"github.com/moviebazar/account-service/internal/interface/middleware"
	"github.com/moviebazar/account-service/pkg/helpers"
)

// GamificationModule wires the progression endpoints.
// Public: GET /api/levels, GET /api/leaderboard
// Protected: POST /api/activity, PUT /api/avatar, GET /api/progress
type GamificationModule struct {
	Handler *handlers.GamificationHandler
	JWT     *helpers.JWTManager
}

func NewGamificationModule(h *handlers.GamificationHandler, jwt *helpers.JWTManager) *GamificationModule {
	return &GamificationModule{Handler: h, JWT: jwt}
}

func (m *GamificationModule) Register(rg *gin.RouterGroup) {
	rg.GET("/levels", m.Handler.Levels)
	rg.GET("/leaderboard", m.Handler.Leaderboard)

	auth := rg.Group("/")
	auth.Use(middleware.BearerAuth(container.GetRedis(), m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP()),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()),
	)
	{
		auth.POST("/activity", m.Handler.RecordActivity)
		auth.PUT("/avatar", m.Handler.ChangeAvatar)
		auth.GET("/progress", m.Handler.GetProgress)
	}
}
