package modules

import (
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moviebazar/account-service/internal/container"
	"github.com/moviebazar/account-service/internal/interface/middleware"
	"github.com/moviebazar/account-service/pkg/response"
)

// DebugModule exposes the health probe and, when enabled, expvar metrics.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		users, _ := container.GetUserRepo().List()
		response.Success(c, http.StatusOK, gin.H{
			"status":     "ok",
			"usersCount": len(users),
			"timestamp":  time.Now().UTC(),
		}, "service healthy", nil)
	})

	if container.GetConfig().DebugMetricsEnabled {
		rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP())
		rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
	}
}
