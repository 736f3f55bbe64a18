package router

import (
	"github.com/moviebazar/account-service/internal/application"
	"github.com/moviebazar/account-service/internal/container"
	handlers "github.com/moviebazar/account-service/internal/interface/http"
	"github.com/moviebazar/account-service/internal/router/modules"
)

type AccountModuleDeps struct {
	Progression *application.ProgressionService
	Accounts    *application.AccountService

	AuthHandler         *handlers.AuthHandler
	GamificationHandler *handlers.GamificationHandler
}

func buildAccountDeps() AccountModuleDeps {
	progression := application.NewProgressionService(
		container.GetUserRepo(),
		container.GetActivityRepo(),
		container.GetRedis(),
		container.GetLogger(),
	)
	if saver := container.GetSaver(); saver != nil {
		progression.OnMutation(saver.Notify)
	}

	accounts := application.NewAccountService(
		container.GetUserRepo(),
		progression,
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
	)

	return AccountModuleDeps{
		Progression: progression,
		Accounts:    accounts,

		AuthHandler:         handlers.NewAuthHandler(accounts, container.GetLogger()),
		GamificationHandler: handlers.NewGamificationHandler(progression, container.GetLogger()),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildAccountDeps()
	r.Add(modules.NewAuthModule(deps.AuthHandler, container.GetJWT()))
	r.Add(modules.NewGamificationModule(deps.GamificationHandler, container.GetJWT()))
	r.Add(modules.NewDebugModule())
}
