package router

import (
	"github.com/cinehub/auth-service/internal/application"
	"github.com/cinehub/auth-service/internal/container"
	repo "github.com/cinehub/auth-service/internal/domain/repository"
	pginfra "github.com/cinehub/auth-service/internal/infrastructure/postgres"
	handlers "github.com/cinehub/auth-service/internal/interface/http"
	"github.com/cinehub/auth-service/internal/router/modules"
)

type AuthModuleDeps struct {
	Repo    repo.UserRepository
	Service *application.AuthService
	Handler *handlers.AuthHandler
}

func buildAuthDeps() AuthModuleDeps {
	userRepo := pginfra.NewUserRepository(container.GetPGPool())

	service := application.NewAuthService(
		userRepo,
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
		container.GetConfig().ProfileCacheTTL,
	)

	handler := handlers.NewAuthHandler(service, container.GetLogger())

	return AuthModuleDeps{Repo: userRepo, Service: service, Handler: handler}
}

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup.
func InitModules(r *Registry) {
	deps := buildAuthDeps()
	r.Add(modules.NewAuthModule(deps.Handler, deps.Repo, container.GetJWT(), container.GetLogger()))
}
