package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cinehub/auth-service/internal/domain/entity"
	repo "github.com/cinehub/auth-service/internal/domain/repository"
	handlers "github.com/cinehub/auth-service/internal/interface/http"
	"github.com/cinehub/auth-service/internal/interface/middleware"
	"github.com/cinehub/auth-service/pkg/helpers"
)

// AuthModule wires the auth HTTP handlers and the access gate into routes.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET/PUT /api/auth/profile
// Admin: GET /api/auth/users
type AuthModule struct {
	Handler *handlers.AuthHandler
	Repo    repo.UserRepository
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
}

func NewAuthModule(h *handlers.AuthHandler, r repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthModule {
	return &AuthModule{Handler: h, Repo: r, JWT: jwt, Logger: logger}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")

	auth.POST("/register", m.Handler.Register)
	auth.POST("/login", m.Handler.Login)

	protected := auth.Group("/")
	protected.Use(middleware.Protect(m.Repo, m.JWT, m.Logger))
	{
		protected.GET("/profile", m.Handler.GetProfile)
		protected.PUT("/profile", m.Handler.UpdateProfile)

		admin := protected.Group("/")
		admin.Use(middleware.Authorize(entity.RoleAdmin))
		admin.GET("/users", m.Handler.ListUsers)
	}
}
