package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cinehub/auth-service/internal/domain/entity"
	repo "github.com/cinehub/auth-service/internal/domain/repository"
	"github.com/cinehub/auth-service/pkg/helpers"
	"github.com/cinehub/auth-service/pkg/response"
)

// CtxUserKey is where Protect stores the resolved account for downstream
// handlers.
const CtxUserKey = "currentUser"

const (
	bearerPrefix   = "Bearer "
	msgNotAuth     = "Not authorized to access this route"
	msgNoUser      = "User not found"
	roleUnknown    = "unknown"
	msgWrongRoleFm = "User role %s is not authorized to access this route"
)

// Protect authenticates a request: extracts the Bearer token, verifies it,
// resolves the live account (hash excluded) and attaches it to the context.
// Missing/malformed/expired tokens all get the same 401 message; only the
// logs distinguish the causes. A valid token whose subject no longer
// resolves gets a distinct 401.
func Protect(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			response.AbortFail(c, http.StatusUnauthorized, msgNotAuth)
			return
		}
		token := header[len(bearerPrefix):]
		if token == "" {
			response.AbortFail(c, http.StatusUnauthorized, msgNotAuth)
			return
		}

		claims, err := jwt.Parse(token)
		if err != nil {
			// Same outward rejection for expired and invalid; keep the
			// cause in the logs.
			cause := "invalid"
			if errors.Is(err, helpers.ErrTokenExpired) {
				cause = "expired"
			}
			logger.WithFields(logrus.Fields{"cause": cause, "path": c.FullPath()}).Debug("token rejected")
			response.AbortFail(c, http.StatusUnauthorized, msgNotAuth)
			return
		}

		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				response.AbortFail(c, http.StatusUnauthorized, msgNoUser)
				return
			}
			logger.WithError(err).Error("account lookup failed")
			response.AbortFail(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// Authorize restricts an already-protected route to the given roles.
// Comparison is exact and case-sensitive. When no identity is attached the
// role reads as "unknown" and the response is a 403, not a 401.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := roleUnknown
		if u := CurrentUser(c); u != nil {
			role = u.Role
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		response.AbortFail(c, http.StatusForbidden, fmt.Sprintf(msgWrongRoleFm, role))
	}
}

// CurrentUser returns the account attached by Protect, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, ok := v.(*entity.User)
	if !ok {
		return nil
	}
	return u
}
