package middleware

import (
	"net/http"

	"nusaquest/internal/service"
	"nusaquest/pkg/auth"
	"nusaquest/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type Authorization struct {
	userService service.UserServiceI
}

func NewAuthorization(userService service.UserServiceI) *Authorization {
	return &Authorization{
		userService: userService,
	}
}

// AdminOnly gates a route group to ADMIN and SUPER_ADMIN users. The role
// is re-read from the database rather than trusted from the token, so a
// demoted admin loses access as soon as the row changes.
func (a *Authorization) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		claims, ok := auth.CurrentUser(c)
		if !ok {
			log.Error("user claims not found in context")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}

		user, err := a.userService.Profile(c.Request.Context(), claims.UserID)
		if err != nil {
			log.Error("failed to get user data", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "user not found"})
			return
		}

		if !user.Role.IsAdmin() {
			log.Info("unauthorized access attempt to admin endpoint",
				zap.Int64("user_id", claims.UserID))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin access required"})
			return
		}

		c.Next()
	}
}
