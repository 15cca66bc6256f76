package auth

import (
	"net/http"

	"warbler/backend/internal/session"
	"warbler/backend/pkg/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UnauthorizedMessage is flashed when an anonymous client hits a page that needs a user.
const UnauthorizedMessage = "Access unauthorized."

// LoginRequired redirects anonymous requests to redirectTo with a flash and
// stops the chain, so the guarded handler never mutates anything.
// It must be used AFTER CurrentUserMiddleware.
func LoginRequired(redirectTo string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) != nil {
			c.Next()
			return
		}

		session.Get(c).AddFlash(UnauthorizedMessage, "danger")
		if err := session.Save(c); err != nil {
			log.L.Error("save session", zap.Error(err))
		}
		c.Redirect(http.StatusFound, redirectTo)
		c.Abort()
	}
}
