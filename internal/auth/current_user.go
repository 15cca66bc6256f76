// Package auth resolves who is making a request and guards routes that need a user.
package auth

import (
	"errors"

	"warbler/backend/internal/database"
	"warbler/backend/internal/models"
	"warbler/backend/internal/session"
	"warbler/backend/pkg/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	UserIDKey      = "userID"
	CurrentUserKey = "currentUser"
)

// CurrentUserMiddleware loads the user named by the session. A session
// pointing at a deleted user is logged out.
// It must be used AFTER session.Middleware.
func CurrentUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.Get(c)
		if !sess.IsAuthenticated() {
			c.Next()
			return
		}

		user, err := models.FindUser(database.DB, sess.UserID)
		if err != nil {
			if !errors.Is(err, models.ErrNotFound) {
				log.L.Error("load session user", zap.Uint("user_id", sess.UserID), zap.Error(err))
			}
			sess.Logout()
			c.Next()
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the logged-in user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(CurrentUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// UserID returns the authenticated user id from the session or a bearer token.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
