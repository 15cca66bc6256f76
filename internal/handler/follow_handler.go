package handler

import (
	"errors"
	"net/http"

	"warbler/backend/internal/auth"
	"warbler/backend/internal/database"
	"warbler/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// ShowFollowing lists the users someone follows.
func ShowFollowing(c *gin.Context) {
	user, data, ok := loadProfile(c)
	if !ok {
		return
	}
	users, err := user.Following(database.DB)
	if err != nil {
		serverError(c, "load following", err)
		return
	}
	data["Title"] = "Following"
	data["Users"] = users
	render(c, http.StatusOK, "users-follow.html", data)
}

// ShowFollowers lists the users following someone.
func ShowFollowers(c *gin.Context) {
	user, data, ok := loadProfile(c)
	if !ok {
		return
	}
	users, err := user.Followers(database.DB)
	if err != nil {
		serverError(c, "load followers", err)
		return
	}
	data["Title"] = "Followers"
	data["Users"] = users
	render(c, http.StatusOK, "users-follow.html", data)
}

// loadTarget fetches the user named by :id for a follow action.
func loadTarget(c *gin.Context) (*models.User, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		NotFound(c)
		return nil, false
	}
	target, err := models.FindUser(database.DB, id)
	if errors.Is(err, models.ErrNotFound) {
		NotFound(c)
		return nil, false
	}
	if err != nil {
		serverError(c, "load user", err)
		return nil, false
	}
	return target, true
}

// FollowUser makes the logged-in user follow :id.
func FollowUser(c *gin.Context) {
	me := auth.CurrentUser(c)
	target, ok := loadTarget(c)
	if !ok {
		return
	}

	err := me.Follow(database.DB, target)
	if errors.Is(err, models.ErrSelfFollow) {
		flash(c, "You cannot follow yourself.", flashWarning)
	} else if err != nil {
		serverError(c, "follow user", err)
		return
	}
	redirect(c, userPath(me.ID)+"/following")
}

// StopFollowing removes the follow from the logged-in user to :id.
func StopFollowing(c *gin.Context) {
	me := auth.CurrentUser(c)
	target, ok := loadTarget(c)
	if !ok {
		return
	}

	if err := me.Unfollow(database.DB, target); err != nil {
		serverError(c, "unfollow user", err)
		return
	}
	redirect(c, userPath(me.ID)+"/following")
}
