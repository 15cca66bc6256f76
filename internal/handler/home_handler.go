package handler

import (
	"net/http"

	"warbler/backend/internal/auth"
	"warbler/backend/internal/database"
	"warbler/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Home shows the landing page to anonymous visitors and the timeline otherwise.
func Home(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		render(c, http.StatusOK, "home-anon.html", nil)
		return
	}

	messages, err := models.Timeline(database.DB, user, models.TimelineLimit)
	if err != nil {
		serverError(c, "load timeline", err)
		return
	}
	likes, err := user.LikedMessageIDs(database.DB)
	if err != nil {
		serverError(c, "load likes", err)
		return
	}
	counts, err := user.Counts(database.DB)
	if err != nil {
		serverError(c, "count user stats", err)
		return
	}

	render(c, http.StatusOK, "home.html", gin.H{
		"Messages": messages,
		"Likes":    likes,
		"Counts":   counts,
	})
}
