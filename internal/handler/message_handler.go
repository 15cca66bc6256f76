package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"warbler/backend/internal/auth"
	"warbler/backend/internal/database"
	"warbler/backend/internal/hub"
	"warbler/backend/internal/models"
	"warbler/backend/pkg/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessageForm is posted by the new message page.
type MessageForm struct {
	Text string `form:"text" binding:"required,notblank,max=140"`
}

// MessageEvent is the payload of a message.created event.
type MessageEvent struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
}

func NewMessage(c *gin.Context) {
	render(c, http.StatusOK, "messages-new.html", gin.H{"Form": MessageForm{}})
}

// CreateMessage posts a message as the logged-in user and pushes it to the
// author's followers.
func CreateMessage(c *gin.Context) {
	me := auth.CurrentUser(c)

	var form MessageForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusOK, "messages-new.html", gin.H{"Form": form, "Errors": formErrors(err)})
		return
	}

	message, err := models.CreateMessage(database.DB, me.ID, strings.TrimSpace(form.Text))
	if err != nil {
		serverError(c, "create message", err)
		return
	}
	publishMessage(me, message)

	redirect(c, userPath(me.ID))
}

func publishMessage(author *models.User, message *models.Message) {
	followerIDs, err := models.FollowerIDs(database.DB, author.ID)
	if err != nil {
		log.L.Warn("load followers for broadcast", zap.Uint("user_id", author.ID), zap.Error(err))
		return
	}
	hub.GlobalHub.Broadcast(followerIDs, hub.Event{
		Type: hub.EventMessageCreated,
		Payload: MessageEvent{
			ID:        message.ID,
			Text:      message.Text,
			Timestamp: message.Timestamp,
			UserID:    author.ID,
			Username:  author.Username,
		},
	})
}

// loadMessage fetches the message named by :id, rendering 404 when absent.
func loadMessage(c *gin.Context) (*models.Message, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		NotFound(c)
		return nil, false
	}
	message, err := models.FindMessage(database.DB, id)
	if errors.Is(err, models.ErrNotFound) {
		NotFound(c)
		return nil, false
	}
	if err != nil {
		serverError(c, "load message", err)
		return nil, false
	}
	return message, true
}

func ShowMessage(c *gin.Context) {
	message, ok := loadMessage(c)
	if !ok {
		return
	}

	liked := false
	if me := auth.CurrentUser(c); me != nil {
		likes, err := me.LikedMessageIDs(database.DB)
		if err != nil {
			serverError(c, "load likes", err)
			return
		}
		liked = likes[message.ID]
	}

	render(c, http.StatusOK, "messages-show.html", gin.H{"Message": message, "Liked": liked})
}

// DeleteMessage deletes a message owned by the logged-in user.
func DeleteMessage(c *gin.Context) {
	me := auth.CurrentUser(c)
	message, ok := loadMessage(c)
	if !ok {
		return
	}
	if message.UserID != me.ID {
		flash(c, auth.UnauthorizedMessage, flashDanger)
		redirect(c, "/")
		return
	}

	if err := models.DeleteMessage(database.DB, message.ID); err != nil && !errors.Is(err, models.ErrNotFound) {
		serverError(c, "delete message", err)
		return
	}
	redirect(c, userPath(me.ID))
}

// AddLike toggles the logged-in user's like on a message.
func AddLike(c *gin.Context) {
	me := auth.CurrentUser(c)
	id, ok := parseID(c, "id")
	if !ok {
		NotFound(c)
		return
	}

	_, err := models.ToggleLike(database.DB, me.ID, id)
	switch {
	case errors.Is(err, models.ErrNotFound):
		NotFound(c)
		return
	case errors.Is(err, models.ErrSelfLike):
		flash(c, "You cannot like your own message.", flashWarning)
	case err != nil:
		serverError(c, "toggle like", err)
		return
	}
	redirect(c, "/")
}

func RemoveLike(c *gin.Context) {
	me := auth.CurrentUser(c)
	id, ok := parseID(c, "id")
	if !ok {
		NotFound(c)
		return
	}

	if err := models.RemoveLike(database.DB, me.ID, id); err != nil {
		serverError(c, "remove like", err)
		return
	}
	redirect(c, "/messages/liked")
}

// LikedMessages lists everything the logged-in user has liked.
func LikedMessages(c *gin.Context) {
	me := auth.CurrentUser(c)
	messages, err := me.LikedMessages(database.DB)
	if err != nil {
		serverError(c, "load liked messages", err)
		return
	}
	render(c, http.StatusOK, "messages-liked.html", gin.H{"Messages": messages})
}
