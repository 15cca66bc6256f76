package handler

import (
	"io"
	"time"

	"warbler/backend/internal/auth"
	"warbler/backend/internal/hub"

	"github.com/gin-gonic/gin"
)

const (
	streamBuffer    = 16
	keepAlivePeriod = 30 * time.Second
)

// Stream pushes events for the logged-in user as server-sent events until
// the client goes away.
func Stream(c *gin.Context) {
	userID, _ := auth.UserID(c)

	client := make(hub.Client, streamBuffer)
	hub.GlobalHub.Subscribe(userID, client)
	defer hub.GlobalHub.Unsubscribe(userID, client)

	ticker := time.NewTicker(keepAlivePeriod)
	defer ticker.Stop()

	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case data, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent(hub.EventMessageCreated, string(data))
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
}
