package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"warbler/backend/internal/auth"
	"warbler/backend/internal/session"
	"warbler/backend/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Flash categories, rendered as bootstrap alert classes.
const (
	flashSuccess = "success"
	flashWarning = "warning"
	flashDanger  = "danger"
)

// render adds the layout data, pops pending flashes and writes the page.
// The session is saved first because it may set a cookie.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CurrentUser"] = auth.CurrentUser(c)
	data["Flashes"] = session.Get(c).PopFlashes()
	saveSession(c)
	c.HTML(status, name, data)
}

func redirect(c *gin.Context, location string) {
	saveSession(c)
	c.Redirect(http.StatusFound, location)
}

func flash(c *gin.Context, message, category string) {
	session.Get(c).AddFlash(message, category)
}

func saveSession(c *gin.Context) {
	if err := session.Save(c); err != nil {
		log.L.Error("save session", zap.Error(err))
	}
}

// NotFound renders the 404 page. It doubles as the router's NoRoute handler.
func NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "error.html", gin.H{
		"Status": http.StatusNotFound,
		"Title":  "Page not found",
	})
}

func serverError(c *gin.Context, msg string, err error) {
	log.L.Error(msg, zap.String("path", c.Request.URL.Path), zap.Error(err))
	_ = c.Error(err)
	render(c, http.StatusInternalServerError, "error.html", gin.H{
		"Status": http.StatusInternalServerError,
		"Title":  "Something went wrong",
	})
}

// parseID reads a numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// formErrors turns binding failures into sentences for the form view.
func formErrors(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid form submission."}
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "notblank":
			messages = append(messages, fmt.Sprintf("%s is required.", fe.Field()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid e-mail address.", fe.Field()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters.", fe.Field(), fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters.", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid.", fe.Field()))
		}
	}
	return messages
}
