package handler

import (
	"errors"
	"net/http"

	"warbler/backend/internal/database"
	"warbler/backend/internal/models"
	"warbler/backend/internal/session"

	"github.com/gin-gonic/gin"
)

// SignupForm is posted by the signup page.
type SignupForm struct {
	Username string `form:"username" binding:"required,notblank"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
	ImageURL string `form:"image_url"`
}

// LoginForm is posted by the login page.
type LoginForm struct {
	Username string `form:"username" binding:"required,notblank"`
	Password string `form:"password" binding:"required,min=6"`
}

func ShowSignup(c *gin.Context) {
	render(c, http.StatusOK, "signup.html", gin.H{"Form": SignupForm{}})
}

// Signup creates the account and logs it in. A taken username or e-mail
// re-renders the form.
func Signup(c *gin.Context) {
	var form SignupForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusOK, "signup.html", gin.H{"Form": form, "Errors": formErrors(err)})
		return
	}

	user, err := models.Signup(database.DB, models.SignupInput{
		Email:    form.Email,
		Username: form.Username,
		Password: form.Password,
		ImageURL: form.ImageURL,
	})
	if errors.Is(err, models.ErrDuplicateUser) {
		flash(c, "Username or email already taken", flashDanger)
		render(c, http.StatusOK, "signup.html", gin.H{"Form": form})
		return
	}
	if err != nil {
		serverError(c, "signup", err)
		return
	}

	session.Get(c).Login(user.ID)
	redirect(c, "/")
}

func ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"Form": LoginForm{}})
}

func Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusOK, "login.html", gin.H{"Form": form, "Errors": formErrors(err)})
		return
	}

	user, ok := models.Authenticate(database.DB, form.Username, form.Password)
	if !ok {
		flash(c, "Invalid credentials.", flashDanger)
		render(c, http.StatusOK, "login.html", gin.H{"Form": form})
		return
	}

	session.Get(c).Login(user.ID)
	flash(c, "Hello, "+user.Username+"!", flashSuccess)
	redirect(c, "/")
}

func Logout(c *gin.Context) {
	session.Get(c).Logout()
	flash(c, "You have successfully logged out.", flashSuccess)
	redirect(c, "/login")
}
