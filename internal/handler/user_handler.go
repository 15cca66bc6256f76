package handler

import (
	"errors"
	"net/http"
	"strconv"

	"warbler/backend/internal/auth"
	"warbler/backend/internal/database"
	"warbler/backend/internal/models"
	"warbler/backend/internal/session"

	"github.com/gin-gonic/gin"
)

// ProfileForm is posted by the edit profile page.
type ProfileForm struct {
	Username       string `form:"username" binding:"required,notblank"`
	Email          string `form:"email" binding:"required,email"`
	ImageURL       string `form:"image_url"`
	HeaderImageURL string `form:"header_image_url"`
	Bio            string `form:"bio"`
	Location       string `form:"location"`
}

// ListUsers shows every user, or those matching ?q=.
func ListUsers(c *gin.Context) {
	q := c.Query("q")
	users, err := models.SearchUsers(database.DB, q)
	if err != nil {
		serverError(c, "search users", err)
		return
	}
	render(c, http.StatusOK, "users-index.html", gin.H{"Users": users, "Query": q})
}

// loadProfile fetches the user named by :id with the data every profile
// page shows. It writes the response itself when it returns false.
func loadProfile(c *gin.Context) (*models.User, gin.H, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		NotFound(c)
		return nil, nil, false
	}
	user, err := models.FindUser(database.DB, id)
	if errors.Is(err, models.ErrNotFound) {
		NotFound(c)
		return nil, nil, false
	}
	if err != nil {
		serverError(c, "load user", err)
		return nil, nil, false
	}

	counts, err := user.Counts(database.DB)
	if err != nil {
		serverError(c, "count user stats", err)
		return nil, nil, false
	}

	data := gin.H{"User": user, "Counts": counts, "IsFollowing": false}
	if viewer := auth.CurrentUser(c); viewer != nil {
		data["IsFollowing"] = viewer.IsFollowing(database.DB, user)
	}
	return user, data, true
}

// ShowUser renders a profile with the user's messages.
func ShowUser(c *gin.Context) {
	user, data, ok := loadProfile(c)
	if !ok {
		return
	}
	messages, err := user.Messages(database.DB, models.TimelineLimit)
	if err != nil {
		serverError(c, "load user messages", err)
		return
	}
	data["Messages"] = messages
	render(c, http.StatusOK, "users-show.html", data)
}

// ShowUserLikes renders the messages a user has liked.
func ShowUserLikes(c *gin.Context) {
	user, data, ok := loadProfile(c)
	if !ok {
		return
	}
	messages, err := user.LikedMessages(database.DB)
	if err != nil {
		serverError(c, "load liked messages", err)
		return
	}
	data["Messages"] = messages
	render(c, http.StatusOK, "users-likes.html", data)
}

func EditProfile(c *gin.Context) {
	user := auth.CurrentUser(c)
	render(c, http.StatusOK, "users-edit.html", gin.H{"Form": ProfileForm{
		Username:       user.Username,
		Email:          user.Email,
		ImageURL:       user.ImageURL,
		HeaderImageURL: user.HeaderImageURL,
		Bio:            user.Bio,
		Location:       user.Location,
	}})
}

// UpdateProfile saves the edited profile of the logged-in user.
func UpdateProfile(c *gin.Context) {
	user := auth.CurrentUser(c)

	var form ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusOK, "users-edit.html", gin.H{"Form": form, "Errors": formErrors(err)})
		return
	}

	err := user.UpdateProfile(database.DB, models.ProfileInput{
		Username:       form.Username,
		Email:          form.Email,
		ImageURL:       form.ImageURL,
		HeaderImageURL: form.HeaderImageURL,
		Bio:            form.Bio,
		Location:       form.Location,
	})
	if errors.Is(err, models.ErrDuplicateUser) {
		flash(c, "Username or email already taken", flashDanger)
		render(c, http.StatusOK, "users-edit.html", gin.H{"Form": form})
		return
	}
	if err != nil {
		serverError(c, "update profile", err)
		return
	}

	flash(c, "Profile updated.", flashSuccess)
	redirect(c, userPath(user.ID))
}

// DeleteUser removes the logged-in user and everything they wrote.
func DeleteUser(c *gin.Context) {
	user := auth.CurrentUser(c)
	if err := models.DeleteUser(database.DB, user.ID); err != nil && !errors.Is(err, models.ErrNotFound) {
		serverError(c, "delete user", err)
		return
	}

	session.Get(c).Logout()
	flash(c, "Your account has been deleted.", flashSuccess)
	redirect(c, "/signup")
}

func userPath(id uint) string {
	return "/users/" + strconv.FormatUint(uint64(id), 10)
}
