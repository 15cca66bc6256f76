package handler

import (
	"errors"
	"net/http"
	"time"

	"warbler/backend/internal/auth"
	"warbler/backend/internal/config"
	"warbler/backend/internal/database"
	"warbler/backend/internal/models"
	"warbler/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TokenTTL is the lifetime of API tokens.
const TokenTTL = 7 * 24 * time.Hour

// region --- DTOs ---

// TokenInput defines the structure for requesting an API token.
type TokenInput struct {
	Username string `json:"username" binding:"required" example:"testuser"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// TokenResponse carries a bearer token.
type TokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
}

// UserResponse defines the structure for a user's public profile.
type UserResponse struct {
	ID             uint               `json:"id" example:"1"`
	Username       string             `json:"username" example:"testuser"`
	ImageURL       string             `json:"image_url" example:"/static/images/default-pic.png"`
	HeaderImageURL string             `json:"header_image_url" example:"/static/images/warbler-hero.jpg"`
	Bio            string             `json:"bio"`
	Location       string             `json:"location"`
	Counts         *models.UserCounts `json:"counts,omitempty"`
	IsFollowing    *bool              `json:"is_following,omitempty"`
	IsFollowedBy   *bool              `json:"is_followed_by,omitempty"`
}

// MessageResponse defines the structure for a message.
type MessageResponse struct {
	ID        uint      `json:"id" example:"1"`
	Text      string    `json:"text" example:"Hello"`
	Timestamp time.Time `json:"timestamp"`
	UserID    uint      `json:"user_id" example:"1"`
	Username  string    `json:"username" example:"testuser"`
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

func newUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		ImageURL:       user.ImageURL,
		HeaderImageURL: user.HeaderImageURL,
		Bio:            user.Bio,
		Location:       user.Location,
	}
}

func newMessageResponse(message models.Message) MessageResponse {
	return MessageResponse{
		ID:        message.ID,
		Text:      message.Text,
		Timestamp: message.Timestamp,
		UserID:    message.UserID,
		Username:  message.User.Username,
	}
}

// endregion

// region --- Auth Handlers ---

// IssueToken godoc
// @Summary      Get an API token
// @Description  Authenticates with username and password and returns a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body TokenInput true "Credentials"
// @Success      200  {object}  TokenResponse
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/token [post]
func IssueToken(c *gin.Context) {
	var input TokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := models.Authenticate(database.DB, input.Username, input.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := jwt.GenerateToken([]byte(config.Get().JWTSecret), user.ID, TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// endregion

// region --- User Handlers ---

// APISearchUsers godoc
// @Summary      Search users
// @Description  Gets a paginated list of users whose username contains q.
// @Tags         users
// @Produce      json
// @Param        q      query     string  false  "Username fragment"
// @Param        page   query     int     false  "Page number"  default(1)
// @Param        limit  query     int     false  "Page size"    default(20)
// @Success      200    {object}  PaginatedResponse[UserResponse]
// @Failure      500    {object}  ErrorResponse
// @Router       /users [get]
func APISearchUsers(c *gin.Context) {
	page, limit := pageParams(c)

	result, err := Paginate[models.User](models.UserSearch(database.DB, c.Query("q")), page, limit, "username")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search users"})
		return
	}

	users := make([]UserResponse, 0, len(result.Data))
	for _, user := range result.Data {
		users = append(users, newUserResponse(user))
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(users, result.Meta.TotalItems, page, limit))
}

// APIGetUser godoc
// @Summary      Get a user profile
// @Description  Returns a public profile with counts. With a bearer token the follow state relative to the caller is included.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  UserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func APIGetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := models.FindUser(database.DB, id)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	counts, err := user.Counts(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count user stats"})
		return
	}

	response := newUserResponse(*user)
	response.Counts = &counts
	if viewerID, ok := auth.UserID(c); ok && viewerID != user.ID {
		viewer := &models.User{ID: viewerID}
		following := viewer.IsFollowing(database.DB, user)
		followedBy := viewer.IsFollowedBy(database.DB, user)
		response.IsFollowing = &following
		response.IsFollowedBy = &followedBy
	}

	c.JSON(http.StatusOK, response)
}

// APIUserMessages godoc
// @Summary      List a user's messages
// @Description  Gets a paginated list of a user's messages, newest first.
// @Tags         messages
// @Produce      json
// @Param        id     path      int  true   "User ID"
// @Param        page   query     int  false  "Page number"  default(1)
// @Param        limit  query     int  false  "Page size"    default(20)
// @Success      200    {object}  PaginatedResponse[MessageResponse]
// @Failure      400    {object}  ErrorResponse
// @Failure      404    {object}  ErrorResponse
// @Router       /users/{id}/messages [get]
func APIUserMessages(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	if _, err := models.FindUser(database.DB, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	page, limit := pageParams(c)
	query := database.DB.Model(&models.Message{}).Where("user_id = ?", id)
	result, err := Paginate[models.Message](query, page, limit, "timestamp DESC", func(db *gorm.DB) *gorm.DB {
		return db.Preload("User")
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}

	messages := make([]MessageResponse, 0, len(result.Data))
	for _, message := range result.Data {
		messages = append(messages, newMessageResponse(message))
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(messages, result.Meta.TotalItems, page, limit))
}

// endregion

// region --- Message Handlers ---

// APIGetMessage godoc
// @Summary      Get a message
// @Tags         messages
// @Produce      json
// @Param        id   path      int  true  "Message ID"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /messages/{id} [get]
func APIGetMessage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	message, err := models.FindMessage(database.DB, id)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load message"})
		return
	}

	c.JSON(http.StatusOK, newMessageResponse(*message))
}

// endregion
