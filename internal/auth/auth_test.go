package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"warbler/backend/internal/auth"
	"warbler/backend/internal/config"
	"warbler/backend/internal/models"
	"warbler/backend/internal/session"
	"warbler/backend/internal/testutil"
	"warbler/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(store session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(session.Middleware(store), auth.CurrentUserMiddleware())
	r.GET("/me", func(c *gin.Context) {
		user := auth.CurrentUser(c)
		if user == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, user.Username)
	})
	r.POST("/guarded", auth.LoginRequired("/"), func(c *gin.Context) {
		c.String(http.StatusOK, "done")
	})
	r.GET("/api", auth.OptionalAuthMiddleware(), auth.AuthMiddleware(), func(c *gin.Context) {
		id, _ := auth.UserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	return r
}

func loggedIn(t *testing.T, store *session.CookieStore, method, target string, userID uint) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	sess := &session.Session{}
	sess.Login(userID)
	cookie, err := store.Cookie(sess)
	require.NoError(t, err)
	req.AddCookie(cookie)
	return req
}

func TestCurrentUserMiddleware(t *testing.T) {
	db := testutil.SetupDB(t)
	user, err := models.Signup(db, models.SignupInput{Username: "alice", Email: "alice@test.com", Password: "password"})
	require.NoError(t, err)

	store := session.NewCookieStore([]byte("secret"), time.Hour, false)
	r := newRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, "anonymous", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, loggedIn(t, store, http.MethodGet, "/me", user.ID))
	assert.Equal(t, "alice", w.Body.String())

	// a session for a deleted user reads as anonymous
	w = httptest.NewRecorder()
	r.ServeHTTP(w, loggedIn(t, store, http.MethodGet, "/me", user.ID+100))
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestLoginRequired(t *testing.T) {
	db := testutil.SetupDB(t)
	user, err := models.Signup(db, models.SignupInput{Username: "alice", Email: "alice@test.com", Password: "password"})
	require.NoError(t, err)

	store := session.NewCookieStore([]byte("secret"), time.Hour, false)
	r := newRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/guarded", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "done")

	// the flash travels in the cookie set on the redirect
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	sess, err := store.Load(req)
	require.NoError(t, err)
	require.Len(t, sess.Flashes, 1)
	assert.Equal(t, session.Flash{Category: "danger", Message: auth.UnauthorizedMessage}, sess.Flashes[0])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, loggedIn(t, store, http.MethodPost, "/guarded", user.ID))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "done", w.Body.String())
}

func TestBearerAuth(t *testing.T) {
	testutil.SetupDB(t)
	store := session.NewCookieStore([]byte("secret"), time.Hour, false)
	r := newRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"User not authenticated"}`, w.Body.String())

	token, err := jwt.GenerateToken([]byte(config.Get().JWTSecret), 7, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
