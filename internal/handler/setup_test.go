package handler_test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"warbler/backend/internal/models"
	"warbler/backend/internal/server"
	"warbler/backend/internal/session"
	"warbler/backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testApp struct {
	t      *testing.T
	db     *gorm.DB
	store  *session.CookieStore
	server *httptest.Server
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupDB(t)
	store := session.NewCookieStore([]byte("test-secret"), time.Hour, false)
	router, err := server.NewRouter(store)
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testApp{t: t, db: db, store: store, server: srv}
}

// client returns an HTTP client logged in as userID (0 for anonymous). With
// follow=false redirects are returned to the caller instead of followed.
func (a *testApp) client(userID uint, follow bool) *http.Client {
	a.t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(a.t, err)

	if userID != 0 {
		sess := &session.Session{}
		sess.Login(userID)
		cookie, err := a.store.Cookie(sess)
		require.NoError(a.t, err)

		u, err := url.Parse(a.server.URL)
		require.NoError(a.t, err)
		jar.SetCookies(u, []*http.Cookie{cookie})
	}

	client := &http.Client{Jar: jar, Timeout: 10 * time.Second}
	if !follow {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client
}

func (a *testApp) url(path string) string {
	return a.server.URL + path
}

func (a *testApp) get(client *http.Client, path string) (*http.Response, string) {
	a.t.Helper()
	resp, err := client.Get(a.url(path))
	require.NoError(a.t, err)
	return resp, readBody(a.t, resp)
}

func (a *testApp) post(client *http.Client, path string, form url.Values) (*http.Response, string) {
	a.t.Helper()
	resp, err := client.PostForm(a.url(path), form)
	require.NoError(a.t, err)
	return resp, readBody(a.t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func (a *testApp) signup(username, email, password string) *models.User {
	a.t.Helper()
	user, err := models.Signup(a.db, models.SignupInput{Username: username, Email: email, Password: password})
	require.NoError(a.t, err)
	return user
}

func (a *testApp) testUser() *models.User {
	return a.signup("testuser", "test@test.com", "testuser")
}

func (a *testApp) otherUser() *models.User {
	return a.signup("testuser1", "test1@test.com", "HASHED_PASSWORD")
}

func (a *testApp) message(userID uint) *models.Message {
	a.t.Helper()
	message, err := models.CreateMessage(a.db, userID, "This works!")
	require.NoError(a.t, err)
	return message
}

func (a *testApp) follow(follower, followed *models.User) {
	a.t.Helper()
	require.NoError(a.t, follower.Follow(a.db, followed))
}

func (a *testApp) like(userID, messageID uint) {
	a.t.Helper()
	require.NoError(a.t, a.db.Omit("User", "Message").Create(&models.Like{UserID: userID, MessageID: messageID}).Error)
}
