package handler_test

import (
	"net/http"
	"net/url"
	"testing"

	"warbler/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	app := newTestApp(t)
	client := app.client(0, true)

	resp, body := app.post(client, "/signup", url.Values{
		"username": {"newuser"},
		"email":    {"new@test.com"},
		"password": {"secret123"},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/", resp.Request.URL.Path)
	assert.Contains(t, body, "@newuser")

	user, ok := models.Authenticate(app.db, "newuser", "secret123")
	require.True(t, ok)
	assert.Equal(t, models.DefaultImageURL, user.ImageURL)
	assert.NotEqual(t, "secret123", user.Password)
}

func TestSignupDuplicate(t *testing.T) {
	app := newTestApp(t)
	app.testUser()

	resp, body := app.post(app.client(0, false), "/signup", url.Values{
		"username": {"testuser"},
		"email":    {"another@test.com"},
		"password": {"secret123"},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `<div class="alert alert-danger">Username or email already taken</div>`)
}

func TestSignupValidation(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.post(app.client(0, false), "/signup", url.Values{
		"username": {"newuser"},
		"email":    {"not-an-email"},
		"password": {"123"},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Email must be a valid e-mail address.")
	assert.Contains(t, body, "Password must be at least 6 characters.")

	var count int64
	app.db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	app.testUser()
	client := app.client(0, true)

	resp, body := app.post(client, "/login", url.Values{"username": {"testuser"}, "password": {"testuser"}})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/", resp.Request.URL.Path)
	assert.Contains(t, body, `<div class="alert alert-success">Hello, testuser!</div>`)

	// flashes are shown once
	_, body = app.get(client, "/")
	assert.NotContains(t, body, "Hello, testuser!")
	assert.Contains(t, body, "Log out")
}

func TestLoginInvalid(t *testing.T) {
	app := newTestApp(t)
	app.testUser()

	for name, form := range map[string]url.Values{
		"wrong password":   {"username": {"testuser"}, "password": {"wrongpass"}},
		"unknown username": {"username": {"nobody"}, "password": {"testuser"}},
	} {
		t.Run(name, func(t *testing.T) {
			resp, body := app.post(app.client(0, false), "/login", form)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, body, `<div class="alert alert-danger">Invalid credentials.</div>`)
		})
	}
}

func TestLogout(t *testing.T) {
	app := newTestApp(t)
	user := app.testUser()
	client := app.client(user.ID, true)

	resp, body := app.get(client, "/logout")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/login", resp.Request.URL.Path)
	assert.Contains(t, body, "You have successfully logged out.")

	resp, body = app.get(client, "/messages/new")
	assert.Equal(t, "/", resp.Request.URL.Path)
	assert.Contains(t, body, "Access unauthorized.")
}

func TestHome(t *testing.T) {
	app := newTestApp(t)
	user := app.testUser()
	other := app.otherUser()
	stranger := app.signup("stranger", "stranger@test.com", "password")
	app.follow(user, other)
	app.message(other.ID)
	_, err := models.CreateMessage(app.db, stranger.ID, "Not for you")
	require.NoError(t, err)

	_, body := app.get(app.client(0, true), "/")
	assert.Contains(t, body, "What's Happening?")

	_, body = app.get(app.client(user.ID, true), "/")
	assert.Contains(t, body, "<p>This works!</p>")
	assert.NotContains(t, body, "Not for you")
	assert.Contains(t, body, `<i class="fa fa-thumbs-up"></i>`)
}
