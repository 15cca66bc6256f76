// Package session keeps per-client state between requests: the id of the
// logged-in user and one-shot flash messages.
package session

import (
	"net/http"

	"warbler/backend/pkg/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// CookieName is the cookie carrying the session (or its id).
	CookieName = "warbler_session"

	contextKey = "session"
	storeKey   = "sessionStore"
)

// Flash is a message shown once on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Session is the state attached to one client.
type Session struct {
	UserID  uint    `json:"user_id,omitempty"`
	Flashes []Flash `json:"flashes,omitempty"`

	id       string
	modified bool
	// rotate asks server-side stores to issue a new id on the next save.
	rotate bool
}

// Store loads and persists sessions for HTTP requests.
type Store interface {
	Load(r *http.Request) (*Session, error)
	Save(w http.ResponseWriter, r *http.Request, s *Session) error
}

// Login records userID as the authenticated identity. The session id is
// replaced on the next save so an id handed out before login is worthless.
func (s *Session) Login(userID uint) {
	s.UserID = userID
	s.modified = true
	s.rotate = true
}

// Logout forgets the authenticated identity but keeps pending flashes.
func (s *Session) Logout() {
	if s.UserID != 0 {
		s.UserID = 0
		s.modified = true
	}
}

func (s *Session) IsAuthenticated() bool {
	return s.UserID != 0
}

func (s *Session) AddFlash(message, category string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
	s.modified = true
}

// PopFlashes returns the pending flashes and clears them.
func (s *Session) PopFlashes() []Flash {
	flashes := s.Flashes
	if len(flashes) > 0 {
		s.Flashes = nil
		s.modified = true
	}
	return flashes
}

// Modified reports whether the session must be written back.
func (s *Session) Modified() bool {
	return s.modified
}

func (s *Session) empty() bool {
	return s.UserID == 0 && len(s.Flashes) == 0
}

// Middleware loads the session for every request. Unreadable sessions are
// replaced by an anonymous one.
func Middleware(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := store.Load(c.Request)
		if err != nil {
			log.L.Warn("discarding unreadable session", zap.Error(err))
			sess = &Session{}
		}
		c.Set(contextKey, sess)
		c.Set(storeKey, store)
		c.Next()
	}
}

// Get returns the session of the request; routes outside Middleware get a
// throwaway anonymous session.
func Get(c *gin.Context) *Session {
	if v, ok := c.Get(contextKey); ok {
		if sess, ok := v.(*Session); ok {
			return sess
		}
	}
	sess := &Session{}
	c.Set(contextKey, sess)
	return sess
}

// Save writes the session back if it changed. It must run before the
// response body is written.
func Save(c *gin.Context) error {
	sess := Get(c)
	if !sess.modified {
		return nil
	}
	v, ok := c.Get(storeKey)
	if !ok {
		return nil
	}
	if err := v.(Store).Save(c.Writer, c.Request, sess); err != nil {
		return err
	}
	sess.modified = false
	return nil
}

func newCookie(value string, maxAge int, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
