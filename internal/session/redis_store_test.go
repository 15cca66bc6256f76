package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, time.Hour, false), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := setupRedisStore(t)

	sess, err := store.Load(requestWith())
	require.NoError(t, err)
	sess.Login(5)

	rec := httptest.NewRecorder()
	require.NoError(t, store.Save(rec, requestWith(), sess))

	cookie := sessionCookie(t, rec)
	assert.True(t, mr.Exists(redisKeyPrefix+cookie.Value))
	assert.Equal(t, time.Hour, mr.TTL(redisKeyPrefix+cookie.Value))

	loaded, err := store.Load(requestWith(cookie))
	require.NoError(t, err)
	assert.Equal(t, uint(5), loaded.UserID)

	// logging out removes the server-side record
	loaded.Logout()
	rec = httptest.NewRecorder()
	require.NoError(t, store.Save(rec, requestWith(cookie), loaded))
	assert.False(t, mr.Exists(redisKeyPrefix+cookie.Value))
}

func TestRedisStoreExpiredSession(t *testing.T) {
	store, mr := setupRedisStore(t)

	sess := &Session{}
	sess.Login(5)
	rec := httptest.NewRecorder()
	require.NoError(t, store.Save(rec, requestWith(), sess))
	cookie := sessionCookie(t, rec)

	mr.FastForward(2 * time.Hour)

	loaded, err := store.Load(requestWith(cookie))
	require.NoError(t, err)
	assert.False(t, loaded.IsAuthenticated())
}

func TestRedisStoreMalformedID(t *testing.T) {
	store, _ := setupRedisStore(t)

	_, err := store.Load(requestWith(&http.Cookie{Name: CookieName, Value: "../../etc"}))
	assert.Error(t, err)
}

func TestRedisStoreNewIDOnLogin(t *testing.T) {
	store, mr := setupRedisStore(t)

	// an anonymous session gets persisted once it carries a flash
	anon := &Session{}
	anon.AddFlash("Access unauthorized.", "danger")
	rec := httptest.NewRecorder()
	require.NoError(t, store.Save(rec, requestWith(), anon))
	before := sessionCookie(t, rec)

	loaded, err := store.Load(requestWith(before))
	require.NoError(t, err)
	loaded.Login(42)
	rec = httptest.NewRecorder()
	require.NoError(t, store.Save(rec, requestWith(before), loaded))
	after := sessionCookie(t, rec)

	assert.NotEqual(t, before.Value, after.Value)
	assert.False(t, mr.Exists(redisKeyPrefix+before.Value))

	old, err := store.Load(requestWith(before))
	require.NoError(t, err)
	assert.False(t, old.IsAuthenticated())

	current, err := store.Load(requestWith(after))
	require.NoError(t, err)
	assert.Equal(t, uint(42), current.UserID)

	// later saves keep the rotated id
	current.AddFlash("Hello", "success")
	rec = httptest.NewRecorder()
	require.NoError(t, store.Save(rec, requestWith(after), current))
	assert.Equal(t, after.Value, sessionCookie(t, rec).Value)
}
