package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions server-side; the cookie only carries a random id.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

func NewRedisStore(client *redis.Client, ttl time.Duration, secure bool) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, secure: secure}
}

func (s *RedisStore) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return &Session{}, nil
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return nil, fmt.Errorf("malformed session id: %w", err)
	}

	data, err := s.client.Get(r.Context(), redisKeyPrefix+cookie.Value).Bytes()
	if errors.Is(err, redis.Nil) {
		// expired server-side; start over under a fresh id
		return &Session{}, nil
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	sess.id = cookie.Value
	return &sess, nil
}

func (s *RedisStore) Save(w http.ResponseWriter, r *http.Request, sess *Session) error {
	ctx := r.Context()

	if sess.empty() {
		if sess.id != "" {
			if err := s.client.Del(ctx, redisKeyPrefix+sess.id).Err(); err != nil {
				return err
			}
		}
		http.SetCookie(w, newCookie("", -1, s.secure))
		return nil
	}

	if sess.rotate && sess.id != "" {
		if err := s.client.Del(ctx, redisKeyPrefix+sess.id).Err(); err != nil {
			return err
		}
		sess.id = ""
	}
	if sess.id == "" {
		sess.id = uuid.NewString()
	}
	sess.rotate = false
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKeyPrefix+sess.id, data, s.ttl).Err(); err != nil {
		return err
	}
	http.SetCookie(w, newCookie(sess.id, int(s.ttl.Seconds()), s.secure))
	return nil
}
