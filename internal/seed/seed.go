// Package seed fills a database with fake users, messages, follows and likes
// for local development.
package seed

import (
	"fmt"

	"warbler/backend/internal/models"
	"warbler/backend/pkg/log"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded user.
const DefaultPassword = "password"

// Options configuration for the seeder
type Options struct {
	Users           int
	MessagesPerUser int
	FollowsPerUser  int
	LikesPerUser    int
	// Seed makes the generated data reproducible.
	Seed int64
}

// Result counts what Seed inserted.
type Result struct {
	Users    int
	Messages int
	Follows  int
	Likes    int
}

// Seed populates db with generated data.
func Seed(db *gorm.DB, opts Options) (Result, error) {
	var res Result
	faker := gofakeit.New(opts.Seed)

	log.L.Info("seeding database", zap.Int("users", opts.Users), zap.Int64("seed", opts.Seed))

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := models.Signup(db, models.SignupInput{
			Username: fmt.Sprintf("%s%d", faker.Username(), i),
			Email:    fmt.Sprintf("%d.%s", i, faker.Email()),
			Password: DefaultPassword,
		})
		if err != nil {
			return res, fmt.Errorf("create user: %w", err)
		}
		if err := user.UpdateProfile(db, models.ProfileInput{
			Username: user.Username,
			Email:    user.Email,
			ImageURL: user.ImageURL,
			Bio:      faker.Sentence(10),
			Location: faker.City(),
		}); err != nil {
			return res, fmt.Errorf("fill profile: %w", err)
		}
		users = append(users, user)
	}
	res.Users = len(users)

	var messages []*models.Message
	for _, user := range users {
		for j := 0; j < opts.MessagesPerUser; j++ {
			message, err := models.CreateMessage(db, user.ID, truncate(faker.Sentence(faker.Number(3, 15)), models.MaxMessageLength))
			if err != nil {
				return res, fmt.Errorf("create message: %w", err)
			}
			messages = append(messages, message)
		}
	}
	res.Messages = len(messages)

	if len(users) > 1 {
		for _, user := range users {
			for j := 0; j < opts.FollowsPerUser; j++ {
				other := users[faker.Number(0, len(users)-1)]
				if other.ID == user.ID || user.IsFollowing(db, other) {
					continue
				}
				if err := user.Follow(db, other); err != nil {
					return res, fmt.Errorf("follow: %w", err)
				}
				res.Follows++
			}
		}
	}

	if len(messages) > 0 {
		for _, user := range users {
			liked := map[uint]bool{}
			for j := 0; j < opts.LikesPerUser; j++ {
				message := messages[faker.Number(0, len(messages)-1)]
				if message.UserID == user.ID || liked[message.ID] {
					continue
				}
				if _, err := models.ToggleLike(db, user.ID, message.ID); err != nil {
					return res, fmt.Errorf("like: %w", err)
				}
				liked[message.ID] = true
				res.Likes++
			}
		}
	}

	log.L.Info("seeding finished",
		zap.Int("users", res.Users),
		zap.Int("messages", res.Messages),
		zap.Int("follows", res.Follows),
		zap.Int("likes", res.Likes),
	)
	return res, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
