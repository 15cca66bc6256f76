package seed_test

import (
	"testing"

	"warbler/backend/internal/models"
	"warbler/backend/internal/seed"
	"warbler/backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	db := testutil.SetupDB(t)

	res, err := seed.Seed(db, seed.Options{
		Users:           4,
		MessagesPerUser: 3,
		FollowsPerUser:  2,
		LikesPerUser:    3,
		Seed:            42,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Users)
	assert.Equal(t, 12, res.Messages)

	var users, messages, follows, likes int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Message{}).Count(&messages)
	db.Model(&models.Follow{}).Count(&follows)
	db.Model(&models.Like{}).Count(&likes)

	assert.EqualValues(t, res.Users, users)
	assert.EqualValues(t, res.Messages, messages)
	assert.EqualValues(t, res.Follows, follows)
	assert.EqualValues(t, res.Likes, likes)

	var message models.Message
	require.NoError(t, db.First(&message).Error)
	assert.LessOrEqual(t, len([]rune(message.Text)), models.MaxMessageLength)

	var user models.User
	require.NoError(t, db.First(&user).Error)
	_, ok := models.Authenticate(db, user.Username, seed.DefaultPassword)
	assert.True(t, ok)
}
