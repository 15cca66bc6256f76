package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Like records that a user endorsed a message. The composite primary key
// enforces one like per (user, message) pair.
type Like struct {
	UserID    uint `gorm:"primaryKey"`
	MessageID uint `gorm:"primaryKey"`
	CreatedAt time.Time

	User    User    `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Message Message `gorm:"foreignKey:MessageID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (Like) TableName() string {
	return "likes"
}

// ToggleLike likes the message for userID, or unlikes it when a like already
// exists. It reports the resulting state. Authors cannot like their own messages.
func ToggleLike(db *gorm.DB, userID, messageID uint) (bool, error) {
	message, err := FindMessage(db, messageID)
	if err != nil {
		return false, err
	}
	if message.UserID == userID {
		return false, ErrSelfLike
	}

	result := db.Where("user_id = ? AND message_id = ?", userID, messageID).Delete(&Like{})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return false, nil
	}

	like := Like{UserID: userID, MessageID: messageID}
	if err := db.Omit("User", "Message").Create(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// liked concurrently by another request
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// RemoveLike deletes the like of userID on messageID, if any.
func RemoveLike(db *gorm.DB, userID, messageID uint) error {
	return db.Where("user_id = ? AND message_id = ?", userID, messageID).Delete(&Like{}).Error
}

// LikedMessages returns the messages u has liked, newest first.
func (u *User) LikedMessages(db *gorm.DB) ([]Message, error) {
	var messages []Message
	err := db.Preload("User").
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", u.ID).
		Order("messages.timestamp DESC").
		Find(&messages).Error
	return messages, err
}

// LikedMessageIDs returns the set of message ids u has liked.
func (u *User) LikedMessageIDs(db *gorm.DB) (map[uint]bool, error) {
	var ids []uint
	if err := db.Model(&Like{}).Where("user_id = ?", u.ID).Pluck("message_id", &ids).Error; err != nil {
		return nil, err
	}
	liked := make(map[uint]bool, len(ids))
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
