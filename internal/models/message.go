package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MaxMessageLength = 140
	TimelineLimit    = 100
)

// Message is a short post written by a user.
type Message struct {
	ID        uint      `gorm:"primaryKey"`
	Text      string    `gorm:"size:140;not null"`
	Timestamp time.Time `gorm:"not null;autoCreateTime"`
	UserID    uint      `gorm:"not null;index"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// CreateMessage stores a new message authored by userID.
func CreateMessage(db *gorm.DB, userID uint, text string) (*Message, error) {
	message := Message{Text: text, UserID: userID}
	if err := db.Omit("User").Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// FindMessage loads a message together with its author.
func FindMessage(db *gorm.DB, id uint) (*Message, error) {
	var message Message
	if err := db.Preload("User").First(&message, id).Error; err != nil {
		return nil, translate(err)
	}
	return &message, nil
}

// DeleteMessage removes a message; its likes follow through the cascade.
func DeleteMessage(db *gorm.DB, id uint) error {
	result := db.Delete(&Message{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Timeline returns the newest messages written by user or by anyone user follows.
func Timeline(db *gorm.DB, user *User, limit int) ([]Message, error) {
	following := db.Model(&Follow{}).
		Select("user_being_followed_id").
		Where("user_following_id = ?", user.ID)

	var messages []Message
	err := db.Preload("User").
		Where("user_id = ? OR user_id IN (?)", user.ID, following).
		Order("messages.timestamp DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// FollowerIDs lists the ids of everyone following userID.
func FollowerIDs(db *gorm.DB, userID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&Follow{}).
		Where("user_being_followed_id = ?", userID).
		Pluck("user_following_id", &ids).Error
	return ids, err
}
