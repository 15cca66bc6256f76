package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// User represents a user in the system.
type User struct {
	ID             uint   `gorm:"primaryKey"`
	Email          string `gorm:"size:255;unique;not null"`
	Username       string `gorm:"size:255;unique;not null"`
	ImageURL       string `gorm:"size:512"`
	HeaderImageURL string `gorm:"size:512"`
	Bio            string
	Location       string `gorm:"size:255"`
	Password       string `gorm:"size:255;not null"`
	CreatedAt      time.Time
}

// SignupInput carries the fields accepted when a user registers.
type SignupInput struct {
	Email    string
	Username string
	Password string
	ImageURL string
}

// ProfileInput carries the editable profile fields.
type ProfileInput struct {
	Username       string
	Email          string
	ImageURL       string
	HeaderImageURL string
	Bio            string
	Location       string
}

// UserCounts aggregates the numbers shown on a profile.
type UserCounts struct {
	Messages  int64 `json:"messages"`
	Following int64 `json:"following"`
	Followers int64 `json:"followers"`
	Likes     int64 `json:"likes"`
}

// Signup hashes the password and persists a new user.
// A taken username or email yields ErrDuplicateUser.
func Signup(db *gorm.DB, input SignupInput) (*User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		Email:          input.Email,
		Username:       input.Username,
		Password:       string(hashedPassword),
		ImageURL:       orDefault(input.ImageURL, DefaultImageURL),
		HeaderImageURL: DefaultHeaderImageURL,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Authenticate returns the user whose username and password match.
// Any mismatch, including an unknown username, reports false.
func Authenticate(db *gorm.DB, username, password string) (*User, bool) {
	var user User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, false
	}
	return &user, true
}

// FindUser loads a user by primary key.
func FindUser(db *gorm.DB, id uint) (*User, error) {
	var user User
	if err := db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// UserSearch scopes a query to users whose username contains q, ignoring
// case. An empty q matches everyone.
func UserSearch(db *gorm.DB, q string) *gorm.DB {
	query := db.Model(&User{})
	if q != "" {
		query = query.Where("LOWER(username) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	return query
}

// SearchUsers lists users whose username contains q, ignoring case.
func SearchUsers(db *gorm.DB, q string) ([]User, error) {
	var users []User
	if err := UserSearch(db, q).Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes the user row. Messages, follows and likes are removed
// by the ON DELETE CASCADE foreign keys.
func DeleteUser(db *gorm.DB, id uint) error {
	result := db.Delete(&User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateProfile overwrites the editable fields of u.
func (u *User) UpdateProfile(db *gorm.DB, input ProfileInput) error {
	updates := map[string]any{
		"username":         input.Username,
		"email":            input.Email,
		"image_url":        orDefault(input.ImageURL, DefaultImageURL),
		"header_image_url": orDefault(input.HeaderImageURL, DefaultHeaderImageURL),
		"bio":              input.Bio,
		"location":         input.Location,
	}
	if err := db.Model(u).Updates(updates).Error; err != nil {
		return translate(err)
	}
	return nil
}

// IsFollowing reports whether u follows other.
func (u *User) IsFollowing(db *gorm.DB, other *User) bool {
	return followExists(db, u.ID, other.ID)
}

// IsFollowedBy reports whether other follows u.
func (u *User) IsFollowedBy(db *gorm.DB, other *User) bool {
	return followExists(db, other.ID, u.ID)
}

// Follow makes u follow other. Following twice is a no-op.
func (u *User) Follow(db *gorm.DB, other *User) error {
	if u.ID == other.ID {
		return ErrSelfFollow
	}
	if u.IsFollowing(db, other) {
		return nil
	}
	follow := Follow{UserBeingFollowedID: other.ID, UserFollowingID: u.ID}
	// a concurrent follow of the same pair may land between the check and the insert
	if err := db.Create(&follow).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	return nil
}

// Unfollow removes the edge from u to other if it exists.
func (u *User) Unfollow(db *gorm.DB, other *User) error {
	return db.Where("user_being_followed_id = ? AND user_following_id = ?", other.ID, u.ID).
		Delete(&Follow{}).Error
}

// Following lists the users u follows.
func (u *User) Following(db *gorm.DB) ([]User, error) {
	var users []User
	err := db.Joins("JOIN follows ON follows.user_being_followed_id = users.id").
		Where("follows.user_following_id = ?", u.ID).
		Order("users.username").
		Find(&users).Error
	return users, err
}

// Followers lists the users following u.
func (u *User) Followers(db *gorm.DB) ([]User, error) {
	var users []User
	err := db.Joins("JOIN follows ON follows.user_following_id = users.id").
		Where("follows.user_being_followed_id = ?", u.ID).
		Order("users.username").
		Find(&users).Error
	return users, err
}

// Messages returns u's messages, newest first.
func (u *User) Messages(db *gorm.DB, limit int) ([]Message, error) {
	var messages []Message
	err := db.Preload("User").
		Where("user_id = ?", u.ID).
		Order("messages.timestamp DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// Counts gathers the profile statistics of u.
func (u *User) Counts(db *gorm.DB) (UserCounts, error) {
	var counts UserCounts
	if err := db.Model(&Message{}).Where("user_id = ?", u.ID).Count(&counts.Messages).Error; err != nil {
		return counts, err
	}
	if err := db.Model(&Follow{}).Where("user_following_id = ?", u.ID).Count(&counts.Following).Error; err != nil {
		return counts, err
	}
	if err := db.Model(&Follow{}).Where("user_being_followed_id = ?", u.ID).Count(&counts.Followers).Error; err != nil {
		return counts, err
	}
	if err := db.Model(&Like{}).Where("user_id = ?", u.ID).Count(&counts.Likes).Error; err != nil {
		return counts, err
	}
	return counts, nil
}

func followExists(db *gorm.DB, followerID, followedID uint) bool {
	var count int64
	db.Model(&Follow{}).
		Where("user_following_id = ? AND user_being_followed_id = ?", followerID, followedID).
		Count(&count)
	return count > 0
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", ErrDuplicateUser, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return err
	}
}
