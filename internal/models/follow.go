package models

import "time"

// Follow is a directional edge: UserFollowingID follows UserBeingFollowedID.
// The primary key is a composite of both ids, so an edge exists at most once.
type Follow struct {
	UserBeingFollowedID uint `gorm:"primaryKey"`
	UserFollowingID     uint `gorm:"primaryKey"`
	CreatedAt           time.Time

	// Define foreign key relationships
	UserBeingFollowed User `gorm:"foreignKey:UserBeingFollowedID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserFollowing     User `gorm:"foreignKey:UserFollowingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (Follow) TableName() string {
	return "follows"
}
