package models

import (
	"time"
)

// Follow is a directed edge: FollowerID follows FollowingID. At most one edge
// may exist per ordered pair; the reverse direction is an independent edge, so
// a mutual relationship always requires two rows.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Follower  User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Following User `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}

// FollowUserSummary is the projection returned by follower/following listings.
type FollowUserSummary struct {
	UserID                uint   `json:"user_id"`
	Nickname              string `json:"nickname"`
	SavedProfileImageName string `json:"saved_profile_image_name,omitempty"`
}
