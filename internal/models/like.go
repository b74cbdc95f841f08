package models

import (
	"time"
)

// DiaryLike marks that a user liked a diary, once.
type DiaryLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DiaryID   uint      `gorm:"not null;uniqueIndex:idx_like_pair" json:"diary_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_pair" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Diary Diary `gorm:"foreignKey:DiaryID" json:"diary,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (DiaryLike) TableName() string {
	return "diary_likes"
}
