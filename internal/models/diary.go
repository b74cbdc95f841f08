package models

import (
	"time"
)

// Visibility classifies who may view a diary.
type Visibility string

const (
	// VisibilityPublic is viewable by anyone.
	VisibilityPublic Visibility = "PUBLIC"
	// VisibilityFollowOnly is viewable by the author and mutual followers.
	VisibilityFollowOnly Visibility = "FOLLOW_ONLY"
	// VisibilityPrivate is viewable by the author only.
	VisibilityPrivate Visibility = "PRIVATE"
)

// Valid reports whether v is one of the three known visibility tags.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityFollowOnly, VisibilityPrivate:
		return true
	}
	return false
}

// YesOrNo is a Y/N flag column.
type YesOrNo string

const (
	Yes YesOrNo = "Y"
	No  YesOrNo = "N"
)

// Valid reports whether f is "Y" or "N".
func (f YesOrNo) Valid() bool {
	return f == Yes || f == No
}

// Diary is one journal entry. Each author may hold at most one non-deleted
// entry per TargetDate; the invariant is backed by a partial unique index on
// (author_id, target_date) where is_deleted = 'N' (see database.Connect) in
// addition to the application-level check in the service layer.
type Diary struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AuthorID uint   `gorm:"not null;index:idx_diaries_author_date" json:"author_id"`
	Title    string `gorm:"size:50;not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	// Mood is a 1..5 self rating.
	Mood       int        `gorm:"not null" json:"mood"`
	Visibility Visibility `gorm:"type:varchar(20);not null" json:"visibility"`
	LikeCount  int        `gorm:"not null;default:0" json:"like_count"`

	OrgDiaryImageName   string `gorm:"size:1000" json:"org_diary_image_name,omitempty"`
	SavedDiaryImageName string `gorm:"size:50" json:"saved_diary_image_name,omitempty"`

	// TargetDate is the calendar day the entry is about, not the write time.
	TargetDate time.Time `gorm:"type:date;not null;index:idx_diaries_author_date" json:"target_date"`
	IsDeleted  YesOrNo   `gorm:"type:varchar(1);not null;default:'N'" json:"is_deleted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName specifies the table name for GORM
func (Diary) TableName() string {
	return "diaries"
}

// DiarySummary is the list-view projection: everything but the body.
type DiarySummary struct {
	ID                  uint       `json:"id"`
	Title               string     `json:"title"`
	Mood                int        `json:"mood"`
	SavedDiaryImageName string     `json:"saved_diary_image_name,omitempty"`
	TargetDate          time.Time  `json:"target_date"`
	IsDeleted           YesOrNo    `json:"is_deleted"`
	Visibility          Visibility `json:"visibility"`
	LikeCount           int        `json:"like_count"`
	AuthorID            uint       `json:"author_id"`
	AuthorNickname      string     `json:"author_nickname"`
	AuthorProfileImage  string     `json:"author_profile_image,omitempty"`
}
