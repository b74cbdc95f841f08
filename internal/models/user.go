// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// UserStatus is the lifecycle state of an account.
type UserStatus string

const (
	// UserStatusActive is a normal, usable account.
	UserStatusActive UserStatus = "ACTIVE"
	// UserStatusInactive is an account suspended by an admin.
	UserStatusInactive UserStatus = "INACTIVE"
	// UserStatusWithdrawn is an account the user has closed.
	UserStatusWithdrawn UserStatus = "WITHDRAWN"
)

// UserRole controls access to privileged endpoints.
type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleVIP   UserRole = "VIP"
	UserRoleAdmin UserRole = "ADMIN"
)

// Gender is an optional profile attribute.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// AuthProvider identifies how the account authenticates. Local accounts use
// ProviderNone with a login id and password; social accounts carry the
// provider name and the provider-issued subject id instead.
type AuthProvider string

const (
	ProviderNone   AuthProvider = "NONE"
	ProviderGoogle AuthProvider = "GOOGLE"
	ProviderKakao  AuthProvider = "KAKAO"
)

// User represents a diary author. An account has exactly one of a local
// credential (LoginID+Password) or a social identity (Provider+ProviderID).
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	LoginID  string `gorm:"size:30;uniqueIndex" json:"login_id,omitempty"`
	Password string `gorm:"size:200" json:"-"`
	Nickname string `gorm:"size:30;uniqueIndex;not null" json:"nickname"`

	Birthday *time.Time `json:"birthday,omitempty"`
	Gender   Gender     `gorm:"type:varchar(10)" json:"gender,omitempty"`
	// Persona is a free-form self description fed into diary illustration prompts.
	Persona string `gorm:"size:250" json:"persona,omitempty"`

	OrgProfileImageName   string `gorm:"size:1000" json:"org_profile_image_name,omitempty"`
	SavedProfileImageName string `gorm:"size:50" json:"saved_profile_image_name,omitempty"`

	Status     UserStatus   `gorm:"type:varchar(20);default:'ACTIVE';index" json:"status"`
	Role       UserRole     `gorm:"type:varchar(20);default:'USER'" json:"role"`
	Provider   AuthProvider `gorm:"type:varchar(10);default:'NONE'" json:"provider"`
	ProviderID string       `gorm:"size:50" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// IsActive reports whether the account may log in or hold a session.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
