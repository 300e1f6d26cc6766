package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	FullName  string    `gorm:"size:100;not null" json:"full_name"`
	Email     string    `gorm:"size:255;unique;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      UserRole  `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `json:"last_login"`
	LastSeen  time.Time `json:"last_seen"`
}

func (User) TableName() string {
	return "users"
}

// UserProfile 用户附加信息（头像、简介、所属组织）
// swagger:model UserProfile
type UserProfile struct {
	BaseModel
	UserID       uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	AvatarURL    string `gorm:"size:255" json:"avatar_url"`
	Bio          string `gorm:"type:text" json:"bio"`
	Organization string `gorm:"size:100" json:"organization"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
