package entity

import (
	"time"
)

// DefaultAvatar is the shared placeholder assigned to users and chats
// created without an avatar of their own.
const DefaultAvatar = "avatars/default_avatar.jpg"

type User struct {
	UUID        string    `gorm:"primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	IsStaff     bool      `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser bool      `gorm:"not null;default:false" json:"-"`
	DateJoined  time.Time `gorm:"not null" json:"date_joined"`
	Avatar      string    `json:"-"`

	Secret UserSecret `gorm:"foreignKey:UserUUID;references:UUID" json:"-"`
}
