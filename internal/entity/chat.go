package entity

import (
	"time"
)

type Chat struct {
	UUID      string    `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	IsPrivate bool      `gorm:"not null;default:true" json:"is_private"`
	Avatar    string    `json:"-"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`

	// Admin survives as NULL when the admin account is deleted; the chat itself is kept.
	AdminUUID *string `gorm:"index" json:"admin"`

	// Membership is presence only: the join table has a composite primary key,
	// so adding a member twice collapses to a single row.
	Members []User `gorm:"many2many:chat_members" json:"-"`
}
