package entity

import "time"

type Message struct {
	UUID      string    `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"not null" json:"text"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`

	// Author is cleared (not deleted) when the account goes away.
	UserUUID *string `gorm:"index" json:"user"`
	ChatUUID string  `gorm:"not null;index" json:"chat"`
}
