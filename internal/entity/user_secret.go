package entity

// UserSecret keeps the bcrypt hash out of the User row so the profile can
// be serialized directly without ever leaking credentials.
type UserSecret struct {
	UserUUID string `gorm:"primaryKey"`
	Hash     string `gorm:"not null"`
}
