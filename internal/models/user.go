package models

import "time"

// User is created at registration and referenced as a foreign key by
// every message row. Password is never serialized.
type User struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	Username  string    `gorm:"uniqueIndex" json:"username"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	Image     string    `json:"image"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
