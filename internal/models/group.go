package models

import "time"

type Group struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	Name      string    `gorm:"uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// GroupMember rows are written only inside the group-creation
// transaction; the composite key enforces pair uniqueness.
type GroupMember struct {
	GroupID string `gorm:"primaryKey;type:text" json:"group_id"`
	UserID  string `gorm:"primaryKey;type:text" json:"user_id"`
}

// GroupMessage has no read flag; unread accounting is per direct
// message only.
type GroupMessage struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	GroupID   string    `gorm:"index" json:"group_id"`
	SenderID  string    `json:"sender_id"`
	Sender    User      `gorm:"foreignKey:SenderID" json:"-"`
	Body      string    `gorm:"column:message" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
