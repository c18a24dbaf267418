package models

import "time"

// Message is a direct message between two users. CreatedAt is assigned
// server-side at the durable write; the read flag only ever moves
// false -> true, via MarkRead.
type Message struct {
	ID         string    `gorm:"primaryKey;type:text" json:"id"`
	SenderID   string    `gorm:"index" json:"sender_id"`
	Sender     User      `gorm:"foreignKey:SenderID" json:"-"`
	ReceiverID string    `gorm:"index" json:"receiver_id"`
	Receiver   User      `gorm:"foreignKey:ReceiverID" json:"-"`
	Body       string    `gorm:"column:message" json:"message"`
	IsRead     bool      `gorm:"column:read;default:false" json:"read"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
