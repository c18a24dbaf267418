package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/AmanSingh2427/Whatapp/internal/database"
	"github.com/AmanSingh2427/Whatapp/internal/models"
	"github.com/AmanSingh2427/Whatapp/pkg/errors"
	"github.com/AmanSingh2427/Whatapp/pkg/logger"
	"github.com/AmanSingh2427/Whatapp/pkg/utils"
)

// DirectMessageView is a stored direct message joined with the sender's
// display name, as served to clients.
type DirectMessageView struct {
	ID         string    `gorm:"column:id" json:"id"`
	SenderID   string    `gorm:"column:sender_id" json:"sender_id"`
	ReceiverID string    `gorm:"column:receiver_id" json:"receiver_id"`
	Body       string    `gorm:"column:message" json:"message"`
	Read       bool      `gorm:"column:read" json:"read"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	SenderName string    `gorm:"column:sender_name" json:"sender_name"`
}

// GroupMessageView is a stored group message joined with the sender's
// display name.
type GroupMessageView struct {
	ID         string    `gorm:"column:id" json:"id"`
	GroupID    string    `gorm:"column:group_id" json:"group_id"`
	SenderID   string    `gorm:"column:sender_id" json:"sender_id"`
	Body       string    `gorm:"column:message" json:"message"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	SenderName string    `gorm:"column:sender_name" json:"sender_name"`
}

// AppendDirect persists one direct message. CreatedAt is assigned here,
// at the moment of the durable write, so ordering never depends on
// client clocks.
func AppendDirect(senderID, receiverID, body string) (*models.Message, *errors.AppError) {
	if strings.TrimSpace(body) == "" {
		return nil, errors.BadRequest("Message is required")
	}

	msg := models.Message{
		ID:         utils.GenerateID(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
		CreatedAt:  time.Now().UTC(),
	}

	if err := database.DB.Create(&msg).Error; err != nil {
		logger.Error().Err(err).Str("sender", senderID).Msg("Failed to store direct message")
		return nil, errors.Internal("Failed to send message")
	}
	return &msg, nil
}

// AppendGroup persists one group message. The group must exist.
func AppendGroup(groupID, senderID, body string) (*models.GroupMessage, *errors.AppError) {
	if strings.TrimSpace(body) == "" {
		return nil, errors.BadRequest("Message is required")
	}

	if appErr := requireGroup(groupID); appErr != nil {
		return nil, appErr
	}

	msg := models.GroupMessage{
		ID:        utils.GenerateID(),
		GroupID:   groupID,
		SenderID:  senderID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}

	if err := database.DB.Create(&msg).Error; err != nil {
		logger.Error().Err(err).Str("group", groupID).Msg("Failed to store group message")
		return nil, errors.Internal("Failed to send message")
	}
	return &msg, nil
}

// ListDirect returns the thread between two users, ascending by
// creation time. The pair is unordered: ListDirect(a, b) and
// ListDirect(b, a) return the same sequence. An empty thread is an
// empty slice, not an error.
func ListDirect(userA, userB string) ([]DirectMessageView, *errors.AppError) {
	msgs := []DirectMessageView{}
	err := database.DB.Table("messages").
		Select("messages.id, messages.sender_id, messages.receiver_id, messages.message, messages.read, messages.created_at, users.username AS sender_name").
		Joins("LEFT JOIN users ON users.id = messages.sender_id").
		Where("(messages.sender_id = ? AND messages.receiver_id = ?) OR (messages.sender_id = ? AND messages.receiver_id = ?)",
			userA, userB, userB, userA).
		Order("messages.created_at ASC, messages.id ASC").
		Scan(&msgs).Error

	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch direct thread")
		return nil, errors.Internal("Failed to fetch messages")
	}
	return msgs, nil
}

// ListGroup returns a group's messages ascending by creation time, or
// NotFound when the group does not exist.
func ListGroup(groupID string) ([]GroupMessageView, *errors.AppError) {
	if appErr := requireGroup(groupID); appErr != nil {
		return nil, appErr
	}

	msgs := []GroupMessageView{}
	err := database.DB.Table("group_messages").
		Select("group_messages.id, group_messages.group_id, group_messages.sender_id, group_messages.message, group_messages.created_at, users.username AS sender_name").
		Joins("JOIN users ON users.id = group_messages.sender_id").
		Where("group_messages.group_id = ?", groupID).
		Order("group_messages.created_at ASC, group_messages.id ASC").
		Scan(&msgs).Error

	if err != nil {
		logger.Error().Err(err).Str("group", groupID).Msg("Failed to fetch group messages")
		return nil, errors.Internal("Failed to fetch messages")
	}
	return msgs, nil
}

// UnreadCountFor counts direct messages addressed to the user that are
// still unread.
func UnreadCountFor(userID string) (int64, *errors.AppError) {
	var count int64
	err := database.DB.Model(&models.Message{}).
		Where("receiver_id = ? AND read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, errors.Internal("Failed to count unread messages")
	}
	return count, nil
}

// MarkRead flips every unread message from counterpart to user to read.
// Idempotent: a second call affects zero rows.
func MarkRead(userID, counterpartID string) (int64, *errors.AppError) {
	result := database.DB.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read = ?", counterpartID, userID, false).
		Update("read", true)

	if result.Error != nil {
		return 0, errors.Internal("Failed to mark messages read")
	}
	return result.RowsAffected, nil
}

func requireGroup(groupID string) *errors.AppError {
	var group models.Group
	if err := database.DB.Select("id").First(&group, "id = ?", groupID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NotFound("Group not found")
		}
		return errors.Internal("Failed to look up group")
	}
	return nil
}
