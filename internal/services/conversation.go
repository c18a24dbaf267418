package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/AmanSingh2427/Whatapp/internal/database"
	"github.com/AmanSingh2427/Whatapp/internal/models"
	"github.com/AmanSingh2427/Whatapp/pkg/errors"
)

// Publisher is the live-delivery side of the conversation flow. The
// production implementation is realtime.Hub; tests substitute a fake.
// Publishing is fire-and-forget: implementations never report failure
// upstream, because a missed live push is recoverable via history.
type Publisher interface {
	PublishDirect(msg *models.Message, senderName string)
	PublishGroup(msg *models.GroupMessage, senderName string)
}

// SentMessage is the persisted descriptor returned to the sender. It
// always carries the server-assigned id and timestamp, never
// pre-persistence client values.
type SentMessage struct {
	ID         string    `json:"id"`
	SenderName string    `json:"sender_name"`
	Body       string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// Conversation orchestrates message sends and history reads: validate,
// persist, then publish the persisted values. A message that reached the
// store stays stored even when the publish never lands.
type Conversation struct {
	router Publisher
}

func NewConversation(router Publisher) *Conversation {
	return &Conversation{router: router}
}

// SendDirect persists a direct message and fans it out to the
// receiver's (and sender's) live connections.
func (s *Conversation) SendDirect(senderID, receiverID, body string) (*SentMessage, *errors.AppError) {
	senderName, appErr := usernameOf(senderID)
	if appErr != nil {
		return nil, appErr
	}

	msg, appErr := AppendDirect(senderID, receiverID, body)
	if appErr != nil {
		return nil, appErr
	}

	if s.router != nil {
		s.router.PublishDirect(msg, senderName)
	}

	return &SentMessage{
		ID:         msg.ID,
		SenderName: senderName,
		Body:       msg.Body,
		CreatedAt:  msg.CreatedAt,
	}, nil
}

// SendGroup persists a group message and fans it out to the group room.
func (s *Conversation) SendGroup(senderID, groupID, body string) (*SentMessage, *errors.AppError) {
	senderName, appErr := usernameOf(senderID)
	if appErr != nil {
		return nil, appErr
	}

	msg, appErr := AppendGroup(groupID, senderID, body)
	if appErr != nil {
		return nil, appErr
	}

	if s.router != nil {
		s.router.PublishGroup(msg, senderName)
	}

	return &SentMessage{
		ID:         msg.ID,
		SenderName: senderName,
		Body:       msg.Body,
		CreatedAt:  msg.CreatedAt,
	}, nil
}

// DirectHistory returns the thread between the caller and another user.
func (s *Conversation) DirectHistory(userID, otherID string) ([]DirectMessageView, *errors.AppError) {
	return ListDirect(userID, otherID)
}

// GroupHistory returns a group's message history.
func (s *Conversation) GroupHistory(groupID string) ([]GroupMessageView, *errors.AppError) {
	return ListGroup(groupID)
}

func usernameOf(userID string) (string, *errors.AppError) {
	var user models.User
	if err := database.DB.Select("id, username").First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.NotFound("Sender not found")
		}
		return "", errors.Internal("Failed to look up sender")
	}
	return user.Username, nil
}
