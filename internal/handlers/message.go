package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AmanSingh2427/Whatapp/internal/database"
	"github.com/AmanSingh2427/Whatapp/internal/services"
	"github.com/AmanSingh2427/Whatapp/pkg/logger"
)

// Per-user send budget; Redis-backed, disabled when Redis is down.
const (
	sendBudgetLimit  = 30
	sendBudgetWindow = time.Minute
)

type sendMessageInput struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	Message    string `json:"message" binding:"required"`
}

// SendMessage handles POST /api/messages. The sender identity comes
// from the verified token, never from the body.
func SendMessage(conv *services.Conversation) gin.HandlerFunc {
	return func(c *gin.Context) {
		senderID := c.MustGet("userId").(string)

		var input sendMessageInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Receiver ID and message are required"})
			return
		}

		body, err := SanitizeMessageBody(input.Message)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		allowed, err := database.CheckSendBudget(senderID, sendBudgetLimit, sendBudgetWindow)
		if err != nil {
			logger.Warn().Err(err).Msg("Send budget check failed, allowing")
		} else if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many messages, slow down"})
			return
		}

		sent, appErr := conv.SendDirect(senderID, input.ReceiverID, body)
		if appErr != nil {
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}

		c.JSON(http.StatusCreated, sent)
	}
}

// GetThread handles GET /api/messages/:userId, the direct thread
// between the caller and :userId. A pair with no history yields an
// empty array, not an error.
func GetThread(conv *services.Conversation) gin.HandlerFunc {
	return func(c *gin.Context) {
		currentUserID := c.MustGet("userId").(string)
		otherUserID := c.Param("userId")

		messages, appErr := conv.DirectHistory(currentUserID, otherUserID)
		if appErr != nil {
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}

		c.JSON(http.StatusOK, messages)
	}
}

// MarkThreadRead handles POST /api/messages/:userId/read, flipping
// every unread message from :userId to the caller. Idempotent.
func MarkThreadRead(c *gin.Context) {
	currentUserID := c.MustGet("userId").(string)
	otherUserID := c.Param("userId")

	marked, appErr := services.MarkRead(currentUserID, otherUserID)
	if appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"markedRead": marked})
}
