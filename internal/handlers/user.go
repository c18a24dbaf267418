package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AmanSingh2427/Whatapp/internal/database"
	"github.com/AmanSingh2427/Whatapp/internal/models"
	"github.com/AmanSingh2427/Whatapp/internal/services"
	"github.com/AmanSingh2427/Whatapp/pkg/logger"
)

// GetCurrentUser returns the authenticated user's profile along with
// the number of direct messages still addressed to them unread.
func GetCurrentUser(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	unread, appErr := services.UnreadCountFor(userID)
	if appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             user.ID,
		"username":       user.Username,
		"email":          user.Email,
		"image":          user.Image,
		"unreadMessages": unread,
	})
}

type sidebarUser struct {
	ID            string     `gorm:"column:id" json:"id"`
	Username      string     `gorm:"column:username" json:"username"`
	Image         string     `gorm:"column:image" json:"image"`
	LastMessageAt *time.Time `gorm:"column:last_message_at" json:"mostRecentMessageTime"`
	UnreadCount   int64      `gorm:"column:unread_count" json:"unreadMessagesCount"`
}

// ListUsers returns every other user for the sidebar, with the unread
// count of messages they sent to the caller and the time of the most
// recent exchange. Recency ordering happens here, in the query, not in
// the client.
func ListUsers(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	// Never-messaged users sort last; the boolean term is portable
	// across Postgres and SQLite, unlike NULLS LAST.
	query := `
		SELECT u.id, u.username, u.image,
		       MAX(m.created_at) AS last_message_at,
		       COALESCE(SUM(CASE WHEN m.sender_id = u.id AND m.receiver_id = ? AND m.read = ? THEN 1 ELSE 0 END), 0) AS unread_count
		FROM users u
		LEFT JOIN messages m
		  ON (m.sender_id = u.id AND m.receiver_id = ?) OR (m.sender_id = ? AND m.receiver_id = u.id)
		WHERE u.id <> ?
		GROUP BY u.id, u.username, u.image
		ORDER BY (MAX(m.created_at) IS NULL), MAX(m.created_at) DESC
	`

	users := []sidebarUser{}
	err := database.DB.Raw(query, userID, false, userID, userID, userID).Scan(&users).Error
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// ListAllUsers is the public directory used when assembling a new
// group.
func ListAllUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.Select("id, username, email, image, created_at").Order("username ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching users"})
		return
	}
	c.JSON(http.StatusOK, users)
}
