package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AmanSingh2427/Whatapp/internal/services"
)

type createGroupInput struct {
	GroupName string   `json:"groupName" binding:"required"`
	Admin     string   `json:"admin"`
	Users     []string `json:"users" binding:"required"`
}

// CreateGroup handles POST /api/groups. The admin is the authenticated
// caller regardless of what the body claims; the whole write is
// transactional.
func CreateGroup(c *gin.Context) {
	adminID := c.MustGet("userId").(string)

	var input createGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data"})
		return
	}

	group, appErr := services.CreateGroup(input.GroupName, adminID, input.Users)
	if appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"groupId": group.ID})
}

// ListGroups handles GET /api/groups.
func ListGroups(c *gin.Context) {
	groups, appErr := services.ListGroups()
	if appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusOK, groups)
}

// GetGroup handles GET /api/groups/:groupId, returning the group with
// its member list.
func GetGroup(c *gin.Context) {
	groupID := c.Param("groupId")

	group, appErr := services.GetGroup(groupID)
	if appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	members, appErr := services.Members(groupID)
	if appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         group.ID,
		"name":       group.Name,
		"created_at": group.CreatedAt,
		"members":    members,
	})
}

// GetUserGroups handles GET /api/user/groups, the groups the caller
// belongs to.
func GetUserGroups(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	groups, appErr := services.GroupsForUser(userID)
	if appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusOK, groups)
}

type sendGroupMessageInput struct {
	Message string `json:"message" binding:"required"`
}

// SendGroupMessage handles POST /api/groups/:groupId/messages.
func SendGroupMessage(conv *services.Conversation) gin.HandlerFunc {
	return func(c *gin.Context) {
		senderID := c.MustGet("userId").(string)
		groupID := c.Param("groupId")

		var input sendGroupMessageInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}

		body, err := SanitizeMessageBody(input.Message)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		sent, appErr := conv.SendGroup(senderID, groupID, body)
		if appErr != nil {
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}

		c.JSON(http.StatusCreated, sent)
	}
}

// GetGroupMessages handles GET /api/groups/:groupId/messages.
func GetGroupMessages(conv *services.Conversation) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Param("groupId")

		messages, appErr := conv.GroupHistory(groupID)
		if appErr != nil {
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}

		c.JSON(http.StatusOK, messages)
	}
}
