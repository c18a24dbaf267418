package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/AmanSingh2427/Whatapp/internal/database"
	"github.com/AmanSingh2427/Whatapp/internal/models"
	"github.com/AmanSingh2427/Whatapp/pkg/utils"
)

func seedMessage(t *testing.T, senderID, receiverID, body string, at time.Time) {
	t.Helper()

	msg := models.Message{
		ID:         utils.GenerateID(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
		CreatedAt:  at,
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		t.Fatalf("Failed to seed message: %v", err)
	}
}

func TestGetCurrentUserUnreadCount(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	alice := seedUser(t, "alice")
	bob := seedUser(t, "bob")

	now := time.Now().UTC()
	seedMessage(t, bob.ID, alice.ID, "one", now.Add(-2*time.Minute))
	seedMessage(t, bob.ID, alice.ID, "two", now.Add(-time.Minute))
	seedMessage(t, alice.ID, bob.ID, "reply", now)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/uri", nil)
	c.Set("userId", alice.ID)

	GetCurrentUser(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ID             string `json:"id"`
		Username       string `json:"username"`
		UnreadMessages int64  `json:"unreadMessages"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, alice.ID, resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, int64(2), resp.UnreadMessages)
}

func TestListUsersRecencyAndUnread(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	me := seedUser(t, "me")
	old := seedUser(t, "old_contact")
	recent := seedUser(t, "recent_contact")
	silent := seedUser(t, "silent_contact")

	now := time.Now().UTC()
	seedMessage(t, old.ID, me.ID, "old", now.Add(-2*time.Hour))
	seedMessage(t, me.ID, recent.ID, "out", now.Add(-2*time.Minute))
	seedMessage(t, recent.ID, me.ID, "in", now.Add(-time.Minute))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/uri", nil)
	c.Set("userId", me.ID)

	ListUsers(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var users []struct {
		ID          string `json:"id"`
		Username    string `json:"username"`
		UnreadCount int64  `json:"unreadMessagesCount"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 3)

	// Most recent thread first, never-messaged contacts last.
	assert.Equal(t, recent.ID, users[0].ID)
	assert.Equal(t, old.ID, users[1].ID)
	assert.Equal(t, silent.ID, users[2].ID)

	assert.Equal(t, int64(1), users[0].UnreadCount)
	assert.Equal(t, int64(1), users[1].UnreadCount)
	assert.Equal(t, int64(0), users[2].UnreadCount)

	// The caller never appears in their own sidebar.
	for _, u := range users {
		assert.NotEqual(t, me.ID, u.ID)
	}
}
