package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/AmanSingh2427/Whatapp/internal/models"
	"github.com/AmanSingh2427/Whatapp/internal/services"
)

func TestCreateGroupAndList(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	alice := seedUser(t, "alice")
	bob := seedUser(t, "bob")
	carol := seedUser(t, "carol")

	w := httptest.NewRecorder()
	c := postJSON(t, w, map[string]interface{}{
		"groupName": "team",
		"users":     []string{bob.ID, carol.ID},
	})
	c.Set("userId", alice.ID)

	CreateGroup(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created["groupId"])

	// The new group is visible in the public listing.
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/uri", nil)

	ListGroups(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var groups []models.Group
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &groups))
	assert.Len(t, groups, 1)
	assert.Equal(t, "team", groups[0].Name)
	assert.Equal(t, created["groupId"], groups[0].ID)
}

func TestCreateGroupInvalidInput(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	alice := seedUser(t, "alice")

	w := httptest.NewRecorder()
	c := postJSON(t, w, map[string]interface{}{"groupName": "team"})
	c.Set("userId", alice.ID)

	CreateGroup(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGroupMessageFlow(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	alice := seedUser(t, "alice")
	bob := seedUser(t, "bob")
	carol := seedUser(t, "carol")
	conv := services.NewConversation(nil)

	group, appErr := services.CreateGroup("team", alice.ID, []string{bob.ID, carol.ID})
	assert.Nil(t, appErr)

	w := httptest.NewRecorder()
	c := postJSON(t, w, map[string]string{"message": "hello"})
	c.Params = gin.Params{{Key: "groupId", Value: group.ID}}
	c.Set("userId", alice.ID)

	SendGroupMessage(conv)(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var sent services.SentMessage
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))
	assert.NotEmpty(t, sent.ID)
	assert.Equal(t, "alice", sent.SenderName)
	assert.False(t, sent.CreatedAt.IsZero())

	// Any member's later read sees the message.
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/uri", nil)
	c.Params = gin.Params{{Key: "groupId", Value: group.ID}}

	GetGroupMessages(conv)(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var messages []services.GroupMessageView
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &messages))
	assert.Len(t, messages, 1)
	assert.Equal(t, sent.ID, messages[0].ID)
	assert.Equal(t, "hello", messages[0].Body)
}

func TestSendGroupMessageUnknownGroup(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	alice := seedUser(t, "alice")
	conv := services.NewConversation(nil)

	w := httptest.NewRecorder()
	c := postJSON(t, w, map[string]string{"message": "hello"})
	c.Params = gin.Params{{Key: "groupId", Value: "no-such-group"}}
	c.Set("userId", alice.ID)

	SendGroupMessage(conv)(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetGroupWithMembers(t *testing.T) {
	SetupTestDB(t)
	gin.SetMode(gin.TestMode)

	alice := seedUser(t, "alice")
	bob := seedUser(t, "bob")

	group, appErr := services.CreateGroup("pair", alice.ID, []string{bob.ID})
	assert.Nil(t, appErr)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/uri", nil)
	c.Params = gin.Params{{Key: "groupId", Value: group.ID}}

	GetGroup(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ID      string                     `json:"id"`
		Name    string                     `json:"name"`
		Members []services.GroupMemberView `json:"members"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, group.ID, resp.ID)
	assert.Equal(t, "pair", resp.Name)
	assert.Len(t, resp.Members, 2)
}
