package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AmanSingh2427/Whatapp/internal/models"
)

func TestRegistryMultiConnection(t *testing.T) {
	h := newHub()

	// A user may hold several connections at once (multi-tab).
	h.subscribeUser("c1", "u1")
	h.subscribeUser("c2", "u1")
	h.subscribeUser("c3", "u2")

	assert.ElementsMatch(t, []string{"u1", "u2"}, h.OnlineUsers())
	assert.True(t, h.IsOnline("u1"))

	h.unsubscribe("c1")
	assert.True(t, h.IsOnline("u1"))

	h.unsubscribe("c2")
	assert.False(t, h.IsOnline("u1"))
	assert.ElementsMatch(t, []string{"u2"}, h.OnlineUsers())
}

func TestRegistryGroupRooms(t *testing.T) {
	h := newHub()

	// Joining before authenticating is ignored.
	h.joinGroupRoom("c1", "g1")
	assert.Empty(t, h.rooms)

	h.subscribeUser("c1", "u1")
	h.subscribeUser("c2", "u2")
	h.joinGroupRoom("c1", "g1")
	h.joinGroupRoom("c2", "g1")

	assert.Len(t, h.rooms["g1"], 2)

	// Disconnect cleans up room membership; empty rooms disappear.
	h.unsubscribe("c1")
	assert.Len(t, h.rooms["g1"], 1)
	h.unsubscribe("c2")
	assert.Empty(t, h.rooms)
}

func TestUnsubscribeUnknownConnection(t *testing.T) {
	h := newHub()
	h.unsubscribe("never-seen")
	assert.Empty(t, h.OnlineUsers())
}

func TestPublishWithoutServerIsNoop(t *testing.T) {
	h := newHub()

	// Publishing into a hub with no live server must be a silent no-op;
	// durability is the store's job.
	h.PublishDirect(&models.Message{
		ID:         "m1",
		SenderID:   "u1",
		ReceiverID: "u2",
		Body:       "hi",
		CreatedAt:  time.Now(),
	}, "alice")

	h.PublishGroup(&models.GroupMessage{
		ID:        "gm1",
		GroupID:   "g1",
		SenderID:  "u1",
		Body:      "hello",
		CreatedAt: time.Now(),
	}, "alice")
}
