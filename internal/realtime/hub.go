package realtime

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"

	"github.com/AmanSingh2427/Whatapp/internal/models"
	"github.com/AmanSingh2427/Whatapp/pkg/logger"
	"github.com/AmanSingh2427/Whatapp/pkg/utils"
)

const groupRoomPrefix = "group:"

// DirectEvent is the live-channel payload for a stored direct message.
// It always carries the persisted id and timestamp so the live view and
// a later history read never disagree.
type DirectEvent struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	ReceiverID string    `json:"receiver_id"`
	Body       string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// GroupEvent is the live-channel payload for a stored group message.
type GroupEvent struct {
	ID         string    `json:"id"`
	GroupID    string    `json:"group_id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Body       string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// Hub is the delivery router. It maps verified user identities to their
// live connections (a user may hold several, one per tab) and group ids
// to the connections that joined the room. Delivery is at-most-once and
// non-durable: connections that are absent simply miss the push and
// catch up via a history read.
type Hub struct {
	server *socketio.Server

	mu    sync.RWMutex
	users map[string]map[string]struct{} // user id -> connection ids
	rooms map[string]map[string]struct{} // group id -> connection ids
	conns map[string]string              // connection id -> user id
}

func newHub() *Hub {
	return &Hub{
		users: make(map[string]map[string]struct{}),
		rooms: make(map[string]map[string]struct{}),
		conns: make(map[string]string),
	}
}

// NewHub creates the hub and its socket.io server. Created once at
// process start and injected where needed; there is no package-level
// instance.
func NewHub() *Hub {
	h := newHub()

	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&websocket.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
			&polling.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
		},
	})

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")

		// Token travels in the handshake query; headers are unreliable
		// across websocket clients.
		u := s.URL()
		token := u.Query().Get("token")
		if token == "" {
			logger.Warn().Str("socket", s.ID()).Msg("Socket connection rejected: no token")
			return fmt.Errorf("authentication required")
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			logger.Warn().Str("socket", s.ID()).Msg("Socket connection rejected: invalid token")
			return fmt.Errorf("invalid token")
		}

		userID := claims.UserID
		s.SetContext(userID)

		// Personal room: every connection of a user joins it, so a
		// direct publish reaches all tabs.
		s.Join(userID)
		h.subscribeUser(s.ID(), userID)

		s.Emit("onlineUsers", h.OnlineUsers())

		logger.Debug().Str("socket", s.ID()).Str("user", userID).Msg("Socket connected")
		return nil
	})

	// Room join is explicit and per session. No membership check here:
	// enforcement, if any, belongs to the conversation service at send
	// time.
	server.OnEvent("/", "joinGroup", func(s socketio.Conn, groupID string) {
		if groupID == "" {
			return
		}
		s.Join(groupRoomPrefix + groupID)
		h.joinGroupRoom(s.ID(), groupID)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		h.unsubscribe(s.ID())
		logger.Debug().Str("socket", s.ID()).Str("reason", reason).Msg("Socket disconnected")
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logger.Warn().Err(e).Msg("Socket error")
	})

	h.server = server
	go server.Serve()
	return h
}

// PublishDirect pushes a stored message to every connection of the
// receiver, plus the sender's other tabs. Best-effort: nobody listening
// is not an error.
func (h *Hub) PublishDirect(msg *models.Message, senderName string) {
	if h.server == nil {
		return
	}

	payload := DirectEvent{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		SenderName: senderName,
		ReceiverID: msg.ReceiverID,
		Body:       msg.Body,
		CreatedAt:  msg.CreatedAt,
	}

	h.server.BroadcastToRoom("/", msg.ReceiverID, "messageReceived", payload)
	if msg.SenderID != msg.ReceiverID {
		h.server.BroadcastToRoom("/", msg.SenderID, "messageReceived", payload)
	}
}

// PublishGroup pushes a stored group message to every connection that
// joined the group's room.
func (h *Hub) PublishGroup(msg *models.GroupMessage, senderName string) {
	if h.server == nil {
		return
	}

	payload := GroupEvent{
		ID:         msg.ID,
		GroupID:    msg.GroupID,
		SenderID:   msg.SenderID,
		SenderName: senderName,
		Body:       msg.Body,
		CreatedAt:  msg.CreatedAt,
	}

	h.server.BroadcastToRoom("/", groupRoomPrefix+msg.GroupID, "groupMessageReceived", payload)
}

// OnlineUsers returns the ids of users with at least one connection.
func (h *Hub) OnlineUsers() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]string, 0, len(h.users))
	for id := range h.users {
		users = append(users, id)
	}
	return users
}

// IsOnline reports whether the user has a live connection.
func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.users[userID]
	return ok
}

// ServeHTTP exposes the socket.io endpoint for the router.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.server.ServeHTTP(w, r)
}

func (h *Hub) Close() error {
	if h.server == nil {
		return nil
	}
	return h.server.Close()
}

// Registry bookkeeping. The lock is scoped to the maps and never held
// across an emit or a store call.

func (h *Hub) subscribeUser(connID, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.users[userID]; !ok {
		h.users[userID] = make(map[string]struct{})
	}
	h.users[userID][connID] = struct{}{}
	h.conns[connID] = userID
}

func (h *Hub) joinGroupRoom(connID, groupID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[connID]; !ok {
		// Unauthenticated sockets never make it past OnConnect.
		return
	}
	if _, ok := h.rooms[groupID]; !ok {
		h.rooms[groupID] = make(map[string]struct{})
	}
	h.rooms[groupID][connID] = struct{}{}
}

func (h *Hub) unsubscribe(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID, ok := h.conns[connID]
	if ok {
		delete(h.conns, connID)
		if set, ok := h.users[userID]; ok {
			delete(set, connID)
			if len(set) == 0 {
				delete(h.users, userID)
			}
		}
	}

	for groupID, set := range h.rooms {
		delete(set, connID)
		if len(set) == 0 {
			delete(h.rooms, groupID)
		}
	}
}
