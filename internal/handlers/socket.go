package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AmanSingh2427/Whatapp/internal/realtime"
)

// SocketHandler wraps the hub's socket.io endpoint for gin.
func SocketHandler(hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		hub.ServeHTTP(c.Writer, c.Request)
	}
}
