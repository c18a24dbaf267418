package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/AmanSingh2427/Whatapp/internal/handlers"
	"github.com/AmanSingh2427/Whatapp/internal/middleware"
	"github.com/AmanSingh2427/Whatapp/internal/services"
)

func RegisterGroupRoutes(r gin.IRouter, conv *services.Conversation) {
	groups := r.Group("/groups")
	{
		// Listing and details are public; writes require a verified
		// identity.
		groups.GET("", handlers.ListGroups)
		groups.GET("/:groupId", handlers.GetGroup)
		groups.GET("/:groupId/messages", handlers.GetGroupMessages(conv))

		groups.POST("", middleware.AuthMiddleware(), handlers.CreateGroup)
		groups.POST("/:groupId/messages", middleware.AuthMiddleware(), handlers.SendGroupMessage(conv))
	}

	r.GET("/user/groups", middleware.AuthMiddleware(), handlers.GetUserGroups)
}
