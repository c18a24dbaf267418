package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/AmanSingh2427/Whatapp/internal/handlers"
	"github.com/AmanSingh2427/Whatapp/internal/middleware"
	"github.com/AmanSingh2427/Whatapp/internal/services"
)

func RegisterMessageRoutes(r gin.IRouter, conv *services.Conversation) {
	messages := r.Group("/messages")
	messages.Use(middleware.AuthMiddleware())
	{
		messages.POST("", handlers.SendMessage(conv))
		messages.GET("/:userId", handlers.GetThread(conv))
		messages.POST("/:userId/read", handlers.MarkThreadRead)
	}
}
