package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/AmanSingh2427/Whatapp/internal/handlers"
	"github.com/AmanSingh2427/Whatapp/internal/middleware"
)

func RegisterUserRoutes(r gin.IRouter) {
	r.GET("/user", middleware.AuthMiddleware(), handlers.GetCurrentUser)
	r.GET("/users", middleware.AuthMiddleware(), handlers.ListUsers)

	// Public directory shown when assembling a new group.
	r.GET("/chatusersgroup", handlers.ListAllUsers)
}
