package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/AmanSingh2427/Whatapp/internal/handlers"
	"github.com/AmanSingh2427/Whatapp/internal/middleware"
)

func RegisterAuthRoutes(r gin.IRouter) {
	r.POST("/register", handlers.Register)
	r.POST("/login", handlers.Login)
	r.POST("/logout", middleware.AuthMiddleware(), handlers.Logout)
}
