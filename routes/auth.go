package routes

import (
	"github.com/YoussefMohammed93/bait-els3ada-api/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		// Anonymous visitors get a session id + guest token
		authGroup.POST("/guest", auth.CreateGuestSession(db))

		// Login (find-or-create by email), merges guest cart + favorites
		authGroup.POST("/login", auth.LoginHandler(db))
	}
}
