package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry point that wires up the Auth, Storefront,
// Order, and Admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Storefront routes (guest or JWT)
	SetupStorefrontRoutes(r, db)

	// Order routes
	SetupOrderRoutes(r, db)

	// Admin routes (API-key protected)
	SetupAdminRoutes(r, db)
}
