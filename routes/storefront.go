package routes

import (
	cartControllers "github.com/YoussefMohammed93/bait-els3ada-api/controllers/cart"
	customerControllers "github.com/YoussefMohammed93/bait-els3ada-api/controllers/customer"
	productcontroller "github.com/YoussefMohammed93/bait-els3ada-api/controllers/product"
	"github.com/YoussefMohammed93/bait-els3ada-api/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupStorefrontRoutes registers the customer-facing endpoints. Catalog
// reads are fully public; cart and favorites accept either a guest session
// id or a JWT; the profile requires a JWT.
func SetupStorefrontRoutes(r *gin.Engine, db *gorm.DB) {
	// ──────────────── Browse Catalog ────────────────
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/products/:id", productcontroller.GetProductByID(db))
	r.GET("/categories", productcontroller.GetAllCategories(db))
	r.GET("/categories/:id", productcontroller.GetCategoryByID(db))

	// ──────────────── Shopping Cart ────────────────
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.OptionalToken)
	{
		cartGroup.GET("", cartControllers.GetCart(db))     // GET /cart
		cartGroup.PUT("", cartControllers.ReplaceCart(db)) // PUT /cart
	}

	// ──────────────── Favorites ────────────────
	favGroup := r.Group("/favorites")
	favGroup.Use(middleware.OptionalToken)
	{
		favGroup.GET("", cartControllers.GetFavorites(db))                          // GET /favorites
		favGroup.POST("/:product_id/toggle", cartControllers.ToggleFavorite(db))    // POST /favorites/:product_id/toggle
	}

	// ──────────────── Customer Profile ────────────────
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("", customerControllers.GetCustomer(db))    // GET /user
		userGroup.PUT("", customerControllers.UpdateCustomer(db)) // PUT /user
	}
}
