package routes

import (
	cartControllers "github.com/YoussefMohammed93/bait-els3ada-api/controllers/cart"
	customerControllers "github.com/YoussefMohammed93/bait-els3ada-api/controllers/customer"
	orderControllers "github.com/YoussefMohammed93/bait-els3ada-api/controllers/order"
	productcontroller "github.com/YoussefMohammed93/bait-els3ada-api/controllers/product"
	"github.com/YoussefMohammed93/bait-els3ada-api/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
			categoryAdmin.GET("", productcontroller.GetAllCategories(db))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))
		}

		// ─────────── Customer Management ───────────
		customerAdmin := adminGroup.Group("/customers")
		{
			customerAdmin.GET("", customerControllers.GetAllCustomers(db))
			customerAdmin.GET("/:id", customerControllers.GetCustomerByID(db))
		}

		cartMgmt := adminGroup.Group("/customer-cart")
		{
			cartMgmt.GET("/:user_id", cartControllers.GetCustomerCart(db))
		}
	}
}
