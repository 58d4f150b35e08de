package routes

import (
	orderControllers "github.com/YoussefMohammed93/bait-els3ada-api/controllers/order"
	"github.com/YoussefMohammed93/bait-els3ada-api/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	{
		// Checkout: guests and customers alike
		orders.POST("", middleware.OptionalToken, orderControllers.CheckoutHandler(db))

		// Order history for the logged-in customer
		orders.GET("/mine", middleware.ValidateToken, orderControllers.GetMyOrdersHandler(db))

		// Customer cancellation (pending orders only)
		orders.POST("/:orderID/cancel", middleware.ValidateToken, orderControllers.CancelOrderHandler(db))

		// Receipt lookup by id or order_ref
		orders.GET("/:orderID", orderControllers.GetOrderHandler(db))

		// Websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderFeedHandler)
	}
}
