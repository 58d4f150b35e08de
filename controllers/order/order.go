package orderControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/YoussefMohammed93/bait-els3ada-api/middleware"
	"github.com/YoussefMohammed93/bait-els3ada-api/models"
	"github.com/YoussefMohammed93/bait-els3ada-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type CheckoutRequest struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	Address       string `json:"address" binding:"required"`
	Governorate   string `json:"governorate" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"` // "cod" or "wallet"
	SenderWallet  string `json:"sender_wallet"`
	SessionID     string `json:"session_id"`
	Email         string `json:"email"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"` // "unpaid" or "paid"
}

// -------- Handlers --------

// POST /orders
//
// Checkout. Works for logged-in customers (email from the JWT) and guests
// (contact info only, account created on the fly). On success the cart is
// gone and the dashboard feed gets the new order.
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		email := req.Email
		if v, ok := c.Get(middleware.ContextEmail); ok {
			// An authenticated identity always wins over body-supplied contact.
			if s, _ := v.(string); s != "" {
				email = s
			}
		}

		order, err := services.CreateOrder(db, services.CreateOrderRequest{
			Email:         email,
			SessionID:     req.SessionID,
			Name:          req.Name,
			Phone:         req.Phone,
			Address:       req.Address,
			Governorate:   req.Governorate,
			PaymentMethod: models.PaymentMethod(req.PaymentMethod),
			SenderWallet:  req.SenderWallet,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
			case errors.Is(err, services.ErrProductNotFound):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			case errors.Is(err, services.ErrInsufficientStock):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			case errors.Is(err, services.ErrSenderWalletRequired),
				errors.Is(err, services.ErrInvalidPaymentMethod):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		BroadcastOrder(order)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders (admin)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := services.ListOrders(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/mine
func GetMyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, ok := requestCustomer(c, db)
		if !ok {
			return
		}
		orders, err := services.ListCustomerOrders(db, customer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderID
//
// Accepts a numeric id or an order_ref; the storefront uses the ref on the
// receipt page.
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := services.GetOrder(db, c.Param("orderID"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// POST /orders/:orderID/cancel
//
// Customer cancellation, guarded: only a pending order and only by its
// owner. Staff corrections go through the unconditional status update.
func CancelOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, ok := requestCustomer(c, db)
		if !ok {
			return
		}

		orderID, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid orderID"})
			return
		}

		order, err := services.GetOrder(db, c.Param("orderID"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if order.CustomerID != customer.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your order"})
			return
		}

		if err := services.CancelOrder(db, uint(orderID)); err != nil {
			if errors.Is(err, services.ErrInvalidStatusTransition) {
				c.JSON(http.StatusConflict, gin.H{"error": "Order can no longer be cancelled"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
			return
		}

		if updated, err := services.GetOrder(db, c.Param("orderID")); err == nil {
			BroadcastOrder(updated)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
	}
}

// PUT /orders/:orderID/status (admin)
//
// Unconditional: the dashboard may move an order to any status, including
// backwards, to correct mistakes.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid orderID"})
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status, err := services.MapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := services.SetOrderStatus(db, uint(orderID), status)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}

		BroadcastOrder(order)
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// PUT /orders/:orderID/payment-status (admin)
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid orderID"})
			return
		}

		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := services.SetPaymentStatus(db, uint(orderID), models.PaymentStatus(req.PaymentStatus)); err != nil {
			if errors.Is(err, services.ErrInvalidOrderStatus) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment status updated successfully"})
	}
}

// requestCustomer resolves the authenticated caller to a customer record,
// writing the error response itself when that fails.
func requestCustomer(c *gin.Context, db *gorm.DB) (*models.Customer, bool) {
	emailVal, exists := c.Get(middleware.ContextEmail)
	email, _ := emailVal.(string)
	if !exists || email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	var customer models.Customer
	if err := db.Where("email = ?", email).First(&customer).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown customer"})
		return nil, false
	}
	return &customer, true
}
