package cartControllers

import (
	"errors"
	"net/http"

	"github.com/YoussefMohammed93/bait-els3ada-api/middleware"
	"github.com/YoussefMohammed93/bait-els3ada-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReplaceCartInput struct {
	Lines []services.CartLine `json:"lines"`
}

// requestIdentity pulls the two identity signals off the request: the
// authenticated email placed in context by the token middleware, and the
// guest session id from query or header. Either or both may be absent.
func requestIdentity(c *gin.Context) (email, sessionID string) {
	if v, ok := c.Get(middleware.ContextEmail); ok {
		email, _ = v.(string)
	}
	sessionID = c.Query("session_id")
	if sessionID == "" {
		sessionID = c.GetHeader("X-Session-ID")
	}
	return email, sessionID
}

// GET /cart
//
// Works for guests and customers alike; with no identity at all it returns
// an empty cart rather than an error.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, sessionID := requestIdentity(c)
		owner, err := services.ResolveOwner(db, email, sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve identity"})
			return
		}

		view, err := services.GetCart(db, owner)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// PUT /cart
//
// The storefront syncs its complete local cart state here on every local
// mutation; the server replaces the stored line set wholesale.
func ReplaceCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, sessionID := requestIdentity(c)
		owner, err := services.ResolveOwner(db, email, sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve identity"})
			return
		}

		var input ReplaceCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := services.ReplaceCart(db, owner, sessionID, input.Lines); err != nil {
			if errors.Is(err, services.ErrNoOwner) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "A session id or login is required"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
	}
}

// GET /admin/customer-cart/:user_id
func GetCustomerCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		view, err := services.GetCart(db, services.AccountOwner(userID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}
