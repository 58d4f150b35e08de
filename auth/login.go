package auth

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/YoussefMohammed93/bait-els3ada-api/models"
	"github.com/YoussefMohammed93/bait-els3ada-api/services"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoginRequest struct {
	// Identity fields arrive already verified by the auth provider sitting
	// in front of this API; provider protocol details are not handled here.
	Email   string `json:"email" binding:"required,email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`

	// SessionID is the pre-login guest session whose cart and favorites
	// get merged into the account.
	SessionID string `json:"session_id"`
}

// POST /auth/login
//
// Exchanges a verified identity for a customer JWT, creating the customer
// record on first login, then folds the guest session's cart and favorites
// into the account. The merge is replay-safe, so a client retrying a login
// response it never received cannot duplicate cart contents.
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		var customer models.Customer
		err := db.Where("email = ?", req.Email).First(&customer).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			customer = models.Customer{
				ID:      uuid.NewString(),
				Email:   req.Email,
				Name:    req.Name,
				Picture: req.Picture,
				Role:    "customer",
			}
			if err := db.Create(&customer).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
				return
			}
		} else if err == nil {
			if req.Name != "" || req.Picture != "" {
				db.Model(&customer).Updates(models.Customer{
					Name:    req.Name,
					Picture: req.Picture,
				})
			}
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		cartMerge := "no-guest-cart"
		favoritesMerge := "no-guest-favorites"
		if req.SessionID != "" {
			if err := services.MergeCart(db, req.SessionID, customer.ID); err != nil {
				cartMerge = "merge-failed"
			} else {
				cartMerge = "merged"
			}
			if err := services.MergeFavorites(db, req.SessionID, customer.ID); err != nil {
				favoritesMerge = "merge-failed"
			} else {
				favoritesMerge = "merged"
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message":         "Login successful",
			"customer":        customer,
			"cart_merge":      cartMerge,
			"favorites_merge": favoritesMerge,
			"token":           issueJWT(customer.ID, customer.Email, "customer", customer.Name),
		})
	}
}

// issueJWT generates a JWT token for a customer.
func issueJWT(userID, email, role, name string) string {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"name":    name,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return ""
	}

	return signedToken
}
