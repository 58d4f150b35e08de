package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/YoussefMohammed93/bait-els3ada-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /favorites
//
// Product ids only, most recently toggled first; the storefront hydrates
// them against the catalog itself.
func GetFavorites(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, sessionID := requestIdentity(c)
		owner, err := services.ResolveOwner(db, email, sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve identity"})
			return
		}

		ids, err := services.GetFavorites(db, owner)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"product_ids": ids})
	}
}

// POST /favorites/:product_id/toggle
func ToggleFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, sessionID := requestIdentity(c)
		owner, err := services.ResolveOwner(db, email, sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve identity"})
			return
		}

		productID64, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}

		added, err := services.ToggleFavorite(db, owner, sessionID, uint(productID64))
		if err != nil {
			if errors.Is(err, services.ErrNoOwner) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "A session id or login is required"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle favorite"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"added": added})
	}
}
