package customerControllers

import (
	"net/http"

	"github.com/YoussefMohammed93/bait-els3ada-api/middleware"
	"github.com/YoussefMohammed93/bait-els3ada-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateCustomerInput struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Picture *string `json:"picture"`
}

// CustomerWithStats is the dashboard listing row: the account plus its
// order activity, computed in one grouped query.
type CustomerWithStats struct {
	models.Customer
	OrderCount int64   `json:"order_count"`
	TotalSpent float64 `json:"total_spent"`
}

// GET /user
func GetCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get(middleware.ContextUserID)

		var customer models.Customer
		if err := db.Preload("Orders.Items").First(&customer, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

// PUT /user
func UpdateCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get(middleware.ContextUserID)

		var customer models.Customer
		if err := db.First(&customer, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}

		var input UpdateCustomerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if input.Picture != nil {
			updates["picture"] = *input.Picture
		}

		if len(updates) > 0 {
			if err := db.Model(&customer).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
				return
			}
		}
		c.JSON(http.StatusOK, customer)
	}
}

// GET /admin/customers
func GetAllCustomers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customers []CustomerWithStats
		err := db.Model(&models.Customer{}).
			Select("customers.*, COUNT(orders.id) AS order_count, COALESCE(SUM(orders.total_amount), 0) AS total_spent").
			Joins("LEFT JOIN orders ON orders.customer_id = customers.id").
			Group("customers.id").
			Order("customers.created_at desc").
			Scan(&customers).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}

// GET /admin/customers/:id
func GetCustomerByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customer models.Customer
		if err := db.Preload("Orders.Items").First(&customer, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}
