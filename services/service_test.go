package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/YoussefMohammed93/bait-els3ada-api/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. The shared-cache DSN
// is namespaced by test name so parallel tests never see each other's rows.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.Favorites{},
		&models.FavoriteItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.GuestSession{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	product := models.Product{
		EName:     name,
		SalePrice: price,
		Image:     "/images/" + name + ".jpg",
		Stock:     stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedCustomer(t *testing.T, db *gorm.DB, email, phone string) models.Customer {
	t.Helper()
	customer := models.Customer{
		ID:    uuid.NewString(),
		Email: email,
		Phone: phone,
		Name:  "Test Customer",
		Role:  "customer",
	}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

// cartQuantities flattens the owner's stored cart into product→quantity.
func cartQuantities(t *testing.T, db *gorm.DB, owner OwnerKey) map[uint]int {
	t.Helper()
	cond, arg := ownerClause(owner)
	var cart models.Cart
	err := db.Preload("Items").Where(cond, arg).First(&cart).Error
	if err == gorm.ErrRecordNotFound {
		return map[uint]int{}
	}
	require.NoError(t, err)
	quantities := make(map[uint]int, len(cart.Items))
	for _, item := range cart.Items {
		quantities[item.ProductID] = item.Quantity
	}
	return quantities
}
