package services

import (
	"testing"

	"github.com/YoussefMohammed93/bait-els3ada-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func checkoutRequest(email, sessionID string) CreateOrderRequest {
	return CreateOrderRequest{
		Email:         email,
		SessionID:     sessionID,
		Name:          "Test Customer",
		Phone:         "0100",
		Address:       "12 Tahrir St",
		Governorate:   "Cairo",
		PaymentMethod: models.PaymentMethodCOD,
	}
}

func TestCreateOrderComputesTotalWithShipping(t *testing.T) {
	db := newTestDB(t)
	p1 := seedProduct(t, db, "honey", 100, 10)
	p2 := seedProduct(t, db, "dates", 50, 10)
	customer := seedCustomer(t, db, "a@example.com", "0100")

	require.NoError(t, ReplaceCart(db, AccountOwner(customer.ID), "", []CartLine{
		{ProductID: p1.ID, Quantity: 2},
		{ProductID: p2.ID, Quantity: 1},
	}))

	order, err := CreateOrder(db, checkoutRequest("a@example.com", ""))
	require.NoError(t, err)

	// 100*2 + 50*1 + flat 50 shipping
	assert.Equal(t, 300.0, order.TotalAmount)
	assert.Equal(t, ShippingFlat, order.ShippingCost)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusUnpaid, order.PaymentStatus)
	assert.NotEmpty(t, order.OrderRef)
	assert.Len(t, order.Items, 2)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)
	seedCustomer(t, db, "a@example.com", "0100")

	_, err := CreateOrder(db, checkoutRequest("a@example.com", ""))
	assert.ErrorIs(t, err, ErrEmptyCart)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 0, count, "no order row may exist after a rejected checkout")
}

func TestCreateOrderZeroLineCart(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "honey", 100, 10)
	customer := seedCustomer(t, db, "a@example.com", "0100")

	require.NoError(t, ReplaceCart(db, AccountOwner(customer.ID), "", []CartLine{
		{ProductID: product.ID, Quantity: 1},
	}))
	// Client emptied the cart locally and synced the empty state.
	require.NoError(t, ReplaceCart(db, AccountOwner(customer.ID), "", nil))

	_, err := CreateOrder(db, checkoutRequest("a@example.com", ""))
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateOrderConsumesCart(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "honey", 100, 10)
	customer := seedCustomer(t, db, "a@example.com", "0100")

	require.NoError(t, ReplaceCart(db, AccountOwner(customer.ID), "", []CartLine{
		{ProductID: product.ID, Quantity: 2},
	}))

	_, err := CreateOrder(db, checkoutRequest("a@example.com", ""))
	require.NoError(t, err)

	var carts, orders int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&carts).Error)
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.EqualValues(t, 0, carts, "cart row must be deleted, not emptied")
	assert.EqualValues(t, 1, orders)

	// Stock moved with the order.
	var after models.Product
	require.NoError(t, db.First(&after, product.ID).Error)
	assert.Equal(t, 8, after.Stock)
}

// A product deleted mid-cart fails the whole checkout and leaves everything
// untouched: no order rows, cart still present, no stock movement.
func TestCreateOrderAbortsAtomicallyOnDeletedProduct(t *testing.T) {
	db := newTestDB(t)
	kept := seedProduct(t, db, "honey", 100, 10)
	gone := seedProduct(t, db, "dates", 50, 10)
	customer := seedCustomer(t, db, "a@example.com", "0100")

	require.NoError(t, ReplaceCart(db, AccountOwner(customer.ID), "", []CartLine{
		{ProductID: kept.ID, Quantity: 1},
		{ProductID: gone.ID, Quantity: 1},
	}))
	require.NoError(t, db.Delete(&models.Product{}, gone.ID).Error)

	_, err := CreateOrder(db, checkoutRequest("a@example.com", ""))
	assert.ErrorIs(t, err, ErrProductNotFound)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.EqualValues(t, 0, orders)

	assert.Equal(t, map[uint]int{kept.ID: 1, gone.ID: 1},
		cartQuantities(t, db, AccountOwner(customer.ID)), "cart must be untouched")

	var after models.Product
	require.NoError(t, db.First(&after, kept.ID).Error)
	assert.Equal(t, 10, after.Stock, "rolled-back checkout must not move stock")
}

func TestCreateOrderSnapshotSurvivesCatalogEdits(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "honey", 100, 10)
	customer := seedCustomer(t, db, "a@example.com", "0100")

	require.NoError(t, ReplaceCart(db, AccountOwner(customer.ID), "", []CartLine{
		{ProductID: product.ID, Quantity: 1},
	}))
	order, err := CreateOrder(db, checkoutRequest("a@example.com", ""))
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Updates(map[string]interface{}{"sale_price": 200.0, "e_name": "premium honey"}).Error)

	reread, err := GetOrder(db, order.OrderRef)
	require.NoError(t, err)
	require.Len(t, reread.Items, 1)
	assert.Equal(t, 100.0, reread.Items[0].Price)
	assert.Equal(t, "honey", reread.Items[0].ProductEName)
	assert.Equal(t, 150.0, reread.TotalAmount, "total is never recomputed")
}

func TestCreateOrderFallsBackToSessionCart(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "honey", 100, 10)

	require.NoError(t, ReplaceCart(db, SessionOwner("sess-1"), "", []CartLine{
		{ProductID: product.ID, Quantity: 1},
	}))

	// Guest checkout: no account exists for this contact yet.
	order, err := CreateOrder(db, checkoutRequest("guest@example.com", "sess-1"))
	require.NoError(t, err)

	var customer models.Customer
	require.NoError(t, db.Where("email = ?", "guest@example.com").First(&customer).Error)
	assert.Equal(t, "customer", customer.Role)
	assert.Equal(t, customer.ID, order.CustomerID)

	var carts int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&carts).Error)
	assert.EqualValues(t, 0, carts)
}

func TestCreateOrderMatchesCustomerByPhone(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "honey", 100, 10)
	existing := seedCustomer(t, db, "", "0100")

	require.NoError(t, ReplaceCart(db, SessionOwner("sess-1"), "", []CartLine{
		{ProductID: product.ID, Quantity: 1},
	}))

	req := checkoutRequest("", "sess-1")
	order, err := CreateOrder(db, req)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, order.CustomerID, "phone match must not create a duplicate account")
}

func TestCreateOrderWalletRequiresSenderWallet(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "honey", 100, 10)
	customer := seedCustomer(t, db, "a@example.com", "0100")

	require.NoError(t, ReplaceCart(db, AccountOwner(customer.ID), "", []CartLine{
		{ProductID: product.ID, Quantity: 1},
	}))

	req := checkoutRequest("a@example.com", "")
	req.PaymentMethod = models.PaymentMethodWallet
	_, err := CreateOrder(db, req)
	assert.ErrorIs(t, err, ErrSenderWalletRequired)

	req.SenderWallet = "01001234567"
	order, err := CreateOrder(db, req)
	require.NoError(t, err)
	assert.Equal(t, "01001234567", order.SenderWallet)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "honey", 100, 1)
	customer := seedCustomer(t, db, "a@example.com", "0100")

	require.NoError(t, ReplaceCart(db, AccountOwner(customer.ID), "", []CartLine{
		{ProductID: product.ID, Quantity: 3},
	}))

	_, err := CreateOrder(db, checkoutRequest("a@example.com", ""))
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCancelOrderOnlyWhilePending(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "honey", 100, 10)
	customer := seedCustomer(t, db, "a@example.com", "0100")

	require.NoError(t, ReplaceCart(db, AccountOwner(customer.ID), "", []CartLine{
		{ProductID: product.ID, Quantity: 1},
	}))
	order, err := CreateOrder(db, checkoutRequest("a@example.com", ""))
	require.NoError(t, err)

	require.NoError(t, CancelOrder(db, order.ID))

	var cancelled models.Order
	require.NoError(t, db.First(&cancelled, order.ID).Error)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
}

func TestCancelOrderRejectsShipped(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "honey", 100, 10)
	customer := seedCustomer(t, db, "a@example.com", "0100")

	require.NoError(t, ReplaceCart(db, AccountOwner(customer.ID), "", []CartLine{
		{ProductID: product.ID, Quantity: 1},
	}))
	order, err := CreateOrder(db, checkoutRequest("a@example.com", ""))
	require.NoError(t, err)

	_, err = SetOrderStatus(db, order.ID, models.OrderStatusShipped)
	require.NoError(t, err)

	err = CancelOrder(db, order.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	var after models.Order
	require.NoError(t, db.First(&after, order.ID).Error)
	assert.Equal(t, models.OrderStatusShipped, after.Status, "status must be unchanged")
}

// Staff may set any status from any status, including walking a completed
// order back to pending; the customer guard does not apply to the dashboard.
func TestSetOrderStatusIsUnconditional(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "honey", 100, 10)
	customer := seedCustomer(t, db, "a@example.com", "0100")

	require.NoError(t, ReplaceCart(db, AccountOwner(customer.ID), "", []CartLine{
		{ProductID: product.ID, Quantity: 1},
	}))
	order, err := CreateOrder(db, checkoutRequest("a@example.com", ""))
	require.NoError(t, err)

	for _, status := range []models.OrderStatus{
		models.OrderStatusCompleted,
		models.OrderStatusPending,
		models.OrderStatusCancelled,
		models.OrderStatusProcessing,
	} {
		updated, err := SetOrderStatus(db, order.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	_, err = SetOrderStatus(db, order.ID, models.OrderStatus("delivered"))
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestCancelOrderUnknownOrder(t *testing.T) {
	db := newTestDB(t)
	err := CancelOrder(db, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListCustomerOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "honey", 100, 100)
	customer := seedCustomer(t, db, "a@example.com", "0100")

	for i := 0; i < 3; i++ {
		require.NoError(t, ReplaceCart(db, AccountOwner(customer.ID), "", []CartLine{
			{ProductID: product.ID, Quantity: 1},
		}))
		_, err := CreateOrder(db, checkoutRequest("a@example.com", ""))
		require.NoError(t, err)
	}

	orders, err := ListCustomerOrders(db, customer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for i := 1; i < len(orders); i++ {
		assert.False(t, orders[i].CreatedAt.After(orders[i-1].CreatedAt))
	}
}
