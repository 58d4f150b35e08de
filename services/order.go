package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/YoussefMohammed93/bait-els3ada-api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShippingFlat is the fixed delivery surcharge added to every order total,
// in EGP. Overridable at startup via the SHIPPING_FLAT env var.
var ShippingFlat = 50.0

type CreateOrderRequest struct {
	// Identity signals: authenticated email (may be empty) and the guest
	// session id, used both for customer matching and cart fallback.
	Email     string
	SessionID string

	// Shipping details captured onto the order.
	Name        string
	Phone       string
	Address     string
	Governorate string

	PaymentMethod models.PaymentMethod
	SenderWallet  string
}

// CreateOrder converts the caller's cart into an immutable order. The whole
// sequence runs in one transaction: resolve or create the customer, resolve
// the cart (account first, then the supplied session), snapshot every line
// against the live catalog, deduct stock, compute the total, insert the
// order and delete the cart row. Any sub-step failing rolls back all of it,
// so there is never an order without its cart consumed or a consumed cart
// without its order.
func CreateOrder(db *gorm.DB, req CreateOrderRequest) (*models.Order, error) {
	switch req.PaymentMethod {
	case models.PaymentMethodCOD:
	case models.PaymentMethodWallet:
		if strings.TrimSpace(req.SenderWallet) == "" {
			return nil, ErrSenderWalletRequired
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, req.PaymentMethod)
	}

	var order *models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		customer, err := resolveCustomer(tx, req)
		if err != nil {
			return err
		}

		cart, err := resolveCheckoutCart(tx, customer.ID, req.SessionID)
		if err != nil {
			return err
		}
		if cart == nil || len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		var total float64
		orderItems := make([]models.OrderItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			var product models.Product
			err := withRowLock(tx).
				First(&product, item.ProductID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// No partial orders: one stale line fails the whole
				// checkout so the snapshot never misrepresents the cart.
				return fmt.Errorf("%w: product %d", ErrProductNotFound, item.ProductID)
			}
			if err != nil {
				return err
			}

			if product.Stock < item.Quantity {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.EName)
			}
			product.Stock -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			total += product.SalePrice * float64(item.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID:     product.ID,
				ProductEName:  product.EName,
				ProductArName: product.ARName,
				ProductImage:  product.Image,
				Price:         product.SalePrice,
				Quantity:      item.Quantity,
			})
		}

		created := models.Order{
			OrderRef:      generateOrderRef(),
			CustomerID:    customer.ID,
			Items:         orderItems,
			CustomerName:  req.Name,
			Phone:         req.Phone,
			Address:       req.Address,
			Governorate:   req.Governorate,
			ShippingCost:  ShippingFlat,
			TotalAmount:   total + ShippingFlat,
			Status:        models.OrderStatusPending,
			PaymentStatus: models.PaymentStatusUnpaid,
			PaymentMethod: req.PaymentMethod,
			SenderWallet:  req.SenderWallet,
			CreatedAt:     time.Now(),
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		// The cart is transient state, not history: the row goes away
		// entirely once the order is durably written.
		if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(cart).Error; err != nil {
			return err
		}

		order = &created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// resolveCustomer matches the order to an account by email, then by phone,
// and registers a fresh customer when neither matches.
func resolveCustomer(tx *gorm.DB, req CreateOrderRequest) (*models.Customer, error) {
	var customer models.Customer
	if req.Email != "" {
		err := tx.Where("email = ?", req.Email).First(&customer).Error
		if err == nil {
			return &customer, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if req.Phone != "" {
		err := tx.Where("phone = ?", req.Phone).First(&customer).Error
		if err == nil {
			return &customer, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	customer = models.Customer{
		ID:    uuid.NewString(),
		Email: req.Email,
		Phone: req.Phone,
		Name:  req.Name,
		Role:  "customer",
	}
	if err := tx.Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// resolveCheckoutCart prefers the account cart and falls back to the guest
// session cart when the account has none (checkout without a prior login
// merge). Returns nil when neither exists.
func resolveCheckoutCart(tx *gorm.DB, customerID, sessionID string) (*models.Cart, error) {
	var cart models.Cart
	err := withRowLock(tx).
		Preload("Items").Where("user_id = ?", customerID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if sessionID == "" {
		return nil, nil
	}
	err = withRowLock(tx).
		Preload("Items").Where("session_id = ?", sessionID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// CancelOrder is the customer-facing cancellation: allowed only while the
// order is still pending. Inventory is not restocked and the cart is long
// gone, so the only mutation is the status itself.
func CancelOrder(db *gorm.DB, orderID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := withRowLock(tx).
			First(&order, orderID).Error
		if err != nil {
			return err
		}
		if order.Status != models.OrderStatusPending {
			return fmt.Errorf("%w: cannot cancel order in status %q",
				ErrInvalidStatusTransition, order.Status)
		}
		return tx.Model(&order).Update("status", models.OrderStatusCancelled).Error
	})
}

// SetOrderStatus is the staff override from the dashboard: any known status
// may be set from any current status, deliberately bypassing the customer
// transition guard so mis-clicks can be corrected.
func SetOrderStatus(db *gorm.DB, orderID uint, status models.OrderStatus) (*models.Order, error) {
	if _, err := MapOrderStatus(string(status)); err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).Where("id = ?", orderID).
		Update("status", status).Error; err != nil {
		return nil, err
	}
	var order models.Order
	if err := db.Preload("Items").First(&order, orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// SetPaymentStatus records the outcome of manual payment reconciliation.
func SetPaymentStatus(db *gorm.DB, orderID uint, status models.PaymentStatus) error {
	switch status {
	case models.PaymentStatusUnpaid, models.PaymentStatusPaid:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrderStatus, status)
	}
	return db.Model(&models.Order{}).Where("id = ?", orderID).
		Update("payment_status", status).Error
}

// ListOrders returns all orders, newest first, for the dashboard.
func ListOrders(db *gorm.DB) ([]models.Order, error) {
	var orders []models.Order
	err := db.Preload("Customer").Preload("Items").
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// ListCustomerOrders returns one customer's order history, newest first.
func ListCustomerOrders(db *gorm.DB, customerID string) ([]models.Order, error) {
	var orders []models.Order
	err := db.Where("customer_id = ?", customerID).
		Preload("Items").Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// GetOrder looks an order up by numeric id or by its order_ref.
func GetOrder(db *gorm.DB, idOrRef string) (*models.Order, error) {
	var order models.Order
	query := db.Preload("Customer").Preload("Items")
	if id, err := strconv.Atoi(idOrRef); err == nil {
		query = query.Where("id = ?", id)
	} else {
		query = query.Where("order_ref = ?", idOrRef)
	}
	if err := query.First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// MapOrderStatus parses a client-supplied status string.
func MapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusProcessing):
		return models.OrderStatusProcessing, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusCompleted):
		return models.OrderStatusCompleted, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOrderStatus, status)
	}
}

// Generate unique order reference, e.g. 20250908130500-<uuid4>.
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}
