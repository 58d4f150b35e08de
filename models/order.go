package models

import "time"

type OrderStatus string
type PaymentStatus string
type PaymentMethod string

const (
	// Order statuses. Customers may only cancel while the order is still
	// pending; staff can set any status directly from the dashboard.
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting confirmation
	OrderStatusProcessing OrderStatus = "processing" // Confirmed and being prepared
	OrderStatusShipped    OrderStatus = "shipped"    // Out for delivery
	OrderStatusCompleted  OrderStatus = "completed"  // Customer received the item
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled before processing

	// Payment statuses
	PaymentStatusUnpaid PaymentStatus = "unpaid" // Awaiting manual reconciliation
	PaymentStatusPaid   PaymentStatus = "paid"   // Confirmed by staff

	// Payment methods. No gateway is called; a wallet transfer carries the
	// sender's wallet number so staff can match the incoming transfer.
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodWallet PaymentMethod = "wallet"
)

// Order is immutable after creation except for Status and PaymentStatus.
// Items carry a full snapshot of each product taken at checkout, so later
// catalog edits never change what the customer was charged.
type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderRef      string        `gorm:"uniqueIndex;not null" json:"order_ref"`
	CustomerID    string        `gorm:"index;not null" json:"customer_id"`
	Customer      Customer      `gorm:"foreignKey:CustomerID" json:"customer"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CustomerName  string        `json:"customer_name"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	Governorate   string        `json:"governorate"`
	ShippingCost  float64       `json:"shipping_cost"`
	TotalAmount   float64       `json:"total_amount"`
	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'unpaid'" json:"payment_status"`
	PaymentMethod PaymentMethod `gorm:"type:VARCHAR(20)" json:"payment_method"`
	SenderWallet  string        `json:"sender_wallet,omitempty"` // wallet transfers only
	CreatedAt     time.Time     `gorm:"index" json:"created_at"`
}

type OrderItem struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	OrderID       uint    `gorm:"index" json:"order_id"`
	ProductID     uint    `json:"product_id"`
	ProductEName  string  `json:"product_e_name"`
	ProductArName string  `json:"product_ar_name"`
	ProductImage  string  `json:"product_image"`
	Price         float64 `json:"price"` // unit sale price at order time
	Quantity      int     `json:"quantity"`
}
