package models

import "time"

// Cart is owned by exactly one identity: a registered customer (UserID) or
// an anonymous session (SessionID). Exactly one of the two is non-nil on
// every row; all writers go through services which maintain that invariant.
// Login re-parents a session cart onto the account by updating the same row,
// so CartID stays stable across the identity transition.
type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    *string    `gorm:"uniqueIndex" json:"user_id,omitempty"`    // Enforces ONE cart per customer
	SessionID *string    `gorm:"uniqueIndex" json:"session_id,omitempty"` // Enforces ONE cart per guest session
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem holds a product reference and a quantity, nothing else. Product
// name/image/price are joined live at read time; only orders snapshot them.
// Quantity is always >= 1; a line dropped to zero is deleted, not stored.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"index:idx_cart_product,unique" json:"cart_id"`
	ProductID uint      `gorm:"index:idx_cart_product,unique" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}
