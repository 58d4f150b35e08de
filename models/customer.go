package models

import "time"

// Customer is a registered storefront account. Rows are created either at
// login or lazily at checkout when neither the order's email nor its phone
// matches an existing record.
type Customer struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	Email     string  `gorm:"index" json:"email"`
	Phone     string  `gorm:"index" json:"phone"`
	Name      string  `json:"name"`
	Picture   string  `json:"picture"`
	Role      string  `gorm:"default:'customer'" json:"role"`
	Orders    []Order `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL" json:"orders,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
