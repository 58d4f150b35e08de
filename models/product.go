package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	EName         string  `gorm:"not null" json:"e_name"` // English Name
	ARName        string  `json:"ar_name"`                // Arabic Name
	EDescription  string  `json:"e_description"`
	ARDescription string  `json:"ar_description"`
	SalePrice     float64 `gorm:"not null" json:"sale_price"` // Price charged at checkout
	RegularPrice  float64 `json:"regular_price"`
	BaseCost      float64 `json:"base_cost"`
	Image         string  `gorm:"not null" json:"image"`
	Categories    []Category `gorm:"many2many:product_categories;" json:"categories"`
	Stock         int        `json:"stock"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
