package models

type Category struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EName    string    `gorm:"unique;not null" json:"e_name"`
	ARName   string    `gorm:"unique;not null" json:"ar_name"`
	Image    string    `json:"image"`
	Products []Product `gorm:"many2many:product_categories" json:"-"`
}
