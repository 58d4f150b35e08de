package models

import "time"

// Favorites mirrors Cart's ownership rules (one identity, session or
// customer, never both) but stores an ordered set of product ids instead of
// quantified lines.
type Favorites struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    *string        `gorm:"uniqueIndex" json:"user_id,omitempty"`
	SessionID *string        `gorm:"uniqueIndex" json:"session_id,omitempty"`
	Items     []FavoriteItem `gorm:"foreignKey:FavoritesID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// FavoriteItem rows are append-only per toggle-on; the auto-increment id
// doubles as recency order, so reads sort by id descending instead of by a
// timestamp. Toggling off deletes the row, toggling back on appends a fresh
// one at the recent end.
type FavoriteItem struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FavoritesID uint      `gorm:"index:idx_fav_product,unique" json:"favorites_id"`
	ProductID   uint      `gorm:"index:idx_fav_product,unique" json:"product_id"`
	AddedAt     time.Time `json:"added_at"`
}
