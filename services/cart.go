package services

import (
	"errors"
	"time"

	"github.com/YoussefMohammed93/bait-els3ada-api/models"
	"gorm.io/gorm"
)

// CartLine is the client-side shape of one cart entry. The storefront keeps
// the cart locally and pushes its complete state on every mutation, so the
// server never sees incremental add/remove operations, only full line sets.
type CartLine struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// CartViewLine joins a stored line with the product's live catalog entry.
type CartViewLine struct {
	ProductID  uint              `json:"product_id"`
	Quantity   int               `json:"quantity"`
	EName      string            `json:"e_name"`
	ARName     string            `json:"ar_name"`
	Image      string            `json:"image"`
	Price      float64           `json:"price"`
	Categories []models.Category `json:"categories"`
}

type CartView struct {
	CartID uint           `json:"cart_id"`
	Lines  []CartViewLine `json:"lines"`
}

// GetCart returns the owner's cart joined with current catalog data. Unlike
// order items, cart lines are not snapshots: a price edit shows up on the
// next read. A line whose product has been deleted is omitted from the view
// but left in storage; checkout is where it becomes a hard failure.
// A missing cart row or a None owner yields an empty view, not an error.
func GetCart(db *gorm.DB, owner OwnerKey) (*CartView, error) {
	view := &CartView{Lines: []CartViewLine{}}
	if owner.IsNone() {
		return view, nil
	}

	cond, arg := ownerClause(owner)
	var cart models.Cart
	if err := db.Preload("Items").Where(cond, arg).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view, nil
		}
		return nil, err
	}

	view.CartID = cart.CartID
	for _, item := range cart.Items {
		var product models.Product
		err := db.Preload("Categories").First(&product, item.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue // product gone, drop the line from the view
		}
		if err != nil {
			return nil, err
		}
		view.Lines = append(view.Lines, CartViewLine{
			ProductID:  product.ID,
			Quantity:   item.Quantity,
			EName:      product.EName,
			ARName:     product.ARName,
			Image:      product.Image,
			Price:      product.SalePrice,
			Categories: product.Categories,
		})
	}
	return view, nil
}

// ReplaceCart overwrites the owner's full line set in one transaction,
// creating the cart row on first write. Lines with a non-positive quantity
// are dropped rather than stored; duplicate product ids collapse to the
// last occurrence. When an authenticated owner writes for the first time
// and only a session-owned row exists for the session it just logged in
// from, that row is re-parented in place instead of duplicated, keeping
// the row id stable.
func ReplaceCart(db *gorm.DB, owner OwnerKey, sessionID string, lines []CartLine) error {
	if owner.IsNone() {
		return ErrNoOwner
	}

	return db.Transaction(func(tx *gorm.DB) error {
		cart, err := lockOwnerCart(tx, owner, sessionID)
		if err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		seen := make(map[uint]int, len(lines))
		order := make([]uint, 0, len(lines))
		for _, line := range lines {
			if line.Quantity < 1 {
				continue
			}
			if _, ok := seen[line.ProductID]; !ok {
				order = append(order, line.ProductID)
			}
			seen[line.ProductID] = line.Quantity
		}
		now := time.Now()
		for _, productID := range order {
			item := models.CartItem{
				CartID:    cart.CartID,
				ProductID: productID,
				Quantity:  seen[productID],
				AddedAt:   now,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		cart.UpdatedAt = now
		return tx.Save(cart).Error
	})
}

// lockOwnerCart finds or creates the cart row for owner inside tx, holding
// a row lock for the rest of the transaction. Account owners first look for
// a row left over from their pre-login session and take it over in place.
func lockOwnerCart(tx *gorm.DB, owner OwnerKey, sessionID string) (*models.Cart, error) {
	cond, arg := ownerClause(owner)
	var cart models.Cart
	err := withRowLock(tx).Where(cond, arg).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if owner.Kind == OwnerAccount && sessionID != "" {
		err = withRowLock(tx).
			Where("session_id = ?", sessionID).First(&cart).Error
		if err == nil {
			cart.UserID = &owner.ID
			cart.SessionID = nil
			if err := tx.Save(&cart).Error; err != nil {
				return nil, err
			}
			return &cart, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	cart = models.Cart{}
	if owner.Kind == OwnerAccount {
		cart.UserID = &owner.ID
	} else {
		cart.SessionID = &owner.ID
	}
	if err := tx.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// MergeCart folds a guest session's cart into the account cart at login.
// A session cart with no account counterpart is re-parented in place. When
// both exist, colliding lines take the larger of the two quantities rather
// than the sum, so replaying the merge cannot inflate anything, and the
// session row is deleted afterwards. With no session cart the call is a
// no-op, which is what makes repeated invocations safe.
func MergeCart(db *gorm.DB, sessionID, customerID string) error {
	if sessionID == "" || customerID == "" {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var sessionCart models.Cart
		err := withRowLock(tx).
			Preload("Items").Where("session_id = ?", sessionID).First(&sessionCart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // already merged or never existed
		}
		if err != nil {
			return err
		}

		var accountCart models.Cart
		err = withRowLock(tx).
			Preload("Items").Where("user_id = ?", customerID).First(&accountCart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Re-parent in place: same row, new owner.
			return tx.Model(&models.Cart{}).Where("cart_id = ?", sessionCart.CartID).
				Updates(map[string]interface{}{"user_id": customerID, "session_id": nil}).Error
		}
		if err != nil {
			return err
		}

		accountQty := make(map[uint]*models.CartItem, len(accountCart.Items))
		for i := range accountCart.Items {
			accountQty[accountCart.Items[i].ProductID] = &accountCart.Items[i]
		}

		now := time.Now()
		for _, guestItem := range sessionCart.Items {
			if existing, ok := accountQty[guestItem.ProductID]; ok {
				if guestItem.Quantity > existing.Quantity {
					existing.Quantity = guestItem.Quantity
					existing.AddedAt = now
					if err := tx.Save(existing).Error; err != nil {
						return err
					}
				}
				continue
			}
			item := models.CartItem{
				CartID:    accountCart.CartID,
				ProductID: guestItem.ProductID,
				Quantity:  guestItem.Quantity,
				AddedAt:   now,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("cart_id = ?", sessionCart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sessionCart).Error
	})
}
