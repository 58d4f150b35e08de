package services

import (
	"errors"
	"time"

	"github.com/YoussefMohammed93/bait-els3ada-api/models"
	"gorm.io/gorm"
)

// ToggleFavorite flips membership of productID in the owner's favorites as
// one read-modify-write transaction: present removes it and reports false,
// absent appends it at the recent end and reports true. Rapid double-taps
// from the storefront serialize on the row lock instead of losing updates.
// Ownership transfer follows the cart rule: an account owner's first write
// takes over a row still keyed by its pre-login session.
func ToggleFavorite(db *gorm.DB, owner OwnerKey, sessionID string, productID uint) (bool, error) {
	if owner.IsNone() {
		return false, ErrNoOwner
	}

	var added bool
	err := db.Transaction(func(tx *gorm.DB) error {
		favorites, err := lockOwnerFavorites(tx, owner, sessionID)
		if err != nil {
			return err
		}

		var item models.FavoriteItem
		err = tx.Where("favorites_id = ? AND product_id = ?", favorites.ID, productID).
			First(&item).Error
		if err == nil {
			added = false
			if err := tx.Delete(&item).Error; err != nil {
				return err
			}
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			added = true
			item = models.FavoriteItem{
				FavoritesID: favorites.ID,
				ProductID:   productID,
				AddedAt:     time.Now(),
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		} else {
			return err
		}

		favorites.UpdatedAt = time.Now()
		return tx.Save(favorites).Error
	})
	return added, err
}

// GetFavorites returns the owner's favorite product ids, most recently
// toggled-in first. Items are appended on toggle-on, so the row id order is
// the recency order and no timestamp sort is needed.
func GetFavorites(db *gorm.DB, owner OwnerKey) ([]uint, error) {
	ids := []uint{}
	if owner.IsNone() {
		return ids, nil
	}

	cond, arg := ownerClause(owner)
	var favorites models.Favorites
	if err := db.Where(cond, arg).First(&favorites).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ids, nil
		}
		return nil, err
	}

	var items []models.FavoriteItem
	if err := db.Where("favorites_id = ?", favorites.ID).
		Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ids, nil
}

// MergeFavorites unions a guest session's list into the account list at
// login. Guest items land at the recent end on the assumption that the
// guest's toggles are the fresher intent; duplicates keep the guest copy.
// Only a session list existing re-parents the row in place, and a missing
// session list makes the call a no-op, so the merge replays safely.
func MergeFavorites(db *gorm.DB, sessionID, customerID string) error {
	if sessionID == "" || customerID == "" {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var sessionList models.Favorites
		err := withRowLock(tx).
			Where("session_id = ?", sessionID).First(&sessionList).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var accountList models.Favorites
		err = withRowLock(tx).
			Where("user_id = ?", customerID).First(&accountList).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Model(&models.Favorites{}).Where("id = ?", sessionList.ID).
				Updates(map[string]interface{}{"user_id": customerID, "session_id": nil}).Error
		}
		if err != nil {
			return err
		}

		// Oldest-first on both sides so re-inserted ids preserve each
		// side's relative order, with guest items appended last (newest).
		var accountItems, sessionItems []models.FavoriteItem
		if err := tx.Where("favorites_id = ?", accountList.ID).
			Order("id ASC").Find(&accountItems).Error; err != nil {
			return err
		}
		if err := tx.Where("favorites_id = ?", sessionList.ID).
			Order("id ASC").Find(&sessionItems).Error; err != nil {
			return err
		}

		fromSession := make(map[uint]bool, len(sessionItems))
		for _, item := range sessionItems {
			fromSession[item.ProductID] = true
		}

		if err := tx.Where("favorites_id = ?", accountList.ID).
			Delete(&models.FavoriteItem{}).Error; err != nil {
			return err
		}
		for _, item := range accountItems {
			if fromSession[item.ProductID] {
				continue
			}
			merged := models.FavoriteItem{
				FavoritesID: accountList.ID,
				ProductID:   item.ProductID,
				AddedAt:     item.AddedAt,
			}
			if err := tx.Create(&merged).Error; err != nil {
				return err
			}
		}
		for _, item := range sessionItems {
			merged := models.FavoriteItem{
				FavoritesID: accountList.ID,
				ProductID:   item.ProductID,
				AddedAt:     item.AddedAt,
			}
			if err := tx.Create(&merged).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("favorites_id = ?", sessionList.ID).
			Delete(&models.FavoriteItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sessionList).Error
	})
}

func lockOwnerFavorites(tx *gorm.DB, owner OwnerKey, sessionID string) (*models.Favorites, error) {
	cond, arg := ownerClause(owner)
	var favorites models.Favorites
	err := withRowLock(tx).Where(cond, arg).First(&favorites).Error
	if err == nil {
		return &favorites, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if owner.Kind == OwnerAccount && sessionID != "" {
		err = withRowLock(tx).
			Where("session_id = ?", sessionID).First(&favorites).Error
		if err == nil {
			favorites.UserID = &owner.ID
			favorites.SessionID = nil
			if err := tx.Save(&favorites).Error; err != nil {
				return nil, err
			}
			return &favorites, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	favorites = models.Favorites{}
	if owner.Kind == OwnerAccount {
		favorites.UserID = &owner.ID
	} else {
		favorites.SessionID = &owner.ID
	}
	if err := tx.Create(&favorites).Error; err != nil {
		return nil, err
	}
	return &favorites, nil
}
