package services

import (
	"testing"

	"github.com/YoussefMohammed93/bait-els3ada-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFavoriteAddsThenRemoves(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "honey", 100, 10)
	owner := SessionOwner("sess-1")

	added, err := ToggleFavorite(db, owner, "", product.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = ToggleFavorite(db, owner, "", product.ID)
	require.NoError(t, err)
	assert.False(t, added)

	ids, err := GetFavorites(db, owner)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

// Toggling a product twice must leave the rest of the list untouched, both
// membership and relative order.
func TestToggleFavoriteIsItsOwnInverse(t *testing.T) {
	db := newTestDB(t)
	p1 := seedProduct(t, db, "honey", 100, 10)
	p2 := seedProduct(t, db, "dates", 50, 10)
	p3 := seedProduct(t, db, "tahini", 30, 10)
	owner := SessionOwner("sess-1")

	for _, id := range []uint{p1.ID, p2.ID} {
		_, err := ToggleFavorite(db, owner, "", id)
		require.NoError(t, err)
	}
	before, err := GetFavorites(db, owner)
	require.NoError(t, err)

	_, err = ToggleFavorite(db, owner, "", p3.ID)
	require.NoError(t, err)
	_, err = ToggleFavorite(db, owner, "", p3.ID)
	require.NoError(t, err)

	after, err := GetFavorites(db, owner)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestGetFavoritesNewestFirst(t *testing.T) {
	db := newTestDB(t)
	p1 := seedProduct(t, db, "honey", 100, 10)
	p2 := seedProduct(t, db, "dates", 50, 10)
	p3 := seedProduct(t, db, "tahini", 30, 10)
	owner := SessionOwner("sess-1")

	for _, id := range []uint{p1.ID, p2.ID, p3.ID} {
		_, err := ToggleFavorite(db, owner, "", id)
		require.NoError(t, err)
	}

	ids, err := GetFavorites(db, owner)
	require.NoError(t, err)
	assert.Equal(t, []uint{p3.ID, p2.ID, p1.ID}, ids)

	// Toggle off then back on moves the item to the recent end.
	_, err = ToggleFavorite(db, owner, "", p1.ID)
	require.NoError(t, err)
	_, err = ToggleFavorite(db, owner, "", p1.ID)
	require.NoError(t, err)

	ids, err = GetFavorites(db, owner)
	require.NoError(t, err)
	assert.Equal(t, []uint{p1.ID, p3.ID, p2.ID}, ids)
}

func TestToggleFavoriteReparentsSessionRow(t *testing.T) {
	db := newTestDB(t)
	p1 := seedProduct(t, db, "honey", 100, 10)
	p2 := seedProduct(t, db, "dates", 50, 10)
	customer := seedCustomer(t, db, "a@example.com", "0100")

	_, err := ToggleFavorite(db, SessionOwner("sess-1"), "", p1.ID)
	require.NoError(t, err)
	var before models.Favorites
	require.NoError(t, db.Where("session_id = ?", "sess-1").First(&before).Error)

	_, err = ToggleFavorite(db, AccountOwner(customer.ID), "sess-1", p2.ID)
	require.NoError(t, err)

	var after models.Favorites
	require.NoError(t, db.Where("user_id = ?", customer.ID).First(&after).Error)
	assert.Equal(t, before.ID, after.ID)
	assert.Nil(t, after.SessionID)

	ids, err := GetFavorites(db, AccountOwner(customer.ID))
	require.NoError(t, err)
	assert.Equal(t, []uint{p2.ID, p1.ID}, ids)
}

func TestMergeFavoritesGuestItemsReadFirst(t *testing.T) {
	db := newTestDB(t)
	p1 := seedProduct(t, db, "honey", 100, 10)
	p2 := seedProduct(t, db, "dates", 50, 10)
	p3 := seedProduct(t, db, "tahini", 30, 10)
	customer := seedCustomer(t, db, "a@example.com", "0100")

	_, err := ToggleFavorite(db, AccountOwner(customer.ID), "", p1.ID)
	require.NoError(t, err)
	_, err = ToggleFavorite(db, AccountOwner(customer.ID), "", p2.ID)
	require.NoError(t, err)

	// Guest favorited p2 (duplicate) and p3.
	_, err = ToggleFavorite(db, SessionOwner("sess-1"), "", p2.ID)
	require.NoError(t, err)
	_, err = ToggleFavorite(db, SessionOwner("sess-1"), "", p3.ID)
	require.NoError(t, err)

	require.NoError(t, MergeFavorites(db, "sess-1", customer.ID))

	ids, err := GetFavorites(db, AccountOwner(customer.ID))
	require.NoError(t, err)
	assert.Equal(t, []uint{p3.ID, p2.ID, p1.ID}, ids,
		"guest items ahead of account items, deduplicated")

	stale, err := GetFavorites(db, SessionOwner("sess-1"))
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestMergeFavoritesIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	p1 := seedProduct(t, db, "honey", 100, 10)
	p2 := seedProduct(t, db, "dates", 50, 10)
	customer := seedCustomer(t, db, "a@example.com", "0100")

	_, err := ToggleFavorite(db, AccountOwner(customer.ID), "", p1.ID)
	require.NoError(t, err)
	_, err = ToggleFavorite(db, SessionOwner("sess-1"), "", p2.ID)
	require.NoError(t, err)

	require.NoError(t, MergeFavorites(db, "sess-1", customer.ID))
	once, err := GetFavorites(db, AccountOwner(customer.ID))
	require.NoError(t, err)

	require.NoError(t, MergeFavorites(db, "sess-1", customer.ID))
	twice, err := GetFavorites(db, AccountOwner(customer.ID))
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestMergeFavoritesReparentsWhenOnlySessionListExists(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "honey", 100, 10)
	customer := seedCustomer(t, db, "a@example.com", "0100")

	_, err := ToggleFavorite(db, SessionOwner("sess-1"), "", product.ID)
	require.NoError(t, err)
	require.NoError(t, MergeFavorites(db, "sess-1", customer.ID))

	ids, err := GetFavorites(db, AccountOwner(customer.ID))
	require.NoError(t, err)
	assert.Equal(t, []uint{product.ID}, ids)

	var count int64
	require.NoError(t, db.Model(&models.Favorites{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
