package services

import (
	"errors"

	"github.com/YoussefMohammed93/bait-els3ada-api/models"
	"gorm.io/gorm"
)

type OwnerKind int

const (
	OwnerNone OwnerKind = iota
	OwnerAccount
	OwnerSession
)

// OwnerKey names the single identity acting on a cart or favorites list:
// a registered customer, an anonymous session, or nobody. Carrying the two
// ids as a tagged value instead of a pair of nullable fields keeps the
// either-or ownership rule out of convention and into the type.
type OwnerKey struct {
	Kind OwnerKind
	ID   string
}

func AccountOwner(customerID string) OwnerKey {
	return OwnerKey{Kind: OwnerAccount, ID: customerID}
}

func SessionOwner(sessionID string) OwnerKey {
	return OwnerKey{Kind: OwnerSession, ID: sessionID}
}

func NoOwner() OwnerKey {
	return OwnerKey{Kind: OwnerNone}
}

func (o OwnerKey) IsNone() bool {
	return o.Kind == OwnerNone
}

// ResolveOwner maps a request's identity signals to one acting owner. An
// authenticated email wins over a supplied session id; without either the
// caller is a guest with no cart yet, which is a valid state, not an error.
func ResolveOwner(db *gorm.DB, email, sessionID string) (OwnerKey, error) {
	if email != "" {
		var customer models.Customer
		err := db.Where("email = ?", email).First(&customer).Error
		if err == nil {
			return AccountOwner(customer.ID), nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return NoOwner(), err
		}
		// Authenticated but not registered yet; fall back to the session.
	}
	if sessionID != "" {
		return SessionOwner(sessionID), nil
	}
	return NoOwner(), nil
}

// ownerClause returns the WHERE fragment selecting the owner's row.
func ownerClause(owner OwnerKey) (string, string) {
	if owner.Kind == OwnerAccount {
		return "user_id = ?", owner.ID
	}
	return "session_id = ?", owner.ID
}
