package services

import "errors"

var (
	// ErrNoOwner is returned when a write needs an owner but the request
	// carried neither an authenticated identity nor a session id.
	ErrNoOwner = errors.New("no owner identity supplied")

	// ErrEmptyCart rejects checkout when the owner has no cart row or the
	// cart has zero lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrProductNotFound fails checkout when a cart line references a
	// product deleted after it was added. The whole order is aborted; the
	// customer removes the stale line.
	ErrProductNotFound = errors.New("product not found")

	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidStatusTransition rejects a customer cancellation of an
	// order that is no longer pending.
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	ErrSenderWalletRequired = errors.New("sender wallet is required for wallet payments")

	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	ErrInvalidOrderStatus = errors.New("invalid order status")
)
