// Package usecase implements order history and the shopping cart.
package usecase

import "errors"

var (
	// ErrCartItemNotFound is returned when the cart item does not exist or is not the caller's.
	ErrCartItemNotFound = errors.New("cart item not found")

	// ErrCartEmpty is returned by checkout when there is nothing to order.
	ErrCartEmpty = errors.New("cart is empty")

	// ErrProductNotFound is returned when adding a product missing from the catalog.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidQuantity is returned for quantities outside the accepted range.
	ErrInvalidQuantity = errors.New("invalid quantity")
)
