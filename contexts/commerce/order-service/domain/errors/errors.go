package domainerrors

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmptyOrder         = errors.New("order has no payable items")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrForbidden          = errors.New("caller may not access this order")
	ErrListingUnavailable = errors.New("listing is not available for purchase")
	ErrCartItemNotFound   = errors.New("cart item not found")
)
