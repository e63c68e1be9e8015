package errors

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrListingNotFound = errors.New("listing not found")
	ErrForbidden       = errors.New("not authorized for this listing")
	ErrReasonRequired  = errors.New("rejection reason is required")
	ErrListingDeleted  = errors.New("listing has been deleted")
)
