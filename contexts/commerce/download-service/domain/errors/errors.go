package domainerrors

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrListingNotFound  = errors.New("listing not found")
	ErrPurchaseRequired = errors.New("purchase required for this download")
	ErrAssetMissing     = errors.New("listing has no downloadable asset")
	ErrFavoriteNotFound = errors.New("favorite not found")
)
