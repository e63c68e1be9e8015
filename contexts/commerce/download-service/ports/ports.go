package ports

import (
	"context"
	"time"

	"pixmart/contexts/commerce/download-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

// ListingAsset is the catalog view this context needs to gate and resolve
// downloads.
type ListingAsset struct {
	ListingID   string
	VendorID    string
	Title       string
	Category    string
	Price       float64
	ImageURL    string
	OriginalURL string
}

func (a ListingAsset) IsFree() bool {
	return a.Price <= 0
}

// ListingReader resolves listings from the catalog context. Implemented by
// an adapter in the composition root.
type ListingReader interface {
	GetListingAsset(ctx context.Context, listingID string) (ListingAsset, error)
}

// PurchaseReader answers whether the buyer holds an order for the listing in
// a status that entitles downloads. Returns the qualifying order ID.
type PurchaseReader interface {
	QualifyingPurchase(ctx context.Context, buyerID string, listingID string) (string, bool, error)
}

type Repository interface {
	GrantEntitlement(ctx context.Context, entitlement entities.Entitlement) error
	ListEntitlements(ctx context.Context, userID string) ([]entities.Entitlement, error)
}

type FavoritesRepository interface {
	AddFavorite(ctx context.Context, favorite entities.Favorite) error
	RemoveFavorite(ctx context.Context, userID string, listingID string) error
	ListFavorites(ctx context.Context, userID string) ([]entities.Favorite, error)
}
