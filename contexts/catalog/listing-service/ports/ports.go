package ports

import (
	"context"
	"time"

	"pixmart/contexts/catalog/listing-service/domain/entities"
)

// RoleAdmin is how callers identify the moderation role to this module.
// Listing ownership plus this role are the only authorization notions the
// catalog needs.
const RoleAdmin = "admin"

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type CreateListingInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
	ImageURL    string
	OriginalURL string
}

type UpdateListingInput struct {
	Title       string
	Description string
	Price       *float64
	Category    string
	ImageURL    string
	OriginalURL string
}

// ListingFilter defaults to active-only when Status is empty; privileged
// callers may pin any status explicitly.
type ListingFilter struct {
	VendorID string
	Status   string
	Search   string
	Page     int
	Limit    int
}

type Repository interface {
	CreateListing(ctx context.Context, listing entities.Listing) (entities.Listing, error)
	GetListing(ctx context.Context, listingID string) (entities.Listing, error)
	UpdateListing(ctx context.Context, listing entities.Listing) (entities.Listing, error)
	ListListings(ctx context.Context, filter ListingFilter) ([]entities.Listing, int, error)
	ListByVendor(ctx context.Context, vendorID string, status string) ([]entities.Listing, error)
	Categories(ctx context.Context) ([]string, error)
}
