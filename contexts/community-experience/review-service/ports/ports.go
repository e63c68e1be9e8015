package ports

import (
	"context"
	"time"

	"pixmart/contexts/community-experience/review-service/domain/entities"
)

// RoleAdmin is how callers identify the moderation role to this module.
const RoleAdmin = "admin"

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// ListingReader confirms listings exist before a review attaches to them.
// Implemented by an adapter in the composition root.
type ListingReader interface {
	ListingExists(ctx context.Context, listingID string) (bool, error)
}

type Repository interface {
	// CreateReview fails with ErrDuplicateReview when the buyer already
	// reviewed the listing.
	CreateReview(ctx context.Context, review entities.Review) (entities.Review, error)
	GetReview(ctx context.Context, reviewID string) (entities.Review, error)
	UpdateReview(ctx context.Context, review entities.Review) (entities.Review, error)
	DeleteReview(ctx context.Context, reviewID string) error
	ListByListing(ctx context.Context, listingID string) ([]entities.Review, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]entities.Review, error)
}
