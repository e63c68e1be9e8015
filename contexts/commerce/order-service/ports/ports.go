package ports

import (
	"context"
	"time"

	"pixmart/contexts/commerce/order-service/domain/entities"
	"pixmart/internal/shared/events"
)

// RoleAdmin is how callers identify the moderation role to this module.
const RoleAdmin = "admin"

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// ListingSnapshot is what the commerce context knows about a catalog
// listing at purchase time.
type ListingSnapshot struct {
	ListingID string
	VendorID  string
	Title     string
	Price     float64
	ImageURL  string
	Active    bool
}

// ListingReader resolves listings from the catalog context. Implemented by
// an adapter in the composition root so this context never imports catalog
// packages directly.
type ListingReader interface {
	GetListingForSale(ctx context.Context, listingID string) (ListingSnapshot, error)
}

// EventPublisher emits envelopes onto the shared bus. Publish failures must
// not fail the commanding operation.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

type OrderItemInput struct {
	ListingID string
	Quantity  int
}

type CreateOrderInput struct {
	Items []OrderItemInput
}

type Repository interface {
	CreateOrder(ctx context.Context, order entities.Order) (entities.Order, error)
	GetOrder(ctx context.Context, orderID string) (entities.Order, error)
	UpdateOrder(ctx context.Context, order entities.Order) (entities.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]entities.Order, error)
	ListByVendor(ctx context.Context, vendorID string) ([]entities.Order, error)
	// ListFulfillableSince returns orders in a fulfillable status whose last
	// change is at or after the given instant. Used by the entitlement
	// backfill worker.
	ListFulfillableSince(ctx context.Context, since time.Time) ([]entities.Order, error)
}

type CartRepository interface {
	UpsertCartItem(ctx context.Context, item entities.CartItem) (entities.CartItem, error)
	RemoveCartItem(ctx context.Context, buyerID string, listingID string) error
	ListCart(ctx context.Context, buyerID string) ([]entities.CartItem, error)
	ClearCart(ctx context.Context, buyerID string) error
}
