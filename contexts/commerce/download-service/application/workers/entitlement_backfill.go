package workers

import (
	"context"
	"log/slog"
	"time"

	"pixmart/contexts/commerce/download-service/ports"
)

// FulfillableOrder is the slice of commerce data the backfill needs.
type FulfillableOrder struct {
	OrderID    string
	BuyerID    string
	ListingIDs []string
}

// FulfillableOrderSource lists recently fulfillable orders. Implemented by
// an adapter in the composition root.
type FulfillableOrderSource interface {
	ListFulfillableSince(ctx context.Context, since time.Time) ([]FulfillableOrder, error)
}

// EntitlementBackfill sweeps recent fulfillable orders and re-grants their
// entitlements. It is the safety net behind the event-driven projector:
// a grant lost to a crash between the status write and the event delivery
// is repaired on the next sweep.
type EntitlementBackfill struct {
	Orders FulfillableOrderSource
	Grants EntitlementGranter
	Clock  ports.Clock
	Window time.Duration
	Logger *slog.Logger
}

func (b EntitlementBackfill) RunOnce(ctx context.Context) error {
	now := time.Now().UTC()
	if b.Clock != nil {
		now = b.Clock.Now().UTC()
	}
	orders, err := b.Orders.ListFulfillableSince(ctx, now.Add(-b.window()))
	if err != nil {
		return err
	}

	granted := 0
	for _, order := range orders {
		for _, listingID := range order.ListingIDs {
			if listingID == "" {
				continue
			}
			if err := b.Grants.Grant(ctx, order.BuyerID, listingID, order.OrderID); err != nil {
				b.logger().Error("entitlement backfill grant failed",
					"event", "entitlement_backfill_failed",
					"module", "commerce/download-service",
					"layer", "worker",
					"order_id", order.OrderID,
					"listing_id", listingID,
					"error", err.Error(),
				)
				continue
			}
			granted++
		}
	}
	if granted > 0 {
		b.logger().Info("entitlement backfill swept",
			"event", "entitlement_backfill_swept",
			"module", "commerce/download-service",
			"layer", "worker",
			"orders", len(orders),
			"grants", granted,
		)
	}
	return nil
}

func (b EntitlementBackfill) window() time.Duration {
	if b.Window <= 0 {
		return 24 * time.Hour
	}
	return b.Window
}

func (b EntitlementBackfill) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}
