package workers

import (
	"context"
	"encoding/json"
	"log/slog"

	"pixmart/internal/shared/events"
)

// EntitlementGranter is the slice of the download service the projector
// needs. Grants must be replay safe.
type EntitlementGranter interface {
	Grant(ctx context.Context, userID string, listingID string, orderID string) error
}

// EntitlementProjector turns order fulfillment events into download
// entitlements. Delivery is at least once; duplicate events fall through the
// grant's uniqueness rule.
type EntitlementProjector struct {
	Grants EntitlementGranter
	Logger *slog.Logger
}

func (p EntitlementProjector) Handle(ctx context.Context, event events.Envelope) error {
	if event.EventType != events.EventTypeOrderFulfillable {
		return nil
	}
	var payload events.OrderFulfillablePayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return err
	}
	if payload.BuyerID == "" || len(payload.Items) == 0 {
		return nil
	}

	var lastErr error
	for _, item := range payload.Items {
		if item.ListingID == "" {
			continue
		}
		if err := p.Grants.Grant(ctx, payload.BuyerID, item.ListingID, payload.OrderID); err != nil {
			lastErr = err
			p.logger().Error("entitlement projection failed",
				"event", "entitlement_projection_failed",
				"module", "commerce/download-service",
				"layer", "worker",
				"order_id", payload.OrderID,
				"listing_id", item.ListingID,
				"error", err.Error(),
			)
		}
	}
	return lastErr
}

func (p EntitlementProjector) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
