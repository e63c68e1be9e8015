package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"pixmart/contexts/commerce/order-service/domain/entities"
	domainerrors "pixmart/contexts/commerce/order-service/domain/errors"
	"pixmart/contexts/commerce/order-service/ports"
	"pixmart/internal/shared/events"
)

type Service struct {
	Repo      ports.Repository
	Cart      ports.CartRepository
	Listings  ports.ListingReader
	Publisher ports.EventPublisher
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// Create places an order for the buyer. When the request carries no items
// the buyer's cart is used instead, and the cart is cleared once the order
// is stored. Prices are snapshotted from the catalog at this moment.
func (s Service) Create(ctx context.Context, buyerID string, input ports.CreateOrderInput) (entities.Order, error) {
	if strings.TrimSpace(buyerID) == "" {
		return entities.Order{}, domainerrors.ErrInvalidRequest
	}

	requested := input.Items
	fromCart := false
	if len(requested) == 0 {
		cartItems, err := s.Cart.ListCart(ctx, buyerID)
		if err != nil {
			return entities.Order{}, err
		}
		for _, item := range cartItems {
			requested = append(requested, ports.OrderItemInput{
				ListingID: item.ListingID,
				Quantity:  item.Quantity,
			})
		}
		fromCart = true
	}
	if len(requested) == 0 {
		return entities.Order{}, domainerrors.ErrEmptyOrder
	}

	lineItems := make([]entities.LineItem, 0, len(requested))
	for _, item := range requested {
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		snapshot, err := s.Listings.GetListingForSale(ctx, item.ListingID)
		if err != nil {
			return entities.Order{}, err
		}
		if !snapshot.Active {
			return entities.Order{}, domainerrors.ErrListingUnavailable
		}
		lineItems = append(lineItems, entities.LineItem{
			ListingID: snapshot.ListingID,
			VendorID:  snapshot.VendorID,
			Title:     snapshot.Title,
			Quantity:  quantity,
			UnitPrice: snapshot.Price,
		})
	}

	orderID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Order{}, err
	}
	order, err := entities.NewOrder(orderID, buyerID, lineItems, s.now())
	if err != nil {
		return entities.Order{}, err
	}
	created, err := s.Repo.CreateOrder(ctx, order)
	if err != nil {
		return entities.Order{}, err
	}

	if fromCart {
		if err := s.Cart.ClearCart(ctx, buyerID); err != nil {
			resolveLogger(s.Logger).Warn("cart clear failed after checkout",
				"event", "cart_clear_failed",
				"module", "commerce/order-service",
				"layer", "application",
				"order_id", created.OrderID,
				"error", err.Error(),
			)
		}
	}

	resolveLogger(s.Logger).Info("order created",
		"event", "order_created",
		"module", "commerce/order-service",
		"layer", "application",
		"order_id", created.OrderID,
		"buyer_id", created.BuyerID,
		"total", created.Total,
		"item_count", len(created.Items),
	)
	return created, nil
}

// SetStatus records the new fulfillment status. Vendors may only touch
// orders containing their own items; admins may touch any order. A move
// into a fulfillable status announces the order on the event bus so the
// download context can grant entitlements.
func (s Service) SetStatus(ctx context.Context, orderID string, callerID string, callerRole string, status entities.OrderStatus) (entities.Order, error) {
	order, err := s.authorizeVendor(ctx, orderID, callerID, callerRole)
	if err != nil {
		return entities.Order{}, err
	}
	if err := order.SetStatus(status, s.now()); err != nil {
		return entities.Order{}, err
	}
	updated, err := s.Repo.UpdateOrder(ctx, order)
	if err != nil {
		return entities.Order{}, err
	}

	resolveLogger(s.Logger).Info("order status changed",
		"event", "order_status_changed",
		"module", "commerce/order-service",
		"layer", "application",
		"order_id", updated.OrderID,
		"status", string(updated.Status),
		"changed_by", callerID,
	)

	if updated.IsFulfillable() {
		s.publishFulfillable(ctx, updated)
	}
	return updated, nil
}

func (s Service) Get(ctx context.Context, orderID string, callerID string, callerRole string) (entities.Order, error) {
	if strings.TrimSpace(orderID) == "" || strings.TrimSpace(callerID) == "" {
		return entities.Order{}, domainerrors.ErrInvalidRequest
	}
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if order.BuyerID != callerID && !order.ContainsVendor(callerID) && callerRole != ports.RoleAdmin {
		return entities.Order{}, domainerrors.ErrForbidden
	}
	return order, nil
}

func (s Service) ListForBuyer(ctx context.Context, buyerID string) ([]entities.Order, error) {
	if strings.TrimSpace(buyerID) == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	return s.Repo.ListByBuyer(ctx, buyerID)
}

func (s Service) ListForVendor(ctx context.Context, vendorID string) ([]entities.Order, error) {
	if strings.TrimSpace(vendorID) == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	return s.Repo.ListByVendor(ctx, vendorID)
}

// CartLine joins a cart item with its current catalog snapshot. Rows whose
// listing has gone missing or inactive are kept so the buyer can see and
// remove them; they simply fail at checkout.
type CartLine struct {
	Item    entities.CartItem
	Listing ports.ListingSnapshot
}

func (s Service) AddToCart(ctx context.Context, buyerID string, listingID string, quantity int) (entities.CartItem, error) {
	if strings.TrimSpace(buyerID) == "" || strings.TrimSpace(listingID) == "" {
		return entities.CartItem{}, domainerrors.ErrInvalidRequest
	}
	if quantity <= 0 {
		quantity = 1
	}
	snapshot, err := s.Listings.GetListingForSale(ctx, listingID)
	if err != nil {
		return entities.CartItem{}, err
	}
	if !snapshot.Active {
		return entities.CartItem{}, domainerrors.ErrListingUnavailable
	}
	return s.Cart.UpsertCartItem(ctx, entities.CartItem{
		BuyerID:   buyerID,
		ListingID: snapshot.ListingID,
		Quantity:  quantity,
		AddedAt:   s.now(),
	})
}

func (s Service) RemoveFromCart(ctx context.Context, buyerID string, listingID string) error {
	if strings.TrimSpace(buyerID) == "" || strings.TrimSpace(listingID) == "" {
		return domainerrors.ErrInvalidRequest
	}
	return s.Cart.RemoveCartItem(ctx, buyerID, listingID)
}

func (s Service) GetCart(ctx context.Context, buyerID string) ([]CartLine, error) {
	if strings.TrimSpace(buyerID) == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	items, err := s.Cart.ListCart(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		snapshot, err := s.Listings.GetListingForSale(ctx, item.ListingID)
		if err != nil {
			snapshot = ports.ListingSnapshot{ListingID: item.ListingID}
		}
		lines = append(lines, CartLine{Item: item, Listing: snapshot})
	}
	return lines, nil
}

func (s Service) authorizeVendor(ctx context.Context, orderID string, callerID string, callerRole string) (entities.Order, error) {
	if strings.TrimSpace(orderID) == "" || strings.TrimSpace(callerID) == "" {
		return entities.Order{}, domainerrors.ErrInvalidRequest
	}
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if !order.ContainsVendor(callerID) && callerRole != ports.RoleAdmin {
		return entities.Order{}, domainerrors.ErrForbidden
	}
	return order, nil
}

// publishFulfillable is fire and forget. Entitlement grants are replay safe
// and download checks re-derive eligibility from order state, so a lost
// event never blocks a buyer.
func (s Service) publishFulfillable(ctx context.Context, order entities.Order) {
	if s.Publisher == nil {
		return
	}
	items := make([]events.OrderFulfillableLineItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, events.OrderFulfillableLineItem{
			ListingID: item.ListingID,
			VendorID:  item.VendorID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	payload, err := json.Marshal(events.OrderFulfillablePayload{
		OrderID: order.OrderID,
		BuyerID: order.BuyerID,
		Status:  string(order.Status),
		Items:   items,
	})
	if err != nil {
		resolveLogger(s.Logger).Error("fulfillable payload marshal failed",
			"event", "order_event_marshal_failed",
			"module", "commerce/order-service",
			"layer", "application",
			"order_id", order.OrderID,
			"error", err.Error(),
		)
		return
	}
	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		eventID = order.OrderID
	}
	envelope := events.Envelope{
		EventID:        eventID,
		EventType:      events.EventTypeOrderFulfillable,
		SourceService:  "order-service",
		OccurredAtUTC:  s.now(),
		EntityType:     "order",
		EntityID:       order.OrderID,
		PayloadVersion: 1,
		Payload:        payload,
	}
	if err := s.Publisher.Publish(ctx, events.TopicOrderFulfillable, envelope); err != nil {
		resolveLogger(s.Logger).Warn("fulfillable event publish failed",
			"event", "order_event_publish_failed",
			"module", "commerce/order-service",
			"layer", "application",
			"order_id", order.OrderID,
			"error", err.Error(),
		)
	}
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
