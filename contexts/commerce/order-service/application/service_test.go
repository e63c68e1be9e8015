package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"pixmart/contexts/commerce/order-service/adapters/memory"
	"pixmart/contexts/commerce/order-service/domain/entities"
	domainerrors "pixmart/contexts/commerce/order-service/domain/errors"
	"pixmart/contexts/commerce/order-service/ports"
	"pixmart/internal/shared/events"
)

type fakeCatalog struct {
	listings map[string]ports.ListingSnapshot
}

func (f *fakeCatalog) GetListingForSale(_ context.Context, listingID string) (ports.ListingSnapshot, error) {
	snapshot, ok := f.listings[listingID]
	if !ok {
		return ports.ListingSnapshot{}, domainerrors.ErrListingUnavailable
	}
	return snapshot, nil
}

type capturedEvent struct {
	topic    string
	envelope events.Envelope
}

type fakePublisher struct {
	published []capturedEvent
	fail      error
}

func (f *fakePublisher) Publish(_ context.Context, topic string, event events.Envelope) error {
	if f.fail != nil {
		return f.fail
	}
	f.published = append(f.published, capturedEvent{topic: topic, envelope: event})
	return nil
}

func newTestService(catalog *fakeCatalog, publisher *fakePublisher) Service {
	store := memory.NewStore()
	return Service{
		Repo:      store,
		Cart:      store,
		Listings:  catalog,
		Publisher: publisher,
		Clock:     store,
		IDGen:     store,
	}
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{listings: map[string]ports.ListingSnapshot{
		"lst_paid": {ListingID: "lst_paid", VendorID: "vendor_1", Title: "Mountain Sunrise", Price: 12.5, Active: true},
		"lst_more": {ListingID: "lst_more", VendorID: "vendor_2", Title: "Forest Mist", Price: 4, Active: true},
		"lst_free": {ListingID: "lst_free", VendorID: "vendor_1", Title: "Free Sample", Price: 0, Active: true},
		"lst_off":  {ListingID: "lst_off", VendorID: "vendor_1", Title: "Retired", Price: 9, Active: false},
	}}
}

func TestCreateSnapshotsPrices(t *testing.T) {
	catalog := testCatalog()
	service := newTestService(catalog, &fakePublisher{})

	order, err := service.Create(context.Background(), "buyer_1", ports.CreateOrderInput{
		Items: []ports.OrderItemInput{
			{ListingID: "lst_paid", Quantity: 2},
			{ListingID: "lst_more"},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if order.Status != entities.StatusPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}
	if order.Total != 2*12.5+4 {
		t.Fatalf("unexpected total: %v", order.Total)
	}

	// Later catalog edits leave the stored order untouched.
	catalog.listings["lst_paid"] = ports.ListingSnapshot{
		ListingID: "lst_paid", VendorID: "vendor_1", Title: "Mountain Sunrise", Price: 100, Active: true,
	}
	stored, err := service.Get(context.Background(), order.OrderID, "buyer_1", "user")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Total != 29 {
		t.Fatalf("total drifted after catalog edit: %v", stored.Total)
	}
	if stored.Items[0].UnitPrice != 12.5 {
		t.Fatalf("unit price drifted: %v", stored.Items[0].UnitPrice)
	}
}

func TestCreateRejectsEmptyAndFreeOnlyOrders(t *testing.T) {
	service := newTestService(testCatalog(), &fakePublisher{})

	_, err := service.Create(context.Background(), "buyer_1", ports.CreateOrderInput{})
	if !errors.Is(err, domainerrors.ErrEmptyOrder) {
		t.Fatalf("expected empty order error, got %v", err)
	}

	_, err = service.Create(context.Background(), "buyer_1", ports.CreateOrderInput{
		Items: []ports.OrderItemInput{{ListingID: "lst_free"}},
	})
	if !errors.Is(err, domainerrors.ErrEmptyOrder) {
		t.Fatalf("expected empty order error for zero total, got %v", err)
	}
}

func TestCreateRejectsInactiveListing(t *testing.T) {
	service := newTestService(testCatalog(), &fakePublisher{})

	_, err := service.Create(context.Background(), "buyer_1", ports.CreateOrderInput{
		Items: []ports.OrderItemInput{{ListingID: "lst_off"}},
	})
	if !errors.Is(err, domainerrors.ErrListingUnavailable) {
		t.Fatalf("expected listing unavailable, got %v", err)
	}
}

func TestCheckoutFromCartClearsCart(t *testing.T) {
	service := newTestService(testCatalog(), &fakePublisher{})
	ctx := context.Background()

	if _, err := service.AddToCart(ctx, "buyer_1", "lst_paid", 2); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if _, err := service.AddToCart(ctx, "buyer_1", "lst_more", 0); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	order, err := service.Create(ctx, "buyer_1", ports.CreateOrderInput{})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(order.Items))
	}
	if order.Total != 2*12.5+4 {
		t.Fatalf("unexpected total: %v", order.Total)
	}

	lines, err := service.GetCart(ctx, "buyer_1")
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("cart was not cleared, %d items remain", len(lines))
	}
}

func TestAddToCartReplacesQuantity(t *testing.T) {
	service := newTestService(testCatalog(), &fakePublisher{})
	ctx := context.Background()

	if _, err := service.AddToCart(ctx, "buyer_1", "lst_paid", 1); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if _, err := service.AddToCart(ctx, "buyer_1", "lst_paid", 3); err != nil {
		t.Fatalf("re-add to cart failed: %v", err)
	}

	lines, err := service.GetCart(ctx, "buyer_1")
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected a single cart line, got %d", len(lines))
	}
	if lines[0].Item.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", lines[0].Item.Quantity)
	}
}

func TestSetStatusAuthorization(t *testing.T) {
	service := newTestService(testCatalog(), &fakePublisher{})
	ctx := context.Background()

	order, err := service.Create(ctx, "buyer_1", ports.CreateOrderInput{
		Items: []ports.OrderItemInput{{ListingID: "lst_paid"}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := service.SetStatus(ctx, order.OrderID, "vendor_2", "vendor", entities.StatusApproved); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for unrelated vendor, got %v", err)
	}
	if _, err := service.SetStatus(ctx, order.OrderID, "buyer_1", "user", entities.StatusApproved); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for buyer, got %v", err)
	}
	if _, err := service.SetStatus(ctx, order.OrderID, "vendor_1", "vendor", entities.StatusApproved); err != nil {
		t.Fatalf("vendor on the order must be allowed: %v", err)
	}
	if _, err := service.SetStatus(ctx, order.OrderID, "admin_1", "admin", entities.StatusRefunded); err != nil {
		t.Fatalf("admin must be allowed: %v", err)
	}
	if _, err := service.SetStatus(ctx, order.OrderID, "vendor_1", "vendor", "cancelled"); !errors.Is(err, domainerrors.ErrInvalidStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}
}

func TestFlatStatusLifecycle(t *testing.T) {
	service := newTestService(testCatalog(), &fakePublisher{})
	ctx := context.Background()

	order, err := service.Create(ctx, "buyer_1", ports.CreateOrderInput{
		Items: []ports.OrderItemInput{{ListingID: "lst_paid"}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Any valid status reaches any other; vendors fix mistakes by setting
	// the right status again.
	sequence := []entities.OrderStatus{
		entities.StatusDelivered,
		entities.StatusPending,
		entities.StatusFailed,
		entities.StatusPaid,
		entities.StatusRejected,
	}
	for _, status := range sequence {
		updated, err := service.SetStatus(ctx, order.OrderID, "vendor_1", "vendor", status)
		if err != nil {
			t.Fatalf("move to %s failed: %v", status, err)
		}
		if updated.Status != status {
			t.Fatalf("expected %s, got %s", status, updated.Status)
		}
	}
}

func TestFulfillableStatusPublishesEvent(t *testing.T) {
	publisher := &fakePublisher{}
	service := newTestService(testCatalog(), publisher)
	ctx := context.Background()

	order, err := service.Create(ctx, "buyer_1", ports.CreateOrderInput{
		Items: []ports.OrderItemInput{{ListingID: "lst_paid", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := service.SetStatus(ctx, order.OrderID, "vendor_1", "vendor", entities.StatusRejected); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if len(publisher.published) != 0 {
		t.Fatalf("rejected order must not publish, got %d events", len(publisher.published))
	}

	if _, err := service.SetStatus(ctx, order.OrderID, "vendor_1", "vendor", entities.StatusApproved); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if len(publisher.published) != 1 {
		t.Fatalf("expected one event, got %d", len(publisher.published))
	}

	got := publisher.published[0]
	if got.topic != events.TopicOrderFulfillable {
		t.Fatalf("unexpected topic %s", got.topic)
	}
	var payload events.OrderFulfillablePayload
	if err := json.Unmarshal(got.envelope.Payload, &payload); err != nil {
		t.Fatalf("payload decode failed: %v", err)
	}
	if payload.OrderID != order.OrderID || payload.BuyerID != "buyer_1" {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if len(payload.Items) != 1 || payload.Items[0].ListingID != "lst_paid" {
		t.Fatalf("unexpected payload items %+v", payload.Items)
	}
}

func TestPublishFailureDoesNotFailStatusChange(t *testing.T) {
	publisher := &fakePublisher{fail: errors.New("bus down")}
	service := newTestService(testCatalog(), publisher)
	ctx := context.Background()

	order, err := service.Create(ctx, "buyer_1", ports.CreateOrderInput{
		Items: []ports.OrderItemInput{{ListingID: "lst_paid"}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	updated, err := service.SetStatus(ctx, order.OrderID, "vendor_1", "vendor", entities.StatusApproved)
	if err != nil {
		t.Fatalf("status change must survive publish failure: %v", err)
	}
	if updated.Status != entities.StatusApproved {
		t.Fatalf("expected approved, got %s", updated.Status)
	}
}

func TestGetAuthorization(t *testing.T) {
	service := newTestService(testCatalog(), &fakePublisher{})
	ctx := context.Background()

	order, err := service.Create(ctx, "buyer_1", ports.CreateOrderInput{
		Items: []ports.OrderItemInput{{ListingID: "lst_paid"}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := service.Get(ctx, order.OrderID, "buyer_1", "user"); err != nil {
		t.Fatalf("buyer must read own order: %v", err)
	}
	if _, err := service.Get(ctx, order.OrderID, "vendor_1", "vendor"); err != nil {
		t.Fatalf("vendor on the order must read it: %v", err)
	}
	if _, err := service.Get(ctx, order.OrderID, "admin_1", "admin"); err != nil {
		t.Fatalf("admin must read any order: %v", err)
	}
	if _, err := service.Get(ctx, order.OrderID, "buyer_2", "user"); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for stranger, got %v", err)
	}
}
