package workers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"pixmart/internal/shared/events"
)

type recordingGranter struct {
	grants []string
	fail   map[string]error
}

func (r *recordingGranter) Grant(_ context.Context, userID string, listingID string, orderID string) error {
	if err, ok := r.fail[listingID]; ok {
		return err
	}
	r.grants = append(r.grants, userID+"/"+listingID+"/"+orderID)
	return nil
}

func fulfillableEvent(t *testing.T, payload events.OrderFulfillablePayload) events.Envelope {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return events.Envelope{
		EventID:        "evt_1",
		EventType:      events.EventTypeOrderFulfillable,
		SourceService:  "order-service",
		EntityType:     "order",
		EntityID:       payload.OrderID,
		PayloadVersion: 1,
		Payload:        raw,
	}
}

func TestProjectorGrantsEveryLineItem(t *testing.T) {
	granter := &recordingGranter{}
	projector := EntitlementProjector{Grants: granter}

	event := fulfillableEvent(t, events.OrderFulfillablePayload{
		OrderID: "ord_1",
		BuyerID: "buyer_1",
		Status:  "approved",
		Items: []events.OrderFulfillableLineItem{
			{ListingID: "lst_1", VendorID: "vendor_1", Quantity: 1, UnitPrice: 5},
			{ListingID: "lst_2", VendorID: "vendor_2", Quantity: 2, UnitPrice: 3},
		},
	})
	if err := projector.Handle(context.Background(), event); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if len(granter.grants) != 2 {
		t.Fatalf("expected 2 grants, got %d", len(granter.grants))
	}
	if granter.grants[0] != "buyer_1/lst_1/ord_1" {
		t.Fatalf("unexpected grant %s", granter.grants[0])
	}
}

func TestProjectorIgnoresForeignEvents(t *testing.T) {
	granter := &recordingGranter{}
	projector := EntitlementProjector{Grants: granter}

	err := projector.Handle(context.Background(), events.Envelope{
		EventType: "identity.account.registered",
		Payload:   json.RawMessage(`{"whatever":true}`),
	})
	if err != nil {
		t.Fatalf("foreign event must be skipped: %v", err)
	}
	if len(granter.grants) != 0 {
		t.Fatalf("expected no grants, got %d", len(granter.grants))
	}
}

func TestProjectorContinuesPastFailedGrant(t *testing.T) {
	granter := &recordingGranter{fail: map[string]error{"lst_1": errors.New("store down")}}
	projector := EntitlementProjector{Grants: granter}

	event := fulfillableEvent(t, events.OrderFulfillablePayload{
		OrderID: "ord_1",
		BuyerID: "buyer_1",
		Status:  "approved",
		Items: []events.OrderFulfillableLineItem{
			{ListingID: "lst_1"},
			{ListingID: "lst_2"},
		},
	})
	if err := projector.Handle(context.Background(), event); err == nil {
		t.Fatal("expected error to surface")
	}
	if len(granter.grants) != 1 || granter.grants[0] != "buyer_1/lst_2/ord_1" {
		t.Fatalf("remaining items must still be granted: %v", granter.grants)
	}
}
