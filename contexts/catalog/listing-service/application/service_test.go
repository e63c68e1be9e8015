package application

import (
	"context"
	"errors"
	"testing"

	"pixmart/contexts/catalog/listing-service/adapters/memory"
	"pixmart/contexts/catalog/listing-service/domain/entities"
	domainerrors "pixmart/contexts/catalog/listing-service/domain/errors"
	"pixmart/contexts/catalog/listing-service/ports"
)

func newTestService() Service {
	store := memory.NewStore()
	return Service{Repo: store, Clock: store, IDGen: store}
}

func createListing(t *testing.T, service Service, vendorID string, title string, price float64) entities.Listing {
	t.Helper()
	listing, err := service.Create(context.Background(), vendorID, ports.CreateListingInput{
		Title:       title,
		Description: "sample description",
		Price:       price,
		Category:    "nature",
		ImageURL:    "https://assets.example.com/preview.jpg",
		OriginalURL: "https://assets.example.com/original.jpg",
	})
	if err != nil {
		t.Fatalf("create listing failed: %v", err)
	}
	return listing
}

func TestCreateStartsPending(t *testing.T) {
	service := newTestService()
	listing := createListing(t, service, "vendor_1", "Mountain Sunrise", 10)
	if listing.Status != entities.StatusPending {
		t.Fatalf("expected pending, got %s", listing.Status)
	}
	if listing.ApprovedBy != "" || listing.ApprovedAt != nil {
		t.Fatal("new listing must have no approval stamp")
	}
}

func TestCreateRequiresDisplayFields(t *testing.T) {
	service := newTestService()
	_, err := service.Create(context.Background(), "vendor_1", ports.CreateListingInput{
		Title: "No Image",
	})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
	_, err = service.Create(context.Background(), "vendor_1", ports.CreateListingInput{
		Title:    "Negative",
		ImageURL: "https://assets.example.com/x.jpg",
		Price:    -1,
	})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for negative price, got %v", err)
	}
}

func TestApproveStampsAndClearsRejection(t *testing.T) {
	service := newTestService()
	listing := createListing(t, service, "vendor_1", "Mountain Sunrise", 10)

	rejected, err := service.Reject(context.Background(), listing.ListingID, "admin_1", "blurry")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != entities.StatusRejected || rejected.RejectionReason != "blurry" {
		t.Fatalf("unexpected rejection state %s/%q", rejected.Status, rejected.RejectionReason)
	}

	approved, err := service.Approve(context.Background(), listing.ListingID, "admin_2")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != entities.StatusActive {
		t.Fatalf("expected active, got %s", approved.Status)
	}
	if approved.ApprovedBy != "admin_2" || approved.ApprovedAt == nil {
		t.Fatal("approval stamp missing")
	}
	if approved.RejectionReason != "" {
		t.Fatalf("rejection reason must be cleared, got %q", approved.RejectionReason)
	}

	// Re-approval is allowed and simply re-stamps.
	again, err := service.Approve(context.Background(), listing.ListingID, "admin_3")
	if err != nil {
		t.Fatalf("re-approve failed: %v", err)
	}
	if again.ApprovedBy != "admin_3" {
		t.Fatalf("expected re-stamp by admin_3, got %s", again.ApprovedBy)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	service := newTestService()
	listing := createListing(t, service, "vendor_1", "Mountain Sunrise", 10)
	_, err := service.Reject(context.Background(), listing.ListingID, "admin_1", "  ")
	if !errors.Is(err, domainerrors.ErrReasonRequired) {
		t.Fatalf("expected reason required, got %v", err)
	}
}

func TestOwnershipGuardsUpdateAndDelete(t *testing.T) {
	service := newTestService()
	listing := createListing(t, service, "vendor_1", "Mountain Sunrise", 10)

	_, err := service.SoftDelete(context.Background(), listing.ListingID, "vendor_2", "vendor")
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for stranger, got %v", err)
	}

	if _, err := service.Update(context.Background(), listing.ListingID, "admin_1", ports.RoleAdmin, ports.UpdateListingInput{Title: "Renamed"}); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}

	deleted, err := service.SoftDelete(context.Background(), listing.ListingID, "vendor_1", "vendor")
	if err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if deleted.Status != entities.StatusDeleted {
		t.Fatalf("expected deleted status, got %s", deleted.Status)
	}

	// Deleted is terminal.
	_, err = service.Approve(context.Background(), listing.ListingID, "admin_1")
	if !errors.Is(err, domainerrors.ErrListingDeleted) {
		t.Fatalf("expected deleted terminal error, got %v", err)
	}
}

func TestListPublicDefaultsToActive(t *testing.T) {
	service := newTestService()
	pending := createListing(t, service, "vendor_1", "Mountain Sunrise", 10)
	active := createListing(t, service, "vendor_1", "Desert Dunes", 5)
	if _, err := service.Approve(context.Background(), active.ListingID, "admin_1"); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	items, total, err := service.ListPublic(context.Background(), ports.ListingFilter{}, false)
	if err != nil {
		t.Fatalf("list public failed: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ListingID != active.ListingID {
		t.Fatalf("expected only the active listing, got %d items", len(items))
	}

	// A non-privileged caller cannot see other statuses even when asking.
	items, _, err = service.ListPublic(context.Background(), ports.ListingFilter{Status: "pending"}, false)
	if err != nil {
		t.Fatalf("list public failed: %v", err)
	}
	if len(items) != 1 || items[0].ListingID != active.ListingID {
		t.Fatal("status filter must be ignored for public callers")
	}

	// Privileged callers may pin a status.
	items, _, err = service.ListPublic(context.Background(), ports.ListingFilter{Status: "pending"}, true)
	if err != nil {
		t.Fatalf("privileged list failed: %v", err)
	}
	if len(items) != 1 || items[0].ListingID != pending.ListingID {
		t.Fatal("privileged status filter must be honored")
	}
}

func TestListPublicSearchMatchesTitleAndDescription(t *testing.T) {
	service := newTestService()
	first := createListing(t, service, "vendor_1", "Mountain Sunrise", 10)
	second := createListing(t, service, "vendor_1", "City Lights", 5)
	for _, id := range []string{first.ListingID, second.ListingID} {
		if _, err := service.Approve(context.Background(), id, "admin_1"); err != nil {
			t.Fatalf("approve failed: %v", err)
		}
	}

	items, _, err := service.ListPublic(context.Background(), ports.ListingFilter{Search: "mountain"}, false)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(items) != 1 || items[0].ListingID != first.ListingID {
		t.Fatalf("case-insensitive title search failed, got %d items", len(items))
	}

	items, _, err = service.ListPublic(context.Background(), ports.ListingFilter{Search: "SAMPLE"}, false)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("description search expected both listings, got %d", len(items))
	}
}
