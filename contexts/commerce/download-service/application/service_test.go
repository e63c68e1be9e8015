package application

import (
	"context"
	"errors"
	"testing"

	"pixmart/contexts/commerce/download-service/adapters/memory"
	domainerrors "pixmart/contexts/commerce/download-service/domain/errors"
	"pixmart/contexts/commerce/download-service/ports"
)

type fakeCatalog struct {
	assets map[string]ports.ListingAsset
}

func (f *fakeCatalog) GetListingAsset(_ context.Context, listingID string) (ports.ListingAsset, error) {
	asset, ok := f.assets[listingID]
	if !ok {
		return ports.ListingAsset{}, domainerrors.ErrListingNotFound
	}
	return asset, nil
}

type fakePurchases struct {
	orders map[string]string // buyerID+listingID -> orderID
}

func (f *fakePurchases) QualifyingPurchase(_ context.Context, buyerID string, listingID string) (string, bool, error) {
	orderID, ok := f.orders[buyerID+"/"+listingID]
	return orderID, ok, nil
}

func newTestService(catalog *fakeCatalog, purchases *fakePurchases) (Service, *memory.Store) {
	store := memory.NewStore()
	return Service{
		Repo:      store,
		Favorites: store,
		Listings:  catalog,
		Purchases: purchases,
		Clock:     store,
	}, store
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{assets: map[string]ports.ListingAsset{
		"lst_free": {
			ListingID: "lst_free", VendorID: "vendor_1", Title: "Free Sample",
			Price: 0, ImageURL: "https://assets.example.com/free-preview.jpg",
		},
		"lst_paid": {
			ListingID: "lst_paid", VendorID: "vendor_1", Title: "Mountain Sunrise",
			Price:       12.5,
			ImageURL:    "https://assets.example.com/paid-preview.jpg",
			OriginalURL: "https://assets.example.com/paid-original.png",
		},
		"lst_noorig": {
			ListingID: "lst_noorig", VendorID: "vendor_1", Title: "Preview Only",
			Price: 3, ImageURL: "https://assets.example.com/only-preview.jpg",
		},
	}}
}

func TestFreeListingDownloadsForAnyone(t *testing.T) {
	service, _ := newTestService(testCatalog(), &fakePurchases{orders: map[string]string{}})
	ctx := context.Background()

	ok, err := service.CanDownload(ctx, "buyer_1", "lst_free")
	if err != nil || !ok {
		t.Fatalf("free listing must be downloadable: ok=%v err=%v", ok, err)
	}

	asset, err := service.RequestDownload(ctx, "buyer_1", "lst_free")
	if err != nil {
		t.Fatalf("free download failed: %v", err)
	}
	if asset.URL != "https://assets.example.com/free-preview.jpg" {
		t.Fatalf("free download must serve the preview, got %s", asset.URL)
	}
	if asset.Filename != "free-sample.jpg" {
		t.Fatalf("unexpected filename %s", asset.Filename)
	}
}

func TestPaidListingRequiresQualifyingPurchase(t *testing.T) {
	purchases := &fakePurchases{orders: map[string]string{}}
	service, _ := newTestService(testCatalog(), purchases)
	ctx := context.Background()

	if _, err := service.RequestDownload(ctx, "buyer_1", "lst_paid"); !errors.Is(err, domainerrors.ErrPurchaseRequired) {
		t.Fatalf("expected purchase required, got %v", err)
	}

	purchases.orders["buyer_1/lst_paid"] = "ord_1"
	asset, err := service.RequestDownload(ctx, "buyer_1", "lst_paid")
	if err != nil {
		t.Fatalf("paid download failed after purchase: %v", err)
	}
	if asset.URL != "https://assets.example.com/paid-original.png" {
		t.Fatalf("paid download must serve the original, got %s", asset.URL)
	}
	if asset.Filename != "mountain-sunrise.png" {
		t.Fatalf("unexpected filename %s", asset.Filename)
	}

}

func TestAccessFollowsOrderState(t *testing.T) {
	purchases := &fakePurchases{orders: map[string]string{"buyer_1/lst_paid": "ord_1"}}
	service, store := newTestService(testCatalog(), purchases)
	ctx := context.Background()

	if _, err := service.RequestDownload(ctx, "buyer_1", "lst_paid"); err != nil {
		t.Fatalf("download failed: %v", err)
	}
	entitlements, err := store.ListEntitlements(ctx, "buyer_1")
	if err != nil || len(entitlements) != 1 {
		t.Fatalf("expected recorded entitlement, got %d err=%v", len(entitlements), err)
	}

	// Order refunded: the qualifying purchase is gone. The download record
	// stays, but it is history, not an access credential.
	delete(purchases.orders, "buyer_1/lst_paid")

	ok, err := service.CanDownload(ctx, "buyer_1", "lst_paid")
	if err != nil {
		t.Fatalf("can download failed: %v", err)
	}
	if ok {
		t.Fatal("access must be revoked when no qualifying order remains")
	}
	if _, err := service.RequestDownload(ctx, "buyer_1", "lst_paid"); !errors.Is(err, domainerrors.ErrPurchaseRequired) {
		t.Fatalf("expected purchase required after refund, got %v", err)
	}

	entitlements, err = store.ListEntitlements(ctx, "buyer_1")
	if err != nil || len(entitlements) != 1 {
		t.Fatalf("download history must survive the refund, got %d err=%v", len(entitlements), err)
	}
}

func TestPaidDownloadFallsBackToPreview(t *testing.T) {
	purchases := &fakePurchases{orders: map[string]string{"buyer_1/lst_noorig": "ord_2"}}
	service, _ := newTestService(testCatalog(), purchases)

	asset, err := service.RequestDownload(context.Background(), "buyer_1", "lst_noorig")
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	if asset.URL != "https://assets.example.com/only-preview.jpg" {
		t.Fatalf("expected preview fallback, got %s", asset.URL)
	}
}

func TestGrantIsIdempotent(t *testing.T) {
	service, store := newTestService(testCatalog(), &fakePurchases{orders: map[string]string{}})
	ctx := context.Background()

	if err := service.Grant(ctx, "buyer_1", "lst_paid", "ord_1"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if err := service.Grant(ctx, "buyer_1", "lst_paid", "ord_9"); err != nil {
		t.Fatalf("repeat grant must be a no-op: %v", err)
	}

	entitlements, err := store.ListEntitlements(ctx, "buyer_1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entitlements) != 1 {
		t.Fatalf("expected a single entitlement, got %d", len(entitlements))
	}
	if entitlements[0].OrderID != "ord_1" {
		t.Fatalf("first grant must win, got order %s", entitlements[0].OrderID)
	}
}

func TestGrantSnapshotsListingAtGrantTime(t *testing.T) {
	catalog := testCatalog()
	service, store := newTestService(catalog, &fakePurchases{orders: map[string]string{}})
	ctx := context.Background()

	if err := service.Grant(ctx, "buyer_1", "lst_paid", "ord_1"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}

	// The vendor rewrites the listing afterwards; the buyer's record keeps
	// what was bought.
	catalog.assets["lst_paid"] = ports.ListingAsset{
		ListingID: "lst_paid", VendorID: "vendor_1", Title: "Renamed", Price: 99,
	}

	entitlements, err := store.ListEntitlements(ctx, "buyer_1")
	if err != nil || len(entitlements) != 1 {
		t.Fatalf("expected one entitlement, got %d err=%v", len(entitlements), err)
	}
	snapshot := entitlements[0].Snapshot
	if snapshot.Title != "Mountain Sunrise" || snapshot.Price != 12.5 {
		t.Fatalf("snapshot must be frozen at grant time, got %+v", snapshot)
	}
	if snapshot.OriginalURL != "https://assets.example.com/paid-original.png" {
		t.Fatalf("snapshot missing original url: %+v", snapshot)
	}

	// A listing gone at grant time still records the download, with bare IDs.
	if err := service.Grant(ctx, "buyer_2", "lst_missing", "ord_2"); err != nil {
		t.Fatalf("grant without listing failed: %v", err)
	}
	entitlements, err = store.ListEntitlements(ctx, "buyer_2")
	if err != nil || len(entitlements) != 1 {
		t.Fatalf("expected one entitlement, got %d err=%v", len(entitlements), err)
	}
	if entitlements[0].Snapshot.Title != "" || entitlements[0].ListingID != "lst_missing" {
		t.Fatalf("unexpected bare grant record: %+v", entitlements[0])
	}
}

func TestFavoritesUniquePerListing(t *testing.T) {
	service, _ := newTestService(testCatalog(), &fakePurchases{orders: map[string]string{}})
	ctx := context.Background()

	if err := service.AddFavorite(ctx, "buyer_1", "lst_free"); err != nil {
		t.Fatalf("add favorite failed: %v", err)
	}
	if err := service.AddFavorite(ctx, "buyer_1", "lst_free"); err != nil {
		t.Fatalf("repeat favorite must be a no-op: %v", err)
	}

	favorites, err := service.ListFavorites(ctx, "buyer_1")
	if err != nil {
		t.Fatalf("list favorites failed: %v", err)
	}
	if len(favorites) != 1 {
		t.Fatalf("expected one favorite, got %d", len(favorites))
	}

	if err := service.RemoveFavorite(ctx, "buyer_1", "lst_free"); err != nil {
		t.Fatalf("remove favorite failed: %v", err)
	}
	if err := service.RemoveFavorite(ctx, "buyer_1", "lst_free"); !errors.Is(err, domainerrors.ErrFavoriteNotFound) {
		t.Fatalf("expected favorite not found, got %v", err)
	}
}

func TestFavoriteRequiresExistingListing(t *testing.T) {
	service, _ := newTestService(testCatalog(), &fakePurchases{orders: map[string]string{}})

	err := service.AddFavorite(context.Background(), "buyer_1", "lst_missing")
	if !errors.Is(err, domainerrors.ErrListingNotFound) {
		t.Fatalf("expected listing not found, got %v", err)
	}
}
