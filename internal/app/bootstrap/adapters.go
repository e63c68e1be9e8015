package bootstrap

import (
	"context"
	"errors"
	"time"

	listingapp "pixmart/contexts/catalog/listing-service/application"
	listingentities "pixmart/contexts/catalog/listing-service/domain/entities"
	listingerrors "pixmart/contexts/catalog/listing-service/domain/errors"
	downloadworkers "pixmart/contexts/commerce/download-service/application/workers"
	downloaderrors "pixmart/contexts/commerce/download-service/domain/errors"
	downloadports "pixmart/contexts/commerce/download-service/ports"
	orderentities "pixmart/contexts/commerce/order-service/domain/entities"
	ordererrors "pixmart/contexts/commerce/order-service/domain/errors"
	orderports "pixmart/contexts/commerce/order-service/ports"
	reviewports "pixmart/contexts/community-experience/review-service/ports"
)

// The adapters below are the only place contexts see each other. Each maps
// the catalog or commerce surface onto the narrow port another context
// declares, translating errors into the consumer's domain.

type catalogForOrders struct {
	listings listingapp.Service
}

func (a catalogForOrders) GetListingForSale(ctx context.Context, listingID string) (orderports.ListingSnapshot, error) {
	listing, err := a.listings.Get(ctx, listingID)
	if err != nil {
		if errors.Is(err, listingerrors.ErrListingNotFound) {
			return orderports.ListingSnapshot{}, ordererrors.ErrListingUnavailable
		}
		return orderports.ListingSnapshot{}, err
	}
	return orderports.ListingSnapshot{
		ListingID: listing.ListingID,
		VendorID:  listing.VendorID,
		Title:     listing.Title,
		Price:     listing.Price,
		ImageURL:  listing.ImageURL,
		Active:    listing.Status == listingentities.StatusActive,
	}, nil
}

var _ orderports.ListingReader = catalogForOrders{}

type catalogForDownloads struct {
	listings listingapp.Service
}

func (a catalogForDownloads) GetListingAsset(ctx context.Context, listingID string) (downloadports.ListingAsset, error) {
	listing, err := a.listings.Get(ctx, listingID)
	if err != nil {
		if errors.Is(err, listingerrors.ErrListingNotFound) {
			return downloadports.ListingAsset{}, downloaderrors.ErrListingNotFound
		}
		return downloadports.ListingAsset{}, err
	}
	if listing.Status == listingentities.StatusDeleted {
		return downloadports.ListingAsset{}, downloaderrors.ErrListingNotFound
	}
	return downloadports.ListingAsset{
		ListingID:   listing.ListingID,
		VendorID:    listing.VendorID,
		Title:       listing.Title,
		Category:    listing.Category,
		Price:       listing.Price,
		ImageURL:    listing.ImageURL,
		OriginalURL: listing.OriginalURL,
	}, nil
}

var _ downloadports.ListingReader = catalogForDownloads{}

type catalogForReviews struct {
	listings listingapp.Service
}

func (a catalogForReviews) ListingExists(ctx context.Context, listingID string) (bool, error) {
	listing, err := a.listings.Get(ctx, listingID)
	if err != nil {
		if errors.Is(err, listingerrors.ErrListingNotFound) {
			return false, nil
		}
		return false, err
	}
	return listing.Status != listingentities.StatusDeleted, nil
}

var _ reviewports.ListingReader = catalogForReviews{}

type ordersForDownloads struct {
	orders orderports.Repository
}

func (a ordersForDownloads) QualifyingPurchase(ctx context.Context, buyerID string, listingID string) (string, bool, error) {
	orders, err := a.orders.ListByBuyer(ctx, buyerID)
	if err != nil {
		return "", false, err
	}
	for _, order := range orders {
		if !order.IsFulfillable() {
			continue
		}
		for _, item := range order.Items {
			if item.ListingID == listingID {
				return order.OrderID, true, nil
			}
		}
	}
	return "", false, nil
}

var _ downloadports.PurchaseReader = ordersForDownloads{}

type fulfillableOrderSource struct {
	orders orderports.Repository
}

func (a fulfillableOrderSource) ListFulfillableSince(ctx context.Context, since time.Time) ([]downloadworkers.FulfillableOrder, error) {
	orders, err := a.orders.ListFulfillableSince(ctx, since)
	if err != nil {
		return nil, err
	}
	out := make([]downloadworkers.FulfillableOrder, 0, len(orders))
	for _, order := range orders {
		out = append(out, toFulfillableOrder(order))
	}
	return out, nil
}

func toFulfillableOrder(order orderentities.Order) downloadworkers.FulfillableOrder {
	listingIDs := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		listingIDs = append(listingIDs, item.ListingID)
	}
	return downloadworkers.FulfillableOrder{
		OrderID:    order.OrderID,
		BuyerID:    order.BuyerID,
		ListingIDs: listingIDs,
	}
}

var _ downloadworkers.FulfillableOrderSource = fulfillableOrderSource{}
