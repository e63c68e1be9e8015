package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"pixmart/contexts/catalog/listing-service/domain/entities"
	domainerrors "pixmart/contexts/catalog/listing-service/domain/errors"
	"pixmart/contexts/catalog/listing-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (s Service) Create(ctx context.Context, vendorID string, input ports.CreateListingInput) (entities.Listing, error) {
	if strings.TrimSpace(vendorID) == "" {
		return entities.Listing{}, domainerrors.ErrInvalidRequest
	}
	listingID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Listing{}, err
	}
	listing, err := entities.NewListing(
		listingID,
		vendorID,
		input.Title,
		input.Description,
		input.Price,
		input.Category,
		input.ImageURL,
		input.OriginalURL,
		s.now(),
	)
	if err != nil {
		return entities.Listing{}, err
	}
	created, err := s.Repo.CreateListing(ctx, listing)
	if err != nil {
		return entities.Listing{}, err
	}
	resolveLogger(s.Logger).Info("listing created",
		"event", "listing_created",
		"module", "catalog/listing-service",
		"layer", "application",
		"listing_id", created.ListingID,
		"vendor_id", created.VendorID,
	)
	return created, nil
}

func (s Service) Get(ctx context.Context, listingID string) (entities.Listing, error) {
	if strings.TrimSpace(listingID) == "" {
		return entities.Listing{}, domainerrors.ErrInvalidRequest
	}
	return s.Repo.GetListing(ctx, listingID)
}

func (s Service) Approve(ctx context.Context, listingID string, adminID string) (entities.Listing, error) {
	if strings.TrimSpace(listingID) == "" || strings.TrimSpace(adminID) == "" {
		return entities.Listing{}, domainerrors.ErrInvalidRequest
	}
	listing, err := s.Repo.GetListing(ctx, listingID)
	if err != nil {
		return entities.Listing{}, err
	}
	if err := listing.Approve(adminID, s.now()); err != nil {
		return entities.Listing{}, err
	}
	updated, err := s.Repo.UpdateListing(ctx, listing)
	if err != nil {
		return entities.Listing{}, err
	}
	resolveLogger(s.Logger).Info("listing approved",
		"event", "listing_approved",
		"module", "catalog/listing-service",
		"layer", "application",
		"listing_id", updated.ListingID,
		"approved_by", adminID,
	)
	return updated, nil
}

func (s Service) Reject(ctx context.Context, listingID string, adminID string, reason string) (entities.Listing, error) {
	if strings.TrimSpace(listingID) == "" || strings.TrimSpace(adminID) == "" {
		return entities.Listing{}, domainerrors.ErrInvalidRequest
	}
	listing, err := s.Repo.GetListing(ctx, listingID)
	if err != nil {
		return entities.Listing{}, err
	}
	if err := listing.Reject(adminID, reason, s.now()); err != nil {
		return entities.Listing{}, err
	}
	return s.Repo.UpdateListing(ctx, listing)
}

func (s Service) Update(ctx context.Context, listingID string, callerID string, callerRole string, input ports.UpdateListingInput) (entities.Listing, error) {
	listing, err := s.authorize(ctx, listingID, callerID, callerRole)
	if err != nil {
		return entities.Listing{}, err
	}
	if strings.TrimSpace(input.Title) != "" {
		listing.Title = strings.TrimSpace(input.Title)
	}
	if strings.TrimSpace(input.Description) != "" {
		listing.Description = strings.TrimSpace(input.Description)
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return entities.Listing{}, domainerrors.ErrInvalidRequest
		}
		listing.Price = *input.Price
	}
	if strings.TrimSpace(input.Category) != "" {
		listing.Category = strings.TrimSpace(input.Category)
	}
	if strings.TrimSpace(input.ImageURL) != "" {
		listing.ImageURL = strings.TrimSpace(input.ImageURL)
	}
	if strings.TrimSpace(input.OriginalURL) != "" {
		listing.OriginalURL = strings.TrimSpace(input.OriginalURL)
	}
	listing.UpdatedAt = s.now()
	return s.Repo.UpdateListing(ctx, listing)
}

func (s Service) SoftDelete(ctx context.Context, listingID string, callerID string, callerRole string) (entities.Listing, error) {
	listing, err := s.authorize(ctx, listingID, callerID, callerRole)
	if err != nil {
		return entities.Listing{}, err
	}
	if err := listing.SoftDelete(s.now()); err != nil {
		return entities.Listing{}, err
	}
	return s.Repo.UpdateListing(ctx, listing)
}

// ListPublic serves the catalog. Non-privileged callers always see active
// listings only, whatever status they ask for.
func (s Service) ListPublic(ctx context.Context, filter ports.ListingFilter, privileged bool) ([]entities.Listing, int, error) {
	if !privileged || strings.TrimSpace(filter.Status) == "" {
		filter.Status = string(entities.StatusActive)
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.Repo.ListListings(ctx, filter)
}

func (s Service) ListByVendor(ctx context.Context, vendorID string, status string) ([]entities.Listing, error) {
	if strings.TrimSpace(vendorID) == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	return s.Repo.ListByVendor(ctx, vendorID, status)
}

func (s Service) Categories(ctx context.Context) ([]string, error) {
	return s.Repo.Categories(ctx)
}

func (s Service) authorize(ctx context.Context, listingID string, callerID string, callerRole string) (entities.Listing, error) {
	if strings.TrimSpace(listingID) == "" || strings.TrimSpace(callerID) == "" {
		return entities.Listing{}, domainerrors.ErrInvalidRequest
	}
	listing, err := s.Repo.GetListing(ctx, listingID)
	if err != nil {
		return entities.Listing{}, err
	}
	if listing.VendorID != callerID && callerRole != ports.RoleAdmin {
		return entities.Listing{}, domainerrors.ErrForbidden
	}
	return listing, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
