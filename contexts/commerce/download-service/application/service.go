package application

import (
	"context"
	"log/slog"
	"path"
	"strings"
	"time"

	"pixmart/contexts/commerce/download-service/domain/entities"
	domainerrors "pixmart/contexts/commerce/download-service/domain/errors"
	"pixmart/contexts/commerce/download-service/ports"
)

type Service struct {
	Repo      ports.Repository
	Favorites ports.FavoritesRepository
	Listings  ports.ListingReader
	Purchases ports.PurchaseReader
	Clock     ports.Clock
	Logger    *slog.Logger
}

// CanDownload reports whether the user may fetch the full resolution asset.
// Free listings are open to everyone. For paid listings eligibility is
// derived from current order state on every call; the entitlement record is
// the buyer's download history, never an access credential.
func (s Service) CanDownload(ctx context.Context, userID string, listingID string) (bool, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(listingID) == "" {
		return false, domainerrors.ErrInvalidRequest
	}
	asset, err := s.Listings.GetListingAsset(ctx, listingID)
	if err != nil {
		return false, err
	}
	if asset.IsFree() {
		return true, nil
	}
	_, ok, err := s.Purchases.QualifyingPurchase(ctx, userID, listingID)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// RequestDownload gates and resolves the asset. Paid listings serve the
// original upload, falling back to the preview when the vendor never stored
// one; free listings serve the preview. A successful paid download also
// records the entitlement.
func (s Service) RequestDownload(ctx context.Context, userID string, listingID string) (entities.Asset, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(listingID) == "" {
		return entities.Asset{}, domainerrors.ErrInvalidRequest
	}
	asset, err := s.Listings.GetListingAsset(ctx, listingID)
	if err != nil {
		return entities.Asset{}, err
	}

	if asset.IsFree() {
		url := firstNonEmpty(asset.ImageURL, asset.OriginalURL)
		if url == "" {
			return entities.Asset{}, domainerrors.ErrAssetMissing
		}
		return entities.Asset{
			ListingID: asset.ListingID,
			URL:       url,
			Filename:  downloadFilename(asset.Title, url),
		}, nil
	}

	orderID, ok, err := s.Purchases.QualifyingPurchase(ctx, userID, listingID)
	if err != nil {
		return entities.Asset{}, err
	}
	if !ok {
		return entities.Asset{}, domainerrors.ErrPurchaseRequired
	}

	url := firstNonEmpty(asset.OriginalURL, asset.ImageURL)
	if url == "" {
		return entities.Asset{}, domainerrors.ErrAssetMissing
	}
	// Repeat downloads hit the repository's first-write-wins rule, so the
	// record is created at most once.
	if err := s.grantWithSnapshot(ctx, userID, orderID, asset); err != nil {
		resolveLogger(s.Logger).Warn("entitlement record failed on download",
			"event", "entitlement_grant_failed",
			"module", "commerce/download-service",
			"layer", "application",
			"user_id", userID,
			"listing_id", listingID,
			"error", err.Error(),
		)
	}
	return entities.Asset{
		ListingID: asset.ListingID,
		URL:       url,
		Filename:  downloadFilename(asset.Title, url),
	}, nil
}

// Grant is replay safe: repeat grants for the same (user, listing) pair are
// swallowed by the repository. The listing is snapshotted at grant time; if
// it can no longer be resolved the record still lands, with bare IDs.
func (s Service) Grant(ctx context.Context, userID string, listingID string, orderID string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(listingID) == "" {
		return domainerrors.ErrInvalidRequest
	}
	asset, err := s.Listings.GetListingAsset(ctx, listingID)
	if err != nil {
		resolveLogger(s.Logger).Warn("listing snapshot unavailable at grant time",
			"event", "entitlement_snapshot_missing",
			"module", "commerce/download-service",
			"layer", "application",
			"listing_id", listingID,
			"error", err.Error(),
		)
		asset = ports.ListingAsset{ListingID: listingID}
	}
	return s.grantWithSnapshot(ctx, userID, orderID, asset)
}

func (s Service) grantWithSnapshot(ctx context.Context, userID string, orderID string, asset ports.ListingAsset) error {
	err := s.Repo.GrantEntitlement(ctx, entities.Entitlement{
		UserID:    userID,
		ListingID: asset.ListingID,
		OrderID:   orderID,
		Snapshot: entities.ListingSnapshot{
			Title:       asset.Title,
			Category:    asset.Category,
			Price:       asset.Price,
			ImageURL:    asset.ImageURL,
			OriginalURL: asset.OriginalURL,
		},
		GrantedAt: s.now(),
	})
	if err != nil {
		return err
	}
	resolveLogger(s.Logger).Info("entitlement granted",
		"event", "entitlement_granted",
		"module", "commerce/download-service",
		"layer", "application",
		"user_id", userID,
		"listing_id", asset.ListingID,
		"order_id", orderID,
	)
	return nil
}

func (s Service) ListEntitlements(ctx context.Context, userID string) ([]entities.Entitlement, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	return s.Repo.ListEntitlements(ctx, userID)
}

func (s Service) AddFavorite(ctx context.Context, userID string, listingID string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(listingID) == "" {
		return domainerrors.ErrInvalidRequest
	}
	if _, err := s.Listings.GetListingAsset(ctx, listingID); err != nil {
		return err
	}
	return s.Favorites.AddFavorite(ctx, entities.Favorite{
		UserID:    userID,
		ListingID: listingID,
		AddedAt:   s.now(),
	})
}

func (s Service) RemoveFavorite(ctx context.Context, userID string, listingID string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(listingID) == "" {
		return domainerrors.ErrInvalidRequest
	}
	return s.Favorites.RemoveFavorite(ctx, userID, listingID)
}

func (s Service) ListFavorites(ctx context.Context, userID string) ([]entities.Favorite, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	return s.Favorites.ListFavorites(ctx, userID)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// downloadFilename turns the listing title into a safe attachment name,
// keeping the extension of the served URL.
func downloadFilename(title string, url string) string {
	name := strings.TrimSpace(strings.ToLower(title))
	var b strings.Builder
	lastDash := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "download"
	}
	ext := path.Ext(url)
	if ext == "" || len(ext) > 5 {
		ext = ".jpg"
	}
	return slug + ext
}
