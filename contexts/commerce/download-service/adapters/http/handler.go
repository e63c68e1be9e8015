package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"pixmart/contexts/commerce/download-service/application"
	httptransport "pixmart/contexts/commerce/download-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) RequestDownloadHandler(ctx context.Context, userID string, listingID string) (httptransport.DownloadResponse, error) {
	asset, err := h.Service.RequestDownload(ctx, userID, listingID)
	if err != nil {
		return httptransport.DownloadResponse{}, err
	}
	return httptransport.DownloadResponse{
		DownloadURL: asset.URL,
		Filename:    asset.Filename,
	}, nil
}

func (h Handler) ListDownloadsHandler(ctx context.Context, userID string) (httptransport.ListEntitlementsResponse, error) {
	entitlements, err := h.Service.ListEntitlements(ctx, userID)
	if err != nil {
		return httptransport.ListEntitlementsResponse{}, err
	}
	resp := httptransport.ListEntitlementsResponse{
		Downloads: make([]httptransport.EntitlementDTO, 0, len(entitlements)),
	}
	for _, entitlement := range entitlements {
		resp.Downloads = append(resp.Downloads, httptransport.EntitlementDTO{
			ProductID:   entitlement.ListingID,
			OrderID:     entitlement.OrderID,
			Title:       entitlement.Snapshot.Title,
			Category:    entitlement.Snapshot.Category,
			Price:       entitlement.Snapshot.Price,
			ImageURL:    entitlement.Snapshot.ImageURL,
			OriginalURL: entitlement.Snapshot.OriginalURL,
			GrantedAt:   entitlement.GrantedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}

func (h Handler) AddFavoriteHandler(ctx context.Context, userID string, req httptransport.AddFavoriteRequest) (httptransport.ListFavoritesResponse, error) {
	if err := h.Service.AddFavorite(ctx, userID, req.ProductID); err != nil {
		return httptransport.ListFavoritesResponse{}, err
	}
	return h.ListFavoritesHandler(ctx, userID)
}

func (h Handler) RemoveFavoriteHandler(ctx context.Context, userID string, listingID string) (httptransport.ListFavoritesResponse, error) {
	if err := h.Service.RemoveFavorite(ctx, userID, listingID); err != nil {
		return httptransport.ListFavoritesResponse{}, err
	}
	return h.ListFavoritesHandler(ctx, userID)
}

func (h Handler) ListFavoritesHandler(ctx context.Context, userID string) (httptransport.ListFavoritesResponse, error) {
	favorites, err := h.Service.ListFavorites(ctx, userID)
	if err != nil {
		return httptransport.ListFavoritesResponse{}, err
	}
	resp := httptransport.ListFavoritesResponse{
		Favorites: make([]httptransport.FavoriteDTO, 0, len(favorites)),
	}
	for _, favorite := range favorites {
		resp.Favorites = append(resp.Favorites, httptransport.FavoriteDTO{
			ProductID: favorite.ListingID,
			AddedAt:   favorite.AddedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}
