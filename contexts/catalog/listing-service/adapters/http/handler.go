package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"pixmart/contexts/catalog/listing-service/application"
	"pixmart/contexts/catalog/listing-service/domain/entities"
	"pixmart/contexts/catalog/listing-service/ports"
	httptransport "pixmart/contexts/catalog/listing-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateListingHandler(ctx context.Context, vendorID string, req httptransport.CreateListingRequest) (httptransport.ListingDTO, error) {
	listing, err := h.Service.Create(ctx, vendorID, ports.CreateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		OriginalURL: req.OriginalURL,
	})
	if err != nil {
		return httptransport.ListingDTO{}, err
	}
	return toListingDTO(listing), nil
}

func (h Handler) GetListingHandler(ctx context.Context, listingID string) (httptransport.ListingDTO, error) {
	listing, err := h.Service.Get(ctx, listingID)
	if err != nil {
		return httptransport.ListingDTO{}, err
	}
	return toListingDTO(listing), nil
}

func (h Handler) ApproveListingHandler(ctx context.Context, listingID string, adminID string) (httptransport.ListingDTO, error) {
	listing, err := h.Service.Approve(ctx, listingID, adminID)
	if err != nil {
		return httptransport.ListingDTO{}, err
	}
	return toListingDTO(listing), nil
}

func (h Handler) RejectListingHandler(ctx context.Context, listingID string, adminID string, req httptransport.RejectListingRequest) (httptransport.ListingDTO, error) {
	listing, err := h.Service.Reject(ctx, listingID, adminID, req.Reason)
	if err != nil {
		return httptransport.ListingDTO{}, err
	}
	return toListingDTO(listing), nil
}

func (h Handler) UpdateListingHandler(ctx context.Context, listingID string, callerID string, callerRole string, req httptransport.UpdateListingRequest) (httptransport.ListingDTO, error) {
	listing, err := h.Service.Update(ctx, listingID, callerID, callerRole, ports.UpdateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		OriginalURL: req.OriginalURL,
	})
	if err != nil {
		return httptransport.ListingDTO{}, err
	}
	return toListingDTO(listing), nil
}

func (h Handler) DeleteListingHandler(ctx context.Context, listingID string, callerID string, callerRole string) (httptransport.ListingDTO, error) {
	listing, err := h.Service.SoftDelete(ctx, listingID, callerID, callerRole)
	if err != nil {
		return httptransport.ListingDTO{}, err
	}
	return toListingDTO(listing), nil
}

func (h Handler) ListListingsHandler(ctx context.Context, req httptransport.ListListingsRequest, privileged bool) (httptransport.ListListingsResponse, error) {
	items, total, err := h.Service.ListPublic(ctx, ports.ListingFilter{
		VendorID: req.VendorID,
		Status:   req.Status,
		Search:   req.Search,
		Page:     req.Page,
		Limit:    req.Limit,
	}, privileged)
	if err != nil {
		return httptransport.ListListingsResponse{}, err
	}

	resp := httptransport.ListListingsResponse{
		Products: make([]httptransport.ListingDTO, 0, len(items)),
		Total:    total,
		Page:     req.Page,
	}
	if resp.Page <= 0 {
		resp.Page = 1
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	resp.TotalPages = total / limit
	if total%limit != 0 {
		resp.TotalPages++
	}
	if resp.TotalPages == 0 {
		resp.TotalPages = 1
	}
	for _, item := range items {
		resp.Products = append(resp.Products, toListingDTO(item))
	}
	return resp, nil
}

func (h Handler) ListVendorListingsHandler(ctx context.Context, vendorID string, status string) (httptransport.ListListingsResponse, error) {
	items, err := h.Service.ListByVendor(ctx, vendorID, status)
	if err != nil {
		return httptransport.ListListingsResponse{}, err
	}
	resp := httptransport.ListListingsResponse{
		Products:   make([]httptransport.ListingDTO, 0, len(items)),
		Total:      len(items),
		Page:       1,
		TotalPages: 1,
	}
	for _, item := range items {
		resp.Products = append(resp.Products, toListingDTO(item))
	}
	return resp, nil
}

func (h Handler) CategoriesHandler(ctx context.Context) (httptransport.CategoriesResponse, error) {
	categories, err := h.Service.Categories(ctx)
	if err != nil {
		return httptransport.CategoriesResponse{}, err
	}
	return httptransport.CategoriesResponse{Categories: categories}, nil
}

func toListingDTO(listing entities.Listing) httptransport.ListingDTO {
	dto := httptransport.ListingDTO{
		ID:              listing.ListingID,
		VendorID:        listing.VendorID,
		Title:           listing.Title,
		Description:     listing.Description,
		Price:           listing.Price,
		Category:        listing.Category,
		ImageURL:        listing.ImageURL,
		OriginalURL:     listing.OriginalURL,
		Status:          string(listing.Status),
		ApprovedBy:      listing.ApprovedBy,
		RejectionReason: listing.RejectionReason,
		CreatedAt:       listing.CreatedAt.UTC().Format(time.RFC3339),
	}
	if listing.ApprovedAt != nil {
		dto.ApprovedAt = listing.ApprovedAt.UTC().Format(time.RFC3339)
	}
	return dto
}
