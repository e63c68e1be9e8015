package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"pixmart/contexts/community-experience/review-service/application"
	"pixmart/contexts/community-experience/review-service/domain/entities"
	httptransport "pixmart/contexts/community-experience/review-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateReviewHandler(ctx context.Context, listingID string, buyerID string, req httptransport.CreateReviewRequest) (httptransport.ReviewDTO, error) {
	review, err := h.Service.Create(ctx, buyerID, listingID, req.Rating, req.Comment)
	if err != nil {
		return httptransport.ReviewDTO{}, err
	}
	return toReviewDTO(review), nil
}

func (h Handler) UpdateReviewHandler(ctx context.Context, reviewID string, callerID string, callerRole string, req httptransport.UpdateReviewRequest) (httptransport.ReviewDTO, error) {
	review, err := h.Service.Update(ctx, reviewID, callerID, callerRole, req.Rating, req.Comment)
	if err != nil {
		return httptransport.ReviewDTO{}, err
	}
	return toReviewDTO(review), nil
}

func (h Handler) DeleteReviewHandler(ctx context.Context, reviewID string, callerID string, callerRole string) (httptransport.MessageResponse, error) {
	if err := h.Service.Delete(ctx, reviewID, callerID, callerRole); err != nil {
		return httptransport.MessageResponse{}, err
	}
	return httptransport.MessageResponse{Message: "Review deleted"}, nil
}

func (h Handler) ListListingReviewsHandler(ctx context.Context, listingID string) (httptransport.ListReviewsResponse, error) {
	summary, err := h.Service.ListForListing(ctx, listingID)
	if err != nil {
		return httptransport.ListReviewsResponse{}, err
	}
	resp := httptransport.ListReviewsResponse{
		Reviews:       make([]httptransport.ReviewDTO, 0, len(summary.Reviews)),
		AverageRating: summary.AverageRating,
	}
	for _, review := range summary.Reviews {
		resp.Reviews = append(resp.Reviews, toReviewDTO(review))
	}
	return resp, nil
}

func toReviewDTO(review entities.Review) httptransport.ReviewDTO {
	return httptransport.ReviewDTO{
		ID:        review.ReviewID,
		ProductID: review.ListingID,
		BuyerID:   review.BuyerID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: review.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
