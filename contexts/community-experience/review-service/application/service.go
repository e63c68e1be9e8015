package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"pixmart/contexts/community-experience/review-service/domain/entities"
	domainerrors "pixmart/contexts/community-experience/review-service/domain/errors"
	"pixmart/contexts/community-experience/review-service/ports"
)

type Service struct {
	Repo     ports.Repository
	Listings ports.ListingReader
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (s Service) Create(ctx context.Context, buyerID string, listingID string, rating int, comment string) (entities.Review, error) {
	if strings.TrimSpace(buyerID) == "" || strings.TrimSpace(listingID) == "" {
		return entities.Review{}, domainerrors.ErrInvalidRequest
	}
	exists, err := s.Listings.ListingExists(ctx, listingID)
	if err != nil {
		return entities.Review{}, err
	}
	if !exists {
		return entities.Review{}, domainerrors.ErrListingNotFound
	}
	reviewID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Review{}, err
	}
	review, err := entities.NewReview(reviewID, listingID, buyerID, rating, comment, s.now())
	if err != nil {
		return entities.Review{}, err
	}
	created, err := s.Repo.CreateReview(ctx, review)
	if err != nil {
		return entities.Review{}, err
	}
	resolveLogger(s.Logger).Info("review created",
		"event", "review_created",
		"module", "community-experience/review-service",
		"layer", "application",
		"review_id", created.ReviewID,
		"listing_id", created.ListingID,
		"rating", created.Rating,
	)
	return created, nil
}

func (s Service) Update(ctx context.Context, reviewID string, callerID string, callerRole string, rating int, comment string) (entities.Review, error) {
	review, err := s.authorize(ctx, reviewID, callerID, callerRole)
	if err != nil {
		return entities.Review{}, err
	}
	if err := review.Amend(rating, comment, s.now()); err != nil {
		return entities.Review{}, err
	}
	return s.Repo.UpdateReview(ctx, review)
}

func (s Service) Delete(ctx context.Context, reviewID string, callerID string, callerRole string) error {
	if _, err := s.authorize(ctx, reviewID, callerID, callerRole); err != nil {
		return err
	}
	return s.Repo.DeleteReview(ctx, reviewID)
}

// ListingSummary is the review roll-up shown on a listing page.
type ListingSummary struct {
	Reviews       []entities.Review
	AverageRating float64
}

func (s Service) ListForListing(ctx context.Context, listingID string) (ListingSummary, error) {
	if strings.TrimSpace(listingID) == "" {
		return ListingSummary{}, domainerrors.ErrInvalidRequest
	}
	reviews, err := s.Repo.ListByListing(ctx, listingID)
	if err != nil {
		return ListingSummary{}, err
	}
	summary := ListingSummary{Reviews: reviews}
	if len(reviews) > 0 {
		total := 0
		for _, review := range reviews {
			total += review.Rating
		}
		summary.AverageRating = float64(total) / float64(len(reviews))
	}
	return summary, nil
}

func (s Service) ListForBuyer(ctx context.Context, buyerID string) ([]entities.Review, error) {
	if strings.TrimSpace(buyerID) == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	return s.Repo.ListByBuyer(ctx, buyerID)
}

func (s Service) authorize(ctx context.Context, reviewID string, callerID string, callerRole string) (entities.Review, error) {
	if strings.TrimSpace(reviewID) == "" || strings.TrimSpace(callerID) == "" {
		return entities.Review{}, domainerrors.ErrInvalidRequest
	}
	review, err := s.Repo.GetReview(ctx, reviewID)
	if err != nil {
		return entities.Review{}, err
	}
	if review.BuyerID != callerID && callerRole != ports.RoleAdmin {
		return entities.Review{}, domainerrors.ErrForbidden
	}
	return review, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
