package entities

import (
	"strings"
	"time"

	domainerrors "pixmart/contexts/community-experience/review-service/domain/errors"
)

const maxCommentLength = 1000

type Review struct {
	ReviewID  string
	ListingID string
	BuyerID   string
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewReview(reviewID string, listingID string, buyerID string, rating int, comment string, createdAt time.Time) (Review, error) {
	if strings.TrimSpace(reviewID) == "" ||
		strings.TrimSpace(listingID) == "" ||
		strings.TrimSpace(buyerID) == "" {
		return Review{}, domainerrors.ErrInvalidRequest
	}
	if err := validateRating(rating); err != nil {
		return Review{}, err
	}
	comment = strings.TrimSpace(comment)
	if len(comment) > maxCommentLength {
		return Review{}, domainerrors.ErrCommentTooLong
	}
	return Review{
		ReviewID:  reviewID,
		ListingID: listingID,
		BuyerID:   buyerID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: createdAt.UTC(),
	}, nil
}

func (r *Review) Amend(rating int, comment string, now time.Time) error {
	if err := validateRating(rating); err != nil {
		return err
	}
	comment = strings.TrimSpace(comment)
	if len(comment) > maxCommentLength {
		return domainerrors.ErrCommentTooLong
	}
	r.Rating = rating
	r.Comment = comment
	r.UpdatedAt = now.UTC()
	return nil
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return domainerrors.ErrInvalidRating
	}
	return nil
}
