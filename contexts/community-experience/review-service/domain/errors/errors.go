package domainerrors

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrCommentTooLong  = errors.New("comment exceeds the allowed length")
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("listing already reviewed by this buyer")
	ErrForbidden       = errors.New("caller may not modify this review")
	ErrListingNotFound = errors.New("listing not found")
)
