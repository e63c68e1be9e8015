package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"pixmart/contexts/community-experience/review-service/domain/entities"
	domainerrors "pixmart/contexts/community-experience/review-service/domain/errors"
	"pixmart/contexts/community-experience/review-service/ports"
)

type pairKey struct {
	buyerID   string
	listingID string
}

type Store struct {
	mu       sync.RWMutex
	reviews  map[string]entities.Review
	byPair   map[pairKey]string
	sequence uint64
}

func NewStore() *Store {
	return &Store{
		reviews: make(map[string]entities.Review),
		byPair:  make(map[pairKey]string),
	}
}

func (s *Store) CreateReview(ctx context.Context, review entities.Review) (entities.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{buyerID: review.BuyerID, listingID: review.ListingID}
	if _, ok := s.byPair[key]; ok {
		return entities.Review{}, domainerrors.ErrDuplicateReview
	}
	s.reviews[review.ReviewID] = review
	s.byPair[key] = review.ReviewID
	return review, nil
}

func (s *Store) GetReview(ctx context.Context, reviewID string) (entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	review, ok := s.reviews[reviewID]
	if !ok {
		return entities.Review{}, domainerrors.ErrReviewNotFound
	}
	return review, nil
}

func (s *Store) UpdateReview(ctx context.Context, review entities.Review) (entities.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[review.ReviewID]; !ok {
		return entities.Review{}, domainerrors.ErrReviewNotFound
	}
	s.reviews[review.ReviewID] = review
	return review, nil
}

func (s *Store) DeleteReview(ctx context.Context, reviewID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[reviewID]
	if !ok {
		return domainerrors.ErrReviewNotFound
	}
	delete(s.reviews, reviewID)
	delete(s.byPair, pairKey{buyerID: review.BuyerID, listingID: review.ListingID})
	return nil
}

func (s *Store) ListByListing(ctx context.Context, listingID string) ([]entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Review, 0)
	for _, review := range s.reviews {
		if review.ListingID != listingID {
			continue
		}
		items = append(items, review)
	}
	sortNewestFirst(items)
	return items, nil
}

func (s *Store) ListByBuyer(ctx context.Context, buyerID string) ([]entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Review, 0)
	for _, review := range s.reviews {
		if review.BuyerID != buyerID {
			continue
		}
		items = append(items, review)
	}
	sortNewestFirst(items)
	return items, nil
}

func (s *Store) NewID(ctx context.Context) (string, error) {
	return s.nextID("rev"), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) nextID(prefix string) string {
	n := atomic.AddUint64(&s.sequence, 1)
	return fmt.Sprintf("%s_%d", prefix, n)
}

func sortNewestFirst(items []entities.Review) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ReviewID > items[j].ReviewID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

var _ ports.Repository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
