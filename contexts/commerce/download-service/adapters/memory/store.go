package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"pixmart/contexts/commerce/download-service/domain/entities"
	domainerrors "pixmart/contexts/commerce/download-service/domain/errors"
	"pixmart/contexts/commerce/download-service/ports"
)

type pairKey struct {
	userID    string
	listingID string
}

type Store struct {
	mu           sync.RWMutex
	entitlements map[pairKey]entities.Entitlement
	favorites    map[pairKey]entities.Favorite
}

func NewStore() *Store {
	return &Store{
		entitlements: make(map[pairKey]entities.Entitlement),
		favorites:    make(map[pairKey]entities.Favorite),
	}
}

func (s *Store) GrantEntitlement(ctx context.Context, entitlement entities.Entitlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{userID: entitlement.UserID, listingID: entitlement.ListingID}
	if _, ok := s.entitlements[key]; ok {
		return nil
	}
	s.entitlements[key] = entitlement
	return nil
}

func (s *Store) ListEntitlements(ctx context.Context, userID string) ([]entities.Entitlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Entitlement, 0)
	for key, entitlement := range s.entitlements {
		if key.userID != userID {
			continue
		}
		items = append(items, entitlement)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].GrantedAt.Equal(items[j].GrantedAt) {
			return items[i].ListingID < items[j].ListingID
		}
		return items[i].GrantedAt.After(items[j].GrantedAt)
	})
	return items, nil
}

func (s *Store) AddFavorite(ctx context.Context, favorite entities.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{userID: favorite.UserID, listingID: favorite.ListingID}
	if _, ok := s.favorites[key]; ok {
		return nil
	}
	s.favorites[key] = favorite
	return nil
}

func (s *Store) RemoveFavorite(ctx context.Context, userID string, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{userID: userID, listingID: listingID}
	if _, ok := s.favorites[key]; !ok {
		return domainerrors.ErrFavoriteNotFound
	}
	delete(s.favorites, key)
	return nil
}

func (s *Store) ListFavorites(ctx context.Context, userID string) ([]entities.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Favorite, 0)
	for key, favorite := range s.favorites {
		if key.userID != userID {
			continue
		}
		items = append(items, favorite)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].AddedAt.Equal(items[j].AddedAt) {
			return items[i].ListingID < items[j].ListingID
		}
		return items[i].AddedAt.After(items[j].AddedAt)
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.Repository = (*Store)(nil)
var _ ports.FavoritesRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
