package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"pixmart/contexts/catalog/listing-service/domain/entities"
	domainerrors "pixmart/contexts/catalog/listing-service/domain/errors"
	"pixmart/contexts/catalog/listing-service/ports"
)

type Store struct {
	mu       sync.RWMutex
	listings map[string]entities.Listing
	sequence uint64
}

func NewStore() *Store {
	return &Store{listings: make(map[string]entities.Listing)}
}

func (s *Store) CreateListing(ctx context.Context, listing entities.Listing) (entities.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listings[listing.ListingID] = listing
	return cloneListing(listing), nil
}

func (s *Store) GetListing(ctx context.Context, listingID string) (entities.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listing, ok := s.listings[listingID]
	if !ok {
		return entities.Listing{}, domainerrors.ErrListingNotFound
	}
	return cloneListing(listing), nil
}

func (s *Store) UpdateListing(ctx context.Context, listing entities.Listing) (entities.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[listing.ListingID]; !ok {
		return entities.Listing{}, domainerrors.ErrListingNotFound
	}
	s.listings[listing.ListingID] = listing
	return cloneListing(listing), nil
}

func (s *Store) ListListings(ctx context.Context, filter ports.ListingFilter) ([]entities.Listing, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	items := make([]entities.Listing, 0)
	for _, listing := range s.listings {
		if filter.VendorID != "" && listing.VendorID != filter.VendorID {
			continue
		}
		if filter.Status != "" && string(listing.Status) != filter.Status {
			continue
		}
		if search != "" {
			candidate := strings.ToLower(listing.Title + " " + listing.Description)
			if !strings.Contains(candidate, search) {
				continue
			}
		}
		items = append(items, cloneListing(listing))
	}
	sortNewestFirst(items)

	total := len(items)
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	start := (page - 1) * limit
	if start >= total {
		return []entities.Listing{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return append([]entities.Listing(nil), items[start:end]...), total, nil
}

func (s *Store) ListByVendor(ctx context.Context, vendorID string, status string) ([]entities.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Listing, 0)
	for _, listing := range s.listings {
		if listing.VendorID != vendorID {
			continue
		}
		if status != "" && string(listing.Status) != status {
			continue
		}
		items = append(items, cloneListing(listing))
	}
	sortNewestFirst(items)
	return items, nil
}

func (s *Store) Categories(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, listing := range s.listings {
		if _, ok := seen[listing.Category]; ok {
			continue
		}
		seen[listing.Category] = struct{}{}
		categories = append(categories, listing.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *Store) NewID(ctx context.Context) (string, error) {
	return s.nextID("lst"), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) nextID(prefix string) string {
	n := atomic.AddUint64(&s.sequence, 1)
	return fmt.Sprintf("%s_%d", prefix, n)
}

func sortNewestFirst(items []entities.Listing) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ListingID > items[j].ListingID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func cloneListing(in entities.Listing) entities.Listing {
	out := in
	if in.ApprovedAt != nil {
		approvedAt := *in.ApprovedAt
		out.ApprovedAt = &approvedAt
	}
	return out
}

var _ ports.Repository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
