package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"pixmart/contexts/commerce/order-service/domain/entities"
	domainerrors "pixmart/contexts/commerce/order-service/domain/errors"
	"pixmart/contexts/commerce/order-service/ports"
)

type cartKey struct {
	buyerID   string
	listingID string
}

type Store struct {
	mu       sync.RWMutex
	orders   map[string]entities.Order
	cart     map[cartKey]entities.CartItem
	sequence uint64
}

func NewStore() *Store {
	return &Store{
		orders: make(map[string]entities.Order),
		cart:   make(map[cartKey]entities.CartItem),
	}
}

func (s *Store) CreateOrder(ctx context.Context, order entities.Order) (entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[order.OrderID] = cloneOrder(order)
	return cloneOrder(order), nil
}

func (s *Store) GetOrder(ctx context.Context, orderID string) (entities.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok {
		return entities.Order{}, domainerrors.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (s *Store) UpdateOrder(ctx context.Context, order entities.Order) (entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[order.OrderID]; !ok {
		return entities.Order{}, domainerrors.ErrOrderNotFound
	}
	s.orders[order.OrderID] = cloneOrder(order)
	return cloneOrder(order), nil
}

func (s *Store) ListByBuyer(ctx context.Context, buyerID string) ([]entities.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Order, 0)
	for _, order := range s.orders {
		if order.BuyerID != buyerID {
			continue
		}
		items = append(items, cloneOrder(order))
	}
	sortNewestFirst(items)
	return items, nil
}

func (s *Store) ListByVendor(ctx context.Context, vendorID string) ([]entities.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Order, 0)
	for _, order := range s.orders {
		if !order.ContainsVendor(vendorID) {
			continue
		}
		items = append(items, cloneOrder(order))
	}
	sortNewestFirst(items)
	return items, nil
}

func (s *Store) ListFulfillableSince(ctx context.Context, since time.Time) ([]entities.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Order, 0)
	for _, order := range s.orders {
		if !order.IsFulfillable() || order.UpdatedAt.Before(since) {
			continue
		}
		items = append(items, cloneOrder(order))
	}
	sortNewestFirst(items)
	return items, nil
}

func (s *Store) UpsertCartItem(ctx context.Context, item entities.CartItem) (entities.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := cartKey{buyerID: item.BuyerID, listingID: item.ListingID}
	if existing, ok := s.cart[key]; ok {
		item.AddedAt = existing.AddedAt
	}
	s.cart[key] = item
	return item, nil
}

func (s *Store) RemoveCartItem(ctx context.Context, buyerID string, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := cartKey{buyerID: buyerID, listingID: listingID}
	if _, ok := s.cart[key]; !ok {
		return domainerrors.ErrCartItemNotFound
	}
	delete(s.cart, key)
	return nil
}

func (s *Store) ListCart(ctx context.Context, buyerID string) ([]entities.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.CartItem, 0)
	for key, item := range s.cart {
		if key.buyerID != buyerID {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].AddedAt.Equal(items[j].AddedAt) {
			return items[i].ListingID < items[j].ListingID
		}
		return items[i].AddedAt.Before(items[j].AddedAt)
	})
	return items, nil
}

func (s *Store) ClearCart(ctx context.Context, buyerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.cart {
		if key.buyerID == buyerID {
			delete(s.cart, key)
		}
	}
	return nil
}

func (s *Store) NewID(ctx context.Context) (string, error) {
	return s.nextID("ord"), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) nextID(prefix string) string {
	n := atomic.AddUint64(&s.sequence, 1)
	return fmt.Sprintf("%s_%d", prefix, n)
}

func sortNewestFirst(items []entities.Order) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].OrderID > items[j].OrderID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func cloneOrder(in entities.Order) entities.Order {
	out := in
	out.Items = append([]entities.LineItem(nil), in.Items...)
	return out
}

var _ ports.Repository = (*Store)(nil)
var _ ports.CartRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
