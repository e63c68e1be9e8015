package entities

import (
	"strings"
	"time"

	domainerrors "pixmart/contexts/commerce/order-service/domain/errors"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusApproved  OrderStatus = "approved"
	StatusRejected  OrderStatus = "rejected"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusPaid      OrderStatus = "paid"
	StatusFailed    OrderStatus = "failed"
	StatusRefunded  OrderStatus = "refunded"
)

func IsValidStatus(status OrderStatus) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected, StatusShipped,
		StatusDelivered, StatusPaid, StatusFailed, StatusRefunded:
		return true
	default:
		return false
	}
}

// LineItem is a price snapshot taken at order time. Later listing edits do
// not change what the buyer owes.
type LineItem struct {
	ListingID string
	VendorID  string
	Title     string
	Quantity  int
	UnitPrice float64
}

type Order struct {
	OrderID   string
	BuyerID   string
	Items     []LineItem
	Total     float64
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewOrder(orderID string, buyerID string, items []LineItem, createdAt time.Time) (Order, error) {
	if strings.TrimSpace(orderID) == "" || strings.TrimSpace(buyerID) == "" {
		return Order{}, domainerrors.ErrInvalidRequest
	}
	if len(items) == 0 {
		return Order{}, domainerrors.ErrEmptyOrder
	}
	total := 0.0
	for _, item := range items {
		if strings.TrimSpace(item.ListingID) == "" || strings.TrimSpace(item.VendorID) == "" {
			return Order{}, domainerrors.ErrInvalidRequest
		}
		if item.Quantity < 1 || item.UnitPrice < 0 {
			return Order{}, domainerrors.ErrInvalidRequest
		}
		total += item.UnitPrice * float64(item.Quantity)
	}
	if total <= 0 {
		return Order{}, domainerrors.ErrEmptyOrder
	}
	return Order{
		OrderID:   orderID,
		BuyerID:   buyerID,
		Items:     items,
		Total:     total,
		Status:    StatusPending,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: createdAt.UTC(),
	}, nil
}

// SetStatus moves the order to any valid status. The lifecycle is flat on
// purpose: vendors correct mistakes by setting the right status again.
func (o *Order) SetStatus(status OrderStatus, now time.Time) error {
	if !IsValidStatus(status) {
		return domainerrors.ErrInvalidStatus
	}
	o.Status = status
	o.UpdatedAt = now.UTC()
	return nil
}

// IsFulfillable reports whether the order entitles the buyer to the full
// resolution assets of its line items.
func (o Order) IsFulfillable() bool {
	switch o.Status {
	case StatusApproved, StatusDelivered, StatusPaid:
		return true
	default:
		return false
	}
}

// ContainsVendor reports whether any line item belongs to the vendor.
func (o Order) ContainsVendor(vendorID string) bool {
	for _, item := range o.Items {
		if item.VendorID == vendorID {
			return true
		}
	}
	return false
}
