package entities

import "time"

// CartItem holds a buyer's intent to purchase one listing. The pair
// (BuyerID, ListingID) is unique; adding the same listing again replaces
// the quantity.
type CartItem struct {
	BuyerID   string
	ListingID string
	Quantity  int
	AddedAt   time.Time
}
