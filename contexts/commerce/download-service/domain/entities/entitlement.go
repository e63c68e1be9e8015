package entities

import "time"

// ListingSnapshot freezes the listing's public fields at grant time, so the
// buyer's download record survives later edits or deletion of the listing.
type ListingSnapshot struct {
	Title       string
	Category    string
	Price       float64
	ImageURL    string
	OriginalURL string
}

// Entitlement records that a user downloaded the full resolution asset of a
// listing. The pair (UserID, ListingID) is unique; repeat grants are no-ops.
type Entitlement struct {
	UserID    string
	ListingID string
	OrderID   string
	Snapshot  ListingSnapshot
	GrantedAt time.Time
}

// Favorite marks a listing a user wants to find again. Same uniqueness rule
// as entitlements.
type Favorite struct {
	UserID    string
	ListingID string
	AddedAt   time.Time
}

// Asset is what a successful download request resolves to.
type Asset struct {
	ListingID string
	URL       string
	Filename  string
}
