package entities

import (
	"strings"
	"time"

	domainerrors "pixmart/contexts/catalog/listing-service/domain/errors"
)

type ListingStatus string

const (
	StatusPending  ListingStatus = "pending"
	StatusActive   ListingStatus = "active"
	StatusInactive ListingStatus = "inactive"
	StatusRejected ListingStatus = "rejected"
	StatusDeleted  ListingStatus = "deleted"
)

func IsValidStatus(status ListingStatus) bool {
	switch status {
	case StatusPending, StatusActive, StatusInactive, StatusRejected, StatusDeleted:
		return true
	default:
		return false
	}
}

type Listing struct {
	ListingID       string
	VendorID        string
	Title           string
	Description     string
	Price           float64
	Category        string
	ImageURL        string
	OriginalURL     string
	Status          ListingStatus
	ApprovedBy      string
	ApprovedAt      *time.Time
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewListing(
	listingID string,
	vendorID string,
	title string,
	description string,
	price float64,
	category string,
	imageURL string,
	originalURL string,
	createdAt time.Time,
) (Listing, error) {
	if strings.TrimSpace(listingID) == "" ||
		strings.TrimSpace(vendorID) == "" ||
		strings.TrimSpace(title) == "" ||
		strings.TrimSpace(imageURL) == "" {
		return Listing{}, domainerrors.ErrInvalidRequest
	}
	if price < 0 {
		return Listing{}, domainerrors.ErrInvalidRequest
	}
	if strings.TrimSpace(category) == "" {
		category = "general"
	}
	return Listing{
		ListingID:   listingID,
		VendorID:    vendorID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Price:       price,
		Category:    strings.TrimSpace(category),
		ImageURL:    strings.TrimSpace(imageURL),
		OriginalURL: strings.TrimSpace(originalURL),
		Status:      StatusPending,
		CreatedAt:   createdAt.UTC(),
		UpdatedAt:   createdAt.UTC(),
	}, nil
}

// IsFree reports whether the download gate should treat the listing as
// publicly downloadable.
func (l Listing) IsFree() bool {
	return l.Price <= 0
}

// Approve re-stamps on repeat approval; a deleted listing stays deleted.
func (l *Listing) Approve(adminID string, now time.Time) error {
	if l.Status == StatusDeleted {
		return domainerrors.ErrListingDeleted
	}
	approvedAt := now.UTC()
	l.Status = StatusActive
	l.ApprovedBy = adminID
	l.ApprovedAt = &approvedAt
	l.RejectionReason = ""
	l.UpdatedAt = now.UTC()
	return nil
}

func (l *Listing) Reject(adminID string, reason string, now time.Time) error {
	if l.Status == StatusDeleted {
		return domainerrors.ErrListingDeleted
	}
	if strings.TrimSpace(reason) == "" {
		return domainerrors.ErrReasonRequired
	}
	rejectedAt := now.UTC()
	l.Status = StatusRejected
	l.ApprovedBy = adminID
	l.ApprovedAt = &rejectedAt
	l.RejectionReason = strings.TrimSpace(reason)
	l.UpdatedAt = now.UTC()
	return nil
}

// SoftDelete is the only deletion pixmart knows; rows never disappear.
func (l *Listing) SoftDelete(now time.Time) error {
	if l.Status == StatusDeleted {
		return domainerrors.ErrListingDeleted
	}
	l.Status = StatusDeleted
	l.UpdatedAt = now.UTC()
	return nil
}
