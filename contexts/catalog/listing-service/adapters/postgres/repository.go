package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"pixmart/contexts/catalog/listing-service/domain/entities"
	domainerrors "pixmart/contexts/catalog/listing-service/domain/errors"
	"pixmart/contexts/catalog/listing-service/ports"

	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) CreateListing(ctx context.Context, listing entities.Listing) (entities.Listing, error) {
	row := listingModelFromEntity(listing)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Listing{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetListing(ctx context.Context, listingID string) (entities.Listing, error) {
	var row listingModel
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Listing{}, domainerrors.ErrListingNotFound
		}
		return entities.Listing{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateListing(ctx context.Context, listing entities.Listing) (entities.Listing, error) {
	row := listingModelFromEntity(listing)
	result := r.db.WithContext(ctx).
		Model(&listingModel{}).
		Where("listing_id = ?", listing.ListingID).
		Updates(map[string]any{
			"title":            row.Title,
			"description":      row.Description,
			"price":            row.Price,
			"category":         row.Category,
			"image_url":        row.ImageURL,
			"original_url":     row.OriginalURL,
			"status":           row.Status,
			"approved_by":      row.ApprovedBy,
			"approved_at":      row.ApprovedAt,
			"rejection_reason": row.RejectionReason,
			"updated_at":       row.UpdatedAt,
		})
	if result.Error != nil {
		return entities.Listing{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Listing{}, domainerrors.ErrListingNotFound
	}
	return listing, nil
}

func (r *Repository) ListListings(ctx context.Context, filter ports.ListingFilter) ([]entities.Listing, int, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	tx := r.db.WithContext(ctx).Model(&listingModel{})
	if filter.VendorID != "" {
		tx = tx.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []listingModel
	if err := tx.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, 0, err
	}
	return toEntities(rows), int(total), nil
}

func (r *Repository) ListByVendor(ctx context.Context, vendorID string, status string) ([]entities.Listing, error) {
	tx := r.db.WithContext(ctx).Where("vendor_id = ?", vendorID)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	var rows []listingModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).
		Model(&listingModel{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).
		Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func toEntities(rows []listingModel) []entities.Listing {
	items := make([]entities.Listing, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

type listingModel struct {
	ListingID       string     `gorm:"column:listing_id;primaryKey"`
	VendorID        string     `gorm:"column:vendor_id"`
	Title           string     `gorm:"column:title"`
	Description     string     `gorm:"column:description"`
	Price           float64    `gorm:"column:price"`
	Category        string     `gorm:"column:category"`
	ImageURL        string     `gorm:"column:image_url"`
	OriginalURL     string     `gorm:"column:original_url"`
	Status          string     `gorm:"column:status"`
	ApprovedBy      string     `gorm:"column:approved_by"`
	ApprovedAt      *time.Time `gorm:"column:approved_at"`
	RejectionReason string     `gorm:"column:rejection_reason"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (listingModel) TableName() string {
	return "listings"
}

func listingModelFromEntity(listing entities.Listing) listingModel {
	row := listingModel{
		ListingID:       listing.ListingID,
		VendorID:        listing.VendorID,
		Title:           listing.Title,
		Description:     listing.Description,
		Price:           listing.Price,
		Category:        listing.Category,
		ImageURL:        listing.ImageURL,
		OriginalURL:     listing.OriginalURL,
		Status:          string(listing.Status),
		ApprovedBy:      listing.ApprovedBy,
		RejectionReason: listing.RejectionReason,
		CreatedAt:       listing.CreatedAt.UTC(),
		UpdatedAt:       listing.UpdatedAt.UTC(),
	}
	if listing.ApprovedAt != nil {
		approvedAt := listing.ApprovedAt.UTC()
		row.ApprovedAt = &approvedAt
	}
	return row
}

func (m listingModel) toEntity() entities.Listing {
	listing := entities.Listing{
		ListingID:       m.ListingID,
		VendorID:        m.VendorID,
		Title:           m.Title,
		Description:     m.Description,
		Price:           m.Price,
		Category:        m.Category,
		ImageURL:        m.ImageURL,
		OriginalURL:     m.OriginalURL,
		Status:          entities.ListingStatus(m.Status),
		ApprovedBy:      m.ApprovedBy,
		RejectionReason: m.RejectionReason,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
	if m.ApprovedAt != nil {
		approvedAt := m.ApprovedAt.UTC()
		listing.ApprovedAt = &approvedAt
	}
	return listing
}

var _ ports.Repository = (*Repository)(nil)
