package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"pixmart/contexts/commerce/download-service/domain/entities"
	domainerrors "pixmart/contexts/commerce/download-service/domain/errors"
	"pixmart/contexts/commerce/download-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
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

// GrantEntitlement relies on the unique (user_id, listing_id) index; a
// duplicate insert means the grant already happened and is not an error.
func (r *Repository) GrantEntitlement(ctx context.Context, entitlement entities.Entitlement) error {
	imageData, err := json.Marshal(snapshotData{
		Title:       entitlement.Snapshot.Title,
		Category:    entitlement.Snapshot.Category,
		Price:       entitlement.Snapshot.Price,
		ImageURL:    entitlement.Snapshot.ImageURL,
		OriginalURL: entitlement.Snapshot.OriginalURL,
	})
	if err != nil {
		return err
	}
	row := entitlementModel{
		UserID:    entitlement.UserID,
		ListingID: entitlement.ListingID,
		OrderID:   entitlement.OrderID,
		ImageData: imageData,
		GrantedAt: entitlement.GrantedAt.UTC(),
	}
	err = r.db.WithContext(ctx).Create(&row).Error
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}

func (r *Repository) ListEntitlements(ctx context.Context, userID string) ([]entities.Entitlement, error) {
	var rows []entitlementModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("granted_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Entitlement, 0, len(rows))
	for _, row := range rows {
		var data snapshotData
		if len(row.ImageData) > 0 {
			if err := json.Unmarshal(row.ImageData, &data); err != nil {
				return nil, err
			}
		}
		items = append(items, entities.Entitlement{
			UserID:    row.UserID,
			ListingID: row.ListingID,
			OrderID:   row.OrderID,
			Snapshot: entities.ListingSnapshot{
				Title:       data.Title,
				Category:    data.Category,
				Price:       data.Price,
				ImageURL:    data.ImageURL,
				OriginalURL: data.OriginalURL,
			},
			GrantedAt: row.GrantedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) AddFavorite(ctx context.Context, favorite entities.Favorite) error {
	row := favoriteModel{
		UserID:    favorite.UserID,
		ListingID: favorite.ListingID,
		AddedAt:   favorite.AddedAt.UTC(),
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}

func (r *Repository) RemoveFavorite(ctx context.Context, userID string, listingID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&favoriteModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrFavoriteNotFound
	}
	return nil
}

func (r *Repository) ListFavorites(ctx context.Context, userID string) ([]entities.Favorite, error) {
	var rows []favoriteModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Favorite, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.Favorite{
			UserID:    row.UserID,
			ListingID: row.ListingID,
			AddedAt:   row.AddedAt.UTC(),
		})
	}
	return items, nil
}

// snapshotData is the denormalized listing payload persisted with each
// entitlement, serialized into the image_data column.
type snapshotData struct {
	Title       string  `json:"title"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	OriginalURL string  `json:"original_url,omitempty"`
}

type entitlementModel struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	ListingID string    `gorm:"column:listing_id;primaryKey"`
	OrderID   string    `gorm:"column:order_id"`
	ImageData []byte    `gorm:"column:image_data"`
	GrantedAt time.Time `gorm:"column:granted_at"`
}

func (entitlementModel) TableName() string {
	return "user_downloads"
}

type favoriteModel struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	ListingID string    `gorm:"column:listing_id;primaryKey"`
	AddedAt   time.Time `gorm:"column:added_at"`
}

func (favoriteModel) TableName() string {
	return "user_favorites"
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.FavoritesRepository = (*Repository)(nil)
