package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pixmart/contexts/community-experience/review-service/domain/entities"
	domainerrors "pixmart/contexts/community-experience/review-service/domain/errors"
	"pixmart/contexts/community-experience/review-service/ports"

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

func (r *Repository) CreateReview(ctx context.Context, review entities.Review) (entities.Review, error) {
	row := reviewModelFromEntity(review)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.Review{}, domainerrors.ErrDuplicateReview
		}
		return entities.Review{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetReview(ctx context.Context, reviewID string) (entities.Review, error) {
	var row reviewModel
	err := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Review{}, domainerrors.ErrReviewNotFound
		}
		return entities.Review{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateReview(ctx context.Context, review entities.Review) (entities.Review, error) {
	result := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Where("review_id = ?", review.ReviewID).
		Updates(map[string]any{
			"rating":     review.Rating,
			"comment":    review.Comment,
			"updated_at": review.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return entities.Review{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Review{}, domainerrors.ErrReviewNotFound
	}
	return review, nil
}

func (r *Repository) DeleteReview(ctx context.Context, reviewID string) error {
	result := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Delete(&reviewModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrReviewNotFound
	}
	return nil
}

func (r *Repository) ListByListing(ctx context.Context, listingID string) ([]entities.Review, error) {
	var rows []reviewModel
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *Repository) ListByBuyer(ctx context.Context, buyerID string) ([]entities.Review, error) {
	var rows []reviewModel
	err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func toEntities(rows []reviewModel) []entities.Review {
	items := make([]entities.Review, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

type reviewModel struct {
	ReviewID  string    `gorm:"column:review_id;primaryKey"`
	ListingID string    `gorm:"column:listing_id;uniqueIndex:idx_reviews_buyer_listing"`
	BuyerID   string    `gorm:"column:buyer_id;uniqueIndex:idx_reviews_buyer_listing"`
	Rating    int       `gorm:"column:rating"`
	Comment   string    `gorm:"column:comment"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (reviewModel) TableName() string {
	return "reviews"
}

func reviewModelFromEntity(review entities.Review) reviewModel {
	return reviewModel{
		ReviewID:  review.ReviewID,
		ListingID: review.ListingID,
		BuyerID:   review.BuyerID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt.UTC(),
		UpdatedAt: review.UpdatedAt.UTC(),
	}
}

func (m reviewModel) toEntity() entities.Review {
	return entities.Review{
		ReviewID:  m.ReviewID,
		ListingID: m.ListingID,
		BuyerID:   m.BuyerID,
		Rating:    m.Rating,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
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
