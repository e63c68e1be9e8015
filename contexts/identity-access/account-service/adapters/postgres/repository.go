package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pixmart/contexts/identity-access/account-service/domain/entities"
	domainerrors "pixmart/contexts/identity-access/account-service/domain/errors"
	"pixmart/contexts/identity-access/account-service/ports"

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

func (r *Repository) CreateAccount(ctx context.Context, account entities.Account) (entities.Account, error) {
	row := accountModelFromEntity(account)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.Account{}, domainerrors.ErrEmailTaken
		}
		return entities.Account{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetAccount(ctx context.Context, accountID string) (entities.Account, error) {
	var row accountModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Account{}, domainerrors.ErrAccountNotFound
		}
		return entities.Account{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (entities.Account, bool, error) {
	var row accountModel
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Account{}, false, nil
		}
		return entities.Account{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) CountAccounts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&accountModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Repository) UpdateAccount(ctx context.Context, account entities.Account) (entities.Account, error) {
	row := accountModelFromEntity(account)
	result := r.db.WithContext(ctx).
		Model(&accountModel{}).
		Where("account_id = ?", account.AccountID).
		Updates(map[string]any{
			"name":            row.Name,
			"email":           row.Email,
			"password":        row.Password,
			"status":          row.Status,
			"previous_status": row.PreviousStatus,
			"profile_pic_url": row.ProfilePicURL,
			"updated_at":      row.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return entities.Account{}, domainerrors.ErrEmailTaken
		}
		return entities.Account{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Account{}, domainerrors.ErrAccountNotFound
	}
	return account, nil
}

func (r *Repository) ListAccounts(ctx context.Context) ([]entities.Account, error) {
	var rows []accountModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *Repository) ListAccountsByRole(ctx context.Context, role entities.Role) ([]entities.Account, error) {
	var rows []accountModel
	if err := r.db.WithContext(ctx).
		Where("role = ?", string(role)).
		Order("created_at DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func toEntities(rows []accountModel) []entities.Account {
	items := make([]entities.Account, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

type accountModel struct {
	AccountID      string    `gorm:"column:account_id;primaryKey"`
	Name           string    `gorm:"column:name"`
	Email          string    `gorm:"column:email"`
	Password       string    `gorm:"column:password"`
	Role           string    `gorm:"column:role"`
	Status         string    `gorm:"column:status"`
	PreviousStatus *string   `gorm:"column:previous_status"`
	ProfilePicURL  string    `gorm:"column:profile_pic_url"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (accountModel) TableName() string {
	return "accounts"
}

func accountModelFromEntity(account entities.Account) accountModel {
	row := accountModel{
		AccountID:     account.AccountID,
		Name:          account.Name,
		Email:         account.Email,
		Password:      account.PasswordHash,
		Role:          string(account.Role),
		Status:        string(account.Status),
		ProfilePicURL: account.ProfilePicURL,
		CreatedAt:     account.CreatedAt.UTC(),
		UpdatedAt:     account.UpdatedAt.UTC(),
	}
	if account.PreviousStatus != nil {
		previous := string(*account.PreviousStatus)
		row.PreviousStatus = &previous
	}
	return row
}

func (m accountModel) toEntity() entities.Account {
	account := entities.Account{
		AccountID:     m.AccountID,
		Name:          m.Name,
		Email:         m.Email,
		PasswordHash:  m.Password,
		Role:          entities.Role(m.Role),
		Status:        entities.AccountStatus(m.Status),
		ProfilePicURL: m.ProfilePicURL,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
	if m.PreviousStatus != nil {
		previous := entities.AccountStatus(*m.PreviousStatus)
		account.PreviousStatus = &previous
	}
	return account
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
