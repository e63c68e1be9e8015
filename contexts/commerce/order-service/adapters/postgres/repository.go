package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pixmart/contexts/commerce/order-service/domain/entities"
	domainerrors "pixmart/contexts/commerce/order-service/domain/errors"
	"pixmart/contexts/commerce/order-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

func (r *Repository) CreateOrder(ctx context.Context, order entities.Order) (entities.Order, error) {
	row := orderModelFromEntity(order)
	items := orderItemModelsFromEntity(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return entities.Order{}, err
	}
	return order, nil
}

func (r *Repository) GetOrder(ctx context.Context, orderID string) (entities.Order, error) {
	var row orderModel
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Order{}, domainerrors.ErrOrderNotFound
		}
		return entities.Order{}, err
	}
	items, err := r.loadItems(ctx, []string{orderID})
	if err != nil {
		return entities.Order{}, err
	}
	return row.toEntity(items[orderID]), nil
}

func (r *Repository) UpdateOrder(ctx context.Context, order entities.Order) (entities.Order, error) {
	result := r.db.WithContext(ctx).
		Model(&orderModel{}).
		Where("order_id = ?", order.OrderID).
		Updates(map[string]any{
			"status":     string(order.Status),
			"updated_at": order.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return entities.Order{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Order{}, domainerrors.ErrOrderNotFound
	}
	return order, nil
}

func (r *Repository) ListByBuyer(ctx context.Context, buyerID string) ([]entities.Order, error) {
	var rows []orderModel
	err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, rows)
}

func (r *Repository) ListByVendor(ctx context.Context, vendorID string) ([]entities.Order, error) {
	var orderIDs []string
	err := r.db.WithContext(ctx).
		Model(&orderItemModel{}).
		Distinct("order_id").
		Where("vendor_id = ?", vendorID).
		Pluck("order_id", &orderIDs).
		Error
	if err != nil {
		return nil, err
	}
	if len(orderIDs) == 0 {
		return []entities.Order{}, nil
	}
	var rows []orderModel
	err = r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, rows)
}

func (r *Repository) ListFulfillableSince(ctx context.Context, since time.Time) ([]entities.Order, error) {
	statuses := []string{
		string(entities.StatusApproved),
		string(entities.StatusDelivered),
		string(entities.StatusPaid),
	}
	var rows []orderModel
	err := r.db.WithContext(ctx).
		Where("status IN ? AND updated_at >= ?", statuses, since.UTC()).
		Order("updated_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, rows)
}

func (r *Repository) hydrate(ctx context.Context, rows []orderModel) ([]entities.Order, error) {
	if len(rows) == 0 {
		return []entities.Order{}, nil
	}
	orderIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		orderIDs = append(orderIDs, row.OrderID)
	}
	itemsByOrder, err := r.loadItems(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	orders := make([]entities.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.toEntity(itemsByOrder[row.OrderID]))
	}
	return orders, nil
}

func (r *Repository) loadItems(ctx context.Context, orderIDs []string) (map[string][]orderItemModel, error) {
	var rows []orderItemModel
	err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("listing_id").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	byOrder := make(map[string][]orderItemModel, len(orderIDs))
	for _, row := range rows {
		byOrder[row.OrderID] = append(byOrder[row.OrderID], row)
	}
	return byOrder, nil
}

type orderModel struct {
	OrderID   string    `gorm:"column:order_id;primaryKey"`
	BuyerID   string    `gorm:"column:buyer_id"`
	Total     float64   `gorm:"column:total"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (orderModel) TableName() string {
	return "orders"
}

type orderItemModel struct {
	OrderID   string  `gorm:"column:order_id;primaryKey"`
	ListingID string  `gorm:"column:listing_id;primaryKey"`
	VendorID  string  `gorm:"column:vendor_id"`
	Title     string  `gorm:"column:title"`
	Quantity  int     `gorm:"column:quantity"`
	UnitPrice float64 `gorm:"column:unit_price"`
}

func (orderItemModel) TableName() string {
	return "order_items"
}

func orderModelFromEntity(order entities.Order) orderModel {
	return orderModel{
		OrderID:   order.OrderID,
		BuyerID:   order.BuyerID,
		Total:     order.Total,
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt.UTC(),
		UpdatedAt: order.UpdatedAt.UTC(),
	}
}

func orderItemModelsFromEntity(order entities.Order) []orderItemModel {
	rows := make([]orderItemModel, 0, len(order.Items))
	for _, item := range order.Items {
		rows = append(rows, orderItemModel{
			OrderID:   order.OrderID,
			ListingID: item.ListingID,
			VendorID:  item.VendorID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return rows
}

func (m orderModel) toEntity(itemRows []orderItemModel) entities.Order {
	items := make([]entities.LineItem, 0, len(itemRows))
	for _, row := range itemRows {
		items = append(items, entities.LineItem{
			ListingID: row.ListingID,
			VendorID:  row.VendorID,
			Title:     row.Title,
			Quantity:  row.Quantity,
			UnitPrice: row.UnitPrice,
		})
	}
	return entities.Order{
		OrderID:   m.OrderID,
		BuyerID:   m.BuyerID,
		Items:     items,
		Total:     m.Total,
		Status:    entities.OrderStatus(m.Status),
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// CartRepository stores cart rows keyed by the unique (buyer_id, listing_id)
// pair. Re-adding a listing updates the quantity in place.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) UpsertCartItem(ctx context.Context, item entities.CartItem) (entities.CartItem, error) {
	row := cartItemModel{
		BuyerID:   item.BuyerID,
		ListingID: item.ListingID,
		Quantity:  item.Quantity,
		AddedAt:   item.AddedAt.UTC(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "buyer_id"}, {Name: "listing_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
		}).
		Create(&row).
		Error
	if err != nil {
		return entities.CartItem{}, err
	}
	return item, nil
}

func (r *CartRepository) RemoveCartItem(ctx context.Context, buyerID string, listingID string) error {
	result := r.db.WithContext(ctx).
		Where("buyer_id = ? AND listing_id = ?", buyerID, listingID).
		Delete(&cartItemModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepository) ListCart(ctx context.Context, buyerID string) ([]entities.CartItem, error) {
	var rows []cartItemModel
	err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("added_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.CartItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.CartItem{
			BuyerID:   row.BuyerID,
			ListingID: row.ListingID,
			Quantity:  row.Quantity,
			AddedAt:   row.AddedAt.UTC(),
		})
	}
	return items, nil
}

func (r *CartRepository) ClearCart(ctx context.Context, buyerID string) error {
	return r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Delete(&cartItemModel{}).
		Error
}

type cartItemModel struct {
	BuyerID   string    `gorm:"column:buyer_id;primaryKey"`
	ListingID string    `gorm:"column:listing_id;primaryKey"`
	Quantity  int       `gorm:"column:quantity"`
	AddedAt   time.Time `gorm:"column:added_at"`
}

func (cartItemModel) TableName() string {
	return "cart_items"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.CartRepository = (*CartRepository)(nil)
