package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront/internal/model"
)

// OrderRepository defines order persistence operations. Every read loads the
// order's lines eagerly; callers never trigger hidden follow-up queries.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	FindByIDAndUserID(ctx context.Context, id, userID uint) (*model.Order, error)
	ListByUser(ctx context.Context, userID uint, status model.OrderStatus, page PageRequest) ([]model.Order, int64, error)
	List(ctx context.Context, status model.OrderStatus, page PageRequest) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) error
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create persists the order together with its lines in one insert graph.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Preload("Lines").Preload("Lines.Product").
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDAndUserID loads an order only when it belongs to userID. A miss and
// a foreign order are indistinguishable to the caller.
func (r *orderRepository) FindByIDAndUserID(ctx context.Context, id, userID uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Preload("Lines").Preload("Lines.Product").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uint, status model.OrderStatus, page PageRequest) ([]model.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{}).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return r.page(ctx, q, page)
}

func (r *orderRepository) List(ctx context.Context, status model.OrderStatus, page PageRequest) ([]model.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return r.page(ctx, q, page)
}

func (r *orderRepository) page(ctx context.Context, q *gorm.DB, page PageRequest) ([]model.Order, int64, error) {
	page = page.Normalize()

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []model.Order
	err := q.Preload("Lines").Preload("Lines.Product").
		Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}
