package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"storefront/internal/cache"
	apperrors "storefront/internal/errors"
	"storefront/internal/logger"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// OrderLineInput is one requested position of a new order.
type OrderLineInput struct {
	ProductID uint
	Quantity  int
}

// OrderService orchestrates order placement, cancellation and status
// management. Stock reservation and restoration always share a transaction
// with the order mutation they belong to.
type OrderService interface {
	CreateOrder(ctx context.Context, userID uint, shippingAddress string, lines []OrderLineInput) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID, userID uint) (*model.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status model.OrderStatus) (*model.Order, error)
	GetOrder(ctx context.Context, orderID, userID uint) (*model.Order, error)
	GetOrderAdmin(ctx context.Context, orderID uint) (*model.Order, error)
	ListUserOrders(ctx context.Context, userID uint, status model.OrderStatus, page repository.PageRequest) ([]model.Order, int64, error)
	ListOrders(ctx context.Context, status model.OrderStatus, page repository.PageRequest) ([]model.Order, int64, error)
}

type orderService struct {
	uow       repository.UnitOfWork
	orderRepo repository.OrderRepository
	cache     *cache.Client
}

// NewOrderService creates a new order service. Reads go through orderRepo;
// every mutation runs inside the unit of work.
func NewOrderService(uow repository.UnitOfWork, orderRepo repository.OrderRepository, cache *cache.Client) OrderService {
	return &orderService{
		uow:       uow,
		orderRepo: orderRepo,
		cache:     cache,
	}
}

// CreateOrder places an order for userID. Within one transaction every
// requested product is locked, checked for stock, decremented and snapshotted
// into an order line; the order and its lines are inserted with the computed
// total. Any failure rolls the whole operation back, so a partial
// reservation is never observable.
func (s *orderService) CreateOrder(ctx context.Context, userID uint, shippingAddress string, lines []OrderLineInput) (*model.Order, error) {
	if len(lines) == 0 {
		return nil, apperrors.ErrEmptyOrder
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, apperrors.ErrInvalidQuantity
		}
	}

	order := &model.Order{
		UserID:          userID,
		Status:          model.OrderStatusPending,
		ShippingAddress: shippingAddress,
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.TxRepos) error {
		for _, line := range lines {
			product, err := tx.Products.FindByIDForUpdate(ctx, line.ProductID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return apperrors.ErrProductNotFound
				}
				return fmt.Errorf("lock product %d: %w", line.ProductID, err)
			}

			if product.StockQuantity < line.Quantity {
				return &apperrors.InsufficientStockError{ProductName: product.Name}
			}

			if err := tx.Products.AdjustStock(ctx, product.ID, -line.Quantity); err != nil {
				return fmt.Errorf("reserve stock for product %d: %w", product.ID, err)
			}

			order.Lines = append(order.Lines, model.OrderLine{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
			})
		}

		order.TotalAmount = order.ComputeTotal()
		if err := tx.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("persist order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateProducts(ctx, order.Lines)

	log := logger.Get()
	log.Info().
		Uint("order_id", order.ID).
		Uint("user_id", userID).
		Str("total", order.TotalAmount.String()).
		Msg("order created")

	return order, nil
}

// CancelOrder cancels a PENDING order owned by userID and restores the stock
// of every line, atomically with the status flip. An order belonging to
// someone else reads as not found.
func (s *orderService) CancelOrder(ctx context.Context, orderID, userID uint) (*model.Order, error) {
	var order *model.Order

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.TxRepos) error {
		var err error
		order, err = tx.Orders.FindByIDAndUserID(ctx, orderID, userID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrOrderNotFound
			}
			return fmt.Errorf("load order %d: %w", orderID, err)
		}

		if order.Status != model.OrderStatusPending {
			return &apperrors.InvalidStateTransitionError{From: string(order.Status)}
		}

		for _, line := range order.Lines {
			if err := tx.Products.AdjustStock(ctx, line.ProductID, line.Quantity); err != nil {
				return fmt.Errorf("restore stock for product %d: %w", line.ProductID, err)
			}
		}

		if err := tx.Orders.UpdateStatus(ctx, order.ID, model.OrderStatusCancelled); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		order.Status = model.OrderStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateProducts(ctx, order.Lines)

	log := logger.Get()
	log.Info().Uint("order_id", order.ID).Msg("order cancelled")

	return order, nil
}

// UpdateStatus overwrites the status of any order. This is an administrative
// override, not a domain transition: setting CANCELLED here does NOT restore
// stock. Cancellation with restock must go through CancelOrder.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uint, status model.OrderStatus) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, err
	}

	old := order.Status
	if err := s.orderRepo.UpdateStatus(ctx, order.ID, status); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	order.Status = status

	log := logger.Get()
	log.Info().
		Uint("order_id", order.ID).
		Str("from", string(old)).
		Str("to", string(status)).
		Msg("order status updated")

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID, userID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrderAdmin(ctx context.Context, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListUserOrders(ctx context.Context, userID uint, status model.OrderStatus, page repository.PageRequest) ([]model.Order, int64, error) {
	return s.orderRepo.ListByUser(ctx, userID, status, page)
}

func (s *orderService) ListOrders(ctx context.Context, status model.OrderStatus, page repository.PageRequest) ([]model.Order, int64, error) {
	return s.orderRepo.List(ctx, status, page)
}

func (s *orderService) invalidateProducts(ctx context.Context, lines []model.OrderLine) {
	keys := make([]string, 0, len(lines))
	for _, line := range lines {
		keys = append(keys, productCacheKey(line.ProductID))
	}
	s.cache.Delete(ctx, keys...)
}
