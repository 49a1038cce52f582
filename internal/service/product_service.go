package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"storefront/internal/cache"
	apperrors "storefront/internal/errors"
	"storefront/internal/logger"
	"storefront/internal/model"
	"storefront/internal/repository"
)

const productCacheTTL = 5 * time.Minute

// ProductService handles the product catalog. Mutations are admin-only,
// enforced at the route level.
type ProductService interface {
	Get(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context, filter repository.ProductFilter, page repository.PageRequest) ([]model.Product, int64, error)
	Categories(ctx context.Context) ([]string, error)
	IsNameAvailable(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	Update(ctx context.Context, id uint, updated *model.Product) (*model.Product, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	repo  repository.ProductRepository
	cache *cache.Client
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, cache *cache.Client) ProductService {
	return &productService{repo: repo, cache: cache}
}

func productCacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *productService) Get(ctx context.Context, id uint) (*model.Product, error) {
	var cached model.Product
	if s.cache.GetJSON(ctx, productCacheKey(id), &cached) {
		return &cached, nil
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}

	s.cache.SetJSON(ctx, productCacheKey(id), product, productCacheTTL)
	return product, nil
}

func (s *productService) List(ctx context.Context, filter repository.ProductFilter, page repository.PageRequest) ([]model.Product, int64, error) {
	return s.repo.List(ctx, filter, page)
}

func (s *productService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *productService) IsNameAvailable(ctx context.Context, name string) (bool, error) {
	taken, err := s.repo.ExistsByName(ctx, name)
	return !taken, err
}

func (s *productService) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	taken, err := s.repo.ExistsByName(ctx, product.Name)
	if err != nil {
		return nil, fmt.Errorf("check product name: %w", err)
	}
	if taken {
		return nil, apperrors.ErrProductNameTaken
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	log := logger.Get()
	log.Info().Str("name", product.Name).Uint("product_id", product.ID).Msg("product created")

	return product, nil
}

func (s *productService) Update(ctx context.Context, id uint, updated *model.Product) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}

	product.Name = updated.Name
	product.Description = updated.Description
	product.Price = updated.Price
	product.StockQuantity = updated.StockQuantity
	product.Category = updated.Category
	product.ImageURL = updated.ImageURL

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.cache.Delete(ctx, productCacheKey(id))
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrProductNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.cache.Delete(ctx, productCacheKey(id))
	return nil
}
