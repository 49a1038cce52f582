package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/model"
)

// ProductFilter narrows a catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	Category    string
	NameSearch  string
	InStockOnly bool
}

// ProductRepository defines product persistence operations. FindByIDForUpdate
// and AdjustStock are only meaningful inside a transaction obtained from the
// unit of work; the row lock they rely on ends with the transaction.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Product, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context, filter ProductFilter, page PageRequest) ([]model.Product, int64, error)
	Categories(ctx context.Context) ([]string, error)
	AdjustStock(ctx context.Context, id uint, delta int) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDForUpdate fetches a product holding its row lock (SELECT ... FOR
// UPDATE) for the duration of the surrounding transaction.
func (r *productRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter, page PageRequest) ([]model.Product, int64, error) {
	page = page.Normalize()

	q := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.NameSearch != "" {
		q = q.Where("name LIKE ?", "%"+filter.NameSearch+"%")
	}
	if filter.InStockOnly {
		q = q.Where("stock_quantity > 0")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	err := q.Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&products).Error
	return products, total, err
}

func (r *productRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Distinct("category").Where("category <> ''").
		Order("category").Pluck("category", &categories).Error
	return categories, err
}

// AdjustStock adds delta (which may be negative) to the product's stock count.
// The update is conditional on the result staying non-negative; zero affected
// rows means the product is missing or cannot cover delta, and the error
// aborts the surrounding transaction.
func (r *productRepository) AdjustStock(ctx context.Context, id uint, delta int) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock_quantity + ? >= 0", id, delta).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
