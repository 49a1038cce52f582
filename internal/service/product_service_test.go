package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter repository.ProductFilter, page repository.PageRequest) ([]model.Product, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, id uint, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func TestProductService_Get_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewProductService(mockRepo, nil)
	product, err := svc.Get(context.Background(), 99)

	assert.Nil(t, product)
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Create(t *testing.T) {
	tests := []struct {
		name          string
		productName   string
		setupMock     func(*MockProductRepository)
		expectedError error
	}{
		{
			name:        "successful create",
			productName: "Keyboard",
			setupMock: func(m *MockProductRepository) {
				m.On("ExistsByName", mock.Anything, "Keyboard").Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)
			},
		},
		{
			name:        "duplicate name",
			productName: "Keyboard",
			setupMock: func(m *MockProductRepository) {
				m.On("ExistsByName", mock.Anything, "Keyboard").Return(true, nil)
			},
			expectedError: apperrors.ErrProductNameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			tt.setupMock(mockRepo)

			svc := NewProductService(mockRepo, nil)
			product, err := svc.Create(context.Background(), &model.Product{
				Name:          tt.productName,
				Price:         decimal.NewFromFloat(89.99),
				StockQuantity: 10,
			})

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, product)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, product)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProductService_Update(t *testing.T) {
	existing := &model.Product{
		ID:            1,
		Name:          "Keyboard",
		Price:         decimal.NewFromFloat(89.99),
		StockQuantity: 10,
		Category:      "Electronics",
	}

	mockRepo := new(MockProductRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)

	svc := NewProductService(mockRepo, nil)
	updated, err := svc.Update(context.Background(), 1, &model.Product{
		Name:          "Keyboard v2",
		Price:         decimal.NewFromFloat(99.99),
		StockQuantity: 20,
		Category:      "Electronics",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Keyboard v2", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.NewFromFloat(99.99)))
	assert.Equal(t, 20, updated.StockQuantity)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Delete_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewProductService(mockRepo, nil)
	err := svc.Delete(context.Background(), 5)

	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}
