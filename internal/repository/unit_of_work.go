package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxRepos bundles the repositories scoped to one open transaction. Row locks
// taken through them are released when the transaction ends.
type TxRepos struct {
	Products ProductRepository
	Orders   OrderRepository
}

// UnitOfWork runs a function inside a single database transaction. The
// transaction commits when fn returns nil and rolls back on any error, so a
// failure partway through leaves no visible side effects.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, tx TxRepos) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a unit of work over the given database handle.
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, tx TxRepos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, TxRepos{
			Products: &productRepository{db: tx},
			Orders:   &orderRepository{db: tx},
		})
	})
}
