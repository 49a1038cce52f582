package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. StockQuantity is mutated only by admin updates
// and by the order service's reservation/restock paths, always under a
// transaction holding the product row lock.
type Product struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	StockQuantity int             `json:"stock_quantity" gorm:"not null;default:0"`
	Category      string          `json:"category" gorm:"size:100;index"`
	ImageURL      string          `json:"image_url" gorm:"size:500"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
