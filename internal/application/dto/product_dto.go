package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	Unit          string          `json:"unit"`
	StockQuantity int             `json:"stock_quantity"`
	MinimumStock  int             `json:"minimum_stock"`
}

// UpdateProductRequest entrada para actualizar un producto (campos nil no se modifican).
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Category      *string          `json:"category"`
	Price         *decimal.Decimal `json:"price"`
	Unit          *string          `json:"unit"`
	StockQuantity *int             `json:"stock_quantity"`
	MinimumStock  *int             `json:"minimum_stock"`
}

// ProductResponse salida de un producto con su clasificación de stock.
type ProductResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	Unit          string          `json:"unit"`
	StockQuantity int             `json:"stock_quantity"`
	MinimumStock  int             `json:"minimum_stock"`
	StockStatus   string          `json:"stock_status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
