package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clasificación del nivel de stock de un producto.
const (
	StockOut = "out_of_stock"
	StockLow = "low_stock"
	StockIn  = "in_stock"
)

// Product es un producto de arcilla del catálogo (ladrillo, teja, maceta...).
type Product struct {
	ID            int64
	Name          string
	Description   string
	Category      string
	Price         decimal.Decimal
	Unit          string
	StockQuantity int
	MinimumStock  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StockStatus clasifica el stock: 0 agotado, hasta el mínimo bajo, resto disponible.
func (p *Product) StockStatus() string {
	switch {
	case p.StockQuantity <= 0:
		return StockOut
	case p.StockQuantity <= p.MinimumStock:
		return StockLow
	default:
		return StockIn
	}
}
