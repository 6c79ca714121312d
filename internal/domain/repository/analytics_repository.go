package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats contadores globales del panel de administración.
type DashboardStats struct {
	TotalUsers     int
	TotalCustomers int
	TotalSuppliers int
	TotalProducts  int
	TotalOrders    int
	PendingOrders  int
	TotalRevenue   decimal.Decimal // suma de total_amount de pedidos no cancelados
}

// ProductDemand producto en o bajo su stock mínimo con las unidades vendidas en la ventana.
type ProductDemand struct {
	ProductID     int64
	ProductName   string
	StockQuantity int
	MinimumStock  int
	UnitsSold     decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para el dashboard.
type AnalyticsRepository interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	// GetProductsAtOrBelowMinimum devuelve productos con stock <= mínimo y sus ventas desde since
	// (pedidos no cancelados).
	GetProductsAtOrBelowMinimum(ctx context.Context, since time.Time) ([]ProductDemand, error)
}
