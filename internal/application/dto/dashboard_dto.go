package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/admin/dashboard-stats.
type DashboardStatsDTO struct {
	TotalUsers     int             `json:"totalUsers"`
	TotalCustomers int             `json:"totalCustomers"`
	TotalSuppliers int             `json:"totalSuppliers"`
	TotalProducts  int             `json:"totalProducts"`
	TotalOrders    int             `json:"totalOrders"`
	PendingOrders  int             `json:"pendingOrders"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
}

// ProductionRecommendationDTO fila de GET /api/admin/production-recommendations.
type ProductionRecommendationDTO struct {
	ProductID             int64           `json:"product_id"`
	ProductName           string          `json:"product_name"`
	StockQuantity         int             `json:"stock_quantity"`
	MinimumStock          int             `json:"minimum_stock"`
	AvgWeeklySales        decimal.Decimal `json:"avg_weekly_sales"`
	Priority              string          `json:"priority"` // Urgent | Medium | Low
	RecommendedProduction int             `json:"recommended_production"`
}
