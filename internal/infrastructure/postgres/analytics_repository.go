package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/terraflow-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard de administración.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetDashboardStats cuenta usuarios por rol, productos, pedidos y suma los ingresos
// de pedidos no cancelados.
func (r *AnalyticsRepo) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM users)                                          AS total_users,
	    (SELECT COUNT(*) FROM users WHERE role = 'customer')                  AS total_customers,
	    (SELECT COUNT(*) FROM users WHERE role = 'supplier')                  AS total_suppliers,
	    (SELECT COUNT(*) FROM products)                                       AS total_products,
	    (SELECT COUNT(*) FROM orders)                                         AS total_orders,
	    (SELECT COUNT(*) FROM orders WHERE status = 'pending')                AS pending_orders,
	    (SELECT COALESCE(SUM(total_amount), 0) FROM orders
	      WHERE status <> 'cancelled')                                        AS total_revenue`
	var st repository.DashboardStats
	err := r.q.QueryRow(ctx, query).Scan(
		&st.TotalUsers, &st.TotalCustomers, &st.TotalSuppliers, &st.TotalProducts,
		&st.TotalOrders, &st.PendingOrders, &st.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", translate(err))
	}
	return &st, nil
}

// GetProductsAtOrBelowMinimum productos con stock <= mínimo y unidades vendidas desde since.
func (r *AnalyticsRepo) GetProductsAtOrBelowMinimum(ctx context.Context, since time.Time) ([]repository.ProductDemand, error) {
	const query = `
	SELECT
	    p.id,
	    p.name,
	    p.stock_quantity,
	    p.minimum_stock,
	    COALESCE(SUM(oi.quantity) FILTER (WHERE o.id IS NOT NULL), 0)::NUMERIC AS units_sold
	FROM products p
	LEFT JOIN order_items oi ON oi.product_id = p.id
	LEFT JOIN orders o       ON o.id = oi.order_id
	                        AND o.status <> 'cancelled'
	                        AND o.created_at >= $1
	WHERE p.stock_quantity <= p.minimum_stock
	GROUP BY p.id, p.name, p.stock_quantity, p.minimum_stock
	ORDER BY p.stock_quantity ASC`

	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("products below minimum: %w", translate(err))
	}
	defer rows.Close()

	var out []repository.ProductDemand
	for rows.Next() {
		var d repository.ProductDemand
		if err := rows.Scan(&d.ProductID, &d.ProductName, &d.StockQuantity, &d.MinimumStock, &d.UnitsSold); err != nil {
			return nil, fmt.Errorf("scan product demand: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
