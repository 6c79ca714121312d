package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/terraflow-api/internal/domain/entity"
	"github.com/jhoicas/terraflow-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas del dashboard sobre el store en memoria.
type AnalyticsRepo struct {
	s *Store
}

// NewAnalyticsRepository construye el adaptador.
func NewAnalyticsRepository(s *Store) *AnalyticsRepo {
	return &AnalyticsRepo{s: s}
}

func (r *AnalyticsRepo) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st := &repository.DashboardStats{
		TotalUsers:    len(r.s.users),
		TotalProducts: len(r.s.products),
		TotalOrders:   len(r.s.orders),
		TotalRevenue:  decimal.Zero,
	}
	for _, u := range r.s.users {
		switch u.Role {
		case entity.RoleCustomer:
			st.TotalCustomers++
		case entity.RoleSupplier:
			st.TotalSuppliers++
		}
	}
	for _, o := range r.s.orders {
		if o.Status == "pending" {
			st.PendingOrders++
		}
		if o.Status != "cancelled" {
			st.TotalRevenue = st.TotalRevenue.Add(o.TotalAmount)
		}
	}
	return st, nil
}

func (r *AnalyticsRepo) GetProductsAtOrBelowMinimum(ctx context.Context, since time.Time) ([]repository.ProductDemand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sold := make(map[int64]int64)
	for _, o := range r.s.orders {
		if o.Status == "cancelled" || o.CreatedAt.Before(since) {
			continue
		}
		for pid, qty := range o.Items {
			sold[pid] += int64(qty)
		}
	}
	var out []repository.ProductDemand
	for _, p := range r.s.products {
		if p.StockQuantity > p.MinimumStock {
			continue
		}
		out = append(out, repository.ProductDemand{
			ProductID:     p.ID,
			ProductName:   p.Name,
			StockQuantity: p.StockQuantity,
			MinimumStock:  p.MinimumStock,
			UnitsSold:     decimal.NewFromInt(sold[p.ID]),
		})
	}
	return out, nil
}
