// Package analytics contiene los casos de uso del panel de administración:
// contadores globales y recomendaciones de producción.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/terraflow-api/internal/application/dto"
	"github.com/jhoicas/terraflow-api/internal/domain"
	"github.com/jhoicas/terraflow-api/internal/domain/inventory"
	"github.com/jhoicas/terraflow-api/internal/domain/repository"
)

// salesWindow ventana de ventas usada para el promedio semanal.
const salesWindow = inventory.SalesWindowWeeks * 7 * 24 * time.Hour

// DashboardUseCase genera los datos del dashboard de administración.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	timeout       time.Duration
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, timeout time.Duration) *DashboardUseCase {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, timeout: timeout, now: time.Now}
}

// GetStats contadores de usuarios, productos, pedidos e ingresos.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	qctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	st, err := uc.analyticsRepo.GetDashboardStats(qctx)
	if err != nil {
		return nil, infraError("dashboard stats", err)
	}
	return &dto.DashboardStatsDTO{
		TotalUsers:     st.TotalUsers,
		TotalCustomers: st.TotalCustomers,
		TotalSuppliers: st.TotalSuppliers,
		TotalProducts:  st.TotalProducts,
		TotalOrders:    st.TotalOrders,
		PendingOrders:  st.PendingOrders,
		TotalRevenue:   st.TotalRevenue,
	}, nil
}

// ProductionRecommendations lista los productos en o bajo su mínimo con la cantidad
// sugerida a producir. Orden: prioridad (Urgent primero), luego menor stock, luego nombre.
func (uc *DashboardUseCase) ProductionRecommendations(ctx context.Context) ([]dto.ProductionRecommendationDTO, error) {
	qctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	since := uc.now().Add(-salesWindow)
	demand, err := uc.analyticsRepo.GetProductsAtOrBelowMinimum(qctx, since)
	if err != nil {
		return nil, infraError("production recommendations", err)
	}

	out := make([]dto.ProductionRecommendationDTO, 0, len(demand))
	for _, d := range demand {
		avg := inventory.WeeklyAverage(d.UnitsSold)
		out = append(out, dto.ProductionRecommendationDTO{
			ProductID:             d.ProductID,
			ProductName:           d.ProductName,
			StockQuantity:         d.StockQuantity,
			MinimumStock:          d.MinimumStock,
			AvgWeeklySales:        avg,
			Priority:              inventory.ProductionPriority(d.StockQuantity, d.MinimumStock),
			RecommendedProduction: inventory.RecommendedProduction(d.StockQuantity, d.MinimumStock, avg),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := inventory.PriorityRank(out[i].Priority), inventory.PriorityRank(out[j].Priority)
		if ri != rj {
			return ri < rj
		}
		if out[i].StockQuantity != out[j].StockQuantity {
			return out[i].StockQuantity < out[j].StockQuantity
		}
		return out[i].ProductName < out[j].ProductName
	})
	return out, nil
}

func infraError(op string, err error) error {
	if errors.Is(err, domain.ErrStorageNotInitialized) {
		return domain.Infrastructure("Database tables not found. Please run database setup.", err)
	}
	return domain.Infrastructure("Database error: "+err.Error(), fmt.Errorf("%s: %w", op, err))
}
