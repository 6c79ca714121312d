package inventory

import "github.com/shopspring/decimal"

// Prioridades de producción.
const (
	PriorityUrgent = "Urgent"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// SalesWindowWeeks semanas de historial usadas para el promedio de ventas.
const SalesWindowWeeks = 4

// ProductionPriority clasifica la urgencia de reponer un producto bajo mínimo.
// Urgent: agotado o por debajo de la mitad del mínimo. Medium: bajo el mínimo. Low: justo en el mínimo.
func ProductionPriority(stock, minimum int) string {
	switch {
	case stock <= 0 || stock*2 < minimum:
		return PriorityUrgent
	case stock < minimum:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// PriorityRank orden de presentación: Urgent primero.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityUrgent:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// WeeklyAverage promedio semanal de unidades vendidas en la ventana.
func WeeklyAverage(unitsSold decimal.Decimal) decimal.Decimal {
	return unitsSold.Div(decimal.NewFromInt(SalesWindowWeeks)).Round(2)
}

// RecommendedProduction unidades a producir para volver al doble del mínimo
// más una semana de demanda: max(minimo*2 + ceil(promedio) - stock, 0).
func RecommendedProduction(stock, minimum int, avgWeekly decimal.Decimal) int {
	target := int64(minimum)*2 + avgWeekly.Ceil().IntPart()
	n := target - int64(stock)
	if n < 0 {
		return 0
	}
	return int(n)
}
