package dto

import "github.com/shopspring/decimal"

// PeriodRow agregado de movimientos de un producto dentro del período.
// Entradas = suma de deltas positivos; Salidas = suma de |deltas negativos|;
// Saldo = suma neta; Volumen = suma de |deltas|.
type PeriodRow struct {
	Producto string          `json:"producto"`
	Entradas decimal.Decimal `json:"entradas"`
	Salidas  decimal.Decimal `json:"salidas"`
	Saldo    decimal.Decimal `json:"saldo"`
	Volumen  decimal.Decimal `json:"volumen"`
}

// PeriodReportDTO reporte de movimientos de un período de días completos.
// Rows ordenadas por nombre; TopVolumen las de mayor volumen, descendente.
type PeriodReportDTO struct {
	From       string      `json:"from"`
	To         string      `json:"to"`
	Rows       []PeriodRow `json:"rows"`
	TopVolumen []PeriodRow `json:"top_volumen"`
}

// CoverageRow producto rankeado por ratio de cobertura (stock/mínimo).
// Productos con mínimo <= 0 no entran al ranking: cobertura indefinida.
type CoverageRow struct {
	ProductID    int64           `json:"product_id"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	Coverage     decimal.Decimal `json:"coverage"`
}

// DashboardDTO resumen operativo del catálogo y del journal.
type DashboardDTO struct {
	TotalProducts   int                `json:"total_products"`
	BelowMinimum    int                `json:"below_minimum"`
	Alerts          int                `json:"alerts"` // stock <= 0, o mínimo > 0 con stock <= mínimo
	LowestCoverage  []CoverageRow      `json:"lowest_coverage"`  // hasta 5, ascendente
	RecentMovements []MovementResponse `json:"recent_movements"` // hasta 10, más reciente primero
}
