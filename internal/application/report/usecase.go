// Package report deriva vistas de solo lectura del catálogo y del journal:
// métricas de dashboard y agregados de movimientos por período.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

const (
	dashboardLowestCoverage = 5  // productos en el widget de cobertura
	dashboardRecentMoves    = 10 // movimientos recientes en el dashboard
	periodTopVolumen        = 5  // filas en el top por volumen

	layoutDate = "2006-01-02"
)

// UseCase consume los mismos puertos que el catálogo, en modo lectura.
type UseCase struct {
	store   repository.ProductStore
	journal repository.MovementJournal
	log     *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(store repository.ProductStore, journal repository.MovementJournal, log *logger.Logger) *UseCase {
	return &UseCase{store: store, journal: journal, log: log}
}

// Dashboard computa las métricas operativas sobre el estado vivo:
// totales, conteo bajo mínimo, alertas, las 5 coberturas más bajas en orden
// ascendente y los 10 movimientos más recientes (más reciente primero).
func (uc *UseCase) Dashboard() dto.DashboardDTO {
	products, err := uc.store.Load()
	if err != nil {
		uc.log.Warn().Err(err).Msg("dashboard: fallo al cargar productos")
		products = nil
	}

	out := dto.DashboardDTO{TotalProducts: len(products)}

	var coverage []dto.CoverageRow
	for _, p := range products {
		if p.BelowMinimum() {
			out.BelowMinimum++
		}
		if isAlert(p) {
			out.Alerts++
		}
		if p.MinimumStock.GreaterThan(decimal.Zero) {
			coverage = append(coverage, dto.CoverageRow{
				ProductID:    p.ID,
				Name:         p.Name,
				CurrentStock: p.CurrentStock,
				MinimumStock: p.MinimumStock,
				Coverage:     p.CurrentStock.Div(p.MinimumStock),
			})
		}
	}
	sort.SliceStable(coverage, func(i, j int) bool {
		return coverage[i].Coverage.LessThan(coverage[j].Coverage)
	})
	if len(coverage) > dashboardLowestCoverage {
		coverage = coverage[:dashboardLowestCoverage]
	}
	out.LowestCoverage = coverage

	movs, err := uc.journal.Read(dashboardRecentMoves)
	if err != nil {
		uc.log.Warn().Err(err).Msg("dashboard: fallo al leer journal")
		movs = nil
	}
	// El journal entrega más antiguo primero; el dashboard muestra al revés.
	recent := make([]dto.MovementResponse, 0, len(movs))
	for i := len(movs) - 1; i >= 0; i-- {
		recent = append(recent, dto.FromMovement(movs[i]))
	}
	out.RecentMovements = recent

	return out
}

// isAlert: stock agotado o en el umbral. Distinto de BelowMinimum: un
// producto exactamente en su mínimo alerta pero no está "bajo mínimo".
func isAlert(p entity.Product) bool {
	if p.CurrentStock.LessThanOrEqual(decimal.Zero) {
		return true
	}
	return p.MinimumStock.GreaterThan(decimal.Zero) && p.CurrentStock.LessThanOrEqual(p.MinimumStock)
}

// Period agrega los movimientos del journal dentro de la ventana de días
// completos [from 00:00:00, to 23:59:59], ambas fechas en formato
// YYYY-MM-DD. Devuelve ErrInvalidPeriod si alguna fecha no parsea o si
// to < from. Las filas van ordenadas por nombre y TopVolumen por volumen
// descendente.
func (uc *UseCase) Period(from, to string) (dto.PeriodReportDTO, error) {
	fromDay, err := time.ParseInLocation(layoutDate, strings.TrimSpace(from), time.Local)
	if err != nil {
		return dto.PeriodReportDTO{}, domain.ErrInvalidPeriod
	}
	toDay, err := time.ParseInLocation(layoutDate, strings.TrimSpace(to), time.Local)
	if err != nil {
		return dto.PeriodReportDTO{}, domain.ErrInvalidPeriod
	}
	if toDay.Before(fromDay) {
		return dto.PeriodReportDTO{}, domain.ErrInvalidPeriod
	}
	start := fromDay
	end := toDay.Add(24*time.Hour - time.Nanosecond)

	movs, err := uc.journal.Read(0)
	if err != nil {
		uc.log.Warn().Err(err).Msg("reporte: fallo al leer journal")
		movs = nil
	}

	buckets := make(map[string]*dto.PeriodRow)
	var order []string
	for _, m := range movs {
		if m.Timestamp.Before(start) || m.Timestamp.After(end) {
			continue
		}
		row, ok := buckets[m.ProductName]
		if !ok {
			row = &dto.PeriodRow{Producto: m.ProductName}
			buckets[m.ProductName] = row
			order = append(order, m.ProductName)
		}
		if m.Delta.GreaterThan(decimal.Zero) {
			row.Entradas = row.Entradas.Add(m.Delta)
		} else {
			row.Salidas = row.Salidas.Add(m.Delta.Abs())
		}
		row.Saldo = row.Saldo.Add(m.Delta)
		row.Volumen = row.Volumen.Add(m.Delta.Abs())
	}

	rows := make([]dto.PeriodRow, 0, len(order))
	for _, name := range order {
		rows = append(rows, *buckets[name])
	}
	sort.Slice(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].Producto) < strings.ToLower(rows[j].Producto)
	})

	top := make([]dto.PeriodRow, len(rows))
	copy(top, rows)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Volumen.GreaterThan(top[j].Volumen)
	})
	if len(top) > periodTopVolumen {
		top = top[:periodTopVolumen]
	}

	return dto.PeriodReportDTO{
		From:       fromDay.Format(layoutDate),
		To:         toDay.Format(layoutDate),
		Rows:       rows,
		TopVolumen: top,
	}, nil
}
