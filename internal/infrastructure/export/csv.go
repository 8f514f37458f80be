// Package export produce proyecciones de solo lectura del journal y de los
// reportes de período en texto delimitado. No impone invariantes sobre el
// motor: consume los tipos de fila ya agregados.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

const timestampLayout = "2006-01-02 15:04:05"

// MovementsCSV escribe el journal con las columnas del formato de
// intercambio acordado con los adaptadores de reporte.
func MovementsCSV(w io.Writer, movs []entity.Movement) error {
	cw := csv.NewWriter(w)
	header := []string{"timestamp", "product_id", "product_name", "type", "reason", "quantity", "stock_before", "stock_after"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for _, m := range movs {
		record := []string{
			m.Timestamp.Format(timestampLayout),
			fmt.Sprintf("%d", m.ProductID),
			m.ProductName,
			m.TypeLabel(),
			m.Reason,
			m.Delta.Abs().String(),
			m.StockBefore.String(),
			m.StockAfter.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csv movimiento %s: %w", m.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// PeriodCSV escribe las filas agregadas de un reporte de período.
func PeriodCSV(w io.Writer, report dto.PeriodReportDTO) error {
	cw := csv.NewWriter(w)
	header := []string{"producto", "entradas", "salidas", "saldo", "volumen"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for _, r := range report.Rows {
		record := []string{
			r.Producto,
			r.Entradas.String(),
			r.Salidas.String(),
			r.Saldo.String(),
			r.Volumen.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csv fila %q: %w", r.Producto, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
