package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StockMovementRequest body para POST /api/stock/entry y /api/stock/exit.
// Quantity siempre positiva; el endpoint decide el signo del delta.
type StockMovementRequest struct {
	ProductID int64    `json:"product_id"`
	Quantity  Quantity `json:"quantity"`
	Reason    string   `json:"reason,omitempty"`
}

// AdjustStockRequest body para POST /api/stock/adjust. Delta con signo.
// Reason es obligatorio en este adaptador: la política de la organización
// exige justificar los ajustes, aunque el motor no lo imponga.
type AdjustStockRequest struct {
	ProductID int64    `json:"product_id"`
	Delta     Quantity `json:"delta"`
	Reason    string   `json:"reason"`
}

// MovementResponse representación HTTP de un movimiento del journal.
type MovementResponse struct {
	ID          string          `json:"id"`
	Timestamp   time.Time       `json:"timestamp"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Type        string          `json:"type"` // Entrada | Salida
	Delta       decimal.Decimal `json:"delta"`
	StockBefore decimal.Decimal `json:"stock_before"`
	StockAfter  decimal.Decimal `json:"stock_after"`
	Reason      string          `json:"reason,omitempty"`
}

// FromMovement convierte la entidad a su respuesta HTTP.
func FromMovement(m entity.Movement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		Timestamp:   m.Timestamp,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Type:        m.TypeLabel(),
		Delta:       m.Delta,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Reason:      m.Reason,
	}
}

// FromMovements convierte un slice de entidades.
func FromMovements(movs []entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, FromMovement(m))
	}
	return out
}
