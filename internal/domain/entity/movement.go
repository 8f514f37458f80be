package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement es un registro inmutable del journal: un cambio de stock
// aceptado. Se crea exactamente una vez por mutación, nunca se modifica ni
// se borra, y sobrevive a recargas del catálogo. ProductName se captura en
// el momento del evento (no es una referencia viva al catálogo).
//
// Invariante: StockAfter = StockBefore + Delta, con StockAfter >= 0.
type Movement struct {
	ID          string          `json:"id"` // uuid
	Timestamp   time.Time       `json:"timestamp"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Delta       decimal.Decimal `json:"delta"` // positivo entrada, negativo salida
	StockBefore decimal.Decimal `json:"stock_before"`
	StockAfter  decimal.Decimal `json:"stock_after"`
	Reason      string          `json:"reason,omitempty"` // anotación libre; ajustes la exigen en la capa caller
}

// IsEntry indica si el movimiento es una entrada (delta positivo).
func (m Movement) IsEntry() bool {
	return m.Delta.GreaterThan(decimal.Zero)
}

// TypeLabel devuelve la etiqueta del tipo para exportes y reportes.
func (m Movement) TypeLabel() string {
	if m.IsEntry() {
		return "Entrada"
	}
	return "Salida"
}
