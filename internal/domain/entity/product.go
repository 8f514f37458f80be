package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product representa un ítem del catálogo. El ID lo asigna el catálogo
// (máximo existente + 1) y nunca se reutiliza; CurrentStock nunca es
// negativo: toda mutación pasa por el catálogo, que rechaza cualquier
// movimiento que lo dejaría por debajo de cero.
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"` // etiqueta libre: un, kg, L...
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
}

// NormalizeName normaliza un nombre para el control de duplicados:
// trim, minúsculas y colapso de espacios internos. No pliega acentos ni
// puntuación: la identidad es conservadora para no fusionar nombres
// legítimamente distintos. La normalización de búsqueda (paquete search)
// es otra cosa y nunca se usa para identidad.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), " ")
}

// BelowMinimum indica si el producto está por debajo de su stock mínimo.
func (p Product) BelowMinimum() bool {
	return p.CurrentStock.LessThan(p.MinimumStock)
}

// NextProductID calcula el siguiente ID: máximo existente + 1, o 1 si el
// catálogo está vacío.
func NextProductID(products []Product) int64 {
	var max int64
	for _, p := range products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}
