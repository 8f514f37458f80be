package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name         string   `json:"name"`
	Unit         string   `json:"unit"`
	MinimumStock Quantity `json:"minimum_stock"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
}

// FromProduct convierte la entidad a su respuesta HTTP.
func FromProduct(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Unit:         p.Unit,
		CurrentStock: p.CurrentStock,
		MinimumStock: p.MinimumStock,
	}
}

// FromProducts convierte un slice de entidades.
func FromProducts(products []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}
