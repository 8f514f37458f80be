// Package catalog implementa el caso de uso central del motor de stock: el
// catálogo de productos con su invariante de stock no negativo y el registro
// de cada mutación aceptada en el journal de movimientos.
package catalog

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// UseCase es el dueño de la identidad de productos, de la unicidad de
// nombres y de la invariante current_stock >= 0. Toda escritura es un ciclo
// completo load -> mutate -> save sobre el ProductStore; el mutex serializa
// las escrituras para cerrar la carrera de lost-update entre callers
// concurrentes del mismo proceso.
type UseCase struct {
	mu      sync.Mutex
	store   repository.ProductStore
	journal repository.MovementJournal
	log     *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(store repository.ProductStore, journal repository.MovementJournal, log *logger.Logger) *UseCase {
	return &UseCase{store: store, journal: journal, log: log}
}

// List devuelve el conjunto actual de productos. Si el store no se puede
// leer degrada a lista vacía (fail-soft) y lo deja en el log.
func (uc *UseCase) List() []entity.Product {
	return uc.loadSoft()
}

// Create valida, asigna el siguiente ID y persiste un producto nuevo con
// stock 0. La creación no es un movimiento: no escribe en el journal.
//
// Errores: ErrInvalidInput (nombre/unidad vacíos tras trim, mínimo negativo),
// ErrDuplicateName (colisión de nombre normalizado por identidad).
func (uc *UseCase) Create(name, unit string, minimumStock decimal.Decimal) (entity.Product, error) {
	name = strings.TrimSpace(name)
	unit = strings.TrimSpace(unit)
	if name == "" || unit == "" {
		return entity.Product{}, domain.ErrInvalidInput
	}
	if minimumStock.IsNegative() {
		return entity.Product{}, domain.ErrInvalidInput
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	products := uc.loadSoft()

	norm := entity.NormalizeName(name)
	for _, p := range products {
		if entity.NormalizeName(p.Name) == norm {
			return entity.Product{}, domain.ErrDuplicateName
		}
	}

	nuevo := entity.Product{
		ID:           entity.NextProductID(products),
		Name:         name,
		Unit:         unit,
		CurrentStock: decimal.Zero,
		MinimumStock: minimumStock,
	}
	products = append(products, nuevo)

	if err := uc.store.Save(products); err != nil {
		return entity.Product{}, fmt.Errorf("guardar productos: %w", err)
	}
	return nuevo, nil
}

// MoveStock aplica un delta con signo al stock del producto indicado.
// Positivo = entrada, negativo = salida. El delta cero se rechaza: un
// movimiento que no mueve nada no genera evento.
//
// Tras confirmar el guardado del catálogo, registra exactamente un
// Movement en el journal. El journal es best-effort: su fallo se registra
// en el log pero jamás revierte ni hace fallar la mutación ya confirmada.
//
// Errores: ErrNotFound, ErrInvalidInput (delta cero), ErrInsufficientStock.
func (uc *UseCase) MoveStock(productID int64, delta decimal.Decimal, reason string) (entity.Product, error) {
	if delta.IsZero() {
		return entity.Product{}, domain.ErrInvalidInput
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	products := uc.loadSoft()

	idx := -1
	for i := range products {
		if products[i].ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entity.Product{}, domain.ErrNotFound
	}

	before := products[idx].CurrentStock
	after := before.Add(delta)
	if after.IsNegative() {
		return entity.Product{}, domain.ErrInsufficientStock
	}

	products[idx].CurrentStock = after
	if err := uc.store.Save(products); err != nil {
		return entity.Product{}, fmt.Errorf("guardar productos: %w", err)
	}

	mov := entity.Movement{
		ID:          uuid.New().String(),
		Timestamp:   time.Now(),
		ProductID:   products[idx].ID,
		ProductName: products[idx].Name,
		Delta:       delta,
		StockBefore: before,
		StockAfter:  after,
		Reason:      strings.TrimSpace(reason),
	}
	if err := uc.journal.Append(mov); err != nil {
		// El journal no puede tumbar la operación de negocio que registra.
		uc.log.Warn().Err(err).
			Int64("product_id", productID).
			Str("delta", delta.String()).
			Msg("journal: fallo al registrar movimiento")
	}

	return products[idx], nil
}

// BelowMinimum devuelve los productos con stock actual por debajo de su
// mínimo, sin orden definido (el orden es asunto de presentación).
func (uc *UseCase) BelowMinimum() []entity.Product {
	products := uc.loadSoft()
	var out []entity.Product
	for _, p := range products {
		if p.BelowMinimum() {
			out = append(out, p)
		}
	}
	return out
}

// Movements devuelve los últimos limit movimientos del journal (todos con
// limit <= 0), más antiguo primero. Journal ilegible degrada a lista vacía.
func (uc *UseCase) Movements(limit int) []entity.Movement {
	movs, err := uc.journal.Read(limit)
	if err != nil {
		uc.log.Warn().Err(err).Msg("journal: fallo al leer movimientos")
		return nil
	}
	return movs
}

// loadSoft carga el conjunto de productos degradando a vacío cualquier
// fallo de lectura. La vista puede quedar vacía o desactualizada, pero el
// caller nunca recibe un error de lectura del store.
func (uc *UseCase) loadSoft() []entity.Product {
	products, err := uc.store.Load()
	if err != nil {
		uc.log.Warn().Err(err).Msg("store: fallo al cargar productos, usando conjunto vacío")
		return nil
	}
	return products
}
