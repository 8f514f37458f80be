package http

import (
	"bytes"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/catalog"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/export"
)

// StockHandler maneja entradas, salidas, ajustes y el listado del journal.
type StockHandler struct {
	uc *catalog.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *catalog.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Entry registra una entrada de stock (delta positivo).
func (h *StockHandler) Entry(c *fiber.Ctx) error {
	return h.move(c, false)
}

// Exit registra una salida de stock (delta negativo).
func (h *StockHandler) Exit(c *fiber.Ctx) error {
	return h.move(c, true)
}

// move valida cantidad > 0 y delega en el catálogo con el signo del endpoint.
func (h *StockHandler) move(c *fiber.Ctx, negate bool) error {
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	qty := in.Quantity.Decimal
	if !qty.GreaterThan(decimal.Zero) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser mayor que 0"})
	}
	delta := qty
	if negate {
		delta = qty.Neg()
	}
	out, err := h.uc.MoveStock(in.ProductID, delta, in.Reason)
	if err != nil {
		return movementError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "product": dto.FromProduct(out)})
}

// Adjust registra un ajuste con delta firmado. El motivo es obligatorio en
// este adaptador: los ajustes sin justificación no pasan.
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if strings.TrimSpace(in.Reason) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "reason es obligatorio para ajustes"})
	}
	out, err := h.uc.MoveStock(in.ProductID, in.Delta.Decimal, in.Reason)
	if err != nil {
		return movementError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "product": dto.FromProduct(out)})
}

// movementError mapea los errores del motor a códigos HTTP.
func movementError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	if errors.Is(err, domain.ErrInsufficientStock) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "movimiento inválido"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// Movements lista los últimos ?limit= movimientos (todos por defecto),
// más antiguo primero.
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		limit = 0
	}
	movs := h.uc.Movements(limit)
	return c.JSON(fiber.Map{
		"total":     len(movs),
		"movements": dto.FromMovements(movs),
	})
}

// MovementsCSV exporta el journal como texto delimitado.
func (h *StockHandler) MovementsCSV(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		limit = 0
	}
	var buf bytes.Buffer
	if err := export.MovementsCSV(&buf, h.uc.Movements(limit)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movimientos.csv"`)
	return c.Send(buf.Bytes())
}
