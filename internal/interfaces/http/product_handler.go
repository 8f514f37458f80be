package http

import (
	"errors"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/catalog"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/search"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// ProductHandler maneja las peticiones HTTP del catálogo de productos.
type ProductHandler struct {
	uc *catalog.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List devuelve el catálogo completo ordenado por nombre. El orden es
// presentación: el motor devuelve el conjunto sin orden definido.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products := h.uc.List()
	sort.Slice(products, func(i, j int) bool {
		return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
	})
	return c.JSON(dto.FromProducts(products))
}

// Create registra un producto nuevo con stock 0.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in.Name, in.Unit, in.MinimumStock.Decimal)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateName) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_NAME", Message: "ya existe un producto con ese nombre"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre, unidad y mínimo >= 0 son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromProduct(out))
}

// BelowMinimum lista los productos bajo su stock mínimo, ordenados por nombre.
func (h *ProductHandler) BelowMinimum(c *fiber.Ctx) error {
	products := h.uc.BelowMinimum()
	sort.Slice(products, func(i, j int) bool {
		return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
	})
	return c.JSON(dto.FromProducts(products))
}

// Search rankea el catálogo contra ?q= para selección interactiva. Con un
// único resultado el cliente puede auto-seleccionar; eso es decisión suya.
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	ranked := search.Rank(c.Query("q"), h.uc.List())
	return c.JSON(fiber.Map{
		"total":    len(ranked),
		"products": dto.FromProducts(ranked),
	})
}
