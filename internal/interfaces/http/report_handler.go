package http

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/report"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/export"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
)

// ReportHandler maneja el dashboard y los reportes de período.
type ReportHandler struct {
	uc  *report.UseCase
	pdf *pdf.MarotoReportGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase, pdfGen *pdf.MarotoReportGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdfGen}
}

// Dashboard devuelve las métricas operativas.
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	return c.JSON(h.uc.Dashboard())
}

// Period devuelve el reporte agregado de ?from= a ?to= (YYYY-MM-DD).
func (h *ReportHandler) Period(c *fiber.Ctx) error {
	out, err := h.period(c)
	if err != nil {
		return invalidPeriod(c, err)
	}
	return c.JSON(out)
}

// PeriodCSV exporta el reporte de período como texto delimitado.
func (h *ReportHandler) PeriodCSV(c *fiber.Ctx) error {
	out, err := h.period(c)
	if err != nil {
		return invalidPeriod(c, err)
	}
	var buf bytes.Buffer
	if err := export.PeriodCSV(&buf, out); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="reporte_%s_%s.csv"`, out.From, out.To))
	return c.Send(buf.Bytes())
}

// PeriodPDF exporta el reporte de período como PDF.
func (h *ReportHandler) PeriodPDF(c *fiber.Ctx) error {
	out, err := h.period(c)
	if err != nil {
		return invalidPeriod(c, err)
	}
	raw, err := h.pdf.GeneratePeriodPDF(out)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="reporte_%s_%s.pdf"`, out.From, out.To))
	return c.Send(raw)
}

func (h *ReportHandler) period(c *fiber.Ctx) (dto.PeriodReportDTO, error) {
	return h.uc.Period(c.Query("from"), c.Query("to"))
}

func invalidPeriod(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidPeriod) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: "from/to deben ser YYYY-MM-DD con to >= from"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
