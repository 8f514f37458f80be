package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/catalog"
	"github.com/jhoicas/Almacen-api/internal/application/report"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC *catalog.UseCase
	ReportUC  *report.UseCase
	PDF       *pdf.MarotoReportGenerator
}

// Router registra las rutas de la API. Cada ruta mapea 1:1 a una operación
// del motor y a su taxonomía de errores.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/below-minimum", productHandler.BelowMinimum)
	products.Get("/search", productHandler.Search)

	// Movimientos de stock
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.CatalogUC)
	stock.Post("/entry", stockHandler.Entry)
	stock.Post("/exit", stockHandler.Exit)
	stock.Post("/adjust", stockHandler.Adjust)

	movements := api.Group("/movements")
	movements.Get("/", stockHandler.Movements)
	movements.Get("/export.csv", stockHandler.MovementsCSV)

	// Reportes
	reportHandler := NewReportHandler(deps.ReportUC, deps.PDF)
	api.Get("/dashboard", reportHandler.Dashboard)
	reports := api.Group("/reports")
	reports.Get("/period", reportHandler.Period)
	reports.Get("/period/export.csv", reportHandler.PeriodCSV)
	reports.Get("/period/export.pdf", reportHandler.PeriodPDF)
}
