package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/catalog"
	"github.com/jhoicas/Almacen-api/internal/application/report"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/jsonstore"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp levanta la API completa sobre adaptadores de archivo en un
// directorio temporal: la misma composición que cmd/api con driver json.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	dir := t.TempDir()
	log := logger.Nop()

	store := jsonstore.NewProductStore(
		filepath.Join(dir, "productos.json"),
		filepath.Join(dir, "backups"),
		log,
	)
	journal := jsonstore.NewMovementJournal(filepath.Join(dir, "movimientos.jsonl"), log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CatalogUC: catalog.NewUseCase(store, journal, log),
		ReportUC:  report.NewUseCase(store, journal, log),
		PDF:       pdf.NewMarotoReportGenerator(),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func createProduct(t *testing.T, app *fiber.App, name, unit, min string) int64 {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/products/",
		`{"name":"`+name+`","unit":"`+unit+`","minimum_stock":"`+min+`"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "el alta debe responder 201")

	var body map[string]any
	decode(t, resp, &body)
	return int64(body["id"].(float64))
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestProductos_AltaYListado(t *testing.T) {
	app := buildTestApp(t)

	createProduct(t, app, "Zanahoria", "kg", "1")
	createProduct(t, app, "Arroz", "kg", "2")

	resp := doJSON(t, app, http.MethodGet, "/api/products/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var products []map[string]any
	decode(t, resp, &products)
	require.Len(t, products, 2)
	assert.Equal(t, "Arroz", products[0]["name"], "el listado viene ordenado por nombre")
	assert.Equal(t, "Zanahoria", products[1]["name"])
	assert.Equal(t, "0", products[0]["current_stock"], "todo producto nace con stock 0")
}

func TestProductos_DuplicadoRetorna409(t *testing.T) {
	app := buildTestApp(t)
	createProduct(t, app, "Arroz", "kg", "2")

	resp := doJSON(t, app, http.MethodPost, "/api/products/",
		`{"name":"  arroz  ","unit":"kg","minimum_stock":"1"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode,
		"un nombre equivalente tras normalizar debe rechazarse")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "DUPLICATE_NAME")
}

func TestProductos_SinNombreRetorna400(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/products/",
		`{"name":"   ","unit":"kg","minimum_stock":"1"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VALIDATION")
}

func TestProductos_Busqueda(t *testing.T) {
	app := buildTestApp(t)
	createProduct(t, app, "Coca-Cola 2L", "unidad", "0")
	createProduct(t, app, "Arroz", "kg", "0")

	resp := doJSON(t, app, http.MethodGet, "/api/products/search?q=coca", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Total    int              `json:"total"`
		Products []map[string]any `json:"products"`
	}
	decode(t, resp, &body)
	require.Equal(t, 1, body.Total)
	assert.Equal(t, "Coca-Cola 2L", body.Products[0]["name"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_EntradaYSalida(t *testing.T) {
	app := buildTestApp(t)
	id := createProduct(t, app, "Arroz", "kg", "2")

	resp := doJSON(t, app, http.MethodPost, "/api/stock/entry",
		`{"product_id":`+itoa(id)+`,"quantity":"10.5","reason":"compra"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	decode(t, resp, &body)
	product := body["product"].(map[string]any)
	assert.Equal(t, "10.5", product["current_stock"])

	// Cantidad con coma: el formato de los formularios originales.
	resp = doJSON(t, app, http.MethodPost, "/api/stock/exit",
		`{"product_id":`+itoa(id)+`,"quantity":"2,5","reason":"venta"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &body)
	product = body["product"].(map[string]any)
	assert.Equal(t, "8", product["current_stock"], "la coma decimal se acepta en entrada")
}

func TestStock_SalidaInsuficienteRetorna409(t *testing.T) {
	app := buildTestApp(t)
	id := createProduct(t, app, "Arroz", "kg", "2")

	resp := doJSON(t, app, http.MethodPost, "/api/stock/exit",
		`{"product_id":`+itoa(id)+`,"quantity":"1"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode,
		"una salida mayor al stock disponible no debe aplicarse")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INSUFFICIENT_STOCK")
}

func TestStock_ProductoInexistenteRetorna404(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/stock/entry",
		`{"product_id":999,"quantity":"1"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStock_AjusteSinMotivoRetorna400(t *testing.T) {
	app := buildTestApp(t)
	id := createProduct(t, app, "Arroz", "kg", "2")

	resp := doJSON(t, app, http.MethodPost, "/api/stock/adjust",
		`{"product_id":`+itoa(id)+`,"delta":"3","reason":"  "}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
		"los ajustes exigen motivo")
}

func TestMovimientos_ListadoYLimite(t *testing.T) {
	app := buildTestApp(t)
	id := createProduct(t, app, "Arroz", "kg", "2")

	for _, q := range []string{"1", "2", "3"} {
		resp := doJSON(t, app, http.MethodPost, "/api/stock/entry",
			`{"product_id":`+itoa(id)+`,"quantity":"`+q+`"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodGet, "/api/movements/?limit=2", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Total     int              `json:"total"`
		Movements []map[string]any `json:"movements"`
	}
	decode(t, resp, &body)
	require.Equal(t, 2, body.Total, "limit recorta a la cola del journal")
	assert.Equal(t, "2", body.Movements[0]["delta"])
	assert.Equal(t, "3", body.Movements[1]["delta"])
	assert.Equal(t, "Entrada", body.Movements[0]["type"])
}

func TestMovimientos_ExportCSV(t *testing.T) {
	app := buildTestApp(t)
	id := createProduct(t, app, "Arroz", "kg", "2")
	resp := doJSON(t, app, http.MethodPost, "/api/stock/entry",
		`{"product_id":`+itoa(id)+`,"quantity":"5","reason":"compra"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/movements/export.csv", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")

	raw, _ := io.ReadAll(resp.Body)
	csv := string(raw)
	assert.Contains(t, csv, "timestamp,product_id,product_name,type,reason,quantity,stock_before,stock_after")
	assert.Contains(t, csv, "Arroz")
	assert.Contains(t, csv, "compra")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_ResumenConAlertas(t *testing.T) {
	app := buildTestApp(t)
	id := createProduct(t, app, "Arroz", "kg", "5")
	createProduct(t, app, "Sal", "kg", "0")

	resp := doJSON(t, app, http.MethodPost, "/api/stock/entry",
		`{"product_id":`+itoa(id)+`,"quantity":"3"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/dashboard", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, float64(2), body["total_products"])
	// Arroz: 3 <= mínimo 5. Sal: stock 0. Ambos en alerta.
	assert.Equal(t, float64(2), body["alerts"])
	assert.Equal(t, float64(1), body["below_minimum"])
}

func TestReportePeriodo_FechasInvalidasRetorna400(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/reports/period?from=2026-03-10&to=2026-03-01", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_PERIOD")
}

func TestReportePeriodo_AgregadosPorProducto(t *testing.T) {
	app := buildTestApp(t)
	id := createProduct(t, app, "Arroz", "kg", "2")

	resp := doJSON(t, app, http.MethodPost, "/api/stock/entry",
		`{"product_id":`+itoa(id)+`,"quantity":"10"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, app, http.MethodPost, "/api/stock/exit",
		`{"product_id":`+itoa(id)+`,"quantity":"3"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Ventana amplia alrededor de hoy.
	resp = doJSON(t, app, http.MethodGet, "/api/reports/period?from=2000-01-01&to=2099-12-31", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Rows []map[string]any `json:"rows"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Rows, 1)
	assert.Equal(t, "Arroz", body.Rows[0]["producto"])
	assert.Equal(t, "10", body.Rows[0]["entradas"])
	assert.Equal(t, "3", body.Rows[0]["salidas"])
	assert.Equal(t, "7", body.Rows[0]["saldo"])
	assert.Equal(t, "13", body.Rows[0]["volumen"])
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
