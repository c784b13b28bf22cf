package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-web/internal/application/usecase"
	"github.com/jhoicas/almacen-web/internal/domain/entity"
	"github.com/jhoicas/almacen-web/internal/infrastructure/supabase"
	"github.com/jhoicas/almacen-web/internal/infrastructure/supabase/supabasetest"
	webhttp "github.com/jhoicas/almacen-web/internal/interfaces/http"
	"github.com/jhoicas/almacen-web/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test: la app completa contra un data API falso
// ──────────────────────────────────────────────────────────────────────────────

func newTestApp(t *testing.T) (*fiber.App, *supabasetest.Server) {
	t.Helper()
	store := supabasetest.New()
	t.Cleanup(store.Close)

	client := supabase.New(supabase.Config{URL: store.URL(), Key: "clave-test"})
	productRepo := supabase.NewProductRepository(client)
	purchaseRepo := supabase.NewPurchaseRepository(client)
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	productUC := usecase.NewProductUseCase(productRepo, nil)
	purchaseUC := usecase.NewPurchaseUseCase(purchaseRepo, productRepo, nil, log)

	app := webhttp.NewApp(webhttp.RouterDeps{
		AppName:    "almacen-web-test",
		ProductUC:  productUC,
		PurchaseUC: purchaseUC,
		Log:        log,
	})
	return app, store
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return doRequest(t, app, req)
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func jsonBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductos_Listado(t *testing.T) {
	app, store := newTestApp(t)
	store.SeedProduct("Café", decimal.NewFromInt(5), 10)

	resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "Café")
}

func TestProductos_Alta(t *testing.T) {
	app, store := newTestApp(t)

	resp := postForm(t, app, "/products", url.Values{
		"name":        {"Café"},
		"description": {"500 g"},
		"price":       {"5.50"},
		"stock":       {"10"},
	})

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/products", resp.Header.Get("Location"))

	rec := store.Product(1)
	require.NotNil(t, rec)
	assert.Equal(t, "Café", rec["name"])
	assert.Equal(t, 10, supabasetest.IntField(rec, "stock"))
}

// Un precio malformado no debe persistir nada: se re-renderiza el formulario.
func TestProductos_AltaConPrecioInvalido(t *testing.T) {
	app, store := newTestApp(t)

	resp := postForm(t, app, "/products", url.Values{
		"name":  {"Café"},
		"price": {"no-es-un-numero"},
		"stock": {"10"},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "Datos del producto inválidos")
	assert.Nil(t, store.Product(1))
}

// El formulario de edición envía POST con _method=PATCH (override de método).
func TestProductos_EditarConMethodOverride(t *testing.T) {
	app, store := newTestApp(t)
	id := store.SeedProduct("Café", decimal.NewFromInt(5), 10)

	resp := postForm(t, app, "/products/1", url.Values{
		"_method":     {"PATCH"},
		"name":        {"Café premium"},
		"description": {""},
		"price":       {"6.00"},
		"stock":       {"8"},
	})

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	rec := store.Product(id)
	assert.Equal(t, "Café premium", rec["name"])
	assert.Equal(t, 8, supabasetest.IntField(rec, "stock"))
}

func TestProductos_EditarInexistenteRedirige(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/products/99/edit", nil))

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/products", resp.Header.Get("Location"))
}

func TestProductos_Eliminar(t *testing.T) {
	app, store := newTestApp(t)
	id := store.SeedProduct("Café", decimal.NewFromInt(5), 10)

	resp := doRequest(t, app, httptest.NewRequest(http.MethodDelete, "/products/1", nil))

	body := jsonBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Nil(t, store.Product(id))
}

// ──────────────────────────────────────────────────────────────────────────────
// Compras
// ──────────────────────────────────────────────────────────────────────────────

func TestCompras_CrearDescuentaStock(t *testing.T) {
	app, store := newTestApp(t)
	id := store.SeedProduct("Café", decimal.NewFromInt(5), 10)

	resp := postForm(t, app, "/purchases", url.Values{
		"product_id": {"1"},
		"quantity":   {"3"},
	})

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/purchases", resp.Header.Get("Location"))

	rec := store.Purchase(1)
	require.NotNil(t, rec)
	assert.Equal(t, entity.PurchaseStatusCompleted, rec["status"])
	assert.True(t, supabasetest.DecimalField(rec, "total_price").Equal(decimal.NewFromInt(15)),
		"total_price debe ser 5 × 3 = 15")
	assert.Equal(t, 7, store.ProductStock(id))
}

func TestCompras_StockInsuficiente(t *testing.T) {
	app, store := newTestApp(t)
	id := store.SeedProduct("Café", decimal.NewFromInt(5), 2)

	resp := postForm(t, app, "/purchases", url.Values{
		"product_id": {"1"},
		"quantity":   {"5"},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "Stock insuficiente o producto no encontrado")
	assert.Nil(t, store.Purchase(1), "no debe crearse ninguna compra")
	assert.Equal(t, 2, store.ProductStock(id))
}

func TestCompras_CantidadNoPositiva(t *testing.T) {
	app, store := newTestApp(t)
	store.SeedProduct("Café", decimal.NewFromInt(5), 10)

	resp := postForm(t, app, "/purchases", url.Values{
		"product_id": {"1"},
		"quantity":   {"0"},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "La cantidad debe ser mayor que cero")
	assert.Nil(t, store.Purchase(1))
}

func TestCompras_ListadoConProducto(t *testing.T) {
	app, store := newTestApp(t)
	id := store.SeedProduct("Café", decimal.NewFromInt(5), 10)
	store.SeedPurchase(id, 2, decimal.NewFromInt(10), entity.PurchaseStatusCompleted)

	resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/purchases", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "Café", "el listado debe mostrar el producto de la compra")
}

func TestCompras_CancelarRestauraStock(t *testing.T) {
	app, store := newTestApp(t)
	id := store.SeedProduct("Café", decimal.NewFromInt(5), 7)
	purchaseID := store.SeedPurchase(id, 3, decimal.NewFromInt(15), entity.PurchaseStatusCompleted)

	resp := doRequest(t, app, httptest.NewRequest(http.MethodPatch, "/purchases/1/cancel", nil))

	body := jsonBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, entity.PurchaseStatusCancelled, store.Purchase(purchaseID)["status"])
	assert.Equal(t, 10, store.ProductStock(id))
}

func TestCompras_CancelarDosVecesFalla(t *testing.T) {
	app, store := newTestApp(t)
	id := store.SeedProduct("Café", decimal.NewFromInt(5), 7)
	store.SeedPurchase(id, 3, decimal.NewFromInt(15), entity.PurchaseStatusCompleted)

	first := doRequest(t, app, httptest.NewRequest(http.MethodPatch, "/purchases/1/cancel", nil))
	require.Equal(t, true, jsonBody(t, first)["success"])

	second := doRequest(t, app, httptest.NewRequest(http.MethodPatch, "/purchases/1/cancel", nil))
	body := jsonBody(t, second)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "no se puede cancelar")
	assert.Equal(t, 10, store.ProductStock(id), "el stock no debe volver a cambiar")
}

func TestIndex(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "almacen-web-test")
}
