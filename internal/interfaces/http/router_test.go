package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/application/simulation"
	"github.com/jhoicas/Costeo-api/internal/application/usecase"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/memory"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Costeo-api/internal/interfaces/http"
	"github.com/jhoicas/Costeo-api/pkg/config"
	pkgjwt "github.com/jhoicas/Costeo-api/pkg/jwt"
	"github.com/jhoicas/Costeo-api/pkg/logger"
)

func newAPI(t *testing.T, secret string) *fiber.App {
	t.Helper()
	products := memory.NewProductRepository()
	centers := memory.NewCenterRepository()
	runs := memory.NewSimulationRunRepository()
	recorder := metrics.NewPrometheusRecorder()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC: usecase.NewProductUseCase(products),
		CenterUC:  usecase.NewCenterUseCase(centers),
		SimulationUC: simulation.NewUseCase(products, centers, runs, pdf.NewMarotoReportGenerator("es"), recorder,
			config.SimulationConfig{DefaultRuns: 10, MaxRuns: 1000}, logger.Nop()),
		Metrics:   recorder.Handler(),
		AppName:   "costeo-test",
		JWTSecret: secret,
		Log:       logger.Nop(),
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body any, auth string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func TestRouter_FlujoProductoYSimulacion(t *testing.T) {
	app := newAPI(t, "")

	resp, body := call(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": "Product I", "kind": "produced", "demand": 1000, "inventory": 100,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var product dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &product))

	resp, body = call(t, app, http.MethodGet, "/api/products/"+product.ID+"/eoq", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(body), "EOQ_UNDEFINED")

	resp, _ = call(t, app, http.MethodPut, "/api/products/"+product.ID+"/costs/storage_costs",
		map[string]any{"name": "Rent", "value": "2"}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = call(t, app, http.MethodPut, "/api/products/"+product.ID+"/costs/production_costs",
		map[string]any{"name": "Labor", "value": 10}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = call(t, app, http.MethodPut, "/api/products/"+product.ID+"/costs/purchase_costs",
		map[string]any{"name": "Freight", "value": 1}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "UNKNOWN_LEDGER")

	resp, body = call(t, app, http.MethodGet, "/api/products/"+product.ID+"/eoq", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var eoq dto.EOQResponse
	require.NoError(t, json.Unmarshal(body, &eoq))
	assert.Equal(t, "100", eoq.OptimumInventoryLevel.String())

	resp, body = call(t, app, http.MethodGet, "/api/products/"+product.ID+"/costs/storage_costs/Water", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cost dto.CostResponse
	require.NoError(t, json.Unmarshal(body, &cost))
	assert.True(t, cost.Value.IsZero())

	resp, body = call(t, app, http.MethodPost, "/api/products/"+product.ID+"/simulations", map[string]any{
		"seed": 42,
		"costs": map[string]any{
			"production_costs": map[string]any{
				"Energy Costs": map[string]any{"mean": 2, "std": 1, "upper": 5, "lower": 0},
			},
		},
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var run dto.SimulationRunResponse
	require.NoError(t, json.Unmarshal(body, &run))
	assert.Equal(t, 10, run.Summary.Count)
	assert.Equal(t, "variable_cost", run.Metric)

	resp, body = call(t, app, http.MethodGet, "/api/simulations?subject_id="+product.ID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.SimulationRunListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list.Items, 1)

	resp, body = call(t, app, http.MethodGet, "/api/simulations/"+run.ID+"/report", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp, _ = call(t, app, http.MethodGet, "/api/simulations/no-existe", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `costeo_simulations_total{metric="variable_cost",subject="product"} 1`)
}

func TestRouter_SimulacionFallidaRetorna422(t *testing.T) {
	app := newAPI(t, "")
	resp, body := call(t, app, http.MethodPost, "/api/products", map[string]any{"name": "P", "kind": "produced"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var product dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &product))

	resp, body = call(t, app, http.MethodPost, "/api/products/"+product.ID+"/simulations", map[string]any{
		"metric": "eoq",
		"costs": map[string]any{
			"production_costs": map[string]any{"Labor": map[string]any{"mean": 7, "std": 2, "upper": 10, "lower": 5}},
		},
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(body), "SIMULATION_RUN_FAILED")

	resp, _ = call(t, app, http.MethodPost, "/api/products/"+product.ID+"/simulations", map[string]any{"runs": 5000,
		"costs": map[string]any{"production_costs": map[string]any{"Labor": map[string]any{"mean": 7, "std": 2, "upper": 10, "lower": 5}}},
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_Centros(t *testing.T) {
	app := newAPI(t, "")

	resp, body := call(t, app, http.MethodPost, "/api/centers", map[string]any{"name": "Planta", "address": "Calle 1"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var center dto.CenterResponse
	require.NoError(t, json.Unmarshal(body, &center))

	resp, _ = call(t, app, http.MethodPost, "/api/centers/"+center.ID+"/costs", map[string]any{"name": "Rent", "value": 100}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = call(t, app, http.MethodPost, "/api/centers/"+center.ID+"/simulations", nil, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var run dto.SimulationRunResponse
	require.NoError(t, json.Unmarshal(body, &run))
	assert.Equal(t, "fixed_cost", run.Metric)
	assert.True(t, run.Summary.P05.GreaterThanOrEqual(run.Summary.Min))

	resp, _ = call(t, app, http.MethodDelete, "/api/centers/"+center.ID, nil, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = call(t, app, http.MethodGet, "/api/centers/"+center.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_ConAutenticacion(t *testing.T) {
	app := newAPI(t, testJWTSecret)

	resp, _ := call(t, app, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/products", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/products", nil, tokenForRole(t, pkgjwt.RoleViewer))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/api/centers", map[string]any{"name": "X"}, tokenForRole(t, pkgjwt.RoleViewer))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/api/centers", map[string]any{"name": "X"}, tokenForRole(t, pkgjwt.RoleAnalyst))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}
