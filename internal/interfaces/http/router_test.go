package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancosemillas-api/internal/application/dto"
	"github.com/jhoicas/bancosemillas-api/internal/application/inventory"
	"github.com/jhoicas/bancosemillas-api/internal/application/usecase"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
	"github.com/jhoicas/bancosemillas-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/bancosemillas-api/internal/interfaces/http"
)

type api struct {
	t        *testing.T
	app      *fiber.App
	admin    string
	operador string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Run(ctx, func(r inventory.Repos) error {
		if err := r.SeedTypes.Create(ctx, &entity.SeedType{ID: "st-1", Name: "Soja", MaxStorageDays: 180}); err != nil {
			return err
		}
		return r.Clients.Create(ctx, &entity.Client{ID: "cli-1", Name: "Fazenda"})
	}))

	deps := inventory.Deps{Tx: store}
	lc := inventory.NewLifecycleUseCase(deps)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Lifecycle:   lc,
		Batch:       inventory.NewBatchUseCase(lc),
		Movements:   inventory.NewMovementUseCase(deps),
		Withdrawals: inventory.NewWithdrawalUseCase(lc),
		Locations:   usecase.NewLocationUseCase(store, nil, decimal.NewFromInt(500)),
		Catalogs:    usecase.NewCatalogUseCase(store, nil),
		JWTSecret:   testJWTSecret,
	})
	return &api{
		t:        t,
		app:      app,
		admin:    bearer(t, "u-admin", entity.RoleAdmin),
		operador: bearer(t, "u-operador", entity.RoleOperador),
	}
}

// call envía body como JSON y decodifica la respuesta en out (si no es nil).
func (a *api) call(method, path, auth string, body any, out any) int {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(a.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (a *api) setupLocations() []dto.LocationResponse {
	a.t.Helper()
	var chamber dto.ChamberResponse
	status := a.call(http.MethodPost, "/api/chambers", a.admin, map[string]any{
		"name": "Câmara A", "quadras": 1, "lados": 1, "filas": 2, "andares": 1, "default_capacity": "100",
	}, &chamber)
	require.Equal(a.t, http.StatusCreated, status)

	var gen dto.GenerateLocationsResponse
	status = a.call(http.MethodPost, "/api/chambers/"+chamber.ID+"/locations/generate", a.admin, nil, &gen)
	require.Equal(a.t, http.StatusCreated, status)
	require.Equal(a.t, 2, gen.Created)

	var list dto.LocationListResponse
	status = a.call(http.MethodGet, "/api/chambers/"+chamber.ID+"/locations", a.operador, nil, &list)
	require.Equal(a.t, http.StatusOK, status)
	require.Len(a.t, list.Items, 2)
	return list.Items
}

func productBody(qty int, locationID string) map[string]any {
	b := map[string]any{
		"name": "Soja RR", "lot_code": "s 01", "seed_type_id": "st-1", "client_id": "cli-1",
		"quantity": qty, "weight_per_unit": "2.5",
	}
	if locationID != "" {
		b["location_id"] = locationID
	}
	return b
}

func TestAPI_SinToken(t *testing.T) {
	a := newAPI(t)
	var e dto.ErrorResponse
	assert.Equal(t, http.StatusUnauthorized, a.call(http.MethodGet, "/api/chambers", "", nil, &e))
	assert.Equal(t, "MISSING_TOKEN", e.Code)
}

func TestAPI_RolesEnRutasAdmin(t *testing.T) {
	a := newAPI(t)
	var e dto.ErrorResponse
	status := a.call(http.MethodPost, "/api/chambers", a.operador, map[string]any{"name": "X", "quadras": 1, "lados": 1, "filas": 1, "andares": 1}, &e)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", e.Code)
}

func TestAPI_FlujoCompleto(t *testing.T) {
	a := newAPI(t)
	locs := a.setupLocations()
	loc := locs[0]

	var p dto.ProductResponse
	require.Equal(t, http.StatusCreated, a.call(http.MethodPost, "/api/products", a.operador, productBody(4, ""), &p))
	assert.Equal(t, string(entity.ProductStatusPendingLocation), p.Status)
	assert.Equal(t, "S-01", p.LotCode)

	require.Equal(t, http.StatusOK, a.call(http.MethodPost, "/api/products/"+p.ID+"/locate", a.operador,
		map[string]any{"location_id": loc.ID, "expected_version": p.Version}, &p))
	assert.Equal(t, string(entity.ProductStatusStored), p.Status)

	var capacity dto.LocationResponse
	require.Equal(t, http.StatusOK, a.call(http.MethodGet, "/api/locations/"+loc.ID, a.operador, nil, &capacity))
	assert.True(t, capacity.CurrentWeight.Equal(decimal.NewFromInt(10)))
	assert.True(t, capacity.AvailableCapacity.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, 10, capacity.OccupancyPercent)
	assert.Equal(t, string(entity.CapacityLow), capacity.CapacityStatus)

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusForbidden, a.call(http.MethodPost, "/api/withdrawal-requests", a.operador,
		map[string]any{"product_id": p.ID, "type": "TOTAL"}, &e))

	var w dto.WithdrawalResponse
	require.Equal(t, http.StatusCreated, a.call(http.MethodPost, "/api/withdrawal-requests", a.admin,
		map[string]any{"product_id": p.ID, "type": "TOTAL", "reason": "entrega"}, &w))
	assert.Equal(t, "PENDENTE", w.Status)
	assert.Equal(t, loc.Code, w.Snapshot.LocationCode)

	var pending dto.WithdrawalListResponse
	require.Equal(t, http.StatusOK, a.call(http.MethodGet, "/api/withdrawal-requests/pending", a.operador, nil, &pending))
	require.Len(t, pending.Items, 1)

	require.Equal(t, http.StatusOK, a.call(http.MethodPost, "/api/withdrawal-requests/"+w.ID+"/confirm", a.operador, nil, &w))
	assert.Equal(t, "CONFIRMADO", w.Status)

	require.Equal(t, http.StatusOK, a.call(http.MethodGet, "/api/products/"+p.ID, a.operador, nil, &p))
	assert.Equal(t, string(entity.ProductStatusWithdrawn), p.Status)
	assert.Nil(t, p.LocationID)

	var movs dto.MovementListResponse
	require.Equal(t, http.StatusOK, a.call(http.MethodGet, "/api/products/"+p.ID+"/movements", a.operador, nil, &movs))
	require.Len(t, movs.Items, 2)
	assert.Equal(t, string(entity.MovementExit), movs.Items[0].Type)

	require.Equal(t, http.StatusOK, a.call(http.MethodGet, "/api/locations/"+loc.ID+"/movements", a.operador, nil, &movs))
	assert.Len(t, movs.Items, 2)

	require.Equal(t, http.StatusOK, a.call(http.MethodGet, "/api/movements/user/u-operador", a.operador, nil, &movs))
	assert.Len(t, movs.Items, 2, "entrada (operador) y salida confirmada por el operador")
}

func TestAPI_ErroresDeDominio(t *testing.T) {
	a := newAPI(t)
	locs := a.setupLocations()

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusUnprocessableEntity, a.call(http.MethodPost, "/api/products", a.operador, productBody(100, locs[0].ID), &e))
	assert.Equal(t, "INSUFFICIENT_CAPACITY", e.Code)

	var p dto.ProductResponse
	require.Equal(t, http.StatusCreated, a.call(http.MethodPost, "/api/products", a.operador, productBody(2, ""), &p))
	assert.Equal(t, http.StatusConflict, a.call(http.MethodPost, "/api/products/"+p.ID+"/remove", a.operador, nil, &e))
	assert.Equal(t, "INVALID_TRANSITION", e.Code)

	assert.Equal(t, http.StatusNotFound, a.call(http.MethodGet, "/api/products/no-existe", a.operador, nil, &e))
	assert.Equal(t, "NOT_FOUND", e.Code)

	assert.Equal(t, http.StatusBadRequest, a.call(http.MethodGet, "/api/movements?from=ayer", a.operador, nil, &e))
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Equal(t, "from", e.Field)
}

func TestAPI_LoteAbortado(t *testing.T) {
	a := newAPI(t)

	bad := productBody(1, "")
	bad["weight_per_unit"] = "0"
	var e dto.ErrorResponse
	status := a.call(http.MethodPost, "/api/products/batch", a.operador, map[string]any{
		"client_id": "cli-1",
		"products":  []any{productBody(1, ""), bad},
	}, &e)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "TRANSACTION_ABORTED", e.Code)
	require.NotNil(t, e.Index)
	assert.Equal(t, 1, *e.Index)
	assert.Equal(t, "weight_per_unit", e.Field)

	var res dto.BatchResponse
	require.Equal(t, http.StatusCreated, a.call(http.MethodPost, "/api/products/batch", a.operador, map[string]any{
		"client_id":  "cli-1",
		"batch_name": "Cosecha 2026",
		"products":   []any{productBody(1, ""), productBody(2, "")},
	}, &res))
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "Cosecha 2026", res.BatchName)
}

func TestAPI_CatalogosDesdeAlmacenVacio(t *testing.T) {
	a := newAPI(t)
	var e dto.ErrorResponse
	assert.Equal(t, http.StatusForbidden, a.call(http.MethodPost, "/api/seed-types", a.operador,
		map[string]any{"name": "Feijão", "max_storage_days": 90}, &e))

	var st dto.SeedTypeResponse
	require.Equal(t, http.StatusCreated, a.call(http.MethodPost, "/api/seed-types", a.admin,
		map[string]any{"name": "Feijão", "max_storage_days": 90}, &st))
	assert.Equal(t, http.StatusConflict, a.call(http.MethodPost, "/api/seed-types", a.admin,
		map[string]any{"name": "Feijão"}, &e))
	assert.Equal(t, "DUPLICATE", e.Code)

	var cli dto.ClientResponse
	require.Equal(t, http.StatusCreated, a.call(http.MethodPost, "/api/clients", a.admin,
		map[string]any{"name": "Sítio Boa Vista", "email": "sitio@boavista.com"}, &cli))

	var types dto.SeedTypeListResponse
	require.Equal(t, http.StatusOK, a.call(http.MethodGet, "/api/seed-types", a.operador, nil, &types))
	assert.Len(t, types.Items, 2)
	var clients dto.ClientListResponse
	require.Equal(t, http.StatusOK, a.call(http.MethodGet, "/api/clients", a.operador, nil, &clients))
	assert.Len(t, clients.Items, 2)

	body := productBody(3, "")
	body["seed_type_id"] = st.ID
	body["client_id"] = cli.ID
	var p dto.ProductResponse
	require.Equal(t, http.StatusCreated, a.call(http.MethodPost, "/api/products", a.operador, body, &p))
	require.NotNil(t, p.ExpirationDate)

	var batch dto.BatchResponse
	require.Equal(t, http.StatusCreated, a.call(http.MethodPost, "/api/products/batch", a.operador, map[string]any{
		"client_id": cli.ID,
		"products":  []any{body, body},
	}, &batch))

	var listed dto.BatchResponse
	require.Equal(t, http.StatusOK, a.call(http.MethodGet, "/api/products/batch/"+batch.BatchID, a.operador, nil, &listed))
	assert.Equal(t, 2, listed.Count)
	assert.Equal(t, batch.BatchName, listed.BatchName)
	assert.Equal(t, batch.Products[0].ID, listed.Products[0].ID)
}

func TestAPI_PesoConDemasiadosDecimales(t *testing.T) {
	a := newAPI(t)
	bad := productBody(1, "")
	bad["weight_per_unit"] = "0.0004"
	var e dto.ErrorResponse
	require.Equal(t, http.StatusBadRequest, a.call(http.MethodPost, "/api/products/batch", a.operador, map[string]any{
		"client_id": "cli-1",
		"products":  []any{productBody(1, ""), productBody(1, ""), bad},
	}, &e))
	require.NotNil(t, e.Index)
	assert.Equal(t, 2, *e.Index)
	assert.Equal(t, "weight_per_unit", e.Field)
	assert.Contains(t, e.Message, "decimales")
}
