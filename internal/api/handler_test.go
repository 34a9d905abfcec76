package api_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/cargohub/cargohub/internal/api"
	"github.com/cargohub/cargohub/internal/auth"
	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/masterdata"
	"github.com/cargohub/cargohub/internal/refint"
	"github.com/cargohub/cargohub/internal/store"
)

const keyHeader = "API_KEY"

type apiFixture struct {
	server     *httptest.Server
	warehouses *masterdata.WarehouseStore
	locations  *masterdata.LocationStore
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	dir := t.TempDir()
	warehouses := masterdata.NewWarehouseStore(dir)
	locations := masterdata.NewLocationStore(dir)

	registry := store.NewRegistry()
	require.NoError(t, registry.Add(warehouses))
	require.NoError(t, registry.Add(locations))

	index := refint.NewIndex()
	index.Declare(entity.KindWarehouses,
		refint.Check{Kind: entity.KindLocations, Scan: refint.ScanField(locations, func(l entity.Location, id int64) bool {
			return l.WarehouseID == id
		})},
	)
	validator := refint.NewValidator(registry, index)
	validator.Register(refint.TargetFor(warehouses))
	validator.Register(refint.TargetFor(locations))

	users := []auth.User{
		auth.AdminUser("admin-key"),
		{
			APIKey: "readonly-key",
			App:    "CargoHUB Viewer",
			Access: auth.AccessPolicy{
				Resources: map[string]auth.MethodAccess{
					"warehouses": {Get: true},
				},
			},
		},
	}
	provider := auth.NewProvider(users, nil, time.Minute, slog.Default())

	handler := api.NewHandler(slog.Default(), provider,
		masterdata.NewWarehousesResource(warehouses, locations, validator),
		masterdata.NewLocationsResource(locations, validator),
	)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(provider, keyHeader))
		handler.MountRoutes(r)
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return &apiFixture{server: server, warehouses: warehouses, locations: locations}
}

func (f *apiFixture) do(t *testing.T, method, path, key, body string) *http.Response {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, f.server.URL+path, reader)
	require.NoError(t, err)
	if key != "" {
		req.Header.Set(keyHeader, key)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestMissingAPIKey(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodGet, "/api/v1/warehouses", "", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestForbiddenMethod(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodGet, "/api/v1/warehouses", "readonly-key", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/v1/warehouses", "readonly-key",
		`{"code":"WH-A","name":"North","contact":{"name":"Ops"}}`)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Scoped to warehouses only.
	resp = f.do(t, http.MethodGet, "/api/v1/locations", "readonly-key", "")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateAndGetWarehouse(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/api/v1/warehouses", "admin-key",
		`{"code":"WH-A","name":"North","city":"Rotterdam","contact":{"name":"Ops","email":"ops@example.com"}}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created entity.Warehouse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, "WH-A", created.Code)

	resp = f.do(t, http.MethodGet, "/api/v1/warehouses/1", "admin-key", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateValidationFailure(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/api/v1/warehouses", "admin-key",
		`{"name":"No Code","contact":{"name":"Ops"}}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Contains(t, body.Errors, "code")
}

func TestUnknownFieldRejected(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/api/v1/warehouses", "admin-key",
		`{"code":"WH-A","name":"North","contact":{"name":"Ops"},"bogus":true}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetUnknownWarehouse(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodGet, "/api/v1/warehouses/42", "admin-key", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteBlockedReturnsConflict(t *testing.T) {
	f := newAPIFixture(t)
	wh := f.warehouses.Create(entity.Warehouse{Code: "WH-A"})
	require.NoError(t, f.warehouses.Save())
	loc := f.locations.Create(entity.Location{WarehouseID: wh.ID, Code: "A.1.0"})
	require.NoError(t, f.locations.Save())

	resp := f.do(t, http.MethodDelete, "/api/v1/warehouses/1", "admin-key", "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body struct {
		Deletable bool `json:"deletable"`
		Blocking  []struct {
			Kind string `json:"kind"`
			ID   int64  `json:"id"`
		} `json:"blocking"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.False(t, body.Deletable)
	require.Len(t, body.Blocking, 1)
	require.Equal(t, "locations", body.Blocking[0].Kind)
	require.Equal(t, loc.ID, body.Blocking[0].ID)
}

func TestDeleteDryRun(t *testing.T) {
	f := newAPIFixture(t)
	wh := f.warehouses.Create(entity.Warehouse{Code: "WH-A"})
	f.locations.Create(entity.Location{WarehouseID: wh.ID, Code: "A.1.0"})

	resp := f.do(t, http.MethodDelete, "/api/v1/warehouses/1?dry_run=true", "admin-key", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report struct {
		Deletable bool `json:"deletable"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	require.False(t, report.Deletable)

	// The dry run must not have deleted anything.
	resp = f.do(t, http.MethodGet, "/api/v1/warehouses/1", "admin-key", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWarehouseLocationsRelation(t *testing.T) {
	f := newAPIFixture(t)
	wh := f.warehouses.Create(entity.Warehouse{Code: "WH-A"})
	f.locations.Create(entity.Location{WarehouseID: wh.ID, Code: "A.1.0"})
	f.locations.Create(entity.Location{WarehouseID: 99, Code: "Z.9.9"})

	resp := f.do(t, http.MethodGet, "/api/v1/warehouses/1/locations", "admin-key", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed []entity.Location
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	require.Len(t, listed, 1)
	require.Equal(t, "A.1.0", listed[0].Code)
}

func TestUnknownRelation(t *testing.T) {
	f := newAPIFixture(t)
	f.warehouses.Create(entity.Warehouse{Code: "WH-A"})

	resp := f.do(t, http.MethodGet, "/api/v1/warehouses/1/bogus", "admin-key", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateWarehouse(t *testing.T) {
	f := newAPIFixture(t)
	f.warehouses.Create(entity.Warehouse{Code: "WH-A", Name: "North"})

	resp := f.do(t, http.MethodPut, "/api/v1/warehouses/1", "admin-key", `{"name":"North Annex"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated entity.Warehouse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	require.Equal(t, "North Annex", updated.Name)
	require.Equal(t, "WH-A", updated.Code)
}
