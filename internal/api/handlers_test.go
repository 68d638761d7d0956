package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napolitain/homebound/internal/colony"
	"github.com/napolitain/homebound/internal/loader"
	"github.com/napolitain/homebound/internal/models"
	"github.com/napolitain/homebound/internal/service"
	"github.com/napolitain/homebound/internal/snapshot"
)

func newServer(t *testing.T) (*httptest.Server, *service.Session) {
	t.Helper()
	cat, err := loader.DefaultCatalog()
	require.NoError(t, err)
	c, err := colony.NewStartingColony(cat)
	require.NoError(t, err)
	session := service.NewSession(c)

	reg := prometheus.NewRegistry()
	router := NewRouter(NewHandler(session, cat, nil), RouterOptions{
		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, session
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeView(t *testing.T, resp *http.Response) snapshot.View {
	t.Helper()
	var v snapshot.View
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestGetColonyETag(t *testing.T) {
	srv, _ := newServer(t)

	resp := do(t, srv, http.MethodGet, "/api/colony", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v := decodeView(t, resp)
	assert.Len(t, v.Buildings, 10)
	etag := resp.Header.Get("ETag")
	assert.Equal(t, `"`+v.Digest+`"`, etag)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/colony", nil)
	require.NoError(t, err)
	req.Header.Set("If-None-Match", etag)
	cached, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer cached.Body.Close()
	assert.Equal(t, http.StatusNotModified, cached.StatusCode)
}

func TestGetBuilding(t *testing.T) {
	srv, _ := newServer(t)

	tests := []struct {
		path   string
		status int
	}{
		{"/api/colony/buildings/3/3", http.StatusOK},
		{"/api/colony/buildings/0/0", http.StatusNotFound},
		{"/api/colony/buildings/9/0", http.StatusBadRequest},
		{"/api/colony/buildings/a/0", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := do(t, srv, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}

	resp := do(t, srv, http.MethodGet, "/api/colony/buildings/3/3", "")
	var bv snapshot.BuildingView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&bv))
	assert.Equal(t, models.Headquarters, bv.Kind)
}

func TestGetCatalog(t *testing.T) {
	srv, _ := newServer(t)
	resp := do(t, srv, http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cat models.Catalog
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cat))
	require.Contains(t, cat.Buildings, models.Headquarters)
	assert.Contains(t, cat.Items, models.HullModule)
}

func TestSelection(t *testing.T) {
	srv, _ := newServer(t)

	resp := do(t, srv, http.MethodPut, "/api/colony/selection", `{"x": 1, "y": 5}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v := decodeView(t, resp)
	require.NotNil(t, v.Selected)
	assert.Equal(t, colony.Coords{X: 1, Y: 5}, *v.Selected)

	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPut, "/api/colony/selection", `{"x": 7, "y": 0}`).StatusCode)

	resp = do(t, srv, http.MethodDelete, "/api/colony/selection", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, decodeView(t, resp).Selected)
}

func TestAddAndCancelBuilding(t *testing.T) {
	srv, _ := newServer(t)

	resp := do(t, srv, http.MethodPost, "/api/colony/buildings", `{"x": 0, "y": 0, "kind": "storage"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeView(t, resp).Buildings, 11)

	assert.Equal(t, http.StatusConflict, do(t, srv, http.MethodPost, "/api/colony/buildings", `{"x": 0, "y": 0, "kind": "storage"}`).StatusCode)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/api/colony/buildings", `{"x": 1, "y": 0, "kind": "spaceport"}`).StatusCode)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/api/colony/buildings", `{"x": 1, "y": 0, "kind": "storage", "level": 3}`).StatusCode)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/api/colony/buildings", `{"x": 1`).StatusCode)

	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/colony/buildings/0/0/cancel", "").StatusCode)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/colony/buildings/0/0", "").StatusCode)
}

func TestDestroyHeadquartersConflicts(t *testing.T) {
	srv, _ := newServer(t)
	assert.Equal(t, http.StatusConflict, do(t, srv, http.MethodDelete, "/api/colony/buildings/3/3", "").StatusCode)
	assert.Equal(t, http.StatusConflict, do(t, srv, http.MethodPost, "/api/colony/buildings/3/3/upgrade", "").StatusCode)
}

func TestWorkersAndProduction(t *testing.T) {
	srv, session := newServer(t)

	resp := do(t, srv, http.MethodPost, "/api/colony/buildings/2/2/workers", `{"job": "production", "worker": "engineers", "all": true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v := decodeView(t, resp)
	assert.Less(t, v.Workforce.Engineers.Available, v.Workforce.Engineers.Total)

	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/api/colony/buildings/2/2/workers", `{"job": "production", "worker": "pilots"}`).StatusCode)

	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/colony/buildings/2/2/production", `{"resource": "iron_ore"}`).StatusCode)
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/colony/buildings/4/2/production", `{"resource": "copper"}`).StatusCode)
	assert.Equal(t, http.StatusConflict, do(t, srv, http.MethodPost, "/api/colony/buildings/3/4/production", `{"resource": "copper"}`).StatusCode)

	after := session.Tick(1)
	for _, b := range after.Buildings {
		switch {
		case b.X == 2 && b.Y == 2:
			assert.Equal(t, models.IronOre, b.Target)
		case b.X == 4 && b.Y == 2:
			assert.Equal(t, models.Copper, b.Target)
		}
	}
}

func TestQueues(t *testing.T) {
	srv, _ := newServer(t)

	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/colony/buildings/3/4/queue", `{"worker": "pilots"}`).StatusCode)
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodDelete, "/api/colony/buildings/3/4/queue/head", "").StatusCode)
	assert.Equal(t, http.StatusConflict, do(t, srv, http.MethodDelete, "/api/colony/buildings/3/4/queue", "").StatusCode)

	resp := do(t, srv, http.MethodPost, "/api/colony/buildings/3/1/queue", `{"item": "hull_module"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v := decodeView(t, resp)
	for _, b := range v.Buildings {
		if b.Kind == models.Factory {
			assert.Equal(t, []string{"hull_module"}, b.Queue)
		}
	}

	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/api/colony/buildings/3/1/queue", `{}`).StatusCode)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/api/colony/buildings/3/1/queue", `{"worker": "pilots", "item": "hull_module"}`).StatusCode)
	assert.Equal(t, http.StatusConflict, do(t, srv, http.MethodPost, "/api/colony/buildings/3/4/queue", `{"item": "hull_module"}`).StatusCode)
	assert.Equal(t, http.StatusConflict, do(t, srv, http.MethodDelete, "/api/colony/buildings/2/2/queue", "").StatusCode)
}

func TestMetricsMounted(t *testing.T) {
	srv, _ := newServer(t)
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/metrics", "").StatusCode)
}
