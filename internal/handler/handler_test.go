package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackmap/internal/catalog"
	"stackmap/internal/domain"
	"stackmap/internal/layout"
	"stackmap/internal/metrics"
	"stackmap/internal/repository/memory"
	"stackmap/internal/service"
	"stackmap/internal/theme"
	"stackmap/internal/view"
)

type testServer struct {
	handler http.Handler
	metrics *metrics.Collector
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	records := memory.New()
	cat := catalog.Retail()
	bus := service.NewEventBus()
	collector := metrics.NewCollector()

	ctrl, err := view.NewController(context.Background(), cat, layout.NewStore(records, cat, nil),
		service.NewBusRenderer(bus), nil, view.Options{})
	require.NoError(t, err)

	svc := service.NewViewService(ctrl, theme.NewService(records, nil), bus, collector, nil)
	static := fstest.MapFS{
		"index.html": {Data: []byte("<html>stackmap</html>")},
	}

	return &testServer{
		handler: NewRouter(RouterOptions{Service: svc, Metrics: collector, Static: static}),
		metrics: collector,
	}
}

func (s *testServer) do(t *testing.T, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeModel(t *testing.T, rec *httptest.ResponseRecorder) view.Model {
	t.Helper()
	var model view.Model
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &model))
	return model
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func findNode(model view.Model, id string) (domain.GraphNode, bool) {
	for _, n := range model.Graph.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return domain.GraphNode{}, false
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestGetView(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/view", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	model := decodeModel(t, rec)
	assert.Equal(t, domain.LayoutCube, model.State.Layout)
	assert.Equal(t, domain.ScenarioAll, model.State.Scenario)
	assert.False(t, model.State.Playing)
	assert.NotEmpty(t, model.Graph.Nodes)
}

func TestSwitchLayout(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPut, "/api/layout/lanes", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.LayoutLanes, decodeModel(t, rec).State.Layout)

	rec = s.do(t, http.MethodPut, "/api/layout/spiral", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Failed to switch layout", decodeError(t, rec).Error)
}

func TestUpdatePosition(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPut, "/api/positions/shop", "application/json", `{"x":10,"y":-20}`)
	require.Equal(t, http.StatusOK, rec.Code)
	node, ok := findNode(decodeModel(t, rec), "shop")
	require.True(t, ok)
	assert.Equal(t, 10.0, node.X)
	assert.Equal(t, -20.0, node.Y)

	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"unknown node", "/api/positions/mainframe", `{"x":1,"y":2}`, http.StatusNotFound},
		{"missing coordinate", "/api/positions/shop", `{"x":1}`, http.StatusBadRequest},
		{"invalid body", "/api/positions/shop", `{x`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPut, tt.target, "application/json", tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestScenarioAndPlay(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPut, "/api/scenario/order", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	model := decodeModel(t, rec)
	assert.Equal(t, "order", model.State.Scenario)
	assert.Len(t, model.Graph.Edges, 4)

	rec = s.do(t, http.MethodPut, "/api/scenario/returns", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/play/toggle", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeModel(t, rec).State.Playing)
}

func TestResetLayoutRequiresConfirmation(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPut, "/api/positions/shop", "application/json", `{"x":999,"y":999}`)

	rec := s.do(t, http.MethodPost, "/api/layout/reset", "", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/layout/reset?confirm=true", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	node, ok := findNode(decodeModel(t, rec), "shop")
	require.True(t, ok)
	assert.NotEqual(t, 999.0, node.X)
}

func TestExport(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/export", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=stackmap-cube.json", rec.Header().Get("Content-Disposition"))

	var doc domain.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, domain.LayoutCube, doc.Layout)
	assert.Contains(t, doc.Positions, "shop")

	rec = s.do(t, http.MethodGet, "/api/export?format=yaml", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "layout: cube\n"))

	rec = s.do(t, http.MethodGet, "/api/export?format=xml", "", "")
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestImport(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/import", "application/json",
		`{"layout":"lanes","positions":{"shop":{"x":1,"y":2},"mainframe":{"x":3,"y":4}}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	model := decodeModel(t, rec)
	assert.Equal(t, domain.LayoutLanes, model.State.Layout)
	node, ok := findNode(model, "shop")
	require.True(t, ok)
	assert.Equal(t, 1.0, node.X)

	rec = s.do(t, http.MethodPost, "/api/import", "application/yaml", "positions:\n  oms: {x: 5, y: 6}\n")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.LayoutLanes, decodeModel(t, rec).State.Layout)

	tests := []struct {
		name        string
		contentType string
		body        string
		status      int
	}{
		{"malformed json", "application/json", `{"layout":`, http.StatusBadRequest},
		{"unknown layout", "application/json", `{"layout":"spiral"}`, http.StatusBadRequest},
		{"non-finite coordinate", "application/yaml", "positions:\n  shop: {x: .nan, y: 0}\n", http.StatusBadRequest},
		{"unsupported media type", "text/csv", "layout,lanes", http.StatusUnsupportedMediaType},
		{"too large", "application/json", `{"pad":"` + strings.Repeat("x", MaxImportBytes) + `"}`, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/import", tt.contentType, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "Failed to import layout", decodeError(t, rec).Error)
		})
	}

	rec = s.do(t, http.MethodGet, "/api/view", "", "")
	assert.Equal(t, domain.LayoutLanes, decodeModel(t, rec).State.Layout)
}

func TestGetPayload(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/edges/shop-oms/payload", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"orderId"`)

	rec = s.do(t, http.MethodGet, "/api/edges/shop-analytics/payload", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"edge":"shop-analytics","message":"no payload available"}`, rec.Body.String())
}

func TestTheme(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPut, "/api/theme", "application/json", `{"primary":"blue","primaryDark":"#111111","focus":"#222222"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Details, "primary")

	custom := `{"primary":"#000000","primaryDark":"#111111","focus":"#222222"}`
	rec = s.do(t, http.MethodPut, "/api/theme", "application/json", custom)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/theme", "", "")
	assert.JSONEq(t, custom, rec.Body.String())

	rec = s.do(t, http.MethodDelete, "/api/theme", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Theme
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, domain.DefaultTheme(), got)
}

func TestStaticAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stackmap")

	s.do(t, http.MethodGet, "/api/view", "", "")
	s.do(t, http.MethodPut, "/api/layout/spiral", "", "")

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.HTTPRequests.WithLabelValues("GET", "/api/view", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.HTTPRequests.WithLabelValues("PUT", "/api/layout/{mode}", "404")))

	rec = s.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stackmap_http_requests_total")
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{view.ErrUnknownLayout, http.StatusNotFound},
		{view.ErrUnknownNode, http.StatusNotFound},
		{view.ErrUnknownScenario, http.StatusNotFound},
		{view.ErrNotConfirmed, http.StatusConflict},
		{view.ErrInvalidDocument, http.StatusBadRequest},
		{theme.ErrInvalidTheme, http.StatusBadRequest},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, statusFor(tt.err))
		})
	}
}
