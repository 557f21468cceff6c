package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/awantoch/kwanixflow/api"
	"github.com/awantoch/kwanixflow/config"
	"github.com/awantoch/kwanixflow/export"
	"github.com/awantoch/kwanixflow/model"
	"github.com/awantoch/kwanixflow/session"
	"github.com/awantoch/kwanixflow/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	exporter := export.NewExporter(nil, storage.NewMemoryStorage(), nil)
	svc := api.NewDiagramService(session.NewManager(""), exporter, nil)
	srv := httptest.NewServer(NewHandler(svc, config.HTTPConfig{AllowedOrigins: []string{"http://ui.test"}}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body == "" {
		req, err = http.NewRequest(method, url, nil)
	} else {
		req, err = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func createSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp := do(t, "POST", srv.URL+"/sessions", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[model.Snapshot](t, resp).ID
}

func TestHealthAndExtensions(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, "GET", srv.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"healthy"}`, readBody(t, resp))

	resp = do(t, "GET", srv.URL+"/extensions", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[struct {
		Extensions []string `json:"extensions"`
		Default    string   `json:"default"`
	}](t, resp)
	assert.Equal(t, export.Extensions, body.Extensions)
	assert.Equal(t, ".py", body.Default)

	resp = do(t, "GET", srv.URL+"/metrics", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "kwanixflow_http_requests_total")
}

func TestDiagramRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)
	base := srv.URL + "/sessions/" + id

	resp := do(t, "PUT", base+"/canvas", `{"x":10,"y":20,"zoom":2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[model.Snapshot](t, resp)
	assert.True(t, snap.CanvasReady)

	for _, text := range []string{"A", "B", "C"} {
		resp = do(t, "POST", base+"/items", `{"text":"`+text+`"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	resp = do(t, "POST", base+"/items", `{"text":"   "}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"created":false}`, readBody(t, resp))

	resp = do(t, "GET", base+"/items", "")
	items := decode[struct {
		Items []model.Item `json:"items"`
	}](t, resp)
	require.Len(t, items.Items, 3)
	assert.Equal(t, "item-3", items.Items[2].ID)

	resp = do(t, "POST", base+"/drops", `{"item_id":"item-1","x":110,"y":220}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	dropped := decode[struct {
		Placed bool       `json:"placed"`
		Node   model.Node `json:"node"`
	}](t, resp)
	assert.True(t, dropped.Placed)
	assert.Equal(t, model.Position{X: 50, Y: 100}, dropped.Node.Position)
	assert.Equal(t, "A", dropped.Node.Data.Label)

	for _, item := range []string{"item-2", "item-3"} {
		resp = do(t, "POST", base+"/drops", `{"item_id":"`+item+`","x":0,"y":0}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp = do(t, "POST", base+"/edges", `{"source":"item-3","target":"item-1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = do(t, "POST", base+"/edges", `{"source":"item-3","target":"item-1"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, "GET", base+"/preview", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "A C", readBody(t, resp))

	resp = do(t, "GET", base+"/graph", "")
	assert.Contains(t, readBody(t, resp), "item-3 --> item-1")

	resp = do(t, "PATCH", base+"/nodes/item-2", `{"x":5,"y":6}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, "PUT", base+"/extension", `{"extension":".ts"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, "GET", base+"/export", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="flow-diagram.ts"`, resp.Header.Get("Content-Disposition"))
	assert.Equal(t, "text/plain", resp.Header.Get("Content-Type"))
	assert.Equal(t, "A C", readBody(t, resp))

	resp = do(t, "GET", base+"/export?ext=.cpp", "")
	assert.Equal(t, `attachment; filename="flow-diagram.cpp"`, resp.Header.Get("Content-Disposition"))

	resp = do(t, "GET", base+"/exports", "")
	history := decode[struct {
		Exports []model.ExportRecord `json:"exports"`
	}](t, resp)
	assert.Len(t, history.Exports, 2)

	resp = do(t, "POST", base+"/undo", "")
	assert.JSONEq(t, `{"removed":true,"edge":{"id":"eitem-3-item-1","source":"item-3","target":"item-1"}}`, readBody(t, resp))
	resp = do(t, "POST", base+"/undo", "")
	assert.JSONEq(t, `{"removed":false}`, readBody(t, resp))

	resp = do(t, "POST", base+"/reset", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decode[model.Snapshot](t, resp)
	assert.Empty(t, snap.Nodes)
	assert.Equal(t, 1, snap.NextItemID)
	assert.Equal(t, ".ts", snap.Extension)

	resp = do(t, "DELETE", base, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, "GET", base, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDropBeforeCanvasIsIgnored(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/sessions/" + createSession(t, srv)

	do(t, "POST", base+"/items", `{"text":"A"}`)
	resp := do(t, "POST", base+"/drops", `{"item_id":"item-1","x":1,"y":1}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"placed":false}`, readBody(t, resp))
}

func TestErrorMapping(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/sessions/" + createSession(t, srv)
	do(t, "PUT", base+"/canvas", `{"zoom":1}`)

	tests := []struct {
		name   string
		method string
		url    string
		body   string
		status int
	}{
		{"unknown session", "GET", srv.URL + "/sessions/missing", "", http.StatusNotFound},
		{"unknown session preview", "GET", srv.URL + "/sessions/missing/preview", "", http.StatusNotFound},
		{"unknown item", "POST", base + "/drops", `{"item_id":"item-9"}`, http.StatusNotFound},
		{"unknown node", "POST", base + "/edges", `{"source":"a","target":"b"}`, http.StatusNotFound},
		{"unknown node move", "PATCH", base + "/nodes/zz", `{"x":1,"y":1}`, http.StatusNotFound},
		{"bad extension", "PUT", base + "/extension", `{"extension":".rb"}`, http.StatusBadRequest},
		{"bad export extension", "GET", base + "/export?ext=.go", "", http.StatusBadRequest},
		{"missing extension", "PUT", base + "/extension", `{}`, http.StatusBadRequest},
		{"missing target", "POST", base + "/edges", `{"source":"a"}`, http.StatusBadRequest},
		{"missing move coordinate", "PATCH", base + "/nodes/zz", `{"x":1}`, http.StatusBadRequest},
		{"negative zoom", "PUT", base + "/canvas", `{"zoom":-1}`, http.StatusBadRequest},
		{"malformed json", "POST", base + "/items", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, tt.url, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			body := decode[map[string]string](t, resp)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestValidationMessageUsesJSONNames(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/sessions/" + createSession(t, srv)
	resp := do(t, "POST", base+"/drops", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[map[string]string](t, resp)["error"], "item_id is required")
}

func TestListSessionsAndIndex(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	resp := do(t, "GET", srv.URL+"/sessions", "")
	body := decode[struct {
		Sessions []string `json:"sessions"`
	}](t, resp)
	assert.Equal(t, []string{id}, body.Sessions)

	resp = do(t, "GET", srv.URL+"/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	page := readBody(t, resp)
	assert.Contains(t, page, id)
	assert.Contains(t, page, ".py (default)")
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t)
	req, err := http.NewRequest("OPTIONS", srv.URL+"/sessions", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://ui.test")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "http://ui.test", resp.Header.Get("Access-Control-Allow-Origin"))
}
