package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archonhq/archon/manager"
	"github.com/archonhq/archon/provider"
	"github.com/archonhq/archon/roster"
)

func newTestServer() *Server {
	return New(manager.New(roster.DefaultTeam(), provider.NewMock()))
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestServer_ListArchitectures(t *testing.T) {
	s := newTestServer()

	rec, resp := do(t, s, http.MethodGet, "/architectures", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "sequential", data["current"])
	assert.Len(t, data["architectures"], 4)
}

func TestServer_SetArchitecture(t *testing.T) {
	s := newTestServer()

	rec, resp := do(t, s, http.MethodPost, "/architecture", `{"architecture": "reactive"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	_, listResp := do(t, s, http.MethodGet, "/architectures", "")
	assert.Equal(t, "reactive", listResp.Data.(map[string]any)["current"])
}

func TestServer_SetArchitectureInvalid(t *testing.T) {
	s := newTestServer()

	rec, resp := do(t, s, http.MethodPost, "/architecture", `{"architecture": "blockchain"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "invalid architecture")
}

func TestServer_ProcessTask(t *testing.T) {
	s := newTestServer()

	rec, resp := do(t, s, http.MethodPost, "/tasks",
		`{"id": "T-1001", "title": "Auth", "description": "Implement secure login", "priority": "high"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "sequential", data["architecture"])
	assert.Equal(t, "T-1001", data["task_id"])
	assert.EqualValues(t, 6, data["metadata"].(map[string]any)["pipeline_stages"])
}

func TestServer_ProcessTaskValidation(t *testing.T) {
	s := newTestServer()

	rec, _ := do(t, s, http.MethodPost, "/tasks", `{"title": "no id"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, s, http.MethodPost, "/tasks", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_HierarchicalNotImplemented(t *testing.T) {
	s := newTestServer()

	_, resp := do(t, s, http.MethodPost, "/architecture", `{"architecture": "hierarchical"}`)
	require.True(t, resp.Success)

	rec, resp := do(t, s, http.MethodPost, "/tasks", `{"id": "T-1", "title": "Auth"}`)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Contains(t, resp.Error, "not implemented")
}

func TestServer_HistoryAndLimit(t *testing.T) {
	s := newTestServer()

	for _, id := range []string{"T-1", "T-2", "T-3"} {
		rec, _ := do(t, s, http.MethodPost, "/tasks", `{"id": "`+id+`", "title": "`+id+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	_, resp := do(t, s, http.MethodGet, "/history?limit=2", "")
	data := resp.Data.(map[string]any)
	assert.EqualValues(t, 2, data["count"])

	rec, _ := do(t, s, http.MethodGet, "/history?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Performance(t *testing.T) {
	s := newTestServer()

	rec, _ := do(t, s, http.MethodGet, "/performance", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, resp := do(t, s, http.MethodPost, "/tasks", `{"id": "T-1", "title": "Auth"}`)
	require.True(t, resp.Success)

	rec, resp = do(t, s, http.MethodGet, "/performance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := resp.Data.(map[string]any)
	assert.Contains(t, stats, "sequential")
}

func TestServer_ExportLatest(t *testing.T) {
	s := newTestServer()

	rec, _ := do(t, s, http.MethodGet, "/export/latest", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, resp := do(t, s, http.MethodPost, "/tasks", `{"id": "T-1", "title": "Auth"}`)
	require.True(t, resp.Success)

	rec, resp = do(t, s, http.MethodGet, "/export/latest?format=markdown", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]any)
	report := data["report"].(string)
	assert.Contains(t, report, "Auth")
	assert.Contains(t, report, "sequential")

	rec, resp = do(t, s, http.MethodGet, "/export/latest?format=xml", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp.Error, "unsupported export format")
}
