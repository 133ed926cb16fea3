package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netacho/internal/commands"
	"netacho/internal/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	return New(commands.New(store.NewMemStore(), "")).Routes()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := do(t, newTestHandler(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListTools(t *testing.T) {
	w := do(t, newTestHandler(t), http.MethodGet, "/api/tools", "")
	require.Equal(t, http.StatusOK, w.Code)

	var tools []struct {
		Name        string         `json:"name"`
		InputSchema map[string]any `json:"inputSchema"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tools))
	assert.Len(t, tools, 21)
	for _, tool := range tools {
		assert.Equal(t, "object", tool.InputSchema["type"], tool.Name)
	}
}

func TestGetTool(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, http.MethodGet, "/api/tools/next_question", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"answer"`)

	w = do(t, h, http.MethodGet, "/api/tools/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCallTool(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name     string
		path     string
		body     string
		status   int
		contains string
	}{
		{"unknown tool", "/api/tools/explain_theory", `{}`, http.StatusNotFound, "unknown_tool"},
		{"bad json", "/api/tools/start_wizard", `{"oops`, http.StatusBadRequest, "invalid_json"},
		{"not initialized is 200", "/api/tools/show_wizard_answers", ``, http.StatusOK, commands.InfoPrefix},
		{"refusal is 200", "/api/tools/wizard_step", `{"stepId":42}`, http.StatusOK, commands.ErrorPrefix},
		{"start", "/api/tools/start_wizard", `{}`, http.StatusOK, "漫才とコント"},
		{"answer", "/api/tools/next_question", `{"answer":"コント"}`, http.StatusOK, "テーマ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
}

func TestCallTool_FullAutoRun(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, http.MethodPost, "/api/tools/start_full_auto_creation",
		`{"confirmed":true,"theme":"コンビニ","genre":"manzai"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res commands.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	start := strings.Index(res.Text, "auto_")
	require.GreaterOrEqual(t, start, 0)
	id := res.Text[start:]
	id = id[:strings.IndexByte(id, '`')]

	for _, step := range []string{"auto_step_1_research", "auto_step_2_generate", "auto_step_3_compose", "auto_step_4_script", "auto_step_5_evaluate"} {
		w := do(t, h, http.MethodPost, "/api/tools/"+step, `{"sessionId":"`+id+`"}`)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.False(t, strings.HasPrefix(res.Text, commands.ErrorPrefix), "%s: %s", step, res.Text)
	}
	assert.Contains(t, res.Text, "70/100")

	w = do(t, h, http.MethodPost, "/api/tools/view_completed_script", `{"sessionId":"`+id+`"}`)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Contains(t, res.Text, "シーン3: クライマックス")
}
