package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMCPRequestLogger(t *testing.T) {
	t.Run("logs successful tool call", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		logger := zap.New(core)

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"content":[{"type":"text","text":"added"}]}}`))
		})

		wrapped := MCPRequestLogger(logger)(handler)

		reqBody := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"add_college","arguments":{"college_name":"Stanford University","type":"Reach"}}}`
		req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewBufferString(reqBody))
		rec := httptest.NewRecorder()

		wrapped.ServeHTTP(rec, req)

		assert.Equal(t, 2, logs.Len(), "Should log request and response")

		requestLog := logs.All()[0]
		assert.Equal(t, "MCP request", requestLog.Message)
		assert.Equal(t, "tools/call", requestLog.ContextMap()["method"])
		assert.Equal(t, "add_college", requestLog.ContextMap()["tool"])
		assert.NotNil(t, requestLog.ContextMap()["arguments"])

		responseLog := logs.All()[1]
		assert.Equal(t, "MCP response success", responseLog.Message)
		assert.Equal(t, "add_college", responseLog.ContextMap()["tool"])
		assert.NotNil(t, responseLog.ContextMap()["duration"])
	})

	t.Run("logs tool call with error response", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		logger := zap.New(core)

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"college_name is required"}}`))
		})

		wrapped := MCPRequestLogger(logger)(handler)

		reqBody := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"add_college","arguments":{}}}`
		req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewBufferString(reqBody))
		rec := httptest.NewRecorder()

		wrapped.ServeHTTP(rec, req)

		assert.Equal(t, 2, logs.Len())

		responseLog := logs.All()[1]
		assert.Equal(t, "MCP response error", responseLog.Message)
		assert.Equal(t, int64(-32602), responseLog.ContextMap()["error_code"])
		assert.Equal(t, "college_name is required", responseLog.ContextMap()["error_message"])
	})

	t.Run("nil logger passes through", func(t *testing.T) {
		called := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		wrapped := MCPRequestLogger(nil)(handler)

		req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewBufferString(`{}`))
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)

		assert.True(t, called)
	})

	t.Run("passes body through to handler", func(t *testing.T) {
		var seen string
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			buf := new(bytes.Buffer)
			buf.ReadFrom(r.Body)
			seen = buf.String()
		})

		wrapped := MCPRequestLogger(zap.NewNop())(handler)

		reqBody := `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`
		req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewBufferString(reqBody))
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)

		assert.Equal(t, reqBody, seen, "Handler should see the original body")
	})
}

func TestSanitizeArguments(t *testing.T) {
	t.Run("redacts sensitive keys", func(t *testing.T) {
		args := map[string]any{
			"college_name": "Stanford University",
			"api_token":    "abc123",
			"password":     "hunter2",
		}

		result := sanitizeArguments(args)

		assert.Equal(t, "Stanford University", result["college_name"])
		assert.Equal(t, "[REDACTED]", result["api_token"])
		assert.Equal(t, "[REDACTED]", result["password"])
	})

	t.Run("truncates long string values", func(t *testing.T) {
		args := map[string]any{
			"message": strings.Repeat("a", 500),
		}

		result := sanitizeArguments(args)

		str, ok := result["message"].(string)
		assert.True(t, ok)
		assert.Equal(t, maxArgumentLogLength+3, len(str))
		assert.True(t, strings.HasSuffix(str, "..."))
	})

	t.Run("nil arguments", func(t *testing.T) {
		assert.Nil(t, sanitizeArguments(nil))
	})

	t.Run("non-string values pass through", func(t *testing.T) {
		args := map[string]any{"count": float64(3)}
		result := sanitizeArguments(args)
		assert.Equal(t, float64(3), result["count"])
	})
}
