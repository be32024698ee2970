package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/waypoint-hq/waypoint-engine/pkg/logging"
)

// maxArgumentLogLength caps logged tool argument values. Essay drafts and
// pasted prompts can run to thousands of characters.
const maxArgumentLogLength = 200

// MCPRequestLogger returns middleware that logs MCP JSON-RPC traffic.
// It intercepts request and response bodies to extract the tool name,
// sanitized arguments, and error details. Pass nil logger to disable logging.
func MCPRequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if logger == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Read and restore request body for JSON-RPC parsing
			bodyBytes, err := io.ReadAll(r.Body)
			if err != nil {
				logger.Error("Failed to read MCP request body", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

			var rpcReq rpcRequest
			if err := json.Unmarshal(bodyBytes, &rpcReq); err != nil {
				// Not all requests are valid JSON; log what we can
				logger.Debug("Failed to parse MCP request JSON", zap.Error(err))
			}

			toolName := rpcReq.Params.Name

			logger.Debug("MCP request",
				zap.String("method", rpcReq.Method),
				zap.String("tool", toolName),
				zap.Any("arguments", sanitizeArguments(rpcReq.Params.Arguments)),
			)

			recorder := &mcpResponseRecorder{
				ResponseWriter: w,
				body:           &bytes.Buffer{},
			}
			start := time.Now()

			next.ServeHTTP(recorder, r)

			duration := time.Since(start)

			var rpcResp rpcResponse
			if err := json.Unmarshal(recorder.body.Bytes(), &rpcResp); err != nil {
				logger.Debug("Failed to parse MCP response JSON", zap.Error(err))
				return
			}

			if rpcResp.Error != nil {
				logger.Debug("MCP response error",
					zap.String("tool", toolName),
					zap.Int("error_code", rpcResp.Error.Code),
					zap.String("error_message", rpcResp.Error.Message),
					zap.Duration("duration", duration),
				)
			} else {
				logger.Debug("MCP response success",
					zap.String("tool", toolName),
					zap.Duration("duration", duration),
				)
			}
		})
	}
}

// rpcRequest is the subset of a JSON-RPC tools/call request we log.
type rpcRequest struct {
	Method string `json:"method"`
	Params struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	} `json:"params"`
}

type rpcResponse struct {
	Result any       `json:"result"`
	Error  *rpcError `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// mcpResponseRecorder captures the response body while passing it through.
type mcpResponseRecorder struct {
	http.ResponseWriter
	body *bytes.Buffer
}

func (r *mcpResponseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// sanitizeArguments redacts sensitive fields and truncates long values.
func sanitizeArguments(args map[string]any) map[string]any {
	if args == nil {
		return nil
	}

	sensitiveKeywords := []string{"password", "secret", "token", "key", "credential"}
	result := make(map[string]any)

	for k, v := range args {
		lowerKey := strings.ToLower(k)
		isSensitive := false
		for _, keyword := range sensitiveKeywords {
			if strings.Contains(lowerKey, keyword) {
				isSensitive = true
				break
			}
		}

		if isSensitive {
			result[k] = logging.RedactedText
			continue
		}

		if str, ok := v.(string); ok {
			result[k] = logging.TruncateString(str, maxArgumentLogLength)
		} else {
			result[k] = v
		}
	}

	return result
}
