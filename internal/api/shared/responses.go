package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/redact"
)

// ResultResponse is the body of every failure and of the operations that
// have nothing else to return.
type ResultResponse struct {
	Result bool `json:"result"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithResult writes {"result": true} with the given status.
func RespondWithResult(w http.ResponseWriter, r *http.Request, status int) {
	RespondWithJSON(w, r, status, ResultResponse{Result: true})
}

// RespondWithFailure writes the uniform {"result": false} body and logs the
// redacted error. Clients never see err.
//
// Log level strategy:
// - 5xx errors: ERROR
// - 403 Forbidden: WARN, since it signals a bad or revoked token
// - other 4xx errors: DEBUG
func RespondWithFailure(w http.ResponseWriter, r *http.Request, status int, err error) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", redact.Path(r.URL.Path)),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
	}

	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	} else if status == http.StatusForbidden {
		logLevel = slog.LevelWarn
	}

	logger.FromContext(r.Context()).LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ResultResponse{Result: false})
}
