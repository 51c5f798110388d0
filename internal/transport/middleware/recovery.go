package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"
)

// Recovery returns middleware that recovers from panics, logs the error
// with a stack trace, and responds with a 500 in the API's JSON
// envelope. The panic value never reaches the client.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := debug.Stack()
					logger.ErrorContext(r.Context(), "panic recovered",
						slog.Any("error", err),
						slog.String("stack", string(stack)),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(struct { //nolint:errcheck
						Success bool   `json:"success"`
						Error   string `json:"error"`
						At      int64  `json:"at"`
					}{
						Error: "internal server error",
						At:    time.Now().UnixMilli(),
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
